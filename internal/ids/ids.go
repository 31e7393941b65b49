package ids

import "github.com/segmentio/ksuid"

// New returns a time-ordered unique id.
func New() string {
	return ksuid.New().String()
}
