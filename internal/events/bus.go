// Package events carries session lifecycle signals from the stores to
// whatever presentation layer is running (gateway, CLI).
package events

import (
	evbus "github.com/asaskevich/EventBus"
)

const (
	TopicSessionAuthenticated = "session.authenticated"
	TopicSessionInvalidated   = "session.invalidated"
	TopicSessionLogout        = "session.logout"
)

type SessionEvent struct {
	// Expired is set when the backend rejected the token with a 401.
	Expired bool
	Reason  string
}

type Bus struct {
	bus evbus.Bus
}

func NewBus() *Bus {
	return &Bus{bus: evbus.New()}
}

// Publish delivers synchronously to every subscriber of topic.
func (b *Bus) Publish(topic string, ev SessionEvent) {
	if b == nil {
		return
	}
	b.bus.Publish(topic, ev)
}

// Subscribe registers fn and returns a func that removes it again.
func (b *Bus) Subscribe(topic string, fn func(SessionEvent)) (func(), error) {
	if err := b.bus.Subscribe(topic, fn); err != nil {
		return nil, err
	}
	return func() {
		_ = b.bus.Unsubscribe(topic, fn)
	}, nil
}
