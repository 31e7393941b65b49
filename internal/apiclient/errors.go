package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

// DefaultMessage is reported when a failed response carries no message.
const DefaultMessage = "Something went wrong"

var (
	// ErrSessionExpired matches any APIError caused by a 401 response.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnexpectedResponse reports a success envelope whose data does not
	// have the documented shape.
	ErrUnexpectedResponse = errors.New("unexpected response data")
)

// APIError is an application failure: a non-2xx status or success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error (status %d)", e.StatusCode)
	}
	return e.Message
}

func (e *APIError) Is(target error) bool {
	return target == ErrSessionExpired && e.StatusCode == http.StatusUnauthorized
}

// TransportError covers requests that never reached the backend and
// responses that could not be decoded.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Message picks the text a store records for a failed call. Server messages
// win; an application error without one falls back to the caller's text.
func Message(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
