package toggl

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport covers network failures and non-2xx responses.
	ErrTransport = errors.New("transport error")
	// ErrSerialization covers request encoding and response decoding failures.
	ErrSerialization = errors.New("serialization error")
)

// Error is returned by every Client operation. Kind is ErrTransport or
// ErrSerialization, so callers can use errors.Is on either the kind or the
// underlying cause.
type Error struct {
	Kind error
	// Op is the request, e.g. "GET /me".
	Op string
	// StatusCode is set when the server answered with a non-2xx status.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("toggl %s: %v", e.Op, e.Kind)
	}
	return fmt.Sprintf("toggl %s: %v: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
