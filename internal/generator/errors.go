package generator

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when the generation service rejects the
// session token. The session's OnUnauthorized hook has already fired by the
// time a caller sees this.
var ErrUnauthorized = errors.New("generation service rejected the session token")

// ErrExactlyOneSource is returned when an app creation request does not
// carry exactly one of xml, prompt or mockup_id.
var ErrExactlyOneSource = errors.New("exactly one of xml, prompt or mockup_id must be provided")

// TransportError covers failures between this client and the generation
// service: unreachable host, timeouts, unexpected statuses, undecodable
// bodies. The message stays generic; the raw cause is kept behind Unwrap.
type TransportError struct {
	Op         string
	StatusCode int // zero when the request never completed
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("failed to %s: the generation service did not respond as expected", e.Op)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServerError carries a failure the generation service reported itself.
// Its text is surfaced to the user verbatim.
type ServerError struct {
	Op     string
	Reason string
}

func (e *ServerError) Error() string { return e.Reason }
