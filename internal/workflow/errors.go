package workflow

import (
	"errors"

	"github.com/SW2PDEPLOY/front/internal/generator"
	"github.com/SW2PDEPLOY/front/internal/imaging"
)

// Preconditions checked before any remote call is made.
var (
	ErrPromptTooShort = errors.New("prompt must be at least 10 characters")
	ErrNameRequired   = errors.New("project name is required")
	ErrNoImage        = errors.New("no image has been selected")
	ErrBusy           = errors.New("a submission is already in progress")
	ErrNoSink         = errors.New("no artifact sink is configured")
)

// Class buckets a workflow failure for user-facing reporting.
type Class string

const (
	ClassValidation Class = "validation"
	ClassCodec      Class = "codec"
	ClassServer     Class = "server"
	ClassTransport  Class = "transport"
	ClassUnknown    Class = "unknown"
)

// Classify maps a failure to its origin: local input validation, the image
// codec, an error the generation service reported itself, or the transport
// beneath it. Transport failures keep their status category: a 4xx means
// the request itself was rejected, so it counts as a validation problem;
// 5xx and network failures are transient.
func Classify(err error) Class {
	var validationErr *imaging.ValidationError
	var codecErr *imaging.CodecError
	var serverErr *generator.ServerError
	var transportErr *generator.TransportError

	switch {
	case err == nil:
		return ClassUnknown
	case errors.Is(err, ErrPromptTooShort),
		errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrNoImage),
		errors.Is(err, generator.ErrExactlyOneSource):
		return ClassValidation
	case errors.As(err, &validationErr):
		return ClassValidation
	case errors.As(err, &codecErr):
		return ClassCodec
	case errors.As(err, &serverErr):
		return ClassServer
	case errors.As(err, &transportErr):
		if transportErr.StatusCode >= 400 && transportErr.StatusCode < 500 {
			return ClassValidation
		}
		return ClassTransport
	default:
		return ClassUnknown
	}
}
