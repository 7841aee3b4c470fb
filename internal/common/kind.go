package common

import "errors"

// Kind is a coarse error category surfaced to API callers next to the
// generic user-facing message. The underlying cause is only ever logged.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindTransport  Kind = "transport"
	KindUnknown    Kind = "unknown"
)

// KindOf maps err onto a Kind using the sentinel errors of this package.
// A nil error has no kind and yields "".
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrorValidation):
		return KindValidation
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorAlreadyExists), errors.Is(err, ErrorConflict):
		return KindConflict
	case errors.Is(err, ErrorTransport):
		return KindTransport
	default:
		return KindUnknown
	}
}
