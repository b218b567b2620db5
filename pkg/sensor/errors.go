package sensor

import "errors"

// Sensor query errors. This is the closed set a query can fail with.
var (
	// ErrTransient indicates the sample source failed; a later query may succeed.
	ErrTransient = errors.New("transient sensor failure")

	// ErrOutOfRange indicates the value was saturated to the format's range.
	ErrOutOfRange = errors.New("value out of representable range")

	// ErrValueRepresentation indicates the value cannot be encoded at all.
	ErrValueRepresentation = errors.New("value representation failure")

	// ErrValueUnknown indicates the payload holds the format's "unknown" marker.
	ErrValueUnknown = errors.New("value is not known")
)

// Factory errors.
var (
	ErrUnknownType   = errors.New("unknown sensor type")
	ErrUnknownSource = errors.New("unknown sample source")
)

// Code is a stable identifier for a query error.
// It is comparable and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Query error codes.
const (
	CodeOK             Code = "ok"
	CodeTransient      Code = "transient_failure"
	CodeOutOfRange     Code = "out_of_range"
	CodeRepresentation Code = "value_representation"
	CodeUnknown        Code = "value_unknown"
	CodeError          Code = "error"
)

// CodeOf maps an error onto its Code, defaulting to CodeError.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrTransient):
		return CodeTransient
	case errors.Is(err, ErrOutOfRange):
		return CodeOutOfRange
	case errors.Is(err, ErrValueRepresentation):
		return CodeRepresentation
	case errors.Is(err, ErrValueUnknown):
		return CodeUnknown
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return CodeError
}
