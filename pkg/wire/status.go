package wire

// Status represents a response status code.
type Status uint8

const (
	// StatusSuccess indicates the operation completed successfully.
	StatusSuccess Status = 0

	// StatusInvalidElement indicates the element doesn't exist.
	StatusInvalidElement Status = 1

	// StatusInvalidProperty indicates no sensor with that property ID exists on the element.
	StatusInvalidProperty Status = 2

	// StatusInvalidParameter indicates a malformed request.
	StatusInvalidParameter Status = 3

	// StatusTransientFailure indicates the sample source failed; try again later.
	StatusTransientFailure Status = 4

	// StatusValueRepresentation indicates the value could not be encoded.
	StatusValueRepresentation Status = 5

	// StatusOutOfRange indicates the value exceeded the format's range
	// and the node is configured to reject it.
	StatusOutOfRange Status = 6

	// StatusUnsupported indicates the operation is not supported.
	StatusUnsupported Status = 7

	// StatusFailure is the generic failure for anything else.
	StatusFailure Status = 8
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusInvalidElement:
		return "INVALID_ELEMENT"
	case StatusInvalidProperty:
		return "INVALID_PROPERTY"
	case StatusInvalidParameter:
		return "INVALID_PARAMETER"
	case StatusTransientFailure:
		return "TRANSIENT_FAILURE"
	case StatusValueRepresentation:
		return "VALUE_REPRESENTATION"
	case StatusOutOfRange:
		return "OUT_OF_RANGE"
	case StatusUnsupported:
		return "UNSUPPORTED"
	case StatusFailure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// IsSuccess returns true if the status indicates success.
func (s Status) IsSuccess() bool {
	return s == StatusSuccess
}

// IsError returns true if the status indicates an error.
func (s Status) IsError() bool {
	return s != StatusSuccess
}

// IsRetryable returns true if repeating the request may succeed.
func (s Status) IsRetryable() bool {
	return s == StatusTransientFailure
}
