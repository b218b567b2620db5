package wire

// Operation represents a sensor server operation.
type Operation uint8

const (
	// OpGet reads the current value of one sensor, or all sensors when
	// the property ID is 0.
	OpGet Operation = 1

	// OpDescriptorGet lists the sensors of an element.
	OpDescriptorGet Operation = 2
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpGet:
		return "Get"
	case OpDescriptorGet:
		return "DescriptorGet"
	default:
		return "Unknown"
	}
}

// IsValid returns true if the operation is a known operation.
func (o Operation) IsValid() bool {
	return o >= OpGet && o <= OpDescriptorGet
}
