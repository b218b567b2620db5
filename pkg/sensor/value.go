package sensor

import (
	"fmt"
	"strconv"
)

// Value is an encoded sensor channel value.
type Value struct {
	// Format is the channel format the payload is encoded in.
	Format *Format

	// Raw holds the little-endian payload in its first Format.Size bytes.
	Raw [MaxRawSize]byte

	// Clamped is set when the sample was saturated to the format's range.
	Clamped bool
}

// Bytes returns the wire payload.
func (v Value) Bytes() []byte {
	if !v.Format.valid() {
		return nil
	}
	b := make([]byte, v.Format.Size)
	copy(b, v.Raw[:v.Format.Size])
	return b
}

// ValueFromBytes rebuilds a Value from a wire payload.
func ValueFromBytes(f *Format, b []byte) (Value, error) {
	if !f.valid() {
		return Value{}, fmt.Errorf("%w: invalid format %s", ErrValueRepresentation, f)
	}
	if len(b) != f.Size {
		return Value{}, fmt.Errorf("%w: %s payload is %d bytes, want %d", ErrValueRepresentation, f.Name, len(b), f.Size)
	}
	v := Value{Format: f}
	copy(v.Raw[:], b)
	return v, nil
}

// RawInt returns the raw integer of the payload.
func (v Value) RawInt() (int64, error) {
	if !v.Format.valid() {
		return 0, fmt.Errorf("%w: invalid format %s", ErrValueRepresentation, v.Format)
	}
	return readRaw(v.Raw[:v.Format.Size], v.Format.Signed), nil
}

// IsUnknown reports whether the payload is the format's unknown marker.
func (v Value) IsUnknown() bool {
	raw, err := v.RawInt()
	return err == nil && v.Format.HasUnknown && raw == v.Format.Unknown
}

// Micro decodes the payload to micro units.
func (v Value) Micro() (int64, error) {
	raw, err := v.RawInt()
	if err != nil {
		return 0, err
	}
	if v.Format.HasUnknown && raw == v.Format.Unknown {
		return 0, ErrValueUnknown
	}
	return raw * v.Format.Resolution, nil
}

// Float decodes the payload to base units.
func (v Value) Float() (float64, error) {
	micro, err := v.Micro()
	if err != nil {
		return 0, err
	}
	return float64(micro) / MicroPerUnit, nil
}

// String returns a human-readable representation.
func (v Value) String() string {
	if v.Format == nil {
		return "<empty>"
	}
	f, err := v.Float()
	if err == ErrValueUnknown {
		return "unknown"
	}
	if err != nil {
		return "<invalid>"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if v.Format.Unit != "" {
		s += " " + v.Format.Unit
	}
	if v.Clamped {
		s += " (clamped)"
	}
	return s
}
