package sensor

import "fmt"

// PropertyID identifies a sensor type on the wire.
type PropertyID uint16

// PropertyVendorBase is the start of the vendor property range used here.
const PropertyVendorBase PropertyID = 0x4A00

// Property IDs of the built-in sensor types.
const (
	// PropertyProhibited is never assigned; a query for it selects all sensors.
	PropertyProhibited PropertyID = 0x0000

	PropertyPeopleCount               PropertyID = 0x004C
	PropertyPresentAmbientTemperature PropertyID = 0x004F

	PropertyMagneticFieldX PropertyID = 0x4A01
	PropertyMagneticFieldY PropertyID = 0x4A02
	PropertyMagneticFieldZ PropertyID = 0x4A03
)

// IsVendor returns true if the property lies in the vendor range.
func (p PropertyID) IsVendor() bool {
	return p >= PropertyVendorBase && p <= PropertyVendorBase+0xFF
}

// String returns the property ID in hex.
func (p PropertyID) String() string {
	return fmt.Sprintf("0x%04X", uint16(p))
}

// Channel is one value channel of a sensor type.
type Channel struct {
	Name   string
	Format *Format
}

// Type is the semantic type of a sensor: its property ID and channel layout.
type Type struct {
	ID       PropertyID
	Name     string
	Channels []Channel
}

// ChannelCount returns the number of channels.
func (t *Type) ChannelCount() int {
	return len(t.Channels)
}

// Format returns the format of channel 0.
func (t *Type) Format() *Format {
	if len(t.Channels) == 0 {
		return nil
	}
	return t.Channels[0].Format
}

// Built-in sensor types.
var (
	TypePeopleCount = &Type{
		ID:       PropertyPeopleCount,
		Name:     "people_count",
		Channels: []Channel{{Name: "People Count", Format: FormatCount16}},
	}

	TypePresentAmbientTemperature = &Type{
		ID:       PropertyPresentAmbientTemperature,
		Name:     "temperature",
		Channels: []Channel{{Name: "Present Ambient Temperature", Format: FormatTemperature8}},
	}

	TypeMagneticFieldX = &Type{
		ID:       PropertyMagneticFieldX,
		Name:     "magnetic_x",
		Channels: []Channel{{Name: "Magnetic Field X", Format: FormatMagneticFlux16}},
	}

	TypeMagneticFieldY = &Type{
		ID:       PropertyMagneticFieldY,
		Name:     "magnetic_y",
		Channels: []Channel{{Name: "Magnetic Field Y", Format: FormatMagneticFlux16}},
	}

	TypeMagneticFieldZ = &Type{
		ID:       PropertyMagneticFieldZ,
		Name:     "magnetic_z",
		Channels: []Channel{{Name: "Magnetic Field Z", Format: FormatMagneticFlux16}},
	}
)

var builtinTypes = []*Type{
	TypePeopleCount,
	TypePresentAmbientTemperature,
	TypeMagneticFieldX,
	TypeMagneticFieldY,
	TypeMagneticFieldZ,
}

// Types returns all built-in sensor types.
func Types() []*Type {
	out := make([]*Type, len(builtinTypes))
	copy(out, builtinTypes)
	return out
}

// TypeByName returns a built-in type by name.
func TypeByName(name string) (*Type, bool) {
	for _, t := range builtinTypes {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// TypeByID returns a built-in type by property ID.
func TypeByID(id PropertyID) (*Type, bool) {
	for _, t := range builtinTypes {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}
