package sensor

// MicroPerUnit is the number of micro units in one base unit.
const MicroPerUnit = 1_000_000

// MaxRawSize is the largest raw payload of a single channel in bytes.
const MaxRawSize = 4

// Format describes how one channel is represented on the wire.
//
// A raw value r represents r*Resolution micro units. Raw values are
// little-endian, two's complement when Signed.
type Format struct {
	// Name is the format tag.
	Name string

	// Size is the raw payload size in bytes (1 to MaxRawSize).
	Size int

	// Signed selects two's complement decoding.
	Signed bool

	// Resolution is the number of micro units per raw step.
	Resolution int64

	// Min and Max bound the representable raw range.
	Min int64
	Max int64

	// HasUnknown reports whether Unknown is a reserved "value is not known" marker.
	HasUnknown bool
	Unknown    int64

	// Unit is the base unit symbol, for display only.
	Unit string
}

// valid reports whether the format can encode anything.
func (f *Format) valid() bool {
	return f != nil && f.Size >= 1 && f.Size <= MaxRawSize && f.Resolution > 0 && f.Min <= f.Max
}

// MinMicro returns the smallest representable value in micro units.
func (f *Format) MinMicro() int64 {
	return f.Min * f.Resolution
}

// MaxMicro returns the largest representable value in micro units.
func (f *Format) MaxMicro() int64 {
	return f.Max * f.Resolution
}

// String returns the format tag.
func (f *Format) String() string {
	if f == nil {
		return "<nil>"
	}
	return f.Name
}

// Channel formats used by the built-in sensor types.
var (
	// FormatCount16 is an unsigned 16-bit count; 0xFFFF means unknown.
	FormatCount16 = &Format{
		Name:       "count16",
		Size:       2,
		Resolution: MicroPerUnit,
		Min:        0,
		Max:        0xFFFE,
		HasUnknown: true,
		Unknown:    0xFFFF,
	}

	// FormatTemperature8 is a signed 8-bit temperature in 0.5 °C steps
	// (-64.0 to 63.0 °C); 0x7F means unknown.
	FormatTemperature8 = &Format{
		Name:       "temperature8",
		Size:       1,
		Signed:     true,
		Resolution: 500_000,
		Min:        -128,
		Max:        126,
		HasUnknown: true,
		Unknown:    0x7F,
		Unit:       "°C",
	}

	// FormatTemperature is a signed 16-bit temperature in 0.01 °C steps
	// (-273.15 to 327.67 °C); 0x8000 means unknown.
	FormatTemperature = &Format{
		Name:       "temperature",
		Size:       2,
		Signed:     true,
		Resolution: 10_000,
		Min:        -27315,
		Max:        32767,
		HasUnknown: true,
		Unknown:    -32768,
		Unit:       "°C",
	}

	// FormatPercentage8 is an unsigned 8-bit percentage in 0.5 % steps; 0xFF means unknown.
	FormatPercentage8 = &Format{
		Name:       "percentage8",
		Size:       1,
		Resolution: 500_000,
		Min:        0,
		Max:        200,
		HasUnknown: true,
		Unknown:    0xFF,
		Unit:       "%",
	}

	// FormatMagneticFlux16 is a vendor signed 16-bit flux density in 0.1 µT steps.
	FormatMagneticFlux16 = &Format{
		Name:       "magnetic_flux16",
		Size:       2,
		Signed:     true,
		Resolution: 100_000,
		Min:        -32768,
		Max:        32767,
		Unit:       "µT",
	}
)

var formatsByName = map[string]*Format{
	FormatCount16.Name:        FormatCount16,
	FormatTemperature8.Name:   FormatTemperature8,
	FormatTemperature.Name:    FormatTemperature,
	FormatPercentage8.Name:    FormatPercentage8,
	FormatMagneticFlux16.Name: FormatMagneticFlux16,
}

// FormatByName returns a built-in format by its tag.
func FormatByName(name string) (*Format, bool) {
	f, ok := formatsByName[name]
	return f, ok
}
