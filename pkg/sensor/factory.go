package sensor

import "fmt"

// Source names understood by Factory.
const (
	SourceRandom    = "random"
	SourceSimulated = "simulated"
)

// Factory builds sensors from configuration names.
type Factory struct {
	// Rand drives stub sensors and simulated sources.
	Rand RandSource

	// Sources maps additional source names to sample sources
	// (hardware readers, fixed test values).
	Sources map[string]SampleSource

	// Encoder is shared by all built sensors.
	Encoder *Encoder
}

// NewFactory creates a factory drawing from rng.
func NewFactory(rng RandSource, enc *Encoder) *Factory {
	return &Factory{
		Rand:    rng,
		Sources: make(map[string]SampleSource),
		Encoder: enc,
	}
}

// Register adds a named sample source.
func (f *Factory) Register(name string, src SampleSource) {
	if f.Sources == nil {
		f.Sources = make(map[string]SampleSource)
	}
	f.Sources[name] = src
}

// New builds a sensor of the named type bound to the named source.
// An empty source name selects the type's default source.
func (f *Factory) New(typeName, sourceName string) (Sensor, error) {
	t, ok := TypeByName(typeName)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}

	switch t {
	case TypePeopleCount:
		if sourceName != "" && sourceName != SourceRandom {
			return nil, fmt.Errorf("%w: %q for %s", ErrUnknownSource, sourceName, t.Name)
		}
		return NewPeopleCount(f.Rand, f.Encoder), nil

	case TypePresentAmbientTemperature:
		src, err := f.source(sourceName, func() SampleSource {
			return NewRandomWalk(f.Rand, 21, 0.5, -10, 40)
		})
		if err != nil {
			return nil, err
		}
		return NewTemperature(src, f.Encoder), nil

	case TypeMagneticFieldX, TypeMagneticFieldY, TypeMagneticFieldZ:
		src, err := f.source(sourceName, func() SampleSource {
			return NewRandomWalk(f.Rand, 0, 2, -100, 100)
		})
		if err != nil {
			return nil, err
		}
		axis := Axis(t.ID - PropertyMagneticFieldX)
		return NewMagneticField(axis, src, f.Encoder), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
}

func (f *Factory) source(name string, simulated func() SampleSource) (SampleSource, error) {
	if name == "" || name == SourceSimulated {
		return simulated(), nil
	}
	if src, ok := f.Sources[name]; ok {
		return src, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
}
