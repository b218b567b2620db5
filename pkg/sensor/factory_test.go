package sensor

import (
	"context"
	"errors"
	"testing"
)

func TestFactoryNew(t *testing.T) {
	f := NewFactory(NewSequence(7), nil)
	f.Register("fixed", Constant(22.5))

	tests := []struct {
		name     string
		typeName string
		source   string
		wantType *Type
		wantErr  error
	}{
		{"people count default", "people_count", "", TypePeopleCount, nil},
		{"people count random", "people_count", SourceRandom, TypePeopleCount, nil},
		{"temperature simulated", "temperature", "", TypePresentAmbientTemperature, nil},
		{"temperature fixed", "temperature", "fixed", TypePresentAmbientTemperature, nil},
		{"magnetic z", "magnetic_z", SourceSimulated, TypeMagneticFieldZ, nil},
		{"unknown type", "humidity", "", nil, ErrUnknownType},
		{"unknown source", "temperature", "bme680", nil, ErrUnknownSource},
		{"people count rejects sample source", "people_count", "fixed", nil, ErrUnknownSource},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := f.New(tt.typeName, tt.source)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if s.Type() != tt.wantType {
				t.Errorf("Type() = %s, want %s", s.Type().Name, tt.wantType.Name)
			}
		})
	}
}

func TestFactoryBindsNamedSource(t *testing.T) {
	f := NewFactory(NewSequence(), nil)
	f.Register("fixed", Constant(22.5))

	s, err := f.New("temperature", "fixed")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	v, err := s.Get(context.Background(), nil)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got, _ := v.Float(); got != 22.5 {
		t.Errorf("Get() = %v, want 22.5", got)
	}
}

func TestFactoryRegisterOnZeroValue(t *testing.T) {
	var f Factory
	f.Rand = NewSequence(3)
	f.Register("probe", Constant(1))

	s, err := f.New("magnetic_x", "probe")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if mf, ok := s.(*MagneticField); !ok || mf.Axis != AxisX {
		t.Errorf("New() = %#v, want X axis magnetic field", s)
	}
}
