package sensor

import (
	"context"
	"fmt"
)

// MsgContext carries the addressing of an inbound query.
type MsgContext struct {
	// Src is the unicast address of the querying node.
	Src uint16

	// Dst is the destination address the query was sent to.
	Dst uint16

	// Element is the index of the addressed element.
	Element uint8

	// TID correlates the query with its reply.
	TID uint32
}

// Sensor is one logical sensor exposed by a sensor server model.
//
// Get is called synchronously from the stack's processing context and must
// return without blocking.
type Sensor interface {
	// Type returns the sensor's semantic type.
	Type() *Type

	// Get produces and encodes a fresh value.
	Get(ctx context.Context, msg *MsgContext) (Value, error)
}

// PeopleCountRange is the number of distinct simulated occupancy counts (0 to 99).
const PeopleCountRange = 100

// PeopleCount is a stub occupancy sensor reporting a uniformly drawn count.
type PeopleCount struct {
	Source  RandSource
	Encoder *Encoder
}

// NewPeopleCount creates a people count sensor drawing from src.
func NewPeopleCount(src RandSource, enc *Encoder) *PeopleCount {
	return &PeopleCount{Source: src, Encoder: enc}
}

// Type returns TypePeopleCount.
func (s *PeopleCount) Type() *Type {
	return TypePeopleCount
}

// Sample draws a count in [0, PeopleCountRange-1] as Uint32() modulo
// PeopleCountRange, so low counts are very slightly more likely
// (2^32 is not a multiple of 100).
func (s *PeopleCount) Sample() uint32 {
	return s.Source.Uint32() % PeopleCountRange
}

// Get draws a count and encodes it.
func (s *PeopleCount) Get(_ context.Context, _ *MsgContext) (Value, error) {
	count := s.Sample()
	s.Encoder.debugLog("simulated people count", "value", count)

	v, err := s.Encoder.Encode(TypePeopleCount.Format(), BaseToMicro(int64(count)))
	if err != nil {
		return Value{}, fmt.Errorf("encode people count: %w", err)
	}
	return v, nil
}

// Temperature reports the present ambient temperature in °C.
type Temperature struct {
	Source  SampleSource
	Encoder *Encoder
}

// NewTemperature creates a temperature sensor reading from src.
func NewTemperature(src SampleSource, enc *Encoder) *Temperature {
	return &Temperature{Source: src, Encoder: enc}
}

// Type returns TypePresentAmbientTemperature.
func (s *Temperature) Type() *Type {
	return TypePresentAmbientTemperature
}

// Get reads a sample and encodes it.
func (s *Temperature) Get(ctx context.Context, _ *MsgContext) (Value, error) {
	return sampleAndEncode(ctx, s.Source, s.Encoder, TypePresentAmbientTemperature)
}

// Axis selects one axis of a magnetometer.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis name.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "UNKNOWN"
	}
}

// MagneticField reports one axis of the magnetic flux density in µT.
type MagneticField struct {
	Axis    Axis
	Source  SampleSource
	Encoder *Encoder
}

// NewMagneticField creates a magnetic field sensor for one axis.
func NewMagneticField(axis Axis, src SampleSource, enc *Encoder) *MagneticField {
	return &MagneticField{Axis: axis, Source: src, Encoder: enc}
}

// Type returns the vendor type of the configured axis.
func (s *MagneticField) Type() *Type {
	switch s.Axis {
	case AxisY:
		return TypeMagneticFieldY
	case AxisZ:
		return TypeMagneticFieldZ
	default:
		return TypeMagneticFieldX
	}
}

// Get reads a sample and encodes it.
func (s *MagneticField) Get(ctx context.Context, _ *MsgContext) (Value, error) {
	return sampleAndEncode(ctx, s.Source, s.Encoder, s.Type())
}

func sampleAndEncode(ctx context.Context, src SampleSource, enc *Encoder, t *Type) (Value, error) {
	sample, err := src.Sample(ctx)
	if err != nil {
		return Value{}, fmt.Errorf("read %s: %w: %w", t.Name, ErrTransient, err)
	}
	enc.debugLog("sensor sample", "type", t.Name, "value", sample)

	micro, err := FloatToMicro(sample)
	if err != nil {
		return Value{}, fmt.Errorf("encode %s: %w", t.Name, err)
	}
	v, err := enc.Encode(t.Format(), micro)
	if err != nil {
		return Value{}, fmt.Errorf("encode %s: %w", t.Name, err)
	}
	return v, nil
}

// Compile-time interface satisfaction checks.
var (
	_ Sensor = (*PeopleCount)(nil)
	_ Sensor = (*Temperature)(nil)
	_ Sensor = (*MagneticField)(nil)
)
