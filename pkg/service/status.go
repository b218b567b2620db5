package service

import (
	"errors"
	"fmt"

	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

// StatusOf maps a query error onto a wire status.
func StatusOf(err error) wire.Status {
	switch {
	case err == nil:
		return wire.StatusSuccess
	case errors.Is(err, composition.ErrElementNotFound):
		return wire.StatusInvalidElement
	case errors.Is(err, composition.ErrSensorNotFound):
		return wire.StatusInvalidProperty
	case errors.Is(err, sensor.ErrTransient):
		return wire.StatusTransientFailure
	case errors.Is(err, sensor.ErrValueRepresentation), errors.Is(err, sensor.ErrValueUnknown):
		return wire.StatusValueRepresentation
	case errors.Is(err, sensor.ErrOutOfRange):
		return wire.StatusOutOfRange
	case errors.Is(err, ErrNotAttached), errors.Is(err, ErrUnsupported):
		return wire.StatusUnsupported
	default:
		return wire.StatusFailure
	}
}

// SensorData converts an encoded value to its wire form.
func SensorData(id sensor.PropertyID, v sensor.Value) wire.SensorData {
	return wire.SensorData{
		PropertyID: uint16(id),
		Format:     v.Format.String(),
		Raw:        v.Bytes(),
		Clamped:    v.Clamped,
	}
}

// DecodeSensorData reverses SensorData for formats known to this node.
func DecodeSensorData(d wire.SensorData) (sensor.Value, error) {
	f, ok := sensor.FormatByName(d.Format)
	if !ok {
		return sensor.Value{}, fmt.Errorf("%w: unknown format %q", sensor.ErrValueRepresentation, d.Format)
	}
	v, err := sensor.ValueFromBytes(f, d.Raw)
	if err != nil {
		return sensor.Value{}, err
	}
	v.Clamped = d.Clamped
	return v, nil
}
