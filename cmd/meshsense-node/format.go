package main

import (
	"encoding/hex"
	"fmt"

	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/service"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

func propertyName(id uint16) string {
	if t, ok := sensor.TypeByID(sensor.PropertyID(id)); ok {
		return t.Name
	}
	return fmt.Sprintf("0x%04X", id)
}

func formatValue(d wire.SensorData) string {
	v, err := service.DecodeSensorData(d)
	if err != nil {
		return hex.EncodeToString(d.Raw)
	}
	return v.String()
}
