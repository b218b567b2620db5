package composition

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/meshsense/meshsense-go/pkg/sensor"
)

// Read path errors.
var (
	ErrElementNotFound = errors.New("element not found")
	ErrSensorNotFound  = errors.New("sensor not found")
)

// DefaultCompanyID is used when a configuration leaves the company id unset.
const DefaultCompanyID uint16 = 0x0059

// ModelID identifies a model type within an element.
type ModelID uint16

// ModelSensorServer is the SIG sensor server model.
const ModelSensorServer ModelID = 0x1100

// String returns the model name.
func (m ModelID) String() string {
	if m == ModelSensorServer {
		return "SensorServer"
	}
	return fmt.Sprintf("Model(0x%04X)", uint16(m))
}

// Composition is the node's immutable composition descriptor.
type Composition struct {
	companyID uint16
	productID uint16
	versionID uint16
	elements  []*Element
}

// CompanyID returns the company identifier.
func (c *Composition) CompanyID() uint16 {
	return c.companyID
}

// ProductID returns the product identifier.
func (c *Composition) ProductID() uint16 {
	return c.productID
}

// VersionID returns the product version identifier.
func (c *Composition) VersionID() uint16 {
	return c.versionID
}

// ElementCount returns the number of elements.
func (c *Composition) ElementCount() int {
	return len(c.elements)
}

// Elements returns the elements in index order.
func (c *Composition) Elements() []*Element {
	out := make([]*Element, len(c.elements))
	copy(out, c.elements)
	return out
}

// Element returns the element at index i.
func (c *Composition) Element(i int) (*Element, error) {
	if i < 0 || i >= len(c.elements) {
		return nil, fmt.Errorf("%w: %d", ErrElementNotFound, i)
	}
	return c.elements[i], nil
}

// FindSensor returns the model and sensor answering propertyID on an element.
func (c *Composition) FindSensor(element int, propertyID sensor.PropertyID) (*Model, sensor.Sensor, error) {
	el, err := c.Element(element)
	if err != nil {
		return nil, nil, err
	}
	for _, m := range el.models {
		if s, ok := m.Sensor(propertyID); ok {
			return m, s, nil
		}
	}
	return nil, nil, fmt.Errorf("%w: %s on element %d", ErrSensorNotFound, propertyID, element)
}

// Element is an addressable position on the node.
type Element struct {
	index    uint8
	location uint16
	models   []*Model
}

// Index returns the element offset within the composition.
func (e *Element) Index() uint8 {
	return e.index
}

// Location returns the GATT namespace location descriptor (0 when unknown).
func (e *Element) Location() uint16 {
	return e.location
}

// Models returns the element's models in order.
func (e *Element) Models() []*Model {
	out := make([]*Model, len(e.models))
	copy(out, e.models)
	return out
}

// Sensors returns every sensor on the element across all its models.
func (e *Element) Sensors() []sensor.Sensor {
	var out []sensor.Sensor
	for _, m := range e.models {
		out = append(out, m.sensors...)
	}
	return out
}

// Model is a sensor server model owning a fixed list of sensors.
type Model struct {
	id      ModelID
	sensors []sensor.Sensor
	cells   []*Cell
	index   map[sensor.PropertyID]int
}

// ID returns the model identifier.
func (m *Model) ID() ModelID {
	return m.id
}

// Sensors returns the model's sensors in registration order.
func (m *Model) Sensors() []sensor.Sensor {
	out := make([]sensor.Sensor, len(m.sensors))
	copy(out, m.sensors)
	return out
}

// Sensor returns the sensor with the given property ID.
func (m *Model) Sensor(propertyID sensor.PropertyID) (sensor.Sensor, bool) {
	i, ok := m.index[propertyID]
	if !ok {
		return nil, false
	}
	return m.sensors[i], true
}

// Cell returns the last-value cell of the sensor with the given property ID.
func (m *Model) Cell(propertyID sensor.PropertyID) (*Cell, bool) {
	i, ok := m.index[propertyID]
	if !ok {
		return nil, false
	}
	return m.cells[i], true
}

// Get queries one sensor and records the result in its cell.
func (m *Model) Get(ctx context.Context, msg *sensor.MsgContext, propertyID sensor.PropertyID) (sensor.Value, error) {
	i, ok := m.index[propertyID]
	if !ok {
		return sensor.Value{}, fmt.Errorf("%w: %s", ErrSensorNotFound, propertyID)
	}

	v, err := m.sensors[i].Get(ctx, msg)
	if err != nil {
		return sensor.Value{}, err
	}
	m.cells[i].Store(v)
	return v, nil
}

// Reading is a value stored in a Cell with the time it was produced.
type Reading struct {
	Value sensor.Value
	At    time.Time
}

// Cell holds the last value produced by one sensor.
type Cell struct {
	last atomic.Pointer[Reading]
}

// Store records v as the latest reading.
func (c *Cell) Store(v sensor.Value) {
	c.last.Store(&Reading{Value: v, At: time.Now()})
}

// Load returns the latest reading, if any query has succeeded yet.
func (c *Cell) Load() (Reading, bool) {
	r := c.last.Load()
	if r == nil {
		return Reading{}, false
	}
	return *r, true
}
