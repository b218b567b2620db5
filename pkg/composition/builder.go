package composition

import (
	"errors"
	"fmt"
	"math"

	"github.com/meshsense/meshsense-go/pkg/sensor"
)

// Configuration errors. Any of these is fatal to node initialization.
var (
	ErrNoElements           = errors.New("composition has no elements")
	ErrTooManyElements      = errors.New("too many elements")
	ErrEmptyModel           = errors.New("model has no sensors")
	ErrNilSensor            = errors.New("nil sensor")
	ErrDuplicateProperty    = errors.New("duplicate property ID in model")
	ErrInvalidElementOffset = errors.New("profile references missing element")
	ErrPayloadTooLarge      = errors.New("profile payload too large")
)

// MaxElements is the largest element count a profile record can address.
const MaxElements = math.MaxUint8 + 1

// Config is the static description a composition is built from.
type Config struct {
	CompanyID uint16
	ProductID uint16
	VersionID uint16
	Elements  []ElementConfig
	Profiles  []ProfileRecord
}

// ElementConfig describes one element.
type ElementConfig struct {
	Location uint16
	Models   []ModelConfig
}

// ModelConfig describes one sensor server model.
type ModelConfig struct {
	Sensors []sensor.Sensor
}

// Build assembles a composition from cfg. It has no side effects and
// validates the whole tree, including the profile records' element offsets.
func Build(cfg Config) (*Composition, error) {
	if len(cfg.Elements) == 0 {
		return nil, ErrNoElements
	}
	if len(cfg.Elements) > MaxElements {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyElements, len(cfg.Elements), MaxElements)
	}
	if err := checkRecords(cfg.Profiles, len(cfg.Elements)); err != nil {
		return nil, err
	}

	companyID := cfg.CompanyID
	if companyID == 0 {
		companyID = DefaultCompanyID
	}

	comp := &Composition{
		companyID: companyID,
		productID: cfg.ProductID,
		versionID: cfg.VersionID,
		elements:  make([]*Element, 0, len(cfg.Elements)),
	}

	for i, ec := range cfg.Elements {
		el := &Element{
			index:    uint8(i),
			location: ec.Location,
			models:   make([]*Model, 0, len(ec.Models)),
		}
		for j, mc := range ec.Models {
			m, err := buildModel(mc)
			if err != nil {
				return nil, fmt.Errorf("element %d model %d: %w", i, j, err)
			}
			el.models = append(el.models, m)
		}
		comp.elements = append(comp.elements, el)
	}

	return comp, nil
}

func buildModel(mc ModelConfig) (*Model, error) {
	if len(mc.Sensors) == 0 {
		return nil, ErrEmptyModel
	}

	m := &Model{
		id:      ModelSensorServer,
		sensors: make([]sensor.Sensor, 0, len(mc.Sensors)),
		cells:   make([]*Cell, 0, len(mc.Sensors)),
		index:   make(map[sensor.PropertyID]int, len(mc.Sensors)),
	}
	for k, s := range mc.Sensors {
		if s == nil || s.Type() == nil {
			return nil, fmt.Errorf("sensor %d: %w", k, ErrNilSensor)
		}
		id := s.Type().ID
		if _, dup := m.index[id]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateProperty, id)
		}
		m.index[id] = len(m.sensors)
		m.sensors = append(m.sensors, s)
		m.cells = append(m.cells, &Cell{})
	}
	return m, nil
}

// BuildProfileRecords derives the profile record table from cfg.
// Every element offset must be smaller than the configured element count.
func BuildProfileRecords(cfg Config) ([]ProfileRecord, error) {
	if err := checkRecords(cfg.Profiles, len(cfg.Elements)); err != nil {
		return nil, err
	}

	out := make([]ProfileRecord, len(cfg.Profiles))
	for i, r := range cfg.Profiles {
		out[i] = r.clone()
	}
	return out, nil
}

// Validate checks a record table against a built composition.
func Validate(comp *Composition, records []ProfileRecord) error {
	return checkRecords(records, comp.ElementCount())
}

func checkRecords(records []ProfileRecord, elementCount int) error {
	for i, r := range records {
		for _, off := range r.ElementOffsets {
			if int(off) >= elementCount {
				return fmt.Errorf("%w: record %d (profile 0x%04X) offset %d, element count %d",
					ErrInvalidElementOffset, i, r.ID, off, elementCount)
			}
		}
		if len(r.Data) > math.MaxUint16 {
			return fmt.Errorf("%w: record %d (profile 0x%04X) has %d bytes",
				ErrPayloadTooLarge, i, r.ID, len(r.Data))
		}
	}
	return nil
}
