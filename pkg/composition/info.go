package composition

import (
	"github.com/meshsense/meshsense-go/pkg/wire"
)

// DescriptorInfo is a serializable snapshot of a composition.
type DescriptorInfo struct {
	CompanyID uint16        `cbor:"1,keyasint" yaml:"company_id"`
	ProductID uint16        `cbor:"2,keyasint" yaml:"product_id"`
	VersionID uint16        `cbor:"3,keyasint" yaml:"version_id"`
	Elements  []ElementInfo `cbor:"4,keyasint" yaml:"elements"`
}

// ElementInfo describes one element in a DescriptorInfo.
type ElementInfo struct {
	Index    uint8       `cbor:"1,keyasint" yaml:"index"`
	Location uint16      `cbor:"2,keyasint,omitempty" yaml:"location,omitempty"`
	Models   []ModelInfo `cbor:"3,keyasint" yaml:"models"`
}

// ModelInfo describes one model in a DescriptorInfo.
type ModelInfo struct {
	ID      uint16       `cbor:"1,keyasint" yaml:"id"`
	Sensors []SensorInfo `cbor:"2,keyasint" yaml:"sensors"`
}

// SensorInfo describes one sensor in a DescriptorInfo.
type SensorInfo struct {
	PropertyID uint16 `cbor:"1,keyasint" yaml:"property_id"`
	Name       string `cbor:"2,keyasint" yaml:"name"`
	Format     string `cbor:"3,keyasint" yaml:"format"`
}

// Info returns a snapshot of the composition tree.
func (c *Composition) Info() DescriptorInfo {
	info := DescriptorInfo{
		CompanyID: c.companyID,
		ProductID: c.productID,
		VersionID: c.versionID,
		Elements:  make([]ElementInfo, 0, len(c.elements)),
	}
	for _, el := range c.elements {
		ei := ElementInfo{Index: el.index, Location: el.location}
		for _, m := range el.models {
			mi := ModelInfo{ID: uint16(m.id)}
			for _, s := range m.sensors {
				t := s.Type()
				si := SensorInfo{PropertyID: uint16(t.ID), Name: t.Name}
				if f := t.Format(); f != nil {
					si.Format = f.Name
				}
				mi.Sensors = append(mi.Sensors, si)
			}
			ei.Models = append(ei.Models, mi)
		}
		info.Elements = append(info.Elements, ei)
	}
	return info
}

// EncodeInfo returns the CBOR encoding of Info.
func (c *Composition) EncodeInfo() ([]byte, error) {
	return wire.Marshal(c.Info())
}

// DecodeInfo parses a CBOR-encoded DescriptorInfo.
func DecodeInfo(data []byte) (DescriptorInfo, error) {
	var info DescriptorInfo
	err := wire.Unmarshal(data, &info)
	return info, err
}
