package composition

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/version"
)

// FileConfig is the YAML form of a node configuration.
//
// Example:
//
//	company_id: 0x0059
//	elements:
//	  - location: 0
//	    models:
//	      - sensors:
//	          - type: people_count
//	profiles:
//	  - id: 0x1605
//	    version: "1.0.0"
//	    elements: [0]
type FileConfig struct {
	Name      string        `yaml:"name,omitempty"`
	CompanyID uint16        `yaml:"company_id,omitempty"`
	ProductID uint16        `yaml:"product_id,omitempty"`
	VersionID uint16        `yaml:"version_id,omitempty"`
	Elements  []FileElement `yaml:"elements"`
	Profiles  []FileProfile `yaml:"profiles,omitempty"`
}

// FileElement is the YAML form of ElementConfig.
type FileElement struct {
	Location uint16      `yaml:"location,omitempty"`
	Models   []FileModel `yaml:"models"`
}

// FileModel is the YAML form of ModelConfig.
type FileModel struct {
	Sensors []FileSensor `yaml:"sensors"`
}

// FileSensor names a sensor type and its sample source.
type FileSensor struct {
	Type   string `yaml:"type"`
	Source string `yaml:"source,omitempty"`
}

// FileProfile is the YAML form of ProfileRecord. Data is hex encoded.
type FileProfile struct {
	ID       uint16         `yaml:"id"`
	Version  version.Triple `yaml:"version"`
	Elements []uint8        `yaml:"elements"`
	Data     string         `yaml:"data,omitempty"`
}

// ParseFileConfig decodes a YAML node configuration. Unknown keys are rejected.
func ParseFileConfig(data []byte) (*FileConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var fc FileConfig
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("parse node config: %w", err)
	}
	return &fc, nil
}

// LoadFile reads and parses a YAML node configuration file.
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read node config: %w", err)
	}
	return ParseFileConfig(data)
}

// Resolve turns the file configuration into a Config, building sensors
// with factory.
func (fc *FileConfig) Resolve(factory *sensor.Factory) (Config, error) {
	cfg := Config{
		CompanyID: fc.CompanyID,
		ProductID: fc.ProductID,
		VersionID: fc.VersionID,
		Elements:  make([]ElementConfig, 0, len(fc.Elements)),
		Profiles:  make([]ProfileRecord, 0, len(fc.Profiles)),
	}

	for i, fe := range fc.Elements {
		ec := ElementConfig{Location: fe.Location}
		for j, fm := range fe.Models {
			var mc ModelConfig
			for k, fs := range fm.Sensors {
				s, err := factory.New(fs.Type, fs.Source)
				if err != nil {
					return Config{}, fmt.Errorf("element %d model %d sensor %d: %w", i, j, k, err)
				}
				mc.Sensors = append(mc.Sensors, s)
			}
			ec.Models = append(ec.Models, mc)
		}
		cfg.Elements = append(cfg.Elements, ec)
	}

	for i, fp := range fc.Profiles {
		r := ProfileRecord{
			ID:             fp.ID,
			Version:        fp.Version,
			ElementOffsets: append([]uint8(nil), fp.Elements...),
		}
		if fp.Data != "" {
			data, err := hex.DecodeString(fp.Data)
			if err != nil {
				return Config{}, fmt.Errorf("profile %d data: %w", i, err)
			}
			r.Data = data
		}
		cfg.Profiles = append(cfg.Profiles, r)
	}

	return cfg, nil
}
