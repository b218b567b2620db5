package profile

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/version"
)

//go:embed profiles/*.yaml
var profileFS embed.FS

// Check findings.
var (
	ErrUnknownProfile      = errors.New("unknown profile")
	ErrIncompatibleVersion = errors.New("incompatible profile version")
	ErrMissingSensor       = errors.New("element lacks a sensor required by profile")
)

// VendorProfileBase is the first profile ID outside the SIG-assigned range.
const VendorProfileBase uint16 = 0x8000

// Profile describes one capability profile.
type Profile struct {
	ID      uint16         `yaml:"id"`
	Name    string         `yaml:"name"`
	Short   string         `yaml:"short"`
	Version version.Triple `yaml:"version"`

	// Sensors lists property IDs of which an element needs at least one.
	Sensors []uint16 `yaml:"sensors"`
}

// Satisfied returns true if the property set contains one of the
// profile's sensors, or the profile requires none.
func (p *Profile) Satisfied(props map[sensor.PropertyID]bool) bool {
	if len(p.Sensors) == 0 {
		return true
	}
	for _, id := range p.Sensors {
		if props[sensor.PropertyID(id)] {
			return true
		}
	}
	return false
}

// Catalog is an indexed set of profiles.
type Catalog struct {
	byID map[uint16]*Profile
}

type manifest struct {
	Profiles []*Profile `yaml:"profiles"`
}

// Parse builds a catalog from one or more YAML manifests.
func Parse(docs ...[]byte) (*Catalog, error) {
	c := &Catalog{byID: make(map[uint16]*Profile)}
	for _, data := range docs {
		var m manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse profile manifest: %w", err)
		}
		for _, p := range m.Profiles {
			if _, dup := c.byID[p.ID]; dup {
				return nil, fmt.Errorf("duplicate profile 0x%04X", p.ID)
			}
			c.byID[p.ID] = p
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog. It is parsed once.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		files, err := fs.Glob(profileFS, "profiles/*.yaml")
		if err != nil {
			defaultErr = err
			return
		}
		sort.Strings(files)

		docs := make([][]byte, 0, len(files))
		for _, name := range files {
			data, err := profileFS.ReadFile(name)
			if err != nil {
				defaultErr = err
				return
			}
			docs = append(docs, data)
		}
		defaultCatalog, defaultErr = Parse(docs...)
	})
	return defaultCatalog, defaultErr
}

// Lookup returns the profile with the given ID.
func (c *Catalog) Lookup(id uint16) (*Profile, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Profiles returns all profiles sorted by ID.
func (c *Catalog) Profiles() []*Profile {
	out := make([]*Profile, 0, len(c.byID))
	for _, p := range c.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Name returns the profile's short name, or its ID in hex if unknown.
func (c *Catalog) Name(id uint16) string {
	if p, ok := c.byID[id]; ok {
		return p.Short
	}
	return fmt.Sprintf("0x%04X", id)
}

// Check reports records that name an unknown profile, carry an incompatible
// version or reference an element without a suitable sensor. Records must
// already have passed composition.Validate.
func (c *Catalog) Check(comp *composition.Composition, records []composition.ProfileRecord) []error {
	var findings []error
	for i, r := range records {
		p, ok := c.byID[r.ID]
		if !ok {
			if r.ID < VendorProfileBase {
				findings = append(findings, fmt.Errorf("record %d: %w 0x%04X", i, ErrUnknownProfile, r.ID))
			}
			continue
		}
		if !p.Version.Compatible(r.Version) {
			findings = append(findings, fmt.Errorf("record %d: %w: %s %s, catalog has %s",
				i, ErrIncompatibleVersion, p.Short, r.Version, p.Version))
		}
		for _, off := range r.ElementOffsets {
			el, err := comp.Element(int(off))
			if err != nil {
				findings = append(findings, fmt.Errorf("record %d: %w", i, err))
				continue
			}
			if !p.Satisfied(propertySet(el)) {
				findings = append(findings, fmt.Errorf("record %d: %w %s (element %d)",
					i, ErrMissingSensor, p.Short, off))
			}
		}
	}
	return findings
}

func propertySet(el *composition.Element) map[sensor.PropertyID]bool {
	props := make(map[sensor.PropertyID]bool)
	for _, s := range el.Sensors() {
		props[s.Type().ID] = true
	}
	return props
}
