package examples

import (
	"context"
	"testing"

	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/profile"
	"github.com/meshsense/meshsense-go/pkg/sensor"
)

func TestPresets(t *testing.T) {
	got := Presets()
	want := []string{"environment", "occupancy"}
	if len(got) != len(want) {
		t.Fatalf("Presets() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Presets()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestOccupancyPreset(t *testing.T) {
	factory := sensor.NewFactory(sensor.NewSequence(0, 99, 250), nil)

	cfg, err := Node("occupancy", factory)
	if err != nil {
		t.Fatalf("Node() error = %v", err)
	}

	comp, err := composition.Build(cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if comp.ElementCount() != 1 {
		t.Errorf("ElementCount() = %d, want 1", comp.ElementCount())
	}
	if comp.CompanyID() != 0x0059 {
		t.Errorf("CompanyID() = 0x%04X, want 0x0059", comp.CompanyID())
	}

	records, err := composition.BuildProfileRecords(cfg)
	if err != nil {
		t.Fatalf("BuildProfileRecords() error = %v", err)
	}
	if len(records) != 1 || records[0].ID != 0x1605 {
		t.Fatalf("records = %+v, want one occupancy record", records)
	}
	if err := composition.Validate(comp, records); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	m, _, err := comp.FindSensor(0, sensor.PropertyPeopleCount)
	if err != nil {
		t.Fatalf("FindSensor() error = %v", err)
	}
	for _, want := range []float64{0, 99, 50} {
		v, err := m.Get(context.Background(), nil, sensor.PropertyPeopleCount)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		got, _ := v.Float()
		if got != want {
			t.Errorf("Get() = %v, want %v", got, want)
		}
	}
}

func TestPresetsPassProfileCheck(t *testing.T) {
	catalog, err := profile.Default()
	if err != nil {
		t.Fatalf("profile.Default() error = %v", err)
	}

	for _, name := range Presets() {
		t.Run(name, func(t *testing.T) {
			cfg, err := Node(name, sensor.NewFactory(sensor.NewRandSource(1), nil))
			if err != nil {
				t.Fatalf("Node() error = %v", err)
			}
			comp, err := composition.Build(cfg)
			if err != nil {
				t.Fatalf("Build() error = %v", err)
			}
			if findings := catalog.Check(comp, cfg.Profiles); len(findings) != 0 {
				t.Errorf("Check() findings = %v", findings)
			}
		})
	}
}

func TestUnknownPreset(t *testing.T) {
	if _, err := LoadPreset("kitchen"); err == nil {
		t.Error("LoadPreset() of unknown preset should fail")
	}
}
