package composition

import (
	"context"
	"errors"
	"testing"

	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/version"
)

func TestBuildProfileRecords(t *testing.T) {
	cfg := occupancyConfig()
	cfg.Profiles[0].Data = []byte{0xAA}

	records, err := BuildProfileRecords(cfg)
	if err != nil {
		t.Fatalf("BuildProfileRecords() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	r := records[0]
	if r.ID != 0x1605 {
		t.Errorf("ID = 0x%04X, want 0x1605", r.ID)
	}
	if r.Version != version.MustParse("1.0.0") {
		t.Errorf("Version = %v, want 1.0.0", r.Version)
	}
	if r.PayloadLen() != 1 {
		t.Errorf("PayloadLen() = %d, want 1", r.PayloadLen())
	}

	// The table is a copy; mutating it must not leak back into cfg.
	r.ElementOffsets[0] = 9
	r.Data[0] = 0
	if cfg.Profiles[0].ElementOffsets[0] != 0 || cfg.Profiles[0].Data[0] != 0xAA {
		t.Error("BuildProfileRecords() shares storage with the configuration")
	}
}

// A record claiming element 3 on a one-element node is a configuration
// defect and must be rejected before registration.
func TestProfileOffsetBeyondElementCountRejected(t *testing.T) {
	cfg := occupancyConfig()
	cfg.Profiles = []ProfileRecord{{
		ID:             0x1605,
		Version:        version.MustParse("1.0.0"),
		ElementOffsets: []uint8{3},
	}}

	if _, err := BuildProfileRecords(cfg); !errors.Is(err, ErrInvalidElementOffset) {
		t.Errorf("BuildProfileRecords() error = %v, want ErrInvalidElementOffset", err)
	}
	if _, err := Build(cfg); !errors.Is(err, ErrInvalidElementOffset) {
		t.Errorf("Build() error = %v, want ErrInvalidElementOffset", err)
	}
}

func TestValidate(t *testing.T) {
	comp, err := Build(Config{Elements: []ElementConfig{
		{Models: []ModelConfig{{Sensors: []sensor.Sensor{&stubSensor{typ: sensor.TypePeopleCount}}}}},
		{Models: []ModelConfig{{Sensors: []sensor.Sensor{&stubSensor{typ: sensor.TypePeopleCount}}}}},
	}})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	tests := []struct {
		name    string
		offsets []uint8
		wantErr bool
	}{
		{"no offsets", nil, false},
		{"first element", []uint8{0}, false},
		{"both elements", []uint8{0, 1}, false},
		{"equal to count", []uint8{2}, true},
		{"far out", []uint8{0, 255}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(comp, []ProfileRecord{{ID: 0x1605, ElementOffsets: tt.offsets}})
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidElementOffset) {
				t.Errorf("Validate() error = %v, want ErrInvalidElementOffset", err)
			}
		})
	}
}

// Every offset of every record is below the element count of the built
// composition, for every table that Build accepts.
func TestBuiltRecordsWithinElementCount(t *testing.T) {
	for n := 1; n <= 4; n++ {
		cfg := Config{}
		for i := 0; i < n; i++ {
			cfg.Elements = append(cfg.Elements, ElementConfig{
				Models: []ModelConfig{{Sensors: []sensor.Sensor{&stubSensor{typ: sensor.TypePeopleCount}}}},
			})
		}
		for off := 0; off < 6; off++ {
			cfg.Profiles = []ProfileRecord{{ID: 0x1605, ElementOffsets: []uint8{uint8(off)}}}

			comp, err := Build(cfg)
			if err != nil {
				continue
			}
			records, err := BuildProfileRecords(cfg)
			if err != nil {
				t.Fatalf("n=%d off=%d: Build() accepted but BuildProfileRecords() failed: %v", n, off, err)
			}
			for _, r := range records {
				for _, o := range r.ElementOffsets {
					if int(o) >= comp.ElementCount() {
						t.Errorf("n=%d: offset %d >= element count %d", n, o, comp.ElementCount())
					}
				}
			}
		}
	}
}

func TestProfileRecordCovers(t *testing.T) {
	r := ProfileRecord{ElementOffsets: []uint8{0, 2}}
	if !r.Covers(2) {
		t.Error("Covers(2) = false, want true")
	}
	if r.Covers(1) {
		t.Error("Covers(1) = true, want false")
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	a, err := Build(occupancyConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Build(occupancyConfig(1))
	if err != nil {
		t.Fatal(err)
	}

	ia, err := a.EncodeInfo()
	if err != nil {
		t.Fatal(err)
	}
	ib, err := b.EncodeInfo()
	if err != nil {
		t.Fatal(err)
	}
	if string(ia) != string(ib) {
		t.Errorf("EncodeInfo() differs between builds: %x vs %x", ia, ib)
	}

	va, _ := a.Elements()[0].Models()[0].Get(context.Background(), nil, sensor.PropertyPeopleCount)
	vb, _ := b.Elements()[0].Models()[0].Get(context.Background(), nil, sensor.PropertyPeopleCount)
	if va != vb {
		t.Errorf("first query differs: %v vs %v", va, vb)
	}
}
