package version

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Triple
	}{
		{"1.0.0", Triple{1, 0, 0}},
		{"1.2.3", Triple{1, 2, 3}},
		{"255.255.255", Triple{255, 255, 255}},
		{"2", Triple{2, 0, 0}},
		{"2.1", Triple{2, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, v, tt.want)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"abc",
		"1.0.0.0",
		"1.x.0",
		"-1.0.0",
		"256.0.0",
		"1..0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestTriple_String(t *testing.T) {
	v := Triple{X: 1, Y: 0, Z: 7}
	if v.String() != "1.0.7" {
		t.Errorf("String() = %q, want %q", v.String(), "1.0.7")
	}
}

func TestTriple_Compare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.1.9", 1},
		{"2.0.0", "1.9.9", 1},
	}

	for _, tt := range tests {
		got := MustParse(tt.a).Compare(MustParse(tt.b))
		if got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestTriple_Compatible(t *testing.T) {
	if !MustParse("1.0.0").Compatible(MustParse("1.4.2")) {
		t.Error("1.0.0 should be compatible with 1.4.2")
	}
	if MustParse("1.0.0").Compatible(MustParse("2.0.0")) {
		t.Error("1.0.0 should not be compatible with 2.0.0")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse(\"bad\") did not panic")
		}
	}()
	MustParse("bad")
}

func TestTriple_UnmarshalYAML(t *testing.T) {
	var doc struct {
		A Triple `yaml:"a"`
		B Triple `yaml:"b"`
	}

	data := []byte("a: \"1.2.3\"\nb:\n  x: 4\n  y: 5\n  z: 6\n")
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if doc.A != (Triple{1, 2, 3}) {
		t.Errorf("A = %v, want 1.2.3", doc.A)
	}
	if doc.B != (Triple{4, 5, 6}) {
		t.Errorf("B = %v, want 4.5.6", doc.B)
	}

	if err := yaml.Unmarshal([]byte("a: \"1.x\"\n"), &doc); err == nil {
		t.Error("Unmarshal() of bad version should fail")
	}
}
