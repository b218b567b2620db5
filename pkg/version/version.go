// Package version provides "x.y.z" version parsing and comparison for
// profile records and firmware identification.
package version

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Current is the firmware version reported by this library.
const Current = "1.0.0"

// Triple is a parsed "x.y.z" version with 8-bit components,
// as carried by profile records.
type Triple struct {
	X uint8 `cbor:"1,keyasint" yaml:"x"`
	Y uint8 `cbor:"2,keyasint" yaml:"y"`
	Z uint8 `cbor:"3,keyasint" yaml:"z"`
}

// Parse parses an "x.y.z" version string. Missing trailing components
// ("1" or "1.0") are treated as zero.
func Parse(s string) (Triple, error) {
	if s == "" {
		return Triple{}, fmt.Errorf("invalid version %q: empty", s)
	}

	parts := strings.Split(s, ".")
	if len(parts) > 3 {
		return Triple{}, fmt.Errorf("invalid version %q: expected x.y.z", s)
	}

	var out [3]uint8
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 8)
		if err != nil || p == "" {
			return Triple{}, fmt.Errorf("invalid version %q: bad component %d", s, i)
		}
		out[i] = uint8(n)
	}

	return Triple{X: out[0], Y: out[1], Z: out[2]}, nil
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) Triple {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "x.y.z".
func (v Triple) String() string {
	return fmt.Sprintf("%d.%d.%d", v.X, v.Y, v.Z)
}

// Compatible returns true if the other version has the same major component.
func (v Triple) Compatible(other Triple) bool {
	return v.X == other.X
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal to
// or after other.
func (v Triple) Compare(other Triple) int {
	a := [3]uint8{v.X, v.Y, v.Z}
	b := [3]uint8{other.X, other.Y, other.Z}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// UnmarshalYAML accepts either an "x.y.z" scalar or a mapping with x, y and z keys.
func (v *Triple) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		parsed, err := Parse(node.Value)
		if err != nil {
			return err
		}
		*v = parsed
		return nil
	}

	type plain Triple
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*v = Triple(p)
	return nil
}
