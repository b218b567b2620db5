package composition

import (
	"math"

	"github.com/meshsense/meshsense-go/pkg/version"
)

// ProfileRecord identifies a standardized capability profile and the
// elements it applies to.
type ProfileRecord struct {
	// ID is the profile identifier (NLC or vendor range).
	ID uint16 `cbor:"1,keyasint"`

	// Version is the profile version the node implements.
	Version version.Triple `cbor:"2,keyasint"`

	// ElementOffsets lists the element indices the profile covers.
	ElementOffsets []uint8 `cbor:"3,keyasint"`

	// Data is an optional opaque payload.
	Data []byte `cbor:"4,keyasint,omitempty"`
}

// PayloadLen returns the length of the opaque payload.
// Records are validated so the length always fits.
func (r ProfileRecord) PayloadLen() uint16 {
	if len(r.Data) > math.MaxUint16 {
		return math.MaxUint16
	}
	return uint16(len(r.Data))
}

// Covers returns true if the record applies to the element at index.
func (r ProfileRecord) Covers(index uint8) bool {
	for _, off := range r.ElementOffsets {
		if off == index {
			return true
		}
	}
	return false
}

func (r ProfileRecord) clone() ProfileRecord {
	out := r
	out.ElementOffsets = append([]uint8(nil), r.ElementOffsets...)
	if r.Data != nil {
		out.Data = append([]byte(nil), r.Data...)
	}
	return out
}
