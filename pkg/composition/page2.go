package composition

import (
	"encoding/binary"
	"fmt"
	"math"
)

// EncodePage2 renders records in the Composition Data Page 2 layout:
//
//	[profile id u16le][x u8][y u8][z u8][offset count u8][offsets...][payload len u16le][payload...]
//
// repeated once per record.
func EncodePage2(records []ProfileRecord) ([]byte, error) {
	var buf []byte
	for i, r := range records {
		if len(r.ElementOffsets) > math.MaxUint8 {
			return nil, fmt.Errorf("record %d: %d element offsets", i, len(r.ElementOffsets))
		}
		if len(r.Data) > math.MaxUint16 {
			return nil, fmt.Errorf("record %d: %w", i, ErrPayloadTooLarge)
		}

		buf = binary.LittleEndian.AppendUint16(buf, r.ID)
		buf = append(buf, r.Version.X, r.Version.Y, r.Version.Z)
		buf = append(buf, uint8(len(r.ElementOffsets)))
		buf = append(buf, r.ElementOffsets...)
		buf = binary.LittleEndian.AppendUint16(buf, r.PayloadLen())
		buf = append(buf, r.Data...)
	}
	return buf, nil
}

// DecodePage2 parses a Composition Data Page 2 byte string.
func DecodePage2(data []byte) ([]ProfileRecord, error) {
	var out []ProfileRecord
	for len(data) > 0 {
		if len(data) < 6 {
			return nil, fmt.Errorf("page 2: truncated record header at record %d", len(out))
		}
		r := ProfileRecord{ID: binary.LittleEndian.Uint16(data)}
		r.Version.X, r.Version.Y, r.Version.Z = data[2], data[3], data[4]
		n := int(data[5])
		data = data[6:]

		if len(data) < n+2 {
			return nil, fmt.Errorf("page 2: truncated offsets at record %d", len(out))
		}
		r.ElementOffsets = append([]uint8{}, data[:n]...)
		plen := int(binary.LittleEndian.Uint16(data[n:]))
		data = data[n+2:]

		if len(data) < plen {
			return nil, fmt.Errorf("page 2: truncated payload at record %d", len(out))
		}
		if plen > 0 {
			r.Data = append([]byte(nil), data[:plen]...)
		}
		data = data[plen:]
		out = append(out, r)
	}
	return out, nil
}
