package composition

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshsense/meshsense-go/pkg/version"
)

func TestEncodePage2(t *testing.T) {
	tests := []struct {
		name    string
		records []ProfileRecord
		want    []byte
	}{
		{
			name: "empty table",
			want: nil,
		},
		{
			name: "occupancy sensor on element 0",
			records: []ProfileRecord{{
				ID:             0x1605,
				Version:        version.MustParse("1.0.0"),
				ElementOffsets: []uint8{0},
			}},
			want: []byte{0x05, 0x16, 1, 0, 0, 1, 0, 0x00, 0x00},
		},
		{
			name: "two records with payload",
			records: []ProfileRecord{
				{ID: 0x1600, Version: version.MustParse("1.2.3"), ElementOffsets: []uint8{0, 1}, Data: []byte{0xDE, 0xAD}},
				{ID: 0x1605, Version: version.MustParse("1.0.0")},
			},
			want: []byte{
				0x00, 0x16, 1, 2, 3, 2, 0, 1, 0x02, 0x00, 0xDE, 0xAD,
				0x05, 0x16, 1, 0, 0, 0, 0x00, 0x00,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodePage2(tt.records)
			if err != nil {
				t.Fatalf("EncodePage2() error = %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("EncodePage2() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestEncodePage2RejectsOversizedPayload(t *testing.T) {
	_, err := EncodePage2([]ProfileRecord{{ID: 1, Data: make([]byte, 1<<16)}})
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Errorf("EncodePage2() error = %v, want ErrPayloadTooLarge", err)
	}
}

func TestDecodePage2(t *testing.T) {
	records := []ProfileRecord{
		{ID: 0x1600, Version: version.MustParse("1.2.3"), ElementOffsets: []uint8{0, 1}, Data: []byte{0xDE, 0xAD}},
		{ID: 0x1605, Version: version.MustParse("1.0.0"), ElementOffsets: []uint8{}},
	}

	data, err := EncodePage2(records)
	require.NoError(t, err)

	got, err := DecodePage2(data)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestDecodePage2Truncated(t *testing.T) {
	full := []byte{0x00, 0x16, 1, 2, 3, 2, 0, 1, 0x02, 0x00, 0xDE, 0xAD}

	for _, n := range []int{3, 7, 9, 11} {
		if _, err := DecodePage2(full[:n]); err == nil {
			t.Errorf("DecodePage2(%d bytes) should fail", n)
		}
	}
}
