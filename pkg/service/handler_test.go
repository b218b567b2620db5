package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshsense/meshsense-go/pkg/log"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

func roundTrip(t *testing.T, stack *Stack, req *wire.Request) *wire.Response {
	t.Helper()
	data, err := wire.EncodeRequest(req)
	require.NoError(t, err)

	out, err := stack.HandleQuery(context.Background(), 0x0042, data)
	require.NoError(t, err)

	resp, err := wire.DecodeResponse(out)
	require.NoError(t, err)
	assert.Equal(t, req.MessageID, resp.MessageID)
	return resp
}

func TestHandleQuery(t *testing.T) {
	stack := bootStack(t, Config{}, testNode(42))

	tests := []struct {
		name       string
		req        wire.Request
		wantStatus wire.Status
		wantValues int
		wantDescs  int
	}{
		{
			name:       "get people count",
			req:        wire.Request{MessageID: 1, Operation: wire.OpGet, PropertyID: 0x004C},
			wantStatus: wire.StatusSuccess,
			wantValues: 1,
		},
		{
			name:       "get all on element 0",
			req:        wire.Request{MessageID: 2, Operation: wire.OpGet},
			wantStatus: wire.StatusSuccess,
			wantValues: 1,
		},
		{
			name:       "unknown element",
			req:        wire.Request{MessageID: 3, Operation: wire.OpGet, Element: 5},
			wantStatus: wire.StatusInvalidElement,
		},
		{
			name:       "unknown property",
			req:        wire.Request{MessageID: 4, Operation: wire.OpGet, PropertyID: 0x1234},
			wantStatus: wire.StatusInvalidProperty,
		},
		{
			name:       "failing sensor",
			req:        wire.Request{MessageID: 5, Operation: wire.OpGet, Element: 1, PropertyID: 0x4A01},
			wantStatus: wire.StatusTransientFailure,
		},
		{
			name:       "descriptor get",
			req:        wire.Request{MessageID: 6, Operation: wire.OpDescriptorGet, Element: 1},
			wantStatus: wire.StatusSuccess,
			wantDescs:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := roundTrip(t, stack, &tt.req)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Values, tt.wantValues)
			assert.Len(t, resp.Descriptors, tt.wantDescs)
		})
	}
}

func TestHandleQueryDecodesPeopleCount(t *testing.T) {
	stack := bootStack(t, Config{}, testNode(99))

	resp := roundTrip(t, stack, &wire.Request{MessageID: 9, Operation: wire.OpGet, PropertyID: 0x004C})
	require.True(t, resp.IsSuccess())
	require.Len(t, resp.Values, 1)

	v, err := sensor.ValueFromBytes(sensor.FormatCount16, resp.Values[0].Raw)
	require.NoError(t, err)
	got, err := v.Float()
	require.NoError(t, err)
	assert.Equal(t, 99.0, got)
}

func TestHandleQueryRejectsMalformedInput(t *testing.T) {
	plog := &captureLogger{}
	stack := bootStack(t, Config{ProtocolLogger: plog}, testNode(1))
	plog.events = nil

	_, err := stack.HandleQuery(context.Background(), 1, []byte{0xFF, 0x00})
	assert.Error(t, err)

	// messageId 0 is reserved.
	data, err := wire.Marshal(&wire.Request{Operation: wire.OpGet})
	require.NoError(t, err)
	_, err = stack.HandleQuery(context.Background(), 1, data)
	assert.Error(t, err)

	require.Len(t, plog.events, 2)
	for _, e := range plog.events {
		assert.Equal(t, log.CategoryError, e.Category)
		assert.Equal(t, "decode query", e.Error.Context)
	}
}

func TestHandleUnsupportedOperation(t *testing.T) {
	stack := bootStack(t, Config{}, testNode(1))

	resp := stack.Handle(context.Background(), 1, &wire.Request{MessageID: 1, Operation: wire.Operation(9)})
	assert.Equal(t, wire.StatusUnsupported, resp.Status)
}

func TestHandleLogsQueryAndReply(t *testing.T) {
	plog := &captureLogger{}
	stack := bootStack(t, Config{SessionID: "sess", ProtocolLogger: plog}, testNode(7))
	plog.events = nil

	roundTrip(t, stack, &wire.Request{MessageID: 11, Operation: wire.OpGet, PropertyID: 0x004C})

	require.Len(t, plog.events, 2)
	in, out := plog.events[0], plog.events[1]

	assert.Equal(t, log.DirectionIn, in.Direction)
	assert.Equal(t, uint16(0x0042), in.Src)
	require.NotNil(t, in.Query.Operation)
	assert.Equal(t, wire.OpGet, *in.Query.Operation)

	assert.Equal(t, log.DirectionOut, out.Direction)
	require.NotNil(t, out.Query.Status)
	assert.Equal(t, wire.StatusSuccess, *out.Query.Status)
	assert.Len(t, out.Query.Values, 1)
	assert.NotNil(t, out.Query.ProcessingTime)

	for _, e := range plog.events {
		assert.Equal(t, "sess", e.SessionID)
		assert.Equal(t, uint32(11), e.Query.MessageID)
	}
}

func TestDecodeSensorData(t *testing.T) {
	v, err := DecodeSensorData(wire.SensorData{PropertyID: 0x004F, Format: "temperature8", Raw: []byte{0x2B}, Clamped: true})
	require.NoError(t, err)
	got, err := v.Float()
	require.NoError(t, err)
	assert.Equal(t, 21.5, got)
	assert.True(t, v.Clamped)

	_, err = DecodeSensorData(wire.SensorData{Format: "lux24", Raw: []byte{1, 2, 3}})
	assert.ErrorIs(t, err, sensor.ErrValueRepresentation)
}
