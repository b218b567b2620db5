package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshsense/meshsense-go/pkg/bootstrap"
	"github.com/meshsense/meshsense-go/pkg/composition"
	"github.com/meshsense/meshsense-go/pkg/log"
	"github.com/meshsense/meshsense-go/pkg/metrics"
	"github.com/meshsense/meshsense-go/pkg/sensor"
	"github.com/meshsense/meshsense-go/pkg/version"
	"github.com/meshsense/meshsense-go/pkg/wire"
)

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) { c.events = append(c.events, e) }

var errBus = errors.New("i2c bus timeout")

// testNode has an occupancy element and an environment element whose
// magnetometer always fails.
func testNode(people ...uint32) composition.Config {
	failing := sensor.SampleFunc(func(context.Context) (float64, error) { return 0, errBus })
	return composition.Config{
		Elements: []composition.ElementConfig{
			{Models: []composition.ModelConfig{{
				Sensors: []sensor.Sensor{sensor.NewPeopleCount(sensor.NewSequence(people...), nil)},
			}}},
			{Models: []composition.ModelConfig{{
				Sensors: []sensor.Sensor{
					sensor.NewTemperature(sensor.Constant(100), nil),
					sensor.NewMagneticField(sensor.AxisX, failing, nil),
				},
			}}},
		},
		Profiles: []composition.ProfileRecord{{
			ID:             0x1605,
			Version:        version.MustParse("1.0.0"),
			ElementOffsets: []uint8{0},
		}},
	}
}

func bootStack(t *testing.T, cfg Config, node composition.Config) *Stack {
	t.Helper()
	stack := NewStack(cfg)
	comp, err := bootstrap.New(bootstrap.Config{Node: node, Registrar: stack}).Run()
	require.NoError(t, err)
	stack.Attach(comp)
	return stack
}

func TestStackRegistersDuringBootstrap(t *testing.T) {
	stack := bootStack(t, Config{}, testNode(5))

	records := stack.Records()
	require.Len(t, records, 1)
	assert.Equal(t, uint16(0x1605), records[0].ID)

	page2, err := stack.Page2()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05, 0x16, 1, 0, 0, 1, 0, 0, 0}, page2)

	assert.ErrorIs(t, stack.RegisterProfiles(nil), ErrRegistrationClosed)
	assert.NotEmpty(t, stack.SessionID())
}

func TestRegisterProfilesOnce(t *testing.T) {
	stack := NewStack(Config{SessionID: "s1"})
	records := []composition.ProfileRecord{{ID: 0x1605, ElementOffsets: []uint8{0}}}

	require.NoError(t, stack.RegisterProfiles(records))
	records[0].ElementOffsets[0] = 9
	assert.Equal(t, []uint8{0}, stack.Records()[0].ElementOffsets, "records must be copied")

	assert.ErrorIs(t, stack.RegisterProfiles(records), ErrAlreadyRegistered)
	assert.Equal(t, "s1", stack.SessionID())
}

func TestGetPeopleCount(t *testing.T) {
	stack := bootStack(t, Config{}, testNode(0, 99, 199))
	ctx := context.Background()

	for _, want := range []float64{0, 99, 99} {
		values, err := stack.Get(ctx, &sensor.MsgContext{Element: 0}, sensor.PropertyPeopleCount)
		require.NoError(t, err)
		require.Len(t, values, 1)

		v, err := sensor.ValueFromBytes(sensor.FormatCount16, values[0].Raw)
		require.NoError(t, err)
		got, err := v.Float()
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, "count16", values[0].Format)
	}

	last, ok, err := stack.Last(0, sensor.PropertyPeopleCount)
	require.NoError(t, err)
	require.True(t, ok)
	got, _ := last.Value.Float()
	assert.Equal(t, 99.0, got)
}

func TestGetLeavesCallerContextUntouched(t *testing.T) {
	stack := bootStack(t, Config{Address: 0x0010}, testNode(4))

	msg := &sensor.MsgContext{Element: 1}
	for i := 0; i < 2; i++ {
		_, err := stack.Get(context.Background(), msg, sensor.PropertyPresentAmbientTemperature)
		require.NoError(t, err)
	}
	assert.Equal(t, sensor.MsgContext{Element: 1}, *msg)

	values, err := stack.Get(context.Background(), nil, sensor.PropertyPeopleCount)
	require.NoError(t, err)
	assert.Len(t, values, 1)
}

func TestGetErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("not attached", func(t *testing.T) {
		_, err := NewStack(Config{}).Get(ctx, nil, sensor.PropertyPeopleCount)
		assert.ErrorIs(t, err, ErrNotAttached)
	})

	stack := bootStack(t, Config{}, testNode(1))

	tests := []struct {
		name     string
		element  uint8
		property sensor.PropertyID
		want     error
		status   wire.Status
	}{
		{"missing element", 2, sensor.PropertyPeopleCount, composition.ErrElementNotFound, wire.StatusInvalidElement},
		{"missing property", 0, sensor.PropertyPresentAmbientTemperature, composition.ErrSensorNotFound, wire.StatusInvalidProperty},
		{"failing source", 1, sensor.PropertyMagneticFieldX, sensor.ErrTransient, wire.StatusTransientFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := stack.Get(ctx, &sensor.MsgContext{Element: tt.element}, tt.property)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, tt.status, StatusOf(err))
		})
	}

	// A failed query leaves the other sensors usable.
	values, err := stack.Get(ctx, &sensor.MsgContext{Element: 1}, sensor.PropertyPresentAmbientTemperature)
	require.NoError(t, err)
	assert.Len(t, values, 1)

	_, ok, err := stack.Last(1, sensor.PropertyMagneticFieldX)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGetAllSensorsOfElement(t *testing.T) {
	m := metrics.New()
	stack := bootStack(t, Config{Metrics: m}, testNode(3))

	values, err := stack.Get(context.Background(), &sensor.MsgContext{Element: 1}, sensor.PropertyProhibited)
	require.NoError(t, err)

	// The magnetometer fails and is left out.
	require.Len(t, values, 1)
	assert.Equal(t, uint16(sensor.PropertyPresentAmbientTemperature), values[0].PropertyID)
	assert.True(t, values[0].Clamped, "100 °C saturates temperature8")
	assert.Equal(t, []byte{126}, values[0].Raw)
}

func TestStrictRangeReportsOutOfRange(t *testing.T) {
	enc := sensor.NewEncoder(sensor.RangeStrict, nil)
	node := composition.Config{Elements: []composition.ElementConfig{{
		Models: []composition.ModelConfig{{
			Sensors: []sensor.Sensor{sensor.NewTemperature(sensor.Constant(-80), enc)},
		}},
	}}}
	stack := bootStack(t, Config{}, node)

	resp := stack.Handle(context.Background(), 0x0001, &wire.Request{
		MessageID:  4,
		Operation:  wire.OpGet,
		PropertyID: uint16(sensor.PropertyPresentAmbientTemperature),
	})
	assert.Equal(t, wire.StatusOutOfRange, resp.Status)
	assert.Empty(t, resp.Values)
}

func TestDescriptors(t *testing.T) {
	stack := bootStack(t, Config{}, testNode(1))

	descs, err := stack.Descriptors(1)
	require.NoError(t, err)
	assert.Equal(t, []wire.Descriptor{
		{PropertyID: 0x004F, Name: "temperature", Formats: []string{"temperature8"}},
		{PropertyID: 0x4A01, Name: "magnetic_x", Formats: []string{"magnetic_flux16"}},
	}, descs)

	_, err = stack.Descriptors(7)
	assert.ErrorIs(t, err, composition.ErrElementNotFound)
}

func TestQueryLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	stack := bootStack(t, Config{Logger: logger}, testNode(1))
	_, _ = stack.Get(context.Background(), &sensor.MsgContext{Element: 1}, sensor.PropertyProhibited)

	out := buf.String()
	assert.Contains(t, out, "composition attached")
	assert.Contains(t, out, "sensor query failed")
	assert.Contains(t, out, "sensor value clamped to format range")
}
