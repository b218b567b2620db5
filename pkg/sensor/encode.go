package sensor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
)

// BaseToMicro scales an integer sample in base units to micro units.
func BaseToMicro(v int64) int64 {
	return v * MicroPerUnit
}

// FloatToMicro scales a fractional sample in base units to micro units,
// rounding half away from zero. Values beyond the int64 domain saturate.
func FloatToMicro(v float64) (int64, error) {
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: NaN sample", ErrValueRepresentation)
	}
	m := math.Round(v * MicroPerUnit)
	switch {
	case m >= math.MaxInt64:
		return math.MaxInt64, nil
	case m <= math.MinInt64:
		return math.MinInt64, nil
	}
	return int64(m), nil
}

// FromMicro encodes a micro-unit value in the given format.
//
// Values outside the format's range are saturated to the nearest bound and
// returned together with ErrOutOfRange. Any other error leaves the Value empty.
func FromMicro(f *Format, micro int64) (Value, error) {
	if !f.valid() {
		return Value{}, fmt.Errorf("%w: invalid format %s", ErrValueRepresentation, f)
	}

	raw := divRound(micro, f.Resolution)

	var err error
	switch {
	case raw < f.Min:
		raw, err = f.Min, ErrOutOfRange
	case raw > f.Max:
		raw, err = f.Max, ErrOutOfRange
	}

	v := Value{Format: f}
	putRaw(v.Raw[:f.Size], raw)
	return v, err
}

// Unknown returns the "value is not known" payload of a format.
func Unknown(f *Format) (Value, error) {
	if !f.valid() || !f.HasUnknown {
		return Value{}, fmt.Errorf("%w: %s has no unknown marker", ErrValueRepresentation, f)
	}
	v := Value{Format: f}
	putRaw(v.Raw[:f.Size], f.Unknown)
	return v, nil
}

// divRound divides n by a positive d, rounding half away from zero.
func divRound(n, d int64) int64 {
	q, r := n/d, n%d
	if r < 0 {
		r = -r
	}
	if r >= d-r {
		if n < 0 {
			q--
		} else {
			q++
		}
	}
	return q
}

// putRaw writes raw little-endian into b, truncated to len(b) bytes.
func putRaw(b []byte, raw int64) {
	u := uint64(raw)
	for i := range b {
		b[i] = byte(u >> (8 * i))
	}
}

// readRaw reads a little-endian integer from b, sign-extending when signed.
func readRaw(b []byte, signed bool) int64 {
	var u uint64
	for i := range b {
		u |= uint64(b[i]) << (8 * i)
	}
	bits := uint(8 * len(b))
	if signed && bits < 64 && u&(1<<(bits-1)) != 0 {
		return int64(u) - int64(1)<<bits
	}
	return int64(u)
}

// RangePolicy selects how an Encoder treats saturated values.
type RangePolicy uint8

const (
	// RangeLenient returns saturated values as a success with Value.Clamped set.
	RangeLenient RangePolicy = iota

	// RangeStrict returns ErrOutOfRange for saturated values.
	RangeStrict
)

// String returns the policy name.
func (p RangePolicy) String() string {
	switch p {
	case RangeLenient:
		return "lenient"
	case RangeStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseRangePolicy parses "lenient" or "strict".
func ParseRangePolicy(s string) (RangePolicy, error) {
	switch s {
	case "", "lenient":
		return RangeLenient, nil
	case "strict":
		return RangeStrict, nil
	default:
		return RangeLenient, fmt.Errorf("unknown range policy %q", s)
	}
}

// Encoder applies a RangePolicy on top of FromMicro.
// A nil *Encoder behaves like a lenient encoder without logging.
type Encoder struct {
	// Policy is the range failure policy.
	Policy RangePolicy

	// Logger is the optional logger for diagnostics.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// NewEncoder creates an encoder with the given policy and logger.
func NewEncoder(policy RangePolicy, logger *slog.Logger) *Encoder {
	return &Encoder{Policy: policy, Logger: logger}
}

// Encode encodes micro units in format f.
func (e *Encoder) Encode(f *Format, micro int64) (Value, error) {
	v, err := FromMicro(f, micro)
	if err == nil {
		return v, nil
	}

	if errors.Is(err, ErrOutOfRange) {
		v.Clamped = true
		if e != nil && e.Policy == RangeStrict {
			e.log(slog.LevelWarn, "value out of range", "format", f.Name, "micro", micro,
				"min", f.MinMicro(), "max", f.MaxMicro())
			return v, err
		}
		e.log(slog.LevelWarn, "value clamped to format range", "format", f.Name, "micro", micro,
			"min", f.MinMicro(), "max", f.MaxMicro(), "raw", v.String())
		return v, nil
	}

	e.log(slog.LevelError, "encoding failed", "format", f.String(), "micro", micro, "error", err)
	return Value{}, err
}

func (e *Encoder) log(level slog.Level, msg string, args ...any) {
	if e != nil && e.Logger != nil {
		e.Logger.Log(context.Background(), level, msg, args...)
	}
}

// debugLog logs a debug message if logging is enabled.
func (e *Encoder) debugLog(msg string, args ...any) {
	e.log(slog.LevelDebug, msg, args...)
}
