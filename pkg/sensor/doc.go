// Package sensor implements the sensor value pipeline of a mesh sensor node.
//
// # Value Pipeline
//
// A query for one sensor flows through three steps:
//
//	Sensor.Get -> sample (base units) -> micro units -> Format encoding
//
// Samples are converted to the fixed micro-unit domain (base units scaled by
// 1,000,000) and then mapped onto the channel format's raw integer, which is
// written little-endian into the Value payload.
//
// # Range Failures
//
// Formats have a bounded raw range. FromMicro saturates values that do not fit
// and reports ErrOutOfRange alongside the saturated value. An Encoder decides
// what happens next according to its RangePolicy:
//   - RangeLenient: the saturated value is returned as a success with
//     Value.Clamped set
//   - RangeStrict: ErrOutOfRange is returned to the caller
//
// Any other encoding failure is always returned.
//
// # Sensor Variants
//
// PeopleCount, Temperature and MagneticField implement the Sensor interface.
// Their sample sources are injected (RandSource, SampleSource) so tests can
// drive them with deterministic sequences.
package sensor
