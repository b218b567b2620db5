package sensor

import (
	"context"
	"math/rand/v2"
	"sync"
)

// RandSource produces uniformly distributed 32-bit values.
// *rand.Rand from math/rand/v2 satisfies it.
type RandSource interface {
	Uint32() uint32
}

// NewRandSource returns a seeded pseudo-random source.
func NewRandSource(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// Sequence is a deterministic RandSource cycling through fixed values.
type Sequence struct {
	mu     sync.Mutex
	values []uint32
	next   int
}

// NewSequence creates a Sequence. An empty sequence always yields 0.
func NewSequence(values ...uint32) *Sequence {
	return &Sequence{values: values}
}

// Uint32 returns the next value, wrapping around at the end.
func (s *Sequence) Uint32() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return v
}

// SampleSource produces samples in base units. Implementations must not block.
type SampleSource interface {
	Sample(ctx context.Context) (float64, error)
}

// SampleFunc adapts a function to SampleSource.
type SampleFunc func(ctx context.Context) (float64, error)

// Sample calls f.
func (f SampleFunc) Sample(ctx context.Context) (float64, error) {
	return f(ctx)
}

// Constant returns a source that always yields v.
func Constant(v float64) SampleSource {
	return SampleFunc(func(context.Context) (float64, error) {
		return v, nil
	})
}

// RandomWalk is a simulated source that drifts by up to Step per sample,
// staying within [Min, Max].
type RandomWalk struct {
	mu      sync.Mutex
	rng     RandSource
	current float64
	step    float64
	min     float64
	max     float64
}

// NewRandomWalk creates a random walk starting at start.
func NewRandomWalk(rng RandSource, start, step, lo, hi float64) *RandomWalk {
	return &RandomWalk{
		rng:     rng,
		current: start,
		step:    step,
		min:     lo,
		max:     hi,
	}
}

// Sample advances the walk and returns the new position.
func (w *RandomWalk) Sample(context.Context) (float64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Map the 32-bit draw onto [-step, +step].
	frac := float64(w.rng.Uint32())/float64(^uint32(0))*2 - 1
	w.current += frac * w.step
	if w.current < w.min {
		w.current = w.min
	}
	if w.current > w.max {
		w.current = w.max
	}
	return w.current, nil
}
