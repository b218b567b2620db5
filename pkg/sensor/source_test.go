package sensor

import (
	"context"
	"testing"
)

func TestSequence(t *testing.T) {
	t.Run("Wraps", func(t *testing.T) {
		s := NewSequence(1, 2, 3)
		want := []uint32{1, 2, 3, 1, 2}
		for i, w := range want {
			if got := s.Uint32(); got != w {
				t.Errorf("Uint32() #%d = %d, want %d", i, got, w)
			}
		}
	})

	t.Run("Empty", func(t *testing.T) {
		s := NewSequence()
		if got := s.Uint32(); got != 0 {
			t.Errorf("Uint32() = %d, want 0", got)
		}
	})
}

func TestRandSourceDeterministic(t *testing.T) {
	a := NewRandSource(7)
	b := NewRandSource(7)
	for i := 0; i < 16; i++ {
		if x, y := a.Uint32(), b.Uint32(); x != y {
			t.Fatalf("draw %d: %d != %d for equal seeds", i, x, y)
		}
	}
}

func TestRandomWalkBounds(t *testing.T) {
	w := NewRandomWalk(NewRandSource(1), 0, 5, -10, 10)
	ctx := context.Background()

	prev := 0.0
	for i := 0; i < 1000; i++ {
		v, err := w.Sample(ctx)
		if err != nil {
			t.Fatalf("Sample() error = %v", err)
		}
		if v < -10 || v > 10 {
			t.Fatalf("Sample() = %v, want within [-10, 10]", v)
		}
		if d := v - prev; d > 5+1e-9 || d < -5-1e-9 {
			t.Fatalf("Sample() moved %v, want at most 5", d)
		}
		prev = v
	}
}

func TestConstant(t *testing.T) {
	v, err := Constant(3.5).Sample(context.Background())
	if err != nil || v != 3.5 {
		t.Errorf("Sample() = %v, %v, want 3.5, nil", v, err)
	}
}
