// Package testutil provides shared test infrastructure for the kmc-sim packages.
// It has no dependency on sim/ so that sim's own tests may import it.
package testutil

import (
	"math"
	"testing"
)

// Draw is one scripted step: the continuous sample x1 and the discrete sample x2.
type Draw struct {
	X1 float64
	X2 int
}

// ScriptedSource replays a fixed list of draws as an event source.
// Each Float64 call must be followed by an Intn call, mirroring the kernels'
// per-step draw order. Running past the end of the script fails the test.
type ScriptedSource struct {
	t     testing.TB
	draws []Draw
	next  int
	half  bool // Float64 consumed for draws[next]; Intn pending
}

// NewScriptedSource creates a ScriptedSource over draws.
func NewScriptedSource(t testing.TB, draws ...Draw) *ScriptedSource {
	t.Helper()
	return &ScriptedSource{t: t, draws: draws}
}

// Float64 returns the next scripted x1.
func (s *ScriptedSource) Float64() float64 {
	s.t.Helper()
	if s.half {
		s.t.Fatalf("ScriptedSource: Float64 called twice without Intn at draw %d", s.next)
	}
	if s.next >= len(s.draws) {
		s.t.Fatalf("ScriptedSource: script exhausted after %d draws", len(s.draws))
	}
	s.half = true
	return s.draws[s.next].X1
}

// Intn returns the next scripted x2. It fails the test if x2 is outside [0, n).
func (s *ScriptedSource) Intn(n int) int {
	s.t.Helper()
	if !s.half {
		s.t.Fatalf("ScriptedSource: Intn called before Float64 at draw %d", s.next)
	}
	d := s.draws[s.next]
	if d.X2 < 0 || d.X2 >= n {
		s.t.Fatalf("ScriptedSource: draw %d has x2=%d outside [0, %d)", s.next, d.X2, n)
	}
	s.half = false
	s.next++
	return d.X2
}

// Consumed returns the number of complete draws handed out.
func (s *ScriptedSource) Consumed() int {
	return s.next
}

// Repeat returns n copies of d.
func Repeat(d Draw, n int) []Draw {
	out := make([]Draw, n)
	for i := range out {
		out[i] = d
	}
	return out
}

// AssertWithin fails t unless got lies within relTol of want, measured
// relative to |want|. A zero want is compared with relTol as an absolute bound.
func AssertWithin(t testing.TB, name string, want, got, relTol float64) {
	t.Helper()
	bound := relTol * math.Abs(want)
	if want == 0 {
		bound = relTol
	}
	if math.IsNaN(got) || math.Abs(got-want) > bound {
		t.Errorf("%s = %v, want %v within %.2g", name, got, want, relTol)
	}
}
