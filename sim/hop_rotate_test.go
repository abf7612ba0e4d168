package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-kmc/kmc-sim/sim/internal/testutil"
	"github.com/lattice-kmc/kmc-sim/sim/trace"
)

func TestSimulateHopRotate_HopTable(t *testing.T) {
	// a=4, b=1 gives d1=2
	tests := []struct {
		from State
		want State
	}{
		{State{0, 0, East}, State{2, 0, West}},
		{State{0, 0, West}, State{-2, 0, East}},
		{State{0, 0, North}, State{0, 2, South}},
		{State{0, 0, South}, State{0, -2, North}},
	}

	for _, tt := range tests {
		t.Run(tt.from.Orientation.String(), func(t *testing.T) {
			src := testutil.NewScriptedSource(t, testutil.Draw{X1: 0.25, X2: 1})
			traj, err := SimulateHopRotate(tt.from, 0.5, 0.5, 4, 1, 1, src)
			require.NoError(t, err)
			assert.Equal(t, []State{tt.want}, traj)
		})
	}
}

func TestSimulateHopRotate_RotateTable(t *testing.T) {
	tests := []struct {
		name string
		from Orientation
		x2   int
		want State
	}{
		{"north x2=0", North, 0, State{1, -1, East}},
		{"north x2=1", North, 1, State{-1, -1, West}},
		{"east x2=0", East, 0, State{-1, 1, North}},
		{"east x2=1", East, 1, State{-1, -1, South}},
		{"south x2=0", South, 0, State{1, 1, East}},
		{"south x2=1", South, 1, State{-1, 1, West}},
		{"west x2=0", West, 0, State{1, 1, North}},
		{"west x2=1", West, 1, State{1, -1, South}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewScriptedSource(t, testutil.Draw{X1: 0.75, X2: tt.x2})
			traj, err := SimulateHopRotate(State{0, 0, tt.from}, 0.5, 0.5, 4, 1, 1, src)
			require.NoError(t, err)
			assert.Equal(t, []State{tt.want}, traj)
		})
	}
}

func TestSimulateHopRotate_BondPivotsAboutAnchor(t *testing.T) {
	// GIVEN the hydrogen bonded north of an oxygen at the origin (bond length 1)
	src := testutil.NewScriptedSource(t,
		testutil.Draw{X1: 0.5, X2: 0}, // rotate north -> east
		testutil.Draw{X1: 0.5, X2: 1}, // rotate east -> south
		testutil.Draw{X1: 0.5, X2: 1}, // rotate south -> west
		testutil.Draw{X1: 0.5, X2: 0}, // rotate west -> north
	)

	// WHEN only rotations fire
	traj, err := SimulateHopRotate(State{0, 1, North}, 0, 1, 1, 1, 4, src)

	// THEN the hydrogen circles the anchor at distance b
	require.NoError(t, err)
	assert.Equal(t, []State{
		{1, 0, East},
		{0, -1, South},
		{-1, 0, West},
		{0, 1, North},
	}, traj)
}

func TestSimulateHopRotate_HopCrossesToFacingOxygen(t *testing.T) {
	// GIVEN the hydrogen east of the oxygen at the origin, next oxygen at x=a
	a, b := 4.0, 1.0
	src := testutil.NewScriptedSource(t,
		testutil.Draw{X1: 0.1, X2: 0},
		testutil.Draw{X1: 0.1, X2: 1},
	)

	// WHEN it hops twice
	traj, err := SimulateHopRotate(State{b, 0, East}, 1, 1, a, b, 2, src)

	// THEN it sits at a-b bonded west to the far oxygen, then returns
	require.NoError(t, err)
	assert.Equal(t, State{a - b, 0, West}, traj[0])
	assert.Equal(t, State{b, 0, East}, traj[1])
}

func TestSimulateHopRotate_NoEvent_KeepsState(t *testing.T) {
	src := testutil.NewScriptedSource(t,
		testutil.Draw{X1: 0, X2: 1},
		testutil.Draw{X1: 0.5, X2: 0}, // x1*gamma == gamma_1
	)
	initial := State{3, 4, South}

	traj, err := SimulateHopRotate(initial, 1, 1, 4, 1, 2, src)

	require.NoError(t, err)
	assert.Equal(t, []State{initial, initial}, traj)
}

func TestSimulateHopRotate_LongNoEventRun_ConsumesEveryDraw(t *testing.T) {
	// GIVEN a thousand draws that all land on x1 = 0
	src := testutil.NewScriptedSource(t, testutil.Repeat(testutil.Draw{X1: 0, X2: 1}, 1000)...)
	initial := State{-2, 5, West}

	// WHEN they are all consumed
	traj, err := SimulateHopRotate(initial, 1, 1, 4, 1, 1000, src)

	// THEN the state never changes, yet both samples were drawn on every step
	require.NoError(t, err)
	assert.Equal(t, 1000, src.Consumed())
	for i, s := range traj {
		require.Equal(t, initial, s, "step %d", i)
	}
}

func TestSimulateHopRotate_ShortLattice_HopRunsAgainstBond(t *testing.T) {
	// a=1, b=1 gives d1 = -1: the facing oxygen lies behind the anchor
	tests := []struct {
		from State
		want State
	}{
		{State{0, 0, East}, State{-1, 0, West}},
		{State{0, 0, West}, State{1, 0, East}},
		{State{0, 0, North}, State{0, -1, South}},
		{State{0, 0, South}, State{0, 1, North}},
	}

	for _, tt := range tests {
		t.Run(tt.from.Orientation.String(), func(t *testing.T) {
			src := testutil.NewScriptedSource(t, testutil.Draw{X1: 0.25, X2: 0})
			traj, err := SimulateHopRotate(tt.from, 1, 1, 1, 1, 1, src)
			require.NoError(t, err)
			assert.Equal(t, []State{tt.want}, traj)
		})
	}
}

func TestSimulateHopRotate_ShortLattice_RepeatedHopsOscillate(t *testing.T) {
	src := testutil.NewScriptedSource(t, testutil.Repeat(testutil.Draw{X1: 0.1, X2: 0}, 4)...)

	traj, err := SimulateHopRotate(State{1, 0, East}, 1, 1, 1, 1, 4, src)

	require.NoError(t, err)
	assert.Equal(t, []State{
		{0, 0, West}, {1, 0, East}, {0, 0, West}, {1, 0, East},
	}, traj)
}

func TestSimulateHopRotate_InvalidArguments_NoDrawsConsumed(t *testing.T) {
	tests := []struct {
		name    string
		initial State
		gamma1  float64
		gamma2  float64
		a       float64
		b       float64
		steps   int
	}{
		{"negative gamma_1", State{}, -1, 1, 4, 1, 10},
		{"negative gamma_2", State{}, 1, -1, 4, 1, 10},
		{"Inf gamma_2", State{}, 1, math.Inf(1), 4, 1, 10},
		{"zero steps", State{}, 1, 1, 4, 1, 0},
		{"zero a", State{}, 1, 1, 0, 1, 10},
		{"negative b", State{}, 1, 1, 4, -1, 10},
		{"orientation too large", State{Orientation: 4}, 1, 1, 4, 1, 10},
		{"negative orientation", State{Orientation: -1}, 1, 1, 4, 1, 10},
		{"NaN initial y", State{Y: math.NaN()}, 1, 1, 4, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testutil.NewScriptedSource(t)
			traj, err := SimulateHopRotate(tt.initial, tt.gamma1, tt.gamma2, tt.a, tt.b, tt.steps, src)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Nil(t, traj)
			assert.Equal(t, 0, src.Consumed())
		})
	}
}

func TestSimulateHopRotate_DegenerateRates_ConstantTrajectory(t *testing.T) {
	initial := State{0, 1, North}

	traj, err := SimulateHopRotate(initial, 0, 0, 4, 1, 300, newRandFromSeed(5))

	require.NoError(t, err)
	require.Len(t, traj, 300)
	for i, s := range traj {
		if s != initial {
			t.Fatalf("step %d: got %v, want %v", i, s, initial)
		}
	}
}

func TestSimulateHopRotate_Seed7_RotateOnly_FollowsRotateTable(t *testing.T) {
	// GIVEN gamma_1 = 0 so every firing step is a rotation
	a, b := 4.0, 1.0
	initial := State{0, 1, North}

	// WHEN simulated with seed 7
	traj, err := SimulateHopRotate(initial, 0, 1, a, b, 200, newRandFromSeed(7))
	require.NoError(t, err)
	require.Len(t, traj, 200)

	// THEN each orientation is one of the two legal rotate targets of its predecessor
	prev := initial
	for i, s := range traj {
		require.True(t, s.Orientation.Valid(), "step %d: orientation %d", i, s.Orientation)
		targets := RotateTargets(prev.Orientation)
		assert.Contains(t, targets[:], s.Orientation, "step %d: %v -> %v", i, prev.Orientation, s.Orientation)
		assert.InDelta(t, b*math.Sqrt2, s.Position().Sub(prev.Position()).Norm(), 1e-9, "step %d", i)
		prev = s
	}
}

func TestSimulateHopRotate_StepLengthsMatchEventKinds(t *testing.T) {
	// GIVEN a traced run with both processes active
	a, b := 4.0, 1.0
	st := trace.NewStepTrace(trace.TraceConfig{Level: trace.TraceLevelEvents})
	initial := State{0, b, North}

	// WHEN simulated
	traj, err := SimulateHopRotate(initial, 0.5, 0.5, a, b, 2000, newRandFromSeed(11), WithTrace(st))
	require.NoError(t, err)
	require.Len(t, st.Events, len(traj))

	// THEN hops move |a-2b|, rotations move b√2, and orientations follow the tables
	prev := initial
	for i, s := range traj {
		require.True(t, s.Orientation.Valid(), "step %d", i)
		d := s.Position().Sub(prev.Position()).Norm()
		ev := st.Events[i]
		switch ev.Kind {
		case trace.EventHop:
			assert.InDelta(t, math.Abs(a-2*b), d, 1e-9, "step %d", i)
			assert.Equal(t, HopTarget(prev.Orientation), s.Orientation, "step %d", i)
		case trace.EventRotate:
			assert.InDelta(t, b*math.Sqrt2, d, 1e-9, "step %d", i)
			assert.Equal(t, RotateTargets(prev.Orientation)[ev.Discrete], s.Orientation, "step %d", i)
		default:
			assert.Equal(t, prev, s, "step %d", i)
		}
		assert.Equal(t, int(s.Orientation), ev.Orientation)
		prev = s
	}

	summary := trace.Summarize(st)
	assert.Equal(t, 2000, summary.TotalSteps)
	assert.Greater(t, summary.HopCount, 0)
	assert.Greater(t, summary.RotateCount, 0)
}

func TestSimulateHopRotate_SameSeed_IdenticalTrajectory(t *testing.T) {
	traj1, err := SimulateHopRotate(State{0, 1, North}, 0.5, 0.5, 4, 1, 500, newRandFromSeed(42))
	require.NoError(t, err)
	traj2, err := SimulateHopRotate(State{0, 1, North}, 0.5, 0.5, 4, 1, 500, newRandFromSeed(42))
	require.NoError(t, err)

	assert.Equal(t, traj1, traj2)
}

func TestSimulateHopRotate_OutputLength(t *testing.T) {
	for _, steps := range []int{1, 3, 200} {
		traj, err := SimulateHopRotate(State{}, 1, 1, 4, 1, steps, newRandFromSeed(int64(steps)))
		require.NoError(t, err)
		assert.Len(t, traj, steps)
	}
}

func TestSimulateHopRotate_TraceLevelNone_RecordsNothing(t *testing.T) {
	st := trace.NewStepTrace(trace.TraceConfig{Level: trace.TraceLevelNone})

	_, err := SimulateHopRotate(State{}, 1, 1, 4, 1, 50, newRandFromSeed(1), WithTrace(st))

	require.NoError(t, err)
	assert.Empty(t, st.Events)
}

func TestStateFromSlice(t *testing.T) {
	s, err := StateFromSlice([]float64{0, 1, 0})
	require.NoError(t, err)
	assert.Equal(t, State{0, 1, North}, s)

	s, err = StateFromSlice([]float64{-2.5, 0.5, 3})
	require.NoError(t, err)
	assert.Equal(t, State{-2.5, 0.5, West}, s)

	bad := [][]float64{
		nil,
		{0, 1},
		{0, 1, 0, 0},
		{0, 1, 4},
		{0, 1, -1},
		{0, 1, 1.5},
		{math.NaN(), 1, 0},
	}
	for _, v := range bad {
		_, err := StateFromSlice(v)
		assert.ErrorIs(t, err, ErrInvalidArgument, "input %v", v)
	}
}

func BenchmarkSimulateHopRotate(b *testing.B) {
	rng := newRandFromSeed(42)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = SimulateHopRotate(State{0, 1, North}, 0.5, 0.5, 4, 1, 10000, rng)
	}
}
