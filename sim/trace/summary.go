package trace

// TraceSummary aggregates statistics from a StepTrace.
type TraceSummary struct {
	TotalSteps   int
	HopCount     int
	RotateCount  int
	NoEventCount int
	HopFraction  float64 // hops / (hops + rotations); 0 when no event fired
	// OrientationVisits counts post-step orientations (Model 2 only).
	OrientationVisits map[int]int
}

// Summarize computes aggregate statistics from a StepTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *StepTrace) *TraceSummary {
	summary := &TraceSummary{
		OrientationVisits: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalSteps = len(st.Events)
	for _, e := range st.Events {
		switch e.Kind {
		case EventHop:
			summary.HopCount++
		case EventRotate:
			summary.RotateCount++
		default:
			summary.NoEventCount++
		}
		if e.Orientation >= 0 {
			summary.OrientationVisits[e.Orientation]++
		}
	}

	if fired := summary.HopCount + summary.RotateCount; fired > 0 {
		summary.HopFraction = float64(summary.HopCount) / float64(fired)
	}

	return summary
}

// Merge folds other into s. Used to pool ensemble member summaries.
func (s *TraceSummary) Merge(other *TraceSummary) {
	if other == nil {
		return
	}
	s.TotalSteps += other.TotalSteps
	s.HopCount += other.HopCount
	s.RotateCount += other.RotateCount
	s.NoEventCount += other.NoEventCount
	if s.OrientationVisits == nil {
		s.OrientationVisits = make(map[int]int)
	}
	for o, n := range other.OrientationVisits {
		s.OrientationVisits[o] += n
	}
	s.HopFraction = 0
	if fired := s.HopCount + s.RotateCount; fired > 0 {
		s.HopFraction = float64(s.HopCount) / float64(fired)
	}
}
