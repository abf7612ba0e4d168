package sim

// EventKind classifies one simulation step.
type EventKind int

const (
	// NoEvent leaves the state unchanged. It only occurs when x1*gamma lands
	// exactly on 0 or exactly on gamma_1, and on every step when both rates are zero.
	NoEvent EventKind = iota
	// Hop is a translational lattice move.
	Hop
	// Rotate is a bond pivot (Model 2) or diagonal move (Model 1).
	Rotate
)

// String returns the lowercase event name used in traces and exports.
func (k EventKind) String() string {
	switch k {
	case Hop:
		return "hop"
	case Rotate:
		return "rotate"
	default:
		return "none"
	}
}

// SelectEvent classifies a step from the continuous sample x1 by splitting
// [0, gamma) into a hop interval of width gamma_1 followed by a rotate
// interval of width gamma_2. No elapsed time is modeled.
//
// Both boundaries are exclusive: x1*gamma == 0 and x1*gamma == gamma_1 yield NoEvent.
func SelectEvent(x1 float64, rates RateConfig) EventKind {
	return selectEvent(x1*rates.Total(), rates.Gamma1)
}

// selectEvent is the loop form of SelectEvent with gamma hoisted by the caller.
func selectEvent(scaled, gamma1 float64) EventKind {
	switch {
	case scaled > 0 && scaled < gamma1:
		return Hop
	case scaled > gamma1:
		return Rotate
	default:
		return NoEvent
	}
}
