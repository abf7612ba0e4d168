package sim

import "github.com/lattice-kmc/kmc-sim/sim/trace"

// Option adjusts a single simulation call.
type Option func(*runOptions)

type runOptions struct {
	trace *trace.StepTrace
}

// WithTrace records every step's event selection into st.
// A nil trace or one at TraceLevelNone records nothing.
func WithTrace(st *trace.StepTrace) Option {
	return func(o *runOptions) {
		o.trace = st
	}
}

func applyOptions(opts []Option) runOptions {
	var o runOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}
