package trace

// TraceLevel controls the verbosity of step tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures the event kind and discrete sample of every step.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// StepTrace collects per-step event records during a single trajectory run.
// Not safe for concurrent use; ensemble members each own their trace.
type StepTrace struct {
	Config TraceConfig
	Events []EventRecord
}

// NewStepTrace creates a StepTrace ready for recording.
func NewStepTrace(config TraceConfig) *StepTrace {
	return &StepTrace{
		Config: config,
		Events: make([]EventRecord, 0),
	}
}

// Enabled reports whether records should be collected. Safe on a nil trace.
func (st *StepTrace) Enabled() bool {
	return st != nil && st.Config.Level == TraceLevelEvents
}

// Grow reserves capacity for n further records.
func (st *StepTrace) Grow(n int) {
	if n <= 0 || cap(st.Events)-len(st.Events) >= n {
		return
	}
	events := make([]EventRecord, len(st.Events), len(st.Events)+n)
	copy(events, st.Events)
	st.Events = events
}

// RecordEvent appends a step record.
func (st *StepTrace) RecordEvent(record EventRecord) {
	st.Events = append(st.Events, record)
}
