// Package trace provides per-step event recording for trajectory analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventKind names the process selected on a step: "hop", "rotate" or "none".
type EventKind string

const (
	EventNone   EventKind = "none"
	EventHop    EventKind = "hop"
	EventRotate EventKind = "rotate"
)

// EventRecord captures a single step's event selection.
type EventRecord struct {
	Step        int       // zero-based step index; matches the trajectory index
	Kind        EventKind // selected process
	Continuous  float64   // x1, uniform on [0, 1)
	Discrete    int       // x2, drawn every step even when unused
	Orientation int       // orientation after the step (Model 2), -1 for Model 1
}
