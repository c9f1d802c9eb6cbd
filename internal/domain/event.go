package domain

// EventType tags a message sent from a running simulation to its caller
type EventType string

const (
	EventProgress  EventType = "progress"
	EventComplete  EventType = "complete"
	EventError     EventType = "error"
	EventCancelled EventType = "cancelled"
)

// SimulationEvent is one progress or terminal message of a simulation run.
// Progress events carry Percent and Completed; a complete event carries Result;
// an error event carries Err.
type SimulationEvent struct {
	Type      EventType        `json:"type"`
	RunID     string           `json:"run_id"`
	Percent   int              `json:"percent"`
	Completed int              `json:"completed"`
	Total     int              `json:"total"`
	Result    *AggregateResult `json:"result,omitempty"`
	Err       error            `json:"-"`
}

// Terminal reports whether no further events follow this one
func (e SimulationEvent) Terminal() bool {
	return e.Type != EventProgress
}
