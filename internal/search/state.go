package search

// State is a worker lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted // pool exhausted
	StateCancelled
	StateFailed // provider or observer error
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool {
	return s >= StateCompleted
}
