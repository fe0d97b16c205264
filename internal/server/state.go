package server

// State is the controller's lifecycle position. Exactly one value holds at
// any time; only the controller mutates it.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Snapshot is the read-only view handed to observers. URL is set only while
// Running; Reason only while Failed.
type Snapshot struct {
	State       State
	URL         string
	Reason      string
	ActiveConns int
}
