package engine

// State is the lifecycle stage of an engine. Transitions are strictly
// Initializing -> Running -> Finished and happen once per engine.
type State int

const (
	StateInitializing State = iota
	StateRunning
	StateFinished
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
