package lifecycle

// State is the emulator's lifecycle state.
type State int

const (
	StateNotStarted State = iota
	StateStarting
	StateReady
	StateStopped
	StateFailed
)

var allStates = []State{StateNotStarted, StateStarting, StateReady, StateStopped, StateFailed}

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateStarting:
		return "Starting"
	case StateReady:
		return "Ready"
	case StateStopped:
		return "Stopped"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

func stateNames() []string {
	names := make([]string, len(allStates))
	for i, s := range allStates {
		names[i] = s.String()
	}
	return names
}
