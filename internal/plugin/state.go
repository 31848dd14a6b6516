package plugin

// State represents the lifecycle state of a plugin.
type State int

// Plugin states.
const (
	// StateRegistered - plugin is in the registry but Init has not run.
	StateRegistered State = iota

	// StateInitialized - Init returned true.
	StateInitialized

	// StateFailed - Init returned false or panicked. The plugin is inert
	// but still receives Update and OnEvent.
	StateFailed

	// StateShutdown - Shutdown has run.
	StateShutdown
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateInitialized:
		return "initialized"
	case StateFailed:
		return "failed"
	case StateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// Live returns true if the plugin receives Update and OnEvent calls.
func (s State) Live() bool {
	return s == StateInitialized || s == StateFailed
}
