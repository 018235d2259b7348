package pagegist

// State is a step of the summarization request lifecycle.
type State string

// State constants.
const (
	StateIdle                State = "idle"
	StateResolvingCredential State = "resolving_credential"
	StateLocatingTab         State = "locating_tab"
	StateInjecting           State = "injecting"
	StateExtracting          State = "extracting"
	StateSummarizing         State = "summarizing"
	StateDone                State = "done"
	StateFailed              State = "failed"
)

// Terminal reports whether s ends an attempt.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// View renders the lifecycle of a summarization attempt.
type View interface {
	// SetStatus is called on every state transition.
	SetStatus(state State, message string)

	// SetSummary is called once when an attempt reaches Done or Failed.
	SetSummary(text string)
}
