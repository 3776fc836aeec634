package ui

// State is the lifecycle phase of one network action.
type State string

const (
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateFailed  State = "error"
)

// Status tracks one action's request lifecycle. Every network action owns
// exactly one, so independent fetches on the same page never share a loading
// flag or an error line.
type Status struct {
	State State
	Err   string
}

// Start marks the action in flight and clears any earlier error.
func (s *Status) Start() {
	s.State = StateLoading
	s.Err = ""
}

// Fail records the message shown under the action's own section.
func (s *Status) Fail(msg string) {
	s.State = StateFailed
	s.Err = msg
}

// Done settles the action back to idle.
func (s *Status) Done() {
	s.State = StateIdle
	s.Err = ""
}

func (s Status) Loading() bool {
	return s.State == StateLoading
}

// View renders the status line: the spinner frame plus the in-flight verb
// while loading, the error text on failure, nothing when idle.
func (s Status) View(spin, verb string) string {
	switch s.State {
	case StateLoading:
		return spin + " " + verb
	case StateFailed:
		return errorStyle.Render(s.Err)
	default:
		return ""
	}
}
