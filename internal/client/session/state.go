package session

// State is the session manager's lifecycle state. The manager starts in
// StateUnknown until the startup credential check completes, then moves
// between StateAnonymous and StateAuthenticated.
type State int

const (
	StateUnknown State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "invalid"
	}
}
