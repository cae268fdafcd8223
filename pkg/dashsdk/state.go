package dashsdk

// State describes where the client is in its authentication lifecycle.
// It starts Uninitialized, moves to Checking while the startup silent
// refresh is in flight, and settles on Authenticated or Anonymous.
type State int

const (
	StateUninitialized State = iota
	StateChecking
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateChecking:
		return "checking"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}
