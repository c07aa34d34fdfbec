package job

import "strings"

// State names a lifecycle state recorded in a transition. The vocabulary is
// closed: the workload-management system only writes these values, and the
// classifier treats anything else as an unknown forward-compatible state.
type State string

const (
	StateNew          State = "new"
	StateCreated      State = "created"
	StateExecuting    State = "executing"
	StateSuccess      State = "success"
	StateExhausted    State = "exhausted"
	StateKilled       State = "killed"
	StateCleanout     State = "cleanout"
	StateJobCooloff   State = "jobcooloff"
	StateJobFailed    State = "jobfailed"
	StateSubmitFailed State = "submitfailed"
	StateCreateFailed State = "createfailed"
)

var allStates = []State{
	StateNew,
	StateCreated,
	StateExecuting,
	StateSuccess,
	StateExhausted,
	StateKilled,
	StateCleanout,
	StateJobCooloff,
	StateJobFailed,
	StateSubmitFailed,
	StateCreateFailed,
}

var stateSet = func() map[State]struct{} {
	set := make(map[State]struct{}, len(allStates))
	for _, state := range allStates {
		set[state] = struct{}{}
	}
	return set
}()

// AllStates returns the ordered list of known lifecycle states.
func AllStates() []State {
	cp := make([]State, len(allStates))
	copy(cp, allStates)
	return cp
}

// ParseState converts a string into a known State.
func ParseState(value string) (State, bool) {
	normalized := State(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := stateSet[normalized]
	return normalized, ok
}

// Known reports whether the state belongs to the documented vocabulary.
func (s State) Known() bool {
	_, ok := stateSet[s]
	return ok
}
