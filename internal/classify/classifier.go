package classify

import (
	"jobindex/internal/job"
)

// Outcome is the result of the map step for one job document.
type Outcome struct {
	Status job.Status
	Site   job.Site
}

// Document classifies a job document: canonical status from the decision
// table plus the resolved execution site. The document's transition log is
// read, never mutated.
func Document(doc *job.Document) (Outcome, error) {
	status, err := Status(doc.States)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Status: status, Site: ResolveSite(doc.States)}, nil
}

// Status derives the canonical status from a transition log. The final
// transition selects the branch; a few branches disambiguate on the oldstate
// of the final or the second-to-last transition. Combinations outside the
// table fail with ErrInvalidTransition, and branches that need a prior
// transition fail with ErrInsufficientHistory when the log is too short.
// Unknown final states map to the catch-all transition status.
func Status(states job.TransitionLog) (job.Status, error) {
	last, lastIdx, err := states.Last()
	if err != nil {
		return "", err
	}

	switch last.NewState {
	case job.StateCreated:
		switch last.OldState {
		case job.StateNew:
			return job.StatusQueuedFirst, nil
		case job.StateJobCooloff:
			return job.StatusQueuedRetry, nil
		default:
			return "", invalidTransition(last.NewState, last.OldState)
		}

	case job.StateJobCooloff:
		return job.StatusCooloff, nil

	case job.StateExecuting:
		// Whether this is a first submission or a retry was recorded one hop
		// earlier, on the transition that queued the job.
		prev, err := prior(states, lastIdx, last.NewState)
		if err != nil {
			return "", err
		}
		switch prev.OldState {
		case job.StateNew:
			return job.StatusSubmittedFirst, nil
		case job.StateJobCooloff:
			return job.StatusSubmittedRetry, nil
		default:
			return "", invalidTransition(last.NewState, prev.OldState)
		}

	case job.StateSuccess:
		return job.StatusSuccess, nil

	case job.StateExhausted:
		return failureStatus(last.NewState, last.OldState)

	case job.StateKilled:
		return job.StatusCanceled, nil

	case job.StateCleanout:
		switch last.OldState {
		case job.StateSuccess:
			return job.StatusSuccess, nil
		case job.StateExhausted:
			// The failure class was recorded on the hop into exhausted, one
			// position before the cleanout entry.
			prev, err := prior(states, lastIdx, last.NewState)
			if err != nil {
				return "", err
			}
			return failureStatus(last.NewState, prev.OldState)
		default:
			return "", invalidTransition(last.NewState, last.OldState)
		}

	default:
		return job.StatusTransition, nil
	}
}

// ResolveSite scans the transition log in order and returns the most recent
// concrete site assignment. Placeholder entries never overwrite an earlier
// assignment, so a job recalled to the central queue keeps the site it last
// ran at. A log with no assignment at all resolves to the unassigned site.
func ResolveSite(states job.TransitionLog) job.Site {
	resolved := job.UnassignedSite()
	for _, transition := range states {
		if site := transition.Site(); site.Assigned() {
			resolved = site
		}
	}
	return resolved
}

func failureStatus(newState, reason job.State) (job.Status, error) {
	switch reason {
	case job.StateJobFailed:
		return job.StatusFailureException, nil
	case job.StateSubmitFailed:
		return job.StatusFailureSubmit, nil
	case job.StateCreateFailed:
		return job.StatusFailureCreate, nil
	default:
		return "", invalidTransition(newState, reason)
	}
}

func prior(states job.TransitionLog, lastIdx int, newState job.State) (job.Transition, error) {
	if lastIdx < 1 {
		return job.Transition{}, insufficientHistory(newState, lastIdx+1)
	}
	return states[lastIdx-1], nil
}
