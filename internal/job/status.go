package job

import "strings"

// Status is a canonical human-meaningful job status derived from the
// transition log. These are the only values the classifier emits.
type Status string

const (
	StatusQueuedFirst      Status = "queued_first"
	StatusQueuedRetry      Status = "queued_retry"
	StatusCooloff          Status = "cooloff"
	StatusSubmittedFirst   Status = "submitted_first"
	StatusSubmittedRetry   Status = "submitted_retry"
	StatusSuccess          Status = "success"
	StatusFailureException Status = "failure_exception"
	StatusFailureSubmit    Status = "failure_submit"
	StatusFailureCreate    Status = "failure_create"
	StatusCanceled         Status = "canceled"

	// StatusTransition is the catch-all for lifecycle states the index does
	// not classify further. New states added upstream land here instead of
	// failing the scan.
	StatusTransition Status = "transition"
)

var allStatuses = []Status{
	StatusQueuedFirst,
	StatusQueuedRetry,
	StatusCooloff,
	StatusSubmittedFirst,
	StatusSubmittedRetry,
	StatusSuccess,
	StatusFailureException,
	StatusFailureSubmit,
	StatusFailureCreate,
	StatusCanceled,
	StatusTransition,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

// AllStatuses returns the ordered list of canonical statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsFailure reports whether the status represents a terminal failure class.
func (s Status) IsFailure() bool {
	switch s {
	case StatusFailureException, StatusFailureSubmit, StatusFailureCreate:
		return true
	default:
		return false
	}
}
