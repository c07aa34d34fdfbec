package classify_test

import (
	"errors"
	"testing"

	"jobindex/internal/classify"
	"jobindex/internal/job"
)

func transition(old, new job.State, location string) job.Transition {
	return job.Transition{OldState: old, NewState: new, Location: location}
}

func TestStatusDecisionTable(t *testing.T) {
	cases := []struct {
		name   string
		states job.TransitionLog
		want   job.Status
	}{
		{
			name:   "first creation queues the job",
			states: job.TransitionLog{transition(job.StateNew, job.StateCreated, "Agent")},
			want:   job.StatusQueuedFirst,
		},
		{
			name: "creation after cooloff is a retry",
			states: job.TransitionLog{
				transition(job.StateNew, job.StateCreated, "Agent"),
				transition(job.StateJobFailed, job.StateJobCooloff, "siteA"),
				transition(job.StateJobCooloff, job.StateCreated, "Agent"),
			},
			want: job.StatusQueuedRetry,
		},
		{
			name: "cooloff",
			states: job.TransitionLog{
				transition(job.StateNew, job.StateCreated, "Agent"),
				transition(job.StateJobFailed, job.StateJobCooloff, "siteA"),
			},
			want: job.StatusCooloff,
		},
		{
			name: "first submission",
			states: job.TransitionLog{
				transition(job.StateNew, job.StateCreated, "Agent"),
				transition(job.StateCreated, job.StateExecuting, "siteA"),
			},
			want: job.StatusSubmittedFirst,
		},
		{
			name: "resubmission after cooloff",
			states: job.TransitionLog{
				transition(job.StateJobCooloff, job.StateCreated, "Agent"),
				transition(job.StateCreated, job.StateExecuting, "siteB"),
			},
			want: job.StatusSubmittedRetry,
		},
		{
			name: "success",
			states: job.TransitionLog{
				transition(job.StateExecuting, job.StateSuccess, "siteA"),
			},
			want: job.StatusSuccess,
		},
		{
			name: "exhausted after job failure",
			states: job.TransitionLog{
				transition(job.StateJobFailed, job.StateExhausted, "siteA"),
			},
			want: job.StatusFailureException,
		},
		{
			name: "exhausted after submit failure",
			states: job.TransitionLog{
				transition(job.StateSubmitFailed, job.StateExhausted, "Agent"),
			},
			want: job.StatusFailureSubmit,
		},
		{
			name: "exhausted after create failure",
			states: job.TransitionLog{
				transition(job.StateCreateFailed, job.StateExhausted, "Agent"),
			},
			want: job.StatusFailureCreate,
		},
		{
			name: "killed",
			states: job.TransitionLog{
				transition(job.StateExecuting, job.StateKilled, "siteA"),
			},
			want: job.StatusCanceled,
		},
		{
			name: "cleanout after success",
			states: job.TransitionLog{
				transition(job.StateExecuting, job.StateSuccess, "siteA"),
				transition(job.StateSuccess, job.StateCleanout, "siteA"),
			},
			want: job.StatusSuccess,
		},
		{
			name: "cleanout after exhausted job failure",
			states: job.TransitionLog{
				transition(job.StateJobFailed, job.StateExhausted, "siteA"),
				transition(job.StateExhausted, job.StateCleanout, "siteA"),
			},
			want: job.StatusFailureException,
		},
		{
			name: "cleanout after exhausted submit failure",
			states: job.TransitionLog{
				transition(job.StateSubmitFailed, job.StateExhausted, "siteX"),
				transition(job.StateExhausted, job.StateCleanout, "siteY"),
			},
			want: job.StatusFailureSubmit,
		},
		{
			name: "cleanout after exhausted create failure",
			states: job.TransitionLog{
				transition(job.StateCreateFailed, job.StateExhausted, "Agent"),
				transition(job.StateExhausted, job.StateCleanout, "Agent"),
			},
			want: job.StatusFailureCreate,
		},
		{
			name: "unknown final state falls back to transition",
			states: job.TransitionLog{
				transition(job.StateCreated, "assigned", "siteA"),
			},
			want: job.StatusTransition,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := classify.Status(tc.states)
			if err != nil {
				t.Fatalf("Status failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Status = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStatusInvalidTransitions(t *testing.T) {
	cases := []struct {
		name   string
		states job.TransitionLog
	}{
		{
			name:   "created from unexpected state",
			states: job.TransitionLog{transition("bogus", job.StateCreated, "Agent")},
		},
		{
			name: "executing with unexpected prior oldstate",
			states: job.TransitionLog{
				transition(job.StateSuccess, job.StateCreated, "Agent"),
				transition(job.StateCreated, job.StateExecuting, "siteA"),
			},
		},
		{
			name:   "exhausted from unexpected state",
			states: job.TransitionLog{transition(job.StateExecuting, job.StateExhausted, "siteA")},
		},
		{
			name: "cleanout from unexpected state",
			states: job.TransitionLog{
				transition(job.StateExecuting, job.StateCleanout, "siteA"),
			},
		},
		{
			name: "cleanout after exhausted with unexpected prior oldstate",
			states: job.TransitionLog{
				transition(job.StateExecuting, job.StateExhausted, "siteA"),
				transition(job.StateExhausted, job.StateCleanout, "siteA"),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := classify.Status(tc.states)
			if !errors.Is(err, classify.ErrInvalidTransition) {
				t.Fatalf("expected ErrInvalidTransition, got %v", err)
			}
		})
	}
}

func TestStatusInsufficientHistory(t *testing.T) {
	cases := []struct {
		name   string
		states job.TransitionLog
	}{
		{
			name:   "executing as the only transition",
			states: job.TransitionLog{transition(job.StateCreated, job.StateExecuting, "siteA")},
		},
		{
			name:   "cleanout from exhausted as the only transition",
			states: job.TransitionLog{transition(job.StateExhausted, job.StateCleanout, "siteA")},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := classify.Status(tc.states)
			if !errors.Is(err, classify.ErrInsufficientHistory) {
				t.Fatalf("expected ErrInsufficientHistory, got %v", err)
			}
		})
	}
}

func TestStatusEmptyHistory(t *testing.T) {
	_, err := classify.Status(nil)
	if !errors.Is(err, classify.ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
}

func TestResolveSite(t *testing.T) {
	cases := []struct {
		name      string
		locations []string
		want      string
	}{
		{"latest concrete site wins", []string{"Agent", "siteA", "Agent", "siteB", "Agent"}, "siteB"},
		{"all placeholder", []string{"Agent", "Agent"}, "Agent"},
		{"single site", []string{"siteA"}, "siteA"},
		{"empty log", nil, "Agent"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			states := make(job.TransitionLog, 0, len(tc.locations))
			for _, location := range tc.locations {
				states = append(states, transition(job.StateNew, job.StateCreated, location))
			}
			site := classify.ResolveSite(states)
			if site.String() != tc.want {
				t.Fatalf("ResolveSite = %q, want %q", site.String(), tc.want)
			}
		})
	}
}

func TestDocumentCombinesStatusAndSite(t *testing.T) {
	doc := &job.Document{
		Type:     job.DocTypeJob,
		Workflow: "wf-alpha",
		States: job.TransitionLog{
			transition(job.StateNew, job.StateCreated, "Agent"),
			transition(job.StateCreated, job.StateExecuting, "siteA"),
		},
	}

	outcome, err := classify.Document(doc)
	if err != nil {
		t.Fatalf("Document failed: %v", err)
	}
	if outcome.Status != job.StatusSubmittedFirst {
		t.Fatalf("Status = %q, want %q", outcome.Status, job.StatusSubmittedFirst)
	}
	if outcome.Site.String() != "siteA" {
		t.Fatalf("Site = %q, want siteA", outcome.Site.String())
	}
}

func TestDocumentIsDeterministic(t *testing.T) {
	doc := &job.Document{
		Type:     job.DocTypeJob,
		Workflow: "wf-beta",
		States: job.TransitionLog{
			transition(job.StateSubmitFailed, job.StateExhausted, "siteX"),
			transition(job.StateExhausted, job.StateCleanout, "Agent"),
		},
	}

	first, err := classify.Document(doc)
	if err != nil {
		t.Fatalf("first classification failed: %v", err)
	}
	second, err := classify.Document(doc)
	if err != nil {
		t.Fatalf("second classification failed: %v", err)
	}
	if first != second {
		t.Fatalf("classification not deterministic: %#v vs %#v", first, second)
	}
	if first.Status != job.StatusFailureSubmit || first.Site.String() != "siteX" {
		t.Fatalf("unexpected outcome: %#v", first)
	}
}
