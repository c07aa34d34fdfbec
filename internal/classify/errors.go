package classify

import (
	"errors"
	"fmt"

	"jobindex/internal/job"
)

var (
	// ErrEmptyHistory mirrors job.ErrEmptyHistory so callers can classify
	// every failure of this package with a single errors.Is sweep.
	ErrEmptyHistory = job.ErrEmptyHistory

	// ErrInsufficientHistory indicates a branch that consults an earlier
	// transition was reached with no earlier transition available.
	ErrInsufficientHistory = errors.New("insufficient transition history")

	// ErrInvalidTransition indicates a (newstate, oldstate) combination the
	// decision table does not cover.
	ErrInvalidTransition = errors.New("invalid state transition")
)

func invalidTransition(newState, oldState job.State) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, newState, oldState)
}

func insufficientHistory(newState job.State, have int) error {
	return fmt.Errorf("%w: %s needs a prior transition, history has %d", ErrInsufficientHistory, newState, have)
}
