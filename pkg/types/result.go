package types

import (
	"fmt"
	"time"
)

// ResultStatus is the terminal status of one action invocation.
type ResultStatus string

const (
	// StatusSuccess means the mutation completed.
	StatusSuccess ResultStatus = "success"

	// StatusFailure means the underlying operation reported an error.
	// Failures are recovered at the registry boundary and never abort
	// the run.
	StatusFailure ResultStatus = "failure"

	// StatusDeclined means the user refused the removal of a conflicting
	// alternative, so the action was not attempted. Distinct from both
	// success and failure.
	StatusDeclined ResultStatus = "declined"

	// StatusSkipped means a precondition was not met (for example a
	// required repository is not enabled) and the action chose not to run.
	StatusSkipped ResultStatus = "skipped"
)

// MutationResult is the outcome of invoking one action. Results are
// ephemeral: they are recorded on the session log for the summary and
// never persisted.
type MutationResult struct {
	// Action is the identifier of the invoked action.
	Action ActionID

	// Status is the terminal status of the invocation.
	Status ResultStatus

	// Message provides additional information about the result.
	Message string

	// Err contains the underlying error for failed invocations.
	Err error

	// Duration is how long the invocation took.
	Duration time.Duration
}

// Succeeded reports whether the invocation completed its mutation.
func (r MutationResult) Succeeded() bool { return r.Status == StatusSuccess }

// Failed reports whether the invocation ended in an operation failure.
func (r MutationResult) Failed() bool { return r.Status == StatusFailure }

// String renders a one-line operator-facing description of the result.
func (r MutationResult) String() string {
	if r.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", r.Action, r.Status, r.Err)
	}
	if r.Message != "" {
		return fmt.Sprintf("%s: %s (%s)", r.Action, r.Status, r.Message)
	}
	return fmt.Sprintf("%s: %s", r.Action, r.Status)
}

// Summary aggregates the outcome of a sequence of invocations.
type Summary struct {
	Succeeded int
	Failed    int
	Declined  int
	Skipped   int
}

// Summarize counts results by status.
func Summarize(results []MutationResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusFailure:
			s.Failed++
		case StatusDeclined:
			s.Declined++
		case StatusSkipped:
			s.Skipped++
		}
	}
	return s
}

// Total returns the number of counted results.
func (s Summary) Total() int {
	return s.Succeeded + s.Failed + s.Declined + s.Skipped
}
