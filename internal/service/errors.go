package service

import "errors"

var (
	// ErrNoSubjects means there is nothing to schedule; the oracle is not called.
	ErrNoSubjects = errors.New("no subjects to schedule")
	// ErrOracleFailure means the completion call failed and the run was aborted.
	ErrOracleFailure = errors.New("schedule generation failed")
	// ErrExtractionFailure means no schedule could be recovered from the reply.
	ErrExtractionFailure = errors.New("could not read generated schedule")
	// ErrEmptyResult means every proposed session was rejected.
	ErrEmptyResult = errors.New("no schedulable sessions produced")
	// ErrQuizUnavailable means the quiz could not be generated.
	ErrQuizUnavailable = errors.New("quiz unavailable")
	// ErrSummaryUnavailable means the summary could not be generated.
	ErrSummaryUnavailable = errors.New("summary unavailable")
	// ErrInvalidSettings wraps validation failures of user input.
	ErrInvalidSettings = errors.New("invalid settings")
	// ErrForbidden means the entity belongs to another user.
	ErrForbidden = errors.New("not owned by user")
)
