package llm

import "errors"

var (
	// ErrUnavailable indicates the completion backend could not be reached.
	ErrUnavailable = errors.New("llm backend unavailable")

	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response text held no parseable JSON
	// of the expected shape.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrEmptyOutput indicates the backend answered, or extraction
	// finished, with nothing usable.
	ErrEmptyOutput = errors.New("llm produced no output")

	// ErrRetryExhausted indicates every permitted attempt failed.
	ErrRetryExhausted = errors.New("llm attempts exhausted")
)
