package entity

import "errors"

// Sentinel errors surfaced to the caller. Validation findings never travel as
// errors; they accumulate in the merger instead.
var (
	ErrInvalidUtterance = errors.New("utterance is empty or exceeds the size limit")
	ErrPlanNotFound     = errors.New("no active plan for user")
	ErrLLM              = errors.New("llm completion failed")
	ErrMapsUnavailable  = errors.New("maps collaborator unavailable")
	ErrTimeout          = errors.New("turn deadline exceeded")
)
