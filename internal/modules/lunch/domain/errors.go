package domain

import "fmt"

// The coordinator reports failures with one of four kinds. NotFound,
// Forbidden and InvalidState are caller errors and are never retried;
// Unavailable wraps storage faults so callers can decide to retry.

type NotFoundError struct {
	Entity string `json:"entity"`
	ID     string `json:"id"`
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.ID)
}

type ForbiddenError struct {
	Reason string `json:"reason"`
}

func (e ForbiddenError) Error() string {
	return e.Reason
}

type InvalidStateError struct {
	Reason string `json:"reason"`
}

func (e InvalidStateError) Error() string {
	return e.Reason
}

type UnavailableError struct {
	Cause error `json:"-"`
}

func (e UnavailableError) Error() string {
	return fmt.Sprintf("storage unavailable: %v", e.Cause)
}

func (e UnavailableError) Unwrap() error {
	return e.Cause
}
