package services

import "errors"

// Outcomes every controller can tell apart. Conflict is the routine result
// of losing an accept/reject race, not a fault.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrNotOwner     = errors.New("not owner")
	ErrInvalidState = errors.New("invalid state")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)
