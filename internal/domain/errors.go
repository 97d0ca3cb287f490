package domain

import "errors"

// Domain errors (no external dependencies). The HTTP layer maps these to
// status codes; Conflict and Unprocessable are surfaced as distinct
// outcomes, while authentication failures are collapsed at the boundary.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrCredentialMismatch = errors.New("credentials do not match")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrUnprocessable      = errors.New("referenced data does not exist")
	ErrInvalidInput       = errors.New("invalid input")
)
