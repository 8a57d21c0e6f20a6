package orchestrators

import "errors"

// Shared command errors. Handlers map these onto user-facing notices;
// anything else is an internal failure.
var (
	ErrMissingInput       = errors.New("required input is missing")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyMember      = errors.New("already a member of this club")
	ErrNotMember          = errors.New("not a member of this club")
	ErrNotFound           = errors.New("no such record")
	ErrForbidden          = errors.New("operation not permitted for this role")
	ErrNoSession          = errors.New("no active session")
)
