package domain

import "errors"

// Failure taxonomy. Handlers never branch on store errors directly; the
// postgres layer and the services reclassify everything into one of these
// sentinels, and the HTTP error handler maps them to status codes.
var (
	// ErrConstraint marks a store-level integrity violation (duplicate
	// unique field, broken reference, missing required column). Client-caused.
	ErrConstraint = errors.New("constraint violation")

	// ErrInvalidInput marks a field that failed domain validation before
	// reaching the store (unknown enum value, empty required field).
	ErrInvalidInput = errors.New("invalid input")

	ErrUserNotFound = errors.New("user not found")
	ErrCarNotFound  = errors.New("car not found")
	ErrSaleNotFound = errors.New("sales transaction not found")

	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is inactive")
	ErrForbidden          = errors.New("access forbidden")
)
