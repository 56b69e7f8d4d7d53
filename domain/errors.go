package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user-not-found")
	ErrDuplicateUsername = errors.New("duplicate-username")
)

var (
	ErrExpiredToken          = errors.New("expired-token")
	ErrCorruptedToken        = errors.New("corrupted-token")
	ErrInvalidSigningAlg     = errors.New("invalid-signing-alg")
	ErrInvalidTokenSignature = errors.New("invalid-token-signature")
)

// UnexpectedDatabaseError wraps driver failures that are neither a domain
// condition nor a context cancellation.
var UnexpectedDatabaseError = errors.New("unexpected-database-error")

var (
	UnexpectedPasswordHashComparisonError = errors.New("unexpected-password-hash-comparison-error")
	UnexpectedTokenGenerationError        = errors.New("unexpected-token-generation-error")
)
