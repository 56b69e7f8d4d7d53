package auth

import "errors"

var (
	ErrIncorrectPassword     = errors.New("incorrect-password")
	ErrWeakPassword          = errors.New("weak-password")
	ErrPasswordTooLong       = errors.New("password-too-long")
	ErrInvalidUsernameFormat = errors.New("invalid-username-format")
)
