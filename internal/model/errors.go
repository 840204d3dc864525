package model

import "errors"

// Common errors used across the application
var (
	// Account errors
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Challenge errors
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrWrongFlag         = errors.New("wrong flag")
	ErrAlreadySolved     = errors.New("challenge already solved")
)
