package services

import "errors"

// Sentinel errors; controllers map these to HTTP status codes.
var (
	// not found
	ErrUserNotFound     = errors.New("user not found")
	ErrProgressNotFound = errors.New("progress record not found")
	ErrWorkoutNotFound  = errors.New("workout not found")

	// conflict
	ErrEmailTaken       = errors.New("email already registered")
	ErrUsernameTaken    = errors.New("username already taken")
	ErrSlotTaken        = errors.New("workout slot already filled for this day")
	ErrChallengeStarted = errors.New("challenge already started, reset progress first to restart")

	// validation
	ErrInvalidInput = errors.New("invalid input")

	// auth
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("incorrect current password")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)
