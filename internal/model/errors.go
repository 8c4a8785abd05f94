package model

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by the game engine wraps exactly one of these.
var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrStateConflict = errors.New("state conflict")
	ErrNotFound      = errors.New("not found")
)

var (
	// User errors
	ErrEmptyNickname = fmt.Errorf("%w: nickname is required", ErrInvalidInput)
	ErrUnknownUser   = fmt.Errorf("%w: unknown user token", ErrUnauthorized)

	// Match errors
	ErrTimeLimitOutOfRange = fmt.Errorf("%w: time limit out of range", ErrInvalidInput)
	ErrEmptyWord           = fmt.Errorf("%w: word is required", ErrInvalidInput)
	ErrNotParticipant      = fmt.Errorf("%w: user is not a player in this match", ErrUnauthorized)
	ErrNotSeated           = fmt.Errorf("%w: user is not seated in the pending match", ErrUnauthorized)
	ErrAlreadySeated       = fmt.Errorf("%w: user is already seated in this match", ErrStateConflict)
	ErrMatchNotActive      = fmt.Errorf("%w: match is not active", ErrStateConflict)
	ErrMatchNotFound       = fmt.Errorf("%w: match not found", ErrNotFound)

	// Storage errors
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrNotFound)

	// Board errors
	ErrInvalidBoard = fmt.Errorf("%w: board must be a square grid of letters", ErrInvalidInput)
)
