package game

import (
	"errors"
	"fmt"
)

// ValidationError is a user-correctable rejection. The command is refused
// before any mutation is computed, and the message is safe to render to the
// issuer verbatim.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validation(msg string) error { return &ValidationError{msg: msg} }

var (
	ErrAlreadySignedUp      = validation("you are already signed up for the game")
	ErrRosterFull           = validation("player list is full, sign up for the next game")
	ErrNotSignedUp          = validation("you have not signed up for the game")
	ErrWrongChannel         = validation("the command has to be executed in the signup channel")
	ErrNarratorRoleUnset    = validation("a narrator role has to be set with the setnarratorrole command")
	ErrNotAuthorized        = validation("you do not have permission to be the narrator")
	ErrNotNarrator          = validation("you're not the narrator for this game")
	ErrNoNarrator           = validation("no narrator set for this game")
	ErrBadPhaseTime         = validation("wrong time format, try e.g. 12:00, 05:12")
	ErrRosterNotFull        = validation("cannot start a game with empty slots")
	ErrNoPhaseTime          = validation("no phase time set")
	ErrGameStarted          = validation("the game has already started")
	ErrGameNotStarted       = validation("the game has not started yet")
	ErrDistributionMismatch = validation("role distribution does not match the player count")
	ErrNotInGame            = validation("user is not in the game")
)

// Validationf builds a one-off user-correctable rejection.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err (or anything it wraps) is a
// user-correctable rejection rather than an infrastructure failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
