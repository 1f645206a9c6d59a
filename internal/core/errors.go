package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedTeam is returned when a team reference cannot be mapped to
	// a handle. The game halts rather than guessing a side.
	ErrUnresolvedTeam = errors.New("unresolved team")

	// ErrInvalidTransition is returned when a proposed state change fails its
	// postconditions. The play is not committed.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrOutOfRange is returned by the trackers for a field position or down
	// outside legal bounds. It escalates to ErrInvalidTransition at commit.
	ErrOutOfRange = errors.New("value out of range")
)

// PlayError identifies the play and pipeline stage that halted a game.
type PlayError struct {
	Index     int
	Component string
	Err       error
}

func (e *PlayError) Error() string {
	return fmt.Sprintf("play %d: %s: %v", e.Index, e.Component, e.Err)
}

func (e *PlayError) Unwrap() error {
	return e.Err
}
