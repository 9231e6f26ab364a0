package cache

import (
	"errors"
	"fmt"
)

// ErrNotFound means nothing is stored for a player and no source knows them.
var ErrNotFound = errors.New("player not found")

// ErrNotStored is returned by a Store that holds nothing for the key.
var ErrNotStored = errors.New("no stored profile")

// NotFoundError carries the player name and the acquisition failure.
// It matches both ErrNotFound and the underlying cause under errors.Is.
type NotFoundError struct {
	Player string
	Err    error
}

func (e *NotFoundError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Player, ErrNotFound)
	}
	return fmt.Sprintf("%s: %v: %v", e.Player, ErrNotFound, e.Err)
}

func (e *NotFoundError) Unwrap() []error {
	return []error{ErrNotFound, e.Err}
}
