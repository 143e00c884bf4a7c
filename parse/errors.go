package parse

import (
	"fmt"

	"birch/cst"
)

// Error is one syntax error with the position it was detected at.
type Error struct {
	Pos cst.Position
	Msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// ErrorList collects the syntax errors of one parse in source order.
type ErrorList []*Error

func (l ErrorList) Len() int { return len(l) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	return fmt.Sprintf("%s (and %d more errors)", l[0], len(l)-1)
}

// Err returns the list as an error, or nil when it is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
