package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// ErrUnknownDirection is returned when a direction cannot be parsed.
var ErrUnknownDirection = errors.New("engine: unknown direction")

// Directions lists every valid direction.
var Directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

// ParseDirection accepts full names ("left") or single letters ("l", also
// vim-style h/j/k), case-insensitive.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u", "k":
		return DirUp, nil
	case "down", "d", "j":
		return DirDown, nil
	case "left", "l", "h":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// ParseMoves parses a compact move string such as "LLUR" or "l,l,u,r".
// Letters are u/d/l/r; commas and spaces are ignored.
func ParseMoves(s string) ([]Direction, error) {
	var dirs []Direction
	for _, ch := range s {
		if ch == ',' || ch == ' ' {
			continue
		}
		var d Direction
		switch ch {
		case 'u', 'U':
			d = DirUp
		case 'd', 'D':
			d = DirDown
		case 'l', 'L':
			d = DirLeft
		case 'r', 'R':
			d = DirRight
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, ch)
		}
		dirs = append(dirs, d)
	}
	return dirs, nil
}
