package ndjinmg

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match with errors.Is.
var (
	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN")

	// ErrIllegalMove indicates a move that would leave the mover's king attacked
	// or that does not fit the position at all.
	ErrIllegalMove = errors.New("illegal move")

	// ErrUnknownMove indicates move text that matches no generated move.
	ErrUnknownMove = errors.New("unknown move")

	// ErrSquareOutOfRange indicates a square outside 0..63.
	ErrSquareOutOfRange = errors.New("square out of range")

	// ErrMagicNotFound indicates the magic search gave up; the slider tables cannot be trusted.
	ErrMagicNotFound = errors.New("magic number search exhausted")
)

// ParseError describes which FEN field was rejected and why.
type ParseError struct {
	Field  string // placement, side, castling, en passant, halfmove, fullmove
	Value  string
	Reason string
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid FEN: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid FEN: %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidFEN).
func (e *ParseError) Unwrap() error { return ErrInvalidFEN }

// MoveError wraps a move rejection with the offending move.
type MoveError struct {
	Move EncodedMove
	Text string
	Err  error
}

func (e *MoveError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Text)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Move)
}

func (e *MoveError) Unwrap() error { return e.Err }

// SquareError reports a square index or coordinate that is not on the board.
type SquareError struct {
	Square Square
	Text   string
}

func (e *SquareError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%v: %q", ErrSquareOutOfRange, e.Text)
	}
	return fmt.Sprintf("%v: %d", ErrSquareOutOfRange, int(e.Square))
}

func (e *SquareError) Unwrap() error { return ErrSquareOutOfRange }

// mustSquare panics on squares outside the board. Table lookups index fixed
// arrays, so a bad square is a caller bug rather than a recoverable condition.
func mustSquare(sq Square) {
	if sq < 0 || sq >= 64 {
		panic(&SquareError{Square: sq})
	}
}
