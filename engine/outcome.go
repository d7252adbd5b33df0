package engine

import mg "ndjin/ndjinmg"

// Result classifies a position from the side to move's point of view.
type Result uint8

const (
	Ongoing Result = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
)

func (r Result) String() string {
	switch r {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case FiftyMoveDraw:
		return "fifty-move draw"
	default:
		return "ongoing"
	}
}

// Outcome reports whether the game is over in pos. Mate and stalemate take
// precedence over the fifty-move rule.
func Outcome(pos *mg.Position) Result {
	legal := LegalMoves(pos)
	if legal.Len() == 0 {
		if pos.InCheck() {
			return Checkmate
		}
		return Stalemate
	}
	if pos.HalfmoveClock() >= 100 {
		return FiftyMoveDraw
	}
	return Ongoing
}
