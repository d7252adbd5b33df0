package engine

import (
	"math"

	mg "ndjin/ndjinmg"
)

// Material weights per piece kind. The king weight stands in for "the game
// is lost without it" rather than a realistic value.
var PieceWeight = [6]float64{
	mg.Pawn:   1,
	mg.Knight: 3,
	mg.Bishop: 3,
	mg.Rook:   5,
	mg.Queen:  9,
	mg.King:   200,
}

// MobilityWeight scales the legal move count into the score.
const MobilityWeight = 0.1

// MaterialScore returns the weighted piece count of the side to move minus
// that of the opponent.
func MaterialScore(pos *mg.Position) float64 {
	us := pos.SideToMove()
	them := us.Other()
	var score float64
	for k := mg.Pawn; k <= mg.King; k++ {
		own := mg.PopCount(pos.Bitboard(mg.MakePiece(us, k)))
		opp := mg.PopCount(pos.Bitboard(mg.MakePiece(them, k)))
		score += PieceWeight[k] * float64(own-opp)
	}
	return score
}

// FilterLegal keeps the moves of list that ApplyMove accepts. Each candidate
// is applied to pos and pos is restored afterwards whatever the outcome, so
// pos is unchanged on return.
func FilterLegal(pos *mg.Position, list *mg.MoveList) mg.MoveList {
	var legal mg.MoveList
	saved := pos.Backup()
	list.ForEach(func(m mg.EncodedMove) {
		if pos.ApplyMove(m) {
			legal.Add(m)
		}
		pos.Restore(saved)
	})
	return legal
}

// LegalMoves generates and filters in one step.
func LegalMoves(pos *mg.Position) mg.MoveList {
	pseudo := mg.GenerateMoves(pos)
	return FilterLegal(pos, &pseudo)
}

// Evaluate scores pos for the side to move: material plus MobilityWeight per
// legal move. With no legal moves (mate or stalemate) it returns NaN; use
// pos.CheckStatus or Outcome to tell the two apart.
func Evaluate(pos *mg.Position, list *mg.MoveList) float64 {
	legal := FilterLegal(pos, list)
	n := legal.Len()
	if n == 0 {
		return math.NaN()
	}
	return MaterialScore(pos) + MobilityWeight*float64(n)
}

// IsTerminal reports whether v is the no-legal-moves sentinel returned by Evaluate.
func IsTerminal(v float64) bool { return math.IsNaN(v) }
