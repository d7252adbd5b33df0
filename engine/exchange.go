package engine

import mg "ndjin/ndjinmg"

// ExchangeGain is a static exchange evaluation of m: the material, in
// PieceWeight units, that the side to move wins by playing the capture and
// then letting both sides recapture on the target square with their least
// valuable attacker for as long as it pays. Sliders uncovered behind an
// attacker join the exchange. Quiet moves score 0. Pins and checks are
// ignored.
func ExchangeGain(pos *mg.Position, m mg.EncodedMove) float64 {
	if !m.IsCapture() {
		return 0
	}
	to := m.Target()
	occ := pos.Occupied()

	var gain [32]float64
	if m.IsEnPassant() {
		gain[0] = PieceWeight[mg.Pawn]
		occ &^= 1 << uint(mg.MakeSquare(to.File(), m.Source().Rank()))
	} else if victim, ok := pos.PieceAt(to); ok {
		gain[0] = PieceWeight[victim.Kind()]
	}

	side := pos.SideToMove()
	attacker := m.Piece().Kind()
	if m.IsPromotion() {
		attacker = m.Promoted().Kind()
		gain[0] += PieceWeight[attacker] - PieceWeight[mg.Pawn]
	}
	from := uint64(1) << uint(m.Source())

	d := 0
	for d < len(gain)-1 {
		d++
		// Speculative: only counted if side has a piece to take back with.
		gain[d] = PieceWeight[attacker] - gain[d-1]
		occ &^= from
		side = side.Other()
		var ok bool
		from, attacker, ok = leastValuableAttacker(pos, to, occ, side)
		if !ok {
			break
		}
	}
	for d--; d > 0; d-- {
		gain[d-1] = -max(-gain[d-1], gain[d])
	}
	return gain[0]
}

// leastValuableAttacker finds the cheapest piece of side that attacks sq
// through occ. Pieces missing from occ have already been exchanged.
func leastValuableAttacker(pos *mg.Position, sq mg.Square, occ uint64, side mg.Color) (uint64, mg.Kind, bool) {
	bishops := mg.GetBishopAttacks(sq, occ)
	rooks := mg.GetRookAttacks(sq, occ)
	for k := mg.Pawn; k <= mg.King; k++ {
		bb := pos.Bitboard(mg.MakePiece(side, k)) & occ
		switch k {
		case mg.Pawn:
			bb &= mg.PawnAttacks(side.Other(), sq)
		case mg.Knight:
			bb &= mg.KnightAttacks(sq)
		case mg.Bishop:
			bb &= bishops
		case mg.Rook:
			bb &= rooks
		case mg.Queen:
			bb &= bishops | rooks
		case mg.King:
			bb &= mg.KingAttacks(sq)
		}
		if bb != 0 {
			return bb & -bb, k, true
		}
	}
	return 0, 0, false
}
