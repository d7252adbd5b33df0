package ndjinmg

// pieceOf is MakePiece without range checks, for the generator's hot loops.
func pieceOf(c Color, k Kind) Piece { return Piece(uint8(c)*6 + uint8(k)) }

// ==========================
// Attack detection
// ==========================

// IsSquareAttacked reports whether any piece of side by attacks sq.
func (p *Position) IsSquareAttacked(sq Square, by Color) bool {
	mustSquare(sq)
	return p.attacked(int(sq), by&1)
}

func (p *Position) attacked(sq int, by Color) bool {
	// A pawn of 'by' attacks sq iff a pawn of the other side on sq would attack it back.
	if pawnAttacks[by.Other()][sq]&p.bitboards[pieceOf(by, Pawn)] != 0 {
		return true
	}
	if knightAttacks[sq]&p.bitboards[pieceOf(by, Knight)] != 0 {
		return true
	}
	if kingAttacks[sq]&p.bitboards[pieceOf(by, King)] != 0 {
		return true
	}
	occ := p.occupancy[Both]
	queens := p.bitboards[pieceOf(by, Queen)]
	if bishopAttacksFor(sq, occ)&(p.bitboards[pieceOf(by, Bishop)]|queens) != 0 {
		return true
	}
	return rookAttacksFor(sq, occ)&(p.bitboards[pieceOf(by, Rook)]|queens) != 0
}

// kingAttacked reports whether side's king is attacked. A side without a king
// is never in check.
func (p *Position) kingAttacked(side Color) bool {
	kings := p.bitboards[pieceOf(side, King)]
	if kings == 0 {
		return false
	}
	return p.attacked(LSBIndex(kings), side.Other())
}

// AttackedSquares returns every square attacked by side.
func (p *Position) AttackedSquares(side Color) uint64 {
	var att uint64
	occ := p.occupancy[Both]
	for k := Pawn; k <= King; k++ {
		bb := p.bitboards[pieceOf(side, k)]
		for bb != 0 {
			sq := popLSB(&bb)
			switch k {
			case Pawn:
				att |= pawnAttacks[side][sq]
			case Knight:
				att |= knightAttacks[sq]
			case Bishop:
				att |= bishopAttacksFor(sq, occ)
			case Rook:
				att |= rookAttacksFor(sq, occ)
			case Queen:
				att |= bishopAttacksFor(sq, occ) | rookAttacksFor(sq, occ)
			case King:
				att |= kingAttacks[sq]
			}
		}
	}
	return att
}

// ==========================
// Generation
// ==========================

// GenerateMoves returns the pseudo-legal moves for the side to move. The
// position is not modified. Moves that leave the mover's king attacked are
// included; ApplyMove rejects them.
func GenerateMoves(pos *Position) MoveList {
	var l MoveList
	pos.GenerateMovesInto(&l)
	return l
}

// GenerateMovesInto resets l and fills it with the pseudo-legal moves.
func (p *Position) GenerateMovesInto(l *MoveList) {
	l.Reset()
	side := p.side
	own := p.occupancy[side]
	occ := p.occupancy[Both]

	p.genPawnMoves(l)

	knight := pieceOf(side, Knight)
	bb := p.bitboards[knight]
	for bb != 0 {
		from := popLSB(&bb)
		p.addTargets(l, knight, Square(from), knightAttacks[from]&^own)
	}

	bishop := pieceOf(side, Bishop)
	bb = p.bitboards[bishop]
	for bb != 0 {
		from := popLSB(&bb)
		p.addTargets(l, bishop, Square(from), bishopAttacksFor(from, occ)&^own)
	}

	rook := pieceOf(side, Rook)
	bb = p.bitboards[rook]
	for bb != 0 {
		from := popLSB(&bb)
		p.addTargets(l, rook, Square(from), rookAttacksFor(from, occ)&^own)
	}

	queen := pieceOf(side, Queen)
	bb = p.bitboards[queen]
	for bb != 0 {
		from := popLSB(&bb)
		p.addTargets(l, queen, Square(from), (bishopAttacksFor(from, occ)|rookAttacksFor(from, occ))&^own)
	}

	king := pieceOf(side, King)
	bb = p.bitboards[king]
	for bb != 0 {
		from := popLSB(&bb)
		p.addTargets(l, king, Square(from), kingAttacks[from]&^own)
	}
	p.genCastling(l)
}

// addTargets emits one move per target square, flagging captures.
func (p *Position) addTargets(l *MoveList, pc Piece, from Square, targets uint64) {
	opp := p.occupancy[p.side.Other()]
	for targets != 0 {
		to := popLSB(&targets)
		capture := opp&(1<<uint(to)) != 0
		l.Add(EncodeMove(from, Square(to), pc, pc, capture, false, false, false))
	}
}

// addPromotions emits the four under- and full promotions in N, B, R, Q order.
func addPromotions(l *MoveList, from, to Square, side Color, capture bool) {
	pawn := pieceOf(side, Pawn)
	for k := Knight; k <= Queen; k++ {
		l.Add(EncodeMove(from, to, pawn, pieceOf(side, k), capture, false, false, false))
	}
}

func (p *Position) genPawnMoves(l *MoveList) {
	side := p.side
	pawn := pieceOf(side, Pawn)
	opp := p.occupancy[side.Other()]
	occ := p.occupancy[Both]

	push, startRank, lastRank := 8, 1, 7
	if side == Black {
		push, startRank, lastRank = -8, 6, 0
	}

	pawns := p.bitboards[pawn]
	for pawns != 0 {
		from := popLSB(&pawns)
		src := Square(from)

		// Pushes
		one := from + push
		if one >= 0 && one < 64 && occ&(1<<uint(one)) == 0 {
			if Square(one).Rank() == lastRank {
				addPromotions(l, src, Square(one), side, false)
			} else {
				l.Add(EncodeMove(src, Square(one), pawn, pawn, false, false, false, false))
				if src.Rank() == startRank {
					two := one + push
					if occ&(1<<uint(two)) == 0 {
						l.Add(EncodeMove(src, Square(two), pawn, pawn, false, true, false, false))
					}
				}
			}
		}

		// Captures
		att := pawnAttacks[side][from]
		caps := att & opp
		for caps != 0 {
			to := popLSB(&caps)
			dst := Square(to)
			if dst.Rank() == lastRank {
				addPromotions(l, src, dst, side, true)
			} else {
				l.Add(EncodeMove(src, dst, pawn, pawn, true, false, false, false))
			}
		}

		// En passant
		if p.enPassant != NoSquare && att&(1<<uint(p.enPassant)) != 0 {
			l.Add(EncodeMove(src, p.enPassant, pawn, pawn, true, false, true, false))
		}
	}
}

// Squares that must be empty between king and rook.
const (
	whiteKingSidePath  uint64 = 1<<F1 | 1<<G1
	whiteQueenSidePath uint64 = 1<<B1 | 1<<C1 | 1<<D1
	blackKingSidePath  uint64 = 1<<F8 | 1<<G8
	blackQueenSidePath uint64 = 1<<B8 | 1<<C8 | 1<<D8
)

// genCastling adds castling moves. The king's square and the square it
// crosses must not be attacked; the landing square is checked by ApplyMove.
func (p *Position) genCastling(l *MoveList) {
	occ := p.occupancy[Both]
	if p.side == White {
		king, rook := pieceOf(White, King), pieceOf(White, Rook)
		if p.bitboards[king]&(1<<E1) == 0 {
			return
		}
		if p.castling&CastleWhiteKing != 0 && occ&whiteKingSidePath == 0 &&
			p.bitboards[rook]&(1<<H1) != 0 &&
			!p.attacked(int(E1), Black) && !p.attacked(int(F1), Black) {
			l.Add(EncodeMove(E1, G1, king, king, false, false, false, true))
		}
		if p.castling&CastleWhiteQueen != 0 && occ&whiteQueenSidePath == 0 &&
			p.bitboards[rook]&(1<<A1) != 0 &&
			!p.attacked(int(E1), Black) && !p.attacked(int(D1), Black) {
			l.Add(EncodeMove(E1, C1, king, king, false, false, false, true))
		}
		return
	}

	king, rook := pieceOf(Black, King), pieceOf(Black, Rook)
	if p.bitboards[king]&(1<<E8) == 0 {
		return
	}
	if p.castling&CastleBlackKing != 0 && occ&blackKingSidePath == 0 &&
		p.bitboards[rook]&(1<<H8) != 0 &&
		!p.attacked(int(E8), White) && !p.attacked(int(F8), White) {
		l.Add(EncodeMove(E8, G8, king, king, false, false, false, true))
	}
	if p.castling&CastleBlackQueen != 0 && occ&blackQueenSidePath == 0 &&
		p.bitboards[rook]&(1<<A8) != 0 &&
		!p.attacked(int(E8), White) && !p.attacked(int(D8), White) {
		l.Add(EncodeMove(E8, C8, king, king, false, false, false, true))
	}
}
