package ndjinmg

// castlingRightsMask[sq] is ANDed into the rights whenever a move leaves or
// lands on sq. Moving the king or a rook, or capturing a rook on its home
// square, removes the matching rights.
var castlingRightsMask = [64]CastlingRights{
	13, 15, 15, 15, 12, 15, 15, 14,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	15, 15, 15, 15, 15, 15, 15, 15,
	7, 15, 15, 15, 3, 15, 15, 11,
}

// ApplyMove plays m for the side to move. It returns false, leaving the
// position exactly as it was, when the move would leave the mover's king
// attacked or when m does not describe a piece of the side to move.
func (p *Position) ApplyMove(m EncodedMove) bool {
	if !p.moveFits(m) {
		return false
	}
	saved := p.Backup()

	src, dst, piece, promoted := m.Decode()
	us := p.side
	them := us.Other()
	srcBB := uint64(1) << uint(src)
	dstBB := uint64(1) << uint(dst)

	// Move the piece.
	p.bitboards[piece] = p.bitboards[piece]&^srcBB | dstBB
	p.occupancy[us] = p.occupancy[us]&^srcBB | dstBB

	// Remove whatever stood on the target.
	if m.IsCapture() {
		first := pieceOf(them, Pawn)
		for pc := first; pc < first+6; pc++ {
			if p.bitboards[pc]&dstBB != 0 {
				p.bitboards[pc] &^= dstBB
				break
			}
		}
		p.occupancy[them] &^= dstBB
	}

	if promoted != piece {
		p.bitboards[piece] &^= dstBB
		p.bitboards[promoted] |= dstBB
	}

	// The pawn taken en passant stands behind the target square.
	if m.IsEnPassant() {
		capSq := dst - 8
		if us == Black {
			capSq = dst + 8
		}
		capBB := uint64(1) << uint(capSq)
		p.bitboards[pieceOf(them, Pawn)] &^= capBB
		p.occupancy[them] &^= capBB
	}

	p.enPassant = NoSquare
	if m.IsDoublePush() {
		if us == White {
			p.enPassant = dst - 8
		} else {
			p.enPassant = dst + 8
		}
	}

	if m.IsCastle() {
		rook := pieceOf(us, Rook)
		var rookFrom, rookTo Square
		switch dst {
		case G1:
			rookFrom, rookTo = H1, F1
		case C1:
			rookFrom, rookTo = A1, D1
		case G8:
			rookFrom, rookTo = H8, F8
		case C8:
			rookFrom, rookTo = A8, D8
		}
		if rookFrom != rookTo {
			move := uint64(1)<<uint(rookFrom) | uint64(1)<<uint(rookTo)
			p.bitboards[rook] ^= move
			p.occupancy[us] ^= move
		}
	}

	p.castling &= castlingRightsMask[src] & castlingRightsMask[dst]

	p.occupancy[Both] = p.occupancy[White] | p.occupancy[Black]
	p.side = them

	if p.kingAttacked(us) {
		p.Restore(saved)
		return false
	}

	p.check = CheckNone
	if p.kingAttacked(them) {
		p.check = checkStatusFor(them)
	}

	if piece.Kind() == Pawn || m.IsCapture() {
		p.halfmove = 0
	} else {
		p.halfmove++
	}
	if us == Black {
		p.fullmove++
	}
	return true
}

// ApplyMoveErr is ApplyMove for callers that want an error value. A rejected
// move yields a *MoveError wrapping ErrIllegalMove.
func (p *Position) ApplyMoveErr(m EncodedMove) error {
	if !p.ApplyMove(m) {
		return &MoveError{Move: m, Err: ErrIllegalMove}
	}
	return nil
}

// moveFits checks the structural preconditions ApplyMove relies on, so a
// move received from outside cannot corrupt the bitboards: the moving piece
// belongs to the side to move and stands on the source, the target is not
// occupied by its own side, a castle is one the position still allows, and a
// promotion names a same-colored N, B, R or Q.
func (p *Position) moveFits(m EncodedMove) bool {
	src, dst, piece, promoted := m.Decode()
	if !piece.Valid() || piece.Color() != p.side || src == dst {
		return false
	}
	if p.bitboards[piece]&(1<<uint(src)) == 0 {
		return false
	}
	if p.occupancy[p.side]&(1<<uint(dst)) != 0 {
		return false
	}
	if p.occupancy[p.side.Other()]&(1<<uint(dst)) != 0 && !m.IsCapture() {
		return false
	}
	if m.IsEnPassant() && (piece.Kind() != Pawn || dst != p.enPassant) {
		return false
	}
	if m.IsCastle() && !p.castleFits(m) {
		return false
	}
	if promoted != piece {
		if !promoted.Valid() || promoted.Color() != p.side || piece.Kind() != Pawn {
			return false
		}
		if k := promoted.Kind(); k == Pawn || k == King {
			return false
		}
	}
	return true
}

// castleFits reports whether a castle-flagged move is a king going from its
// home square to its g or c file square with the matching right held, the
// rook on its corner and nothing standing in between.
func (p *Position) castleFits(m EncodedMove) bool {
	if m.IsCapture() {
		return false
	}
	var right CastlingRights
	var path uint64
	var corner Square
	switch src, dst, piece := m.Source(), m.Target(), m.Piece(); {
	case piece == WhiteKing && src == E1 && dst == G1:
		right, path, corner = CastleWhiteKing, whiteKingSidePath, H1
	case piece == WhiteKing && src == E1 && dst == C1:
		right, path, corner = CastleWhiteQueen, whiteQueenSidePath, A1
	case piece == BlackKing && src == E8 && dst == G8:
		right, path, corner = CastleBlackKing, blackKingSidePath, H8
	case piece == BlackKing && src == E8 && dst == C8:
		right, path, corner = CastleBlackQueen, blackQueenSidePath, A8
	default:
		return false
	}
	rook := pieceOf(p.side, Rook)
	return p.castling&right != 0 && p.occupancy[Both]&path == 0 &&
		p.bitboards[rook]&(1<<uint(corner)) != 0
}
