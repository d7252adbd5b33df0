package ndjinmg

import "strings"

// Position represents the full game state. It is a plain value: assigning or
// copying it clones every field, and == compares every field.
type Position struct {
	// One bitboard per Piece, indexed by Piece (WhitePawn .. BlackKing).
	bitboards [12]uint64

	// occupancy[White], occupancy[Black], occupancy[Both].
	occupancy [3]uint64

	side      Color
	castling  CastlingRights
	enPassant Square
	halfmove  int
	fullmove  int

	// Derived: recomputed after every applied move.
	check CheckStatus
}

// Snapshot is a saved copy of a Position.
type Snapshot struct {
	pos Position
}

// NewPosition returns an empty board with White to move and no rights.
func NewPosition() *Position {
	return &Position{enPassant: NoSquare, fullmove: 1}
}

// NewStartPosition returns the standard initial position.
func NewStartPosition() *Position {
	p := NewPosition()
	p.bitboards[WhitePawn] = 0x000000000000FF00
	p.bitboards[WhiteKnight] = 0x0000000000000042
	p.bitboards[WhiteBishop] = 0x0000000000000024
	p.bitboards[WhiteRook] = 0x0000000000000081
	p.bitboards[WhiteQueen] = 0x0000000000000008
	p.bitboards[WhiteKing] = 0x0000000000000010
	p.bitboards[BlackPawn] = 0x00FF000000000000
	p.bitboards[BlackKnight] = 0x4200000000000000
	p.bitboards[BlackBishop] = 0x2400000000000000
	p.bitboards[BlackRook] = 0x8100000000000000
	p.bitboards[BlackQueen] = 0x0800000000000000
	p.bitboards[BlackKing] = 0x1000000000000000
	p.castling = CastleAll
	p.recomputeOccupancy()
	return p
}

// ==========================
// Accessors
// ==========================

// Bitboard returns the bitboard of the given piece.
func (p *Position) Bitboard(pc Piece) uint64 {
	if !pc.Valid() {
		return 0
	}
	return p.bitboards[pc]
}

// Occupancy returns all squares occupied by side.
func (p *Position) Occupancy(side Color) uint64 { return p.occupancy[side&1] }

// Occupied returns all occupied squares.
func (p *Position) Occupied() uint64 { return p.occupancy[Both] }

// SideToMove returns the side whose turn it is.
func (p *Position) SideToMove() Color { return p.side }

// CastlingRights returns the remaining castling rights.
func (p *Position) CastlingRights() CastlingRights { return p.castling }

// EnPassant returns the en passant target square or NoSquare.
func (p *Position) EnPassant() Square { return p.enPassant }

// HalfmoveClock returns the number of plies since the last pawn move or capture.
func (p *Position) HalfmoveClock() int { return p.halfmove }

// FullmoveNumber returns the move number, starting at 1 and incremented after Black moves.
func (p *Position) FullmoveNumber() int { return p.fullmove }

// CheckStatus returns which side, if any, is in check.
func (p *Position) CheckStatus() CheckStatus { return p.check }

// InCheck reports whether the side to move is in check.
func (p *Position) InCheck() bool {
	return p.check == checkStatusFor(p.side)
}

func checkStatusFor(side Color) CheckStatus {
	if side == White {
		return WhiteInCheck
	}
	return BlackInCheck
}

// PieceAt returns the piece on sq, if any.
func (p *Position) PieceAt(sq Square) (Piece, bool) {
	if !sq.Valid() {
		return NoPiece, false
	}
	bit := uint64(1) << uint(sq)
	if p.occupancy[Both]&bit == 0 {
		return NoPiece, false
	}
	first, last := WhitePawn, WhiteKing
	if p.occupancy[Black]&bit != 0 {
		first, last = BlackPawn, BlackKing
	}
	for pc := first; pc <= last; pc++ {
		if p.bitboards[pc]&bit != 0 {
			return pc, true
		}
	}
	return NoPiece, false
}

// KingSquare returns the square of side's king, or NoSquare if it has none.
func (p *Position) KingSquare(side Color) Square {
	kings := p.bitboards[MakePiece(side, King)]
	if kings == 0 {
		return NoSquare
	}
	return Square(LSBIndex(kings))
}

// ==========================
// Snapshot / restore
// ==========================

// Backup saves every field of the position.
func (p *Position) Backup() Snapshot { return Snapshot{pos: *p} }

// Restore overwrites the position with a saved snapshot.
func (p *Position) Restore(s Snapshot) { *p = s.pos }

// Clone returns an independent copy.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// Equal reports whether two positions agree on every field.
func (p *Position) Equal(o *Position) bool { return *p == *o }

// Position returns the saved position by value.
func (s Snapshot) Position() Position { return s.pos }

// ==========================
// Editing (setup and tests)
// ==========================

// SetPiece places pc on sq, replacing whatever stood there. NoPiece clears the square.
// Occupancy and check status are kept consistent.
func (p *Position) SetPiece(sq Square, pc Piece) {
	mustSquare(sq)
	bit := uint64(1) << uint(sq)
	for i := range p.bitboards {
		p.bitboards[i] &^= bit
	}
	if pc.Valid() {
		p.bitboards[pc] |= bit
	}
	p.recomputeOccupancy()
	p.updateCheckStatus()
}

// SetSideToMove changes the side to move and refreshes the check status.
func (p *Position) SetSideToMove(side Color) {
	p.side = side & 1
	p.updateCheckStatus()
}

// SetCastlingRights replaces the castling rights.
func (p *Position) SetCastlingRights(cr CastlingRights) { p.castling = cr & CastleAll }

// SetEnPassant sets the en passant target; NoSquare clears it.
func (p *Position) SetEnPassant(sq Square) {
	if !sq.Valid() {
		sq = NoSquare
	}
	p.enPassant = sq
}

func (p *Position) recomputeOccupancy() {
	p.occupancy[White] = 0
	p.occupancy[Black] = 0
	for pc := WhitePawn; pc <= WhiteKing; pc++ {
		p.occupancy[White] |= p.bitboards[pc]
	}
	for pc := BlackPawn; pc <= BlackKing; pc++ {
		p.occupancy[Black] |= p.bitboards[pc]
	}
	p.occupancy[Both] = p.occupancy[White] | p.occupancy[Black]
}

// updateCheckStatus recomputes check for the side to move only; the side
// that just moved can never be left in check.
func (p *Position) updateCheckStatus() {
	p.check = CheckNone
	if p.kingAttacked(p.side) {
		p.check = checkStatusFor(p.side)
	}
}

// Consistent reports whether the occupancy invariants hold and no square is
// claimed by two pieces.
func (p *Position) Consistent() bool {
	var seen, white, black uint64
	for pc := WhitePawn; pc <= BlackKing; pc++ {
		bb := p.bitboards[pc]
		if seen&bb != 0 {
			return false
		}
		seen |= bb
		if pc.Color() == White {
			white |= bb
		} else {
			black |= bb
		}
	}
	return p.occupancy[White] == white &&
		p.occupancy[Black] == black &&
		p.occupancy[Both] == white|black &&
		white&black == 0
}

// String draws the board from White's side followed by the state fields.
func (p *Position) String() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteByte('1' + byte(rank))
		sb.WriteString("  ")
		for file := 0; file < 8; file++ {
			pc, _ := p.PieceAt(MakeSquare(file, rank))
			sb.WriteByte(pc.Char())
			if file < 7 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	sb.WriteString("side:      " + p.side.String() + "\n")
	sb.WriteString("castling:  " + p.castling.String() + "\n")
	sb.WriteString("enpassant: " + p.enPassant.String() + "\n")
	sb.WriteString("check:     " + p.check.String() + "\n")
	return sb.String()
}
