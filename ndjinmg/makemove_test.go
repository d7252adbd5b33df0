package ndjinmg_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	mg "ndjin/ndjinmg"
)

var roundTripFENs = []string{
	mg.FENStartPos,
	kiwipeteFEN,
	position3FEN,
	position4FEN,
	position5FEN,
	enPassantFEN,
	promotionFEN,
	"r3k2r/8/8/8/8/8/6r1/R3K2R w KQkq - 0 1",
	"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
}

func TestApplyRestoreRoundTrip(t *testing.T) {
	for _, fen := range roundTripFENs {
		p := mustParse(t, fen)
		before := *p
		list := mg.GenerateMoves(p)
		list.ForEach(func(m mg.EncodedMove) {
			snap := p.Backup()
			accepted := p.ApplyMove(m)
			if !accepted && !p.Equal(&before) {
				t.Fatalf("%s: rejected move %v mutated the position", fen, m)
			}
			p.Restore(snap)
			if !p.Equal(&before) {
				t.Fatalf("%s: restore after %v did not reproduce the position", fen, m)
			}
		})
	}
}

// walk visits every node of the legal tree to the given depth.
func walk(t *testing.T, p *mg.Position, depth int, visit func(*mg.Position)) {
	visit(p)
	if depth == 0 {
		return
	}
	list := mg.GenerateMoves(p)
	snap := p.Backup()
	list.ForEach(func(m mg.EncodedMove) {
		if p.ApplyMove(m) {
			walk(t, p, depth-1, visit)
			p.Restore(snap)
		}
	})
}

func TestOccupancyInvariantHoldsThroughTree(t *testing.T) {
	for _, fen := range []string{mg.FENStartPos, kiwipeteFEN, position4FEN} {
		p := mustParse(t, fen)
		walk(t, p, 2, func(n *mg.Position) {
			if !n.Consistent() {
				t.Fatalf("inconsistent occupancy at %s", n.FEN())
			}
			if n.Occupied() != n.Occupancy(mg.White)|n.Occupancy(mg.Black) ||
				n.Occupancy(mg.White)&n.Occupancy(mg.Black) != 0 {
				t.Fatalf("occupancy invariant broken at %s", n.FEN())
			}
		})
	}
}

func TestEnPassantRemovesPassedPawn(t *testing.T) {
	p := mg.NewStartPosition()
	play(t, p, "e2e4", "e7e6", "e4e5", "d7d5")
	if p.EnPassant() != mg.D6 {
		t.Fatalf("ep target after d7d5: got %v want d6", p.EnPassant())
	}
	m := findMove(t, p, "e5d6")
	if !m.IsEnPassant() || !m.IsCapture() {
		t.Fatalf("e5d6 should carry capture and en passant flags")
	}
	if !p.ApplyMove(m) {
		t.Fatalf("en passant rejected")
	}
	if got, ok := p.PieceAt(mg.D5); ok {
		t.Fatalf("black pawn still on d5: %v", got)
	}
	if got, _ := p.PieceAt(mg.D6); got != mg.WhitePawn {
		t.Fatalf("d6 holds %v, want white pawn", got)
	}
	if _, ok := p.PieceAt(mg.E5); ok {
		t.Fatalf("e5 should be empty")
	}
	if p.EnPassant() != mg.NoSquare {
		t.Fatalf("ep target must clear after any non double push")
	}
	if !p.Consistent() {
		t.Fatalf("inconsistent after en passant")
	}
}

func TestCastlingRightsRevocation(t *testing.T) {
	cases := []struct {
		name  string
		fen   string
		moves []string
		want  mg.CastlingRights
	}{
		{"rook leaves a1", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"a1a2"},
			mg.CastleWhiteKing | mg.CastleBlackKing | mg.CastleBlackQueen},
		{"rook captured on a1", "r3k2r/8/8/8/8/8/1b6/R3K2R b KQkq - 0 1", []string{"b2a1"},
			mg.CastleWhiteKing | mg.CastleBlackKing | mg.CastleBlackQueen},
		{"king moves", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"e1e2"},
			mg.CastleBlackKing | mg.CastleBlackQueen},
		{"rook leaves h8", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", []string{"h8h7"},
			mg.CastleWhiteKing | mg.CastleWhiteQueen | mg.CastleBlackQueen},
		{"rook returns", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", []string{"a1b1", "a8b8", "b1a1"},
			mg.CastleWhiteKing | mg.CastleBlackKing},
	}
	for _, c := range cases {
		p := mustParse(t, c.fen)
		play(t, p, c.moves...)
		if p.CastlingRights() != c.want {
			t.Fatalf("%s: rights %v want %v", c.name, p.CastlingRights(), c.want)
		}
	}
}

func TestCastlingMovesRook(t *testing.T) {
	p := mustParse(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	play(t, p, "e1g1")
	if pc, _ := p.PieceAt(mg.F1); pc != mg.WhiteRook {
		t.Fatalf("f1 holds %v after O-O", pc)
	}
	if pc, _ := p.PieceAt(mg.G1); pc != mg.WhiteKing {
		t.Fatalf("g1 holds %v after O-O", pc)
	}
	if _, ok := p.PieceAt(mg.H1); ok {
		t.Fatalf("h1 should be empty after O-O")
	}
	play(t, p, "e8c8")
	if pc, _ := p.PieceAt(mg.D8); pc != mg.BlackRook {
		t.Fatalf("d8 holds %v after O-O-O", pc)
	}
	if _, ok := p.PieceAt(mg.A8); ok {
		t.Fatalf("a8 should be empty after O-O-O")
	}
	if p.CastlingRights() != 0 {
		t.Fatalf("rights after both castles: %v", p.CastlingRights())
	}
}

func TestCastlingGeneration(t *testing.T) {
	// f1 attacked: no O-O; d1 and e1 safe: O-O-O allowed.
	p := mustParse(t, "r3k2r/8/8/8/8/8/5r2/R3K2R w KQkq - 0 1")
	list := mg.GenerateMoves(p)
	var short, long bool
	list.ForEach(func(m mg.EncodedMove) {
		if m.IsCastle() {
			switch m.Target() {
			case mg.G1:
				short = true
			case mg.C1:
				long = true
			}
		}
	})
	if short || !long {
		t.Fatalf("castling through f1: short=%v long=%v", short, long)
	}

	// g1 attacked: O-O is generated but rejected on application.
	p = mustParse(t, "r3k2r/8/8/8/8/8/6r1/R3K2R w KQkq - 0 1")
	m := findMove(t, p, "e1g1")
	before := *p
	if p.ApplyMove(m) {
		t.Fatalf("castling into check accepted")
	}
	if !p.Equal(&before) {
		t.Fatalf("rejected castle mutated the position")
	}

	// In check: no castling at all.
	p = mustParse(t, "r3k2r/8/8/8/8/8/4r3/R3K2R w KQkq - 0 1")
	list = mg.GenerateMoves(p)
	list.ForEach(func(m mg.EncodedMove) {
		if m.IsCastle() {
			t.Fatalf("castle %v generated while in check", m)
		}
	})
}

func TestPinnedPieceRejected(t *testing.T) {
	p := mustParse(t, "4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1")
	before := p.Clone()
	m := findMove(t, p, "e2d3")
	err := p.ApplyMoveErr(m)
	if !errors.Is(err, mg.ErrIllegalMove) {
		t.Fatalf("expected ErrIllegalMove, got %v", err)
	}
	if diff := cmp.Diff(before.FEN(), p.FEN()); diff != "" || !p.Equal(before) {
		t.Fatalf("position changed after rejection (-want +got):\n%s", diff)
	}
}

func TestForeignMoveRejected(t *testing.T) {
	p := mg.NewStartPosition()
	before := p.Clone()
	bad := []mg.EncodedMove{
		mg.EncodeMove(mg.E7, mg.E5, mg.BlackPawn, mg.BlackPawn, false, true, false, false),   // wrong side
		mg.EncodeMove(mg.E3, mg.E4, mg.WhitePawn, mg.WhitePawn, false, false, false, false),  // no piece there
		mg.EncodeMove(mg.A1, mg.A2, mg.WhiteRook, mg.WhiteRook, false, false, false, false),  // own piece on target
		mg.EncodeMove(mg.E2, mg.E4, mg.WhitePawn, mg.WhiteKing, false, false, false, false),  // promote to king
		mg.EncodeMove(mg.E2, mg.E4, mg.WhitePawn, mg.Piece(13), false, false, false, false),  // not a piece
		mg.EncodeMove(mg.G1, mg.G3, mg.WhiteKnight, mg.WhiteKnight, false, false, false, true), // castle flag on knight
	}
	for _, m := range bad {
		if p.ApplyMove(m) {
			t.Fatalf("accepted malformed move %v", m)
		}
		if !p.Equal(before) {
			t.Fatalf("malformed move %v mutated the position", m)
		}
	}
}

func TestForeignCastleRejected(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		move mg.EncodedMove
	}{
		{"onto enemy back rank", "4k2n/8/8/8/8/8/8/4K3 w - - 0 1",
			mg.EncodeMove(mg.E1, mg.G8, mg.WhiteKing, mg.WhiteKing, true, false, false, true)},
		{"queen side of enemy rank", "4k2n/8/8/8/8/8/8/4K3 w - - 0 1",
			mg.EncodeMove(mg.E1, mg.C8, mg.WhiteKing, mg.WhiteKing, false, false, false, true)},
		{"one step", "4k3/8/8/8/8/8/8/4K2R w K - 0 1",
			mg.EncodeMove(mg.E1, mg.F1, mg.WhiteKing, mg.WhiteKing, false, false, false, true)},
		{"no right", "4k3/8/8/8/8/8/8/4K2R w - - 0 1",
			mg.EncodeMove(mg.E1, mg.G1, mg.WhiteKing, mg.WhiteKing, false, false, false, true)},
		{"no rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1",
			mg.EncodeMove(mg.E1, mg.G1, mg.WhiteKing, mg.WhiteKing, false, false, false, true)},
		{"blocked", "rn2k3/8/8/8/8/8/8/4K3 b q - 0 1",
			mg.EncodeMove(mg.E8, mg.C8, mg.BlackKing, mg.BlackKing, false, false, false, true)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := mustParse(t, c.fen)
			before := p.Clone()
			if p.ApplyMove(c.move) {
				t.Fatalf("accepted castle %v: %s", c.move, p.FEN())
			}
			if !p.Equal(before) || !p.Consistent() {
				t.Fatalf("castle %v mutated the position", c.move)
			}
		})
	}
}

func TestClocksAndCheckStatus(t *testing.T) {
	p := mg.NewStartPosition()
	play(t, p, "g1f3")
	if p.HalfmoveClock() != 1 || p.FullmoveNumber() != 1 || p.SideToMove() != mg.Black {
		t.Fatalf("after g1f3: half=%d full=%d side=%v", p.HalfmoveClock(), p.FullmoveNumber(), p.SideToMove())
	}
	play(t, p, "g8f6")
	if p.HalfmoveClock() != 2 || p.FullmoveNumber() != 2 {
		t.Fatalf("after g8f6: half=%d full=%d", p.HalfmoveClock(), p.FullmoveNumber())
	}
	play(t, p, "e2e4")
	if p.HalfmoveClock() != 0 {
		t.Fatalf("pawn move must reset halfmove clock, got %d", p.HalfmoveClock())
	}

	// Fool's mate.
	p = mg.NewStartPosition()
	play(t, p, "f2f3", "e7e5", "g2g4", "d8h4")
	if p.CheckStatus() != mg.WhiteInCheck {
		t.Fatalf("expected white in check, got %v", p.CheckStatus())
	}
	if n := len(legalMoves(p)); n != 0 {
		t.Fatalf("expected no legal replies, got %d", n)
	}
}

func TestPromotionReplacesPawn(t *testing.T) {
	p := mustParse(t, promotionFEN)
	play(t, p, "a7b8n")
	if pc, _ := p.PieceAt(mg.B8); pc != mg.WhiteKnight {
		t.Fatalf("b8 holds %v", pc)
	}
	if p.Bitboard(mg.WhitePawn) != 0 || p.Bitboard(mg.BlackKnight) != 0 {
		t.Fatalf("pawn or captured knight left behind: %s", p.FEN())
	}
	if !p.Consistent() {
		t.Fatalf("inconsistent after promotion")
	}
}

func TestPieceAtAndSetPiece(t *testing.T) {
	p := mg.NewPosition()
	p.SetPiece(mg.E1, mg.WhiteKing)
	p.SetPiece(mg.E8, mg.BlackRook)
	if p.CheckStatus() != mg.WhiteInCheck {
		t.Fatalf("rook on e8 should check the white king")
	}
	p.SetPiece(mg.E3, mg.WhitePawn)
	if p.CheckStatus() != mg.CheckNone {
		t.Fatalf("pawn on e3 should block the check")
	}
	if pc, ok := p.PieceAt(mg.E3); !ok || pc != mg.WhitePawn {
		t.Fatalf("PieceAt(e3) = %v,%v", pc, ok)
	}
	if _, ok := p.PieceAt(mg.NoSquare); ok {
		t.Fatalf("PieceAt(NoSquare) must report empty")
	}
	p.SetPiece(mg.E3, mg.NoPiece)
	if _, ok := p.PieceAt(mg.E3); ok || !p.Consistent() {
		t.Fatalf("clearing e3 failed")
	}
	if !p.IsSquareAttacked(mg.E1, mg.Black) || p.IsSquareAttacked(mg.D1, mg.Black) {
		t.Fatalf("attack query mismatch")
	}
}
