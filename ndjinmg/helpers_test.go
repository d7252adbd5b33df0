package ndjinmg_test

import (
	"testing"

	mg "ndjin/ndjinmg"
)

const (
	kiwipeteFEN  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	position3FEN = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position4FEN = "r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"
	position5FEN = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"
	enPassantFEN = "k7/8/8/3pP3/8/8/8/7K w - d6 0 2"
	promotionFEN = "1n5k/P7/8/8/8/8/8/7K w - - 0 1"
)

func mustParse(t testing.TB, fen string) *mg.Position {
	t.Helper()
	p, err := mg.ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN(%q): %v", fen, err)
	}
	return p
}

// findMove returns the generated move with the given coordinate text.
func findMove(t testing.TB, p *mg.Position, text string) mg.EncodedMove {
	t.Helper()
	m, err := mg.ParseMove(p, text)
	if err != nil {
		t.Fatalf("ParseMove(%q) in %s: %v", text, p.FEN(), err)
	}
	return m
}

// play applies a sequence of coordinate moves, failing on the first rejection.
func play(t testing.TB, p *mg.Position, moves ...string) {
	t.Helper()
	for _, text := range moves {
		m := findMove(t, p, text)
		if !p.ApplyMove(m) {
			t.Fatalf("move %s rejected in %s", text, p.FEN())
		}
	}
}

// legalMoves returns the moves ApplyMove accepts, leaving p unchanged.
func legalMoves(p *mg.Position) []mg.EncodedMove {
	list := mg.GenerateMoves(p)
	saved := p.Backup()
	var out []mg.EncodedMove
	list.ForEach(func(m mg.EncodedMove) {
		if p.ApplyMove(m) {
			out = append(out, m)
			p.Restore(saved)
		}
	})
	return out
}

func sq(t testing.TB, s string) mg.Square {
	t.Helper()
	v, err := mg.SquareFromString(s)
	if err != nil {
		t.Fatalf("SquareFromString(%q): %v", s, err)
	}
	return v
}
