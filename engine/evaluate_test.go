package engine

import (
	"math"
	"sort"
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/google/go-cmp/cmp"
	mg "ndjin/ndjinmg"
)

func parse(t *testing.T, fen string) *mg.Position {
	t.Helper()
	p, err := mg.ParseFEN(fen)
	if err != nil {
		t.Fatalf("parse FEN: %v", err)
	}
	return p
}

func TestMaterialScore(t *testing.T) {
	if s := MaterialScore(mg.NewStartPosition()); s != 0 {
		t.Fatalf("start position material: got %v want 0", s)
	}
	// White is a queen up; score is from the side to move.
	w := parse(t, "4k3/8/8/8/8/8/8/3QK3 w - - 0 1")
	b := parse(t, "4k3/8/8/8/8/8/8/3QK3 b - - 0 1")
	if MaterialScore(w) != 9 || MaterialScore(b) != -9 {
		t.Fatalf("queen up: white %v black %v", MaterialScore(w), MaterialScore(b))
	}
	// Kings only count once each and cancel.
	p := parse(t, "r3k3/1p6/8/8/8/8/8/2B1K2N w - - 0 1")
	if got, want := MaterialScore(p), 3.0+3.0-5.0-1.0; got != want {
		t.Fatalf("mixed material: got %v want %v", got, want)
	}
}

func TestEvaluateStartPosition(t *testing.T) {
	p := mg.NewStartPosition()
	pseudo := mg.GenerateMoves(p)
	got := Evaluate(p, &pseudo)
	if math.Abs(got-2.0) > 1e-9 {
		t.Fatalf("start evaluation: got %v want 2.0 (20 moves x 0.1)", got)
	}
}

func TestEvaluateCheckmateIsNaN(t *testing.T) {
	p := parse(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if p.CheckStatus() != mg.WhiteInCheck {
		t.Fatalf("expected white in check, got %v", p.CheckStatus())
	}
	pseudo := mg.GenerateMoves(p)
	if legal := FilterLegal(p, &pseudo); legal.Len() != 0 {
		t.Fatalf("expected no legal moves, got %d", legal.Len())
	}
	if v := Evaluate(p, &pseudo); !IsTerminal(v) {
		t.Fatalf("expected NaN sentinel, got %v", v)
	}
	if Outcome(p) != Checkmate {
		t.Fatalf("outcome: got %v", Outcome(p))
	}
}

func TestStalemate(t *testing.T) {
	p := parse(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	pseudo := mg.GenerateMoves(p)
	if !IsTerminal(Evaluate(p, &pseudo)) {
		t.Fatalf("stalemate must evaluate to NaN")
	}
	if p.InCheck() {
		t.Fatalf("stalemated side is not in check")
	}
	if Outcome(p) != Stalemate {
		t.Fatalf("outcome: got %v", Outcome(p))
	}
}

func TestFiftyMoveOutcome(t *testing.T) {
	p := parse(t, "4k3/8/8/8/8/8/8/4K3 w - - 100 80")
	if Outcome(p) != FiftyMoveDraw {
		t.Fatalf("outcome: got %v", Outcome(p))
	}
}

func TestFilterLegalIsSubsetAndRestores(t *testing.T) {
	fens := []string{
		mg.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"4k3/4r3/8/8/8/8/4B3/4K3 w - - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		p := parse(t, fen)
		before := p.Clone()
		pseudo := mg.GenerateMoves(p)
		legal := FilterLegal(p, &pseudo)
		if !p.Equal(before) {
			t.Fatalf("%s: FilterLegal leaked a mutation", fen)
		}
		legal.ForEach(func(m mg.EncodedMove) {
			if !pseudo.Contains(m) {
				t.Fatalf("%s: legal move %v not in pseudo-legal list", fen, m)
			}
		})
		if legal.Len() > pseudo.Len() {
			t.Fatalf("%s: more legal than pseudo-legal moves", fen)
		}
	}
}

// Legal move sets must agree with an independent implementation.
func TestLegalMovesMatchChessLibrary(t *testing.T) {
	fens := []string{
		mg.FENStartPos,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"k7/8/8/3pP3/8/8/8/7K w - d6 0 2",
		"1n5k/P7/8/8/8/8/8/7K w - - 0 1",
	}
	for _, fen := range fens {
		opt, err := chess.FEN(fen)
		if err != nil {
			t.Fatalf("chess.FEN(%q): %v", fen, err)
		}
		game := chess.NewGame(opt)
		var want []string
		for _, m := range game.ValidMoves() {
			want = append(want, m.String())
		}
		sort.Strings(want)

		p := parse(t, fen)
		legal := LegalMoves(p)
		var got []string
		legal.ForEach(func(m mg.EncodedMove) { got = append(got, m.String()) })
		sort.Strings(got)

		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("%s: legal moves differ (-chess +ndjin):\n%s", fen, diff)
		}
	}
}

func BenchmarkEvaluateKiwipete(b *testing.B) {
	p, err := mg.ParseFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	if err != nil {
		b.Fatalf("parse FEN: %v", err)
	}
	pseudo := mg.GenerateMoves(p)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Evaluate(p, &pseudo)
	}
}
