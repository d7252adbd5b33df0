package engine

import (
	"testing"

	mg "ndjin/ndjinmg"
)

func exchangeOf(t *testing.T, fen, move string) float64 {
	t.Helper()
	p := parse(t, fen)
	m, err := mg.ParseMove(p, move)
	if err != nil {
		t.Fatalf("parse move %s: %v", move, err)
	}
	return ExchangeGain(p, m)
}

func TestExchangeGain(t *testing.T) {
	cases := []struct {
		name string
		fen  string
		move string
		want float64
	}{
		{"undefended pawn", "4k3/8/8/3p4/8/8/8/3QK3 w - - 0 1", "d1d5", 1},
		{"queen takes defended pawn", "4k3/8/2p5/3p4/8/8/8/3QK3 w - - 0 1", "d1d5", -8},
		{"revealed slider", "6k1/4q1p1/4n3/8/2B5/8/8/6K1 w - - 0 1", "c4e6", 0},
		{"rook battery wins pawn", "3rk3/8/8/3p4/8/8/3R4/3RK3 w - - 0 1", "d2d5", 1},
		{"en passant", "4k3/8/8/3pP3/8/8/8/6K1 w - d6 0 1", "e5d6", 1},
		{"pawn takes defended knight", "4k3/8/4p3/3n4/4P3/8/8/4K3 w - - 0 1", "e4d5", 2},
		{"quiet move", mg.FENStartPos, "e2e4", 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := exchangeOf(t, c.fen, c.move); got != c.want {
				t.Fatalf("ExchangeGain(%s) = %v, want %v", c.move, got, c.want)
			}
		})
	}
}

func TestExchangeGainLeavesPositionUntouched(t *testing.T) {
	p := parse(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	before := p.Clone()
	pseudo := mg.GenerateMoves(p)
	pseudo.ForEach(func(m mg.EncodedMove) { _ = ExchangeGain(p, m) })
	if !p.Equal(before) {
		t.Fatalf("ExchangeGain modified the position")
	}
}
