package ndjinmg

import "math/rand"

// Zobrist hashing tables for pieces, castling, en passant, and side to move.
var (
	zobristPiece     [12][64]uint64
	zobristCastle    [16]uint64
	zobristEnPassant [8]uint64
	zobristSide      uint64
)

func init() {
	// Fixed seed so hashes are stable across runs.
	rnd := rand.New(rand.NewSource(0xC0DE))
	for pc := range zobristPiece {
		for sq := range zobristPiece[pc] {
			zobristPiece[pc][sq] = rnd.Uint64()
		}
	}
	for cr := range zobristCastle {
		zobristCastle[cr] = rnd.Uint64()
	}
	for f := range zobristEnPassant {
		zobristEnPassant[f] = rnd.Uint64()
	}
	zobristSide = rnd.Uint64()
}

// Hash returns the Zobrist key of the position. Clocks and check status do
// not contribute, so repeated placements hash equal.
func (p *Position) Hash() uint64 {
	var key uint64
	for pc := range p.bitboards {
		bb := p.bitboards[pc]
		for bb != 0 {
			key ^= zobristPiece[pc][popLSB(&bb)]
		}
	}
	if p.side == Black {
		key ^= zobristSide
	}
	key ^= zobristCastle[p.castling&CastleAll]
	if p.enPassant != NoSquare {
		key ^= zobristEnPassant[p.enPassant.File()]
	}
	return key
}
