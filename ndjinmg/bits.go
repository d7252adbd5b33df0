package ndjinmg

import "math/bits"

// PopCount returns the number of set bits in bb.
func PopCount(bb uint64) int { return bits.OnesCount64(bb) }

// LSBIndex returns the index of the least significant set bit, or -1 for an empty board.
func LSBIndex(bb uint64) int {
	if bb == 0 {
		return -1
	}
	return bits.TrailingZeros64(bb)
}

// SetBit returns bb with sq set.
func SetBit(bb uint64, sq Square) uint64 { return bb | 1<<uint(sq) }

// GetBit reports whether sq is set in bb.
func GetBit(bb uint64, sq Square) bool { return bb&(1<<uint(sq)) != 0 }

// ClearBit returns bb with sq cleared.
func ClearBit(bb uint64, sq Square) uint64 { return bb &^ (1 << uint(sq)) }

// popLSB clears and returns the index of the least significant set bit.
// Callers guarantee *bb != 0.
func popLSB(bb *uint64) int {
	sq := bits.TrailingZeros64(*bb)
	*bb &= *bb - 1
	return sq
}
