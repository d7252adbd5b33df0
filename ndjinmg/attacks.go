package ndjinmg

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// File masks used to stop shifted bitboards wrapping across the board edge.
const (
	notAFile  uint64 = 0xFEFEFEFEFEFEFEFE
	notHFile  uint64 = 0x7F7F7F7F7F7F7F7F
	notABFile uint64 = 0xFCFCFCFCFCFCFCFC
	notHGFile uint64 = 0x3F3F3F3F3F3F3F3F
)

// Leaper attack tables.
var (
	pawnAttacks   [2][64]uint64
	knightAttacks [64]uint64
	kingAttacks   [64]uint64
)

// Slider tables. Masks hold the relevant occupancy (board edges excluded);
// the attack tables are indexed by the magic hash of the masked occupancy.
var (
	bishopMasks   [64]uint64
	rookMasks     [64]uint64
	bishopMagics  [64]uint64
	rookMagics    [64]uint64
	bishopAttacks [64][512]uint64
	rookAttacks   [64][4096]uint64
)

var initOnce sync.Once

func init() {
	InitAll()
}

// InitAll builds every attack table. It runs once per process; later calls return immediately.
// The package init already calls it, so explicit calls are only needed for documentation value.
func InitAll() {
	initOnce.Do(func() {
		initLeaperAttacks()
		initSliderAttacks(true)
		initSliderAttacks(false)
	})
}

// ==========================
// Leapers
// ==========================

// MaskPawnAttacks returns the squares a pawn of the given side attacks from sq.
func MaskPawnAttacks(side Color, sq Square) uint64 {
	mustSquare(sq)
	b := uint64(1) << uint(sq)
	if side == White {
		return (b<<7)&notHFile | (b<<9)&notAFile
	}
	return (b>>7)&notAFile | (b>>9)&notHFile
}

// MaskKnightAttacks returns the knight jumps from sq.
func MaskKnightAttacks(sq Square) uint64 {
	mustSquare(sq)
	b := uint64(1) << uint(sq)
	var att uint64
	att |= (b << 17) & notAFile
	att |= (b << 15) & notHFile
	att |= (b << 10) & notABFile
	att |= (b << 6) & notHGFile
	att |= (b >> 17) & notHFile
	att |= (b >> 15) & notAFile
	att |= (b >> 10) & notHGFile
	att |= (b >> 6) & notABFile
	return att
}

// MaskKingAttacks returns the king steps from sq.
func MaskKingAttacks(sq Square) uint64 {
	mustSquare(sq)
	b := uint64(1) << uint(sq)
	var att uint64
	att |= b << 8
	att |= b >> 8
	att |= (b << 1) & notAFile
	att |= (b >> 1) & notHFile
	att |= (b << 9) & notAFile
	att |= (b << 7) & notHFile
	att |= (b >> 7) & notAFile
	att |= (b >> 9) & notHFile
	return att
}

func initLeaperAttacks() {
	for sq := Square(0); sq < 64; sq++ {
		pawnAttacks[White][sq] = MaskPawnAttacks(White, sq)
		pawnAttacks[Black][sq] = MaskPawnAttacks(Black, sq)
		knightAttacks[sq] = MaskKnightAttacks(sq)
		kingAttacks[sq] = MaskKingAttacks(sq)
	}
}

// ==========================
// Sliders
// ==========================

// BishopRelevantMask returns the diagonal squares from sq whose occupancy can
// change a bishop's attack set. The outer ring is excluded.
func BishopRelevantMask(sq Square) uint64 {
	mustSquare(sq)
	var mask uint64
	tr, tf := sq.Rank(), sq.File()
	for r, f := tr+1, tf+1; r <= 6 && f <= 6; r, f = r+1, f+1 {
		mask |= 1 << uint(r*8+f)
	}
	for r, f := tr-1, tf+1; r >= 1 && f <= 6; r, f = r-1, f+1 {
		mask |= 1 << uint(r*8+f)
	}
	for r, f := tr+1, tf-1; r <= 6 && f >= 1; r, f = r+1, f-1 {
		mask |= 1 << uint(r*8+f)
	}
	for r, f := tr-1, tf-1; r >= 1 && f >= 1; r, f = r-1, f-1 {
		mask |= 1 << uint(r*8+f)
	}
	return mask
}

// RookRelevantMask returns the orthogonal squares from sq whose occupancy can
// change a rook's attack set. The last square of each ray is excluded.
func RookRelevantMask(sq Square) uint64 {
	mustSquare(sq)
	var mask uint64
	tr, tf := sq.Rank(), sq.File()
	for r := tr + 1; r <= 6; r++ {
		mask |= 1 << uint(r*8+tf)
	}
	for r := tr - 1; r >= 1; r-- {
		mask |= 1 << uint(r*8+tf)
	}
	for f := tf + 1; f <= 6; f++ {
		mask |= 1 << uint(tr*8+f)
	}
	for f := tf - 1; f >= 1; f-- {
		mask |= 1 << uint(tr*8+f)
	}
	return mask
}

// BishopAttacksOnTheFly ray-casts bishop attacks from sq, stopping at (and
// including) the first blocker in each direction.
func BishopAttacksOnTheFly(sq Square, blockers uint64) uint64 {
	mustSquare(sq)
	var att uint64
	tr, tf := sq.Rank(), sq.File()
	dirs := [4][2]int{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	for _, d := range dirs {
		for r, f := tr+d[0], tf+d[1]; r >= 0 && r <= 7 && f >= 0 && f <= 7; r, f = r+d[0], f+d[1] {
			bit := uint64(1) << uint(r*8+f)
			att |= bit
			if blockers&bit != 0 {
				break
			}
		}
	}
	return att
}

// RookAttacksOnTheFly ray-casts rook attacks from sq, stopping at (and
// including) the first blocker in each direction.
func RookAttacksOnTheFly(sq Square, blockers uint64) uint64 {
	mustSquare(sq)
	var att uint64
	tr, tf := sq.Rank(), sq.File()
	dirs := [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	for _, d := range dirs {
		for r, f := tr+d[0], tf+d[1]; r >= 0 && r <= 7 && f >= 0 && f <= 7; r, f = r+d[0], f+d[1] {
			bit := uint64(1) << uint(r*8+f)
			att |= bit
			if blockers&bit != 0 {
				break
			}
		}
	}
	return att
}

// SetOccupancy returns the index-th subset of mask, where bit i of index
// selects the i-th lowest set bit of mask. bitCount is PopCount(mask).
func SetOccupancy(index, bitCount int, mask uint64) uint64 {
	var occ uint64
	for i := 0; i < bitCount && mask != 0; i++ {
		sq := popLSB(&mask)
		if index&(1<<uint(i)) != 0 {
			occ |= 1 << uint(sq)
		}
	}
	return occ
}

func magicIndex(occ, mask, magic uint64, bits int) uint64 {
	return ((occ & mask) * magic) >> uint(64-bits)
}

// fillMagicTable populates table for one square and reports false if magic
// maps two blocker sets with different attacks to the same slot.
func fillMagicTable(sq Square, mask, magic uint64, bits int, bishop bool, table []uint64) bool {
	size := 1 << uint(bits)
	for i := 0; i < size; i++ {
		table[i] = 0
	}
	n := PopCount(mask)
	for i := 0; i < 1<<uint(n); i++ {
		occ := SetOccupancy(i, n, mask)
		var att uint64
		if bishop {
			att = BishopAttacksOnTheFly(sq, occ)
		} else {
			att = RookAttacksOnTheFly(sq, occ)
		}
		idx := magicIndex(occ, mask, magic, bits)
		if table[idx] == 0 {
			table[idx] = att
		} else if table[idx] != att {
			return false
		}
	}
	return true
}

func initSliderAttacks(bishop bool) {
	name := "rook"
	if bishop {
		name = "bishop"
	}
	for i := 0; i < 64; i++ {
		sq := Square(i)
		var (
			mask  uint64
			bits  int
			magic *uint64
			table []uint64
		)
		if bishop {
			mask = BishopRelevantMask(sq)
			bishopMasks[i] = mask
			bishopMagics[i] = embeddedBishopMagics[i]
			bits, magic, table = bishopBits[i], &bishopMagics[i], bishopAttacks[i][:]
		} else {
			mask = RookRelevantMask(sq)
			rookMasks[i] = mask
			rookMagics[i] = embeddedRookMagics[i]
			bits, magic, table = rookBits[i], &rookMagics[i], rookAttacks[i][:]
		}
		if fillMagicTable(sq, mask, *magic, bits, bishop, table) {
			continue
		}
		found, err := FindMagic(sq, bits, bishop, NewMagicRNG())
		if err != nil {
			panic(fmt.Errorf("%s magic for %s: %w", name, sq, err))
		}
		log.Warn().Str("piece", name).Str("square", sq.String()).
			Uint64("embedded", *magic).Uint64("found", found).
			Msg("embedded magic collides, replaced by search")
		*magic = found
		if !fillMagicTable(sq, mask, found, bits, bishop, table) {
			panic(fmt.Errorf("%s magic for %s: %w", name, sq, ErrMagicNotFound))
		}
	}
}

// ==========================
// Lookups
// ==========================

// PawnAttacks returns the squares a pawn of side attacks from sq.
func PawnAttacks(side Color, sq Square) uint64 {
	mustSquare(sq)
	return pawnAttacks[side&1][sq]
}

// KnightAttacks returns the knight attack set from sq.
func KnightAttacks(sq Square) uint64 {
	mustSquare(sq)
	return knightAttacks[sq]
}

// KingAttacks returns the king attack set from sq.
func KingAttacks(sq Square) uint64 {
	mustSquare(sq)
	return kingAttacks[sq]
}

// GetBishopAttacks returns bishop attacks from sq for the given occupancy.
func GetBishopAttacks(sq Square, occ uint64) uint64 {
	mustSquare(sq)
	return bishopAttacksFor(int(sq), occ)
}

// GetRookAttacks returns rook attacks from sq for the given occupancy.
func GetRookAttacks(sq Square, occ uint64) uint64 {
	mustSquare(sq)
	return rookAttacksFor(int(sq), occ)
}

// GetQueenAttacks is the union of bishop and rook attacks at the same occupancy.
func GetQueenAttacks(sq Square, occ uint64) uint64 {
	mustSquare(sq)
	return bishopAttacksFor(int(sq), occ) | rookAttacksFor(int(sq), occ)
}

// Unchecked variants for the generator, which only ever passes board squares.

func bishopAttacksFor(sq int, occ uint64) uint64 {
	return bishopAttacks[sq][magicIndex(occ, bishopMasks[sq], bishopMagics[sq], bishopBits[sq])]
}

func rookAttacksFor(sq int, occ uint64) uint64 {
	return rookAttacks[sq][magicIndex(occ, rookMasks[sq], rookMagics[sq], rookBits[sq])]
}
