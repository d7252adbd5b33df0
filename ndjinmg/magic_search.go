package ndjinmg

import "fmt"

// MaxMagicAttempts bounds the candidate loop in FindMagic.
const MaxMagicAttempts = 100_000_000

// MagicSeed is the xorshift state the search starts from.
const MagicSeed uint64 = 8392127718274466268

// MagicRNG is a xorshift64 generator. It is deterministic so a search run
// always reproduces the same constants.
type MagicRNG struct {
	state uint64
}

// NewMagicRNG returns a generator seeded with MagicSeed.
func NewMagicRNG() *MagicRNG { return &MagicRNG{state: MagicSeed} }

// NewMagicRNGSeed returns a generator with a caller-chosen non-zero seed.
func NewMagicRNGSeed(seed uint64) *MagicRNG {
	if seed == 0 {
		seed = MagicSeed
	}
	return &MagicRNG{state: seed}
}

func (r *MagicRNG) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// Uint64 assembles a 64-bit value from four 16-bit draws.
func (r *MagicRNG) Uint64() uint64 {
	w := r.next() & 0xFFFF
	x := r.next() & 0xFFFF
	y := r.next() & 0xFFFF
	z := r.next() & 0xFFFF
	return w | x<<16 | y<<32 | z<<48
}

// Sparse returns the AND of three draws; magics with few set bits hash better.
func (r *MagicRNG) Sparse() uint64 {
	return r.Uint64() & r.Uint64() & r.Uint64()
}

// FindMagic searches for a multiplier that maps every blocker subset of the
// square's relevant mask into a table of 1<<bits slots without a destructive
// collision. Two subsets may share a slot only when their attacks agree.
func FindMagic(sq Square, bits int, bishop bool, rng *MagicRNG) (uint64, error) {
	mustSquare(sq)
	var mask uint64
	if bishop {
		mask = BishopRelevantMask(sq)
	} else {
		mask = RookRelevantMask(sq)
	}
	n := PopCount(mask)
	if bits < n || bits > 12 {
		return 0, fmt.Errorf("square %s: index width %d cannot hold %d relevant bits", sq, bits, n)
	}

	subsets := 1 << uint(n)
	occupancies := make([]uint64, subsets)
	attacks := make([]uint64, subsets)
	for i := 0; i < subsets; i++ {
		occupancies[i] = SetOccupancy(i, n, mask)
		if bishop {
			attacks[i] = BishopAttacksOnTheFly(sq, occupancies[i])
		} else {
			attacks[i] = RookAttacksOnTheFly(sq, occupancies[i])
		}
	}

	used := make([]uint64, 1<<uint(bits))
	for attempt := 0; attempt < MaxMagicAttempts; attempt++ {
		magic := rng.Sparse()
		if PopCount((mask*magic)&0xFF00000000000000) < 6 {
			continue
		}
		for i := range used {
			used[i] = 0
		}
		ok := true
		for i := 0; i < subsets; i++ {
			idx := magicIndex(occupancies[i], mask, magic, bits)
			if used[idx] == 0 {
				used[idx] = attacks[i]
			} else if used[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if ok {
			return magic, nil
		}
	}
	return 0, ErrMagicNotFound
}

// VerifyMagic reports whether magic is collision free for the square.
func VerifyMagic(sq Square, magic uint64, bits int, bishop bool) bool {
	mustSquare(sq)
	if bits < 1 || bits > 12 {
		return false
	}
	mask := RookRelevantMask(sq)
	if bishop {
		mask = BishopRelevantMask(sq)
	}
	if PopCount(mask) > bits {
		return false
	}
	table := make([]uint64, 1<<uint(bits))
	return fillMagicTable(sq, mask, magic, bits, bishop, table)
}

// Magics returns copies of the bishop and rook multipliers in use, including
// any replaced during initialization.
func Magics() (bishop, rook [64]uint64) { return bishopMagics, rookMagics }

// IndexBits returns the per-square index widths for bishops and rooks.
func IndexBits() (bishop, rook [64]int) { return bishopBits, rookBits }
