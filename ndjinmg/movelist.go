package ndjinmg

// MaxMovesPerSquare bounds the moves stored for one source square. A queen
// has at most 27 targets, which is the largest case.
const MaxMovesPerSquare = 32

// MoveList groups moves by source square. Within a square moves keep their
// insertion order; iteration walks squares in ascending order.
type MoveList struct {
	moves  [64][MaxMovesPerSquare]EncodedMove
	counts [64]uint8
	total  int
}

// Add appends m to the bucket of its source square.
func (l *MoveList) Add(m EncodedMove) {
	sq := m.Source()
	n := l.counts[sq]
	if int(n) >= MaxMovesPerSquare {
		panic("ndjinmg: move list bucket overflow at " + sq.String())
	}
	l.moves[sq][n] = m
	l.counts[sq] = n + 1
	l.total++
}

// Len returns the total number of moves.
func (l *MoveList) Len() int { return l.total }

// Reset empties the list without releasing storage.
func (l *MoveList) Reset() {
	if l.total == 0 {
		return
	}
	l.counts = [64]uint8{}
	l.total = 0
}

// FromSquare returns the moves originating on sq. The slice aliases the list.
func (l *MoveList) FromSquare(sq Square) []EncodedMove {
	if !sq.Valid() {
		return nil
	}
	return l.moves[sq][:l.counts[sq]]
}

// Moves flattens the list in iteration order into a new slice.
func (l *MoveList) Moves() []EncodedMove {
	out := make([]EncodedMove, 0, l.total)
	return l.AppendTo(out)
}

// AppendTo appends the moves in iteration order to dst.
func (l *MoveList) AppendTo(dst []EncodedMove) []EncodedMove {
	if l.total == 0 {
		return dst
	}
	for sq := 0; sq < 64; sq++ {
		dst = append(dst, l.moves[sq][:l.counts[sq]]...)
	}
	return dst
}

// ForEach calls fn for every move in iteration order.
func (l *MoveList) ForEach(fn func(EncodedMove)) {
	if l.total == 0 {
		return
	}
	for sq := 0; sq < 64; sq++ {
		for i := uint8(0); i < l.counts[sq]; i++ {
			fn(l.moves[sq][i])
		}
	}
}

// Contains reports whether m is in the list.
func (l *MoveList) Contains(m EncodedMove) bool {
	for _, x := range l.FromSquare(m.Source()) {
		if x == m {
			return true
		}
	}
	return false
}
