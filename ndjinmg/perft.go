package ndjinmg

// Perft counts the leaf nodes of the legal move tree of the given depth.
// The position is restored before returning.
func Perft(p *Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	lists := make([]MoveList, depth+1)
	return perftRec(p, depth, lists)
}

func perftRec(p *Position, depth int, lists []MoveList) uint64 {
	if depth == 0 {
		return 1
	}
	l := &lists[depth]
	p.GenerateMovesInto(l)
	saved := p.Backup()
	var nodes uint64
	for sq := Square(0); sq < 64; sq++ {
		for _, m := range l.FromSquare(sq) {
			if !p.ApplyMove(m) {
				continue
			}
			if depth == 1 {
				nodes++
			} else {
				nodes += perftRec(p, depth-1, lists)
			}
			p.Restore(saved)
		}
	}
	return nodes
}

// PerftDivide returns, for each legal root move, the number of leaf nodes
// below it at the given depth.
func PerftDivide(p *Position, depth int) map[EncodedMove]uint64 {
	result := make(map[EncodedMove]uint64)
	if depth <= 0 {
		return result
	}
	var l MoveList
	p.GenerateMovesInto(&l)
	saved := p.Backup()
	l.ForEach(func(m EncodedMove) {
		if p.ApplyMove(m) {
			result[m] = Perft(p, depth-1)
			p.Restore(saved)
		}
	})
	return result
}
