package session

import mg "ndjin/ndjinmg"

const fiftyMoveLimit = 100

// State captures what we need to reason about repetitions and draws.
type State struct {
	Hash   uint64
	Rule50 int
}

type entry struct {
	state State
	move  mg.EncodedMove
	prev  mg.Snapshot
}

// stateStack is the played line, one entry per applied move plus the root.
type stateStack struct {
	entries []entry
}

func (s *stateStack) reset(pos *mg.Position) {
	s.entries = s.entries[:0]
	s.entries = append(s.entries, entry{state: stateOf(pos), move: mg.NoMove})
}

func (s *stateStack) push(pos *mg.Position, m mg.EncodedMove, prev mg.Snapshot) {
	s.entries = append(s.entries, entry{state: stateOf(pos), move: m, prev: prev})
}

// pop removes the last played move and returns the position before it.
func (s *stateStack) pop() (mg.Snapshot, bool) {
	if len(s.entries) <= 1 {
		return mg.Snapshot{}, false
	}
	top := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return top.prev, true
}

func (s *stateStack) top() State {
	return s.entries[len(s.entries)-1].state
}

// repetitions counts earlier occurrences of the current position. Only the
// reversible tail since the last pawn move or capture can repeat.
func (s *stateStack) repetitions() int {
	if len(s.entries) <= 1 {
		return 0
	}
	curr := s.top()
	start := len(s.entries) - 1 - curr.Rule50
	if start < 0 {
		start = 0
	}
	n := 0
	for i := len(s.entries) - 3; i >= start; i -= 2 {
		if s.entries[i].state.Hash == curr.Hash {
			n++
		}
	}
	return n
}

func (s *stateStack) moves() []mg.EncodedMove {
	out := make([]mg.EncodedMove, 0, len(s.entries)-1)
	for _, e := range s.entries[1:] {
		out = append(out, e.move)
	}
	return out
}

func (s *stateStack) last() mg.EncodedMove {
	return s.entries[len(s.entries)-1].move
}

func stateOf(pos *mg.Position) State {
	return State{Hash: pos.Hash(), Rule50: pos.HalfmoveClock()}
}
