// Package session wraps a Position for callers that share one game, such as
// the HTTP server and the console. All writes go through a mutex; readers get
// value copies.
package session

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"ndjin/engine"
	mg "ndjin/ndjinmg"
)

// ErrNoHistory is returned by Undo at the root of the game.
var ErrNoHistory = errors.New("session: no move to undo")

// Status is the result of a game as seen by the side to move.
type Status struct {
	Result      engine.Result `json:"-"`
	Text        string        `json:"result"`
	Repetitions int           `json:"repetitions"`
	Draw        bool          `json:"draw"`
}

// Game is one game in progress, safe for concurrent use.
type Game struct {
	mu       sync.Mutex
	pos      *mg.Position
	startFEN string
	history  stateStack
}

// New starts a game from fen, or from the standard start position when fen
// is empty.
func New(fen string) (*Game, error) {
	g := &Game{}
	if err := g.Reset(fen); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset replaces the game with a new one from fen. On error the current game
// is kept.
func (g *Game) Reset(fen string) error {
	if fen == "" {
		fen = mg.FENStartPos
	}
	pos, err := mg.ParseFEN(fen)
	if err != nil {
		return err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pos = pos
	g.startFEN = fen
	g.history.reset(pos)
	return nil
}

// Apply plays a move given in coordinate notation.
func (g *Game) Apply(text string) (mg.EncodedMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m, err := mg.ParseMove(g.pos, text)
	if err != nil {
		return mg.NoMove, err
	}
	return m, g.applyLocked(m)
}

// Played describes a move accepted by ApplyMove.
type Played struct {
	Move     mg.EncodedMove
	Previous mg.EncodedMove // NoMove when Move was the first move
	Fullmove int            // fullmove number after Move
}

// ApplyMove plays an already encoded move, typically one received from a
// peer. The move must be one the generator produces for the current
// position; anything else leaves the game unchanged.
func (g *Game) ApplyMove(m mg.EncodedMove) (Played, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	pseudo := mg.GenerateMoves(g.pos)
	if !pseudo.Contains(m) {
		return Played{}, &mg.MoveError{Move: m, Err: mg.ErrIllegalMove}
	}
	prev := g.history.last()
	if err := g.applyLocked(m); err != nil {
		return Played{}, err
	}
	return Played{Move: m, Previous: prev, Fullmove: g.pos.FullmoveNumber()}, nil
}

func (g *Game) applyLocked(m mg.EncodedMove) error {
	prev := g.pos.Backup()
	if err := g.pos.ApplyMoveErr(m); err != nil {
		return err
	}
	g.history.push(g.pos, m, prev)
	return nil
}

// Undo takes back the last move.
func (g *Game) Undo() (mg.EncodedMove, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	m := g.history.last()
	prev, ok := g.history.pop()
	if !ok {
		return mg.NoMove, ErrNoHistory
	}
	g.pos.Restore(prev)
	return m, nil
}

// Snapshot returns a copy of the current position.
func (g *Game) Snapshot() mg.Position {
	g.mu.Lock()
	defer g.mu.Unlock()
	return *g.pos
}

func (g *Game) FEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.pos.FEN()
}

// StartFEN is the FEN the game was started from.
func (g *Game) StartFEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.startFEN
}

// LegalMoves lists the legal moves in coordinate notation, sorted.
func (g *Game) LegalMoves() []string {
	g.mu.Lock()
	legal := engine.LegalMoves(g.pos)
	g.mu.Unlock()
	out := make([]string, 0, legal.Len())
	legal.ForEach(func(m mg.EncodedMove) { out = append(out, m.String()) })
	slices.Sort(out)
	return out
}

// Evaluate returns engine.Evaluate for the current position.
func (g *Game) Evaluate() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	pseudo := mg.GenerateMoves(g.pos)
	return engine.Evaluate(g.pos, &pseudo)
}

// Repetitions counts how often the current position occurred earlier in the
// game with the same side to move.
func (g *Game) Repetitions() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.repetitions()
}

// Outcome combines engine.Outcome with threefold repetition.
func (g *Game) Outcome() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	res := engine.Outcome(g.pos)
	reps := g.history.repetitions()
	st := Status{Result: res, Repetitions: reps}
	switch {
	case res == engine.Checkmate:
		st.Text = res.String()
	case res == engine.Stalemate || res == engine.FiftyMoveDraw:
		st.Text, st.Draw = res.String(), true
	case reps >= 2:
		st.Text, st.Draw = "threefold repetition", true
	default:
		st.Text = res.String()
	}
	return st
}

// History returns the moves played since the start position.
func (g *Game) History() []mg.EncodedMove {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.moves()
}

// LastMove returns the most recent move, or NoMove at the root.
func (g *Game) LastMove() mg.EncodedMove {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.history.last()
}

// Ply is the number of moves played.
func (g *Game) Ply() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.history.entries) - 1
}

func (g *Game) String() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fmt.Sprintf("%s\nfen: %s", g.pos, g.pos.FEN())
}
