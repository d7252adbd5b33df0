package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"ndjin/engine"
	mg "ndjin/ndjinmg"
	"ndjin/wire"
)

// ---- JSON helpers ----

func (s *Server) withJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request too large")
			return false
		}
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

// ---- payloads ----

type positionView struct {
	FEN         string   `json:"fen"`
	Board       string   `json:"board"`
	Side        string   `json:"side"`
	Castling    string   `json:"castling"`
	EnPassant   string   `json:"enPassant"`
	Halfmove    int      `json:"halfmove"`
	Fullmove    int      `json:"fullmove"`
	InCheck     bool     `json:"inCheck"`
	Ply         int      `json:"ply"`
	LastMove    string   `json:"lastMove,omitempty"`
	Status      string   `json:"status"`
	Draw        bool     `json:"draw"`
	Repetitions int      `json:"repetitions"`
	History     []string `json:"history"`
}

func (s *Server) view() positionView {
	pos := s.game.Snapshot()
	st := s.game.Outcome()
	v := positionView{
		FEN:         pos.FEN(),
		Board:       pos.String(),
		Side:        pos.SideToMove().String(),
		Castling:    pos.CastlingRights().String(),
		EnPassant:   pos.EnPassant().String(),
		Halfmove:    pos.HalfmoveClock(),
		Fullmove:    pos.FullmoveNumber(),
		InCheck:     pos.InCheck(),
		Ply:         s.game.Ply(),
		Status:      st.Text,
		Draw:        st.Draw,
		Repetitions: st.Repetitions,
		History:     []string{},
	}
	if last := s.game.LastMove(); last != mg.NoMove {
		v.LastMove = last.String()
	}
	for _, m := range s.game.History() {
		v.History = append(v.History, m.String())
	}
	return v
}

// ---- handlers ----

func (s *Server) handlePosition(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) handleMoves(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"moves": s.game.LegalMoves()})
}

type moveBody struct {
	Move string `json:"move"`
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var body moveBody
	if !decodeBody(w, r, &body) {
		return
	}
	m, err := s.game.Apply(body.Move)
	switch {
	case errors.Is(err, mg.ErrUnknownMove):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, mg.ErrIllegalMove):
		s.log.Debug().Str("move", body.Move).Msg("illegal move rejected")
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		s.log.Error().Err(err).Str("move", body.Move).Msg("apply move")
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	pos := s.game.Snapshot()
	s.broadcast(wire.Current(m, mg.NoMove, uint16(pos.FullmoveNumber())))
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) handleUndo(w http.ResponseWriter, _ *http.Request) {
	if _, err := s.game.Undo(); err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.view())
}

type evalView struct {
	Score    *float64 `json:"score"`
	Material float64  `json:"material"`
	Terminal bool     `json:"terminal"`
	Result   string   `json:"result"`
}

func (s *Server) handleEval(w http.ResponseWriter, _ *http.Request) {
	pos := s.game.Snapshot()
	v := evalView{Material: engine.MaterialScore(&pos)}
	score := s.game.Evaluate()
	if engine.IsTerminal(score) {
		v.Terminal = true
	} else {
		v.Score = &score
	}
	v.Result = s.game.Outcome().Text
	writeJSON(w, http.StatusOK, v)
}

type resetBody struct {
	FEN string `json:"fen"`
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var body resetBody
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &body) {
			return
		}
	}
	fen := strings.TrimSpace(body.FEN)
	if fen == "" {
		fen = s.cfg.StartFEN
	}
	if err := s.game.Reset(fen); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Info().Str("fen", fen).Msg("game reset")
	writeJSON(w, http.StatusOK, s.view())
}

func (s *Server) handleSquare(w http.ResponseWriter, r *http.Request) {
	sq, err := mg.SquareFromString(strings.ToLower(mux.Vars(r)["square"]))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	pos := s.game.Snapshot()
	out := map[string]any{"square": sq.String(), "empty": true}
	if pc, ok := pos.PieceAt(sq); ok {
		out["empty"] = false
		out["piece"] = string(pc.Char())
		out["color"] = pc.Color().String()
	}
	writeJSON(w, http.StatusOK, out)
}
