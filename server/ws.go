package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"ndjin/wire"
)

// client is one WebSocket peer. Frames are binary wire.MovePacket values.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(p wire.MovePacket, timeout time.Duration) error {
	b, _ := p.MarshalBinary()
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))
	return c.conn.WriteMessage(websocket.BinaryMessage, b)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	conn.SetReadLimit(wire.PacketSize)
	c := &client{conn: conn}
	s.clientsMu.Lock()
	s.clients[c] = struct{}{}
	s.clientsMu.Unlock()
	s.log.Info().Str("remote", conn.RemoteAddr().String()).Msg("peer connected")

	go s.readLoop(c)
}

func (s *Server) readLoop(c *client) {
	defer s.drop(c)
	for {
		kind, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Warn().Err(err).Msg("peer read")
			}
			return
		}
		if kind != websocket.BinaryMessage {
			continue
		}
		var p wire.MovePacket
		if err := p.UnmarshalBinary(data); err != nil {
			s.log.Debug().Err(err).Msg("bad packet")
			continue
		}
		s.handlePacket(c, p)
	}
}

// handlePacket applies a peer's move and answers it. A move that cannot be
// applied is echoed back as bad-move so the peer can retry; a retry request
// is answered with the last move played.
func (s *Server) handlePacket(c *client, p wire.MovePacket) {
	switch p.Kind {
	case wire.KindCurrent:
		played, err := s.game.ApplyMove(p.Move)
		if err != nil {
			s.log.Debug().Err(err).Stringer("packet", p).Msg("peer move rejected")
			s.reply(c, wire.Reject(p))
			return
		}
		s.broadcast(wire.Current(played.Move, played.Previous, uint16(played.Fullmove)))
	case wire.KindPrevious, wire.KindBadMove, wire.KindProduce:
		last := s.game.LastMove()
		pos := s.game.Snapshot()
		s.reply(c, wire.MovePacket{
			Move:    last,
			Kind:    wire.KindPrevious,
			Counter: uint16(pos.FullmoveNumber()),
		})
	}
}

func (s *Server) reply(c *client, p wire.MovePacket) {
	if err := c.send(p, s.cfg.WriteTimeout); err != nil {
		s.log.Warn().Err(err).Msg("peer write")
	}
}

// broadcast sends p to every connected peer.
func (s *Server) broadcast(p wire.MovePacket) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for c := range s.clients {
		if err := c.send(p, s.cfg.WriteTimeout); err != nil {
			s.log.Warn().Err(err).Msg("peer write")
		}
	}
}

func (s *Server) drop(c *client) {
	s.clientsMu.Lock()
	delete(s.clients, c)
	s.clientsMu.Unlock()
	_ = c.conn.Close()
	s.log.Info().Str("remote", c.conn.RemoteAddr().String()).Msg("peer disconnected")
}

func (s *Server) closeClients() {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		c.writeMu.Lock()
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		_ = c.conn.Close()
	}
}
