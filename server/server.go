// Package server exposes a session.Game over HTTP and a WebSocket move
// channel.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"ndjin/session"
)

// Server wires the HTTP layer to one shared game.
type Server struct {
	cfg      Config
	game     *session.Game
	log      zerolog.Logger
	router   *mux.Router
	upgrader websocket.Upgrader

	clientsMu sync.RWMutex
	clients   map[*client]struct{}
}

// New validates cfg and builds a Server around a fresh game.
func New(cfg Config, logger zerolog.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	game, err := session.New(cfg.StartFEN)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:     cfg,
		game:    game,
		log:     logger.With().Str("component", "server").Logger(),
		router:  mux.NewRouter(),
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(cfg.AllowedOrigins),
		},
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := s.router
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.withJSON)
	api.HandleFunc("/position", s.handlePosition).Methods(http.MethodGet)
	api.HandleFunc("/moves", s.handleMoves).Methods(http.MethodGet)
	api.HandleFunc("/move", s.handleMove).Methods(http.MethodPost)
	api.HandleFunc("/undo", s.handleUndo).Methods(http.MethodPost)
	api.HandleFunc("/eval", s.handleEval).Methods(http.MethodGet)
	api.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	api.HandleFunc("/square/{square:[a-hA-H][1-8]}", s.handleSquare).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.handleWS)
}

// Handler returns the router wrapped with access logging and CORS.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.router
	if len(s.cfg.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost}),
			handlers.AllowedHeaders([]string{"Content-Type"}),
		)(h)
	}
	return handlers.LoggingHandler(s.log, h)
}

// Game returns the shared game.
func (s *Server) Game() *session.Game { return s.game }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		MaxHeaderBytes:    1 << 16,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	s.closeClients()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.WriteTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.log.Info().Msg("stopped")
	return nil
}

func originChecker(allowed []string) func(*http.Request) bool {
	if len(allowed) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
