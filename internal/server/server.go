package server

import (
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"ninjazombie/internal/config"
	"ninjazombie/internal/history"
)

// Server ties together HTTP serving and WebSocket handling.
type Server struct {
	handlers *Handlers
	port     int
	static   fs.FS
}

// New builds a server. static must contain a web/static directory; store may
// be nil to run without match history.
func New(settings config.Settings, store *history.Store, static fs.FS) *Server {
	return &Server{
		handlers: NewHandlers(settings.Ruleset, store),
		port:     settings.Server.Port,
		static:   static,
	}
}

// Handler returns the routes.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// Static files from embedded FS
	sub, err := fs.Sub(s.static, "web/static")
	if err != nil {
		return nil, fmt.Errorf("static fs: %w", err)
	}
	mux.Handle("/", http.FileServer(http.FS(sub)))

	// API routes
	mux.HandleFunc("/api/create", s.handlers.HandleCreateGame)
	mux.HandleFunc("/api/qr", s.handlers.HandleQR)
	mux.HandleFunc("/api/player-id", s.handlers.HandlePlayerID)
	mux.HandleFunc("/api/history", s.handlers.HandleHistory)
	mux.HandleFunc("/ws", s.handlers.HandleWS)
	return mux, nil
}

func (s *Server) Start() error {
	handler, err := s.Handler()
	if err != nil {
		return err
	}
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Ninja Zombie server starting on http://localhost%s", addr)
	log.Printf("Open http://localhost%s/api/create to create a new game", addr)
	return http.ListenAndServe(addr, handler)
}

// Close stops every game hub.
func (s *Server) Close() {
	s.handlers.Close()
}
