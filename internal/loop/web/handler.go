// Package web serves the game to browsers over a websocket. Every
// connection plays its own session; finished rounds are reported to the
// shared lobby.
package web

import (
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/tomz197/snowshot/internal/difficulty"
	"github.com/tomz197/snowshot/internal/loop/config"
	"github.com/tomz197/snowshot/internal/loop/server"
	"github.com/tomz197/snowshot/internal/random"
)

// Options configures a Handler.
type Options struct {
	Lobby       server.GameServer          // Required
	Registry    *difficulty.Registry       // Defaults to the built-in table
	Logger      *log.Logger
	NewRand     func() random.Source       // Per-connection random source
	CheckOrigin func(r *http.Request) bool // Defaults to allowing every origin
}

// Handler upgrades requests to websockets and runs one player per connection.
type Handler struct {
	lobby    server.GameServer
	registry *difficulty.Registry
	log      *log.Logger
	newRand  func() random.Source
	upgrader websocket.Upgrader
}

// NewHandler creates a websocket handler.
func NewHandler(opts Options) *Handler {
	h := &Handler{
		lobby:    opts.Lobby,
		registry: opts.Registry,
		log:      opts.Logger,
		newRand:  opts.NewRand,
	}
	if h.registry == nil {
		h.registry = difficulty.Default()
	}
	if h.log == nil {
		h.log = log.New(io.Discard)
	}
	if h.newRand == nil {
		h.newRand = func() random.Source { return random.NewTime() }
	}

	checkOrigin := opts.CheckOrigin
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     checkOrigin,
	}
	return h
}

// ServeHTTP implements http.Handler. The optional "name" query parameter
// sets the leaderboard name.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	conn.SetReadLimit(config.WebMaxMessage)

	p := newPlayer(h, conn, r.URL.Query().Get("name"))
	h.log.Info("web player connected", "remote", r.RemoteAddr, "id", p.handle.ID, "user", p.handle.Username)
	p.run()
	h.log.Info("web player disconnected", "id", p.handle.ID)
}
