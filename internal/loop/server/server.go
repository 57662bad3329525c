package server

import (
	"context"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/snowshot/internal/game"
	"github.com/tomz197/snowshot/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the lobby.
// Decouples the Client from the concrete Server implementation.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	RecordResult(result Result)
	GetSnapshot() *LobbySnapshot
}

// Server tracks connected players and the leaderboard. Each player's rounds
// run in their own client; only finished results reach the server.
type Server struct {
	lobby        *LobbyState
	snapshot     atomic.Pointer[LobbySnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	resultCh     chan Result
	mu           sync.RWMutex
	log          *log.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (shutdown, records)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
	Rank int // For EventTopScore
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
	EventTopScore                       // The client's win placed on the leaderboard
)

// NewServer creates a new lobby server. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		lobby:        &LobbyState{},
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		resultCh:     make(chan Result, 64),
		log:          logger,
	}

	s.snapshot.Store(&LobbySnapshot{TopScores: []TopScoreEntry{}})

	return s
}

// Run processes results and publishes snapshots until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.step()
		}
	}
}

// step applies pending results, then publishes a snapshot.
func (s *Server) step() {
	s.collectResults()
	s.createSnapshot()
}

// Shutdown notifies all connected clients that the server is shutting down
// and waits for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn("shutdown timeout reached", "remaining", s.clientCount())
			return
		case <-ticker.C:
			if s.clientCount() == 0 {
				return
			}
		}
	}
}

func (s *Server) clientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient adds a client. The player count follows on the next tick.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++
	handle := &ClientHandle{
		ID:       id,
		Username: sanitizeUsername(username, id),
		EventsCh: make(chan ClientEvent, 16),
	}
	s.clients[id] = handle
	s.log.Info("player joined", "id", id, "user", handle.Username)
	return handle
}

// UnregisterClient removes a client and closes its event channel. Unknown
// ids are ignored. It never blocks on the Run loop, so it is safe after the
// server has stopped.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	handle, ok := s.clients[clientID]
	if !ok {
		return
	}
	close(handle.EventsCh)
	delete(s.clients, clientID)
	s.log.Info("player left", "id", clientID, "user", handle.Username)
}

// RecordResult queues a finished round. Dropped if the queue is full.
func (s *Server) RecordResult(result Result) {
	select {
	case s.resultCh <- result:
	default:
		s.log.Warn("result dropped", "client", result.ClientID)
	}
}

// GetSnapshot returns the latest published lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

func (s *Server) collectResults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case r := <-s.resultCh:
			handle, ok := s.clients[r.ClientID]
			if !ok {
				continue
			}
			s.lobby.Rounds++
			if r.Outcome != game.OutcomeWin {
				continue
			}
			s.lobby.Wins++
			rank := s.lobby.AddWin(handle.Username, r.Difficulty, r.TimeLeft, config.LeaderboardSize)
			s.log.Debug("win recorded", "user", handle.Username, "difficulty", r.Difficulty, "left", r.TimeLeft, "rank", rank)
			if rank > 0 {
				select {
				case handle.EventsCh <- ClientEvent{Type: EventTopScore, Rank: rank}:
				default:
				}
			}
		default:
			return
		}
	}
}

func (s *Server) createSnapshot() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.snapshot.Store(&LobbySnapshot{
		Players:   len(s.clients),
		Rounds:    s.lobby.Rounds,
		Wins:      s.lobby.Wins,
		TopScores: slices.Clone(s.lobby.TopScores),
	})
}

// sanitizeUsername strips control characters and clamps the length. Empty
// names become "player<id>".
func sanitizeUsername(name string, id int) string {
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if runes := []rune(name); len(runes) > config.MaxUsernameLength {
		name = string(runes[:config.MaxUsernameLength])
	}
	if name == "" {
		return "player" + strconv.Itoa(id)
	}
	return name
}
