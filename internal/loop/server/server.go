// Package server tracks the game sessions of one process: registration, result
// hand-off and graceful shutdown. Each session runs its own game.
package server

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
	"github.com/RealHoonjang/Dodgeball-AR/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the game server.
// Decouples the Client from the concrete Server implementation for testing.
type GameServer interface {
	RegisterClient(id, username string) *ClientHandle
	UnregisterClient(id string)
	ReportResult(id string, r game.Result)
	Stats() Stats
}

// Server registers sessions and receives their results.
type Server struct {
	log          *log.Logger
	clients      map[string]*ClientHandle
	registerCh   chan *ClientHandle
	unregisterCh chan string
	resultCh     chan resultReport
	stats        Stats
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// NewServer creates a server. A nil logger discards output.
func NewServer(logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{
		log:          logger,
		clients:      make(map[string]*ClientHandle),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan string, 16),
		resultCh:     make(chan resultReport, 64),
	}
}

// Run processes registrations and results. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case handle := <-s.registerCh:
			s.addClient(handle)
		case id := <-s.unregisterCh:
			s.removeClient(id)
		case rep := <-s.resultCh:
			s.recordResult(rep)
		}
	}
}

// Shutdown notifies all connected clients and waits for them to disconnect,
// up to the given timeout. The caller should cancel the Run context afterwards.
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
	ticker := time.NewTicker(config.ShutdownPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "remaining", s.Stats().Players)
			return
		case <-ticker.C:
			if s.Stats().Players == 0 {
				return
			}
		}
	}
}

// RegisterClient queues a new session and returns its handle.
func (s *Server) RegisterClient(id, username string) *ClientHandle {
	handle := &ClientHandle{
		ID:        id,
		Username:  username,
		Connected: time.Now(),
		EventsCh:  make(chan ClientEvent, config.EventBufferSize),
	}
	s.registerCh <- handle
	return handle
}

// UnregisterClient queues removal of a session.
func (s *Server) UnregisterClient(id string) {
	s.unregisterCh <- id
}

// ReportResult hands a finished game to the server. Results are logged, not stored.
func (s *Server) ReportResult(id string, r game.Result) {
	select {
	case s.resultCh <- resultReport{clientID: id, result: r}:
	default:
		s.log.Warn("result dropped, queue full", "client", id, "score", r.Score)
	}
}

// Stats returns a copy of the current counters.
func (s *Server) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.stats
	st.Players = len(s.clients)
	return st
}

func (s *Server) addClient(handle *ClientHandle) {
	s.mu.Lock()
	s.clients[handle.ID] = handle
	n := len(s.clients)
	s.mu.Unlock()
	s.log.Info("session registered", "client", handle.ID, "user", handle.Username, "players", n)
}

func (s *Server) removeClient(id string) {
	s.mu.Lock()
	handle, ok := s.clients[id]
	if ok {
		close(handle.EventsCh)
		delete(s.clients, id)
	}
	n := len(s.clients)
	s.mu.Unlock()
	if ok {
		s.log.Info("session ended", "client", id, "duration", time.Since(handle.Connected).Round(time.Second), "players", n)
	}
}

func (s *Server) recordResult(rep resultReport) {
	s.mu.Lock()
	s.stats.GamesPlayed++
	best := rep.result.Score > s.stats.BestScore
	if best {
		s.stats.BestScore = rep.result.Score
		s.stats.BestName = rep.result.Name
	}
	s.mu.Unlock()
	s.log.Info("game finished", "client", rep.clientID, "name", rep.result.Name,
		"score", rep.result.Score, "stage", rep.result.Stage, "best", best)
}
