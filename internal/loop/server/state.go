package server

import (
	"time"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
)

// ClientHandle represents a session's registration with the server.
type ClientHandle struct {
	ID        string // Session id
	Username  string // Login name, may be empty
	Connected time.Time
	EventsCh  chan ClientEvent // Events sent to the session, closed on unregister
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// resultReport is a finished game waiting to be logged by Run.
type resultReport struct {
	clientID string
	result   game.Result
}

// Stats summarizes server activity since start.
type Stats struct {
	Players     int // Currently registered sessions
	GamesPlayed int
	BestScore   int
	BestName    string
}
