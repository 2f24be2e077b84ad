package client

import (
	"time"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
	"github.com/RealHoonjang/Dodgeball-AR/internal/input"
)

// GameState represents the current screen of a client.
type GameState int

const (
	GameStateNameEntry GameState = iota // Nickname prompt
	GameStateCountdown                  // Pre-game countdown running
	GameStatePlaying                    // Active gameplay, including stage transitions
	GameStateResults                    // Final score, replay prompt
	GameStateShutdown                   // Server is shutting down
)

// HUD is the text the engine asked to display.
type HUD struct {
	Score     string
	Stage     string
	Timer     string
	Countdown int    // 0 when hidden
	Message   string // Empty when hidden, may span lines
}

// ClientState holds per-session state.
type ClientState struct {
	Input         input.Input
	GameState     GameState
	prevGameState GameState
	Name          string // Nickname, edited on the name screen
	HUD           HUD
	Result        *game.Result // Set once the game is over
	Running       bool
	delta         time.Duration // Frame delta time
	shutdownTimer time.Duration // Left before auto-disconnect on shutdown
	isInactive    bool
	wasInactive   bool
}

// NewClientState creates a client on the name screen with the given default nickname.
func NewClientState(name string) *ClientState {
	return &ClientState{
		GameState:     GameStateNameEntry,
		prevGameState: GameStateNameEntry,
		Name:          name,
		Running:       true,
	}
}
