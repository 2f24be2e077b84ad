package client

import (
	"strings"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
)

// SetScoreText implements game.UI.
func (c *Client) SetScoreText(text string) { c.state.HUD.Score = text }

// SetStageText implements game.UI.
func (c *Client) SetStageText(text string) { c.state.HUD.Stage = text }

// SetTimerText implements game.UI.
func (c *Client) SetTimerText(text string) { c.state.HUD.Timer = text }

// ShowCountdown implements game.UI.
func (c *Client) ShowCountdown(digit int) { c.state.HUD.Countdown = digit }

// HideCountdown implements game.UI.
func (c *Client) HideCountdown() { c.state.HUD.Countdown = 0 }

// ShowMessage implements game.UI.
func (c *Client) ShowMessage(text string) { c.state.HUD.Message = text }

// HideMessage implements game.UI.
func (c *Client) HideMessage() { c.state.HUD.Message = "" }

// StoredName returns the nickname typed on the name screen.
func (c *Client) StoredName() (string, bool) {
	name := strings.TrimSpace(c.state.Name)
	return name, name != ""
}

// NavigateToResults switches to the results screen and reports the game to the server.
func (c *Client) NavigateToResults(r game.Result) {
	c.state.Result = &r
	c.state.GameState = GameStateResults
	c.server.ReportResult(c.id, r)
}
