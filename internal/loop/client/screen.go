package client

import (
	"fmt"
	"strings"

	"github.com/RealHoonjang/Dodgeball-AR/internal/draw"
	"github.com/RealHoonjang/Dodgeball-AR/internal/loop/config"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On game state or inactivity transitions, do a full terminal clear
	// so UI elements from the previous state don't persist on screen.
	stateChanged := c.state.GameState != c.state.prevGameState
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if stateChanged || inactiveChanged {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()

	inGame := c.state.GameState == GameStateCountdown || c.state.GameState == GameStatePlaying
	if inGame && !c.state.isInactive && c.scene != nil {
		c.scene.Draw(c.canvas)
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	// Border only shows when the terminal exceeds the max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI()

	return c.chunkWriter.Flush()
}

// writeText writes s at a 1-based canvas position and marks the cells for repaint.
func (c *Client) writeText(col, row int, s string) {
	c.writeStyled(col, row, "", s)
}

// writeStyled writes s in the given color; an empty color writes plain text.
func (c *Client) writeStyled(col, row int, color, s string) {
	if row < 1 || row > c.canvas.TerminalHeight() {
		return
	}
	col = max(col, 1)
	if color != "" {
		c.chunkWriter.WriteAt(col, row, draw.Colorize(color, s))
	} else {
		c.chunkWriter.WriteAt(col, row, s)
	}
	c.canvas.MarkTextDirty(col, row, len([]rune(s)))
}

// writeCentered writes s centered on centerX.
func (c *Client) writeCentered(centerX, row int, s string) {
	c.writeText(centerX-len([]rune(s))/2, row, s)
}

// writeCenteredStyled writes s centered on centerX in the given color.
func (c *Client) writeCenteredStyled(centerX, row int, color, s string) {
	c.writeStyled(centerX-len([]rune(s))/2, row, color, s)
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateNameEntry:
		c.drawNameScreen(centerX, centerY)
	case GameStateCountdown, GameStatePlaying:
		c.drawPlayingHUD(termWidth, termHeight, centerX, centerY)
	case GameStateResults:
		c.drawResultsScreen(centerX, centerY)
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")

	left := int((config.InactivityDisconnect - c.clock.Now().Sub(c.lastInput)).Seconds())
	msg := fmt.Sprintf("You have been inactive for too long. You will be disconnected in %d seconds.", max(left, 0))
	c.writeCentered(centerX, centerY, msg)

	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

var titleArt = []string{
	`  ___   ___  ___   ___ ___  `,
	` |   \ / _ \|   \ / __| __| `,
	` | |) | (_) | |) | (_ | _|  `,
	` |___/ \___/|___/ \___|___| `,
	`                            `,
}

// drawNameScreen draws the title and the nickname prompt.
func (c *Client) drawNameScreen(centerX, centerY int) {
	titleStartY := centerY - 8
	for i, line := range titleArt {
		c.writeCentered(centerX, titleStartY+i, line)
	}
	c.writeCentered(centerX, titleStartY+len(titleArt)+1, "~ Dodge the asteroids, survive the stages ~")

	controlsY := titleStartY + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")
	controlLines := []string{
		"W A S D / arrows . . Move",
		"Q  . . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	promptY := controlsY + len(controlLines) + 2
	field := fmt.Sprintf("Nickname: [%-*s]", config.MaxUsernameLength, c.state.Name)
	c.writeCentered(centerX, promptY, field)

	if strings.TrimSpace(c.state.Name) == "" {
		c.writeCentered(centerX, promptY+2, "    Type a nickname to start    ")
	} else if c.clock.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, promptY+2, ">>  Press ENTER to Start  <<")
	} else {
		c.writeCentered(centerX, promptY+2, strings.Repeat(" ", 32))
	}
	c.writeCentered(centerX, promptY+3, "ESC to quit")
}

// drawPlayingHUD draws score, stage, timer, the countdown and engine messages.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight, centerX, centerY int) {
	hud := c.state.HUD

	c.writeText(2, 1, fmt.Sprintf("%-16s", hud.Score))
	c.writeCentered(centerX, 1, fmt.Sprintf("%-10s", hud.Stage))
	timer := fmt.Sprintf("%10s", hud.Timer)
	c.writeText(termWidth-len(timer)-1, 1, timer)

	if hud.Countdown > 0 {
		c.drawBigDigit(centerX, centerY-3, hud.Countdown)
	}

	if hud.Message != "" {
		lines := strings.Split(hud.Message, "\n")
		for i, line := range lines {
			c.writeCenteredStyled(centerX, centerY-len(lines)/2+i, draw.ColorBold, line)
		}
	}

	stats := c.server.Stats()
	players := fmt.Sprintf("Players: %-4d", stats.Players)
	c.writeText(termWidth-len(players)-1, termHeight, players)
	c.writeText(2, termHeight, "Move: WASD / arrows   Quit: Q")
}

// bigDigits are 3×5 block glyphs for the countdown.
var bigDigits = [10][5]string{
	{"███", "█ █", "█ █", "█ █", "███"},
	{" █ ", "██ ", " █ ", " █ ", "███"},
	{"███", "  █", "███", "█  ", "███"},
	{"███", "  █", "███", "  █", "███"},
	{"█ █", "█ █", "███", "  █", "  █"},
	{"███", "█  ", "███", "  █", "███"},
	{"███", "█  ", "███", "█ █", "███"},
	{"███", "  █", "  █", "  █", "  █"},
	{"███", "█ █", "███", "█ █", "███"},
	{"███", "█ █", "███", "  █", "███"},
}

// drawBigDigit draws the countdown number, each glyph cell two columns wide.
func (c *Client) drawBigDigit(centerX, top, n int) {
	digits := fmt.Sprint(n)
	for row := 0; row < 5; row++ {
		var line strings.Builder
		for i, d := range digits {
			if i > 0 {
				line.WriteString("  ")
			}
			for _, r := range bigDigits[d-'0'][row] {
				line.WriteRune(r)
				line.WriteRune(r)
			}
		}
		c.writeCenteredStyled(centerX, top+row, draw.ColorYellow, line.String())
	}
}

var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	`                                              `,
}

// drawResultsScreen draws the final score and the replay prompt.
func (c *Client) drawResultsScreen(centerX, centerY int) {
	titleStartY := centerY - 7
	for i, line := range gameOverArt {
		c.writeCentered(centerX, titleStartY+i, line)
	}

	y := titleStartY + len(gameOverArt) + 1
	if r := c.state.Result; r != nil {
		c.writeCentered(centerX, y, r.Name)
		c.writeCentered(centerX, y+2, fmt.Sprintf("Score: %d", r.Score))
		c.writeCentered(centerX, y+3, fmt.Sprintf("Reached stage %d", r.Stage))
	}

	if st := c.server.Stats(); st.BestScore > 0 {
		c.writeCentered(centerX, y+5, fmt.Sprintf("Best on this server: %d by %s", st.BestScore, st.BestName))
	}

	if c.clock.Now().UnixMilli()/600%2 == 0 {
		c.writeCentered(centerX, y+7, ">>  Press SPACE to Play Again  <<")
	} else {
		c.writeCentered(centerX, y+7, strings.Repeat(" ", 34))
	}
	c.writeCentered(centerX, y+8, "Q to quit")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTimer.Seconds()) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
