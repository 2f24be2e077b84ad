// Package client runs one player's session: the frame loop, the screens around a game,
// and the HUD and results hand-off the engine talks to.
package client

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/RealHoonjang/Dodgeball-AR/internal/draw"
	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
	"github.com/RealHoonjang/Dodgeball-AR/internal/input"
	"github.com/RealHoonjang/Dodgeball-AR/internal/loop/config"
	"github.com/RealHoonjang/Dodgeball-AR/internal/loop/server"
	"github.com/RealHoonjang/Dodgeball-AR/internal/scene"
	"github.com/RealHoonjang/Dodgeball-AR/internal/sched"
)

// Client handles rendering, input and the game for a single connection.
type Client struct {
	id           string
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger

	gameCfg    game.Config
	clock      sched.Clock
	sched      *sched.Scheduler
	scene      *scene.Scene
	controller scene.Controller
	engine     *game.Engine
	player     game.Handle
	countdown  <-chan struct{}
}

// Compile-time checks for the collaborators the engine needs.
var (
	_ game.UI        = (*Client)(nil)
	_ game.Navigator = (*Client)(nil)
)

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string      // Pre-fills the nickname
	Game         game.Config // Zero value means game.DefaultConfig
	Logger       *log.Logger
	Clock        sched.Clock // Defaults to the wall clock
}

// NewClient creates a new client registered with the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	gameCfg := opts.Game
	if gameCfg == (game.Config{}) {
		gameCfg = game.DefaultConfig()
	}
	clock := opts.Clock
	if clock == nil {
		clock = sched.RealClock{}
	}

	id := uuid.NewString()
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("session", id[:8])

	name := strings.TrimSpace(opts.Username)
	if len(name) > config.MaxUsernameLength {
		name = name[:config.MaxUsernameLength]
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	return &Client{
		id:           id,
		server:       gs,
		handle:       gs.RegisterClient(id, opts.Username),
		state:        NewClientState(name),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		inputStream:  input.StartStream(r),
		lastInput:    clock.Now(),
		termSizeFunc: termSizeFunc,
		log:          logger,
		gameCfg:      gameCfg,
		clock:        clock,
		sched:        sched.New(clock),
		controller:   scene.DefaultController(),
	}
}

// ID returns the session id.
func (c *Client) ID() string {
	return c.id
}

// Run starts the client loop. Blocks until the client disconnects or server stops.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)
	defer c.inputStream.Close()

	lastTime := c.clock.Now()
	var runErr error

	for c.state.Running {
		frameStart := c.clock.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		c.updateScreen()
		if err := c.step(input.ReadInput(c.inputStream), delta); err != nil {
			runErr = err
			break
		}
		if err := c.drawFrame(); err != nil {
			runErr = err
			break
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.sched.StopAll()
	c.server.UnregisterClient(c.id)

	draw.ClearScreen(c.writer)
	return runErr
}

// step advances the session by one frame: input, server events, the current screen,
// then due timers and the game tick.
func (c *Client) step(in input.Input, delta time.Duration) error {
	c.state.delta = delta
	c.processInput(in)
	c.processServerEvents()
	if !c.state.Running {
		return nil
	}

	switch c.state.GameState {
	case GameStateNameEntry:
		if err := c.updateNameEntryState(); err != nil {
			return err
		}
	case GameStateCountdown:
		if err := c.updateCountdownState(); err != nil {
			return err
		}
	case GameStatePlaying:
		c.controller.Apply(c.scene, c.player, c.state.Input, delta)
	case GameStateResults:
		if err := c.updateResultsState(); err != nil {
			return err
		}
	case GameStateShutdown:
		c.updateShutdownState()
	}

	c.sched.RunDue()
	if c.engine != nil && c.state.GameState == GameStatePlaying {
		c.engine.Tick()
	}
	return nil
}

// processInput records the frame's input and tracks inactivity.
func (c *Client) processInput(in input.Input) {
	c.state.Input = in
	idle := c.clock.Now().Sub(c.lastInput)

	if in.Any() {
		c.lastInput = c.clock.Now()
		c.state.isInactive = false
	} else if idle > config.InactivityDisconnect {
		c.log.Info("disconnecting inactive session")
		c.state.Running = false
	} else if idle > config.InactivityWarn {
		c.state.isInactive = true
	}

	// Letters are typed into the nickname, so only Escape quits from there.
	if c.state.GameState == GameStateNameEntry {
		if in.Escape {
			c.state.Running = false
		}
	} else if in.Quit {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			if event.Type == server.EventServerShutdown {
				c.sched.StopAll()
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplay
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// updateNameEntryState edits the nickname and starts once it is non-empty.
func (c *Client) updateNameEntryState() error {
	c.state.Name = input.EditLine(c.state.Name, c.state.Input.Pressed, config.MaxUsernameLength)
	if c.state.Input.Enter && strings.TrimSpace(c.state.Name) != "" {
		return c.startGame()
	}
	return nil
}

// updateCountdownState starts the game once the countdown has resolved.
func (c *Client) updateCountdownState() error {
	select {
	case <-c.countdown:
	default:
		return nil
	}
	if err := c.engine.StartGame(); err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	c.state.GameState = GameStatePlaying
	return nil
}

// updateResultsState waits for a replay.
func (c *Client) updateResultsState() error {
	if c.state.Input.Space || c.state.Input.Enter {
		return c.startGame()
	}
	return nil
}

// startGame builds a fresh scene and engine and runs the countdown.
func (c *Client) startGame() error {
	input.ResetKeyInput(c.inputStream)
	c.sched.StopAll()

	c.scene = scene.New(scene.DefaultProjection(config.ViewWidth, config.ViewHeight),
		rand.New(rand.NewSource(c.clock.Now().UnixNano())))
	c.player = c.scene.CreateEntity(
		game.Geometry{Primitive: scene.PrimitiveTriangle, Width: c.gameCfg.Player.Width, Height: c.gameCfg.Player.Height},
		game.Material{Src: scene.PlayerSrc, Transparent: true, Opacity: c.gameCfg.Player.Opacity},
	)
	c.scene.SetVisible(c.player, false)

	engine, err := game.New(c.gameCfg, game.Deps{
		Renderer:  c.scene,
		UI:        c,
		Navigator: c,
		Scheduler: c.sched,
		Player:    c.player,
		Logger:    c.log,
	})
	if err != nil {
		return fmt.Errorf("new game: %w", err)
	}
	c.scene.SetVisible(c.player, true)

	c.engine = engine
	c.state.HUD = HUD{}
	c.state.Result = nil

	done, err := engine.StartCountdown()
	if err != nil {
		return fmt.Errorf("start countdown: %w", err)
	}
	c.countdown = done
	c.state.GameState = GameStateCountdown
	c.log.Debug("countdown started", "name", c.state.Name)
	return nil
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
