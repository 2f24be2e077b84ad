// Package game implements the dodge game engine: stages and timers, the asteroid spawner,
// projectile motion and collision, and scoring.
//
// An Engine is driven from a single goroutine: the owner calls Scheduler.RunDue and then
// Tick once per frame. Rendering, display text and navigation go through the Renderer, UI
// and Navigator collaborators.
package game

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
	"github.com/RealHoonjang/Dodgeball-AR/internal/sched"
)

// Phase is the top-level state of an Engine.
type Phase int

const (
	PhaseIdle          Phase = iota // Waiting for StartCountdown
	PhaseCounting                   // Countdown running
	PhasePlaying                    // Stage in progress
	PhaseTransitioning              // Between stage clear and next stage start
	PhaseGameOver                   // Terminal
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCounting:
		return "counting"
	case PhasePlaying:
		return "playing"
	case PhaseTransitioning:
		return "transitioning"
	case PhaseGameOver:
		return "game over"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Deps are the collaborators an Engine needs.
type Deps struct {
	Renderer  Renderer
	UI        UI
	Navigator Navigator
	Scheduler *sched.Scheduler
	Player    Handle      // Player entity, must already exist in Renderer
	Logger    *log.Logger // Optional, discards when nil
	Rand      *rand.Rand  // Optional, seeded from Config.Seed or the clock when nil
}

// Engine owns all mutable game state.
type Engine struct {
	cfg      Config
	renderer Renderer
	ui       UI
	nav      Navigator
	sched    *sched.Scheduler
	log      *log.Logger
	rng      *rand.Rand
	player   Handle

	score         int
	stage         int
	spawnCount    int
	asteroidSpeed float64
	stageStart    time.Time
	projectiles   []*Projectile
	lastPlayerPos physics.Vec3

	counting      bool
	playing       bool
	transitioning bool
	started       bool
	over          bool

	countdownTimer  *sched.Timer
	stageTimer      *sched.Timer
	spawnTimer      *sched.Timer
	transitionTimer *sched.Timer

	result *Result
}

// New creates an engine in PhaseIdle. It fails fast when a collaborator is missing or
// the renderer does not know the player entity.
func New(cfg Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Renderer == nil:
		return nil, fmt.Errorf("%w: renderer", ErrNilCollaborator)
	case deps.UI == nil:
		return nil, fmt.Errorf("%w: ui", ErrNilCollaborator)
	case deps.Navigator == nil:
		return nil, fmt.Errorf("%w: navigator", ErrNilCollaborator)
	case deps.Scheduler == nil:
		return nil, fmt.Errorf("%w: scheduler", ErrNilCollaborator)
	}
	if _, ok := deps.Renderer.Position(deps.Player); !ok {
		return nil, fmt.Errorf("%w: handle %d", ErrNoPlayer, deps.Player)
	}

	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rng := deps.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	return &Engine{
		cfg:           cfg,
		renderer:      deps.Renderer,
		ui:            deps.UI,
		nav:           deps.Navigator,
		sched:         deps.Scheduler,
		log:           logger,
		rng:           rng,
		player:        deps.Player,
		stage:         1,
		spawnCount:    cfg.Asteroid.SpawnCount.Initial,
		asteroidSpeed: cfg.Asteroid.InitialSpeed,
		lastPlayerPos: physics.Vec3{Z: cfg.Spawn.Z},
	}, nil
}

// StartCountdown resets the field and runs the pre-game countdown.
// The returned channel is closed once the countdown has finished and the engine is
// playing; StartGame must only be called after that.
func (e *Engine) StartCountdown() (<-chan struct{}, error) {
	if e.Phase() != PhaseIdle || e.started {
		return nil, fmt.Errorf("%w: countdown from %s", ErrInvalidPhase, e.Phase())
	}
	e.counting = true
	e.playing = false
	e.clearProjectiles()

	origin := physics.Vec3{Z: e.cfg.Spawn.Z}
	e.renderer.SetPosition(e.player, origin)
	e.lastPlayerPos = origin

	e.ui.SetScoreText(ScoreText(e.score))
	e.ui.SetStageText(StageText(e.stage))

	done := make(chan struct{})
	count := e.cfg.Stage.CountdownFrom
	e.ui.ShowCountdown(count)

	e.countdownTimer.Stop()
	e.countdownTimer = e.sched.Every(e.cfg.Stage.CountdownStep, func() {
		count--
		if count > 0 {
			e.ui.ShowCountdown(count)
			return
		}
		e.countdownTimer.Stop()
		e.ui.HideCountdown()
		e.counting = false
		e.playing = true
		close(done)
	})
	return done, nil
}

// StartGame starts the batch spawner and the first stage timer.
func (e *Engine) StartGame() error {
	if e.Phase() != PhasePlaying || e.started {
		return fmt.Errorf("%w: start from %s", ErrInvalidPhase, e.Phase())
	}
	e.started = true
	e.playing = true
	e.startAsteroidSpawner()
	e.startStageTimer()
	e.log.Info("game started", "stage", e.stage)
	return nil
}

// Tick advances the game by one frame. It does nothing outside active play.
func (e *Engine) Tick() {
	if e.over || !e.started || !e.playing || e.transitioning {
		return
	}
	pos, ok := e.renderer.Position(e.player)
	if !ok {
		e.log.Error("player entity disappeared, ending game", "handle", e.player)
		e.gameOver()
		return
	}

	e.checkPlayerMovement(pos)
	e.fillToMin(pos)
	e.updateProjectiles(pos)
}

// gameOver stops every timer and hands the result to the navigator. Terminal.
func (e *Engine) gameOver() {
	if e.over {
		return
	}
	e.over = true
	e.playing = false
	e.spawnTimer.Stop()
	e.stageTimer.Stop()
	e.transitionTimer.Stop()
	e.countdownTimer.Stop()

	name, ok := e.nav.StoredName()
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		name = AnonymousName
	}
	r := Result{Score: e.score, Stage: e.stage, Name: name}
	e.result = &r

	e.log.Info("game over", "name", r.Name, "score", r.Score, "stage", r.Stage)
	e.nav.NavigateToResults(r)
}

// Phase returns the current top-level state.
func (e *Engine) Phase() Phase {
	switch {
	case e.over:
		return PhaseGameOver
	case e.counting:
		return PhaseCounting
	case e.transitioning:
		return PhaseTransitioning
	case e.playing:
		return PhasePlaying
	default:
		return PhaseIdle
	}
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Stage returns the current stage number.
func (e *Engine) Stage() int { return e.stage }

// SpawnCount returns the current batch size.
func (e *Engine) SpawnCount() int { return e.spawnCount }

// AsteroidSpeed returns the current base projectile speed.
func (e *Engine) AsteroidSpeed() float64 { return e.asteroidSpeed }

// LiveCount returns the number of live projectiles.
func (e *Engine) LiveCount() int { return len(e.projectiles) }

// Started reports whether StartGame has run.
func (e *Engine) Started() bool { return e.started }

// Result returns the final result once the game is over.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}
