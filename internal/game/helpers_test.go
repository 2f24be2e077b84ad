package game

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
	"github.com/RealHoonjang/Dodgeball-AR/internal/sched"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

type fakeRenderer struct {
	next      Handle
	positions map[Handle]physics.Vec3
	created   int
	removed   int
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{positions: make(map[Handle]physics.Vec3)}
}

func (r *fakeRenderer) CreateEntity(Geometry, Material) Handle {
	r.next++
	r.created++
	r.positions[r.next] = physics.Vec3{}
	return r.next
}

func (r *fakeRenderer) SetPosition(h Handle, pos physics.Vec3) {
	if _, ok := r.positions[h]; ok {
		r.positions[h] = pos
	}
}

func (r *fakeRenderer) RemoveEntity(h Handle) {
	if _, ok := r.positions[h]; ok {
		r.removed++
		delete(r.positions, h)
	}
}

func (r *fakeRenderer) Position(h Handle) (physics.Vec3, bool) {
	p, ok := r.positions[h]
	return p, ok
}

func (r *fakeRenderer) CameraPosition() physics.Vec3 {
	return physics.Vec3{}
}

type fakeUI struct {
	score     string
	stage     string
	timer     string
	countdown int // 0 when hidden
	message   string
	messages  []string
}

func (u *fakeUI) SetScoreText(text string) { u.score = text }
func (u *fakeUI) SetStageText(text string) { u.stage = text }
func (u *fakeUI) SetTimerText(text string) { u.timer = text }
func (u *fakeUI) ShowCountdown(digit int)  { u.countdown = digit }
func (u *fakeUI) HideCountdown()           { u.countdown = 0 }
func (u *fakeUI) HideMessage()             { u.message = "" }
func (u *fakeUI) ShowMessage(text string) {
	u.message = text
	u.messages = append(u.messages, text)
}

type fakeNav struct {
	name    string
	hasName bool
	results []Result
}

func (n *fakeNav) StoredName() (string, bool) { return n.name, n.hasName }
func (n *fakeNav) NavigateToResults(r Result) { n.results = append(n.results, r) }

type harness struct {
	engine   *Engine
	renderer *fakeRenderer
	ui       *fakeUI
	nav      *fakeNav
	clock    *sched.ManualClock
	sched    *sched.Scheduler
	player   Handle
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		renderer: newFakeRenderer(),
		ui:       &fakeUI{},
		nav:      &fakeNav{},
		clock:    sched.NewManualClock(epoch),
	}
	h.sched = sched.New(h.clock)
	h.player = h.renderer.CreateEntity(Geometry{}, Material{})
	h.renderer.created = 0

	e, err := New(cfg, Deps{
		Renderer:  h.renderer,
		UI:        h.ui,
		Navigator: h.nav,
		Scheduler: h.sched,
		Player:    h.player,
		Rand:      rand.New(rand.NewSource(1)),
	})
	require.NoError(t, err)
	h.engine = e
	return h
}

// advance moves the clock in steps, firing due timers after each one.
func (h *harness) advance(total, step time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += step {
		h.clock.Advance(step)
		h.sched.RunDue()
	}
}

// start runs the countdown to completion and starts the game.
func (h *harness) start(t *testing.T) {
	t.Helper()
	done, err := h.engine.StartCountdown()
	require.NoError(t, err)
	h.advance(3*time.Second, time.Second)
	require.True(t, closed(done))
	require.NoError(t, h.engine.StartGame())
}

func (h *harness) movePlayer(pos physics.Vec3) {
	h.renderer.SetPosition(h.player, pos)
}

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}
