package scene

import (
	"bytes"
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealHoonjang/Dodgeball-AR/internal/draw"
	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
	"github.com/RealHoonjang/Dodgeball-AR/internal/input"
	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

func newTestScene() *Scene {
	return New(DefaultProjection(120, 80), rand.New(rand.NewSource(1)))
}

func rock() game.Geometry {
	return game.Geometry{Primitive: PrimitivePlane, Width: 0.067, Height: 0.067}
}

func TestScene_EntityLifecycle(t *testing.T) {
	s := newTestScene()

	a := s.CreateEntity(rock(), game.Material{Src: "asteroid"})
	b := s.CreateEntity(game.Geometry{Primitive: PrimitiveTriangle}, game.Material{})
	require.NotEqual(t, a, b)
	assert.Equal(t, 2, s.Len())

	pos, ok := s.Position(a)
	require.True(t, ok)
	assert.Equal(t, physics.Vec3{}, pos)

	s.SetPosition(a, physics.Vec3{X: 1, Y: 2, Z: -3})
	pos, _ = s.Position(a)
	assert.Equal(t, physics.Vec3{X: 1, Y: 2, Z: -3}, pos)

	s.RemoveEntity(a)
	_, ok = s.Position(a)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, []game.Handle{b}, s.order)

	s.RemoveEntity(a)
	s.SetPosition(a, physics.Vec3{X: 9})
	assert.Equal(t, 1, s.Len(), "unknown handles are ignored")
}

func TestScene_SetVisible(t *testing.T) {
	s := newTestScene()
	h := s.CreateEntity(game.Geometry{Primitive: PrimitiveTriangle}, game.Material{})

	e, _ := s.Entity(h)
	assert.True(t, e.Visible)

	s.SetVisible(h, false)
	e, _ = s.Entity(h)
	assert.False(t, e.Visible)
}

func TestScene_CameraAtOrigin(t *testing.T) {
	assert.Equal(t, physics.Vec3{}, newTestScene().CameraPosition())
}

func TestProjection_FramesPlayField(t *testing.T) {
	pr := DefaultProjection(120, 80)

	pt, _, ok := pr.Project(physics.Vec3{Z: -3}, physics.Vec3{})
	require.True(t, ok)
	assert.Equal(t, draw.Point{X: 60, Y: 40}, pt)

	pt, _, _ = pr.Project(physics.Vec3{X: 5, Y: 4, Z: -3}, physics.Vec3{})
	assert.InDelta(t, 120, pt.X, 1e-9)
	assert.InDelta(t, 0, pt.Y, 1e-9, "up is towards row 0")

	pt, _, _ = pr.Project(physics.Vec3{X: -5, Y: -4, Z: -3}, physics.Vec3{})
	assert.InDelta(t, 0, pt.X, 1e-9)
	assert.InDelta(t, 80, pt.Y, 1e-9)

	_, _, ok = pr.Project(physics.Vec3{Z: 1}, physics.Vec3{})
	assert.False(t, ok, "behind the camera")
}

func TestProjection_ScaleShrinksWithDepth(t *testing.T) {
	pr := DefaultProjection(120, 80)
	_, near, _ := pr.Project(physics.Vec3{Z: -1}, physics.Vec3{})
	_, far, _ := pr.Project(physics.Vec3{Z: -4}, physics.Vec3{})
	assert.InDelta(t, near/4, far, 1e-12)
}

func TestController_MovesAndClamps(t *testing.T) {
	s := newTestScene()
	h := s.CreateEntity(game.Geometry{Primitive: PrimitiveTriangle}, game.Material{})
	s.SetPosition(h, physics.Vec3{Z: -3})
	c := DefaultController()

	c.Apply(s, h, input.Input{Right: true}, time.Second)
	pos, _ := s.Position(h)
	assert.InDelta(t, 2.5, pos.X, 1e-9)
	assert.Equal(t, -3.0, pos.Z, "depth untouched")

	c.Apply(s, h, input.Input{Right: true}, 10*time.Second)
	pos, _ = s.Position(h)
	assert.Equal(t, game.BoundX-0.5, pos.X)

	s.SetPosition(h, physics.Vec3{Z: -3})
	c.Apply(s, h, input.Input{Up: true, Left: true}, time.Second)
	pos, _ = s.Position(h)
	assert.InDelta(t, 2.5/math.Sqrt2, pos.Y, 1e-9)
	assert.InDelta(t, -2.5/math.Sqrt2, pos.X, 1e-9)

	before := pos
	c.Apply(s, h, input.Input{Left: true, Right: true}, time.Second)
	pos, _ = s.Position(h)
	assert.Equal(t, before, pos, "opposite keys cancel")
}

func TestScene_DrawSkipsHidden(t *testing.T) {
	s := newTestScene()
	h := s.CreateEntity(game.Geometry{Primitive: PrimitiveTriangle, Width: 0.1}, game.Material{})
	s.SetPosition(h, physics.Vec3{Z: -3})

	render := func() string {
		c := draw.NewScaledCanvas(60, 20, 120, 80)
		s.Draw(c)
		var buf bytes.Buffer
		c.Render(&buf)
		return buf.String()
	}

	assert.True(t, bytes.ContainsAny([]byte(render()), "█▀▄"))

	s.SetVisible(h, false)
	out := render()
	assert.NotContains(t, out, "█")
	assert.NotContains(t, out, "▀")
	assert.NotContains(t, out, "▄")
}

func TestScene_DrawRock(t *testing.T) {
	s := newTestScene()
	h := s.CreateEntity(rock(), game.Material{Src: "asteroid"})
	s.SetPosition(h, physics.Vec3{X: 2, Y: -1, Z: -3})

	c := draw.NewScaledCanvas(60, 20, 120, 80)
	s.Draw(c)
	var buf bytes.Buffer
	c.Render(&buf)

	out := buf.String()
	assert.True(t, bytes.ContainsAny([]byte(out), "█▀▄"), "outline drawn")
}

func TestScene_DrawInks(t *testing.T) {
	s := newTestScene()
	player := s.CreateEntity(game.Geometry{Primitive: PrimitiveTriangle, Width: 0.1}, game.Material{Src: PlayerSrc})
	s.SetPosition(player, physics.Vec3{X: -2, Z: -3})
	faint := s.CreateEntity(rock(), game.Material{Src: "asteroid", Transparent: true, Opacity: 0.2})
	s.SetPosition(faint, physics.Vec3{X: 2, Z: -3})

	c := draw.NewScaledCanvas(60, 20, 120, 80)
	s.Draw(c)
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))

	out := buf.String()
	assert.Contains(t, out, "\033[96;", "player in cyan")
	assert.Contains(t, out, "\033[90;", "faint rock in gray")
}

func TestInkFor(t *testing.T) {
	assert.Equal(t, draw.InkCyan, inkFor(game.Material{Src: PlayerSrc}))
	assert.Equal(t, draw.InkGray, inkFor(game.Material{Transparent: true, Opacity: 0.3}))
	assert.Equal(t, draw.InkWhite, inkFor(game.Material{Transparent: true, Opacity: 0.9}))
	assert.Equal(t, draw.InkWhite, inkFor(game.Material{Opacity: 0.1}), "opaque ignores opacity")
}
