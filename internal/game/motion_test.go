package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

func TestIsOutOfBounds(t *testing.T) {
	tests := []struct {
		pos  physics.Vec3
		want bool
	}{
		{physics.Vec3{X: 4.0}, false},
		{physics.Vec3{X: 4.1}, true},
		{physics.Vec3{X: -4.1}, true},
		{physics.Vec3{Y: 4.0}, false},
		{physics.Vec3{Y: -4.01}, true},
		{physics.Vec3{Z: -5}, false},
		{physics.Vec3{Z: 5.5}, true},
		{physics.Vec3{X: 3, Y: -3, Z: -3}, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsOutOfBounds(tt.pos), "%+v", tt.pos)
	}
}

func TestCollides(t *testing.T) {
	threshold := DefaultConfig().CollisionThreshold()
	assert.InDelta(t, 0.0557, threshold, 1e-4)

	player := physics.Vec3{Z: -3}
	assert.True(t, Collides(player, physics.Vec3{X: 0.02, Z: -3}, threshold))
	assert.False(t, Collides(player, physics.Vec3{X: 0.1, Z: -3}, threshold))
	assert.True(t, Collides(player, physics.Vec3{X: 0.02, Z: 4}, threshold), "depth is ignored")
}

func TestCheckCollision_SuppressedBeforeStart(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	near := physics.Vec3{X: 0.02, Z: -3}
	player := physics.Vec3{Z: -3}

	assert.False(t, h.engine.checkCollision(player, near), "idle")

	_, err := h.engine.StartCountdown()
	require.NoError(t, err)
	assert.False(t, h.engine.checkCollision(player, near), "counting")
}

func TestProjectile_AdvanceTowardsTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := NewProjectile(1, physics.Vec3{X: -5, Z: -3}, physics.Vec3{Z: -3}, 0.005, 0.3, rng)

	assert.InDelta(t, 1.0, p.Direction.Len(), 1e-9)
	assert.GreaterOrEqual(t, p.Speed, 0.005)
	assert.Less(t, p.Speed, 0.005*1.3)

	start := p.Position
	p.Advance()
	assert.InDelta(t, p.Speed, p.Position.Sub(start).Len(), 1e-12)
	assert.Greater(t, p.Position.X, start.X)
	assert.Equal(t, start.Y, p.Position.Y)
}

func TestProjectile_SpeedVarianceRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 500; i++ {
		p := NewProjectile(Handle(i), physics.Vec3{X: 1}, physics.Vec3{}, 0.01, 0.3, rng)
		require.GreaterOrEqual(t, p.Speed, 0.01)
		require.Less(t, p.Speed, 0.013)
	}
}

func TestProjectile_SpawnedOnTarget(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	at := physics.Vec3{X: 1, Y: 2, Z: -3}
	p := NewProjectile(1, at, at, 0.005, 0.3, rng)

	assert.Equal(t, physics.Vec3{}, p.Direction)
	p.Advance()
	assert.Equal(t, at, p.Position, "zero direction stays put")
}

func TestEdgePoint(t *testing.T) {
	sc := DefaultConfig().Spawn

	assert.Equal(t, physics.Vec3{X: 0, Y: 4, Z: -3}, edgePoint(sc, EdgeTop, 0.5))
	assert.Equal(t, physics.Vec3{X: 5, Y: -4, Z: -3}, edgePoint(sc, EdgeRight, 0))
	assert.Equal(t, physics.Vec3{X: -5, Y: -4, Z: -3}, edgePoint(sc, EdgeBottom, 0))
	assert.Equal(t, physics.Vec3{X: -5, Y: 0, Z: -3}, edgePoint(sc, EdgeLeft, 0.5))
}

func TestEdgePosition_OnBoundary(t *testing.T) {
	sc := DefaultConfig().Spawn
	rng := rand.New(rand.NewSource(11))
	seen := map[string]bool{}

	for i := 0; i < 400; i++ {
		p := EdgePosition(sc, rng)
		require.Equal(t, sc.Z, p.Z)
		require.True(t, p.X >= sc.MinX && p.X <= sc.MaxX)
		require.True(t, p.Y >= sc.MinY && p.Y <= sc.MaxY)

		switch {
		case p.Y == sc.MaxY:
			seen["top"] = true
		case p.Y == sc.MinY:
			seen["bottom"] = true
		case p.X == sc.MaxX:
			seen["right"] = true
		case p.X == sc.MinX:
			seen["left"] = true
		default:
			t.Fatalf("position %+v is not on an edge", p)
		}
	}
	assert.Len(t, seen, 4)
}

func TestUpdateProjectiles_RemovesOutOfBoundsAndTopsUp(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.start(t)
	h.engine.Tick()
	require.Equal(t, 6, h.engine.LiveCount())

	gone := h.engine.projectiles[2].Handle
	h.engine.projectiles[2].Position = physics.Vec3{X: 4.5, Z: -3}
	h.engine.projectiles[2].Direction = physics.Vec3{X: 1}
	removedBefore := h.renderer.removed

	h.engine.updateProjectiles(physics.Vec3{Z: -3})

	assert.Equal(t, 6, h.engine.LiveCount())
	assert.GreaterOrEqual(t, h.renderer.removed, removedBefore+1)
	_, ok := h.renderer.Position(gone)
	assert.False(t, ok, "render entity destroyed")
	for _, p := range h.engine.projectiles {
		assert.NotEqual(t, gone, p.Handle)
	}
}

func TestRemoveProjectile_NoTopUpAboveFloor(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.start(t)
	target := physics.Vec3{Z: -3}
	for i := 0; i < 8; i++ {
		h.engine.projectiles = append(h.engine.projectiles, h.engine.createProjectile(target))
	}

	h.engine.removeProjectile(0, target)
	assert.Equal(t, 7, h.engine.LiveCount())

	h.engine.removeProjectile(0, target)
	assert.Equal(t, 6, h.engine.LiveCount())

	h.engine.removeProjectile(0, target)
	assert.Equal(t, 6, h.engine.LiveCount(), "topped back up to the floor")
}
