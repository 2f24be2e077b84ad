package game

import (
	"math/rand"

	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

// Projectile is an asteroid flying in a straight line.
// Its direction is fixed at spawn time and never re-aimed.
type Projectile struct {
	Handle    Handle
	Position  physics.Vec3
	Direction physics.Vec3 // Unit length, or zero when spawned on top of the target
	Speed     float64      // Scene units per tick
}

// NewProjectile creates a projectile at spawn aimed at target.
// Speed is baseSpeed raised by a random fraction of variance.
func NewProjectile(h Handle, spawn, target physics.Vec3, baseSpeed, variance float64, rng *rand.Rand) *Projectile {
	return &Projectile{
		Handle:    h,
		Position:  spawn,
		Direction: target.Sub(spawn).Normalize(),
		Speed:     baseSpeed * (1 + rng.Float64()*variance),
	}
}

// Advance moves the projectile one tick along its direction.
func (p *Projectile) Advance() {
	p.Position = p.Position.Add(p.Direction.Scale(p.Speed))
}

// Edge identifies a side of the spawn region.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// EdgePosition picks a uniformly random side of the spawn region and a uniform point
// along it. The perpendicular coordinate sits on the boundary and Z is fixed.
func EdgePosition(sc SpawnConfig, rng *rand.Rand) physics.Vec3 {
	return edgePoint(sc, Edge(rng.Intn(4)), rng.Float64())
}

// edgePoint maps an edge and a fraction t in [0,1) to a spawn position.
func edgePoint(sc SpawnConfig, edge Edge, t float64) physics.Vec3 {
	pos := physics.Vec3{Z: sc.Z}
	switch edge {
	case EdgeTop:
		pos.X = sc.MinX + t*(sc.MaxX-sc.MinX)
		pos.Y = sc.MaxY
	case EdgeRight:
		pos.X = sc.MaxX
		pos.Y = sc.MinY + t*(sc.MaxY-sc.MinY)
	case EdgeBottom:
		pos.X = sc.MinX + t*(sc.MaxX-sc.MinX)
		pos.Y = sc.MinY
	case EdgeLeft:
		pos.X = sc.MinX
		pos.Y = sc.MinY + t*(sc.MaxY-sc.MinY)
	}
	return pos
}
