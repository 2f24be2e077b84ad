package game

import (
	"math"

	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

// IsOutOfBounds reports whether pos has left the play field.
func IsOutOfBounds(pos physics.Vec3) bool {
	return math.Abs(pos.X) > BoundX ||
		math.Abs(pos.Y) > BoundY ||
		math.Abs(pos.Z) > BoundZ
}

// Collides reports whether a projectile at pos hits a player at player.
// Only the XY plane is considered.
func Collides(player, pos physics.Vec3, threshold float64) bool {
	return physics.DistanceXY(player, pos) < threshold
}

// updateProjectiles advances every projectile, in reverse so removals are safe.
// Projectiles appended by top-up during the pass are first moved next tick.
func (e *Engine) updateProjectiles(player physics.Vec3) {
	for i := len(e.projectiles) - 1; i >= 0; i-- {
		p := e.projectiles[i]
		p.Advance()
		e.renderer.SetPosition(p.Handle, p.Position)

		if IsOutOfBounds(p.Position) {
			e.removeProjectile(i, player)
			continue
		}

		if e.checkCollision(player, p.Position) {
			e.gameOver()
			return
		}
	}
}

// checkCollision is suppressed until the game has started and the countdown is over.
func (e *Engine) checkCollision(player, pos physics.Vec3) bool {
	if !e.started || e.counting {
		return false
	}
	return Collides(player, pos, e.cfg.CollisionThreshold())
}

// removeProjectile destroys the projectile at i and tops the field back up by one.
func (e *Engine) removeProjectile(i int, target physics.Vec3) {
	e.renderer.RemoveEntity(e.projectiles[i].Handle)
	e.projectiles = append(e.projectiles[:i], e.projectiles[i+1:]...)

	if len(e.projectiles) < e.cfg.Asteroid.MinCount {
		e.projectiles = append(e.projectiles, e.createProjectile(target))
	}
}

// clearProjectiles destroys every live projectile.
func (e *Engine) clearProjectiles() {
	for _, p := range e.projectiles {
		e.renderer.RemoveEntity(p.Handle)
	}
	clear(e.projectiles)
	e.projectiles = e.projectiles[:0]
}
