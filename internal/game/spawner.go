package game

import "github.com/RealHoonjang/Dodgeball-AR/internal/physics"

// SpawnCountForStage returns the batch size for a stage up to RampStage.
func SpawnCountForStage(stage int, sc SpawnCountConfig) int {
	if stage < 1 {
		stage = 1
	}
	return min(sc.Max, sc.Initial+(stage-1)/2)
}

// createProjectile adds a render entity at a random edge aimed at target.
func (e *Engine) createProjectile(target physics.Vec3) *Projectile {
	spawn := EdgePosition(e.cfg.Spawn, e.rng)
	h := e.renderer.CreateEntity(
		Geometry{Primitive: "plane", Width: e.cfg.Asteroid.Width, Height: e.cfg.Asteroid.Height},
		Material{Src: "asteroid", Transparent: true, Opacity: e.cfg.Asteroid.Opacity},
	)
	e.renderer.SetPosition(h, spawn)
	return NewProjectile(h, spawn, target, e.asteroidSpeed, e.cfg.Asteroid.SpeedVariance, e.rng)
}

// fillToMin spawns projectiles one at a time until the floor is met.
func (e *Engine) fillToMin(target physics.Vec3) {
	for len(e.projectiles) < e.cfg.Asteroid.MinCount {
		e.projectiles = append(e.projectiles, e.createProjectile(target))
	}
}

// startAsteroidSpawner replaces any running batch spawner.
func (e *Engine) startAsteroidSpawner() {
	e.spawnTimer.Stop()
	e.spawnTimer = e.sched.Every(e.cfg.Asteroid.SpawnInterval, e.spawnBatch)
}

// spawnBatch adds up to spawnCount projectiles, each gated by the live cap.
func (e *Engine) spawnBatch() {
	if !e.playing || e.transitioning || e.over {
		return
	}
	target, ok := e.renderer.Position(e.player)
	if !ok {
		return
	}
	added := 0
	for i := 0; i < e.spawnCount; i++ {
		if len(e.projectiles) < e.cfg.Asteroid.MaxCount {
			e.projectiles = append(e.projectiles, e.createProjectile(target))
			added++
		}
	}
	if added > 0 {
		e.log.Debug("batch spawned", "added", added, "live", len(e.projectiles))
	}
}
