package game

import (
	"fmt"
	"math"

	"github.com/RealHoonjang/Dodgeball-AR/internal/physics"
)

// ScoreText formats the score for display.
func ScoreText(score int) string {
	return fmt.Sprintf("Score: %d", score)
}

// addScore is the only path that changes the score.
func (e *Engine) addScore(points int) {
	if points <= 0 {
		return
	}
	e.score += points
	e.ui.SetScoreText(ScoreText(e.score))
}

// checkPlayerMovement awards the movement bonus at most once per call when either axis
// moved past the threshold. The sampled position always becomes the new baseline.
func (e *Engine) checkPlayerMovement(pos physics.Vec3) int {
	dx := pos.X - e.lastPlayerPos.X
	dy := pos.Y - e.lastPlayerPos.Y
	e.lastPlayerPos = pos

	if math.Abs(dx) > e.cfg.MovementThreshold || math.Abs(dy) > e.cfg.MovementThreshold {
		e.addScore(e.cfg.Score.Movement)
		return e.cfg.Score.Movement
	}
	return 0
}
