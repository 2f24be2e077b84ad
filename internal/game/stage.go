package game

import (
	"fmt"
	"math"
	"time"
)

// StageText formats the stage number for display.
func StageText(stage int) string {
	return fmt.Sprintf("Stage: %d", stage)
}

// TimerText formats the whole seconds left in a stage.
func TimerText(remaining int) string {
	return fmt.Sprintf("Time: %ds", remaining)
}

// remainingSeconds rounds the time left in the current stage up to whole seconds.
func (e *Engine) remainingSeconds() int {
	elapsed := e.sched.Now().Sub(e.stageStart)
	left := (e.cfg.Stage.Duration - elapsed).Seconds()
	return max(0, int(math.Ceil(left)))
}

func (e *Engine) updateTimer() {
	e.ui.SetTimerText(TimerText(e.remainingSeconds()))
}

// startStageTimer restarts the stage clock and replaces any running poll.
// The deadline is checked once per poll, so a stage ends up to one interval late.
func (e *Engine) startStageTimer() {
	e.stageStart = e.sched.Now()
	e.updateTimer()

	e.stageTimer.Stop()
	e.stageTimer = e.sched.Every(stagePollInterval, e.pollStage)
}

func (e *Engine) pollStage() {
	if e.transitioning || e.over {
		return
	}
	e.updateTimer()
	if e.sched.Now().Sub(e.stageStart) >= e.cfg.Stage.Duration {
		e.stageComplete()
	}
}

// stageComplete awards the clear bonus, wipes the field and schedules the next stage.
func (e *Engine) stageComplete() {
	e.transitioning = true
	e.stageTimer.Stop()

	e.addScore(e.cfg.Score.StageClear)
	e.ui.ShowMessage(fmt.Sprintf("Stage %d clear! (bonus +%d)\nNext stage starts in %d seconds.",
		e.stage, e.cfg.Score.StageClear, int(e.cfg.Stage.Transition/time.Second)))

	e.clearProjectiles()
	e.log.Info("stage cleared", "stage", e.stage, "score", e.score)

	e.transitionTimer.Stop()
	e.transitionTimer = e.sched.AfterFunc(e.cfg.Stage.Transition, func() {
		e.ui.HideMessage()
		e.startNextStage()
	})
}

// startNextStage advances the stage, awards the bonus again and ramps difficulty.
// The second bonus on top of stageComplete's is intentional: both fire every stage.
func (e *Engine) startNextStage() {
	e.transitioning = true
	e.stage++

	e.addScore(e.cfg.Score.StageClear)
	e.ui.SetStageText(StageText(e.stage))
	e.applyDifficulty()

	e.ui.ShowMessage(fmt.Sprintf("Stage %d start!", e.stage))
	e.log.Info("stage started", "stage", e.stage, "spawnCount", e.spawnCount, "speed", e.asteroidSpeed)

	e.transitionTimer.Stop()
	e.transitionTimer = e.sched.AfterFunc(e.cfg.Stage.Intro, func() {
		e.ui.HideMessage()
		e.transitioning = false
		e.startStageTimer()
	})
}

// applyDifficulty ramps batch size up to RampStage, then speed.
func (e *Engine) applyDifficulty() {
	if e.stage <= RampStage {
		e.spawnCount = SpawnCountForStage(e.stage, e.cfg.Asteroid.SpawnCount)
		return
	}
	e.asteroidSpeed *= SpeedRamp
}
