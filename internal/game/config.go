package game

import (
	"fmt"
	"time"
)

// Difficulty ramp and field limits that are not tunable.
const (
	// RampStage is the last stage whose advance raises the batch spawn count.
	// Every advance past it multiplies asteroid speed by SpeedRamp instead.
	RampStage = 10
	SpeedRamp = 1.1

	// Out-of-bounds limits, independent of the spawn region.
	BoundX = 4.0
	BoundY = 4.0
	BoundZ = 5.0

	// Stage timer polling cadence.
	stagePollInterval = time.Second

	// AnonymousName replaces an absent player name on the results hand-off.
	AnonymousName = "Anonymous"
)

// AsteroidConfig tunes projectiles and the spawner.
type AsteroidConfig struct {
	Width         float64          `mapstructure:"width"`
	Height        float64          `mapstructure:"height"`
	InitialSpeed  float64          `mapstructure:"initialSpeed"`  // Scene units per tick
	SpeedVariance float64          `mapstructure:"speedVariance"` // Up to +30% by default
	MinCount      int              `mapstructure:"minCount"`      // Floor kept every tick
	MaxCount      int              `mapstructure:"maxCount"`      // Cap for periodic batches
	SpawnInterval time.Duration    `mapstructure:"spawnInterval"`
	SpawnCount    SpawnCountConfig `mapstructure:"spawnCount"`
	Opacity       float64          `mapstructure:"opacity"`
}

// SpawnCountConfig bounds the per-batch spawn count.
type SpawnCountConfig struct {
	Initial int `mapstructure:"initial"`
	Max     int `mapstructure:"max"`
}

// PlayerConfig describes the player avatar.
type PlayerConfig struct {
	Width   float64 `mapstructure:"width"`
	Height  float64 `mapstructure:"height"`
	Opacity float64 `mapstructure:"opacity"`
}

// SpawnConfig is the rectangle whose edges projectiles spawn on.
type SpawnConfig struct {
	MinX float64 `mapstructure:"minX"`
	MaxX float64 `mapstructure:"maxX"`
	MinY float64 `mapstructure:"minY"`
	MaxY float64 `mapstructure:"maxY"`
	Z    float64 `mapstructure:"z"`
}

// ScoreConfig holds point awards.
type ScoreConfig struct {
	Movement   int `mapstructure:"movement"`
	StageClear int `mapstructure:"stageClear"`
}

// StageConfig holds stage and countdown timing.
type StageConfig struct {
	Duration      time.Duration `mapstructure:"duration"`
	Transition    time.Duration `mapstructure:"transition"`
	Intro         time.Duration `mapstructure:"intro"`
	CountdownFrom int           `mapstructure:"countdownFrom"`
	CountdownStep time.Duration `mapstructure:"countdownStep"`
}

// Config centralizes all tunable game parameters.
type Config struct {
	Asteroid          AsteroidConfig `mapstructure:"asteroid"`
	Player            PlayerConfig   `mapstructure:"player"`
	Spawn             SpawnConfig    `mapstructure:"spawn"`
	Score             ScoreConfig    `mapstructure:"score"`
	Stage             StageConfig    `mapstructure:"stage"`
	MovementThreshold float64        `mapstructure:"movementThreshold"`
	Seed              int64          `mapstructure:"seed"` // 0 seeds from the clock
}

// DefaultConfig returns the stock tuning.
func DefaultConfig() Config {
	return Config{
		Asteroid: AsteroidConfig{
			Width:         0.067,
			Height:        0.067,
			InitialSpeed:  0.005,
			SpeedVariance: 0.3,
			MinCount:      6,
			MaxCount:      20,
			SpawnInterval: time.Second,
			SpawnCount:    SpawnCountConfig{Initial: 1, Max: 3},
			Opacity:       0.9,
		},
		Player: PlayerConfig{
			Width:   0.1,
			Height:  0.1,
			Opacity: 0.9,
		},
		Spawn: SpawnConfig{MinX: -5, MaxX: 5, MinY: -4, MaxY: 4, Z: -3},
		Score: ScoreConfig{Movement: 10, StageClear: 1000},
		Stage: StageConfig{
			Duration:      60 * time.Second,
			Transition:    10 * time.Second,
			Intro:         3 * time.Second,
			CountdownFrom: 3,
			CountdownStep: time.Second,
		},
		MovementThreshold: 0.01,
	}
}

// Validate checks the config for values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Asteroid.MinCount < 0:
		return fmt.Errorf("%w: asteroid.minCount must be >= 0", ErrInvalidConfig)
	case c.Asteroid.MaxCount < c.Asteroid.MinCount:
		return fmt.Errorf("%w: asteroid.maxCount must be >= asteroid.minCount", ErrInvalidConfig)
	case c.Asteroid.SpawnInterval <= 0:
		return fmt.Errorf("%w: asteroid.spawnInterval must be positive", ErrInvalidConfig)
	case c.Asteroid.SpawnCount.Initial < 0 || c.Asteroid.SpawnCount.Max < c.Asteroid.SpawnCount.Initial:
		return fmt.Errorf("%w: asteroid.spawnCount needs 0 <= initial <= max", ErrInvalidConfig)
	case c.Asteroid.InitialSpeed < 0 || c.Asteroid.SpeedVariance < 0:
		return fmt.Errorf("%w: asteroid speed and variance must be >= 0", ErrInvalidConfig)
	case c.Spawn.MinX > c.Spawn.MaxX || c.Spawn.MinY > c.Spawn.MaxY:
		return fmt.Errorf("%w: spawn region min must not exceed max", ErrInvalidConfig)
	case c.Stage.Duration <= 0 || c.Stage.Transition < 0 || c.Stage.Intro < 0:
		return fmt.Errorf("%w: stage durations must be positive", ErrInvalidConfig)
	case c.Stage.CountdownFrom < 1 || c.Stage.CountdownStep <= 0:
		return fmt.Errorf("%w: countdown needs at least one positive step", ErrInvalidConfig)
	case c.Score.Movement < 0 || c.Score.StageClear < 0:
		return fmt.Errorf("%w: scores must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// CollisionThreshold is the XY distance under which a projectile hits the player.
func (c Config) CollisionThreshold() float64 {
	return (c.Player.Width + c.Asteroid.Width) / 3
}
