// Package config loads process settings from defaults, an optional YAML file,
// the environment and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. DODGE_GAME_STAGE_DURATION.
	EnvPrefix = "DODGE"

	defaultConfigName = "dodge"
)

// SSHConfig holds the SSH server settings.
type SSHConfig struct {
	Host    string `mapstructure:"host"`
	Port    string `mapstructure:"port"`
	HostKey string `mapstructure:"hostKey"`
}

// WebConfig holds the landing page settings.
type WebConfig struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	SSHDisplayHost string `mapstructure:"sshDisplayHost"`
}

// Config is the effective configuration of a process.
type Config struct {
	LogLevel string      `mapstructure:"logLevel"`
	SSH      SSHConfig   `mapstructure:"ssh"`
	Web      WebConfig   `mapstructure:"web"`
	Game     game.Config `mapstructure:"game"`

	settings map[string]any
	file     string
}

// RegisterFlags adds the shared flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP("config", "c", "", "path to a YAML config file")
	fs.String("log-level", "info", "log level (debug, info, warn, error)")
	fs.Int64("seed", 0, "random seed for asteroid spawns (0 seeds from the clock)")
	fs.Bool("print-config", false, "print the effective configuration and exit")
}

// Load builds the configuration. An explicit path must exist; without one, dodge.yaml
// is looked up in the working directory and $HOME/.config/dodge and may be absent.
// fs may be nil.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if fs != nil {
		if err := bindFlags(v, fs); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/dodge")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Game.Validate(); err != nil {
		return nil, err
	}
	cfg.settings = v.AllSettings()
	cfg.file = v.ConfigFileUsed()
	return cfg, nil
}

// File returns the config file that was read, or "" when none was found.
func (c *Config) File() string {
	return c.file
}

// YAML renders the effective settings.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c.settings)
}

func setDefaults(v *viper.Viper) {
	d := game.DefaultConfig()

	v.SetDefault("logLevel", "info")

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.hostKey", "/app/keys/host_key")

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.sshDisplayHost", "your-server.com")

	v.SetDefault("game.asteroid.width", d.Asteroid.Width)
	v.SetDefault("game.asteroid.height", d.Asteroid.Height)
	v.SetDefault("game.asteroid.initialSpeed", d.Asteroid.InitialSpeed)
	v.SetDefault("game.asteroid.speedVariance", d.Asteroid.SpeedVariance)
	v.SetDefault("game.asteroid.minCount", d.Asteroid.MinCount)
	v.SetDefault("game.asteroid.maxCount", d.Asteroid.MaxCount)
	v.SetDefault("game.asteroid.spawnInterval", d.Asteroid.SpawnInterval.String())
	v.SetDefault("game.asteroid.spawnCount.initial", d.Asteroid.SpawnCount.Initial)
	v.SetDefault("game.asteroid.spawnCount.max", d.Asteroid.SpawnCount.Max)
	v.SetDefault("game.asteroid.opacity", d.Asteroid.Opacity)

	v.SetDefault("game.player.width", d.Player.Width)
	v.SetDefault("game.player.height", d.Player.Height)
	v.SetDefault("game.player.opacity", d.Player.Opacity)

	v.SetDefault("game.spawn.minX", d.Spawn.MinX)
	v.SetDefault("game.spawn.maxX", d.Spawn.MaxX)
	v.SetDefault("game.spawn.minY", d.Spawn.MinY)
	v.SetDefault("game.spawn.maxY", d.Spawn.MaxY)
	v.SetDefault("game.spawn.z", d.Spawn.Z)

	v.SetDefault("game.score.movement", d.Score.Movement)
	v.SetDefault("game.score.stageClear", d.Score.StageClear)

	v.SetDefault("game.stage.duration", d.Stage.Duration.String())
	v.SetDefault("game.stage.transition", d.Stage.Transition.String())
	v.SetDefault("game.stage.intro", d.Stage.Intro.String())
	v.SetDefault("game.stage.countdownFrom", d.Stage.CountdownFrom)
	v.SetDefault("game.stage.countdownStep", d.Stage.CountdownStep.String())

	v.SetDefault("game.movementThreshold", d.MovementThreshold)
	v.SetDefault("game.seed", d.Seed)
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"logLevel":  "log-level",
		"game.seed": "seed",
	}
	for key, name := range bindings {
		flag := fs.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}
