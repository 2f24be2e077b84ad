package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RealHoonjang/Dodgeball-AR/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dodge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_DefaultValues(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "::", cfg.SSH.Host)
	assert.Equal(t, "2222", cfg.SSH.Port)
	assert.Equal(t, "/app/keys/host_key", cfg.SSH.HostKey)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, "8080", cfg.Web.Port)
	assert.Equal(t, "your-server.com", cfg.Web.SSHDisplayHost)
	assert.Equal(t, game.DefaultConfig(), cfg.Game)
	assert.Empty(t, cfg.File())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	path := writeConfig(t, `
logLevel: debug
ssh:
  port: "2323"
game:
  asteroid:
    maxCount: 12
    spawnInterval: 500ms
    spawnCount:
      max: 4
  stage:
    duration: 30s
  score:
    stageClear: 250
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "2323", cfg.SSH.Port)
	assert.Equal(t, 12, cfg.Game.Asteroid.MaxCount)
	assert.Equal(t, 500*time.Millisecond, cfg.Game.Asteroid.SpawnInterval)
	assert.Equal(t, 4, cfg.Game.Asteroid.SpawnCount.Max)
	assert.Equal(t, 1, cfg.Game.Asteroid.SpawnCount.Initial)
	assert.Equal(t, 30*time.Second, cfg.Game.Stage.Duration)
	assert.Equal(t, 250, cfg.Game.Score.StageClear)
	assert.Equal(t, 10*time.Second, cfg.Game.Stage.Transition, "untouched keys keep defaults")
	assert.Equal(t, path, cfg.File())
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load("/nonexistent/dodge.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidGameConfig(t *testing.T) {
	path := writeConfig(t, `
game:
  asteroid:
    minCount: 30
`)
	_, err := Load(path, nil)
	assert.ErrorIs(t, err, game.ErrInvalidConfig)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("SSH_PORT", "2200")
	t.Setenv("WEB_HOST", "127.0.0.1")
	t.Setenv("DODGE_WEB_HOST", "10.0.0.1")
	t.Setenv("DODGE_GAME_STAGE_DURATION", "45s")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "2200", cfg.SSH.Port)
	assert.Equal(t, "10.0.0.1", cfg.Web.Host, "prefixed name wins")
	assert.Equal(t, 45*time.Second, cfg.Game.Stage.Duration)
}

func TestLoad_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `
logLevel: warn
game:
  seed: 5
`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--seed", "42"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Game.Seed)
}

func TestLoad_UnsetFlagsKeepFileValues(t *testing.T) {
	path := writeConfig(t, `logLevel: warn`)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestConfig_YAML(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("", nil)
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "loglevel: info")
	assert.Contains(t, string(out), "duration: 1m0s")
	assert.Contains(t, string(out), "port: \"2222\"")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
