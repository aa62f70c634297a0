package adventure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 2100*time.Millisecond, cfg.Gameplay.EffectLifetime)
	assert.Equal(t, 16, cfg.Gameplay.PickupRadius)
	assert.Equal(t, 8, cfg.Gameplay.LethalRadius)
	assert.False(t, cfg.Gameplay.ExitAfterGameOver)
}

func TestParseConfig_Overrides(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(`
width: 640
seed: 42
assets:
  map: level2.tmj
gameplay:
  effect_lifetime: 3s
  bomb_cooldown: 100ms
  exit_after_game_over: true
`))
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 720, cfg.Height, "omitted keys keep their defaults")
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, "level2.tmj", cfg.Assets.Map)
	assert.Equal(t, "Player.json", cfg.Assets.PlayerSheet)
	assert.Equal(t, 3*time.Second, cfg.Gameplay.EffectLifetime)
	assert.Equal(t, 100*time.Millisecond, cfg.Gameplay.BombCooldown)
	assert.True(t, cfg.Gameplay.ExitAfterGameOver)
}

func TestParseConfig_Empty(t *testing.T) {
	cfg, err := ParseConfig(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestParseConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown field", "widht: 640\n"},
		{"malformed", "width: [\n"},
		{"bad duration", "gameplay:\n  effect_lifetime: soon\n"},
		{"invalid value", "width: 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero height", func(c *Config) { c.Height = 0 }},
		{"zero speed", func(c *Config) { c.Gameplay.PlayerSpeed = 0 }},
		{"negative reach", func(c *Config) { c.Gameplay.AttackReach = -1 }},
		{"lethal not inside pickup", func(c *Config) { c.Gameplay.LethalRadius = 16 }},
		{"zero lifetime", func(c *Config) { c.Gameplay.EffectLifetime = 0 }},
		{"negative cooldown", func(c *Config) { c.Gameplay.BombCooldown = -time.Second }},
		{"no map", func(c *Config) { c.Assets.Map = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg, "a missing file yields the defaults")

	path := filepath.Join(dir, "adventure.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Test\n"), 0o644))
	cfg, err = LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Test", cfg.Title)
}

func TestConfigMarshalRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 9
	cfg.Gameplay.GameOverCooldown = 5 * time.Second

	data, err := cfg.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "game_over_cooldown: 5s")

	got, err := ParseConfig(strings.NewReader(string(data)))
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
