package adventure

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything tunable about a game session. It is loaded from
// YAML; durations are written as strings such as "2.1s" or "250ms".
type Config struct {
	Title    string `yaml:"title"`
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	ShowFPS  bool   `yaml:"show_fps"`
	Debug    bool   `yaml:"debug"`
	LogLevel string `yaml:"log_level"`

	// Seed seeds the random source handed to script units. Zero picks a
	// seed from the clock.
	Seed uint64 `yaml:"seed"`

	// ScreenshotDir is where captured frames are written.
	ScreenshotDir string `yaml:"screenshot_dir"`

	Assets   AssetConfig    `yaml:"assets"`
	Gameplay GameplayConfig `yaml:"gameplay"`
}

// AssetConfig names the files world setup reads. Paths are relative to the
// asset filesystem root.
type AssetConfig struct {
	Dir           string `yaml:"dir"`
	Map           string `yaml:"map"`
	PlayerSheet   string `yaml:"player_sheet"`
	BombSheet     string `yaml:"bomb_sheet"`
	BombClip      string `yaml:"bomb_clip"`
	PickupImage   string `yaml:"pickup_image"`
	GameOverImage string `yaml:"game_over_image"`
	ScriptsDir    string `yaml:"scripts_dir"`
}

// GameplayConfig holds the interaction tuning.
type GameplayConfig struct {
	StartX int `yaml:"start_x"`
	StartY int `yaml:"start_y"`

	// PlayerSpeed is in pixels per second.
	PlayerSpeed float64 `yaml:"player_speed"`

	PickupRadius int `yaml:"pickup_radius"`
	LethalRadius int `yaml:"lethal_radius"`
	AttackReach  int `yaml:"attack_reach"`

	EffectLifetime   time.Duration `yaml:"effect_lifetime"`
	Invulnerability  time.Duration `yaml:"invulnerability"`
	BombCooldown     time.Duration `yaml:"bomb_cooldown"`
	GameOverCooldown time.Duration `yaml:"game_over_cooldown"`

	// ExitAfterGameOver ends the program once GameOverCooldown has elapsed
	// on the GameOver screen.
	ExitAfterGameOver bool `yaml:"exit_after_game_over"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Title:         "The Adventure",
		Width:         1280,
		Height:        720,
		LogLevel:      "info",
		ScreenshotDir: "screenshots",
		Assets: AssetConfig{
			Dir:           "Assets",
			Map:           "terrain.tmj",
			PlayerSheet:   "Player.json",
			BombSheet:     "BombExploding.json",
			BombClip:      "Explode",
			PickupImage:   "god_mode.png",
			GameOverImage: "game_over.png",
			ScriptsDir:    "Scripts",
		},
		Gameplay: GameplayConfig{
			StartX:           100,
			StartY:           100,
			PlayerSpeed:      DefaultPlayerSpeed * 1000,
			PickupRadius:     DefaultPickupRadius,
			LethalRadius:     DefaultLethalRadius,
			AttackReach:      DefaultAttackReach,
			EffectLifetime:   2100 * time.Millisecond,
			Invulnerability:  5 * time.Second,
			BombCooldown:     250 * time.Millisecond,
			GameOverCooldown: 30 * time.Second,
		},
	}
}

// ParseConfig decodes YAML over the defaults, so omitted keys keep their
// default values.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("adventure: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file. A missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("adventure: read config %s: %w", path, err)
	}
	return ParseConfig(bytes.NewReader(data))
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the config for values the game cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Width, c.Height))
	}
	g := c.Gameplay
	if g.PlayerSpeed <= 0 {
		errs = append(errs, fmt.Errorf("player_speed %v must be positive", g.PlayerSpeed))
	}
	if g.LethalRadius < 0 || g.PickupRadius < 0 || g.AttackReach < 0 {
		errs = append(errs, errors.New("radii and reach must not be negative"))
	}
	if g.LethalRadius >= g.PickupRadius {
		errs = append(errs, fmt.Errorf("lethal_radius %d must be smaller than pickup_radius %d", g.LethalRadius, g.PickupRadius))
	}
	if g.EffectLifetime <= 0 {
		errs = append(errs, fmt.Errorf("effect_lifetime %v must be positive", g.EffectLifetime))
	}
	if g.Invulnerability < 0 || g.BombCooldown < 0 || g.GameOverCooldown < 0 {
		errs = append(errs, errors.New("durations must not be negative"))
	}
	if c.Assets.Map == "" || c.Assets.PlayerSheet == "" || c.Assets.BombSheet == "" {
		errs = append(errs, errors.New("map, player_sheet and bomb_sheet are required"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("adventure: invalid config: %w", err)
	}
	return nil
}
