// Package config loads server configuration from YAML with sane defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/frontlinegame/frontline-server-go/internal/game"
)

// Config is the root configuration for the server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig holds the HTTP/websocket listener settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	CatalogPath     string        `mapstructure:"catalog_path"`
	DecksPath       string        `mapstructure:"decks_path"`
}

// GameConfig holds the tunable rules constants.
type GameConfig struct {
	MaxCredits       int `mapstructure:"max_credits"`
	StartingCredits  int `mapstructure:"starting_credits"`
	CreditsPerTurn   int `mapstructure:"credits_per_turn"`
	MaxHandSize      int `mapstructure:"max_hand_size"`
	StartingHandSize int `mapstructure:"starting_hand_size"`
	BattlefieldSlots int `mapstructure:"battlefield_slots"`
	MaxTurns         int `mapstructure:"max_turns"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// DatabaseConfig holds the optional result-store settings. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// Load reads configuration from the given path. A missing file is not an
// error: defaults apply, overridable via FRONTLINE_-prefixed environment
// variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FRONTLINE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.catalog_path", "config/catalog.yaml")
	v.SetDefault("server.decks_path", "config/decks.yaml")

	defaults := game.DefaultSettings()
	v.SetDefault("game.max_credits", defaults.MaxCredits)
	v.SetDefault("game.starting_credits", defaults.StartingCredits)
	v.SetDefault("game.credits_per_turn", defaults.CreditsPerTurn)
	v.SetDefault("game.max_hand_size", defaults.MaxHandSize)
	v.SetDefault("game.starting_hand_size", defaults.StartingHandSize)
	v.SetDefault("game.battlefield_slots", defaults.BattlefieldSlots)
	v.SetDefault("game.max_turns", defaults.MaxTurns)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)
}

func (c *Config) validate() error {
	g := c.Game
	if g.MaxCredits < 1 || g.MaxHandSize < 1 || g.BattlefieldSlots < 1 || g.MaxTurns < 1 {
		return fmt.Errorf("game config: limits must be positive")
	}
	if g.StartingHandSize > g.MaxHandSize {
		return fmt.Errorf("game config: starting hand size %d exceeds max hand size %d",
			g.StartingHandSize, g.MaxHandSize)
	}
	if g.StartingCredits > g.MaxCredits {
		return fmt.Errorf("game config: starting credits %d exceed max credits %d",
			g.StartingCredits, g.MaxCredits)
	}
	return nil
}

// Settings maps the game section onto the rules constants.
func (c *Config) Settings() game.Settings {
	return game.Settings{
		MaxCredits:       c.Game.MaxCredits,
		StartingCredits:  c.Game.StartingCredits,
		CreditsPerTurn:   c.Game.CreditsPerTurn,
		MaxHandSize:      c.Game.MaxHandSize,
		StartingHandSize: c.Game.StartingHandSize,
		BattlefieldSlots: c.Game.BattlefieldSlots,
		MaxTurns:         c.Game.MaxTurns,
	}
}
