package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Default bounds accepted for a year guess. Events after MaxYear are not in
// the catalog, so later guesses are rejected before reaching the game.
const (
	DefaultGuessMinYear = 0
	DefaultGuessMaxYear = 2023
)

// Config holds the bot configuration loaded from the environment
type Config struct {
	// Discord settings
	DiscordToken  string `envconfig:"DISCORD_TOKEN"`
	ApplicationID string `envconfig:"APPLICATION_ID"`
	GuildID       string `envconfig:"GUILD_ID"`

	// Redis settings
	RedisURL      string `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisPoolSize int    `envconfig:"REDIS_POOL_SIZE" default:"10"`

	// ResourcesDir is the root that event media paths are resolved against
	ResourcesDir string `envconfig:"RESOURCES_DIR" default:"res"`

	// Logging
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// MetricsAddr is where /metrics and /healthz are served, empty disables the listener
	MetricsAddr string `envconfig:"METRICS_ADDR" default:":9090"`

	// PlayerPersistence is write_back or write_through
	PlayerPersistence string `envconfig:"PLAYER_PERSISTENCE" default:"write_back"`

	// Accepted guess range, inclusive
	GuessMinYear int `envconfig:"GUESS_MIN_YEAR" default:"0"`
	GuessMaxYear int `envconfig:"GUESS_MAX_YEAR" default:"2023"`

	// ShutdownTimeout bounds the final player flush
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Load reads an optional .env file and then the process environment
func Load() (*Config, error) {
	// A missing .env file is fine, real deployments set the environment directly
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings shared by every command
func (c *Config) Validate() error {
	if c.RedisURL == "" {
		return errors.New("REDIS_URL cannot be empty")
	}

	if c.GuessMinYear > c.GuessMaxYear {
		return fmt.Errorf("GUESS_MIN_YEAR (%d) is greater than GUESS_MAX_YEAR (%d)", c.GuessMinYear, c.GuessMaxYear)
	}

	switch c.PlayerPersistence {
	case "write_back", "write_through":
	default:
		return fmt.Errorf("PLAYER_PERSISTENCE must be write_back or write_through, got %q", c.PlayerPersistence)
	}

	return nil
}

// ValidateBot checks settings needed to connect to Discord
func (c *Config) ValidateBot() error {
	if c.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN environment variable is required")
	}
	return nil
}
