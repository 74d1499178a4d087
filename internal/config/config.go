package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full server configuration, loaded from YAML with environment
// overrides (KNIGHT_SERVER_ADDRESS, KNIGHT_DATABASE_URL, ...).
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Replay   ReplayConfig   `mapstructure:"replay"`
	Content  ContentConfig  `mapstructure:"content"`
}

// ServerConfig covers the websocket gateway and session lifecycle.
type ServerConfig struct {
	Address     string        `mapstructure:"address"`
	LeasePeriod time.Duration `mapstructure:"lease_period"`
	MaxSessions int           `mapstructure:"max_sessions"`
	Debug       bool          `mapstructure:"debug"`
}

// DatabaseConfig configures the pgx pool. An empty URL disables persistence;
// games then live only in memory.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// AuthConfig configures account handling.
type AuthConfig struct {
	BcryptCost int           `mapstructure:"bcrypt_cost"`
	TokenTTL   time.Duration `mapstructure:"token_ttl"`
}

// LoggingConfig selects the zap preset.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ReplayConfig controls on-disk replay recording.
type ReplayConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Directory string `mapstructure:"directory"`
}

// ContentConfig lists extra content set files loaded on top of the built-in
// base set.
type ContentConfig struct {
	Sets []string `mapstructure:"sets"`
}

// Load reads configuration from the given file. A missing file is not an
// error: defaults plus environment variables apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("KNIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			// Only a parse failure is fatal; a missing file falls back to
			// defaults and environment.
			if !isNotExist(err) {
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
	v.SetDefault("server.lease_period", 5*time.Minute)
	v.SetDefault("server.max_sessions", 1000)
	v.SetDefault("server.debug", false)

	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 8)

	v.SetDefault("auth.bcrypt_cost", 10)
	v.SetDefault("auth.token_ttl", 30*time.Minute)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("replay.enabled", true)
	v.SetDefault("replay.directory", "replays")
}

func (c *Config) validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server.address must not be empty")
	}
	if c.Server.LeasePeriod <= 0 {
		return fmt.Errorf("server.lease_period must be positive, got %s", c.Server.LeasePeriod)
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost out of range: %d", c.Auth.BcryptCost)
	}
	if c.Replay.Enabled && c.Replay.Directory == "" {
		return fmt.Errorf("replay.directory must be set when replay.enabled is true")
	}
	return nil
}

func isNotExist(err error) bool {
	if errors.Is(err, fs.ErrNotExist) {
		return true
	}
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}
