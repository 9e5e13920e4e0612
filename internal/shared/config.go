package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Membership variants for the Playlist↔Song relation. Exactly one is active
// per deployment; the schema carries both edges but the store reads one.
const (
	MembershipOwned  = "owned"
	MembershipShared = "shared"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database DatabaseConfig `toml:"database"`
	Server   ServerConfig   `toml:"server"`
	Catalog  CatalogConfig  `toml:"catalog"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string  `toml:"host"`
	Port      int     `toml:"port"`
	RateLimit float64 `toml:"rate_limit"` // requests per second, 0 disables limiting
	RateBurst int     `toml:"rate_burst"`
}

// CatalogConfig contains catalog and dispatch endpoint settings.
type CatalogConfig struct {
	Namespace  string     `toml:"namespace"`
	Membership string     `toml:"membership"`
	Seed       SeedConfig `toml:"seed"`
}

// SeedConfig controls the size of generated seed data.
type SeedConfig struct {
	Users            int `toml:"users"`
	Songs            int `toml:"songs"`
	Playlists        int `toml:"playlists"`
	SongsPerPlaylist int `toml:"songs_per_playlist"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks the membership variant and namespace, which the store and
// dispatch layer depend on at startup.
func (c *Config) Validate() error {
	switch c.Catalog.Membership {
	case MembershipOwned, MembershipShared:
	default:
		return fmt.Errorf("%w: catalog.membership must be %q or %q, got %q",
			ErrInvalidConfig, MembershipOwned, MembershipShared, c.Catalog.Membership)
	}
	if c.Catalog.Namespace == "" {
		return fmt.Errorf("%w: catalog.namespace must not be empty", ErrInvalidConfig)
	}
	return nil
}
