package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// RelPath is the config file location relative to the XDG config dirs.
const RelPath = "rapla2csv/config.yaml"

// Config holds the settings that can also be given on the command line.
type Config struct {
	Output     string      `yaml:"output"`
	Format     string      `yaml:"format"`
	RoomPrefix string      `yaml:"room_prefix"`
	Timezone   string      `yaml:"timezone"`
	Fetch      FetchConfig `yaml:"fetch"`
}

type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	Delay     time.Duration `yaml:"delay"`
	UserAgent string        `yaml:"user_agent"`
	Cache     bool          `yaml:"cache"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Output:     "rapla.csv",
		Format:     "csv",
		RoomPrefix: "RB",
		Timezone:   "Europe/Berlin",
		Fetch: FetchConfig{
			Timeout:   30 * time.Second,
			Delay:     0,
			UserAgent: "rapla2csv",
			Cache:     false,
		},
	}
}

// Load reads a YAML config file at path and merges it with defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDefault loads the first config file found in the XDG config dirs, or
// the defaults if there is none.
func LoadDefault() (*Config, error) {
	path, err := xdg.SearchConfigFile(RelPath)
	if err != nil {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Location returns the time zone lessons take place in.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// CacheDir is where fetched week views are cached.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, "rapla2csv", "pages")
}
