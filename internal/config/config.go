// Package config loads the daemon configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the daemon configuration.
type Config struct {
	ListenAddr string `toml:"listen_addr"`
	DBPath     string `toml:"db_path"`
	StaticDir  string `toml:"static_dir"`
	HookDir    string `toml:"hook_dir"`
	// TickHz is the update rate of the grab simulation loop.
	TickHz int `toml:"tick_hz"`
	// GrabThreshold and ReleaseThreshold are the flex hysteresis band. A
	// grab starts when flex rises past GrabThreshold and ends when it
	// falls below ReleaseThreshold.
	GrabThreshold    float64 `toml:"grab_threshold"`
	ReleaseThreshold float64 `toml:"release_threshold"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ListenAddr:       "127.0.0.1:8990",
		TickHz:           60,
		GrabThreshold:    0.55,
		ReleaseThreshold: 0.35,
	}
}

// Load reads the configuration file at path, filling unset fields with
// defaults. A missing file is not an error; the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration invariants.
func (c Config) Validate() error {
	if c.TickHz <= 0 {
		return fmt.Errorf("tick_hz must be positive, got %d", c.TickHz)
	}
	if c.GrabThreshold <= 0 || c.GrabThreshold > 1 {
		return fmt.Errorf("grab_threshold must be in (0, 1], got %v", c.GrabThreshold)
	}
	if c.ReleaseThreshold < 0 {
		return fmt.Errorf("release_threshold must not be negative, got %v", c.ReleaseThreshold)
	}
	if c.ReleaseThreshold > c.GrabThreshold {
		return fmt.Errorf("release_threshold %v must not exceed grab_threshold %v", c.ReleaseThreshold, c.GrabThreshold)
	}
	return nil
}
