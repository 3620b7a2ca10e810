// Package config provides YAML-based configuration loading for the 2048
// player, SSH server and HTTP side-car.
package config

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Config is the full application configuration.
type Config struct {
	TickRate int            `yaml:"tick_rate"` // Animation ticks per second
	DBPath   string         `yaml:"db_path"`
	LogLevel string         `yaml:"log_level"`
	Player   string         `yaml:"player"` // Name recorded for local games
	Keys     KeysConfig     `yaml:"keys"`
	Theme    map[int]string `yaml:"theme"` // Tile value -> color name
	SSH      SSHConfig      `yaml:"ssh"`
	HTTP     HTTPConfig     `yaml:"http"`
}

// KeysConfig lists the key names bound to each move direction.
// Names follow Bubble Tea's key strings ("up", "w", "ctrl+p").
type KeysConfig struct {
	Up    []string `yaml:"up"`
	Down  []string `yaml:"down"`
	Left  []string `yaml:"left"`
	Right []string `yaml:"right"`
}

// SSHConfig configures the Wish server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// HTTPConfig configures the HTTP side-car. An empty address disables it.
type HTTPConfig struct {
	Address string `yaml:"address"`
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	var errs []error

	if c.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.TickRate))
	}

	for _, k := range []struct {
		name string
		keys []string
	}{
		{"up", c.Keys.Up},
		{"down", c.Keys.Down},
		{"left", c.Keys.Left},
		{"right", c.Keys.Right},
	} {
		if len(k.keys) == 0 {
			errs = append(errs, fmt.Errorf("keys.%s must list at least one key", k.name))
		}
	}

	for _, value := range c.ThemeValues() {
		name := c.Theme[value]
		if _, ok := core.ParseColor(name); !ok {
			errs = append(errs, fmt.Errorf("theme.%d: unknown color %q", value, name))
		}
	}

	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("ssh.idle_timeout must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ThemeColors resolves the theme into palette colors.
// Unknown names are skipped; Validate reports them.
func (c Config) ThemeColors() map[int]core.Color {
	out := make(map[int]core.Color, len(c.Theme))
	for value, name := range c.Theme {
		if color, ok := core.ParseColor(name); ok {
			out[value] = color
		}
	}
	return out
}

// ThemeValues returns the themed tile values in ascending order.
func (c Config) ThemeValues() []int {
	values := make([]int, 0, len(c.Theme))
	for v := range c.Theme {
		values = append(values, v)
	}
	sort.Ints(values)
	return values
}

// Runtime converts the config into the settings passed to a game session.
func (c Config) Runtime(seed uint64) core.RuntimeConfig {
	rc := core.DefaultConfig()
	rc.TickRate = c.TickRate
	rc.Seed = seed
	return rc
}
