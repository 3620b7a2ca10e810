package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/t2048.yaml
var defaultYAML []byte

// Default returns the hardcoded configuration, used when the embedded YAML
// cannot be parsed.
func Default() Config {
	return Config{
		TickRate: 30,
		DBPath:   "~/.t2048/scores.db",
		LogLevel: "info",
		Player:   "local",
		Keys: KeysConfig{
			Up:    []string{"up", "w", "k"},
			Down:  []string{"down", "s", "j"},
			Left:  []string{"left", "a", "h"},
			Right: []string{"right", "d", "l"},
		},
		Theme: map[int]string{
			2:    "white",
			4:    "bright_white",
			8:    "yellow",
			16:   "bright_yellow",
			32:   "orange",
			64:   "red",
			128:  "bright_red",
			256:  "magenta",
			512:  "bright_magenta",
			1024: "cyan",
			2048: "bright_green",
		},
		SSH: SSHConfig{
			Address:     "0.0.0.0:2048",
			HostKey:     "~/.t2048/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
	}
}
