package launch

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds configuration for the game-client launch supervisor.
type Config struct {
	// Path is the location of the game-client executable. A leading "~" is
	// expanded to the user's home directory.
	Path string `mapstructure:"path" default:"~/AppData/Local/Programs/Arizona Games Launcher/bin/arizona/ArizonaLauncher6_byAIR.exe"`
	// ProcessMatch is the identifying substring used to find conflicting
	// instances in the process table (matched case-insensitively).
	ProcessMatch string `mapstructure:"process_match" default:"arizonalauncher"`
	// DefaultIP is the canonical server joined when no override is supplied.
	DefaultIP string `mapstructure:"default_ip" default:"payson.arizona-rp.com"`
	// DefaultPort is the canonical server port.
	DefaultPort int `mapstructure:"default_port" default:"7777"`
	// MemoryMB is the fixed memory budget passed to the client.
	MemoryMB int `mapstructure:"memory_mb" default:"4096"`
	// SettleDelay is how long to wait after killing conflicting instances
	// before spawning, so the new instance does not race a dying one for
	// shared resources (network port, save files).
	SettleDelay time.Duration `mapstructure:"settle_delay" default:"1s"`
	// LivenessDelay is how long to wait after spawning before checking
	// whether the client already exited.
	LivenessDelay time.Duration `mapstructure:"liveness_delay" default:"2s"`
}

// ExpandPaths resolves the "~" prefix in the executable path.
func (c *Config) ExpandPaths() {
	c.Path = expandHome(c.Path)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
