// Package config parses the server's command-line flags into its
// recognized deployment options, all with documented defaults.
package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/lab1702/rtype-server/internal/domain"
)

// Config holds every recognized server option.
type Config struct {
	ScreenWidth      int
	ScreenHeight     int
	TickRate         int
	PlayerTimeoutMs  int
	BossSpawnWave    int
	GameSpeedPercent int

	UDPPort       string
	SpectatorPort string
}

// Parse reads flags from args (typically os.Args[1:]) into a Config,
// applying documented defaults for anything not overridden.
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("rtype-server", flag.ContinueOnError)

	cfg := Config{}
	fs.IntVar(&cfg.ScreenWidth, "screen-width", domain.ScreenWidth, "game-space width")
	fs.IntVar(&cfg.ScreenHeight, "screen-height", domain.ScreenHeight, "game-space height")
	fs.IntVar(&cfg.TickRate, "tick-rate", 60, "simulation ticks per second")
	fs.IntVar(&cfg.PlayerTimeoutMs, "player-timeout-ms", 30000, "inactivity budget before a player is evicted")
	fs.IntVar(&cfg.BossSpawnWave, "boss-spawn-wave", 10, "wave number the boss first appears on")
	fs.IntVar(&cfg.GameSpeedPercent, "game-speed-percent", 100, "per-room simulation speed, 50..200")
	fs.StringVar(&cfg.UDPPort, "port", "4242", "UDP port for the gameplay protocol")
	fs.StringVar(&cfg.SpectatorPort, "spectator-port", "8080", "HTTP/WebSocket port for the spectator feed")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.ScreenWidth != domain.ScreenWidth || c.ScreenHeight != domain.ScreenHeight {
		return fmt.Errorf("config: screen dimensions are fixed at %dx%d in this build", domain.ScreenWidth, domain.ScreenHeight)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("config: tick-rate must be positive, got %d", c.TickRate)
	}
	if c.GameSpeedPercent < 50 || c.GameSpeedPercent > 200 {
		return fmt.Errorf("config: game-speed-percent must be in [50,200], got %d", c.GameSpeedPercent)
	}
	if c.BossSpawnWave <= 0 {
		return fmt.Errorf("config: boss-spawn-wave must be positive, got %d", c.BossSpawnWave)
	}
	return nil
}

// TickInterval is the fixed simulation step implied by TickRate.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// PlayerTimeout is PlayerTimeoutMs as a time.Duration.
func (c Config) PlayerTimeout() time.Duration {
	return time.Duration(c.PlayerTimeoutMs) * time.Millisecond
}
