// Package config loads simulation settings from HCL.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/critterbluff/internal/bot"
	"github.com/lox/critterbluff/internal/game"
	"github.com/rs/zerolog"
)

// Defaults applied to missing values.
const (
	DefaultGames    = 1000
	DefaultTimeout  = "30s"
	DefaultMaxTurns = 10000
	DefaultLogLevel = "info"
)

// Config is the complete simulation configuration
type Config struct {
	Simulation *SimulationSettings `hcl:"simulation,block"`
	Seats      []SeatConfig        `hcl:"seat,block"`
}

// SimulationSettings controls a batch of games
type SimulationSettings struct {
	Games   int   `hcl:"games,optional"`
	Seed    int64 `hcl:"seed,optional"`
	Workers int   `hcl:"workers,optional"`
	// Timeout bounds a single game, as a Go duration string.
	Timeout            string `hcl:"timeout,optional"`
	MaxTurns           int    `hcl:"max_turns,optional"`
	RecordDir          string `hcl:"record_dir,optional"`
	LogLevel           string `hcl:"log_level,optional"`
	LastPlayerStanding bool   `hcl:"last_player_standing,optional"`
}

// SeatConfig defines one player at the table
type SeatConfig struct {
	Name     string `hcl:"name,label"`
	Strategy string `hcl:"strategy,optional"`
	Script   string `hcl:"script,optional"`
}

// StrategyName returns the name understood by bot.New. A script without an
// explicit strategy selects the lua strategy.
func (s SeatConfig) StrategyName() string {
	if s.Script != "" && (s.Strategy == "" || strings.EqualFold(s.Strategy, "lua")) {
		return bot.LuaPrefix + s.Script
	}
	return s.Strategy
}

// Default returns the configuration used when no file is given: one seat
// per built-in strategy.
func Default() *Config {
	cfg := &Config{}
	for _, name := range bot.Names() {
		cfg.Seats = append(cfg.Seats, SeatConfig{Name: strings.ToUpper(name[:1]) + name[1:], Strategy: name})
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(file)
}

// Parse decodes configuration from src. filename is used in diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(file)
}

func decode(file *hcl.File) (*Config, error) {
	var cfg Config
	if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(cfg.Seats) == 0 {
		cfg.Seats = Default().Seats
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Simulation == nil {
		c.Simulation = &SimulationSettings{}
	}
	s := c.Simulation
	if s.Games == 0 {
		s.Games = DefaultGames
	}
	if s.Workers == 0 {
		s.Workers = runtime.NumCPU()
	}
	if s.Timeout == "" {
		s.Timeout = DefaultTimeout
	}
	if s.MaxTurns == 0 {
		s.MaxTurns = DefaultMaxTurns
	}
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}

	for i := range c.Seats {
		if c.Seats[i].Strategy == "" && c.Seats[i].Script == "" {
			c.Seats[i].Strategy = "random"
		}
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	s := c.Simulation
	if s == nil {
		return fmt.Errorf("missing simulation settings")
	}
	if s.Games < 1 {
		return fmt.Errorf("games must be positive, got %d", s.Games)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", s.Workers)
	}
	if s.MaxTurns < 1 {
		return fmt.Errorf("max_turns must be positive, got %d", s.MaxTurns)
	}
	if d, err := time.ParseDuration(s.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid timeout %q", s.Timeout)
	}
	if _, err := zerolog.ParseLevel(s.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q", s.LogLevel)
	}

	if len(c.Seats) < game.MinPlayers || len(c.Seats) > game.MaxPlayers {
		return fmt.Errorf("need %d-%d seats, got %d", game.MinPlayers, game.MaxPlayers, len(c.Seats))
	}
	seen := make(map[string]bool, len(c.Seats))
	for _, seat := range c.Seats {
		key := strings.ToLower(strings.TrimSpace(seat.Name))
		if key == "" {
			return fmt.Errorf("seat name must not be empty")
		}
		if seen[key] {
			return fmt.Errorf("duplicate seat name %q", seat.Name)
		}
		seen[key] = true
		if !bot.Valid(seat.StrategyName()) {
			return fmt.Errorf("seat %s: invalid strategy %q", seat.Name, seat.StrategyName())
		}
	}
	return nil
}

// TimeoutDuration returns the per-game timeout. Call after Validate.
func (c *Config) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Simulation.Timeout)
	return d
}

// Level returns the configured log level, falling back to info.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Simulation.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}

// SeatNames returns the seat names in order.
func (c *Config) SeatNames() []string {
	names := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		names[i] = s.Name
	}
	return names
}

// Strategies returns each seat's strategy name in order.
func (c *Config) Strategies() []string {
	names := make([]string, len(c.Seats))
	for i, s := range c.Seats {
		names[i] = s.StrategyName()
	}
	return names
}
