package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultGames, cfg.Simulation.Games)
	assert.Equal(t, runtime.NumCPU(), cfg.Simulation.Workers)
	assert.Equal(t, 30*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, []string{"Random", "Honest", "Liar", "Skeptic"}, cfg.SeatNames())
	assert.Equal(t, []string{"random", "honest", "liar", "skeptic"}, cfg.Strategies())
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.hcl")
	src := `
simulation {
  games                = 250
  seed                 = 42
  workers              = 3
  timeout              = "5s"
  record_dir           = "records"
  log_level            = "debug"
  last_player_standing = true
}

seat "Alice" {
  strategy = "skeptic"
}

seat "Bob" {
  script = "bots/cautious.lua"
}

seat "Carol" {}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s := cfg.Simulation
	assert.Equal(t, 250, s.Games)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 3, s.Workers)
	assert.Equal(t, 5*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, DefaultMaxTurns, s.MaxTurns)
	assert.Equal(t, "records", s.RecordDir)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.True(t, s.LastPlayerStanding)

	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, cfg.SeatNames())
	assert.Equal(t, []string{"skeptic", "lua:bots/cautious.lua", "random"}, cfg.Strategies())
}

func TestParseWithoutSimulationBlock(t *testing.T) {
	cfg, err := Parse([]byte(`
seat "a" { strategy = "honest" }
seat "b" { strategy = "liar" }
`), "inline.hcl")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultGames, cfg.Simulation.Games)
	assert.Len(t, cfg.Seats, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `simulation {`},
		{"unknown attribute", `simulation { rounds = 3 }`},
		{"wrong type", `simulation { games = "many" }`},
		{"seat without label", `seat { strategy = "random" }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "bad.hcl")
			assert.Error(t, err)
		})
	}
}

func TestSeatStrategyName(t *testing.T) {
	assert.Equal(t, "honest", SeatConfig{Strategy: "honest"}.StrategyName())
	assert.Equal(t, "lua:x.lua", SeatConfig{Script: "x.lua"}.StrategyName())
	assert.Equal(t, "lua:x.lua", SeatConfig{Strategy: "Lua", Script: "x.lua"}.StrategyName())
	assert.Equal(t, "liar", SeatConfig{Strategy: "liar", Script: "x.lua"}.StrategyName())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no games", func(c *Config) { c.Simulation.Games = -1 }},
		{"no workers", func(c *Config) { c.Simulation.Workers = 0 }},
		{"no turns", func(c *Config) { c.Simulation.MaxTurns = 0 }},
		{"bad timeout", func(c *Config) { c.Simulation.Timeout = "soon" }},
		{"negative timeout", func(c *Config) { c.Simulation.Timeout = "-1s" }},
		{"bad log level", func(c *Config) { c.Simulation.LogLevel = "loud" }},
		{"one seat", func(c *Config) { c.Seats = c.Seats[:1] }},
		{"seven seats", func(c *Config) {
			for i := range 3 {
				c.Seats = append(c.Seats, SeatConfig{Name: string(rune('x' + i)), Strategy: "random"})
			}
		}},
		{"duplicate names", func(c *Config) { c.Seats[1].Name = "random" }},
		{"empty name", func(c *Config) { c.Seats[0].Name = "  " }},
		{"unknown strategy", func(c *Config) { c.Seats[0].Strategy = "maniac" }},
		{"missing simulation", func(c *Config) { c.Simulation = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
