package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/critterbluff/internal/config"
	"github.com/lox/critterbluff/internal/game"
	"github.com/lox/critterbluff/internal/simulator"
	"github.com/muesli/termenv"
)

// SimulateCmd runs many games. Flags override values from the config file.
type SimulateCmd struct {
	Config       string   `short:"c" default:"critterbluff.hcl" help:"HCL config file (defaults are used if it does not exist)"`
	Games        int      `short:"n" help:"Number of games to play"`
	Seed         int64    `help:"Base RNG seed (0 for random)"`
	Workers      int      `short:"w" help:"Games to run in parallel"`
	Strategies   []string `short:"s" sep:"," help:"Comma-separated strategy per seat, e.g. random,honest,liar,skeptic or lua:bot.lua"`
	RecordDir    string   `name:"record-dir" help:"Write a TOML record of every game to this directory"`
	LastStanding bool     `name:"last-standing" help:"Play until one player is left instead of stopping at the first elimination"`
	NoColor      bool     `name:"no-color" help:"Disable colored output"`
	LogFlags     `embed:""`
}

func (c *SimulateCmd) Run() error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	logger := setupLogger(os.Stderr, c.LogFlags, cfg.Level())
	ctx := setupSignalHandler(logger)

	simCfg := simulator.FromConfig(cfg)
	simCfg.Logger = logger
	simCfg.BotLogger = setupBotLogger(c.Debug)
	sim := simulator.New(simCfg)

	logger.Info().
		Int("games", simCfg.Games).
		Int64("seed", sim.Seed()).
		Int("workers", simCfg.Workers).
		Strs("strategies", simCfg.Strategies).
		Msg("Starting simulation")

	report, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	fmt.Print(renderSummary(report, simCfg.Strategies, cfg.Simulation.LastPlayerStanding))
	return nil
}

// loadConfig reads the config file and applies command line overrides.
func (c *SimulateCmd) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}

	s := cfg.Simulation
	if c.Games > 0 {
		s.Games = c.Games
	}
	if c.Seed != 0 {
		s.Seed = c.Seed
	}
	if c.Workers > 0 {
		s.Workers = c.Workers
	}
	if c.RecordDir != "" {
		s.RecordDir = c.RecordDir
	}
	if c.LastStanding {
		s.LastPlayerStanding = true
	}
	if len(c.Strategies) > 0 {
		cfg.Seats = seatsFor(c.Strategies)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func seatsFor(strategies []string) []config.SeatConfig {
	names := game.DefaultNames(len(strategies))
	seats := make([]config.SeatConfig, len(strategies))
	for i, s := range strategies {
		seats[i] = config.SeatConfig{Name: names[i], Strategy: strings.TrimSpace(s)}
	}
	return seats
}
