package main

import (
	"fmt"
	"os"

	"github.com/lox/critterbluff/internal/config"
	"github.com/lox/critterbluff/internal/record"
	"github.com/lox/critterbluff/internal/simulator"
	"github.com/rs/zerolog"
)

// PlayOneCmd plays a single game at debug level and writes its record.
type PlayOneCmd struct {
	Strategies   []string `short:"s" sep:"," default:"random,honest,liar,skeptic" help:"Comma-separated strategy per seat"`
	Seed         int64    `help:"RNG seed (0 for random)"`
	Out          string   `short:"o" help:"Write the TOML record to this file instead of stdout"`
	LastStanding bool     `name:"last-standing" help:"Play until one player is left"`
	Quiet        bool     `short:"q" help:"Do not narrate the game on stderr"`
	LogFlags     `embed:""`
}

func (c *PlayOneCmd) Run() error {
	cfg := config.Default()
	cfg.Seats = seatsFor(c.Strategies)
	cfg.Simulation.Games = 1
	cfg.Simulation.Seed = c.Seed
	cfg.Simulation.LastPlayerStanding = c.LastStanding
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogger(os.Stderr, c.LogFlags, zerolog.DebugLevel)
	ctx := setupSignalHandler(logger)

	simCfg := simulator.FromConfig(cfg)
	simCfg.Logger = logger
	simCfg.BotLogger = setupBotLogger(true)
	if !c.Quiet {
		simCfg.Narrate = os.Stderr
	}
	sim := simulator.New(simCfg)

	result, rec, err := sim.PlayGame(ctx, 0)
	if err != nil {
		return fmt.Errorf("game failed (seed %d): %w", sim.Seed(), err)
	}

	if c.Out != "" {
		if err := record.WriteFile(c.Out, rec); err != nil {
			return err
		}
		logger.Info().Str("path", c.Out).Msg("Wrote game record")
	} else if err := record.Encode(os.Stdout, rec); err != nil {
		return err
	}

	logger.Info().
		Str("game_id", rec.Game).
		Int64("seed", sim.Seed()).
		Int("turns", result.Turns).
		Str("loser", rec.Outcome.LoserName).
		Stringer("reason", result.Reason).
		Msg("Game over")
	return nil
}
