package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
	"github.com/lox/critterbluff/internal/randutil"
	"github.com/lox/critterbluff/internal/simulator"
	"github.com/lox/critterbluff/internal/statistics"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatsFor(t *testing.T) {
	seats := seatsFor([]string{"random", " liar ", "lua:bots/x.lua"})
	require.Len(t, seats, 3)
	assert.Equal(t, "Player 1", seats[0].Name)
	assert.Equal(t, "liar", seats[1].Strategy)
	assert.Equal(t, "lua:bots/x.lua", seats[2].StrategyName())
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation {
  games = 50
  seed  = 3
}

seat "Ana" { strategy = "honest" }
seat "Ben" { strategy = "liar" }
`), 0o644))

	tests := []struct {
		name       string
		cmd        SimulateCmd
		games      int
		seed       int64
		strategies []string
		lastStand  bool
		wantErr    bool
	}{
		{
			name:       "file only",
			cmd:        SimulateCmd{Config: path},
			games:      50,
			seed:       3,
			strategies: []string{"honest", "liar"},
		},
		{
			name:       "flags win",
			cmd:        SimulateCmd{Config: path, Games: 7, Seed: 99, Strategies: []string{"skeptic", "random", "liar"}, LastStanding: true},
			games:      7,
			seed:       99,
			strategies: []string{"skeptic", "random", "liar"},
			lastStand:  true,
		},
		{
			name:    "unknown strategy",
			cmd:     SimulateCmd{Config: path, Strategies: []string{"random", "maniac"}},
			wantErr: true,
		},
		{
			name:    "one seat",
			cmd:     SimulateCmd{Config: path, Strategies: []string{"random"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := tt.cmd.loadConfig()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.games, cfg.Simulation.Games)
			assert.Equal(t, tt.seed, cfg.Simulation.Seed)
			assert.Equal(t, tt.strategies, cfg.Strategies())
			assert.Equal(t, tt.lastStand, cfg.Simulation.LastPlayerStanding)
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cmd := SimulateCmd{Config: filepath.Join(t.TempDir(), "none.hcl")}
	cfg, err := cmd.loadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"random", "honest", "liar", "skeptic"}, cfg.Strategies())
}

func TestRenderSummary(t *testing.T) {
	stats := statistics.New()
	stats.Add(statistics.GameResult{
		Strategies: []string{"honest", "liar"},
		Turns:      12,
		Loser:      1,
		Reason:     game.ReasonSameType,
		Survivors:  1,
		Judgments:  2,
		Successes:  1,
		PassChains: []int{0, 1},
	})
	stats.Add(statistics.GameResult{
		Strategies: []string{"liar", "honest"},
		Turns:      20,
		Loser:      0,
		Reason:     game.ReasonAllTypes,
		Survivors:  1,
		Judgments:  1,
		Successes:  1,
		PassChains: []int{3},
	})
	report := &simulator.Report{Stats: stats, Seed: 42, Elapsed: 1500 * time.Millisecond}

	out := renderSummary(report, []string{"honest", "liar"}, false)
	assert.Contains(t, out, "Critter Bluff simulation")
	assert.Contains(t, out, "2 (first-elimination)")
	assert.Contains(t, out, "42")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "66.7% correct")
	assert.Contains(t, out, "longest chain 3")
	assert.Contains(t, out, "same_type 50.0%")
	assert.Contains(t, out, "LOSS RATIO")

	// honest never lost, so its row comes first.
	tbl := out[strings.Index(out, "LOSS RATIO"):]
	assert.Less(t, strings.Index(tbl, "honest"), strings.Index(tbl, "liar"))
	assert.Contains(t, out, "0.00")
	assert.Contains(t, out, "2.00")

	assert.Contains(t, renderSummary(report, nil, true), "last-player-standing")
}

func TestRenderDeal(t *testing.T) {
	st, err := game.NewEngine(randutil.New(5)).InitializeGame(2, []string{"Ana", "Ben"})
	require.NoError(t, err)

	out := renderDeal(st, 5)
	assert.Contains(t, out, "Deal for 2 players")
	assert.Contains(t, out, st.ID)
	assert.Contains(t, out, "Ana")
	assert.Contains(t, out, "27 cards")
	assert.Contains(t, out, "Set aside")
	assert.NotContains(t, out, "Undealt")

	st, err = game.NewEngine(randutil.New(5)).InitializeGame(5, nil)
	require.NoError(t, err)
	out = renderDeal(st, 5)
	assert.Contains(t, out, "Player 5")
	assert.Contains(t, out, "12 cards")
	assert.Contains(t, out, "Undealt")
}

func TestRenderCounts(t *testing.T) {
	n := cards.CountOf([]cards.CardType{cards.Bat, cards.Bat, cards.Frog})
	assert.Equal(t, "🦇×2 🐸×1", renderCounts(n))
	assert.Contains(t, renderCounts(cards.Counts{}), "none")
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := setupLogger(&buf, LogFlags{JSONLogs: true}, zerolog.WarnLevel)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"message":"shown"`)

	buf.Reset()
	logger = setupLogger(&buf, LogFlags{Debug: true, JSONLogs: true}, zerolog.WarnLevel)
	logger.Debug().Msg("detail")
	assert.Contains(t, buf.String(), "detail")
}
