package simulator

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/critterbluff/internal/bot"
	"github.com/lox/critterbluff/internal/config"
	"github.com/lox/critterbluff/internal/game"
	"github.com/lox/critterbluff/internal/gameid"
	"github.com/lox/critterbluff/internal/randutil"
	"github.com/lox/critterbluff/internal/record"
	"github.com/lox/critterbluff/internal/statistics"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrTurnLimit is returned when a game does not finish within MaxTurns.
var ErrTurnLimit = errors.New("turn limit reached")

// Config holds configuration for running simulations
type Config struct {
	Games int
	Seed  int64
	// Workers bounds how many games run at once.
	Workers  int
	Timeout  time.Duration
	MaxTurns int

	// Names and Strategies describe the seats of the first game. Later
	// games rotate them one seat per game.
	Names      []string
	Strategies []string

	RecordDir          string
	LastPlayerStanding bool
	// Narrate, when set, receives a line of text per game event. Only
	// useful with a single worker.
	Narrate io.Writer

	Clock     quartz.Clock
	Logger    zerolog.Logger
	BotLogger *log.Logger
}

// FromConfig converts loaded configuration into simulator settings.
func FromConfig(cfg *config.Config) Config {
	s := cfg.Simulation
	return Config{
		Games:              s.Games,
		Seed:               s.Seed,
		Workers:            s.Workers,
		Timeout:            cfg.TimeoutDuration(),
		MaxTurns:           s.MaxTurns,
		Names:              cfg.SeatNames(),
		Strategies:         cfg.Strategies(),
		RecordDir:          s.RecordDir,
		LastPlayerStanding: s.LastPlayerStanding,
	}
}

// Report is the outcome of a batch
type Report struct {
	Stats   *statistics.Statistics
	Seed    int64
	Elapsed time.Duration
}

// Simulator runs batches of bot-vs-bot games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(cfg Config) *Simulator {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxTurns < 1 {
		cfg.MaxTurns = config.DefaultMaxTurns
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	if cfg.BotLogger == nil {
		cfg.BotLogger = log.Default()
	}
	if len(cfg.Names) == 0 && len(cfg.Strategies) > 0 {
		cfg.Names = game.DefaultNames(len(cfg.Strategies))
	}
	cfg.Seed = randutil.Seed(cfg.Seed)
	return &Simulator{config: cfg}
}

// Seed returns the base seed of the batch, useful when it was randomised.
func (s *Simulator) Seed() int64 {
	return s.config.Seed
}

// Run plays every game and aggregates the results. The first failing game
// cancels the rest.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	if s.config.Games < 1 {
		return nil, fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if len(s.config.Strategies) != len(s.config.Names) {
		return nil, fmt.Errorf("%d names for %d strategies", len(s.config.Names), len(s.config.Strategies))
	}

	start := s.config.Clock.Now()
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for n := range s.config.Games {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, rec, err := s.PlayGame(ctx, n)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", n+1, result.Seed, err)
			}
			results[n] = result

			if s.config.RecordDir != "" {
				path := filepath.Join(s.config.RecordDir, record.Filename(rec.Game))
				if err := record.WriteFile(path, rec); err != nil {
					return fmt.Errorf("game %d: %w", n+1, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Aggregate in game order so the report does not depend on scheduling.
	stats := statistics.New()
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	report := &Report{Stats: stats, Seed: s.config.Seed, Elapsed: s.config.Clock.Now().Sub(start)}
	s.config.Logger.Info().
		Int("games", stats.Games).
		Int64("seed", s.config.Seed).
		Dur("elapsed", report.Elapsed).
		Msg("Simulation complete")
	return report, nil
}

// seating returns the names and strategies of game n: the configured seats
// rotated n places.
func (s *Simulator) seating(n int) (names, strategies []string) {
	k := len(s.config.Strategies)
	names = make([]string, k)
	strategies = make([]string, k)
	for i := range k {
		names[i] = s.config.Names[(i+n)%k]
		strategies[i] = s.config.Strategies[(i+n)%k]
	}
	return names, strategies
}

// PlayGame plays the n-th game of the batch. The same n and base seed
// always produce the same game.
func (s *Simulator) PlayGame(ctx context.Context, n int) (statistics.GameResult, *record.GameRecord, error) {
	seed := randutil.GameSeed(s.config.Seed, n)
	names, strategies := s.seating(n)
	result := statistics.GameResult{Seed: seed, Strategies: strategies, Loser: game.NoSeat}

	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	logger := s.config.Logger.With().Int("game", n+1).Int64("seed", seed).Logger()

	opts := []game.Option{
		game.WithClock(s.config.Clock),
		game.WithLogger(logger),
		game.WithIDGenerator(gameid.NewGenerator(idSource(seed))),
	}
	if s.config.LastPlayerStanding {
		opts = append(opts, game.WithLastPlayerStanding())
	}
	engine := game.NewEngine(randutil.New(seed), opts...)

	bus := game.NewEventBus()
	if s.config.Narrate != nil {
		bus.Subscribe(narrator(s.config.Narrate, names))
	}
	sess, err := game.NewSessionWithBus(engine, bus, len(strategies), names)
	if err != nil {
		return result, nil, err
	}
	recorder := record.NewRecorder(sess.Snapshot(), strategies)
	sess.Subscribe(recorder)

	agents := make([]bot.Agent, len(strategies))
	for i, name := range strategies {
		agent, err := bot.New(name, randutil.New(randutil.GameSeed(seed, i+1)), s.config.BotLogger)
		if err != nil {
			return result, nil, fmt.Errorf("seat %d: %w", i, err)
		}
		if c, ok := agent.(bot.Closer); ok {
			defer c.Close()
		}
		agents[i] = agent
	}

	p := &player{
		sess:     sess,
		agents:   agents,
		rng:      randutil.New(seed ^ 0x5eed),
		maxTurns: s.config.MaxTurns,
		logger:   logger,
	}
	if err := p.play(ctx, &result); err != nil {
		return result, nil, err
	}

	final := sess.Snapshot()
	rec := recorder.Finish(final, s.config.LastPlayerStanding)
	rec.Seed = seed

	result.Turns = final.TurnNumber
	result.Loser = final.Loser
	result.Survivors = len(final.Survivors())
	if final.Loser != game.NoSeat {
		result.Reason = final.Players[final.Loser].Elimination.Reason
	}

	logger.Debug().
		Str("game_id", final.ID).
		Int("turns", result.Turns).
		Int("loser", result.Loser).
		Stringer("reason", result.Reason).
		Msg("Game finished")
	return result, rec, nil
}

func narrator(w io.Writer, names []string) game.EventSubscriber {
	f := game.NewEventFormatter(game.FormattingOptions{Names: names, Emoji: true})
	return game.SubscriberFunc(func(event game.GameEvent) {
		if text := f.Format(event); text != "" {
			fmt.Fprintln(w, text)
		}
	})
}

// idSource returns a deterministic random stream for game IDs.
func idSource(seed int64) *rand.ChaCha8 {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], uint64(seed))
	return rand.NewChaCha8(key)
}
