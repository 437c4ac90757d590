package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/critterbluff/internal/game"
)

// GameResult is the outcome of a single simulated game
type GameResult struct {
	Seed       int64    // RNG seed for this game (for replay)
	Strategies []string // Strategy name per seat
	Turns      int      // Completed turns, eliminations at turn start included
	Loser      int      // Seat eliminated first, or the last one out under last-player-standing
	Reason     game.Reason
	Survivors  int // Players left when the game ended

	Judgments  int   // Turns resolved by a judgment
	Successes  int   // Judgments where the judge was right
	PassChains []int // Passes made in each judged turn
}

// StrategyStats tracks results for one strategy across all seats it played
type StrategyStats struct {
	SeatGames int
	Losses    int
	// ExpectedLosses is the sum of 1/players over every seat game: the
	// number of losses a strategy with no edge would collect.
	ExpectedLosses float64
}

// LossRatio compares actual with expected losses. Below 1 is better than
// chance.
func (ss StrategyStats) LossRatio() float64 {
	if ss.ExpectedLosses == 0 {
		return 0
	}
	return float64(ss.Losses) / ss.ExpectedLosses
}

// Statistics aggregates game results. Turn counts are the sampled value.
type Statistics struct {
	Games    int
	SumTurns float64
	SumTurn2 float64   // Sum of squares for variance calculation
	Values   []float64 // Turn counts for median/percentile calculation

	Judgments int
	Successes int

	Passes       int         // Total passes over all turns
	LongestChain int         // Most passes within one turn
	ChainCounts  map[int]int // Judged turns keyed by pass count

	LossesByReason map[game.Reason]int
	Strategies     map[string]*StrategyStats
}

// New returns empty statistics ready for Add.
func New() *Statistics {
	return &Statistics{
		ChainCounts:    make(map[int]int),
		LossesByReason: make(map[game.Reason]int),
		Strategies:     make(map[string]*StrategyStats),
	}
}

// Mean returns the mean number of turns per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumTurns / float64(s.Games)
}

// Variance returns the sample variance of turns per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumTurn2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of turns per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	if s.ChainCounts == nil {
		s.ChainCounts = make(map[int]int)
	}
	if s.LossesByReason == nil {
		s.LossesByReason = make(map[game.Reason]int)
	}
	if s.Strategies == nil {
		s.Strategies = make(map[string]*StrategyStats)
	}

	turns := float64(result.Turns)
	s.Games++
	s.SumTurns += turns
	s.SumTurn2 += turns * turns
	s.Values = append(s.Values, turns)

	s.Judgments += result.Judgments
	s.Successes += result.Successes
	for _, n := range result.PassChains {
		s.Passes += n
		s.ChainCounts[n]++
		s.LongestChain = max(s.LongestChain, n)
	}

	s.LossesByReason[result.Reason]++

	players := len(result.Strategies)
	for seat, name := range result.Strategies {
		ss := s.Strategies[name]
		if ss == nil {
			ss = &StrategyStats{}
			s.Strategies[name] = ss
		}
		ss.SeatGames++
		ss.ExpectedLosses += 1 / float64(players)
		if seat == result.Loser {
			ss.Losses++
		}
	}
}

// SuccessRate returns the fraction of judgments that were correct
func (s *Statistics) SuccessRate() float64 {
	if s.Judgments == 0 {
		return 0
	}
	return float64(s.Successes) / float64(s.Judgments)
}

// MeanPassChain returns the average passes per judged turn
func (s *Statistics) MeanPassChain() float64 {
	if s.Judgments == 0 {
		return 0
	}
	return float64(s.Passes) / float64(s.Judgments)
}

// StrategyNames returns strategy names sorted alphabetically
func (s *Statistics) StrategyNames() []string {
	names := make([]string, 0, len(s.Strategies))
	for name := range s.Strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Median returns the median turns per game
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks the aggregates are consistent with each other
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}

	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)",
			len(s.Values), s.Games)
	}

	if s.Successes > s.Judgments {
		return fmt.Errorf("successes (%d) exceed judgments (%d)", s.Successes, s.Judgments)
	}

	byReason := 0
	for _, n := range s.LossesByReason {
		byReason += n
	}
	if byReason != s.Games {
		return fmt.Errorf("losses by reason total (%d) does not match games (%d)", byReason, s.Games)
	}

	// Every game has exactly one loser.
	byStrategy := 0
	for _, ss := range s.Strategies {
		byStrategy += ss.Losses
	}
	if byStrategy != s.Games {
		return fmt.Errorf("losses by strategy total (%d) does not match games (%d)", byStrategy, s.Games)
	}

	chains := 0
	for _, n := range s.ChainCounts {
		chains += n
	}
	if chains != s.Judgments {
		return fmt.Errorf("pass chain count (%d) does not match judgments (%d)", chains, s.Judgments)
	}

	return nil
}
