package game

import (
	rand "math/rand/v2"
	"testing"

	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/randutil"
	"github.com/stretchr/testify/require"
)

// randomPlayout drives a whole game with random legal choices and checks the
// invariants after every transition.
func randomPlayout(t *testing.T, e *Engine, rng *rand.Rand, players int) State {
	t.Helper()
	ok := must(t)

	s, err := e.InitializeGame(players, nil)
	require.NoError(t, err)
	for seat := range s.Players {
		h := s.Players[seat].Hand
		s = ok(e.RevealInitialCard(s, seat, h[rng.IntN(len(h))]))
	}
	s = ok(e.CompleteInitialHand(s))
	s = ok(e.SelectQuestioner(s, rng.IntN(players)))

	check := func(prev, next State) {
		t.Helper()
		require.NoError(t, next.VerifyConservation())
		for i := range next.Players {
			if prev.Players[i].Eliminated {
				require.True(t, next.Players[i].Eliminated, "seat %d came back", i)
			}
			for _, c := range cards.All() {
				require.GreaterOrEqual(t, next.Players[i].OpenCards.Get(c), prev.Players[i].OpenCards.Get(c))
			}
		}
	}

	for turns := 0; !s.Over; turns++ {
		require.Less(t, turns, 1000, "game did not terminate")

		prev := s
		s = ok(e.StartTurn(s, s.CurrentPlayer))
		check(prev, s)
		if s.Turn == nil {
			continue
		}

		q := s.Players[s.Turn.Questioner]
		targets := LegalQuestionTargets(s)
		card := q.Hand[rng.IntN(len(q.Hand))]
		prev = s
		s = ok(e.Question(s, card, targets[rng.IntN(len(targets))], cards.All()[rng.IntN(cards.NumTypes)]))
		check(prev, s)

		for CanPassToOthers(s) && rng.IntN(2) == 0 {
			passTargets := PassTargets(s)
			prev = s
			s = ok(e.PassCard(s, passTargets[rng.IntN(len(passTargets))], cards.All()[rng.IntN(cards.NumTypes)]))
			check(prev, s)
		}

		prev = s
		next, j, err := e.MakeJudgment(s, rng.IntN(2) == 0)
		require.NoError(t, err)
		check(prev, next)
		if !next.Over && !j.Elimination.Eliminated {
			require.Equal(t, j.Recipient, next.CurrentPlayer)
		}
		if next.Over {
			require.Equal(t, prev.TurnNumber, next.TurnNumber, "the final judgment does not start a new turn")
		} else {
			require.Equal(t, prev.TurnNumber+1, next.TurnNumber)
		}
		s = next
	}
	return s
}

func TestRandomPlayoutsKeepInvariants(t *testing.T) {
	t.Parallel()

	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := range int64(20) {
			rng := randutil.New(seed*10 + int64(players))
			e, _ := newTestEngine(t)
			s := randomPlayout(t, e, rng, players)

			require.True(t, s.Over)
			require.Equal(t, PhaseGameOver, s.Phase)
			require.NotEqual(t, NoSeat, s.Loser)
			require.True(t, s.Players[s.Loser].Eliminated)
			require.Len(t, s.Survivors(), players-1)
		}
	}
}

func TestRandomPlayoutsLastPlayerStanding(t *testing.T) {
	t.Parallel()

	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := range int64(10) {
			rng := randutil.New(seed*100 + int64(players))
			e, _ := newTestEngine(t, WithLastPlayerStanding())
			s := randomPlayout(t, e, rng, players)

			require.True(t, s.Over)
			require.True(t, CheckGameOver(s.Players), "exactly one survivor when the game ends")
		}
	}
}
