package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/critterbluff/cards"
	"github.com/lox/critterbluff/internal/game"
	"github.com/lox/critterbluff/internal/randutil"
	"github.com/muesli/termenv"
)

// DealCmd shows what a seed deals, which helps when replaying a record.
type DealCmd struct {
	Players int   `short:"p" default:"4" help:"Number of players (2-6)"`
	Seed    int64 `help:"RNG seed (0 for random)"`
	NoColor bool  `name:"no-color" help:"Disable colored output"`
}

func (c *DealCmd) Run() error {
	if c.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	seed := randutil.Seed(c.Seed)
	st, err := game.NewEngine(randutil.New(seed)).InitializeGame(c.Players, nil)
	if err != nil {
		return err
	}
	fmt.Print(renderDeal(st, seed))
	return nil
}

func renderDeal(st game.State, seed int64) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Deal for %d players", st.PlayerCount)))
	b.WriteString("\n\n")
	b.WriteString(line("Game", st.ID))
	b.WriteString(line("Seed", fmt.Sprintf("%d", seed)))
	b.WriteString("\n")

	for _, p := range st.Players {
		b.WriteString(labelStyle.Render(p.Name))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%2d cards  %s", p.HandCount, renderCounts(p.HandCounts()))))
		b.WriteString("\n")
	}

	if len(st.Excluded) > 0 {
		b.WriteString("\n")
		b.WriteString(line("Set aside", renderCounts(cards.CountOf(st.Excluded))))
	}
	if len(st.Deck) > 0 {
		b.WriteString(line("Undealt", renderCounts(cards.CountOf(st.Deck))))
	}
	return b.String()
}

// renderCounts prints each type with its emoji, e.g. "🦇×3 🪰×2".
func renderCounts(n cards.Counts) string {
	var parts []string
	for _, c := range cards.All() {
		if v := n.Get(c); v > 0 {
			parts = append(parts, fmt.Sprintf("%s×%d", c.Emoji(), v))
		}
	}
	if len(parts) == 0 {
		return mutedStyle.Render("none")
	}
	return strings.Join(parts, " ")
}
