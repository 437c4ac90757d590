package main

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lox/critterbluff/internal/game"
	"github.com/lox/critterbluff/internal/record"
	"github.com/lox/critterbluff/internal/simulator"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Width(14)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	badStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

func line(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

func renderSummary(report *simulator.Report, seats []string, lastStanding bool) string {
	stats := report.Stats
	var b strings.Builder

	variant := record.VariantFirstElimination
	if lastStanding {
		variant = record.VariantLastPlayerStanding
	}

	b.WriteString(titleStyle.Render("Critter Bluff simulation"))
	b.WriteString("\n\n")
	b.WriteString(line("Games", fmt.Sprintf("%d (%s)", stats.Games, variant)))
	b.WriteString(line("Seats", strings.Join(seats, ", ")))
	b.WriteString(line("Seed", fmt.Sprintf("%d", report.Seed)))
	b.WriteString(line("Elapsed", report.Elapsed.Round(time.Millisecond).String()))
	b.WriteString("\n")

	low, high := stats.ConfidenceInterval95()
	b.WriteString(line("Turns/game", fmt.Sprintf("%.2f ± %.2f (95%% CI %.2f-%.2f)",
		stats.Mean(), stats.StdDev(), low, high)))
	b.WriteString(line("Percentiles", fmt.Sprintf("P5=%.0f P25=%.0f P50=%.0f P75=%.0f P95=%.0f",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Median(),
		stats.Percentile(0.75), stats.Percentile(0.95))))
	b.WriteString(line("Judgments", fmt.Sprintf("%d, %.1f%% correct", stats.Judgments, stats.SuccessRate()*100)))
	b.WriteString(line("Passes", fmt.Sprintf("%.2f per turn, longest chain %d", stats.MeanPassChain(), stats.LongestChain)))

	var reasons []string
	for _, r := range []game.Reason{game.ReasonSameType, game.ReasonAllTypes, game.ReasonEmptyHand} {
		if n := stats.LossesByReason[r]; n > 0 {
			reasons = append(reasons, fmt.Sprintf("%s %.1f%%", r, float64(n)/float64(stats.Games)*100))
		}
	}
	b.WriteString(line("Losses by", strings.Join(reasons, ", ")))
	b.WriteString("\n")

	b.WriteString(strategyTable(report))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Loss ratio compares losses with a player that has no edge; below 1.00 is better."))
	b.WriteString("\n")
	return b.String()
}

func strategyTable(report *simulator.Report) string {
	stats := report.Stats
	names := stats.StrategyNames()
	// Best strategy first.
	slices.SortStableFunc(names, func(a, b string) int {
		ra, rb := stats.Strategies[a].LossRatio(), stats.Strategies[b].LossRatio()
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	})

	ratios := make([]float64, len(names))
	rows := make([][]string, len(names))
	for i, name := range names {
		ss := stats.Strategies[name]
		ratios[i] = ss.LossRatio()
		rows[i] = []string{
			name,
			fmt.Sprintf("%d", ss.SeatGames),
			fmt.Sprintf("%d", ss.Losses),
			fmt.Sprintf("%.1f", ss.ExpectedLosses),
			fmt.Sprintf("%.2f", ss.LossRatio()),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers("STRATEGY", "SEAT GAMES", "LOSSES", "EXPECTED", "LOSS RATIO").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return style.Bold(true)
			}
			if col == 4 && row >= 0 && row < len(ratios) {
				if ratios[row] < 1 {
					return goodStyle.Padding(0, 1)
				}
				return badStyle.Padding(0, 1)
			}
			return style
		})
	return t.String() + "\n"
}
