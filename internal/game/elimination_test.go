package game

import (
	"testing"

	"github.com/lox/critterbluff/cards"
	"github.com/stretchr/testify/assert"
)

func TestCheckElimination(t *testing.T) {
	t.Parallel()

	var sevenTypes cards.Counts
	for _, c := range cards.All()[:7] {
		sevenTypes = sevenTypes.Add(c, 1)
	}
	eightTypes := sevenTypes.Add(cards.Centipede, 1)

	tests := []struct {
		name string
		open cards.Counts
		want Elimination
	}{
		{
			name: "empty",
			want: Elimination{},
		},
		{
			name: "three of a type",
			open: cards.Counts{}.Add(cards.Bat, 3),
			want: Elimination{},
		},
		{
			name: "four of a type",
			open: cards.Counts{}.Add(cards.Bat, 4),
			want: Elimination{Eliminated: true, Reason: ReasonSameType, Type: cards.Bat},
		},
		{
			name: "seven distinct types",
			open: sevenTypes,
			want: Elimination{},
		},
		{
			name: "eight distinct types all at one",
			open: eightTypes,
			want: Elimination{Eliminated: true, Reason: ReasonAllTypes},
		},
		{
			name: "same type wins over all types",
			open: eightTypes.Add(cards.Frog, 3),
			want: Elimination{Eliminated: true, Reason: ReasonSameType, Type: cards.Frog},
		},
		{
			name: "lowest ordinal reported first",
			open: cards.Counts{}.Add(cards.Fly, 4).Add(cards.Spider, 4),
			want: Elimination{Eliminated: true, Reason: ReasonSameType, Type: cards.Spider},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckElimination(tt.open))
		})
	}
}

func TestCheckPlayerEliminationIgnoresHand(t *testing.T) {
	t.Parallel()

	p := Player{
		Hand:      hand(cards.Bat, cards.Bat, cards.Bat, cards.Bat, cards.Bat),
		HandCount: 5,
	}
	assert.False(t, CheckPlayerElimination(p).Eliminated)

	p.Hand = nil
	p.HandCount = 0
	assert.False(t, CheckPlayerElimination(p).Eliminated, "empty hand is checked at turn start, not here")
}

func TestReasonString(t *testing.T) {
	assert.Equal(t, "same_type", ReasonSameType.String())
	assert.Equal(t, "all_types", ReasonAllTypes.String())
	assert.Equal(t, "empty_hand", ReasonEmptyHand.String())
	assert.Equal(t, "same_type (bat)", Elimination{Eliminated: true, Reason: ReasonSameType, Type: cards.Bat}.String())
}
