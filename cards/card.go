package cards

import (
	"fmt"
	"strings"
)

// CardType identifies a creature card. Cards of the same type are
// interchangeable, so a card is nothing more than its type.
type CardType uint8

// NoCard is the zero value and means "no card chosen yet".
const NoCard CardType = 0

const (
	Bat CardType = iota + 1
	Spider
	Scorpion
	Mouse
	Frog
	Fly
	Stinkbug
	Centipede
)

// NumTypes is the number of distinct card types in the game.
const NumTypes = 8

var names = [NumTypes + 1]string{
	NoCard:    "none",
	Bat:       "bat",
	Spider:    "spider",
	Scorpion:  "scorpion",
	Mouse:     "mouse",
	Frog:      "frog",
	Fly:       "fly",
	Stinkbug:  "stinkbug",
	Centipede: "centipede",
}

var emoji = [NumTypes + 1]string{
	NoCard:    "?",
	Bat:       "🦇",
	Spider:    "🕷️",
	Scorpion:  "🦂",
	Mouse:     "🐭",
	Frog:      "🐸",
	Fly:       "🪰",
	Stinkbug:  "🪲",
	Centipede: "🐛",
}

// All returns every card type in ordinal order.
func All() []CardType {
	return []CardType{Bat, Spider, Scorpion, Mouse, Frog, Fly, Stinkbug, Centipede}
}

// Valid reports whether c is one of the eight card types.
func (c CardType) Valid() bool {
	return c >= Bat && c <= Centipede
}

// String returns the lowercase name of the card type
func (c CardType) String() string {
	if c > Centipede {
		return fmt.Sprintf("CardType(%d)", uint8(c))
	}
	return names[c]
}

// Emoji returns a single-glyph symbol for the card type
func (c CardType) Emoji() string {
	if c > Centipede {
		return "?"
	}
	return emoji[c]
}

// index maps a valid card type onto 0..NumTypes-1.
func (c CardType) index() int {
	return int(c) - 1
}

// Parse converts a card name (case-insensitive) into a CardType.
func Parse(s string) (CardType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, c := range All() {
		if names[c] == s {
			return c, nil
		}
	}
	return NoCard, fmt.Errorf("unknown card type %q", s)
}

// MustParse is like Parse but panics on error. Intended for tests.
func MustParse(s string) CardType {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText implements encoding.TextMarshaler.
func (c CardType) MarshalText() ([]byte, error) {
	if c != NoCard && !c.Valid() {
		return nil, fmt.Errorf("invalid card type %d", uint8(c))
	}
	return []byte(names[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *CardType) UnmarshalText(b []byte) error {
	if string(b) == names[NoCard] || len(b) == 0 {
		*c = NoCard
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Counts holds one counter per card type. It is a value type: assigning
// or passing a Counts copies it.
type Counts [NumTypes]int

// Get returns the count for c. Invalid card types count as zero.
func (n Counts) Get(c CardType) int {
	if !c.Valid() {
		return 0
	}
	return n[c.index()]
}

// Add returns a copy of n with delta added to the counter for c.
func (n Counts) Add(c CardType, delta int) Counts {
	if c.Valid() {
		n[c.index()] += delta
	}
	return n
}

// Total returns the sum of all counters.
func (n Counts) Total() int {
	total := 0
	for _, v := range n {
		total += v
	}
	return total
}

// Distinct returns how many card types have a nonzero count.
func (n Counts) Distinct() int {
	distinct := 0
	for _, v := range n {
		if v > 0 {
			distinct++
		}
	}
	return distinct
}

// Max returns the first card type holding the highest count, and that count.
func (n Counts) Max() (CardType, int) {
	best, bestCount := NoCard, 0
	for _, c := range All() {
		if v := n.Get(c); v > bestCount {
			best, bestCount = c, v
		}
	}
	return best, bestCount
}

// Map returns the nonzero counters keyed by card name.
func (n Counts) Map() map[string]int {
	m := make(map[string]int)
	for _, c := range All() {
		if v := n.Get(c); v > 0 {
			m[c.String()] = v
		}
	}
	return m
}

// CountOf tallies a slice of cards.
func CountOf(hand []CardType) Counts {
	var n Counts
	for _, c := range hand {
		n = n.Add(c, 1)
	}
	return n
}

// String formats the nonzero counters, e.g. "bat:2 frog:1".
func (n Counts) String() string {
	var parts []string
	for _, c := range All() {
		if v := n.Get(c); v > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", c, v))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
