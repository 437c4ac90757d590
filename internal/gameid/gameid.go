// Package gameid generates sortable identifiers for game sessions.
package gameid

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
)

// Base32 alphabet used by TypeID (Crockford's base32)
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the length of every encoded game ID.
const Length = 26

// Generator creates game IDs. The zero value reads randomness from
// crypto/rand; tests can supply a deterministic reader.
type Generator struct {
	rand io.Reader
}

// NewGenerator creates a generator reading random bits from r. A nil r
// uses crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate creates a new game ID using UUIDv7 encoded as 26-character base32 string
func Generate() string {
	return NewGenerator(nil).Generate()
}

// Generate creates a new game ID. IDs generated later sort after earlier
// ones because the leading bits are a millisecond timestamp.
func (g *Generator) Generate() string {
	var (
		id  uuid.UUID
		err error
	)
	if g.rand != nil {
		id, err = uuid.NewV7FromReader(g.rand)
	} else {
		id, err = uuid.NewV7()
	}
	if err != nil {
		panic("failed to generate game id: " + err.Error())
	}
	return encodeBase32(id)
}

// PlayerID returns a random (version 4) UUID string. With a reader the
// result depends only on the bytes read.
func (g *Generator) PlayerID() string {
	if g.rand == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(g.rand)
	if err != nil {
		panic("failed to generate player id: " + err.Error())
	}
	return id.String()
}

// encodeBase32 encodes 128 bits as 26 base32 characters, big-endian, with
// two zero pad bits at the front.
func encodeBase32(data [16]byte) string {
	var b strings.Builder
	b.Grow(Length)

	// Pad to 130 bits so the value splits evenly into 5-bit groups.
	for i := range Length {
		bitOffset := i*5 - 2
		var value uint8
		for bit := range 5 {
			pos := bitOffset + bit
			if pos < 0 {
				continue
			}
			if data[pos/8]&(0x80>>(pos%8)) != 0 {
				value |= 1 << (4 - bit)
			}
		}
		b.WriteByte(alphabet[value])
	}
	return b.String()
}

// Validate checks if a game ID is valid (26 characters, valid base32)
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}

	// The first character only carries three bits.
	if id[0] > '7' {
		return fmt.Errorf("game ID first character must be 0-7, got %c", id[0])
	}

	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}

	return nil
}
