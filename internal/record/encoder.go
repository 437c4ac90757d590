package record

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/lox/critterbluff/internal/fileutil"
)

// Encode writes the record to w as TOML.
func Encode(w io.Writer, rec *GameRecord) error {
	if rec == nil {
		return fmt.Errorf("record: game record is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(rec)
}

// Decode reads a record written by Encode.
func Decode(r io.Reader) (*GameRecord, error) {
	var rec GameRecord
	md, err := toml.NewDecoder(r).Decode(&rec)
	if err != nil {
		return nil, fmt.Errorf("record: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("record: unknown keys %v", undecoded)
	}
	return &rec, nil
}

// WriteFile atomically writes rec to path.
func WriteFile(path string, rec *GameRecord) error {
	if rec == nil {
		return fmt.Errorf("record: game record is nil")
	}
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Encode(w, rec)
	})
}

// ReadFile loads a record from path.
func ReadFile(path string) (*GameRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("record: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Filename is the conventional file name for a game's record.
func Filename(gameID string) string {
	return gameID + ".toml"
}
