package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Word holds one bit per zone across every registered device.
type Word = uint64

// WordBits is the width of a Word.
const WordBits = 64

func FormatWord(w Word) string {
	return "0b" + strconv.FormatUint(w, 2)
}

// ParseWord accepts decimal, 0x, 0o and 0b forms.
func ParseWord(s string) (Word, error) {
	w, err := strconv.ParseUint(strings.TrimSpace(s), 0, WordBits)
	if err != nil {
		return 0, fmt.Errorf("parse chord word %q: %w", s, err)
	}
	return w, nil
}

// A Symbol is the output for a chord, optionally prefixed with
// modifiers, e.g. "a", "escape" or "shift+a".
type Symbol string

var modifiers = map[string]bool{
	"shift": true,
	"ctrl":  true,
	"alt":   true,
	"meta":  true,
}

// Split returns the modifiers and the key of a symbol.
func (s Symbol) Split() ([]string, string) {
	parts := strings.Split(strings.ToLower(string(s)), "+")
	key := parts[len(parts)-1]
	var mods []string
	for _, p := range parts[:len(parts)-1] {
		if modifiers[p] {
			mods = append(mods, p)
		}
	}
	return mods, key
}

type Chord struct {
	Word      Word      `json:"word"`
	Symbol    Symbol    `json:"symbol"`
	Described string    `json:"described"`
	At        time.Time `json:"at"`
}
