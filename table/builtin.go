package table

import (
	"fmt"

	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/zone"
)

// Three zone pie layout. The left pad moves the cursor, the right pad
// picks a letter group that the left pad then walks clockwise.
var pie3 = map[model.Word]model.Symbol{
	1: "down", 2: "left", 3: "home", 4: "right", 5: "end", 6: "up", 7: "escape",

	8: "space", 16: "backspace", 32: "tab",
	56: "enter",

	9: "a", 11: "b", 10: "c", 14: "d", 12: "e", 13: "f", 15: "g",
	25: "h", 27: "i", 26: "j", 30: "k", 28: "l", 29: "m", 31: "n",
	17: "o", 19: "p", 18: "q", 22: "r", 20: "s", 21: "t", 23: "u",
	49: "v", 51: "w", 50: "x", 54: "y", 52: "z",
}

// Four zone layout after asetniop. Bits per hand are S, W, N, E.
var asetniop4 = map[model.Word]model.Symbol{
	2 + 32: "backspace",
	1 + 16: "space",

	1: "e", 2: "a", 4: "s", 8: "t",
	16: "i", 32: "n", 64: "p", 128: "o",

	1 + 8: "r", 16 + 32: "h",
	2 + 8: "d", 32 + 128: "m",
	1 + 2: "c", 16 + 128: "u",
	1 + 4: "f", 16 + 64: "l",
	1 + 32: "v", 16 + 8: "y",
	1 + 128: "g", 16 + 2: "j",
	4 + 2: "w", 4 + 1 + 16: "b", 64 + 128: ";",
	4 + 8: "x", 64 + 32: "k",
	2 + 128: "q", 8 + 32: "z",
}

var builtins = map[string]struct {
	variant zone.Variant
	chords  map[model.Word]model.Symbol
}{
	"pie3":      {zone.Three, pie3},
	"asetniop4": {zone.Four, asetniop4},
}

func Builtin(name string) (*Table, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return New(name, b.variant, b.chords)
}

func BuiltinNames() []string {
	return []string{"asetniop4", "pie3"}
}
