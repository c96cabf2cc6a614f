// Package table holds the immutable mapping from chord words to symbols.
package table

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/util"
	"github.com/jsphweid/vivechord/zone"
)

var (
	ErrDuplicateChord = errors.New("chord bound twice")
	ErrEmptySymbol    = errors.New("chord bound to empty symbol")
	ErrUnknownLayout  = errors.New("unknown layout")
)

type Table struct {
	name    string
	variant zone.Variant
	chords  map[model.Word]model.Symbol
}

type file struct {
	Name    string            `toml:"name" yaml:"name" json:"name"`
	Variant string            `toml:"variant" yaml:"variant" json:"variant"`
	Chords  map[string]string `toml:"chords" yaml:"chords" json:"chords"`
}

// New copies chords into a table.
func New(name string, v zone.Variant, chords map[model.Word]model.Symbol) (*Table, error) {
	t := &Table{name: name, variant: v, chords: make(map[model.Word]model.Symbol, len(chords))}
	for w, s := range chords {
		if strings.TrimSpace(string(s)) == "" {
			return nil, fmt.Errorf("%w: %s", ErrEmptySymbol, model.FormatWord(w))
		}
		t.chords[w] = s
	}
	return t, nil
}

func Parse(format string, data []byte) (*Table, error) {
	var f file
	if err := util.Decode(format, data, &f); err != nil {
		return nil, err
	}

	v := zone.Three
	if f.Variant != "" {
		var err error
		if v, err = zone.ParseVariant(f.Variant); err != nil {
			return nil, err
		}
	}

	chords := make(map[model.Word]model.Symbol, len(f.Chords))
	for key, sym := range f.Chords {
		w, err := model.ParseWord(key)
		if err != nil {
			return nil, err
		}
		if _, ok := chords[w]; ok {
			return nil, fmt.Errorf("%w: %s (%q)", ErrDuplicateChord, model.FormatWord(w), key)
		}
		chords[w] = model.Symbol(sym)
	}
	return New(f.Name, v, chords)
}

func Load(path string) (*Table, error) {
	format, err := util.Format(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read chord table: %w", err)
	}
	t, err := Parse(format, data)
	if err != nil {
		return nil, fmt.Errorf("chord table %s: %w", path, err)
	}
	if t.name == "" {
		t.name = path
	}
	return t, nil
}

// Resolve returns a built-in layout by name, otherwise loads a file.
func Resolve(nameOrPath string) (*Table, error) {
	if t, err := Builtin(nameOrPath); err == nil {
		return t, nil
	}
	return Load(nameOrPath)
}

func (t *Table) Lookup(w model.Word) (model.Symbol, bool) {
	s, ok := t.chords[w]
	return s, ok
}

func (t *Table) Name() string { return t.name }

func (t *Table) Variant() zone.Variant { return t.variant }

func (t *Table) Len() int { return len(t.chords) }

// Words lists the bound words in ascending order.
func (t *Table) Words() []model.Word {
	return util.GetKeys(t.chords)
}
