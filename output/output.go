// Package output receives the symbols of played chords.
package output

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/jsphweid/vivechord/model"
)

// A Sink accepts one chord per emitted symbol. Errors are reported by the
// caller and never change chord recognition.
type Sink interface {
	Emit(c model.Chord) error
}

type Nop struct{}

func (Nop) Emit(model.Chord) error { return nil }

type Log struct {
	Logger *slog.Logger
}

func (l Log) Emit(c model.Chord) error {
	mods, key := c.Symbol.Split()
	l.Logger.Info("chord", "word", model.FormatWord(c.Word), "zones", c.Described, "key", key, "mods", mods)
	return nil
}

type Recorder struct {
	mu     sync.Mutex
	chords []model.Chord
}

func (r *Recorder) Emit(c model.Chord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.chords = append(r.chords, c)
	return nil
}

func (r *Recorder) Chords() []model.Chord {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]model.Chord, len(r.chords))
	copy(res, r.chords)
	return res
}

func (r *Recorder) Symbols() []model.Symbol {
	var res []model.Symbol
	for _, c := range r.Chords() {
		res = append(res, c.Symbol)
	}
	return res
}

// Multi emits to every sink, even after one of them fails.
type Multi []Sink

func (m Multi) Emit(c model.Chord) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
