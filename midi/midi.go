// Package midi plays emitted chords as MIDI notes: bit i of the chord
// word sounds note Base+i.
package midi

import (
	"fmt"
	"time"

	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/util"
	"gitlab.com/gomidi/midi/v2"
)

// Base+63 stays within the MIDI note range.
const (
	Base     = 48
	Velocity = 100
)

type Sink struct {
	send    func(msg midi.Message) error
	channel uint8
	hold    time.Duration
}

// Open sends to the output port with the given number. A driver must be
// registered by the caller.
func Open(port int, channel uint8, hold time.Duration) (*Sink, error) {
	out, err := midi.OutPort(port)
	if err != nil {
		return nil, fmt.Errorf("midi out port %d: %w", port, err)
	}
	send, err := midi.SendTo(out)
	if err != nil {
		return nil, fmt.Errorf("midi send to %v: %w", out, err)
	}
	return New(send, channel, hold), nil
}

func New(send func(msg midi.Message) error, channel uint8, hold time.Duration) *Sink {
	return &Sink{send: send, channel: channel, hold: hold}
}

func Notes(w model.Word) []uint8 {
	var notes []uint8
	for _, bit := range util.BitsSet(w) {
		notes = append(notes, uint8(Base+bit))
	}
	return notes
}

func (s *Sink) Emit(c model.Chord) error {
	notes := Notes(c.Word)
	for _, n := range notes {
		if err := s.send(midi.NoteOn(s.channel, n, Velocity)); err != nil {
			return err
		}
	}

	// NOTE: blocks the tick for the hold time
	if s.hold > 0 {
		time.Sleep(s.hold)
	}

	for _, n := range notes {
		if err := s.send(midi.NoteOff(s.channel, n)); err != nil {
			return err
		}
	}
	return nil
}
