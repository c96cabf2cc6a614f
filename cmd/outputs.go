package cmd

import (
	"log/slog"

	"github.com/jsphweid/vivechord/config"
	"github.com/jsphweid/vivechord/constants"
	"github.com/jsphweid/vivechord/midi"
	"github.com/jsphweid/vivechord/output"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // autoregisters driver
)

// Outputs holds the chord destinations shared by every session of the
// process.
type Outputs struct {
	logger  *slog.Logger
	history *output.History
	midi    *midi.Sink
}

func OpenOutputs(cfg *config.Config, logger *slog.Logger) (*Outputs, error) {
	o := &Outputs{logger: logger}
	if cfg.History != "" {
		h, err := output.OpenHistory(cfg.History)
		if err != nil {
			return nil, err
		}
		o.history = h
	}

	if cfg.MidiPort >= 0 {
		s, err := midi.Open(cfg.MidiPort, 0, constants.DefaultMidiHold)
		if err != nil {
			o.Close()
			return nil, err
		}
		o.midi = s
		logger.Info("midi output", "port", cfg.MidiPort)
	}
	return o, nil
}

// Sink returns the destinations for the chords of one session.
func (o *Outputs) Sink(session string) output.Sink {
	sinks := output.Multi{output.Log{Logger: o.logger.With("session", session)}}
	if o.history != nil {
		sinks = append(sinks, o.history.Session(session))
	}
	if o.midi != nil {
		sinks = append(sinks, o.midi)
	}
	return sinks
}

func (o *Outputs) History() *output.History {
	return o.history
}

func (o *Outputs) Close() error {
	if o.history != nil {
		return o.history.Close()
	}
	return nil
}
