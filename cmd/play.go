package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/jsphweid/vivechord/config"
	"github.com/jsphweid/vivechord/constants"
	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/midi"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/jsphweid/vivechord/script"
	"github.com/jsphweid/vivechord/table"
	"github.com/spf13/cobra"
)

var smfPath string

func init() {
	playCmd.Flags().StringVar(&smfPath, "smf", "", "also records the played chords to this MIDI file")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play <script>",
	Short: "Replays a touch script",
	Long:  `Replays recorded device reports tick by tick and prints every chord played.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		return Play(cfg, logger, args[0], smfPath, os.Stdout)
	},
}

// Play replays the script at path and prints the chords played. With
// smfPath set the chords are also written to a MIDI file.
func Play(cfg *config.Config, logger *slog.Logger, path, smfPath string, w io.Writer) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	if devs := s.Devices(); len(devs) > 0 && devs[len(devs)-1] >= cfg.Devices {
		cfg.Devices = devs[len(devs)-1] + 1
	}

	t, err := table.Resolve(cfg.Table)
	if err != nil {
		return err
	}

	outs, err := OpenOutputs(cfg, logger)
	if err != nil {
		return err
	}
	defer outs.Close()

	id := s.Name
	if id == "" {
		id = uuid.NewString()
	}
	sink := outs.Sink(id)
	var rec *midi.Recording
	if smfPath != "" {
		rec = midi.NewRecording(constants.DefaultMidiHold)
		sink = output.Multi{sink, rec}
	}

	e, err := cfg.NewEngine(t, sink, haptic.Log{Logger: logger}, logger.With("session", id))
	if err != nil {
		return err
	}

	steps, err := script.Run(e, s)
	for _, st := range steps {
		if st.Output == nil {
			continue
		}
		fmt.Fprintf(w, "tick %d: %s %s %s\n", st.Tick, model.FormatWord(st.Output.Word), st.Output.Described, st.Output.Symbol)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "state: %v\n", e.State())

	if rec != nil {
		return rec.WriteFile(smfPath)
	}
	return nil
}
