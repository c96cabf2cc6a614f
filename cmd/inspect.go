package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jsphweid/vivechord/config"
	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/logging"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/jsphweid/vivechord/table"
	"github.com/spf13/cobra"
)

var (
	historyLimit int
	listBuiltins bool
)

func init() {
	inspectCmd.Flags().IntVar(&historyLimit, "history", 0, "prints this many recent chords from the history instead")
	inspectCmd.Flags().BoolVar(&listBuiltins, "builtins", false, "lists the builtin tables")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [table]",
	Short: "Lists a chord table",
	Long:  `Lists every chord of a builtin table or table file, by chord word.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		switch {
		case listBuiltins:
			for _, name := range table.BuiltinNames() {
				fmt.Println(name)
			}
			return nil
		case historyLimit > 0:
			return InspectHistory(cfg, historyLimit, os.Stdout)
		}

		name := cfg.Table
		if len(args) == 1 {
			name = args[0]
		}
		return Inspect(cfg, name, os.Stdout)
	},
}

func Inspect(cfg *config.Config, name string, w io.Writer) error {
	t, err := table.Resolve(name)
	if err != nil {
		return err
	}
	e, err := cfg.NewEngine(t, output.Nop{}, haptic.Nop{}, logging.Discard())
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s: %s zones, %d chords\n", t.Name(), t.Variant(), t.Len())
	for _, word := range t.Words() {
		sym, _ := t.Lookup(word)
		fmt.Fprintf(w, "%-12s %-32s %s\n", model.FormatWord(word), e.Describe(word), sym)
	}
	return nil
}

func InspectHistory(cfg *config.Config, limit int, w io.Writer) error {
	if cfg.History == "" {
		return errors.New("no chord history configured")
	}
	h, err := output.OpenHistory(cfg.History)
	if err != nil {
		return err
	}
	defer h.Close()

	entries, err := h.Recent(limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s %s %-12s %s\n", e.At.Format(time.RFC3339), e.Session, model.FormatWord(e.Word), e.Symbol)
	}
	return nil
}
