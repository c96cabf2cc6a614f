package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/vivechord/config"
	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/logging"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/jsphweid/vivechord/table"
	"github.com/jsphweid/vivechord/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(layoutCmd)
}

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Prints which zone owns each bit of the chord word",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}
		return Layout(cfg, os.Stdout)
	},
}

func Layout(cfg *config.Config, w io.Writer) error {
	t, err := table.Resolve(cfg.Table)
	if err != nil {
		return err
	}
	e, err := cfg.NewEngine(t, output.Nop{}, haptic.Nop{}, logging.Discard())
	if err != nil {
		return err
	}

	zones := e.Layout()
	for _, bit := range util.GetKeys(zones) {
		fmt.Fprintf(w, "%2d %-12s %s\n", bit, model.FormatWord(model.Word(1)<<bit), zones[bit])
	}
	return nil
}
