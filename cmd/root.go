package cmd

import (
	"log/slog"

	"github.com/jsphweid/vivechord/config"
	"github.com/jsphweid/vivechord/logging"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "vivechord",
	Short: "Two handed touch chord keyboard",
	Long: `vivechord turns the touch pads of two VR controllers into a chord
keyboard. Each pad is split into zones, the zones of both pads make up a
chord word and a finished chord is looked up in a chord table.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "vivechord.toml", "config file (toml, yaml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides the configured log level")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

// setup loads the config and the logger every command runs with.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
