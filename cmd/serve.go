package cmd

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsphweid/vivechord/chord"
	"github.com/jsphweid/vivechord/config"
	"github.com/jsphweid/vivechord/constants"
	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/server"
	"github.com/jsphweid/vivechord/table"
	"github.com/spf13/cobra"
)

var listenAddr string

func init() {
	serveCmd.Flags().StringVarP(&listenAddr, "listen", "l", "", "overrides the configured listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves chord sessions over HTTP",
	Long: `Serves chord sessions over HTTP. A VR runtime creates a session and
posts one update per device per tick.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.Listen = listenAddr
		}
		return serve(cfg, logger)
	},
}

func serve(cfg *config.Config, logger *slog.Logger) error {
	srv, closeAll, err := NewServer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeAll()

	logger.Info("listening", "addr", cfg.Listen, "table", cfg.Table)
	return http.ListenAndServe(cfg.Listen, srv.Handler())
}

// NewServer wires a session server for cfg. The returned func releases the
// chord outputs and the table watcher.
func NewServer(cfg *config.Config, logger *slog.Logger) (*server.Server, func() error, error) {
	current, stopWatch, err := tableSource(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	outs, err := OpenOutputs(cfg, logger)
	if err != nil {
		stopWatch()
		return nil, nil, err
	}

	factory := func(id string) (*chord.Engine, string, error) {
		// a reloaded table reaches new sessions only
		t := current()
		e, err := cfg.NewEngine(t, outs.Sink(id), haptic.Log{Logger: logger}, logger.With("session", id))
		if err != nil {
			return nil, "", err
		}
		return e, t.Name(), nil
	}

	closeAll := func() error {
		return errors.Join(stopWatch(), outs.Close())
	}
	return server.New(factory, logger), closeAll, nil
}

// tableSource returns the table for new engines. Table files are reloaded
// on change when watching is enabled.
func tableSource(cfg *config.Config, logger *slog.Logger) (func() *table.Table, func() error, error) {
	if cfg.Watch {
		if _, err := table.Builtin(cfg.Table); err == nil {
			logger.Warn("builtin tables are not watched", "table", cfg.Table)
		} else {
			w, err := table.Watch(cfg.Table, constants.ReloadDelay, logger)
			if err != nil {
				return nil, nil, err
			}
			return w.Table, w.Close, nil
		}
	}

	t, err := table.Resolve(cfg.Table)
	if err != nil {
		return nil, nil, err
	}
	return func() *table.Table { return t }, func() error { return nil }, nil
}
