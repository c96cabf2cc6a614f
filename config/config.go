// Package config loads the settings shared by the play and serve commands.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jsphweid/vivechord/chord"
	"github.com/jsphweid/vivechord/constants"
	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/jsphweid/vivechord/table"
	"github.com/jsphweid/vivechord/util"
	"github.com/jsphweid/vivechord/zone"
)

type Config struct {
	// Variant is "three" or "four". Empty uses the table's variant.
	Variant string `toml:"variant" yaml:"variant" json:"variant"`

	// DeadZone is the center radius pressing every zone; 0 uses the
	// variant default.
	DeadZone float64 `toml:"dead_zone" yaml:"dead_zone" json:"dead_zone"`

	// MultiTouch overrides the variant's touch accumulation.
	MultiTouch *bool `toml:"multi_touch" yaml:"multi_touch" json:"multi_touch"`

	Devices    int    `toml:"devices" yaml:"devices" json:"devices"`
	HapticUS   int    `toml:"haptic_us" yaml:"haptic_us" json:"haptic_us"`
	StallTicks int    `toml:"stall_ticks" yaml:"stall_ticks" json:"stall_ticks"`
	Table      string `toml:"table" yaml:"table" json:"table"`
	Watch      bool   `toml:"watch" yaml:"watch" json:"watch"`
	Listen     string `toml:"listen" yaml:"listen" json:"listen"`
	History    string `toml:"history" yaml:"history" json:"history"`

	// MidiPort < 0 disables MIDI output.
	MidiPort int `toml:"midi_port" yaml:"midi_port" json:"midi_port"`

	LogLevel  string `toml:"log_level" yaml:"log_level" json:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format" json:"log_format"`
}

func Default() *Config {
	return &Config{
		Devices:   constants.DefaultDevices,
		HapticUS:  constants.DefaultHapticMicros,
		Table:     constants.GetTable(),
		Listen:    constants.GetListenAddr(),
		History:   constants.GetHistoryPath(),
		MidiPort:  -1,
		LogLevel:  constants.GetLogLevel(),
		LogFormat: "text",
	}
}

// Load reads path over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	if err := util.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Variant != "" {
		if _, err := zone.ParseVariant(c.Variant); err != nil {
			return err
		}
	}
	if c.DeadZone < 0 || c.DeadZone >= 1 {
		return fmt.Errorf("dead_zone %v outside [0, 1)", c.DeadZone)
	}
	if c.Devices < 1 {
		return fmt.Errorf("devices must be at least 1, got %d", c.Devices)
	}
	// four zones per device is the widest variant
	if c.Devices*len(zone.Four.Zones()) > model.WordBits {
		return fmt.Errorf("%d devices do not fit a %d bit chord word", c.Devices, model.WordBits)
	}
	if c.HapticUS < 0 || c.StallTicks < 0 {
		return errors.New("haptic_us and stall_ticks must not be negative")
	}
	if c.Table == "" {
		return errors.New("no chord table configured")
	}
	return nil
}

// ResolveVariant prefers the configured variant over the table's.
func (c *Config) ResolveVariant(fallback zone.Variant) zone.Variant {
	if v, err := zone.ParseVariant(c.Variant); err == nil {
		return v
	}
	return fallback
}

func (c *Config) Haptic() time.Duration {
	return time.Duration(c.HapticUS) * time.Microsecond
}

// NewEngine builds an engine for t with every configured device
// registered, indexes 0 to Devices-1.
func (c *Config) NewEngine(t *table.Table, sink output.Sink, act haptic.Actuator, logger *slog.Logger) (*chord.Engine, error) {
	opts := []chord.Option{
		chord.WithVariant(c.ResolveVariant(t.Variant())),
		chord.WithDeadZone(c.DeadZone),
		chord.WithSink(sink),
		chord.WithActuator(act, c.Haptic()),
		chord.WithStallLimit(c.StallTicks),
		chord.WithLogger(logger),
	}
	if c.MultiTouch != nil {
		opts = append(opts, chord.WithMultiTouch(*c.MultiTouch))
	}

	e := chord.New(t, opts...)
	for i := 0; i < c.Devices; i++ {
		if _, err := e.Register(i); err != nil {
			return nil, err
		}
	}
	return e, nil
}
