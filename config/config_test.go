package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/logging"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/jsphweid/vivechord/table"
	"github.com/jsphweid/vivechord/zone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	t.Setenv("VIVECHORD_TABLE", "")
	cfg, err := Load("")
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(2, cfg.Devices)
	assert.Equal("pie3", cfg.Table)
	assert.Equal(time.Millisecond, cfg.Haptic())
	assert.Equal(-1, cfg.MidiPort)
	assert.Equal(zone.Three, cfg.ResolveVariant(zone.Three))
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("VIVECHORD_TABLE", "asetniop4")
	t.Setenv("VIVECHORD_LISTEN", "127.0.0.1:9000")

	cfg := Default()
	assert.Equal(t, "asetniop4", cfg.Table)
	assert.Equal(t, "127.0.0.1:9000", cfg.Listen)
}

func TestLoadTOML(t *testing.T) {
	path := write(t, "vivechord.toml", `
variant = "four"
dead_zone = 0.5
multi_touch = false
stall_ticks = 30
table = "asetniop4"
midi_port = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(zone.Four, cfg.ResolveVariant(zone.Three))
	assert.Equal(0.5, cfg.DeadZone)
	require.NotNil(t, cfg.MultiTouch)
	assert.False(*cfg.MultiTouch)
	assert.Equal(30, cfg.StallTicks)
	assert.Equal(0, cfg.MidiPort)
	assert.Equal(2, cfg.Devices)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "vivechord.yaml", "devices: 3\nhaptic_us: 500\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Devices)
	assert.Equal(t, 500*time.Microsecond, cfg.Haptic())
	assert.Nil(t, cfg.MultiTouch)
}

func TestMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Devices)
}

func TestValidate(t *testing.T) {
	cases := map[string]string{
		"variant":   `variant = "hex"`,
		"dead zone": `dead_zone = 1.5`,
		"devices":   `devices = 0`,
		"overflow":  `devices = 17`,
		"negative":  `stall_ticks = -1`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(write(t, "bad.toml", body))
			assert.Error(t, err)
		})
	}
}

func TestNewEngine(t *testing.T) {
	cfg := Default()
	cfg.Devices = 3

	tbl, err := table.Builtin("asetniop4")
	require.NoError(t, err)

	sink := &output.Recorder{}
	e, err := cfg.NewEngine(tbl, sink, haptic.Nop{}, logging.Discard())
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]model.Handle{0, 1, 2}, e.Handles())
	// four zones per device from the table's variant
	assert.Equal("L.S", e.Layout()[0])
	assert.Equal("D2.E", e.Layout()[11])

	for _, h := range e.Handles() {
		_, err := e.Update(h, []model.Touch{{X: 0, Y: -0.9}}, h == 0)
		require.NoError(t, err)
	}
	for _, h := range e.Handles() {
		_, err := e.Update(h, nil, false)
		require.NoError(t, err)
	}
	assert.Equal([]model.Symbol{"e"}, sink.Symbols())
}
