package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/vivechord/chord"
	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/jsphweid/vivechord/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayPie3(t *testing.T) {
	s, err := Load("testdata/h_then_k.yaml")
	require.NoError(t, err)
	require.Len(t, s.Ticks, 6)
	assert.Equal(t, []int{0, 1}, s.Devices())

	pie, err := table.Builtin("pie3")
	require.NoError(t, err)

	sink, pulses := &output.Recorder{}, &haptic.Recorder{}
	e := chord.New(pie, chord.WithSink(sink), chord.WithActuator(pulses, haptic.DefaultDuration))
	for _, d := range s.Devices() {
		_, err := e.Register(d)
		require.NoError(t, err)
	}

	steps, err := Run(e, s)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Len(steps, 6)
	assert.Equal([]model.Symbol{"h", "k"}, sink.Symbols())
	assert.Equal(model.Word(25), sink.Chords()[0].Word)
	assert.Equal(model.Word(30), sink.Chords()[1].Word)
	assert.Equal([]haptic.Pulse{{Device: 0, Duration: haptic.DefaultDuration}}, pulses.Pulses())

	assert.True(steps[2].Played)
	assert.True(steps[4].Played)
	assert.Equal(0, steps[4].Report.Device)
	assert.Equal(model.Building, steps[5].State)
}

func TestRunStopsOnUnknownDevice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	body := `{"ticks": [{"reports": [{"device": 0, "pressed": false}, {"device": 7, "pressed": false}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	s, err := Load(path)
	require.NoError(t, err)

	e := chord.New(&table.Table{})
	_, err = e.Register(0)
	require.NoError(t, err)

	_, err = Run(e, s)
	assert.ErrorIs(t, err, chord.ErrUnknownDevice)
}
