package cmd

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/vivechord/config"
	"github.com/jsphweid/vivechord/logging"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

var playScript = filepath.Join("..", "script", "testdata", "h_then_k.yaml")

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Table = "pie3"
	cfg.History = ""
	return cfg
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestPlayScript(t *testing.T) {
	var out bytes.Buffer
	err := Play(testConfig(t), logging.Discard(), playScript, "", &out)
	require.NoError(t, err)

	got := lines(out.String())
	assert := assert.New(t)
	require.Len(t, got, 3)
	assert.True(strings.HasPrefix(got[0], "tick 2: 0b11001 "))
	assert.True(strings.HasSuffix(got[0], " h"))
	assert.True(strings.HasPrefix(got[1], "tick 4: 0b11110 "))
	assert.True(strings.HasSuffix(got[1], " k"))
	assert.Equal("state: building", got[2])
}

func TestPlayRecordsHistory(t *testing.T) {
	cfg := testConfig(t)
	cfg.History = filepath.Join(t.TempDir(), "history.db")

	var out bytes.Buffer
	require.NoError(t, Play(cfg, logging.Discard(), playScript, "", &out))

	out.Reset()
	require.NoError(t, InspectHistory(cfg, 10, &out))
	got := lines(out.String())
	require.Len(t, got, 2)
	// newest first
	assert.True(t, strings.HasSuffix(got[0], " k"))
	assert.True(t, strings.HasSuffix(got[1], " h"))
}

func TestPlayWritesMIDIFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chords.mid")

	var out bytes.Buffer
	require.NoError(t, Play(testConfig(t), logging.Discard(), playScript, path, &out))

	f, err := smf.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Tracks, 1)
	// "h" and "k" have three and four zones
	assert.Len(t, f.Tracks[0], 2*3+2*4+1)
}

func TestInspectHistoryNeedsPath(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, InspectHistory(testConfig(t), 5, &out))
}

func TestInspectHistoryListsSessions(t *testing.T) {
	cfg := testConfig(t)
	cfg.History = filepath.Join(t.TempDir(), "history.db")

	h, err := output.OpenHistory(cfg.History)
	require.NoError(t, err)
	require.NoError(t, h.Session("abc").Emit(model.Chord{Word: 7, Symbol: "escape", At: time.Unix(100, 0)}))
	require.NoError(t, h.Close())

	var out bytes.Buffer
	require.NoError(t, InspectHistory(cfg, 5, &out))
	assert.Contains(t, out.String(), " abc 0b111")
	assert.Contains(t, out.String(), "escape")
}

func TestInspectTable(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Inspect(testConfig(t), "asetniop4", &out))

	got := lines(out.String())
	assert := assert.New(t)
	assert.Equal("asetniop4: four zones, 29 chords", got[0])
	assert.Len(got, 30)
	// lowest word first
	assert.True(strings.HasPrefix(got[1], "0b1 "))
	assert.Contains(got[1], "L[S] R[]")
	assert.True(strings.HasSuffix(got[1], " e"))
}

func TestInspectUnknownTable(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Inspect(testConfig(t), "no-such-table.toml", &out))
}

func TestLayout(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Layout(testConfig(t), &out))

	assert.Equal(t, []string{
		" 0 0b1          L.Bottom",
		" 1 0b10         L.Left",
		" 2 0b100        L.Right",
		" 3 0b1000       R.Bottom",
		" 4 0b10000      R.Left",
		" 5 0b100000     R.Right",
	}, lines(out.String()))
}

func TestLayoutFollowsVariant(t *testing.T) {
	cfg := testConfig(t)
	cfg.Variant = "four"
	cfg.Devices = 3

	var out bytes.Buffer
	require.NoError(t, Layout(cfg, &out))
	got := lines(out.String())
	assert.Len(t, got, 12)
	assert.True(t, strings.HasSuffix(got[11], "D2.E"))
}
