package midi

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/jsphweid/vivechord/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

func TestTicks(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(uint32(0), ticks(-time.Second))
	assert.Equal(uint32(960), ticks(500*time.Millisecond))
	assert.Equal(uint32(153), ticks(80*time.Millisecond))
}

func TestRecordingPlacesChordsInTime(t *testing.T) {
	start := time.Unix(1000, 0)
	r := NewRecording(80 * time.Millisecond)
	require.NoError(t, r.Emit(model.Chord{Word: 0b111, Symbol: "escape", At: start}))
	require.NoError(t, r.Emit(model.Chord{Word: 0b1, Symbol: "down", At: start.Add(time.Second)}))

	tr := r.SMF().Tracks[0]
	// three notes on and off, one note on and off, end of track
	require.Len(t, tr, 9)

	assert := assert.New(t)
	var deltas []uint32
	for _, ev := range tr {
		deltas = append(deltas, ev.Delta)
	}
	assert.Equal([]uint32{0, 0, 0, 153, 0, 0, 1920 - 153, 153, 0}, deltas)
	assert.True(tr[0].Message.Is(midi.NoteOnMsg))
	assert.True(tr[3].Message.Is(midi.NoteOffMsg))
	assert.True(tr[6].Message.Is(midi.NoteOnMsg))
}

func TestRecordingQueuesOverlappingChords(t *testing.T) {
	start := time.Unix(1000, 0)
	r := NewRecording(time.Second)
	require.NoError(t, r.Emit(model.Chord{Word: 0b1, At: start}))
	require.NoError(t, r.Emit(model.Chord{Word: 0b10, At: start.Add(10 * time.Millisecond)}))

	tr := r.SMF().Tracks[0]
	require.Len(t, tr, 5)
	// the second chord starts when the first is released
	assert.Equal(t, uint32(0), tr[2].Delta)
	assert.True(t, tr[2].Message.Is(midi.NoteOnMsg))
}

func TestRecordingWriteFile(t *testing.T) {
	r := NewRecording(80 * time.Millisecond)
	require.NoError(t, r.Emit(model.Chord{Word: 0b101, At: time.Now()}))

	path := filepath.Join(t.TempDir(), "chords.mid")
	require.NoError(t, r.WriteFile(path))

	f, err := smf.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, f.Tracks, 1)
	assert.Equal(t, Resolution, f.TimeFormat)
}
