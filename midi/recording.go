package midi

import (
	"sync"
	"time"

	"github.com/jsphweid/vivechord/model"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// Recordings are written at 120 bpm.
const (
	Resolution   = smf.MetricTicks(960)
	beatDuration = 500 * time.Millisecond
)

func ticks(d time.Duration) uint32 {
	if d <= 0 {
		return 0
	}
	return uint32(d * time.Duration(Resolution) / beatDuration)
}

// A Recording collects played chords into a single track standard MIDI
// file, placed by the time each chord was played.
type Recording struct {
	mu    sync.Mutex
	hold  time.Duration
	start time.Time
	last  uint32
	track smf.Track
}

func NewRecording(hold time.Duration) *Recording {
	return &Recording{hold: hold}
}

func (r *Recording) Emit(c model.Chord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.start.IsZero() {
		r.start = c.At
	}
	at := ticks(c.At.Sub(r.start))
	// chords closer than the hold time queue up
	if at < r.last {
		at = r.last
	}

	notes := Notes(c.Word)
	delta := at - r.last
	for _, n := range notes {
		r.track.Add(delta, midi.NoteOn(0, n, Velocity))
		delta = 0
	}
	delta = ticks(r.hold)
	for _, n := range notes {
		r.track.Add(delta, midi.NoteOff(0, n))
		delta = 0
	}
	r.last = at + ticks(r.hold)
	return nil
}

// SMF returns the chords so far as a closed track.
func (r *Recording) SMF() *smf.SMF {
	r.mu.Lock()
	tr := make(smf.Track, len(r.track))
	copy(tr, r.track)
	r.mu.Unlock()

	tr.Close(0)
	return &smf.SMF{TimeFormat: Resolution, Tracks: []smf.Track{tr}}
}

func (r *Recording) WriteFile(path string) error {
	return r.SMF().WriteFile(path)
}
