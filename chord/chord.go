// Package chord recognizes chords played across several touch devices.
//
// Every registered device reports once per tick through Update. When the
// last device of a tick has reported, the engine derives press, release and
// modify events per device, in registration order, and advances a single
// shared state machine. A chord is played on release: the word as it stood
// before the releasing tick is looked up and emitted.
package chord

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jsphweid/vivechord/device"
	"github.com/jsphweid/vivechord/haptic"
	"github.com/jsphweid/vivechord/logging"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/output"
	"github.com/jsphweid/vivechord/util"
	"github.com/jsphweid/vivechord/zone"
)

var (
	ErrDeviceIndexTaken = errors.New("device index already registered")
	ErrUnknownDevice    = errors.New("device not registered")
)

// A Table maps chord words to symbols. Words without an entry are valid
// chords that produce no output.
type Table interface {
	Lookup(w model.Word) (model.Symbol, bool)
}

type Engine struct {
	variant    zone.Variant
	deadZone   float64
	multiTouch bool
	table      Table
	sink       output.Sink
	actuator   haptic.Actuator
	pulse      time.Duration
	stallLimit int
	logger     *slog.Logger
	now        func() time.Time

	devices  []*device.Device
	byHandle map[model.Handle]*device.Device

	// devices heard from since the barrier last closed
	reported map[model.Handle]bool
	stalls   int

	word  model.Word
	prev  model.Word
	state model.State
}

type Option func(*Engine)

func WithVariant(v zone.Variant) Option {
	return func(e *Engine) {
		e.variant = v
		e.multiTouch = v.MultiTouch()
	}
}

// WithDeadZone sets the center radius pressing every zone. Values <= 0
// keep the variant default.
func WithDeadZone(r float64) Option {
	return func(e *Engine) { e.deadZone = r }
}

func WithMultiTouch(on bool) Option {
	return func(e *Engine) { e.multiTouch = on }
}

func WithSink(s output.Sink) Option {
	return func(e *Engine) { e.sink = s }
}

func WithActuator(a haptic.Actuator, d time.Duration) Option {
	return func(e *Engine) {
		e.actuator = a
		e.pulse = d
	}
}

// WithStallLimit resets the engine after n ticks in which the barrier
// never closed. A tick is counted as stalled when a device reports twice
// before every device has reported once. Zero disables the watchdog.
func WithStallLimit(n int) Option {
	return func(e *Engine) { e.stallLimit = n }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func New(t Table, opts ...Option) *Engine {
	e := &Engine{
		variant:    zone.Three,
		multiTouch: zone.Three.MultiTouch(),
		table:      t,
		sink:       output.Nop{},
		actuator:   haptic.Nop{},
		pulse:      haptic.DefaultDuration,
		logger:     logging.Discard(),
		now:        time.Now,
		byHandle:   make(map[model.Handle]*device.Device),
		reported:   make(map[model.Handle]bool),
		state:      model.Building,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Register adds the device at index. Its zones take the bits
// [index*n, index*n+n) of the chord word.
func (e *Engine) Register(index int) (model.Handle, error) {
	h := model.Handle(index)
	if _, ok := e.byHandle[h]; ok {
		return 0, fmt.Errorf("%w: %d", ErrDeviceIndexTaken, index)
	}

	pad, err := zone.New(e.variant, index, e.deadZone)
	if err != nil {
		return 0, fmt.Errorf("register device %d: %w", index, err)
	}

	d := device.New(index, pad, e.multiTouch)
	e.devices = append(e.devices, d)
	e.byHandle[h] = d

	e.logger.Info("device registered", "device", d.Name(), "zones", d.Describe(d.All()), "mask", model.FormatWord(d.All()))
	return h, nil
}

type Result struct {
	State model.State
	Word  model.Word

	// Evaluated is set when this update closed the barrier.
	Evaluated bool

	// Played is set when a chord completed on this update, mapped or not.
	Played bool
	Output *model.Chord
}

// Update stores a device's input for the current tick. The update that
// completes the tick evaluates it.
func (e *Engine) Update(h model.Handle, touches []model.Touch, pressed bool) (Result, error) {
	d, ok := e.byHandle[h]
	if !ok {
		return Result{}, fmt.Errorf("%w: %d", ErrUnknownDevice, int(h))
	}

	if e.reported[h] {
		e.stalls++
		if e.stallLimit > 0 && e.stalls >= e.stallLimit {
			e.logger.Warn("chord barrier stalled, resetting", "ticks", e.stalls, "pending", e.pending())
			e.Reset()
		}
	}

	e.word = e.word&^d.All() | d.Apply(touches, pressed)
	e.reported[h] = true

	if len(e.reported) != len(e.devices) {
		return Result{State: e.state, Word: e.word}, nil
	}
	for k := range e.reported {
		delete(e.reported, k)
	}
	e.stalls = 0

	res := e.evaluate()
	res.Evaluated = true
	return res, nil
}

func (e *Engine) evaluate() Result {
	res := Result{Word: e.word}
	if e.word != e.prev {
		res.Played, res.Output = e.advance()
	}
	e.prev = e.word
	res.State = e.state
	return res
}

func (e *Engine) advance() (bool, *model.Chord) {
	for _, d := range e.devices {
		for _, ev := range Events(e.prev&d.All(), e.word&d.All()) {
			e.state = Transition(e.state, ev)
		}
	}

	if e.state != model.Playing {
		return false, nil
	}

	out := e.play(e.prev)
	e.state = Transition(e.state, model.ChordValueOutput)

	for _, d := range e.devices {
		if d.Pressed() {
			e.actuator.Pulse(d.Handle(), e.pulse)
		}
	}
	return true, out
}

func (e *Engine) play(w model.Word) *model.Chord {
	described := e.Describe(w)
	sym, ok := e.table.Lookup(w)
	if !ok {
		e.logger.Debug("unbound chord", "word", model.FormatWord(w), "zones", described)
		return nil
	}

	c := model.Chord{Word: w, Symbol: sym, Described: described, At: e.now()}
	if err := e.sink.Emit(c); err != nil {
		e.logger.Error("chord output failed", "word", model.FormatWord(w), "symbol", string(sym), "err", err)
	}
	return &c
}

// Events compares one device's bits of the previous and current word.
func Events(prev, now model.Word) []model.Event {
	switch {
	case prev == 0 && now != 0:
		return []model.Event{model.Pressed}
	case prev != 0 && now == 0:
		return []model.Event{model.Released}
	case prev != now:
		return []model.Event{model.ValueModified}
	}
	return nil
}

// Transition is the state table of the chord machine. Pairs not listed
// leave the state unchanged.
func Transition(s model.State, ev model.Event) model.State {
	switch s {
	case model.Building:
		if ev == model.Released {
			return model.Playing
		}
	case model.Playing:
		if ev == model.ChordValueOutput {
			return model.Played
		}
	case model.Played:
		if ev == model.Pressed || ev == model.ValueModified || ev == model.Released {
			return model.Building
		}
	}
	return s
}

// Reset drops the chord word and every device's input and returns the
// machine to Building.
func (e *Engine) Reset() {
	e.word, e.prev = 0, 0
	e.state = model.Building
	e.stalls = 0
	for k := range e.reported {
		delete(e.reported, k)
	}
	for _, d := range e.devices {
		d.Reset()
	}
}

func (e *Engine) State() model.State { return e.state }

func (e *Engine) Word() model.Word { return e.word }

func (e *Engine) Handles() []model.Handle {
	res := make([]model.Handle, 0, len(e.devices))
	for _, d := range e.devices {
		res = append(res, d.Handle())
	}
	return res
}

func (e *Engine) pending() []int {
	var res []int
	for _, d := range e.devices {
		if !e.reported[d.Handle()] {
			res = append(res, d.Index())
		}
	}
	return res
}

// Describe renders w per device, e.g. "L[Bottom] R[Left,Right]".
func (e *Engine) Describe(w model.Word) string {
	parts := make([]string, 0, len(e.devices))
	for _, d := range e.devices {
		parts = append(parts, d.Describe(w))
	}
	return strings.Join(parts, " ")
}

// Layout lists every registered device's zone bits by bit position.
func (e *Engine) Layout() map[int]string {
	res := make(map[int]string)
	for _, d := range e.devices {
		b := d.Buttons()
		for _, z := range b.IDs() {
			for _, bit := range util.BitsSet(b.MustFor(z)) {
				res[bit] = d.Name() + "." + z.String()
			}
		}
	}
	return res
}

type Snapshot struct {
	State     model.State
	Word      model.Word
	Previous  model.Word
	Pending   []int
	Described string
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		State:     e.state,
		Word:      e.word,
		Previous:  e.prev,
		Pending:   e.pending(),
		Described: e.Describe(e.word),
	}
}
