// Package haptic delivers confirmation pulses to touch devices.
package haptic

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jsphweid/vivechord/model"
)

// DefaultDuration is the pulse length used for a played chord.
const DefaultDuration = 1000 * time.Microsecond

// An Actuator fires a pulse on a device. Pulses are fire and forget.
type Actuator interface {
	Pulse(h model.Handle, d time.Duration)
}

type Func func(h model.Handle, d time.Duration)

func (f Func) Pulse(h model.Handle, d time.Duration) { f(h, d) }

type Nop struct{}

func (Nop) Pulse(model.Handle, time.Duration) {}

// Log reports pulses to a logger, for hosts without haptic hardware.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Pulse(h model.Handle, d time.Duration) {
	l.Logger.Debug("haptic pulse", "device", int(h), "us", d.Microseconds())
}

type Pulse struct {
	Device   model.Handle
	Duration time.Duration
}

type Recorder struct {
	mu     sync.Mutex
	pulses []Pulse
}

func (r *Recorder) Pulse(h model.Handle, d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses = append(r.pulses, Pulse{h, d})
}

func (r *Recorder) Pulses() []Pulse {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]Pulse, len(r.pulses))
	copy(res, r.pulses)
	return res
}
