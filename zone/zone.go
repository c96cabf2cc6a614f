// Package zone quantizes analog touch positions into pressed angular
// zones of a circular touch surface.
package zone

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsphweid/vivechord/mask"
	"github.com/jsphweid/vivechord/model"
)

type Zone int

const (
	Bottom Zone = iota
	Left
	Right

	South
	West
	North
	East
)

func (z Zone) String() string {
	switch z {
	case Bottom:
		return "Bottom"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case South:
		return "S"
	case West:
		return "W"
	case North:
		return "N"
	case East:
		return "E"
	}
	return fmt.Sprintf("Zone(%d)", int(z))
}

type Variant string

const (
	Three Variant = "three"
	Four  Variant = "four"
)

func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case Three, "3":
		return Three, nil
	case Four, "4":
		return Four, nil
	}
	return "", fmt.Errorf("unknown zone variant %q", s)
}

// Zones lists the zones of a variant in bit order.
func (v Variant) Zones() []Zone {
	if v == Four {
		return []Zone{South, West, North, East}
	}
	return []Zone{Bottom, Left, Right}
}

func (v Variant) DefaultDeadZone() float64 {
	if v == Four {
		return 0.42
	}
	return 0.35
}

// MultiTouch reports whether devices using v accumulate every touch
// seen during a press rather than only the current tick's touches.
func (v Variant) MultiTouch() bool {
	return v == Four
}

// A Quantizer maps touches on one device to that device's zone bits.
type Quantizer interface {
	MaskFor(t model.Touch) model.Word
	All() model.Word
	Zones() *mask.Allocator[Zone]
}

// New builds the quantizer for the device at index. Its zones occupy bits
// [index*n, index*n+n) where n is the variant's zone count. A deadZone <= 0
// selects the variant default.
func New(v Variant, index int, deadZone float64) (Quantizer, error) {
	if index < 0 {
		return nil, fmt.Errorf("negative device index %d", index)
	}
	if deadZone <= 0 {
		deadZone = v.DefaultDeadZone()
	}

	zones := v.Zones()
	alloc, err := mask.New(uint(index*len(zones)), zones...)
	if err != nil {
		return nil, err
	}

	switch v {
	case Three:
		return &threeZone{alloc: alloc, deadZoneSq: deadZone * deadZone}, nil
	case Four:
		return &fourZone{alloc: alloc, deadZoneSq: deadZone * deadZone}, nil
	}
	return nil, fmt.Errorf("unknown zone variant %q", v)
}

// MaskForAll ORs the masks of the first and the last touch. Resolving three
// or four simultaneous zones from a touch history is not supported.
func MaskForAll(q Quantizer, touches []model.Touch) model.Word {
	switch len(touches) {
	case 0:
		return 0
	case 1:
		return q.MaskFor(touches[0])
	}
	return q.MaskFor(touches[0]) | q.MaskFor(touches[len(touches)-1])
}

// boundary tolerance for angles that land on a sector edge
const epsilon = 1e-9

// angle returns the angle of t from the north axis in [0, pi]. ok is false
// inside the dead zone, where the angle may be undefined.
func angle(t model.Touch, deadZoneSq float64) (theta float64, ok bool) {
	distSq := t.DistanceSq()
	if distSq <= deadZoneSq {
		return 0, false
	}
	cos := t.Y / math.Sqrt(distSq)
	return math.Acos(math.Max(-1, math.Min(1, cos))), true
}

type threeZone struct {
	alloc      *mask.Allocator[Zone]
	deadZoneSq float64
}

func (q *threeZone) All() model.Word              { return q.alloc.All() }
func (q *threeZone) Zones() *mask.Allocator[Zone] { return q.alloc }

func (q *threeZone) MaskFor(t model.Touch) model.Word {
	theta, ok := angle(t, q.deadZoneSq)
	if !ok {
		return q.alloc.All()
	}

	bottom := q.alloc.MustFor(Bottom)
	left := q.alloc.MustFor(Left)
	right := q.alloc.MustFor(Right)

	// ~north presses both upper zones
	if theta <= math.Pi/6+epsilon {
		return left | right
	}
	if theta >= 5*math.Pi/6-epsilon {
		return bottom
	}

	side := right
	if t.X <= 0 {
		side = left
	}
	if theta <= math.Pi/2+epsilon {
		return side
	}
	return side | bottom
}

type fourZone struct {
	alloc      *mask.Allocator[Zone]
	deadZoneSq float64
}

func (q *fourZone) All() model.Word              { return q.alloc.All() }
func (q *fourZone) Zones() *mask.Allocator[Zone] { return q.alloc }

func (q *fourZone) MaskFor(t model.Touch) model.Word {
	theta, ok := angle(t, q.deadZoneSq)
	if !ok {
		return q.alloc.All()
	}

	if theta <= math.Pi/4+epsilon {
		return q.alloc.MustFor(North)
	}
	if theta >= 3*math.Pi/4-epsilon {
		return q.alloc.MustFor(South)
	}
	if t.X > 0 {
		return q.alloc.MustFor(East)
	}
	return q.alloc.MustFor(West)
}
