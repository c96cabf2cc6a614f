package device

import (
	"fmt"

	"github.com/jsphweid/vivechord/mask"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/zone"
)

// Hand names the conventional devices of a two handed setup.
func Hand(index int) string {
	switch index {
	case 0:
		return "L"
	case 1:
		return "R"
	}
	return fmt.Sprintf("D%d", index)
}

// A Device holds one touch surface's quantizer and, while the surface is
// pressed, the touches seen so far. It has no chord logic of its own.
type Device struct {
	index      int
	pad        zone.Quantizer
	multiTouch bool

	pressed bool
	touches []model.Touch
}

func New(index int, pad zone.Quantizer, multiTouch bool) *Device {
	return &Device{index: index, pad: pad, multiTouch: multiTouch}
}

func (d *Device) Handle() model.Handle { return model.Handle(d.index) }

func (d *Device) Index() int { return d.index }

func (d *Device) Name() string { return Hand(d.index) }

// Buttons is the allocator of this device's zone bits.
func (d *Device) Buttons() *mask.Allocator[zone.Zone] { return d.pad.Zones() }

func (d *Device) All() model.Word { return d.pad.All() }

func (d *Device) Pressed() bool { return d.pressed }

func (d *Device) Touches() []model.Touch {
	res := make([]model.Touch, len(d.touches))
	copy(res, d.touches)
	return res
}

// Apply records one tick of input and returns the device's zone mask.
// Releasing clears the touch buffer.
func (d *Device) Apply(touches []model.Touch, pressed bool) model.Word {
	d.pressed = pressed
	if !pressed {
		d.touches = d.touches[:0]
		return 0
	}

	if d.multiTouch {
		d.touches = append(d.touches, touches...)
	} else {
		d.touches = append(d.touches[:0], touches...)
	}
	return zone.MaskForAll(d.pad, d.touches)
}

func (d *Device) Reset() {
	d.pressed = false
	d.touches = d.touches[:0]
}

func (d *Device) Describe(w model.Word) string {
	return d.Name() + d.Buttons().DescribeMask(w)
}
