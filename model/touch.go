package model

import "math"

// Handle identifies a registered device. It is the device index.
type Handle int

// Touch is one contact on a touch surface in normalized [-1,1] space.
type Touch struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

func (t Touch) DistanceSq() float64 {
	return t.X*t.X + t.Y*t.Y
}

func (t Touch) Distance() float64 {
	return math.Sqrt(t.DistanceSq())
}
