// Package script replays recorded ticks against a chord engine, standing
// in for the scheduler of a VR runtime.
package script

import (
	"fmt"

	"github.com/jsphweid/vivechord/chord"
	"github.com/jsphweid/vivechord/model"
	"github.com/jsphweid/vivechord/util"
)

// A Report is one device's input for one tick.
type Report struct {
	Device  int           `yaml:"device" json:"device"`
	Pressed bool          `yaml:"pressed" json:"pressed"`
	Touches []model.Touch `yaml:"touches" json:"touches"`
}

// A Tick lists reports in arrival order.
type Tick struct {
	Reports []Report `yaml:"reports" json:"reports"`
}

type Script struct {
	Name  string `yaml:"name" json:"name"`
	Ticks []Tick `yaml:"ticks" json:"ticks"`
}

func Load(path string) (*Script, error) {
	var s Script
	if err := util.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return &s, nil
}

// Devices lists the device indexes the script reports for.
func (s *Script) Devices() []int {
	seen := make(map[int]bool)
	for _, t := range s.Ticks {
		for _, r := range t.Reports {
			seen[r.Device] = true
		}
	}
	return util.GetKeys(seen)
}

type Step struct {
	Tick   int
	Report Report
	chord.Result
}

// Run feeds every report to e in order and returns the updates that closed
// a tick.
func Run(e *chord.Engine, s *Script) ([]Step, error) {
	var steps []Step
	for i, t := range s.Ticks {
		for _, r := range t.Reports {
			res, err := e.Update(model.Handle(r.Device), r.Touches, r.Pressed)
			if err != nil {
				return steps, fmt.Errorf("tick %d: %w", i, err)
			}
			if res.Evaluated {
				steps = append(steps, Step{Tick: i, Report: r, Result: res})
			}
		}
	}
	return steps, nil
}
