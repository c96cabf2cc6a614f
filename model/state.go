package model

// State of the chord machine. There is one per engine, shared by every
// device.
type State int

const (
	Building State = iota
	Playing
	Played
)

func (s State) String() string {
	switch s {
	case Building:
		return "building"
	case Playing:
		return "playing"
	case Played:
		return "played"
	}
	return "unknown"
}

type Event int

const (
	Pressed Event = iota
	ValueModified
	Released

	// ChordValueOutput is raised by the engine itself once a chord has
	// been looked up.
	ChordValueOutput
)

func (e Event) String() string {
	switch e {
	case Pressed:
		return "pressed"
	case ValueModified:
		return "value_modified"
	case Released:
		return "released"
	case ChordValueOutput:
		return "chord_value_output"
	}
	return "unknown"
}
