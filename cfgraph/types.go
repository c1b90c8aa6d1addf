package cfgraph

import "fmt"

// Kind classifies a node's origin.
type Kind uint8

const (
	// Original nodes are opaque to the core; the host creates them
	// before handing the graph to a pass and may attach whatever
	// payload it likes alongside the id.
	Original Kind = iota
	// NoOp nodes are synthetic, inserted purely for structural
	// symmetry (e.g. to fill an empty branch arm).
	NoOp
	// Selection nodes are synthetic multi-way dispatches keyed on a
	// Flag.
	Selection
	// Assignment nodes are synthetic and write an integer Value into
	// Flag when control passes through them.
	Assignment
)

func (k Kind) String() string {
	switch k {
	case Original:
		return "Original"
	case NoOp:
		return "NoOp"
	case Selection:
		return "Selection"
	case Assignment:
		return "Assignment"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Flag is one of the three reserved synthetic variables the
// restructuring passes use to encode which structural path was taken.
type Flag uint8

const (
	// FlagA selects which tail a branch arm leaves through.
	FlagA Flag = iota
	// FlagB selects loop continue vs. break.
	FlagB
	// FlagC selects which loop entry/exit is active.
	FlagC
)

func (f Flag) String() string {
	switch f {
	case FlagA:
		return "A"
	case FlagB:
		return "B"
	case FlagC:
		return "C"
	default:
		return fmt.Sprintf("Flag(%d)", uint8(f))
	}
}
