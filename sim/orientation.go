package sim

import "fmt"

// Orientation is the direction of the O-H bond relative to the anchor oxygen.
// It is one of exactly four values; the numeric labels are part of the output format.
type Orientation int

const (
	North Orientation = 0 // bond along +y
	East  Orientation = 1 // bond along +x
	South Orientation = 2 // bond along -y
	West  Orientation = 3 // bond along -x
)

// NumOrientations is the size of the orientation automaton.
const NumOrientations = 4

// Valid reports whether o is one of the four orientations.
func (o Orientation) Valid() bool {
	return o >= North && o <= West
}

func (o Orientation) String() string {
	switch o {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// transition is one edge of the orientation automaton. The displacement is
// expressed in units of the event's length scale: d1 for hops, b for rotations.
type transition struct {
	dx, dy float64
	next   Orientation
}

// hopTable pairs opposite orientations: each hop crosses to the neighbouring
// oxygen and is its own inverse.
var hopTable = [NumOrientations]transition{
	North: {dx: 0, dy: 1, next: South},
	East:  {dx: 1, dy: 0, next: West},
	South: {dx: 0, dy: -1, next: North},
	West:  {dx: -1, dy: 0, next: East},
}

// rotateTable[o][x2] pivots the bond a quarter turn about the anchor oxygen.
// Each entry combines the fixed leg (back toward the anchor) with the leg
// chosen by x2.
var rotateTable = [NumOrientations][2]transition{
	North: {{dx: 1, dy: -1, next: East}, {dx: -1, dy: -1, next: West}},
	East:  {{dx: -1, dy: 1, next: North}, {dx: -1, dy: -1, next: South}},
	South: {{dx: 1, dy: 1, next: East}, {dx: -1, dy: 1, next: West}},
	West:  {{dx: 1, dy: 1, next: North}, {dx: 1, dy: -1, next: South}},
}

// HopTarget returns the orientation reached by a hop from o.
// Panics if o is not Valid.
func HopTarget(o Orientation) Orientation {
	return hopTable[o].next
}

// RotateTargets returns the orientations reached by a rotation from o for
// x2 = 0 and x2 = 1 respectively. Panics if o is not Valid.
func RotateTargets(o Orientation) [2]Orientation {
	return [2]Orientation{rotateTable[o][0].next, rotateTable[o][1].next}
}
