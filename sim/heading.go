package sim

import "fmt"

// Heading is the direction the guard faces.
type Heading int

const (
	Up Heading = iota
	Right
	Down
	Left
)

// headingDeltas maps each heading to its (row, col) movement vector.
var headingDeltas = [...][2]int{
	Up:    {-1, 0},
	Right: {0, 1},
	Down:  {1, 0},
	Left:  {0, -1},
}

// TurnRight rotates the heading 90 degrees clockwise: Up → Right → Down → Left → Up.
func (h Heading) TurnRight() Heading {
	return (h + 1) % 4
}

// Delta returns the row and column offsets of one step in this heading.
func (h Heading) Delta() (dr, dc int) {
	d := headingDeltas[h]
	return d[0], d[1]
}

func (h Heading) String() string {
	switch h {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("heading(%d)", int(h))
}

// ParseHeading maps a start marker to its heading. Only '^' is recognized.
func ParseHeading(r rune) (Heading, bool) {
	if r == startMarker {
		return Up, true
	}
	return 0, false
}

// Advance returns the position one step ahead of p in heading h.
// The result may be out of bounds; callers check it against the grid.
func Advance(p Position, h Heading) Position {
	dr, dc := h.Delta()
	return p.Translate(dr, dc)
}
