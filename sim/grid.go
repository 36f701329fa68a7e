// Defines GridMap, the immutable layout the guard walks on, and its text parser.

package sim

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	emptyMarker    = '.'
	obstacleMarker = '#'
	startMarker    = '^'
)

// Position is a (row, col) cell coordinate.
type Position struct {
	Row int
	Col int
}

func (p Position) String() string {
	return fmt.Sprintf("(r%d, c%d)", p.Row, p.Col)
}

// Translate returns p shifted by dr rows and dc columns.
func (p Position) Translate(dr, dc int) Position {
	return Position{p.Row + dr, p.Col + dc}
}

// GridMap is an immutable grid layout: bounds, obstacles and the guard's start state.
//
// Derived maps built by WithAddedObstacle share the base cell slice and carry
// their additional obstacles in a small overlay, so a trial map costs O(overlay)
// to build and the base is never written after parsing.
type GridMap struct {
	height       int
	width        int
	blocked      []bool // row-major, shared between a base map and its derivations
	overlay      []Position
	start        Position
	startHeading Heading
}

// ParseGrid builds a GridMap from one string per row.
// Trailing carriage returns and trailing blank lines are ignored.
func ParseGrid(lines []string) (*GridMap, error) {
	rows := make([]string, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, strings.TrimRight(l, "\r"))
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedInput)
	}

	width := len(rows[0])
	if width == 0 {
		return nil, fmt.Errorf("%w: row 0 is empty", ErrMalformedInput)
	}

	g := &GridMap{
		height:  len(rows),
		width:   width,
		blocked: make([]bool, len(rows)*width),
	}
	foundStart := false
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrMalformedInput, r, len(row), width)
		}
		for c, ch := range []byte(row) {
			switch ch {
			case emptyMarker:
			case obstacleMarker:
				g.blocked[r*width+c] = true
			default:
				h, ok := ParseHeading(rune(ch))
				if !ok {
					return nil, fmt.Errorf("%w: unsupported character %q at %v", ErrMalformedInput, ch, Position{r, c})
				}
				if foundStart {
					return nil, fmt.Errorf("%w: second start marker at %v (first at %v)", ErrMalformedInput, Position{r, c}, g.start)
				}
				foundStart = true
				g.start = Position{r, c}
				g.startHeading = h
			}
		}
	}
	if !foundStart {
		return nil, fmt.Errorf("%w: no start marker %q found", ErrMalformedInput, startMarker)
	}
	return g, nil
}

// ReadGrid reads a grid from r, one row per line.
func ReadGrid(r io.Reader) (*GridMap, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading grid: %w", err)
	}
	return ParseGrid(lines)
}

func (g *GridMap) Height() int           { return g.height }
func (g *GridMap) Width() int            { return g.width }
func (g *GridMap) Start() Position       { return g.start }
func (g *GridMap) StartHeading() Heading { return g.startHeading }

// InBounds reports whether p lies inside the grid.
func (g *GridMap) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < g.height && p.Col >= 0 && p.Col < g.width
}

// IsObstacle reports whether p is blocked. Out-of-bounds positions are not obstacles.
func (g *GridMap) IsObstacle(p Position) bool {
	if !g.InBounds(p) {
		return false
	}
	if g.blocked[p.Row*g.width+p.Col] {
		return true
	}
	for _, o := range g.overlay {
		if o == p {
			return true
		}
	}
	return false
}

// ObstacleCount returns the number of blocked cells, including added obstacles.
func (g *GridMap) ObstacleCount() int {
	n := len(g.overlay)
	for _, b := range g.blocked {
		if b {
			n++
		}
	}
	return n
}

// WithAddedObstacle returns a new map identical to g plus an obstacle at p.
// g itself is left untouched.
func (g *GridMap) WithAddedObstacle(p Position) (*GridMap, error) {
	switch {
	case !g.InBounds(p):
		return nil, fmt.Errorf("%w: %v is out of bounds", ErrInvalidObstaclePlacement, p)
	case p == g.start:
		return nil, fmt.Errorf("%w: %v is the start cell", ErrInvalidObstaclePlacement, p)
	case g.IsObstacle(p):
		return nil, fmt.Errorf("%w: %v is already an obstacle", ErrInvalidObstaclePlacement, p)
	}

	overlay := make([]Position, len(g.overlay), len(g.overlay)+1)
	copy(overlay, g.overlay)
	derived := *g
	derived.overlay = append(overlay, p)
	return &derived, nil
}

// String renders the grid in its input format.
func (g *GridMap) String() string {
	var sb strings.Builder
	sb.Grow(g.height * (g.width + 1))
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			p := Position{r, c}
			switch {
			case p == g.start:
				sb.WriteByte(startMarker)
			case g.IsObstacle(p):
				sb.WriteByte(obstacleMarker)
			default:
				sb.WriteByte(emptyMarker)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
