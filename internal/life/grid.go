package life

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"
)

// Grid is a toroidal field of cells stored in row-major order.
// Dimensions are fixed at creation.
type Grid struct {
	width, height int
	cells         []bool
}

// NewGrid returns an all-dead grid. Negative dimensions are treated as zero.
func NewGrid(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]bool, width*height),
	}
}

// ParseGrid builds a grid from rows of '#' or 'O' (alive) and '.' (dead).
// Blank lines are skipped; every row must have the same length.
func ParseGrid(text string) (*Grid, error) {
	var rows []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			rows = append(rows, line)
		}
	}
	if len(rows) == 0 {
		return NewGrid(0, 0), nil
	}

	g := NewGrid(len(rows[0]), len(rows))
	for r, row := range rows {
		if len(row) != g.width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformedPattern, r, len(row), g.width)
		}
		for c, ch := range row {
			switch ch {
			case '#', 'O':
				g.cells[r*g.width+c] = true
			case '.':
			default:
				return nil, fmt.Errorf("%w: unexpected %q at row %d", ErrMalformedPattern, ch, r)
			}
		}
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// wrap maps index+offset into [0, n) using Euclidean remainder.
func wrap(index, offset, n int) int {
	i := (index + offset) % n
	if i < 0 {
		i += n
	}
	return i
}

// Alive reports whether the cell at (row, col) is alive. Coordinates wrap.
func (g *Grid) Alive(row, col int) bool {
	if g.degenerate() {
		return false
	}
	return g.cells[wrap(row, 0, g.height)*g.width+wrap(col, 0, g.width)]
}

// Set changes the cell at (row, col). Coordinates wrap.
func (g *Grid) Set(row, col int, alive bool) {
	if g.degenerate() {
		return
	}
	g.cells[wrap(row, 0, g.height)*g.width+wrap(col, 0, g.width)] = alive
}

// Randomize sets every cell from src, one draw per cell in row-major order.
func (g *Grid) Randomize(src RandomSource) {
	for i := range g.cells {
		g.cells[i] = src.Bool()
	}
}

// CountAliveNeighbors counts the live cells among the 8 toroidal neighbors
// of (row, col). A zero-sized grid has no neighbors.
func (g *Grid) CountAliveNeighbors(row, col int) int {
	if g.degenerate() {
		return 0
	}
	count := 0
	for dr := -1; dr <= 1; dr++ {
		r := wrap(row, dr, g.height)
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if g.cells[r*g.width+wrap(col, dc, g.width)] {
				count++
			}
		}
	}
	return count
}

// Next computes the following generation into a new grid. The receiver is
// only read.
func (g *Grid) Next() *Grid {
	next := NewGrid(g.width, g.height)
	for r := 0; r < g.height; r++ {
		for c := 0; c < g.width; c++ {
			next.cells[r*g.width+c] = Rule(g.cells[r*g.width+c], g.CountAliveNeighbors(r, c))
		}
	}
	return next
}

// Rule is Conway's B3/S23: a live cell survives with 2 or 3 live neighbors,
// a dead cell is born with exactly 3.
func Rule(alive bool, neighbors int) bool {
	return (alive && neighbors == 2) || neighbors == 3
}

func (g *Grid) IsEmpty() bool {
	return !slices.Contains(g.cells, true)
}

func (g *Grid) Population() int {
	n := 0
	for _, alive := range g.cells {
		if alive {
			n++
		}
	}
	return n
}

// Equal reports structural equality: same dimensions and identical cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil {
		return false
	}
	return g.width == other.width && g.height == other.height && slices.Equal(g.cells, other.cells)
}

func (g *Grid) Clone() *Grid {
	return &Grid{width: g.width, height: g.height, cells: slices.Clone(g.cells)}
}

// Key packs the dimensions and cells into a string. Two grids have the same
// key iff they are Equal.
func (g *Grid) Key() string {
	buf := make([]byte, 8+(len(g.cells)+7)/8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(g.width))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(g.height))
	for i, alive := range g.cells {
		if alive {
			buf[8+i/8] |= 1 << (i % 8)
		}
	}
	return string(buf)
}

// Rows renders each row with '#' for alive and '.' for dead cells.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var b strings.Builder
	for r := 0; r < g.height; r++ {
		b.Reset()
		for c := 0; c < g.width; c++ {
			if g.cells[r*g.width+c] {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		rows[r] = b.String()
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

func (g *Grid) degenerate() bool {
	return g.width == 0 || g.height == 0
}
