package viz

import (
	"strings"

	"github.com/san-kum/lifeloop/internal/life"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const brailleBlank = 0x2800

// Canvas packs a pixel grid into braille characters, eight pixels per rune.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  max(w, 0),
		Height: max(h, 0),
		Grid:   make([][]rune, max(h, 0)),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
	}
	c.Clear()
	return c
}

// GridCanvas draws one pixel per live cell of g.
func GridCanvas(g *life.Grid) *Canvas {
	c := NewCanvas((g.Width()+1)/2, (g.Height()+3)/4)
	for r := 0; r < g.Height(); r++ {
		for col := 0; col < g.Width(); col++ {
			if g.Alive(r, col) {
				c.Set(col, r)
			}
		}
	}
	return c
}

// Set sets the pixel at (x, y). The canvas is (Width*2) x (Height*4)
// pixels; points outside it are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBlank
		}
	}
}

func (c *Canvas) String() string {
	rows := make([]string, len(c.Grid))
	for i, row := range c.Grid {
		rows[i] = string(row)
	}
	return strings.Join(rows, "\n")
}
