package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/lifeloop/internal/life"
)

// GridToSVG draws one square per live cell on a dark background.
func GridToSVG(grid *life.Grid, cellSize float64) string {
	if grid == nil {
		return ""
	}

	width := float64(grid.Width()) * cellSize
	height := float64(grid.Height()) * cellSize

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	inset := cellSize * 0.1
	for r := 0; r < grid.Height(); r++ {
		for c := 0; c < grid.Width(); c++ {
			if !grid.Alive(r, c) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, float64(c)*cellSize+inset, float64(r)*cellSize+inset, cellSize-2*inset, cellSize-2*inset))
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}
