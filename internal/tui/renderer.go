package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/lifeloop/internal/search"
)

const (
	clearScreen     = "\033[2J\033[H"
	hideCursor      = "\033[?25l"
	showCursor      = "\033[?25h"
	alternateScreen = "\033[?1049h"
	normalScreen    = "\033[?1049l"

	aliveCell = "█"
	deadCell  = " "
)

// Renderer draws replay frames as plain ANSI text. It implements search.Sink.
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

// Start switches to the alternate screen and hides the cursor.
func (r *Renderer) Start() error {
	_, err := io.WriteString(r.out, alternateScreen+hideCursor)
	return err
}

// Stop restores the cursor and the normal screen.
func (r *Renderer) Stop() error {
	_, err := io.WriteString(r.out, showCursor+normalScreen)
	return err
}

func (r *Renderer) Render(f search.Frame) error {
	var b strings.Builder
	b.WriteString(clearScreen)
	fmt.Fprintf(&b, "Generation: %d\n", f.Generation)

	cols := f.Grid.Width()
	b.WriteString("┌" + strings.Repeat("─", cols) + "┐\n")
	for _, row := range f.Grid.Rows() {
		b.WriteString("│")
		for _, ch := range row {
			if ch == '#' {
				b.WriteString(aliveCell)
			} else {
				b.WriteString(deadCell)
			}
		}
		b.WriteString("│\n")
	}
	b.WriteString("└" + strings.Repeat("─", cols) + "┘\n\n")

	fmt.Fprintf(&b, "Loop length: %d\n", f.LoopLength)
	b.WriteString("Press Ctrl+C to exit.\n")

	_, err := io.WriteString(r.out, b.String())
	return err
}

// Progress rewrites the current line with the attempt counter.
func (r *Renderer) Progress(a search.Attempt) {
	fmt.Fprintf(r.out, "\rAttempt: %d", a.Number)
}

// OnAttempt lets the renderer observe a search directly.
func (r *Renderer) OnAttempt(a search.Attempt) { r.Progress(a) }
