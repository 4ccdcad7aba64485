package viz

import (
	"testing"

	"github.com/san-kum/lifeloop/internal/life"
)

func TestCanvas_Set(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(1, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got, want := c.Grid[0][0], rune(0x2800|0x1|0x80); got != want {
		t.Errorf("cell = %U, want %U", got, want)
	}
	if c.Grid[0][1] != brailleBlank {
		t.Errorf("out of range pixel changed cell to %U", c.Grid[0][1])
	}

	c.Clear()
	if want := string([]rune{brailleBlank, brailleBlank}); c.String() != want {
		t.Errorf("cleared canvas = %q, want %q", c.String(), want)
	}
}

func TestGridCanvas(t *testing.T) {
	g, err := life.ParseGrid(`
###
...
...
...
#..`)
	if err != nil {
		t.Fatal(err)
	}

	c := GridCanvas(g)
	if c.Width != 2 || c.Height != 2 {
		t.Fatalf("canvas is %dx%d, want 2x2", c.Width, c.Height)
	}
	if got, want := c.Grid[0][0], rune(0x2800|0x1|0x8); got != want {
		t.Errorf("top left = %U, want %U", got, want)
	}
	if got, want := c.Grid[0][1], rune(0x2800|0x1); got != want {
		t.Errorf("top right = %U, want %U", got, want)
	}
	if got, want := c.Grid[1][0], rune(0x2800|0x1); got != want {
		t.Errorf("bottom left = %U, want %U", got, want)
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("GetTheme(ocean) returned another theme")
	}
	if GetTheme("plaid").Name != "retro" {
		t.Error("unknown theme should fall back to retro")
	}
	last := Themes[len(Themes)-1]
	if nextTheme(last).Name != Themes[0].Name {
		t.Error("theme cycling should wrap around")
	}
}

func TestHexRoundTrip(t *testing.T) {
	r, g, b := parseHex("#0a80ff")
	if r != 10 || g != 128 || b != 255 {
		t.Errorf("parseHex = %d,%d,%d", r, g, b)
	}
	if got := hexColor(300, -4, 16); got != "#ff0010" {
		t.Errorf("hexColor = %s, want #ff0010", got)
	}
}
