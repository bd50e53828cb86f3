package sim

import (
	"image/color"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
	"github.com/veandco/go-sdl2/sdl"
)

// Theme is how the simulated panel is painted.
type Theme struct {
	LitColor   sdl.Color // pixels that are on
	UnlitColor sdl.Color // pixels that are off
	BezelColor sdl.Color // window area around the panel
}

// ThemeFor returns the colours of a panel preset.
func ThemeFor(p display.Panel) Theme {
	return Theme{
		LitColor:   rgbaToColor(p.Lit),
		UnlitColor: rgbaToColor(p.Unlit),
		BezelColor: rgbaToColor(p.Bezel),
	}
}

// HexToColor converts 0xRRGGBB to an opaque colour.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}

func rgbaToColor(c color.RGBA) sdl.Color {
	return sdl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
