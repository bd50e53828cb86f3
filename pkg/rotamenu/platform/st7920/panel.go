// Package st7920 provides the preset for the 128x64 ST7920 graphic LCD found
// on most 3D printer controller boards: white pixels on a blue backlight.
package st7920

import (
	"image/color"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
)

const Name = "st7920"

// Panel returns the ST7920 preset.
func Panel() display.Panel {
	return display.Panel{
		Name:   Name,
		Width:  128,
		Height: 64,
		Lit:    hexToRGBA(0xF0F4FF),
		Unlit:  hexToRGBA(0x1F3FBF),
		Bezel:  hexToRGBA(0x101010),
	}
}

func hexToRGBA(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xFF}
}
