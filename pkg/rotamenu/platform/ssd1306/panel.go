// Package ssd1306 provides the preset for the 128x64 SSD1306 OLED:
// lit pixels glow on a black glass.
package ssd1306

import (
	"image/color"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
)

const Name = "ssd1306"

// Panel returns the SSD1306 preset.
func Panel() display.Panel {
	return display.Panel{
		Name:   Name,
		Width:  128,
		Height: 64,
		Lit:    color.RGBA{R: 0x9F, G: 0xE8, B: 0xFF, A: 0xFF},
		Unlit:  color.RGBA{A: 0xFF},
		Bezel:  color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF},
	}
}
