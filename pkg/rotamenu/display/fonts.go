package display

import (
	"image/color"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freemono"
	"tinygo.org/x/tinyfont/proggy"
)

// Font wraps a tinyfont face with the metrics the menu layout needs.
type Font struct {
	face    tinyfont.Fonter
	height  int16
	ascent  int16
	descent int16
}

// DefaultFonts returns the two faces used when none are configured:
// font 0 is a small proportional face, font 1 a larger monospace one.
func DefaultFonts() []tinyfont.Fonter {
	return []tinyfont.Fonter{
		&proggy.TinySZ8pt7b,
		&freemono.Bold9pt7b,
	}
}

// NewFont measures face. tinyfont draws relative to the baseline, so the
// ascent is found by rendering sample glyphs into a probe and recording how
// far above the baseline they reach.
func NewFont(face tinyfont.Fonter) Font {
	p := &probe{}
	tinyfont.WriteLine(p, face, 0, 0, "AMQ|gjpqy", On)

	height := int16(face.GetYAdvance())
	ascent := -p.minY
	if !p.hit || ascent <= 0 {
		ascent = height * 3 / 4
	}
	if ascent > height {
		ascent = height
	}

	return Font{
		face:    face,
		height:  height,
		ascent:  ascent,
		descent: p.maxY + 1,
	}
}

// Height is the line advance in pixels.
func (f Font) Height() int16 { return f.height }

// Ascent is the distance from the top of a line to the baseline.
func (f Font) Ascent() int16 { return f.ascent }

// Width is the advance width of s.
func (f Font) Width(s string) int16 {
	if s == "" {
		return 0
	}
	_, outbox := tinyfont.LineWidth(f.face, s)
	return int16(outbox)
}

// probe records the vertical extent of everything drawn into it.
type probe struct {
	hit        bool
	minY, maxY int16
}

func (p *probe) Size() (x, y int16) { return 0x3FFF, 0x3FFF }

func (p *probe) SetPixel(x, y int16, c color.RGBA) {
	if !p.hit {
		p.minY, p.maxY = y, y
		p.hit = true
		return
	}
	if y < p.minY {
		p.minY = y
	}
	if y > p.maxY {
		p.maxY = y
	}
}

func (p *probe) Display() error { return nil }
