package display

import "image/color"

// Panel describes a physical display: its resolution and how lit and unlit
// pixels look, for hosts that render the framebuffer somewhere other than
// the panel itself.
type Panel struct {
	Name   string
	Width  int16
	Height int16
	Lit    color.RGBA
	Unlit  color.RGBA
	Bezel  color.RGBA
}

// NewFramebuffer creates a framebuffer the size of the panel.
func (p Panel) NewFramebuffer() *Framebuffer {
	return New(p.Width, p.Height)
}
