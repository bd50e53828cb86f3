// Package display provides a 1-bit framebuffer that the menu engine draws
// into. It implements tinygo's drivers.Displayer so any tinyfont face can
// render onto it, and it tracks the dirty region so a panel driver only has
// to push what changed.
package display

import (
	"image"
	"image/color"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/bitmap"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	// On is the ink colour; any pixel written with a bright colour is lit.
	On = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	// Off is the background colour.
	Off = color.RGBA{A: 0xFF}
)

// FlushFunc receives the framebuffer and the region changed since the last flush.
type FlushFunc func(fb *Framebuffer, dirty image.Rectangle) error

// Framebuffer is an in-memory monochrome panel.
type Framebuffer struct {
	width  int16
	height int16
	pixels *bitmap.Mono
	fonts  []Font
	dirty  image.Rectangle
	flush  FlushFunc
}

var _ drivers.Displayer = (*Framebuffer)(nil)

// New creates a width x height framebuffer. With no fonts, DefaultFonts is used.
func New(width, height int16, fonts ...tinyfont.Fonter) *Framebuffer {
	if len(fonts) == 0 {
		fonts = DefaultFonts()
	}
	fb := &Framebuffer{
		width:  width,
		height: height,
		pixels: bitmap.New(int(width), int(height)),
	}
	for _, f := range fonts {
		fb.fonts = append(fb.fonts, NewFont(f))
	}
	return fb
}

// OnFlush installs the function called by Display.
func (fb *Framebuffer) OnFlush(fn FlushFunc) {
	fb.flush = fn
}

// Size implements drivers.Displayer.
func (fb *Framebuffer) Size() (x, y int16) {
	return fb.width, fb.height
}

// SetPixel implements drivers.Displayer. Bright colours light the pixel.
func (fb *Framebuffer) SetPixel(x, y int16, c color.RGBA) {
	fb.set(x, y, isLit(c))
}

// Display implements drivers.Displayer by handing the dirty region to the
// flush function, if any, and then clearing it.
func (fb *Framebuffer) Display() error {
	dirty := fb.dirty
	fb.dirty = image.Rectangle{}
	if fb.flush == nil || dirty.Empty() {
		return nil
	}
	return fb.flush(fb, dirty)
}

// Dirty returns the region written since the last Display call.
func (fb *Framebuffer) Dirty() image.Rectangle {
	return fb.dirty
}

// Pixel reports whether the pixel at (x, y) is lit.
func (fb *Framebuffer) Pixel(x, y int16) bool {
	return fb.pixels.IsSet(int(x), int(y))
}

// Clear turns every pixel off.
func (fb *Framebuffer) Clear() {
	fb.Fill(0, 0, fb.width, fb.height, false)
}

// Fill sets a rectangle to on or off, clipped to the panel.
func (fb *Framebuffer) Fill(x, y, w, h int16, on bool) {
	r := image.Rect(int(x), int(y), int(x)+int(w), int(y)+int(h)).Intersect(fb.bounds())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			fb.pixels.Set(px, py, on)
		}
	}
	fb.markDirty(r)
}

// FontHeight returns the line advance of font f.
func (fb *Framebuffer) FontHeight(f constants.FontNumber) int16 {
	return fb.font(f).Height()
}

// TextWidth returns the advance width of s in font f.
func (fb *Framebuffer) TextWidth(f constants.FontNumber, s string) int16 {
	return fb.font(f).Width(s)
}

// Text draws s with its top-left corner at (x, y), clipped on the right at
// right. Inverted text is drawn dark on a lit background. It returns the x
// coordinate following the text.
func (fb *Framebuffer) Text(f constants.FontNumber, x, y int16, s string, right int16, inverted bool) int16 {
	font := fb.font(f)
	if right > fb.width {
		right = fb.width
	}
	if s == "" || x >= right {
		return x
	}

	ink := On
	if inverted {
		ink = Off
	}
	clip := &clipped{fb: fb, left: x, top: y, right: right, bottom: y + font.Height()}
	tinyfont.WriteLine(clip, font.face, x, y+font.ascent, s, ink)
	return x + font.Width(s)
}

// Bitmap copies img to (x, y), clipped on the right at right.
func (fb *Framebuffer) Bitmap(x, y int16, img image.Image, right int16, inverted bool) {
	b := img.Bounds()
	mono, isMono := img.(*bitmap.Mono)
	for iy := 0; iy < b.Dy(); iy++ {
		for ix := 0; ix < b.Dx(); ix++ {
			px := x + int16(ix)
			if px >= right {
				break
			}
			var on bool
			if isMono {
				on = mono.IsSet(ix, iy)
			} else {
				g := color.GrayModel.Convert(img.At(b.Min.X+ix, b.Min.Y+iy)).(color.Gray)
				on = g.Y >= 0x80
			}
			fb.set(px, y+int16(iy), on != inverted)
		}
	}
}

// Image returns a grayscale copy of the panel, lit pixels white.
func (fb *Framebuffer) Image() *image.Gray {
	img := image.NewGray(fb.bounds())
	for y := 0; y < int(fb.height); y++ {
		for x := 0; x < int(fb.width); x++ {
			if fb.pixels.IsSet(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// Bits exposes the packed panel memory, row-major, MSB first.
func (fb *Framebuffer) Bits() *bitmap.Mono {
	return fb.pixels
}

func (fb *Framebuffer) font(f constants.FontNumber) Font {
	if int(f) < len(fb.fonts) {
		return fb.fonts[f]
	}
	return fb.fonts[0]
}

func (fb *Framebuffer) bounds() image.Rectangle {
	return image.Rect(0, 0, int(fb.width), int(fb.height))
}

func (fb *Framebuffer) set(x, y int16, on bool) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return
	}
	fb.pixels.Set(int(x), int(y), on)
	fb.markDirty(image.Rect(int(x), int(y), int(x)+1, int(y)+1))
}

func (fb *Framebuffer) markDirty(r image.Rectangle) {
	if r.Empty() {
		return
	}
	fb.dirty = fb.dirty.Union(r)
}

func isLit(c color.RGBA) bool {
	return c.R >= 0x80 || c.G >= 0x80 || c.B >= 0x80
}

// clipped restricts drawing to a rectangle of the framebuffer.
type clipped struct {
	fb                       *Framebuffer
	left, top, right, bottom int16
}

func (c *clipped) Size() (x, y int16) { return c.fb.Size() }

func (c *clipped) SetPixel(x, y int16, col color.RGBA) {
	if x < c.left || x >= c.right || y < c.top || y >= c.bottom {
		return
	}
	c.fb.SetPixel(x, y, col)
}

func (c *clipped) Display() error { return nil }
