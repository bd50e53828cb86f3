// Package bitmap decodes image resources into packed 1-bit bitmaps suitable
// for a monochrome panel.
//
// Three sources are understood, chosen by file extension:
//
//   - .svg  rasterized with oksvg/rasterx; painted (opaque) pixels are set
//   - .bmp  decoded with golang.org/x/image/bmp; dark pixels are set
//   - other the controller's raw format: one byte width, one byte height,
//     then height rows of (width+7)/8 bytes, most significant bit first
package bitmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"path"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/bmp"
)

var (
	// ErrFormat is returned when the resource is truncated or malformed.
	ErrFormat = errors.New("bitmap: invalid format")

	// ErrTooLarge is returned when a raw or BMP image exceeds the size limits.
	ErrTooLarge = errors.New("bitmap: image too large")
)

// Mono is a packed 1-bit bitmap. It satisfies image.Image so it can be
// handed to anything that draws images; set pixels read as color.White.
type Mono struct {
	width  int
	height int
	stride int
	bits   []byte
}

// New allocates an empty width x height bitmap.
func New(width, height int) *Mono {
	stride := (width + 7) / 8
	return &Mono{
		width:  width,
		height: height,
		stride: stride,
		bits:   make([]byte, stride*height),
	}
}

func (m *Mono) Width() int  { return m.width }
func (m *Mono) Height() int { return m.height }

// Set turns the pixel at (x, y) on or off. Out of range writes are ignored.
func (m *Mono) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return
	}
	i := y*m.stride + x/8
	mask := byte(0x80) >> (x % 8)
	if on {
		m.bits[i] |= mask
	} else {
		m.bits[i] &^= mask
	}
}

// IsSet reports whether the pixel at (x, y) is on.
func (m *Mono) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= m.width || y >= m.height {
		return false
	}
	return m.bits[y*m.stride+x/8]&(byte(0x80)>>(x%8)) != 0
}

func (m *Mono) ColorModel() color.Model { return color.GrayModel }

func (m *Mono) Bounds() image.Rectangle { return image.Rect(0, 0, m.width, m.height) }

func (m *Mono) At(x, y int) color.Color {
	if m.IsSet(x, y) {
		return color.White
	}
	return color.Black
}

// Decode reads a bitmap resource. name selects the decoder by extension.
// Raw and BMP images larger than maxWidth x maxHeight are rejected; SVG
// images are scaled down to fit.
func Decode(r io.Reader, name string, maxWidth, maxHeight int) (*Mono, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".svg":
		return decodeSVG(r, maxWidth, maxHeight)
	case ".bmp":
		return decodeBMP(r, maxWidth, maxHeight)
	default:
		return decodeRaw(r, maxWidth, maxHeight)
	}
}

func decodeRaw(r io.Reader, maxWidth, maxHeight int) (*Mono, error) {
	br := bufio.NewReader(r)

	var header [2]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrFormat, err)
	}

	width, height := int(header[0]), int(header[1])
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: zero dimension %dx%d", ErrFormat, width, height)
	}
	if width > maxWidth || height > maxHeight {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, width, height)
	}

	m := New(width, height)
	if _, err := io.ReadFull(br, m.bits); err != nil {
		return nil, fmt.Errorf("%w: rows: %v", ErrFormat, err)
	}
	return m, nil
}

func decodeBMP(r io.Reader, maxWidth, maxHeight int) (*Mono, error) {
	img, err := bmp.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	b := img.Bounds()
	if b.Dx() > maxWidth || b.Dy() > maxHeight {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooLarge, b.Dx(), b.Dy())
	}

	m := New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			g := color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray)
			m.Set(x, y, g.Y < 0x80)
		}
	}
	return m, nil
}

func decodeSVG(r io.Reader, maxWidth, maxHeight int) (*Mono, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	w, h := fitSize(icon.ViewBox.W, icon.ViewBox.H, maxWidth, maxHeight)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty view box", ErrFormat)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)

	m := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, rgba.RGBAAt(x, y).A >= 0x80)
		}
	}
	return m, nil
}

// fitSize scales a view box down (never up) to fit the limits, keeping aspect.
func fitSize(vw, vh float64, maxWidth, maxHeight int) (int, int) {
	if vw <= 0 || vh <= 0 {
		return 0, 0
	}
	scale := 1.0
	if vw > float64(maxWidth) {
		scale = float64(maxWidth) / vw
	}
	if vh*scale > float64(maxHeight) {
		scale = float64(maxHeight) / vh
	}
	return int(vw*scale + 0.5), int(vh*scale + 0.5)
}
