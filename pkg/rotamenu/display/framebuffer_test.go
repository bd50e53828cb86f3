package display

import (
	"image"
	"testing"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/bitmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countLit(fb *Framebuffer, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if fb.Pixel(int16(x), int16(y)) {
				n++
			}
		}
	}
	return n
}

func TestFontMetrics(t *testing.T) {
	fb := New(128, 64)

	h := fb.FontHeight(0)
	assert.Greater(t, h, int16(0))
	assert.Equal(t, int16(0), fb.TextWidth(0, ""))
	assert.Greater(t, fb.TextWidth(0, "Hello"), fb.TextWidth(0, "Hi"))

	// unknown fonts fall back to font 0
	assert.Equal(t, h, fb.FontHeight(42))
}

func TestTextDrawsInsideLine(t *testing.T) {
	fb := New(128, 64)

	end := fb.Text(0, 4, 10, "Menu", 128, false)
	assert.Equal(t, 4+fb.TextWidth(0, "Menu"), end)

	h := int(fb.FontHeight(0))
	assert.Greater(t, countLit(fb, image.Rect(4, 10, int(end), 10+h)), 0)
	assert.Equal(t, 0, countLit(fb, image.Rect(0, 0, 128, 10)))
	assert.Equal(t, 0, countLit(fb, image.Rect(0, 10+h, 128, 64)))
}

func TestTextClipsAtRightMargin(t *testing.T) {
	fb := New(128, 64)

	fb.Text(0, 0, 0, "WWWWWWWWWWWWWWWW", 20, false)
	assert.Equal(t, 0, countLit(fb, image.Rect(20, 0, 128, 64)))
	assert.Greater(t, countLit(fb, image.Rect(0, 0, 20, 64)), 0)
}

func TestInvertedText(t *testing.T) {
	fb := New(64, 32)
	h := fb.FontHeight(0)

	fb.Fill(0, 0, 64, h, true)
	lit := countLit(fb, image.Rect(0, 0, 64, int(h)))
	fb.Text(0, 0, 0, "OK", 64, true)

	assert.Less(t, countLit(fb, image.Rect(0, 0, 64, int(h))), lit)
}

func TestFillAndDirty(t *testing.T) {
	fb := New(32, 16)
	assert.True(t, fb.Dirty().Empty())

	fb.Fill(-4, -4, 8, 8, true)
	assert.Equal(t, image.Rect(0, 0, 4, 4), fb.Dirty())
	assert.Equal(t, 16, countLit(fb, image.Rect(0, 0, 32, 16)))

	var flushed image.Rectangle
	fb.OnFlush(func(_ *Framebuffer, dirty image.Rectangle) error {
		flushed = dirty
		return nil
	})
	require.NoError(t, fb.Display())
	assert.Equal(t, image.Rect(0, 0, 4, 4), flushed)
	assert.True(t, fb.Dirty().Empty())

	fb.Clear()
	assert.Equal(t, 0, countLit(fb, image.Rect(0, 0, 32, 16)))
}

func TestBitmap(t *testing.T) {
	fb := New(32, 16)
	bm := bitmap.New(4, 2)
	bm.Set(0, 0, true)
	bm.Set(3, 1, true)

	fb.Bitmap(10, 5, bm, 32, false)
	assert.True(t, fb.Pixel(10, 5))
	assert.True(t, fb.Pixel(13, 6))
	assert.False(t, fb.Pixel(11, 5))

	fb.Clear()
	fb.Bitmap(10, 5, bm, 12, true)
	assert.False(t, fb.Pixel(10, 5))
	assert.True(t, fb.Pixel(11, 5))
	assert.False(t, fb.Pixel(12, 5), "clipped at right margin")
}

func TestImageSnapshot(t *testing.T) {
	fb := New(8, 8)
	fb.SetPixel(2, 3, On)
	fb.SetPixel(4, 4, Off)

	img := fb.Image()
	assert.Equal(t, uint8(0xFF), img.GrayAt(2, 3).Y)
	assert.Equal(t, uint8(0), img.GrayAt(4, 4).Y)
}
