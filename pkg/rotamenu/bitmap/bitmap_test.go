package bitmap

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func TestDecodeRaw(t *testing.T) {
	// 10x2: first row starts with a set pixel, second row ends with one
	data := []byte{10, 2, 0x80, 0x00, 0x00, 0x40}

	m, err := Decode(bytes.NewReader(data), "logo.img", 128, 64)
	require.NoError(t, err)

	assert.Equal(t, 10, m.Width())
	assert.Equal(t, 2, m.Height())
	assert.True(t, m.IsSet(0, 0))
	assert.False(t, m.IsSet(1, 0))
	assert.True(t, m.IsSet(9, 1))
	assert.False(t, m.IsSet(8, 1))
}

func TestDecodeRawTruncated(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{16, 4, 0xff}), "logo", 128, 64)
	assert.ErrorIs(t, err, ErrFormat)

	_, err = Decode(bytes.NewReader([]byte{8}), "logo", 128, 64)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestDecodeRawTooLarge(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte{200, 8}), "logo", 128, 64)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDecodeBMP(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 3))
	for i := range src.Pix {
		src.Pix[i] = 0xff
	}
	src.SetGray(2, 1, color.Gray{Y: 0})

	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, src))

	m, err := Decode(&buf, "ICON.BMP", 128, 64)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.True(t, m.IsSet(2, 1))
	assert.False(t, m.IsSet(0, 0))
}

func TestDecodeSVGFits(t *testing.T) {
	svg := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64" width="64" height="64">
<rect x="0" y="0" width="64" height="64" fill="#000"/>
</svg>`

	m, err := Decode(bytes.NewReader([]byte(svg)), "icon.svg", 32, 32)
	require.NoError(t, err)

	assert.Equal(t, 32, m.Width())
	assert.Equal(t, 32, m.Height())
	assert.True(t, m.IsSet(16, 16))
}

func TestMonoSetOutOfRange(t *testing.T) {
	m := New(3, 3)
	m.Set(-1, 0, true)
	m.Set(3, 3, true)
	assert.False(t, m.IsSet(-1, 0))
	assert.Equal(t, color.Black, m.At(0, 0))

	m.Set(1, 1, true)
	assert.Equal(t, color.White, m.At(1, 1))
	m.Set(1, 1, false)
	assert.False(t, m.IsSet(1, 1))
}
