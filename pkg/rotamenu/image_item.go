package rotamenu

import (
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/bitmap"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
)

// ImageMenuItem draws a bitmap read from storage. Decoded bitmaps are shared
// through the environment's cache, so rebuilding a page does not re-read them.
type ImageMenuItem struct {
	itemBase
	fileName internal.Buffer
	failed   bool
	pool     *Pool[ImageMenuItem]
}

func (m *ImageMenuItem) Draw(d Display, maxWidth int16, highlighted bool, offset int16) {
	if !m.IsVisible() || !m.needsDraw(highlighted) {
		return
	}
	if img := m.load(); img != nil {
		right := maxWidth
		if m.width != 0 {
			right = m.rightEdge(maxWidth)
		}
		d.Bitmap(m.column, m.row-offset, img, right, false)
	}
	m.drawn(highlighted)
}

func (m *ImageMenuItem) UpdateWidth(Display) {
	if m.width != 0 {
		return
	}
	if img := m.load(); img != nil {
		m.width = int16(img.Width())
	}
}

// FileName returns the storage path of the bitmap.
func (m *ImageMenuItem) FileName() string { return m.fileName.String() }

func (m *ImageMenuItem) load() *bitmap.Mono {
	name := m.fileName.String()
	cache := m.env.bitmapCache()
	if img := cache.Get(name); img != nil {
		return img
	}
	if m.failed {
		return nil
	}

	logger := internal.GetInternalLogger()
	if m.env.Storage == nil {
		m.failed = true
		return nil
	}
	r, err := m.env.Storage.Open(name)
	if err != nil {
		logger.Warn("Failed to open image", "file", name, "error", err)
		m.failed = true
		return nil
	}
	defer r.Close()

	img, err := bitmap.Decode(r, name, constants.MaxImageWidth, constants.MaxImageHeight)
	if err != nil {
		logger.Warn("Failed to decode image", "file", name, "error", err)
		m.failed = true
		return nil
	}
	cache.Set(name, img)
	return img
}

func (m *ImageMenuItem) release() { m.pool.Put(m.slot) }
