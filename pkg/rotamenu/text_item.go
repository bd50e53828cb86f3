package rotamenu

// TextMenuItem is a fixed label.
type TextMenuItem struct {
	itemBase
	text string
	pool *Pool[TextMenuItem]
}

func (t *TextMenuItem) Draw(d Display, maxWidth int16, highlighted bool, offset int16) {
	if !t.IsVisible() || !t.needsDraw(highlighted) {
		return
	}
	t.printAligned(d, t.text, offset, maxWidth, false)
	t.drawn(highlighted)
}

func (t *TextMenuItem) UpdateWidth(d Display) {
	if t.width == 0 {
		t.width = d.TextWidth(t.font, t.text)
	}
}

func (t *TextMenuItem) Text() string { return t.text }

func (t *TextMenuItem) release() { t.pool.Put(t.slot) }
