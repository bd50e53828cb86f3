package rotamenu

import (
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
)

// ButtonMenuItem runs a command when pressed. The command template may
// contain "{}" which is replaced by the button's file argument.
type ButtonMenuItem struct {
	itemBase
	text    string
	command string
	file    string
	cmd     internal.Buffer
	pool    *Pool[ButtonMenuItem]
}

func (b *ButtonMenuItem) Draw(d Display, maxWidth int16, highlighted bool, offset int16) {
	if !b.IsVisible() || !b.needsDraw(highlighted) {
		return
	}
	b.printAligned(d, b.text, offset, maxWidth, highlighted)
	b.drawn(highlighted)
}

func (b *ButtonMenuItem) UpdateWidth(d Display) {
	if b.width == 0 {
		// one extra column so the highlight bar extends past the last glyph
		b.width = d.TextWidth(b.font, b.text) + 1
	}
}

func (b *ButtonMenuItem) Select() (string, bool) {
	if b.command == "" {
		return "", false
	}
	expandTemplate(&b.cmd, b.command, b.file)
	if b.cmd.Truncated() {
		internal.GetInternalLogger().Warn("Button command truncated", "command", b.command, "file", b.file)
	}
	return b.cmd.String(), true
}

func (b *ButtonMenuItem) IsSelectable() bool { return true }

func (b *ButtonMenuItem) VisibilityRowOffset(current, rowHeight int16) int16 {
	return rowOffsetFor(b.row, b.row+rowHeight, current, b.env.ScreenRows)
}

func (b *ButtonMenuItem) Text() string { return b.text }

func (b *ButtonMenuItem) release() { b.pool.Put(b.slot) }
