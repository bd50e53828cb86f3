package rotamenu

import (
	"fmt"
	"strings"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
)

// Item is one element of a menu page. The set of implementations is closed:
// TextMenuItem, ButtonMenuItem, ValueMenuItem, FilesMenuItem and ImageMenuItem.
type Item interface {
	// Draw renders the item at its row less offset, clipped at maxWidth.
	// It does nothing unless the item changed or its highlight differs from
	// the last draw, and clears the changed flag.
	Draw(d Display, maxWidth int16, highlighted bool, offset int16)

	// Select handles a button press while the item has focus. It returns a
	// command to execute, or false meaning "enter edit mode if CanAdjust,
	// otherwise ignore the press". The string is a copy and stays valid.
	Select() (string, bool)

	// Enter is called when focus moves onto the item; forward is true when
	// coming from the item above.
	Enter(forward bool)

	// Advance consumes encoder motion while focused but not editing and
	// returns the motion it did not use.
	Advance(count int) int

	CanAdjust() bool

	// Adjust drives edit mode. clicks == 0 is a button press. It returns true
	// when editing is over.
	Adjust(clicks int) bool

	// UpdateWidth measures the content once if no width was given.
	UpdateWidth(d Display)

	// VisibilityRowOffset returns the vertical scroll offset that puts the
	// item's focused line fully on screen, or current if it already is.
	VisibilityRowOffset(current, rowHeight int16) int16

	IsVisible() bool
	IsSelectable() bool
	Next() Item
	SetChanged()
	Width() int16
	Row() int16
	Font() constants.FontNumber

	base() *itemBase
	cancel()
	release()
}

// commandSource is implemented by items that produce commands outside Select.
type commandSource interface {
	TakeCommand() (string, bool)
}

// itemBase carries the geometry and flags every item shares and the
// default behaviour of the protocol.
type itemBase struct {
	row        int16
	column     int16
	width      int16
	align      constants.Alignment
	font       constants.FontNumber
	visibility constants.Visibility

	changed     bool
	highlighted bool
	shown       bool // visible at the last refresh

	next Item
	env  *Env
	slot int
}

func checkLayout(l Layout) {
	if !l.Align.Valid() {
		panic(fmt.Sprintf("rotamenu: invalid alignment %d", l.Align))
	}
}

func newItemBase(l Layout, env *Env, slot int) itemBase {
	return itemBase{
		row:        l.Row,
		column:     l.Column,
		width:      l.Width,
		align:      l.Align,
		font:       l.Font,
		visibility: l.Visibility,
		changed:    true,
		env:        env,
		slot:       slot,
	}
}

func (b *itemBase) Select() (string, bool)     { return "", false }
func (b *itemBase) Enter(bool)                 {}
func (b *itemBase) Advance(count int) int      { return count }
func (b *itemBase) CanAdjust() bool            { return false }
func (b *itemBase) Adjust(int) bool            { return true }
func (b *itemBase) UpdateWidth(Display)        {}
func (b *itemBase) IsSelectable() bool         { return false }
func (b *itemBase) Next() Item                 { return b.next }
func (b *itemBase) SetChanged()                { b.changed = true }
func (b *itemBase) Width() int16               { return b.width }
func (b *itemBase) Row() int16                 { return b.row }
func (b *itemBase) Font() constants.FontNumber { return b.font }
func (b *itemBase) base() *itemBase            { return b }
func (b *itemBase) cancel()                    {}

func (b *itemBase) VisibilityRowOffset(current, rowHeight int16) int16 {
	return current
}

func (b *itemBase) IsVisible() bool {
	return b.env.visible(b.visibility)
}

// needsDraw reports whether a draw with the given highlight would change pixels.
func (b *itemBase) needsDraw(highlighted bool) bool {
	return b.changed || highlighted != b.highlighted
}

func (b *itemBase) drawn(highlighted bool) {
	b.changed = false
	b.highlighted = highlighted
}

// rightEdge is the clip column for the item: its own right edge or the page margin.
func (b *itemBase) rightEdge(maxWidth int16) int16 {
	return min(maxWidth, b.column+b.width)
}

// printAligned clears the item's cell and prints text in it, honouring the
// alignment. Right aligned text ends one pixel short of the edge.
func (b *itemBase) printAligned(d Display, text string, offset, maxWidth int16, inverted bool) {
	right := b.rightEdge(maxWidth)
	if right <= b.column {
		return
	}
	y := b.row - offset
	d.Fill(b.column, y, right-b.column, d.FontHeight(b.font), inverted)

	x := b.column
	if b.align != constants.AlignLeft {
		if w := d.TextWidth(b.font, text); w < b.width {
			if b.align == constants.AlignRight {
				x += b.width - w - 1
			} else {
				x += (b.width - w) / 2
			}
		}
	}
	d.Text(b.font, x, y, text, right, inverted)
}

// rowOffsetFor returns the smallest change to current that brings the rows
// [top, bottom) inside a screen of screenRows pixels.
func rowOffsetFor(top, bottom, current, screenRows int16) int16 {
	if screenRows <= 0 {
		return current
	}
	switch {
	case top < current:
		return top
	case bottom > current+screenRows:
		return bottom - screenRows
	default:
		return current
	}
}

// expandTemplate writes template into buf with "{}" (or the older "#0")
// replaced by arg. A bare "menu" verb gets arg appended as its argument.
func expandTemplate(buf *internal.Buffer, template, arg string) {
	buf.Reset()
	for _, placeholder := range []string{"{}", "#0"} {
		if i := strings.Index(template, placeholder); i >= 0 {
			buf.Cat(template[:i])
			buf.Cat(arg)
			buf.Cat(template[i+len(placeholder):])
			return
		}
	}
	buf.Cat(template)
	if arg != "" && strings.EqualFold(strings.TrimSpace(template), constants.CommandMenu) {
		buf.CatByte(' ')
		buf.Cat(arg)
	}
}

// AppendToList appends item at the tail of the list starting at *root.
func AppendToList(root *Item, item Item) {
	if *root == nil {
		*root = item
		return
	}
	tail := *root
	for tail.Next() != nil {
		tail = tail.Next()
	}
	tail.base().next = item
}
