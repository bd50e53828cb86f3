package rotamenu

import (
	"math"
	"strconv"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/values"
)

type valueMode uint8

const (
	displaying valueMode = iota
	adjusting
	liveAdjusting
)

func (m valueMode) String() string {
	switch m {
	case adjusting:
		return "adjusting"
	case liveAdjusting:
		return "live_adjusting"
	default:
		return "displaying"
	}
}

// ValueMenuItem mirrors one live value and lets the user edit it.
//
// Confirm-style fields hold a tentative value while the encoder turns and
// produce one command when the button is pressed. Live fields produce a
// command on every step and the button only ends editing. Either way the
// value is clamped to the field's range and the command is left for the
// caller to collect with TakeCommand.
type ValueMenuItem struct {
	itemBase
	index        uint
	currentValue float64
	decimals     uint8
	adjustable   bool
	mode         valueMode
	error        bool
	rules        values.Rules

	cmd        internal.Buffer
	hasPending bool

	pool *Pool[ValueMenuItem]
}

func (v *ValueMenuItem) Draw(d Display, maxWidth int16, highlighted bool, offset int16) {
	if !v.IsVisible() {
		return
	}
	v.refresh()
	if !v.needsDraw(highlighted) {
		return
	}

	editing := v.mode != displaying
	v.printAligned(d, v.text(), offset, maxWidth, highlighted && !editing)
	if editing {
		// underline marks edit mode
		right := v.rightEdge(maxWidth)
		d.Fill(v.column, v.row-offset+d.FontHeight(v.font)-1, right-v.column, 1, true)
	}
	v.drawn(highlighted)
}

func (v *ValueMenuItem) UpdateWidth(Display) {
	if v.width == 0 {
		v.width = constants.DefaultValueWidth
	}
}

// Select enters edit mode. It never returns a command.
func (v *ValueMenuItem) Select() (string, bool) {
	if v.mode != displaying || !v.CanAdjust() {
		return "", false
	}
	v.currentValue = v.rules.Clamp(v.currentValue)
	if v.rules.Live {
		v.mode = liveAdjusting
	} else {
		v.mode = adjusting
	}
	v.hasPending = false
	v.changed = true
	return "", false
}

func (v *ValueMenuItem) CanAdjust() bool {
	v.refresh()
	if !v.adjustable || v.error || v.env.Values == nil {
		return false
	}
	r, ok := v.env.Values.Rules(v.index)
	if !ok || r.ReadOnly || r.Command == "" {
		return false
	}
	v.rules = r
	return true
}

func (v *ValueMenuItem) Adjust(clicks int) bool {
	if v.mode == displaying {
		return true
	}
	v.refresh()
	if v.error {
		// the value went away while editing; drop the edit
		v.cancel()
		return true
	}

	if clicks == 0 {
		if v.mode == adjusting {
			v.setPending()
		}
		v.mode = displaying
		v.changed = true
		return true
	}

	next := v.rules.Clamp(v.currentValue + float64(clicks)*v.rules.StepSize())
	next = math.Round(next*1e6) / 1e6
	if next == 0 {
		next = 0 // no "-0.0"
	}
	if next != v.currentValue {
		v.currentValue = next
		v.changed = true
		if v.mode == liveAdjusting {
			v.setPending()
		}
	}
	return false
}

// TakeCommand returns the command produced by the last Adjust, if any, and
// clears it. At most one command is pending at a time.
func (v *ValueMenuItem) TakeCommand() (string, bool) {
	if !v.hasPending {
		return "", false
	}
	v.hasPending = false
	return v.cmd.String(), true
}

// IsSelectable reports whether the field can take focus: it was built
// adjustable and its rules accept edits. Read-only readings are skipped.
func (v *ValueMenuItem) IsSelectable() bool {
	if !v.adjustable || v.env.Values == nil {
		return false
	}
	r, ok := v.env.Values.Rules(v.index)
	return ok && !r.ReadOnly && r.Command != ""
}

func (v *ValueMenuItem) VisibilityRowOffset(current, rowHeight int16) int16 {
	return rowOffsetFor(v.row, v.row+rowHeight, current, v.env.ScreenRows)
}

// Value returns the number currently shown, tentative while editing.
func (v *ValueMenuItem) Value() float64 { return v.currentValue }

// Editing reports whether the field is in either edit mode.
func (v *ValueMenuItem) Editing() bool { return v.mode != displaying }

// Unavailable reports whether the referenced value is missing.
func (v *ValueMenuItem) Unavailable() bool { return v.error }

// Index returns the value index the field mirrors.
func (v *ValueMenuItem) Index() uint { return v.index }

// ReferencedItemNumber is the tool, heater or axis number within the value group.
func (v *ValueMenuItem) ReferencedItemNumber() uint { return values.ItemOf(v.index) }

func (v *ValueMenuItem) Group() values.Group { return values.GroupOf(v.index) }

func (v *ValueMenuItem) cancel() {
	v.mode = displaying
	v.hasPending = false
	v.changed = true
}

// refresh pulls the live value. While editing only the availability is
// updated so the tentative value is kept.
func (v *ValueMenuItem) refresh() {
	var (
		val float64
		ok  bool
	)
	if v.env.Values != nil {
		val, ok = v.env.Values.Value(v.index)
	}
	if v.error == ok {
		v.error = !ok
		v.changed = true
	}
	if ok && v.mode == displaying && val != v.currentValue {
		v.currentValue = val
		v.changed = true
	}
}

func (v *ValueMenuItem) text() string {
	if v.error {
		return v.env.messages().ValueUnavailable
	}
	return strconv.FormatFloat(v.currentValue, 'f', int(v.decimals), 64)
}

func (v *ValueMenuItem) setPending() {
	formatted := strconv.FormatFloat(v.currentValue, 'f', int(v.decimals), 64)
	v.cmd.Copy(v.rules.FormatCommand(v.index, formatted))
	if v.cmd.Truncated() {
		internal.GetInternalLogger().Warn("Value command truncated", "index", v.index)
	}
	v.hasPending = true
}

func (v *ValueMenuItem) release() { v.pool.Put(v.slot) }
