package rotamenu

import (
	"fmt"
	"strings"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/router"
)

// Menu drives one page at a time from encoder input.
//
// Turning moves focus between selectable items, letting the focused item
// consume motion first (a file browser scrolls its own listing). Pressing
// selects; commands come back from items and are routed: "menu <page>"
// opens a page, "return" goes back to the previous one, and everything else
// goes to the CommandSink. A Menu is not safe for concurrent use.
type Menu struct {
	env     *Env
	display Display
	loader  PageLoader
	pools   *Pools
	sink    CommandSink
	router  *router.Router

	page    *Page
	focused Item
	editing bool
	offset  int16
	clear   bool
	err     error
}

// NewMenu creates a menu drawing on display with pages from loader.
// The environment is the one the pools were created with.
func NewMenu(display Display, loader PageLoader, pools *Pools, sink CommandSink) *Menu {
	m := &Menu{
		env:     pools.Env(),
		display: display,
		loader:  loader,
		pools:   pools,
		sink:    sink,
		router:  router.New(constants.MaxMenuDepth),
	}
	if m.env.ScreenRows == 0 {
		_, m.env.ScreenRows = display.Size()
	}

	m.router.
		Register(constants.CommandMenu, m.Push).
		Register(constants.CommandReturn, func(string) error { return m.Pop() }).
		Fallback(m.execute)
	return m
}

// Load discards the page history and shows the named page.
func (m *Menu) Load(name string) error {
	m.router.Stack().Clear()
	return m.open(name, router.Resume{})
}

// Push shows the named page, remembering the current one and its cursor.
// If the new page cannot be built the current page is rebuilt.
func (m *Menu) Push(name string) error {
	if name == "" {
		return NewInfrastructureError("push_page", ErrPageNotFound)
	}
	if m.page == nil {
		return m.Load(name)
	}

	prev, resume := m.page.Name, m.resume()
	if err := m.router.Stack().Push(prev, resume); err != nil {
		return NewInfrastructureError("push_page", err)
	}
	if err := m.open(name, router.Resume{}); err != nil {
		m.router.Stack().Pop()
		if rerr := m.open(prev, resume); rerr != nil {
			internal.GetInternalLogger().Error("Failed to restore page", "page", prev, "error", rerr)
		}
		return err
	}
	return nil
}

// Pop goes back to the page the last Push left, restoring its cursor.
// If that page cannot be built the current page is rebuilt and the
// history kept.
func (m *Menu) Pop() error {
	entry := m.router.Stack().Pop()
	if entry == nil {
		return ErrEmptyStack
	}
	if m.page == nil {
		return m.open(entry.Page, entry.Resume)
	}

	cur, resume := m.page.Name, m.resume()
	if err := m.open(entry.Page, entry.Resume); err != nil {
		if perr := m.router.Stack().Push(entry.Page, entry.Resume); perr != nil {
			internal.GetInternalLogger().Error("Failed to keep page history", "page", entry.Page, "error", perr)
		}
		if rerr := m.open(cur, resume); rerr != nil {
			internal.GetInternalLogger().Error("Failed to restore page", "page", cur, "error", rerr)
		}
		return err
	}
	return nil
}

// EncoderAction applies one tick of input: delta encoder clicks, then the
// button if pressed.
func (m *Menu) EncoderAction(delta int, pressed bool) Action {
	if m.page == nil {
		return ActionNone
	}
	m.ensureFocus()
	if m.focused == nil {
		return ActionNone
	}

	action := ActionNone
	if delta != 0 {
		action = m.turn(delta)
	}
	if pressed && m.focused != nil {
		action = m.press()
	}
	return action
}

// Refresh draws whatever changed since the last call. Scrolling, a page
// change or an item appearing or disappearing redraws the whole page.
func (m *Menu) Refresh() {
	if m.page == nil {
		return
	}
	m.ensureFocus()

	full := m.clear
	for item := range m.page.All() {
		if item.IsVisible() != item.base().shown {
			full = true
			break
		}
	}
	if m.focused != nil {
		offset := m.focused.VisibilityRowOffset(m.offset, m.display.FontHeight(m.focused.Font()))
		if offset != m.offset {
			m.offset = offset
			full = true
		}
	}

	w, h := m.display.Size()
	if full {
		m.display.Fill(0, 0, w, h, false)
		for item := range m.page.All() {
			item.SetChanged()
		}
		m.clear = false
	}

	for item := range m.page.All() {
		b := item.base()
		b.shown = item.IsVisible()
		if b.shown {
			item.Draw(m.display, w, item == m.focused, m.offset)
		}
	}
}

// Close releases the current page back to the pools.
func (m *Menu) Close() {
	if m.page != nil {
		m.page.Release()
		m.page = nil
	}
	m.focused = nil
	m.editing = false
}

func (m *Menu) Page() *Page { return m.page }

// Focused returns the item receiving input, or nil.
func (m *Menu) Focused() Item { return m.focused }

func (m *Menu) Editing() bool { return m.editing }

// Offset returns the vertical scroll offset in pixels.
func (m *Menu) Offset() int16 { return m.offset }

// Depth returns the number of pages that Pop can go back to.
func (m *Menu) Depth() int { return m.router.Stack().Len() }

// Err returns the error of the last command that failed, if any.
func (m *Menu) Err() error { return m.err }

func (m *Menu) open(name string, resume router.Resume) error {
	if m.page != nil {
		m.page.Release()
	}
	m.page, m.focused, m.editing = nil, nil, false

	page, err := m.loader.Load(name, m.pools)
	if err != nil {
		return NewInfrastructureError("load_page", fmt.Errorf("%s: %w", name, err))
	}
	if page.Name == "" {
		page.Name = name
	}

	m.page = page
	m.offset = resume.Offset
	m.clear = true
	for item := range page.All() {
		item.UpdateWidth(m.display)
		item.base().shown = false
	}

	target := m.nthFocusable(resume.Focus)
	if target == nil {
		target = m.nthFocusable(0)
	}
	m.setFocus(target, true)
	internal.GetInternalLogger().Debug("Opened menu page", "page", name, "items", page.Len(), "depth", m.Depth())
	return nil
}

func (m *Menu) turn(delta int) Action {
	if m.editing {
		finished := m.focused.Adjust(delta)
		action := ActionEditing
		if finished {
			m.editing = false
			action = ActionCommitted
		}
		if a, ok := m.collect(); ok {
			action = a
		}
		return action
	}

	remainder := m.focused.Advance(delta)
	action := ActionNone
	if remainder != delta {
		action = ActionMoved
	}
	for remainder != 0 {
		forward := remainder > 0
		next := m.neighbour(m.focused, forward)
		if next == nil {
			break
		}
		m.setFocus(next, forward)
		action = ActionMoved
		if forward {
			remainder--
		} else {
			remainder++
		}
		remainder = m.focused.Advance(remainder)
	}
	return action
}

func (m *Menu) press() Action {
	item := m.focused
	if m.editing {
		finished := item.Adjust(0)
		action := ActionEditing
		if finished {
			m.editing = false
			action = ActionCommitted
		}
		item.SetChanged()
		if a, ok := m.collect(); ok {
			action = a
		}
		return action
	}

	if cmd, ok := item.Select(); ok {
		return m.route(cmd)
	}
	if item.CanAdjust() {
		m.editing = true
		item.SetChanged()
		return ActionEditing
	}
	if item.base().changed {
		// the item handled the press itself, e.g. a directory change
		return ActionMoved
	}
	return ActionNone
}

// collect routes the command the focused item produced while editing.
func (m *Menu) collect() (Action, bool) {
	src, ok := m.focused.(commandSource)
	if !ok {
		return ActionNone, false
	}
	cmd, ok := src.TakeCommand()
	if !ok {
		return ActionNone, false
	}
	return m.route(cmd), true
}

func (m *Menu) route(cmd string) Action {
	logger := internal.GetInternalLogger()
	logger.Debug("Dispatching menu command", "command", cmd)

	verb, err := m.router.Dispatch(cmd)
	if err != nil {
		m.err = err
		logger.Warn("Menu command failed", "command", cmd, "error", err)
	}
	if strings.EqualFold(verb, constants.CommandMenu) || strings.EqualFold(verb, constants.CommandReturn) {
		if err != nil {
			return ActionNone
		}
		return ActionPageChanged
	}
	return ActionDispatched
}

func (m *Menu) execute(cmd string) error {
	if m.sink == nil {
		return fmt.Errorf("no command sink for %q", cmd)
	}
	return m.sink.Execute(cmd)
}

// ensureFocus moves focus to the first selectable item when the focused one
// is gone or hidden, abandoning any edit.
func (m *Menu) ensureFocus() {
	if m.focused != nil && m.isFocusable(m.focused) {
		return
	}
	if m.focused != nil && m.editing {
		m.focused.cancel()
	}
	m.editing = false
	m.setFocus(m.nthFocusable(0), true)
}

func (m *Menu) setFocus(item Item, forward bool) {
	if m.focused != nil {
		m.focused.SetChanged()
	}
	m.focused = item
	if item != nil {
		item.Enter(forward)
		item.SetChanged()
	}
}

func (m *Menu) isFocusable(item Item) bool {
	return item.IsSelectable() && item.IsVisible()
}

func (m *Menu) nthFocusable(n int) Item {
	if m.page == nil || n < 0 {
		return nil
	}
	for item := range m.page.All() {
		if !m.isFocusable(item) {
			continue
		}
		if n == 0 {
			return item
		}
		n--
	}
	return nil
}

// resume captures the cursor for the page stack.
func (m *Menu) resume() router.Resume {
	r := router.Resume{Offset: m.offset}
	i := 0
	for item := range m.page.All() {
		if item == m.focused {
			r.Focus = i
			break
		}
		if m.isFocusable(item) {
			i++
		}
	}
	return r
}

// neighbour returns the next focusable item after from in the given
// direction, wrapping around the page, or nil if from is the only one.
func (m *Menu) neighbour(from Item, forward bool) Item {
	var firstBefore, lastBefore, firstAfter, lastAfter Item
	seen := false
	for item := range m.page.All() {
		if item == from {
			seen = true
			continue
		}
		if !m.isFocusable(item) {
			continue
		}
		if seen {
			if firstAfter == nil {
				firstAfter = item
			}
			lastAfter = item
		} else {
			if firstBefore == nil {
				firstBefore = item
			}
			lastBefore = item
		}
	}

	if forward {
		if firstAfter != nil {
			return firstAfter
		}
		return firstBefore
	}
	if lastBefore != nil {
		return lastBefore
	}
	return lastAfter
}
