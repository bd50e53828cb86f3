package rotamenu

import (
	"errors"
	"strings"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/storage"
)

// viewState is the cursor of one directory level, kept while browsing below it.
type viewState struct {
	firstVisible uint
	selected     uint
}

// FilesMenuItem browses a directory tree a fixed number of lines at a time.
//
// Positions are in listing coordinates: the directory's entries, preceded by
// a synthesized parent entry whenever the current directory is below the
// initial one. The selected entry is always inside the visible window and
// the window never runs past the end of the listing.
type FilesMenuItem struct {
	itemBase
	lines      uint
	command    string
	initialDir string
	dir        internal.Buffer

	entries   [constants.MaxDirectoryEntries]storage.Entry
	hardCount uint
	listErr   error

	firstVisible uint
	selected     uint

	views [constants.MaxDirectoryDepth]viewState
	depth int

	cmd  internal.Buffer
	pool *Pool[FilesMenuItem]
}

func (f *FilesMenuItem) Draw(d Display, maxWidth int16, highlighted bool, offset int16) {
	if !f.IsVisible() || !f.needsDraw(highlighted) {
		return
	}

	h := d.FontHeight(f.font)
	right := f.rightEdge(maxWidth)
	if right <= f.column {
		f.drawn(highlighted)
		return
	}
	count := f.listingCount()

	for line := uint(0); line < f.lines; line++ {
		y := f.row + int16(line)*h - offset
		idx := f.firstVisible + line
		inverted := highlighted && idx == f.selected && idx < count

		d.Fill(f.column, y, right-f.column, h, inverted)
		switch {
		case idx < count:
			d.Text(f.font, f.column, y, f.label(idx), right, inverted)
		case line == 0 && count == 0:
			d.Text(f.font, f.column, y, f.emptyMessage(), right, false)
		}
	}
	f.drawn(highlighted)
}

func (f *FilesMenuItem) UpdateWidth(d Display) {
	if f.width == 0 {
		w, _ := d.Size()
		f.width = w - f.column
	}
}

// Enter re-reads the current directory. Coming from below selects the last
// entry so that turning back up walks the listing in reverse.
func (f *FilesMenuItem) Enter(forward bool) {
	f.EnterDirectory()
	if forward {
		return
	}
	if count := f.listingCount(); count > 0 {
		f.selected = count - 1
		f.firstVisible = 0
		if count > f.lines {
			f.firstVisible = count - f.lines
		}
	}
}

// EnterDirectory lists the current directory and moves the cursor to the top.
// A listing error leaves the directory empty.
func (f *FilesMenuItem) EnterDirectory() {
	f.hardCount = 0
	f.listErr = nil
	f.firstVisible = 0
	f.selected = 0
	f.changed = true

	logger := internal.GetInternalLogger()
	if f.env.Storage == nil {
		f.listErr = storage.ErrNotMounted
		return
	}

	dir := f.dir.String()
	entries, err := f.env.Storage.List(dir)
	if err != nil {
		logger.Warn("Failed to list directory", "dir", dir, "error", err)
		f.listErr = err
		return
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name, ".") {
			continue
		}
		if f.hardCount == constants.MaxDirectoryEntries {
			logger.Warn("Directory listing truncated", "dir", dir, "limit", constants.MaxDirectoryEntries)
			break
		}
		f.entries[f.hardCount] = e
		f.hardCount++
	}
}

// Advance moves the selection one entry at a time, scrolling the window
// with it, and stops at either end of the listing.
func (f *FilesMenuItem) Advance(count int) int {
	n := f.listingCount()
	for count != 0 {
		if count > 0 {
			if f.selected+1 >= n {
				break
			}
			f.selected++
			if f.selected >= f.firstVisible+f.lines {
				f.firstVisible++
			}
			count--
		} else {
			if f.selected == 0 {
				break
			}
			f.selected--
			if f.selected < f.firstVisible {
				f.firstVisible--
			}
			count++
		}
		f.changed = true
	}
	return count
}

// Select opens the selected directory, goes up on the parent entry, or
// returns the command for the selected file.
func (f *FilesMenuItem) Select() (string, bool) {
	if f.listingCount() == 0 {
		return "", false
	}
	if f.InSubdirectory() && f.selected == 0 {
		f.up()
		return "", false
	}

	entry := f.entries[f.hardIndex(f.selected)]
	if entry.IsDir {
		f.down(entry.Name)
		return "", false
	}
	if f.command == "" {
		return "", false
	}

	expandTemplate(&f.cmd, f.command, f.join(entry.Name))
	if f.cmd.Truncated() {
		internal.GetInternalLogger().Warn("File command truncated", "command", f.command, "file", entry.Name)
	}
	return f.cmd.String(), true
}

func (f *FilesMenuItem) IsSelectable() bool { return true }

// VisibilityRowOffset keeps the selected line on screen.
func (f *FilesMenuItem) VisibilityRowOffset(current, rowHeight int16) int16 {
	top := f.row + int16(f.selected-f.firstVisible)*rowHeight
	return rowOffsetFor(top, top+rowHeight, current, f.env.ScreenRows)
}

// InSubdirectory reports whether the browser is below its initial directory,
// in which case the listing starts with the parent entry.
func (f *FilesMenuItem) InSubdirectory() bool {
	return f.dir.String() != f.initialDir
}

// CurrentDirectory returns the directory being shown.
func (f *FilesMenuItem) CurrentDirectory() string { return f.dir.String() }

// HardCount returns the number of real entries, excluding the parent entry.
func (f *FilesMenuItem) HardCount() uint { return f.hardCount }

// FirstVisible returns the listing index of the top visible line.
func (f *FilesMenuItem) FirstVisible() uint { return f.firstVisible }

// Selected returns the listing index of the selected entry.
func (f *FilesMenuItem) Selected() uint { return f.selected }

// Lines returns the number of on-screen lines.
func (f *FilesMenuItem) Lines() uint { return f.lines }

func (f *FilesMenuItem) listingCount() uint {
	if f.InSubdirectory() {
		return f.hardCount + 1
	}
	return f.hardCount
}

// hardIndex maps a listing index to an index into entries.
func (f *FilesMenuItem) hardIndex(idx uint) uint {
	if f.InSubdirectory() {
		return idx - 1
	}
	return idx
}

func (f *FilesMenuItem) label(idx uint) string {
	if f.InSubdirectory() && idx == 0 {
		return constants.ParentDirectoryLabel
	}
	e := f.entries[f.hardIndex(idx)]
	if e.IsDir {
		return e.Name + "/"
	}
	return e.Name
}

func (f *FilesMenuItem) emptyMessage() string {
	if errors.Is(f.listErr, storage.ErrNotMounted) {
		return f.env.messages().NoStorage
	}
	return f.env.messages().NoFilesFound
}

func (f *FilesMenuItem) join(name string) string {
	dir := f.dir.String()
	if dir == "/" {
		return "/" + name
	}
	return dir + "/" + name
}

func (f *FilesMenuItem) down(name string) {
	target := f.join(name)
	if len(target) > constants.MaxFilenameLength {
		internal.GetInternalLogger().Warn("Directory path too long", "dir", target, "limit", constants.MaxFilenameLength)
		return
	}

	state := viewState{firstVisible: f.firstVisible, selected: f.selected}
	if f.depth == len(f.views) {
		// keep the innermost levels; the outermost falls back to name lookup
		copy(f.views[:], f.views[1:])
		f.depth--
	}
	f.views[f.depth] = state
	f.depth++

	f.dir.Copy(target)
	f.EnterDirectory()
}

func (f *FilesMenuItem) up() {
	parent, leaf := storage.Parent(f.dir.String())
	f.dir.Copy(parent)
	f.EnterDirectory()

	count := f.listingCount()
	if f.depth > 0 {
		f.depth--
		state := f.views[f.depth]
		if state.selected < count {
			f.selected = state.selected
			f.firstVisible = min(state.firstVisible, f.selected)
			f.clampWindow(count)
			return
		}
	}

	for i := uint(0); i < f.hardCount; i++ {
		if f.entries[i].IsDir && f.entries[i].Name == leaf {
			if f.InSubdirectory() {
				i++
			}
			f.selected = i
			f.clampWindow(count)
			return
		}
	}
}

// clampWindow moves the window the least needed to contain the selection
// without running past the end of the listing.
func (f *FilesMenuItem) clampWindow(count uint) {
	if f.selected < f.firstVisible {
		f.firstVisible = f.selected
	}
	if f.selected >= f.firstVisible+f.lines {
		f.firstVisible = f.selected + 1 - f.lines
	}
	switch {
	case count <= f.lines:
		f.firstVisible = 0
	case f.firstVisible > count-f.lines:
		f.firstVisible = count - f.lines
	}
}

func (f *FilesMenuItem) release() { f.pool.Put(f.slot) }
