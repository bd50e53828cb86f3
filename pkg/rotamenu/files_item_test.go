package rotamenu

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertWindowInvariant(t *testing.T, f *FilesMenuItem) {
	t.Helper()
	n := f.listingCount()
	if n == 0 {
		assert.Zero(t, f.Selected())
		assert.Zero(t, f.FirstVisible())
		return
	}
	assert.Less(t, f.Selected(), n)
	assert.LessOrEqual(t, f.FirstVisible(), f.Selected())
	assert.Less(t, f.Selected(), f.FirstVisible()+f.Lines())
	if n >= f.Lines() {
		assert.LessOrEqual(t, f.FirstVisible(), n-f.Lines(), "window runs past the end")
	} else {
		assert.Zero(t, f.FirstVisible())
	}
}

func TestFilesAdvanceScrollsWindow(t *testing.T) {
	rig := newTestRig(t)
	for _, name := range []string{"a.g", "b.g", "c.g"} {
		rig.writeFile(t, "/gcodes/"+name, "G28")
	}
	f := mustFiles(t, rig.pools, Layout{}, 2, `M32 "{}"`, "/gcodes")
	f.Enter(true)

	assert.Equal(t, uint(3), f.HardCount())
	assert.False(t, f.InSubdirectory())
	assert.Equal(t, uint(0), f.FirstVisible())
	assert.Equal(t, uint(0), f.Selected())

	assert.Equal(t, 0, f.Advance(1))
	assert.Equal(t, uint(1), f.Selected())
	assert.Equal(t, uint(0), f.FirstVisible())

	assert.Equal(t, 0, f.Advance(1))
	assert.Equal(t, uint(2), f.Selected())
	assert.Equal(t, uint(1), f.FirstVisible())

	// clamp at the end, the rest goes back to the caller
	assert.Equal(t, 3, f.Advance(3))
	assert.Equal(t, uint(2), f.Selected())

	assert.Equal(t, -2, f.Advance(-4))
	assert.Equal(t, uint(0), f.Selected())
	assert.Equal(t, uint(0), f.FirstVisible())
}

func TestFilesAdvanceInvariant(t *testing.T) {
	rig := newTestRig(t)
	for i := 0; i < 11; i++ {
		rig.writeFile(t, fmt.Sprintf("/gcodes/sub/f%02d.g", i), "")
	}
	rng := rand.New(rand.NewSource(7))

	for _, dir := range []string{"/gcodes", "/gcodes/sub"} {
		for lines := uint(1); lines <= 5; lines++ {
			f := mustFiles(t, rig.pools, Layout{}, lines, "M32 {}", "/gcodes")
			f.dir.Copy(dir)
			f.Enter(rng.Intn(2) == 0)
			assertWindowInvariant(t, f)

			for i := 0; i < 200; i++ {
				f.Advance(rng.Intn(15) - 7)
				assertWindowInvariant(t, f)
			}
			f.release()
		}
	}
}

func TestFilesEnterBackwardSelectsLast(t *testing.T) {
	rig := newTestRig(t)
	for i := 0; i < 5; i++ {
		rig.writeFile(t, fmt.Sprintf("/gcodes/%d.g", i), "")
	}
	f := mustFiles(t, rig.pools, Layout{}, 3, "M32 {}", "/gcodes")

	f.Enter(false)
	assert.Equal(t, uint(4), f.Selected())
	assert.Equal(t, uint(2), f.FirstVisible())
	assertWindowInvariant(t, f)

	f.Enter(true)
	assert.Equal(t, uint(0), f.Selected())
}

func TestFilesSubdirectoryRoundTrip(t *testing.T) {
	rig := newTestRig(t)
	rig.writeFile(t, "/a/b/part.g", "G1")
	rig.writeFile(t, "/a/a1.g", "")
	rig.writeFile(t, "/a/a2.g", "")
	rig.writeFile(t, "/top.g", "")

	f := mustFiles(t, rig.pools, Layout{}, 2, `M32 "{}"`, "/")
	f.Enter(true)
	require.Equal(t, uint(2), f.HardCount()) // a/, top.g

	// into /a
	_, ok := f.Select()
	assert.False(t, ok)
	assert.Equal(t, "/a", f.CurrentDirectory())
	assert.True(t, f.InSubdirectory())
	assert.Equal(t, "../", f.label(0))

	// listing of /a: ../, a1.g, a2.g, b/
	require.Equal(t, uint(3), f.HardCount())
	f.Advance(3)
	assert.Equal(t, "b/", f.label(f.Selected()))
	before := viewState{firstVisible: f.FirstVisible(), selected: f.Selected()}

	f.Select()
	assert.Equal(t, "/a/b", f.CurrentDirectory())
	assert.Equal(t, uint(0), f.Selected(), "subdirectories open at the top, on the parent entry")

	f.Select()
	assert.Equal(t, "/a", f.CurrentDirectory())
	assert.Equal(t, before, viewState{firstVisible: f.FirstVisible(), selected: f.Selected()})

	// and back to the initial directory, landing on a/
	f.Advance(-3)
	f.Select()
	assert.Equal(t, "/", f.CurrentDirectory())
	assert.False(t, f.InSubdirectory())
	assert.Equal(t, "a/", f.label(f.Selected()))
}

func TestFilesUpFallsBackToName(t *testing.T) {
	rig := newTestRig(t)
	for _, d := range []string{"x", "y", "z"} {
		rig.mkdir(t, "/gcodes/"+d)
	}
	f := mustFiles(t, rig.pools, Layout{}, 2, "M32 {}", "/gcodes")
	f.dir.Copy("/gcodes/z")
	f.EnterDirectory()

	f.Select()
	assert.Equal(t, "/gcodes", f.CurrentDirectory())
	assert.Equal(t, uint(2), f.Selected())
	assertWindowInvariant(t, f)
}

func TestFilesSelectFileFormatsCommand(t *testing.T) {
	rig := newTestRig(t)
	rig.writeFile(t, "/gcodes/sub/part one.g", "")
	rig.writeFile(t, "/menus/tune", "")

	f := mustFiles(t, rig.pools, Layout{}, 4, `M32 "{}"`, "/gcodes/")
	f.Enter(true)
	f.Select()
	f.Advance(1)

	cmd, ok := f.Select()
	require.True(t, ok)
	assert.Equal(t, `M32 "/gcodes/sub/part one.g"`, cmd)

	menus := mustFiles(t, rig.pools, Layout{}, 4, "menu", "/menus")
	menus.Enter(true)
	cmd, ok = menus.Select()
	require.True(t, ok)
	assert.Equal(t, "menu /menus/tune", cmd)
}

func TestFilesHidesDotFilesAndTruncates(t *testing.T) {
	rig := newTestRig(t)
	rig.writeFile(t, "/many/.hidden", "")
	for i := 0; i < constants.MaxDirectoryEntries+10; i++ {
		rig.writeFile(t, fmt.Sprintf("/many/%03d.g", i), "")
	}

	f := mustFiles(t, rig.pools, Layout{}, 4, "M32 {}", "/many")
	f.Enter(true)
	assert.Equal(t, uint(constants.MaxDirectoryEntries), f.HardCount())
	assert.Equal(t, "000.g", f.label(0))

	f.Enter(false)
	assert.Equal(t, uint(constants.MaxDirectoryEntries-1), f.Selected())
}

func TestFilesRefusesTooLongPath(t *testing.T) {
	rig := newTestRig(t)
	long := strings.Repeat("d", constants.MaxFilenameLength)
	rig.mkdir(t, "/gcodes/"+long)

	f := mustFiles(t, rig.pools, Layout{}, 2, "M32 {}", "/gcodes")
	f.Enter(true)
	_, ok := f.Select()
	assert.False(t, ok)
	assert.Equal(t, "/gcodes", f.CurrentDirectory())
	assert.Equal(t, 0, f.depth)
}

type failingStorage struct{ err error }

func (s failingStorage) List(string) ([]storage.Entry, error) { return nil, s.err }
func (s failingStorage) Open(string) (io.ReadCloser, error)   { return nil, s.err }

func TestFilesStorageFailureDegrades(t *testing.T) {
	rig := newTestRig(t)
	rig.env.Storage = failingStorage{err: storage.ErrNotMounted}

	f := mustFiles(t, rig.pools, Layout{}, 3, "M32 {}", "/gcodes")
	f.UpdateWidth(rig.fb)
	f.Enter(true)
	assert.Equal(t, uint(0), f.listingCount())
	assert.Equal(t, 0, f.Advance(0))
	assert.Equal(t, 2, f.Advance(2))
	_, ok := f.Select()
	assert.False(t, ok)
	assert.Equal(t, "No storage", f.emptyMessage())

	f.Draw(rig.fb, 128, true, 0)
	ref := newTestRig(t)
	ref.fb.Text(0, 0, 0, "No storage", 128, false)
	assert.Equal(t, ref.fb.Image().Pix, rig.fb.Image().Pix)

	// inside a subdirectory only the parent entry remains
	rig.env.Storage = failingStorage{err: errors.New("card removed")}
	f.dir.Copy("/gcodes/sub")
	f.Enter(true)
	assert.Equal(t, uint(1), f.listingCount())
	assert.Equal(t, "No files found", f.emptyMessage())
	f.Select()
	assert.Equal(t, "/gcodes", f.CurrentDirectory())
}

func TestFilesDrawInvertsSelectedLine(t *testing.T) {
	rig := newTestRig(t)
	rig.writeFile(t, "/g/a.g", "")
	rig.writeFile(t, "/g/b.g", "")
	f := mustFiles(t, rig.pools, Layout{Row: 4}, 2, "M32 {}", "/g")
	f.UpdateWidth(rig.fb)
	assert.Equal(t, int16(128), f.Width())
	f.Enter(true)
	f.Advance(1)

	h := rig.fb.FontHeight(0)
	f.Draw(rig.fb, 128, true, 0)
	assert.False(t, rig.fb.Pixel(127, 4), "first line not selected")
	assert.True(t, rig.fb.Pixel(127, 4+h), "second line selected")

	f.Draw(rig.fb, 128, false, 0)
	assert.False(t, rig.fb.Pixel(127, 4+h), "no highlight without focus")
}

func TestFilesVisibilityRowOffset(t *testing.T) {
	rig := newTestRig(t)
	for i := 0; i < 6; i++ {
		rig.writeFile(t, fmt.Sprintf("/g/%d.g", i), "")
	}
	f := mustFiles(t, rig.pools, Layout{Row: 40}, 4, "M32 {}", "/g")
	f.Enter(true)

	assert.Equal(t, int16(0), f.VisibilityRowOffset(0, 10))
	f.Advance(3) // fourth line: rows 70..80
	assert.Equal(t, int16(80-64), f.VisibilityRowOffset(0, 10))
}

func TestFilesOverlongRootIsTheRoot(t *testing.T) {
	rig := newTestRig(t)
	root := "/" + strings.Repeat("d", constants.MaxFilenameLength+10)

	f := mustFiles(t, rig.pools, Layout{}, 2, "M32 {}", root)
	f.Enter(true)
	assert.Len(t, f.CurrentDirectory(), constants.MaxFilenameLength)
	assert.False(t, f.InSubdirectory(), "the shortened directory is the root")
	assert.Equal(t, uint(0), f.listingCount(), "no parent entry at the root")

	dir := f.CurrentDirectory()
	_, ok := f.Select()
	assert.False(t, ok)
	assert.Equal(t, dir, f.CurrentDirectory(), "never climbs above the root")
}

func TestFilesWithoutCommand(t *testing.T) {
	rig := newTestRig(t)
	rig.writeFile(t, "/gcodes/a.g", "G28")
	rig.writeFile(t, "/gcodes/sub/b.g", "G28")

	f := mustFiles(t, rig.pools, Layout{}, 3, "", "/gcodes")
	f.Enter(true)
	cmd, ok := f.Select()
	assert.False(t, ok, "a file sends nothing without a command")
	assert.Empty(t, cmd)

	f.Advance(1)
	_, ok = f.Select()
	assert.False(t, ok)
	assert.Equal(t, "/gcodes/sub", f.CurrentDirectory(), "directories still open")
}
