package main

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const mainMenu = `
[[item]]
type = "text"
text = "Status"

[[item]]
type = "value"
row = 12
index = 500

[[item]]
type = "button"
row = 24
text = "Files"
command = "menu"
file = "files"

[[item]]
type = "button"
row = 36
text = "Paused"
command = "M24"
visibility = 3
`

const filesMenu = `
[[item]]
type = "files"
lines = 3
command = 'M32 "{}"'
dir = "/gcodes"
`

func newTestApp(t *testing.T) *app {
	t.Helper()
	root := t.TempDir()
	write := func(name, content string) {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write("menus/main.toml", mainMenu)
	write("menus/files.toml", filesMenu)
	write("gcodes/benchy.g", "G28")

	cfg := config.Default()
	cfg.Storage.Root = root
	cfg.Logging.Level = "error"

	a, err := newApp(cfg)
	require.NoError(t, err)
	t.Cleanup(a.Close)
	return a
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps("2, p,-1,,b,s3")
	require.NoError(t, err)
	assert.Equal(t, []step{
		{kind: stepTurn, n: 2},
		{kind: stepPress},
		{kind: stepTurn, n: -1},
		{kind: stepBack},
		{kind: stepState, n: 3},
	}, steps)

	_, err = parseSteps("x")
	assert.Error(t, err)
	_, err = parseSteps("s999")
	assert.Error(t, err)

	steps, err = parseSteps("")
	require.NoError(t, err)
	assert.Empty(t, steps)
}

func TestReplayEditsValue(t *testing.T) {
	a := newTestApp(t)

	a.replay([]step{{kind: stepPress}, {kind: stepTurn, n: 5}, {kind: stepPress}})

	assert.Equal(t, []string{"M220 S105"}, a.controller.History())
	v, _ := a.controller.catalog.Value(500)
	assert.Equal(t, 105.0, v, "the controller echoes the new factor")
	assert.NoError(t, a.menu.Err())
}

func TestReplayBrowsesFiles(t *testing.T) {
	a := newTestApp(t)

	a.replay([]step{{kind: stepTurn, n: 1}, {kind: stepPress}})
	require.Equal(t, 1, a.menu.Depth())
	_, ok := a.menu.Focused().(*rotamenu.FilesMenuItem)
	require.True(t, ok)

	a.replay([]step{{kind: stepPress}})
	assert.Equal(t, []string{`M32 "/gcodes/benchy.g"`}, a.controller.History())

	a.replay([]step{{kind: stepBack}})
	assert.Equal(t, 0, a.menu.Depth())
	b, ok := a.menu.Focused().(*rotamenu.ButtonMenuItem)
	require.True(t, ok)
	assert.Equal(t, "Files", b.Text(), "focus comes back to the button that opened the page")
}

func TestReplayStateShowsItem(t *testing.T) {
	a := newTestApp(t)

	a.replay([]step{{kind: stepState, n: 3}, {kind: stepTurn, n: 2}})
	b, ok := a.menu.Focused().(*rotamenu.ButtonMenuItem)
	require.True(t, ok)
	assert.Equal(t, "Paused", b.Text())
}

func TestWritePNG(t *testing.T) {
	a := newTestApp(t)
	a.replay(nil)

	out := filepath.Join(t.TempDir(), "menu.png")
	require.NoError(t, writePNG(out, a.panel, a.fb, 3))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 128*3, img.Bounds().Dx())
	assert.Equal(t, 64*3, img.Bounds().Dy())

	lit := 0
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			if color.RGBAModel.Convert(img.At(x, y)) == a.panel.Lit {
				lit++
			}
		}
	}
	assert.Positive(t, lit, "the title is drawn")
	assert.Zero(t, lit%9, "every panel pixel becomes a 3x3 block")
}
