package rotamenu

import (
	"fmt"
	"testing"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/storage"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/values"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

type testRig struct {
	fs      afero.Fs
	catalog *values.Catalog
	env     *Env
	pools   *Pools
	fb      *display.Framebuffer
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	fs := afero.NewMemMapFs()
	catalog := values.NewCatalog()
	env := &Env{
		Storage: storage.New(fs),
		Values:  catalog,
	}
	fb := display.New(128, 64)
	_, env.ScreenRows = fb.Size()
	return &testRig{
		fs:      fs,
		catalog: catalog,
		env:     env,
		pools:   NewPools(env, DefaultPoolSizes()),
		fb:      fb,
	}
}

func (r *testRig) writeFile(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(r.fs, name, []byte(content), 0644))
}

func (r *testRig) mkdir(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, r.fs.MkdirAll(name, 0755))
}

type recordingSink struct {
	commands []string
	err      error
}

func (s *recordingSink) Execute(cmd string) error {
	s.commands = append(s.commands, cmd)
	return s.err
}

// funcLoader builds pages from Go functions keyed by name.
type funcLoader map[string]func(p *Page, pools *Pools) error

func (l funcLoader) Load(name string, pools *Pools) (*Page, error) {
	build, ok := l[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrPageNotFound)
	}
	page := NewPage(name)
	if err := build(page, pools); err != nil {
		page.Release()
		return nil, err
	}
	return page, nil
}

func mustText(t *testing.T, p *Pools, l Layout, text string) *TextMenuItem {
	t.Helper()
	item, err := p.NewText(l, text)
	require.NoError(t, err)
	return item
}

func mustButton(t *testing.T, p *Pools, l Layout, text, command, file string) *ButtonMenuItem {
	t.Helper()
	item, err := p.NewButton(l, text, command, file)
	require.NoError(t, err)
	return item
}

func mustValue(t *testing.T, p *Pools, l Layout, index uint, decimals uint8) *ValueMenuItem {
	t.Helper()
	item, err := p.NewValue(l, index, decimals, true)
	require.NoError(t, err)
	return item
}

func mustFiles(t *testing.T, p *Pools, l Layout, lines uint, command, dir string) *FilesMenuItem {
	t.Helper()
	item, err := p.NewFiles(l, lines, command, dir)
	require.NoError(t, err)
	return item
}
