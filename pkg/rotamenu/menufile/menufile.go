// Package menufile builds menu pages from TOML definitions kept on storage.
//
// A page file is a list of [[item]] tables:
//
//	[[item]]
//	type = "text"
//	row = 0
//	align = "centre"
//	text = "Main"
//	message = "MainTitle"
//
//	[[item]]
//	type = "button"
//	row = 12
//	text = "Print a file"
//	command = "menu"
//	file = "print"
//
//	[[item]]
//	type = "files"
//	row = 24
//	lines = 3
//	command = "M32 \"{}\""
//	dir = "/gcodes"
//
// Every item takes row, column, width, align, font and visibility. The
// remaining keys depend on the type: text (text, message), button (text,
// message, command, file), value (index, decimals, adjustable), files
// (lines, command, dir) and image (file).
package menufile

import (
	"errors"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/locale"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/storage"
	"github.com/BurntSushi/toml"
)

// Extension is appended to page names that have none.
const Extension = ".toml"

// ErrUnknownType is returned for an item whose type is not one of the five item kinds.
var ErrUnknownType = errors.New("menufile: unknown item type")

// File is the decoded form of one page file.
type File struct {
	Items []Item `toml:"item"`
}

// Item is one [[item]] table. Keys that do not apply to the type are ignored.
type Item struct {
	Type       string `toml:"type"`
	Row        int16  `toml:"row"`
	Column     int16  `toml:"column"`
	Width      int16  `toml:"width"`
	Align      string `toml:"align"`
	Font       uint8  `toml:"font"`
	Visibility uint8  `toml:"visibility"`

	Text    string `toml:"text"`
	Message string `toml:"message"` // translation ID for Text
	Command string `toml:"command"`
	File    string `toml:"file"`
	Dir     string `toml:"dir"`
	Lines   uint   `toml:"lines"`

	Index      uint  `toml:"index"`
	Decimals   uint8 `toml:"decimals"`
	Adjustable *bool `toml:"adjustable"`
}

// Loader reads page files from Storage. Relative page names are resolved
// against Dir; rooted names, such as those a file browser produces, are used
// as they are.
type Loader struct {
	Dir       string
	Storage   storage.Storage
	Localizer *locale.Localizer
}

var _ rotamenu.PageLoader = (*Loader)(nil)

// Load implements rotamenu.PageLoader.
func (l *Loader) Load(name string, pools *rotamenu.Pools) (*rotamenu.Page, error) {
	def, err := l.Read(name)
	if err != nil {
		return nil, err
	}
	return l.Build(name, def, pools)
}

// Read decodes the page file for name.
func (l *Loader) Read(name string) (*File, error) {
	if l.Storage == nil {
		return nil, fmt.Errorf("menufile: %s: %w", name, storage.ErrNotMounted)
	}

	var lastErr error
	for _, p := range l.candidates(name) {
		r, err := l.Storage.Open(p)
		if err != nil {
			lastErr = err
			continue
		}
		defer r.Close()

		var def File
		md, err := toml.NewDecoder(r).Decode(&def)
		if err != nil {
			return nil, fmt.Errorf("menufile: %s: %w", p, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			internal.GetInternalLogger().Warn("Unknown keys in menu file", "file", p, "keys", undecoded)
		}
		return &def, nil
	}

	if errors.Is(lastErr, os.ErrNotExist) {
		return nil, fmt.Errorf("menufile: %s: %w", name, rotamenu.ErrPageNotFound)
	}
	return nil, fmt.Errorf("menufile: %s: %w", name, lastErr)
}

// Build allocates the items of def from pools. On error every item already
// allocated is returned to its pool.
func (l *Loader) Build(name string, def *File, pools *rotamenu.Pools) (*rotamenu.Page, error) {
	page := rotamenu.NewPage(name)
	for i, it := range def.Items {
		item, err := l.build(it, pools)
		if err != nil {
			page.Release()
			return nil, fmt.Errorf("menufile: %s: item %d: %w", name, i+1, err)
		}
		page.Append(item)
	}
	internal.GetInternalLogger().Debug("Built menu page", "page", name, "items", page.Len())
	return page, nil
}

func (l *Loader) build(it Item, pools *rotamenu.Pools) (rotamenu.Item, error) {
	layout := rotamenu.Layout{
		Row:        it.Row,
		Column:     it.Column,
		Width:      it.Width,
		Align:      constants.ParseAlignment(strings.ToLower(it.Align)),
		Font:       constants.FontNumber(it.Font),
		Visibility: constants.Visibility(it.Visibility),
	}

	switch strings.ToLower(it.Type) {
	case "text":
		return pools.NewText(layout, l.text(it))
	case "button":
		return pools.NewButton(layout, l.text(it), it.Command, it.File)
	case "value":
		adjustable := it.Adjustable == nil || *it.Adjustable
		return pools.NewValue(layout, it.Index, it.Decimals, adjustable)
	case "files":
		return pools.NewFiles(layout, it.Lines, it.Command, it.Dir)
	case "image":
		return pools.NewImage(layout, l.resolve(it.File))
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, it.Type)
	}
}

func (l *Loader) text(it Item) string {
	if it.Message == "" {
		return it.Text
	}
	return l.Localizer.Localize(it.Message, it.Text)
}

func (l *Loader) resolve(name string) string {
	if strings.HasPrefix(name, "/") || l.Dir == "" {
		return storage.Clean(name)
	}
	return path.Join(storage.Clean(l.Dir), name)
}

func (l *Loader) candidates(name string) []string {
	p := l.resolve(name)
	if path.Ext(p) != "" {
		return []string{p}
	}
	return []string{p + Extension, p}
}
