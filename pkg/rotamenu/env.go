package rotamenu

import (
	"image"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/locale"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/storage"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/values"
)

// Display is what items draw with. display.Framebuffer implements it.
type Display interface {
	Size() (width, height int16)
	FontHeight(f constants.FontNumber) int16
	TextWidth(f constants.FontNumber, s string) int16
	// Text draws s with its top-left corner at (x, y), clipped at right,
	// and returns the x coordinate following the text.
	Text(f constants.FontNumber, x, y int16, s string, right int16, inverted bool) int16
	Fill(x, y, w, h int16, on bool)
	Bitmap(x, y int16, img image.Image, right int16, inverted bool)
}

// CommandSink executes the commands produced by items.
type CommandSink interface {
	Execute(cmd string) error
}

// CommandFunc adapts a function to CommandSink.
type CommandFunc func(cmd string) error

func (f CommandFunc) Execute(cmd string) error { return f(cmd) }

// ValueSource supplies the live values value items mirror, and the rules
// for editing them. A false result means the value does not exist right now.
type ValueSource interface {
	Value(index uint) (float64, bool)
	Rules(index uint) (values.Rules, bool)
}

// VisibilityChecker decides whether items tagged with a visibility case are shown.
type VisibilityChecker interface {
	Visible(tag constants.Visibility) bool
}

// PageLoader builds the named page from pooled items.
// It returns an error wrapping ErrPageNotFound when there is no such page.
type PageLoader interface {
	Load(name string, pools *Pools) (*Page, error)
}

// Env is the set of collaborators shared by every item of a menu.
// Nil collaborators degrade: no storage lists nothing, no value source marks
// every value unavailable, no visibility checker shows everything.
type Env struct {
	Storage    storage.Storage
	Values     ValueSource
	Visibility VisibilityChecker
	Messages   locale.Messages
	ScreenRows int16 // panel height in pixels; NewMenu fills it in when zero

	bitmaps *internal.BitmapCache
}

func (e *Env) messages() locale.Messages {
	if e.Messages == (locale.Messages{}) {
		return locale.Default()
	}
	return e.Messages
}

func (e *Env) bitmapCache() *internal.BitmapCache {
	if e.bitmaps == nil {
		e.bitmaps = internal.NewBitmapCache()
	}
	return e.bitmaps
}

func (e *Env) visible(tag constants.Visibility) bool {
	if tag == constants.AlwaysVisible || e.Visibility == nil {
		return true
	}
	return e.Visibility.Visible(tag)
}
