package sim

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Window is an SDL window showing a framebuffer magnified by an integer scale.
type Window struct {
	Window          *sdl.Window
	Renderer        *sdl.Renderer
	Title           string
	Scale           int32
	Bezel           Padding
	Theme           Theme
	panelWidth      int32
	panelHeight     int32
	lit             []sdl.Rect
	hasVSync        bool
	lastPresentTime uint64
}

func initWindow(title string, panelWidth, panelHeight int16, scale int32, bezel Padding, theme Theme, winOpts WindowOptions) (*Window, error) {
	if v := os.Getenv(constants.SimScaleEnvVar); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			scale = int32(n)
		} else {
			internal.GetInternalLogger().Warn("Invalid ROTAMENU_SIM_SCALE; using configured scale", "value", v, "scale", scale)
		}
	}
	if scale < 1 {
		scale = 1
	}

	pw, ph := int32(panelWidth), int32(panelHeight)
	width := pw*scale + bezel.horizontal()
	height := ph*scale + bezel.vertical()

	x, y := int32(sdl.WINDOWPOS_UNDEFINED), int32(sdl.WINDOWPOS_UNDEFINED)
	if constants.IsDevMode() {
		winOpts.Borderless = false
		x, y = 50, 50
	}

	internal.GetInternalLogger().Debug("Initializing SDL Window", "width", width, "height", height, "scale", scale)

	window, err := sdl.CreateWindow(title, x, y, width, height, winOpts.ToSDLFlags())
	if err != nil {
		return nil, fmt.Errorf("sim: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("sim: create renderer: %w", err)
	}
	renderer.SetLogicalSize(width, height)

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:      window,
		Renderer:    renderer,
		Title:       title,
		Scale:       scale,
		Bezel:       bezel,
		Theme:       theme,
		panelWidth:  pw,
		panelHeight: ph,
		lit:         make([]sdl.Rect, 0, int(pw*ph)),
		hasVSync:    vsync,
	}, nil
}

func (window *Window) closeWindow() {
	window.Renderer.Destroy()
	window.Window.Destroy()
}

// Render paints the framebuffer inside the bezel.
func (window *Window) Render(fb *display.Framebuffer) {
	r := window.Renderer
	t := window.Theme

	r.SetDrawColor(t.BezelColor.R, t.BezelColor.G, t.BezelColor.B, t.BezelColor.A)
	r.Clear()

	panel := sdl.Rect{
		X: window.Bezel.Left,
		Y: window.Bezel.Top,
		W: window.panelWidth * window.Scale,
		H: window.panelHeight * window.Scale,
	}
	r.SetDrawColor(t.UnlitColor.R, t.UnlitColor.G, t.UnlitColor.B, t.UnlitColor.A)
	r.FillRect(&panel)

	window.lit = window.lit[:0]
	for y := int32(0); y < window.panelHeight; y++ {
		for x := int32(0); x < window.panelWidth; x++ {
			if fb.Pixel(int16(x), int16(y)) {
				window.lit = append(window.lit, sdl.Rect{
					X: panel.X + x*window.Scale,
					Y: panel.Y + y*window.Scale,
					W: window.Scale,
					H: window.Scale,
				})
			}
		}
	}
	if len(window.lit) > 0 {
		r.SetDrawColor(t.LitColor.R, t.LitColor.G, t.LitColor.B, t.LitColor.A)
		r.FillRects(window.lit)
	}
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available. Use this instead of renderer.Present().
func (window *Window) Present() {
	window.Renderer.Present()
	if !window.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - window.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		window.lastPresentTime = sdl.GetTicks64()
	}
}
