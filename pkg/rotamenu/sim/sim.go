// Package sim shows a menu on the desktop. The framebuffer is painted into
// an SDL window and the keyboard and mouse wheel stand in for the encoder:
// arrow keys and the wheel turn it, Enter and Space press it, Backspace
// goes back a page, the digit keys set the visibility state and Escape quits.
package sim

import (
	"context"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/input"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Options configures the simulator window.
type Options struct {
	Title         string        // Window title
	Scale         int32         // Window pixels per panel pixel
	Bezel         Padding       // Border around the panel
	Theme         Theme         // Panel colours
	WindowOptions WindowOptions // SDL window flags

	// Visibility, when set, is switched to state n by the digit key n.
	Visibility *rotamenu.StateVisibility
}

// Simulator runs a Menu against a Framebuffer in an SDL window.
type Simulator struct {
	window  *Window
	fb      *display.Framebuffer
	menu    *rotamenu.Menu
	encoder *input.Encoder
	repeat  input.Repeater
	ppc     int
	state   *rotamenu.StateVisibility
}

// New opens the window. Pulses fed to the encoder from keys and the wheel
// are whole detents of pulsesPerClick pulses.
func New(fb *display.Framebuffer, menu *rotamenu.Menu, encoder *input.Encoder, pulsesPerClick int, opts Options) (*Simulator, error) {
	if err := initSDL(); err != nil {
		return nil, err
	}
	if opts.Title == "" {
		opts.Title = "rotamenu"
	}
	if opts.Scale == 0 {
		opts.Scale = 4
	}
	if opts.WindowOptions.IsZero() {
		opts.WindowOptions = WindowOptions{Resizable: true}
	}

	w, h := fb.Size()
	window, err := initWindow(opts.Title, w, h, opts.Scale, opts.Bezel, opts.Theme, opts.WindowOptions)
	if err != nil {
		sdl.Quit()
		return nil, err
	}

	if pulsesPerClick < 1 {
		pulsesPerClick = 1
	}
	return &Simulator{
		window:  window,
		fb:      fb,
		menu:    menu,
		encoder: encoder,
		repeat:  input.NewRepeater(),
		ppc:     pulsesPerClick,
		state:   opts.Visibility,
	}, nil
}

// Run processes input and redraws until the window is closed, Escape is
// pressed or ctx is done.
func (s *Simulator) Run(ctx context.Context) error {
	logger := internal.GetInternalLogger()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if s.handleKey(e) {
					return nil
				}
			case *sdl.MouseWheelEvent:
				// wheel up turns counter-clockwise, like scrolling a list up
				s.encoder.AddPulses(-int(e.Y) * s.ppc)
			}
		}

		if d := s.repeat.Update(); d != input.DirectionNone {
			s.encoder.AddPulses(d.Clicks() * s.ppc)
		}

		if clicks, pressed := s.encoder.Poll(); clicks != 0 || pressed {
			action := s.menu.EncoderAction(clicks, pressed)
			logger.Debug("Encoder action", "clicks", clicks, "pressed", pressed, "action", action.String())
		}

		s.menu.Refresh()
		if err := s.fb.Display(); err != nil {
			return err
		}
		s.window.Render(s.fb)
		s.window.Present()
	}
}

// Close destroys the window and shuts SDL down.
func (s *Simulator) Close() {
	sdlCleanup(s.window)
}

func (s *Simulator) handleKey(e *sdl.KeyboardEvent) (quit bool) {
	down := e.Type == sdl.KEYDOWN

	var d input.Direction
	switch e.Keysym.Sym {
	case sdl.K_ESCAPE:
		return down
	case sdl.K_RETURN, sdl.K_SPACE, sdl.K_KP_ENTER:
		if down && e.Repeat == 0 {
			s.encoder.Press()
		}
		return false
	case sdl.K_BACKSPACE:
		if down && e.Repeat == 0 {
			if err := s.menu.Pop(); err != nil {
				internal.GetInternalLogger().Debug("Nothing to return to", "error", err)
			}
		}
		return false
	case sdl.K_0, sdl.K_1, sdl.K_2, sdl.K_3, sdl.K_4, sdl.K_5, sdl.K_6, sdl.K_7, sdl.K_8, sdl.K_9:
		if down && s.state != nil {
			state := constants.Visibility(e.Keysym.Sym - sdl.K_0)
			s.state.Set(state)
			internal.GetInternalLogger().Debug("Visibility state changed", "state", state)
		}
		return false
	case sdl.K_DOWN, sdl.K_RIGHT:
		d = input.DirectionClockwise
	case sdl.K_UP, sdl.K_LEFT:
		d = input.DirectionCounterClockwise
	default:
		return false
	}

	if e.Repeat != 0 {
		return false
	}
	if first := s.repeat.SetHeld(d, down); first != input.DirectionNone {
		s.encoder.AddPulses(first.Clicks() * s.ppc)
	}
	return false
}
