package sim

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
)

// initSDL starts the video and event subsystems.
func initSDL() error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sim: sdl init: %w", err)
	}
	return nil
}

func sdlCleanup(window *Window) {
	if window != nil {
		window.closeWindow()
	}
	sdl.Quit()
}
