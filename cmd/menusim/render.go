package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
	"github.com/spf13/cobra"
	"golang.org/x/image/draw"
)

type renderOptions struct {
	Steps string
	Out   string
	Scale int
}

func newRenderCommand(root *rootOptions) *cobra.Command {
	o := &renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Replay encoder input and write the resulting screen to a PNG",
		Long: `Replay encoder input and write the resulting screen to a PNG.

Steps are comma separated: a signed number turns the encoder that many
clicks, "p" presses it, "b" returns to the previous page and "sN" sets the
controller state to N.`,
		Example: `menusim render --steps 2,p,-1,p --out screen.png`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			steps, err := parseSteps(o.Steps)
			if err != nil {
				return err
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			a.replay(steps)
			for _, c := range a.controller.History() {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return writePNG(o.Out, a.panel, a.fb, o.Scale)
		},
	}

	cmd.Flags().StringVar(&o.Steps, "steps", "", "Encoder input to replay before rendering.")
	cmd.Flags().StringVarP(&o.Out, "out", "o", "menu.png", "PNG file to write.")
	cmd.Flags().IntVar(&o.Scale, "scale", 4, "Output pixels per panel pixel.")
	return cmd
}

type stepKind int

const (
	stepTurn stepKind = iota
	stepPress
	stepBack
	stepState
)

type step struct {
	kind stepKind
	n    int
}

func parseSteps(s string) ([]step, error) {
	var steps []step
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		switch {
		case f == "":
			continue
		case f == "p":
			steps = append(steps, step{kind: stepPress})
		case f == "b":
			steps = append(steps, step{kind: stepBack})
		case strings.HasPrefix(f, "s"):
			n, err := strconv.ParseUint(f[1:], 10, 8)
			if err != nil {
				return nil, fmt.Errorf("step %q: bad state: %w", f, err)
			}
			steps = append(steps, step{kind: stepState, n: int(n)})
		default:
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("step %q: want a click count, p, b or sN", f)
			}
			steps = append(steps, step{kind: stepTurn, n: n})
		}
	}
	return steps, nil
}

func (a *app) replay(steps []step) {
	logger := rotamenu.GetLogger()
	a.menu.Refresh()
	for _, s := range steps {
		switch s.kind {
		case stepTurn:
			action := a.menu.EncoderAction(s.n, false)
			logger.Debug("Turn", "clicks", s.n, "action", action.String())
		case stepPress:
			action := a.menu.EncoderAction(0, true)
			logger.Debug("Press", "action", action.String())
		case stepBack:
			if err := a.menu.Pop(); err != nil {
				logger.Warn("Nothing to return to", "error", err)
			}
		case stepState:
			a.visibility.Set(constants.Visibility(s.n))
		}
		a.menu.Refresh()
	}
	if err := a.menu.Err(); err != nil {
		logger.Warn("Last command failed", "error", err)
	}
}

// paletted returns the framebuffer coloured like the panel.
func paletted(p display.Panel, fb *display.Framebuffer) *image.Paletted {
	w, h := fb.Size()
	img := image.NewPaletted(image.Rect(0, 0, int(w), int(h)), color.Palette{p.Unlit, p.Lit})
	for y := int16(0); y < h; y++ {
		for x := int16(0); x < w; x++ {
			if fb.Pixel(x, y) {
				img.SetColorIndex(int(x), int(y), 1)
			}
		}
	}
	return img
}

func writePNG(path string, p display.Panel, fb *display.Framebuffer, scale int) error {
	if scale < 1 {
		scale = 1
	}
	src := paletted(p, fb)
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx()*scale, src.Bounds().Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
