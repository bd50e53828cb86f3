package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/input"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/platform"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/sim"
	"github.com/holoplot/go-evdev"
	"github.com/spf13/cobra"
)

type runOptions struct {
	Evdev bool
	Scale int
	Bezel int
}

func newRunCommand(root *rootOptions) *cobra.Command {
	o := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show the menu in a desktop window",
		Long: `Show the menu in a desktop window.

The arrow keys and the mouse wheel turn the encoder, Enter and Space press
it, Backspace returns to the previous page, the digit keys set the
controller state used for conditional items and Escape quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if o.Scale > 0 {
				cfg.Sim.Scale = o.Scale
			}

			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.run(ctx, o)
		},
	}

	cmd.Flags().BoolVar(&o.Evdev, "evdev", false, "Also read the encoder from the configured input devices.")
	cmd.Flags().IntVar(&o.Scale, "scale", 0, "Window pixels per panel pixel.")
	cmd.Flags().IntVar(&o.Bezel, "bezel", 8, "Border around the panel, in window pixels.")
	return cmd
}

func (a *app) run(ctx context.Context, o *runOptions) error {
	logger := rotamenu.GetLogger()
	encoder := input.NewEncoder(a.cfg.Encoder.PulsesPerClick, a.cfg.Encoder.Reversed)

	if o.Evdev {
		source := input.NewEvdevSource(input.EvdevConfig{
			Device:       a.cfg.Encoder.Device,
			ButtonDevice: a.cfg.Encoder.ButtonDevice,
			RelCode:      evdev.EvCode(a.cfg.Encoder.RelCode),
			KeyCode:      evdev.EvCode(a.cfg.Encoder.KeyCode),
			Grab:         a.cfg.Encoder.Grab,
		}, encoder, logger)

		go func() {
			if err := source.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Encoder input stopped", "device", a.cfg.Encoder.Device, "error", err)
			}
		}()
	}

	theme := sim.ThemeFor(a.panel)
	if a.cfg.Sim.Theme != "" {
		p, err := platform.Lookup(a.cfg.Sim.Theme, 0, 0)
		if err != nil {
			return err
		}
		theme = sim.ThemeFor(p)
	}

	s, err := sim.New(a.fb, a.menu, encoder, a.cfg.Encoder.PulsesPerClick, sim.Options{
		Title:      "rotamenu: " + a.panel.Name,
		Scale:      int32(a.cfg.Sim.Scale),
		Bezel:      sim.UniformPadding(int32(o.Bezel)),
		Theme:      theme,
		Visibility: a.visibility,
	})
	if err != nil {
		return err
	}
	defer s.Close()

	logger.Info("Simulator started", "panel", a.panel.Name, "start", a.cfg.Menu.Start, "storage", a.cfg.Storage.Root)
	err = s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	logger.Info("Simulator stopped", "commands", len(a.controller.History()))
	return err
}
