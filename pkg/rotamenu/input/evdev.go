package input

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/holoplot/go-evdev"
)

// EvdevConfig names the input devices and event codes of the encoder.
// The kernel rotary-encoder driver reports motion as relative events; the
// push button usually comes from gpio-keys, possibly on another device.
type EvdevConfig struct {
	Device       string
	ButtonDevice string // empty means the button is on Device
	RelCode      evdev.EvCode
	KeyCode      evdev.EvCode
	Grab         bool
}

// DefaultEvdevConfig reads REL_X motion and KEY_ENTER presses from device.
func DefaultEvdevConfig(device string) EvdevConfig {
	return EvdevConfig{
		Device:  device,
		RelCode: evdev.REL_X,
		KeyCode: evdev.KEY_ENTER,
	}
}

// EvdevSource feeds an Encoder from Linux input devices.
type EvdevSource struct {
	config  EvdevConfig
	encoder *Encoder
	logger  *slog.Logger
}

func NewEvdevSource(config EvdevConfig, encoder *Encoder, logger *slog.Logger) *EvdevSource {
	if logger == nil {
		logger = slog.Default()
	}
	return &EvdevSource{config: config, encoder: encoder, logger: logger}
}

// Run opens the devices and forwards events until ctx is cancelled or a
// device fails. It blocks; run it on its own goroutine.
func (s *EvdevSource) Run(ctx context.Context) error {
	paths := []string{s.config.Device}
	if s.config.ButtonDevice != "" && s.config.ButtonDevice != s.config.Device {
		paths = append(paths, s.config.ButtonDevice)
	}

	devices := make([]*evdev.InputDevice, 0, len(paths))
	defer func() {
		for _, d := range devices {
			d.Close()
		}
	}()

	for _, p := range paths {
		d, err := evdev.Open(p)
		if err != nil {
			return fmt.Errorf("input: open %s: %w", p, err)
		}
		if s.config.Grab {
			if err := d.Grab(); err != nil {
				s.logger.Warn("Failed to grab input device", "device", p, "error", err)
			}
		}
		name, _ := d.Name()
		s.logger.Debug("Opened encoder device", "device", p, "name", name)
		devices = append(devices, d)
	}

	errs := make(chan error, len(devices))
	for _, d := range devices {
		go func(d *evdev.InputDevice) {
			errs <- s.read(d)
		}(d)
	}

	select {
	case <-ctx.Done():
		// closing the devices unblocks the readers
		for _, d := range devices {
			d.Close()
		}
		devices = nil
		return ctx.Err()
	case err := <-errs:
		return err
	}
}

func (s *EvdevSource) read(d *evdev.InputDevice) error {
	for {
		ev, err := d.ReadOne()
		if err != nil {
			if errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("input: read: %w", err)
		}
		s.Handle(ev)
	}
}

// Handle applies one event to the encoder.
func (s *EvdevSource) Handle(ev *evdev.InputEvent) {
	switch ev.Type {
	case evdev.EV_REL:
		if ev.Code == s.config.RelCode {
			s.encoder.AddPulses(int(ev.Value))
		}
	case evdev.EV_KEY:
		// value 1 is key down; 0 up and 2 autorepeat are ignored
		if ev.Code == s.config.KeyCode && ev.Value == 1 {
			s.encoder.Press()
		}
	}
}
