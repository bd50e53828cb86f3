// Package config loads the settings of a menu host from a TOML file.
// Every field has a default, so a missing file or a partial one is fine.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
)

// DefaultPath is read when no path is given and ROTAMENU_CONFIG is unset.
const DefaultPath = "~/.config/rotamenu/config.toml"

// Config holds all settings of a menu host.
type Config struct {
	Display DisplayConfig `toml:"display"`
	Encoder EncoderConfig `toml:"encoder"`
	Storage StorageConfig `toml:"storage"`
	Menu    MenuConfig    `toml:"menu"`
	Logging LoggingConfig `toml:"logging"`
	Sim     SimConfig     `toml:"sim"`
}

// DisplayConfig describes the panel.
type DisplayConfig struct {
	Preset string `toml:"preset"` // panel preset; width and height override it when set
	Width  int16  `toml:"width"`
	Height int16  `toml:"height"`
}

// EncoderConfig describes the rotary encoder input devices.
type EncoderConfig struct {
	Device         string `toml:"device"`        // evdev node reporting rotation
	ButtonDevice   string `toml:"button_device"` // evdev node reporting the push button, if separate
	PulsesPerClick int    `toml:"pulses_per_click"`
	Reversed       bool   `toml:"reversed"`
	RelCode        uint16 `toml:"rel_code"`
	KeyCode        uint16 `toml:"key_code"`
	Grab           bool   `toml:"grab"`
}

// StorageConfig holds the directory served to file browsers as "/".
type StorageConfig struct {
	Root string `toml:"root"`
}

// MenuConfig selects the menu files and the first page.
type MenuConfig struct {
	Dir      string `toml:"dir"`
	Start    string `toml:"start"`
	Language string `toml:"language"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Path  string `toml:"path"`
	Level string `toml:"level"` // "debug", "info", "warn", "error"
}

// SimConfig holds the desktop simulator settings.
type SimConfig struct {
	Scale int    `toml:"scale"`
	Theme string `toml:"theme"` // panel preset whose colours are used; empty uses the display preset
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Preset: "st7920",
		},
		Encoder: EncoderConfig{
			Device:         "/dev/input/event0",
			PulsesPerClick: 4,
			RelCode:        0x00, // REL_X
			KeyCode:        28,   // KEY_ENTER
		},
		Storage: StorageConfig{
			Root: "~/.local/share/rotamenu/sd",
		},
		Menu: MenuConfig{
			Dir:   "/menus",
			Start: "main",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Sim: SimConfig{
			Scale: 4,
		},
	}
}

// Load reads path over the defaults. An empty path means the file named by
// ROTAMENU_CONFIG, or DefaultPath; only an explicitly named file must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(constants.ConfigPathEnvVar)
		explicit = path != ""
	}
	if path == "" {
		path = DefaultPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	md, err := toml.DecodeFile(expanded, cfg)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("config: %s: %w", expanded, err)
	default:
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("config: %s: unknown keys %v", expanded, undecoded)
		}
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Storage.Root, &c.Logging.Path, &c.Encoder.Device, &c.Encoder.ButtonDevice} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("config: expand %s: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(constants.LogLevelEnvVar); v != "" {
		c.Logging.Level = v
	}
}
