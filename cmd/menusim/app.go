package main

import (
	"fmt"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/config"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/locale"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/menufile"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/platform"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/storage"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/values"
)

// app is one menu wired to a simulated controller.
type app struct {
	cfg        *config.Config
	panel      display.Panel
	fb         *display.Framebuffer
	controller *controller
	visibility *rotamenu.StateVisibility
	menu       *rotamenu.Menu
}

func loadConfig(o *rootOptions) (*config.Config, error) {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return nil, err
	}
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}
	if o.MenuDir != "" {
		cfg.Menu.Dir = o.MenuDir
	}
	if o.Start != "" {
		cfg.Menu.Start = o.Start
	}
	if o.Storage != "" {
		cfg.Storage.Root = o.Storage
	}
	return cfg, nil
}

func newApp(cfg *config.Config) (*app, error) {
	rotamenu.Init(rotamenu.Options{
		LogPath:  cfg.Logging.Path,
		LogLevel: cfg.Logging.Level,
	})

	panel, err := platform.Lookup(cfg.Display.Preset, cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return nil, err
	}

	loc, err := locale.New(cfg.Menu.Language)
	if err != nil {
		return nil, err
	}

	st := storage.NewOS(cfg.Storage.Root)
	if !st.Mounted() {
		rotamenu.GetLogger().Warn("Storage root not found; file browsers will be empty", "root", cfg.Storage.Root)
	}

	catalog := values.NewCatalog()
	ctrl := newController(catalog)
	visibility := rotamenu.NewStateVisibility(constants.AlwaysVisible)

	env := &rotamenu.Env{
		Storage:    st,
		Values:     catalog,
		Visibility: visibility,
		Messages:   loc.Messages(),
	}
	pools := rotamenu.NewPools(env, rotamenu.DefaultPoolSizes())
	loader := &menufile.Loader{Dir: cfg.Menu.Dir, Storage: st, Localizer: loc}

	fb := panel.NewFramebuffer()
	menu := rotamenu.NewMenu(fb, loader, pools, ctrl)
	if err := menu.Load(cfg.Menu.Start); err != nil {
		return nil, fmt.Errorf("load %q from %s: %w", cfg.Menu.Start, cfg.Menu.Dir, err)
	}

	return &app{
		cfg:        cfg,
		panel:      panel,
		fb:         fb,
		controller: ctrl,
		visibility: visibility,
		menu:       menu,
	}, nil
}

func (a *app) Close() {
	a.menu.Close()
	rotamenu.Close()
}
