// Package platform maps panel preset names to their descriptions.
package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/display"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/platform/ssd1306"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/platform/st7920"
)

var presets = map[string]func() display.Panel{
	st7920.Name:  st7920.Panel,
	ssd1306.Name: ssd1306.Panel,
}

// Default is the preset used when none is named.
const Default = st7920.Name

// Lookup returns the named preset. Width and height, when non-zero,
// override the preset's resolution.
func Lookup(name string, width, height int16) (display.Panel, error) {
	if name == "" {
		name = Default
	}
	preset, ok := presets[strings.ToLower(name)]
	if !ok {
		return display.Panel{}, fmt.Errorf("platform: unknown panel %q (have %s)", name, strings.Join(Names(), ", "))
	}
	p := preset()
	if width > 0 {
		p.Width = width
	}
	if height > 0 {
		p.Height = height
	}
	return p, nil
}

// Names lists the known presets.
func Names() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
