package main

import (
	"strconv"
	"strings"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/values"
)

// controller stands in for the machine the menu drives. It logs every
// command and echoes the ones that set a value back into the catalog, so
// edits show up on screen the way they would with real hardware.
type controller struct {
	catalog *values.Catalog
	history []string
}

func newController(catalog *values.Catalog) *controller {
	c := &controller{catalog: catalog}
	for _, tool := range []uint{0, 1} {
		catalog.Set(uint(values.GroupCurrentTemperature)*100+tool, 21.5)
		catalog.Set(uint(values.GroupActiveTemperature)*100+tool, 0)
		catalog.Set(uint(values.GroupStandbyTemperature)*100+tool, 0)
		catalog.Set(uint(values.GroupExtrusionFactor)*100+tool, 100)
	}
	catalog.Set(uint(values.GroupSpeedFactor)*100, 100)
	for axis := range 3 {
		catalog.Set(uint(values.GroupAxisPosition)*100+uint(axis), 0)
	}
	return c
}

func (c *controller) Execute(cmd string) error {
	c.history = append(c.history, cmd)
	rotamenu.GetLogger().Info("Command", "cmd", cmd)

	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return nil
	}
	params := words(fields[1:])

	switch strings.ToUpper(fields[0]) {
	case "G10":
		tool := uint(params['P'])
		if v, ok := params['S']; ok {
			c.set(values.GroupActiveTemperature, tool, v)
		}
		if v, ok := params['R']; ok {
			c.set(values.GroupStandbyTemperature, tool, v)
		}
	case "M221":
		if v, ok := params['S']; ok {
			c.set(values.GroupExtrusionFactor, uint(params['D']), v)
		}
	case "M220":
		if v, ok := params['S']; ok {
			c.set(values.GroupSpeedFactor, 0, v)
		}
	case "G0", "G1":
		for i := range len(values.AxisLetters) {
			if v, ok := params[values.AxisLetters[i]]; ok {
				c.set(values.GroupAxisPosition, uint(i), v)
			}
		}
	}
	return nil
}

// History returns every command received so far.
func (c *controller) History() []string { return c.history }

func (c *controller) set(g values.Group, item uint, v float64) {
	c.catalog.Set(uint(g)*100+item, v)
}

// words parses "P1 S200" style parameters, ignoring anything unparseable.
func words(fields []string) map[byte]float64 {
	m := make(map[byte]float64, len(fields))
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if v, err := strconv.ParseFloat(f[1:], 64); err == nil {
			m[upper(f[0])] = v
		}
	}
	return m
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
