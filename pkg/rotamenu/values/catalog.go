// Package values maps value indices to live controller readings and to the
// rules used when the user edits them.
//
// An index is group*100 + item: the group picks what kind of value it is
// (heater temperature, speed factor, axis position) and the item picks
// which heater, extruder or axis.
package values

import (
	"math"
	"strconv"
	"strings"
	"sync"
)

// Group is the hundreds part of a value index.
type Group uint

const (
	GroupCurrentTemperature Group = 0
	GroupActiveTemperature  Group = 1
	GroupStandbyTemperature Group = 2
	GroupExtrusionFactor    Group = 4
	GroupSpeedFactor        Group = 5
	GroupAxisPosition       Group = 6
)

// GroupOf returns the group of index.
func GroupOf(index uint) Group { return Group(index / 100) }

// ItemOf returns the heater, extruder or axis number referenced by index.
func ItemOf(index uint) uint { return index % 100 }

// AxisLetters maps an item number to the axis letter used in commands.
const AxisLetters = "XYZUVWABC"

// Rules describe how a value may be edited.
//
// Command is a template: "{}" becomes the formatted value, "{n}" the item
// number and "{axis}" the axis letter for the item number.
type Rules struct {
	Min      float64
	Max      float64
	Step     float64
	Live     bool // apply every step immediately, no confirm
	ReadOnly bool
	Command  string
}

// Clamp limits v to [Min, Max].
func (r Rules) Clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

// StepSize returns Step, or 1 when unset.
func (r Rules) StepSize() float64 {
	if r.Step <= 0 {
		return 1
	}
	return r.Step
}

// FormatCommand expands the command template for index with value already formatted.
func (r Rules) FormatCommand(index uint, value string) string {
	item := ItemOf(index)
	axis := ""
	if int(item) < len(AxisLetters) {
		axis = AxisLetters[item : item+1]
	}
	return strings.NewReplacer(
		"{}", value,
		"{n}", strconv.FormatUint(uint64(item), 10),
		"{axis}", axis,
	).Replace(r.Command)
}

// DefaultGroupRules are used for any index without an explicit override.
func DefaultGroupRules() map[Group]Rules {
	return map[Group]Rules{
		GroupCurrentTemperature: {Min: 0, Max: 300, ReadOnly: true},
		GroupActiveTemperature:  {Min: 0, Max: 300, Step: 1, Command: "G10 P{n} S{}"},
		GroupStandbyTemperature: {Min: 0, Max: 300, Step: 1, Command: "G10 P{n} R{}"},
		GroupExtrusionFactor:    {Min: 1, Max: 500, Step: 1, Command: "M221 D{n} S{}"},
		GroupSpeedFactor:        {Min: 1, Max: 500, Step: 1, Command: "M220 S{}"},
		GroupAxisPosition:       {Min: -1000, Max: 1000, Step: 0.1, Live: true, Command: "G0 {axis}{} F3000"},
	}
}

// Catalog holds the current readings and edit rules. It is safe for
// concurrent use: the controller side writes readings while the menu reads.
type Catalog struct {
	mu        sync.RWMutex
	readings  map[uint]float64
	groups    map[Group]Rules
	overrides map[uint]Rules
}

// NewCatalog returns a catalog with the default group rules and no readings.
func NewCatalog() *Catalog {
	return &Catalog{
		readings:  make(map[uint]float64),
		groups:    DefaultGroupRules(),
		overrides: make(map[uint]Rules),
	}
}

// Value returns the reading for index, or false if that value does not
// currently exist (for example the tool was removed).
func (c *Catalog) Value(index uint) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.readings[index]
	return v, ok
}

// Rules returns the edit rules for index: an explicit override if one was
// registered, else the rules of its group.
func (c *Catalog) Rules(index uint) (Rules, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if r, ok := c.overrides[index]; ok {
		return r, true
	}
	r, ok := c.groups[GroupOf(index)]
	return r, ok
}

// Set records a reading.
func (c *Catalog) Set(index uint, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.readings[index] = v
}

// Remove forgets a reading so the value reports as unavailable.
func (c *Catalog) Remove(index uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.readings, index)
}

// SetRules registers rules for a single index.
func (c *Catalog) SetRules(index uint, r Rules) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[index] = r
}

// SetGroupRules replaces the rules for a whole group.
func (c *Catalog) SetGroupRules(g Group, r Rules) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.groups[g] = r
}
