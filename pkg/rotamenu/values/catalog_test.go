package values

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexParts(t *testing.T) {
	assert.Equal(t, GroupActiveTemperature, GroupOf(101))
	assert.Equal(t, uint(1), ItemOf(101))
	assert.Equal(t, GroupAxisPosition, GroupOf(602))
	assert.Equal(t, uint(2), ItemOf(602))
}

func TestRulesClampAndStep(t *testing.T) {
	r := Rules{Min: 0, Max: 300}
	assert.Equal(t, 300.0, r.Clamp(312))
	assert.Equal(t, 0.0, r.Clamp(-5))
	assert.Equal(t, 120.5, r.Clamp(120.5))
	assert.Equal(t, 1.0, r.StepSize())

	r.Step = 0.1
	assert.Equal(t, 0.1, r.StepSize())
}

func TestFormatCommand(t *testing.T) {
	groups := DefaultGroupRules()

	assert.Equal(t, "G10 P1 S185.0", groups[GroupActiveTemperature].FormatCommand(101, "185.0"))
	assert.Equal(t, "M220 S110", groups[GroupSpeedFactor].FormatCommand(500, "110"))
	assert.Equal(t, "G0 Z1.20 F3000", groups[GroupAxisPosition].FormatCommand(602, "1.20"))

	// no axis letter past the table
	assert.Equal(t, "G0 3 F3000", groups[GroupAxisPosition].FormatCommand(650, "3"))
}

func TestCatalogReadingsAndRules(t *testing.T) {
	c := NewCatalog()

	_, ok := c.Value(100)
	assert.False(t, ok)

	c.Set(100, 180)
	v, ok := c.Value(100)
	require.True(t, ok)
	assert.Equal(t, 180.0, v)

	r, ok := c.Rules(100)
	require.True(t, ok)
	assert.Equal(t, "G10 P{n} S{}", r.Command)

	c.SetRules(100, Rules{Min: 0, Max: 250, Command: "M104 S{}"})
	r, _ = c.Rules(100)
	assert.Equal(t, 250.0, r.Max)

	c.Remove(100)
	_, ok = c.Value(100)
	assert.False(t, ok)

	_, ok = c.Rules(300)
	assert.False(t, ok, "fan group has no default rules")
}

func TestCatalogConcurrentAccess(t *testing.T) {
	c := NewCatalog()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Set(uint(i), float64(j))
				c.Value(uint(i))
			}
		}(i)
	}
	wg.Wait()

	v, ok := c.Value(3)
	require.True(t, ok)
	assert.Equal(t, 99.0, v)
}
