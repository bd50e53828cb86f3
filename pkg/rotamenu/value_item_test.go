package rotamenu

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/constants"
	"github.com/BrandonKowalski/rotamenu/pkg/rotamenu/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueAdjustCommitClamped(t *testing.T) {
	rig := newTestRig(t)
	rig.catalog.Set(101, 180)
	v := mustValue(t, rig.pools, Layout{}, 101, 1)

	cmd, ok := v.Select()
	assert.False(t, ok)
	assert.Empty(t, cmd)
	assert.Equal(t, adjusting, v.mode)
	assert.True(t, v.Editing())

	assert.False(t, v.Adjust(5))
	assert.Equal(t, 185.0, v.Value())
	_, pending := v.TakeCommand()
	assert.False(t, pending, "confirm-style fields only emit on commit")

	assert.False(t, v.Adjust(500))
	assert.Equal(t, 300.0, v.Value())

	assert.True(t, v.Adjust(0))
	assert.Equal(t, displaying, v.mode)
	cmd, ok = v.TakeCommand()
	require.True(t, ok)
	assert.Equal(t, "G10 P1 S300.0", cmd)

	_, ok = v.TakeCommand()
	assert.False(t, ok, "a command is taken once")
}

func TestValueCommitAlwaysInRange(t *testing.T) {
	rig := newTestRig(t)
	rig.catalog.SetRules(402, values.Rules{Min: 1, Max: 500, Step: 5, Command: "M221 D{n} S{}"})
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		rig.catalog.Set(402, float64(rng.Intn(700)-100))
		v := mustValue(t, rig.pools, Layout{}, 402, 0)

		v.Select()
		for i := rng.Intn(30); i > 0; i-- {
			clicks := rng.Intn(81) - 40
			if clicks == 0 {
				continue
			}
			v.Adjust(clicks)
		}
		require.True(t, v.Adjust(0))

		cmd, ok := v.TakeCommand()
		require.True(t, ok)
		committed, err := strconv.ParseFloat(strings.TrimPrefix(cmd, "M221 D2 S"), 64)
		require.NoError(t, err, cmd)
		assert.GreaterOrEqual(t, committed, 1.0)
		assert.LessOrEqual(t, committed, 500.0)

		v.release()
	}
}

func TestValueLiveAdjustEmitsEveryStep(t *testing.T) {
	rig := newTestRig(t)
	rig.catalog.Set(600, 10)
	v := mustValue(t, rig.pools, Layout{}, 600, 1)

	v.Select()
	assert.Equal(t, liveAdjusting, v.mode)

	assert.False(t, v.Adjust(3))
	cmd, ok := v.TakeCommand()
	require.True(t, ok)
	assert.Equal(t, "G0 X10.3 F3000", cmd)

	assert.False(t, v.Adjust(-1))
	cmd, _ = v.TakeCommand()
	assert.Equal(t, "G0 X10.2 F3000", cmd)

	// clamped at the range end: no movement, no command
	rig.catalog.SetRules(600, values.Rules{Min: 0, Max: 10.2, Step: 0.1, Live: true, Command: "G0 X{} F3000"})
	v.rules, _ = rig.catalog.Rules(600)
	assert.False(t, v.Adjust(4))
	_, ok = v.TakeCommand()
	assert.False(t, ok)

	assert.True(t, v.Adjust(0))
	_, ok = v.TakeCommand()
	assert.False(t, ok, "the button only ends live editing")
	assert.False(t, v.Editing())
}

func TestValueNoNegativeZero(t *testing.T) {
	rig := newTestRig(t)
	rig.catalog.Set(600, 0.3)
	v := mustValue(t, rig.pools, Layout{}, 600, 1)

	v.Select()
	v.Adjust(-3)
	cmd, ok := v.TakeCommand()
	require.True(t, ok)
	assert.Equal(t, "G0 X0.0 F3000", cmd)
}

func TestValueUnavailable(t *testing.T) {
	rig := newTestRig(t)
	v := mustValue(t, rig.pools, Layout{}, 103, 0)

	assert.False(t, v.CanAdjust())
	assert.True(t, v.Unavailable())
	assert.Equal(t, constants.ValuePlaceholder, v.text())

	_, ok := v.Select()
	assert.False(t, ok)
	assert.False(t, v.Editing())
	assert.True(t, v.Adjust(0))
	assert.True(t, v.Adjust(2))
	_, ok = v.TakeCommand()
	assert.False(t, ok)

	v.UpdateWidth(rig.fb)
	v.Draw(rig.fb, 128, false, 0)

	ref := newTestRig(t)
	ref.fb.Text(0, 0, 0, "***", constants.DefaultValueWidth, false)
	assert.Equal(t, ref.fb.Image().Pix, rig.fb.Image().Pix)
}

func TestValueDisappearsWhileEditing(t *testing.T) {
	rig := newTestRig(t)
	rig.catalog.Set(101, 200)
	v := mustValue(t, rig.pools, Layout{}, 101, 0)

	v.Select()
	v.Adjust(3)
	rig.catalog.Remove(101)

	assert.True(t, v.Adjust(1), "editing ends")
	assert.False(t, v.Editing())
	_, ok := v.TakeCommand()
	assert.False(t, ok)
}

func TestValueReadOnlyAndNotAdjustable(t *testing.T) {
	rig := newTestRig(t)
	rig.catalog.Set(0, 21.5)

	current := mustValue(t, rig.pools, Layout{}, 0, 1)
	assert.False(t, current.CanAdjust(), "current temperatures are read only")
	assert.False(t, current.IsSelectable(), "read-only readings are not focus stops")

	rig.catalog.SetRules(150, values.Rules{Min: 0, Max: 10})
	noCommand := mustValue(t, rig.pools, Layout{}, 150, 0)
	assert.False(t, noCommand.IsSelectable(), "no command template, nothing to send")

	editable := mustValue(t, rig.pools, Layout{}, 102, 0)
	assert.True(t, editable.IsSelectable(), "selectable even before a reading arrives")

	rig.catalog.Set(101, 200)
	fixed, err := rig.pools.NewValue(Layout{}, 101, 0, false)
	require.NoError(t, err)
	assert.False(t, fixed.CanAdjust())
	assert.False(t, fixed.IsSelectable())
}

func TestValueDrawFollowsSource(t *testing.T) {
	rig := newTestRig(t)
	rig.catalog.Set(500, 100)
	v := mustValue(t, rig.pools, Layout{}, 500, 0)
	v.UpdateWidth(rig.fb)
	assert.Equal(t, constants.DefaultValueWidth, v.Width())

	v.Draw(rig.fb, 128, false, 0)
	assert.False(t, v.needsDraw(false))

	rig.catalog.Set(500, 120)
	v.Draw(rig.fb, 128, false, 0)
	assert.Equal(t, 120.0, v.Value())
	assert.Equal(t, "120", v.text())

	// while editing the tentative value wins
	v.Select()
	v.Adjust(5)
	rig.catalog.Set(500, 90)
	v.Draw(rig.fb, 128, true, 0)
	assert.Equal(t, 125.0, v.Value())
}

func TestValueReferencedItem(t *testing.T) {
	rig := newTestRig(t)
	v := mustValue(t, rig.pools, Layout{}, 602, 2)
	assert.Equal(t, uint(2), v.ReferencedItemNumber())
	assert.Equal(t, values.GroupAxisPosition, v.Group())
	assert.Equal(t, uint(602), v.Index())
}
