package repeat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPressAlwaysFires(t *testing.T) {
	tm := New(Browser)
	assert.True(t, tm.Advance(true, true, Down))
	assert.Equal(t, Down, tm.Active())
	assert.Equal(t, 0, tm.Ticks())

	// A press fires regardless of what was active before.
	for i := 0; i < 7; i++ {
		tm.Advance(false, true, Down)
	}
	assert.True(t, tm.Advance(true, true, Up))
	assert.Equal(t, Up, tm.Active())
	assert.Equal(t, 0, tm.Ticks())
}

func TestContinuousHoldFiresOnSchedule(t *testing.T) {
	tm := New(Browser)
	require.True(t, tm.Advance(true, true, Down))

	var fired []int
	for tick := 1; tick <= 30; tick++ {
		if tm.Advance(false, true, Down) {
			fired = append(fired, tick)
		}
	}
	assert.Equal(t, []int{15, 18, 21, 24, 27, 30}, fired)
}

func TestEditorCadence(t *testing.T) {
	tm := New(Editor)
	require.True(t, tm.Advance(true, true, Left))

	var fired []int
	for tick := 1; tick <= 32; tick++ {
		if tm.Advance(false, true, Left) {
			fired = append(fired, tick)
		}
	}
	assert.Equal(t, []int{20, 24, 28, 32}, fired)
}

func TestReleaseResets(t *testing.T) {
	tm := New(Browser)
	tm.Advance(true, true, Down)
	for i := 0; i < 10; i++ {
		tm.Advance(false, true, Down)
	}
	assert.False(t, tm.Advance(false, false, Down))
	assert.Equal(t, None, tm.Active())
	assert.Equal(t, 0, tm.Ticks())

	// Re-press starts the count again from zero.
	assert.True(t, tm.Advance(true, true, Down))
	for i := 1; i < 15; i++ {
		assert.False(t, tm.Advance(false, true, Down), "tick %d", i)
	}
	assert.True(t, tm.Advance(false, true, Down))
}

func TestHeldDifferentAxisResets(t *testing.T) {
	tm := New(Browser)
	tm.Advance(true, true, Up)
	assert.False(t, tm.Advance(false, true, Down))
	assert.Equal(t, None, tm.Active())
}

func TestZeroRateIsClamped(t *testing.T) {
	tm := New(Config{Delay: 2, Rate: 0})
	tm.Advance(true, true, Right)
	assert.False(t, tm.Advance(false, true, Right))
	assert.True(t, tm.Advance(false, true, Right))
	assert.True(t, tm.Advance(false, true, Right))
}

// ---------------------------------------------------------------------------
// Poll
// ---------------------------------------------------------------------------

func TestPollSecondDirectionWaitsForFreshPress(t *testing.T) {
	tm := New(Browser)

	axis, fired := tm.Poll(MaskOf(Down), MaskOf(Down))
	require.True(t, fired)
	require.Equal(t, Down, axis)

	// Up is pressed while Down is still held: Down keeps the timer and Up is
	// ignored even though it comes first in priority.
	axis, fired = tm.Poll(MaskOf(Up), MaskOf(Up, Down))
	assert.False(t, fired)
	assert.Equal(t, Down, axis)
	assert.Equal(t, Down, tm.Active())

	// Down released while Up is still held: Up was pressed during the hold,
	// so it does not count as a fresh press.
	axis, fired = tm.Poll(0, MaskOf(Up))
	assert.False(t, fired)
	assert.Equal(t, None, axis)
	for i := 0; i < 40; i++ {
		_, fired = tm.Poll(0, MaskOf(Up))
		assert.False(t, fired)
	}

	axis, fired = tm.Poll(MaskOf(Up), MaskOf(Up))
	assert.True(t, fired)
	assert.Equal(t, Up, axis)
}

func TestPollPressWhileOtherHeldDoesNotFire(t *testing.T) {
	tm := New(Browser)
	tm.Poll(MaskOf(Up), MaskOf(Up))

	// Right pressed while Up is held and active: Up keeps repeating.
	axis, fired := tm.Poll(MaskOf(Right), MaskOf(Up, Right))
	assert.Equal(t, Up, axis)
	assert.False(t, fired)
	assert.Equal(t, Up, tm.Active())
}

func TestPollHeldAxisKeepsRepeatingThroughOtherPresses(t *testing.T) {
	tm := New(Browser)
	tm.Poll(MaskOf(Down), MaskOf(Down))

	fires := 0
	for frame := 1; frame <= Browser.Delay; frame++ {
		var pressed Mask
		if frame%5 == 0 {
			pressed = MaskOf(Up)
		}
		axis, fired := tm.Poll(pressed, MaskOf(Up, Down))
		assert.Equal(t, Down, axis)
		if fired {
			fires++
		}
	}
	assert.Equal(t, 1, fires, "only the delayed repeat of Down fires")
}

func TestPollSimultaneousPressUsesPriority(t *testing.T) {
	tm := New(Browser)
	axis, fired := tm.Poll(MaskOf(Right, Down), MaskOf(Right, Down))
	assert.True(t, fired)
	assert.Equal(t, Down, axis)
}

func TestPollNothingHeldResets(t *testing.T) {
	tm := New(Browser)
	tm.Poll(MaskOf(Left), MaskOf(Left))
	axis, fired := tm.Poll(0, 0)
	assert.Equal(t, None, axis)
	assert.False(t, fired)
	assert.Equal(t, None, tm.Active())
}

func TestMask(t *testing.T) {
	m := MaskOf(Up, Right, None)
	assert.True(t, m.Has(Up))
	assert.True(t, m.Has(Right))
	assert.False(t, m.Has(Down))
	assert.False(t, m.Has(None))
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "none", Axis(42).String())
}
