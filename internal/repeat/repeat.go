// Package repeat turns a held-button signal into discrete auto-repeat ticks.
package repeat

// Axis identifies a tracked navigation direction.
type Axis int

const (
	None Axis = iota
	Up
	Down
	Left
	Right
)

// priority is the order in which axes are examined each frame.
var priority = [...]Axis{Up, Down, Left, Right}

func (a Axis) String() string {
	switch a {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "none"
	}
}

// Mask is a set of axes.
type Mask uint8

// MaskOf builds a Mask from the given axes.
func MaskOf(axes ...Axis) Mask {
	var m Mask
	for _, a := range axes {
		if a != None {
			m |= 1 << a
		}
	}
	return m
}

// Has reports whether a is in the set.
func (m Mask) Has(a Axis) bool {
	return a != None && m&(1<<a) != 0
}

// Config holds the repeat cadence in frames.
type Config struct {
	Delay int // held frames before the first repeat
	Rate  int // frames between repeats afterwards
}

var (
	// Browser is tuned for list navigation.
	Browser = Config{Delay: 15, Rate: 3}
	// Editor repeats more conservatively since each step re-clamps the cursor.
	Editor = Config{Delay: 20, Rate: 4}
)

// Timer tracks a single active axis.
type Timer struct {
	cfg    Config
	active Axis
	ticks  int
}

// New returns an idle Timer.
func New(cfg Config) *Timer {
	if cfg.Rate < 1 {
		cfg.Rate = 1
	}
	if cfg.Delay < 0 {
		cfg.Delay = 0
	}
	return &Timer{cfg: cfg}
}

// Advance consumes one frame of input for axis and reports whether it fires.
func (t *Timer) Advance(pressed, held bool, axis Axis) bool {
	switch {
	case pressed && axis != None:
		t.active = axis
		t.ticks = 0
		return true
	case held && axis != None && axis == t.active:
		t.ticks++
		return t.ticks >= t.cfg.Delay && (t.ticks-t.cfg.Delay)%t.cfg.Rate == 0
	default:
		t.Reset()
		return false
	}
}

// Poll consumes one frame for all axes. While the active axis stays held it is
// the only one considered, so a second direction pressed meanwhile never fires
// until the first is released and the second is pressed again. Otherwise the
// first freshly pressed axis in Up/Down/Left/Right order fires. When neither
// applies the timer resets and Poll returns None.
func (t *Timer) Poll(pressed, held Mask) (Axis, bool) {
	if t.active != None && held.Has(t.active) {
		a := t.active
		return a, t.Advance(pressed.Has(a), true, a)
	}
	for _, a := range priority {
		if pressed.Has(a) {
			return a, t.Advance(true, held.Has(a), a)
		}
	}
	t.Reset()
	return None, false
}

// Reset returns the timer to the inactive state.
func (t *Timer) Reset() {
	t.active = None
	t.ticks = 0
}

// Active returns the axis currently repeating, or None.
func (t *Timer) Active() Axis { return t.active }

// Ticks returns the held frames counted since the last press.
func (t *Timer) Ticks() int { return t.ticks }
