// Package input samples terminal key events into per-frame button state.
//
// A terminal reports key events, not key levels, so a button counts as held
// for a short window after its last event. An event for a button that is not
// currently held is a press.
package input

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"pocketedit/internal/repeat"
)

const (
	// FrameInterval is the period of the frame clock.
	FrameInterval = time.Second / 60
	// DefaultHoldFrames is how long a button stays held after its last event.
	DefaultHoldFrames = 6
	// QueueSize bounds the text keys waiting to be released.
	QueueSize = 256

	KeyBackspace = 8
	KeyEnter     = 13
)

// Buttons is a set of device buttons.
type Buttons uint8

const (
	Up Buttons = 1 << iota
	Down
	Left
	Right
	A
	B
	Start
)

const numButtons = 7

// Has reports whether every button in b is in the set.
func (s Buttons) Has(b Buttons) bool { return b != 0 && s&b == b }

// Frame is the input seen by one frame.
type Frame struct {
	Pressed Buttons
	Held    Buttons
	Key     int // decoded text key, 0 when none
}

// Directions returns the direction buttons as repeat masks.
func (f Frame) Directions() (pressed, held repeat.Mask) {
	return directions(f.Pressed), directions(f.Held)
}

func directions(b Buttons) repeat.Mask {
	var axes []repeat.Axis
	if b.Has(Up) {
		axes = append(axes, repeat.Up)
	}
	if b.Has(Down) {
		axes = append(axes, repeat.Down)
	}
	if b.Has(Left) {
		axes = append(axes, repeat.Left)
	}
	if b.Has(Right) {
		axes = append(axes, repeat.Right)
	}
	return repeat.MaskOf(axes...)
}

// Sampler accumulates key events between frames.
type Sampler struct {
	keys       KeyMap
	holdFrames int
	textEntry  bool

	pending Buttons
	hold    [numButtons]int
	queue   []int
}

// NewSampler returns a Sampler. holdFrames below 1 selects DefaultHoldFrames.
func NewSampler(keys KeyMap, holdFrames int) *Sampler {
	if holdFrames < 1 {
		holdFrames = DefaultHoldFrames
	}
	return &Sampler{keys: keys, holdFrames: holdFrames}
}

// SetTextEntry switches between browsing and text entry. Leaving text entry
// drops queued keys.
func (s *Sampler) SetTextEntry(on bool) {
	s.textEntry = on
	if !on {
		s.queue = s.queue[:0]
	}
}

// TextEntry reports whether printable keys are decoded as text.
func (s *Sampler) TextEntry() bool { return s.textEntry }

// Observe records one key event.
func (s *Sampler) Observe(msg tea.KeyMsg) {
	if b := s.button(msg); b != 0 {
		s.touch(b)
		return
	}
	if s.textEntry {
		s.enqueue(msg)
	}
}

// Sample closes the current frame and returns its input.
func (s *Sampler) Sample() Frame {
	f := Frame{Pressed: s.pending}
	for i := range s.hold {
		if s.hold[i] > 0 {
			f.Held |= 1 << i
			s.hold[i]--
		}
	}
	s.pending = 0
	if len(s.queue) > 0 {
		f.Key = s.queue[0]
		s.queue = s.queue[1:]
	}
	return f
}

// Release forgets held buttons and queued text, e.g. when focus moves.
func (s *Sampler) Release() {
	s.pending = 0
	s.hold = [numButtons]int{}
	s.queue = s.queue[:0]
}

func (s *Sampler) button(msg tea.KeyMsg) Buttons {
	k := s.keys
	switch {
	case key.Matches(msg, k.Up):
		return Up
	case key.Matches(msg, k.Down):
		return Down
	case key.Matches(msg, k.Left):
		return Left
	case key.Matches(msg, k.Right):
		return Right
	case key.Matches(msg, k.B):
		return B
	case key.Matches(msg, k.Start):
		return Start
	}
	if s.textEntry {
		return 0
	}
	switch {
	case key.Matches(msg, k.A):
		return A
	case key.Matches(msg, k.BackB):
		return B
	case key.Matches(msg, k.QuitStart):
		return Start
	}
	return 0
}

func (s *Sampler) touch(b Buttons) {
	for i := 0; i < numButtons; i++ {
		if b&(1<<i) == 0 {
			continue
		}
		if s.hold[i] == 0 {
			s.pending |= 1 << i
		}
		s.hold[i] = s.holdFrames
	}
}

func (s *Sampler) enqueue(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEnter:
		s.push(KeyEnter)
	case tea.KeyBackspace:
		s.push(KeyBackspace)
	case tea.KeySpace:
		s.push(' ')
	case tea.KeyRunes:
		if msg.Alt {
			return
		}
		for _, r := range msg.Runes {
			if r >= 32 && r <= 126 {
				s.push(int(r))
			}
		}
	}
}

func (s *Sampler) push(code int) {
	if len(s.queue) >= QueueSize {
		return
	}
	s.queue = append(s.queue, code)
}
