// Package listnav keeps a selection and a scroll window over a list whose
// entries are owned elsewhere.
package listnav

// ViewportHeight is the number of list rows visible at once.
const ViewportHeight = 21

// Direction of a movement.
type Direction int

const (
	Up   Direction = -1
	Down Direction = 1
)

// Navigator tracks the selection index and the first visible row.
//
// Whenever the list is non-empty, ScrollTop <= Selection < ScrollTop+Height
// and 0 <= ScrollTop <= max(0, Len-Height).
type Navigator struct {
	count     int
	selection int
	scrollTop int
	height    int
}

// New returns a Navigator over an empty list.
func New(height int) *Navigator {
	if height < 1 {
		height = 1
	}
	return &Navigator{height: height}
}

func (n *Navigator) Len() int       { return n.count }
func (n *Navigator) Selection() int { return n.selection }
func (n *Navigator) ScrollTop() int { return n.scrollTop }
func (n *Navigator) Height() int    { return n.height }

// SetCount replaces the list length and restores the invariants.
func (n *Navigator) SetCount(count int) {
	if count < 0 {
		count = 0
	}
	n.count = count
	n.Clamp()
}

// SetHeight changes the window height and restores the invariants.
func (n *Navigator) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	n.height = height
	n.Clamp()
}

// Step moves the selection by one. When the selection leaves the window the
// window slides by exactly one row.
func (n *Navigator) Step(dir Direction) {
	if n.count == 0 {
		return
	}
	n.selection = clamp(n.selection+int(sign(dir)), 0, n.count-1)
	if n.selection < n.scrollTop {
		n.scrollTop--
	}
	if n.selection >= n.scrollTop+n.height {
		n.scrollTop++
	}
	n.Clamp()
}

// PageSkip moves the selection by magnitude rows. Unlike Step, the window
// snaps: a backward skip past the top puts the selection on the first visible
// row, a forward skip past the bottom puts it on the last.
func (n *Navigator) PageSkip(dir Direction, magnitude int) {
	if n.count == 0 || magnitude <= 0 {
		return
	}
	n.selection = clamp(n.selection+int(sign(dir))*magnitude, 0, n.count-1)
	if sign(dir) < 0 {
		if n.selection < n.scrollTop {
			n.scrollTop = n.selection
		}
	} else if n.selection >= n.scrollTop+n.height {
		n.scrollTop = n.selection - n.height + 1
	}
	n.Clamp()
}

// Reset moves back to the first row. Call it whenever the list is replaced.
func (n *Navigator) Reset() {
	n.selection = 0
	n.scrollTop = 0
}

// Clamp re-derives the selection and scroll bounds from the current length
// and height. It is idempotent.
func (n *Navigator) Clamp() {
	if n.count == 0 {
		n.selection = 0
		n.scrollTop = 0
		return
	}
	n.selection = clamp(n.selection, 0, n.count-1)
	if n.scrollTop > n.selection {
		n.scrollTop = n.selection
	}
	if n.selection >= n.scrollTop+n.height {
		n.scrollTop = n.selection - n.height + 1
	}
	n.scrollTop = clamp(n.scrollTop, 0, max(0, n.count-n.height))
}

// Visible returns the half-open range of rows inside the window.
func (n *Navigator) Visible() (start, end int) {
	return n.scrollTop, min(n.scrollTop+n.height, n.count)
}

func sign(d Direction) Direction {
	if d < 0 {
		return Up
	}
	return Down
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
