package textedit

// ViewportHeight is the number of buffer lines visible at once.
const ViewportHeight = 21

// Logical key codes delivered by the text-entry decoder.
const (
	KeyBackspace = 8
	KeyEnter     = 13
)

// Direction of a cursor movement.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Cursor addresses a position between bytes: 0 <= Col <= len(line[Row]).
type Cursor struct {
	Row int
	Col int
}

// Editor is a single edit session over a Buffer.
type Editor struct {
	buf       *Buffer
	cur       Cursor
	scrollTop int
	height    int
	dirty     bool
}

// NewEditor starts a session at the top of buf.
func NewEditor(buf *Buffer, height int) *Editor {
	if buf == nil {
		buf = NewBuffer()
	}
	if height < 1 {
		height = 1
	}
	return &Editor{buf: buf, height: height}
}

func (e *Editor) Buffer() *Buffer { return e.buf }
func (e *Editor) Cursor() Cursor  { return e.cur }
func (e *Editor) ScrollTop() int  { return e.scrollTop }
func (e *Editor) Height() int     { return e.height }
func (e *Editor) Dirty() bool     { return e.dirty }
func (e *Editor) Lines() []string { return e.buf.Lines() }
func (e *Editor) MarkSaved()      { e.dirty = false }

// Line returns the text of row.
func (e *Editor) Line(row int) string { return e.buf.Line(row) }

// SetHeight resizes the viewport.
func (e *Editor) SetHeight(height int) {
	if height < 1 {
		height = 1
	}
	e.height = height
	e.Follow()
}

// SetCursor places the cursor, clamping it into the buffer.
func (e *Editor) SetCursor(c Cursor) {
	e.cur = c
	e.clampCursor()
	e.Follow()
}

// HandleKey applies one logical key: a printable code (32-126), KeyBackspace
// or KeyEnter. Other codes are ignored. It reports whether the buffer changed.
func (e *Editor) HandleKey(code int) bool {
	var changed bool
	switch {
	case code == KeyBackspace:
		changed = e.Backspace()
	case code == KeyEnter:
		changed = e.Enter()
	case code >= 32 && code <= 126:
		changed = e.Insert(byte(code))
	}
	return changed
}

// Insert writes c at the cursor. A full line silently refuses it.
func (e *Editor) Insert(c byte) bool {
	if !e.buf.InsertByte(e.cur.Row, e.cur.Col, c) {
		return false
	}
	e.cur.Col++
	e.changed()
	return true
}

// Backspace deletes left of the cursor, or at column 0 merges the line into
// the previous one when the result fits.
func (e *Editor) Backspace() bool {
	if e.cur.Col > 0 {
		if !e.buf.DeleteByte(e.cur.Row, e.cur.Col-1) {
			return false
		}
		e.cur.Col--
		e.changed()
		return true
	}
	if e.cur.Row == 0 {
		return false
	}
	boundary := e.buf.LineLen(e.cur.Row - 1)
	if !e.buf.Join(e.cur.Row) {
		return false
	}
	e.cur = Cursor{Row: e.cur.Row - 1, Col: boundary}
	e.changed()
	return true
}

// Enter splits the line at the cursor and moves to the start of the new line.
func (e *Editor) Enter() bool {
	if !e.buf.Split(e.cur.Row, e.cur.Col) {
		return false
	}
	e.cur = Cursor{Row: e.cur.Row + 1, Col: 0}
	e.changed()
	return true
}

// Move steps the cursor. Left and Right wrap across line boundaries except
// past the first and last line.
func (e *Editor) Move(dir Direction) {
	last := e.buf.Len() - 1
	switch dir {
	case Up:
		if e.cur.Row > 0 {
			e.cur.Row--
		}
	case Down:
		if e.cur.Row < last {
			e.cur.Row++
		}
	case Left:
		if e.cur.Col > 0 {
			e.cur.Col--
		} else if e.cur.Row > 0 {
			e.cur.Row--
			e.cur.Col = e.buf.LineLen(e.cur.Row)
		}
	case Right:
		if e.cur.Col < e.buf.LineLen(e.cur.Row) {
			e.cur.Col++
		} else if e.cur.Row < last {
			e.cur.Row++
			e.cur.Col = 0
		}
	}
	e.clampCursor()
	e.Follow()
}

// Follow recomputes the scroll offset from the cursor row.
func (e *Editor) Follow() {
	e.scrollTop = Follow(e.scrollTop, e.cur.Row, e.height)
}

// Follow returns the scroll offset that keeps row inside a window of height
// rows starting at top, moving top as little as possible.
func Follow(top, row, height int) int {
	if row < top {
		top = row
	}
	if row >= top+height {
		top = row - height + 1
	}
	return top
}

// Visible returns the half-open range of buffer rows inside the viewport.
func (e *Editor) Visible() (start, end int) {
	return e.scrollTop, min(e.scrollTop+e.height, e.buf.Len())
}

func (e *Editor) changed() {
	e.dirty = true
	e.clampCursor()
	e.Follow()
}

func (e *Editor) clampCursor() {
	if e.cur.Row >= e.buf.Len() {
		e.cur.Row = e.buf.Len() - 1
	}
	if e.cur.Row < 0 {
		e.cur.Row = 0
	}
	if n := e.buf.LineLen(e.cur.Row); e.cur.Col > n {
		e.cur.Col = n
	}
	if e.cur.Col < 0 {
		e.cur.Col = 0
	}
}
