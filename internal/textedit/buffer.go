// Package textedit implements a fixed-capacity line buffer and the cursor
// state machine that edits it.
package textedit

const (
	// MaxLines is the number of lines a buffer can hold.
	MaxLines = 1024
	// MaxLineLength is the number of bytes a single line can hold.
	MaxLineLength = 255
)

// Buffer is an ordered set of bounded lines stored in a preallocated arena.
//
// Each line lives in a fixed cell of the arena. rows maps a line index to its
// cell, and cells past the current count form the free pool, so inserting or
// removing a line only permutes cell indices.
type Buffer struct {
	arena    []byte
	lens     []int // by cell
	rows     []int // row -> cell
	count    int
	maxLines int
	maxLen   int
}

// NewBuffer returns a buffer with a single empty line.
func NewBuffer() *Buffer {
	return newBuffer(MaxLines, MaxLineLength)
}

func newBuffer(maxLines, maxLen int) *Buffer {
	b := &Buffer{
		arena:    make([]byte, maxLines*maxLen),
		lens:     make([]int, maxLines),
		rows:     make([]int, maxLines),
		count:    1,
		maxLines: maxLines,
		maxLen:   maxLen,
	}
	for i := range b.rows {
		b.rows[i] = i
	}
	return b
}

// Load builds a buffer from lines. Lines past MaxLines are dropped and bytes
// past MaxLineLength are cut; the result always has at least one line.
func Load(lines []string) *Buffer {
	return load(lines, MaxLines, MaxLineLength)
}

func load(lines []string, maxLines, maxLen int) *Buffer {
	b := newBuffer(maxLines, maxLen)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	for i, l := range lines {
		cell := b.rows[i]
		b.lens[cell] = copy(b.cellBytes(cell), l)
	}
	b.count = max(1, len(lines))
	return b
}

// Len returns the number of lines.
func (b *Buffer) Len() int { return b.count }

// MaxLines returns the line capacity.
func (b *Buffer) MaxLines() int { return b.maxLines }

// MaxLineLength returns the per-line byte capacity.
func (b *Buffer) MaxLineLength() int { return b.maxLen }

// LineLen returns the length of line row.
func (b *Buffer) LineLen(row int) int {
	return b.lens[b.rows[row]]
}

// Line returns a copy of line row.
func (b *Buffer) Line(row int) string {
	return string(b.bytes(row))
}

// Lines returns a snapshot of every line.
func (b *Buffer) Lines() []string {
	out := make([]string, b.count)
	for i := range out {
		out[i] = b.Line(i)
	}
	return out
}

// InsertByte writes c at col of line row, shifting the tail right. It reports
// false without changing anything when the line is full.
func (b *Buffer) InsertByte(row, col int, c byte) bool {
	cell := b.rows[row]
	n := b.lens[cell]
	if n >= b.maxLen || col < 0 || col > n {
		return false
	}
	buf := b.cellBytes(cell)
	copy(buf[col+1:n+1], buf[col:n])
	buf[col] = c
	b.lens[cell] = n + 1
	return true
}

// DeleteByte removes the byte at col of line row, shifting the tail left.
func (b *Buffer) DeleteByte(row, col int) bool {
	cell := b.rows[row]
	n := b.lens[cell]
	if col < 0 || col >= n {
		return false
	}
	buf := b.cellBytes(cell)
	copy(buf[col:n-1], buf[col+1:n])
	b.lens[cell] = n - 1
	return true
}

// Split cuts line row at col. The tail becomes a new line right after it.
// It reports false when the buffer is at its line capacity.
func (b *Buffer) Split(row, col int) bool {
	if b.count >= b.maxLines {
		return false
	}
	cell := b.rows[row]
	n := b.lens[cell]
	if col < 0 || col > n {
		return false
	}

	free := b.rows[b.count]
	copy(b.rows[row+2:b.count+1], b.rows[row+1:b.count])
	b.rows[row+1] = free
	b.count++

	b.lens[free] = copy(b.cellBytes(free), b.cellBytes(cell)[col:n])
	b.lens[cell] = col
	return true
}

// Join appends line row to line row-1 and removes row. It reports false, with
// no change, when row is the first line or the joined line would not fit.
func (b *Buffer) Join(row int) bool {
	if row <= 0 || row >= b.count {
		return false
	}
	prev, cur := b.rows[row-1], b.rows[row]
	pn, cn := b.lens[prev], b.lens[cur]
	if pn+cn > b.maxLen {
		return false
	}
	copy(b.cellBytes(prev)[pn:], b.cellBytes(cur)[:cn])
	b.lens[prev] = pn + cn

	copy(b.rows[row:b.count-1], b.rows[row+1:b.count])
	b.count--
	b.rows[b.count] = cur
	b.lens[cur] = 0
	return true
}

func (b *Buffer) bytes(row int) []byte {
	cell := b.rows[row]
	return b.cellBytes(cell)[:b.lens[cell]]
}

func (b *Buffer) cellBytes(cell int) []byte {
	off := cell * b.maxLen
	return b.arena[off : off+b.maxLen : off+b.maxLen]
}
