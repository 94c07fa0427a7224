package textedit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBufferHasOneEmptyLine(t *testing.T) {
	b := NewBuffer()
	assert.Equal(t, 1, b.Len())
	assert.Equal(t, []string{""}, b.Lines())
}

func TestLoadNormalizesEmptyInput(t *testing.T) {
	assert.Equal(t, []string{""}, Load(nil).Lines())
	assert.Equal(t, []string{""}, Load([]string{}).Lines())
}

func TestLoadTruncatesSilently(t *testing.T) {
	long := strings.Repeat("q", MaxLineLength+40)
	b := Load([]string{long, "ok"})
	assert.Equal(t, MaxLineLength, b.LineLen(0))
	assert.Equal(t, long[:MaxLineLength], b.Line(0))
	assert.Equal(t, "ok", b.Line(1))

	many := make([]string, MaxLines+10)
	for i := range many {
		many[i] = "l"
	}
	assert.Equal(t, MaxLines, Load(many).Len())
}

func TestSplitJoinReuseCells(t *testing.T) {
	b := load([]string{"abc", "def"}, 4, 8)
	require.True(t, b.Split(0, 1))
	require.True(t, b.Split(2, 0))
	assert.Equal(t, []string{"a", "bc", "", "def"}, b.Lines())

	assert.False(t, b.Split(0, 0), "line capacity reached")

	require.True(t, b.Join(2))
	require.True(t, b.Join(1))
	assert.Equal(t, []string{"abc", "def"}, b.Lines())

	// Freed cells come back clean.
	require.True(t, b.Split(1, 3))
	assert.Equal(t, []string{"abc", "def", ""}, b.Lines())
}

func TestJoinBounds(t *testing.T) {
	b := load([]string{"abcd", "efgh"}, 4, 8)
	assert.False(t, b.Join(0))
	assert.False(t, b.Join(2))
	require.True(t, b.Join(1))
	assert.Equal(t, []string{"abcdefgh"}, b.Lines())

	b = load([]string{"abcd", "efghi"}, 4, 8)
	assert.False(t, b.Join(1))
	assert.Equal(t, []string{"abcd", "efghi"}, b.Lines())
}

func TestInsertDeleteBounds(t *testing.T) {
	b := load([]string{"ab"}, 2, 3)
	assert.False(t, b.InsertByte(0, 3, 'x'))
	assert.False(t, b.InsertByte(0, -1, 'x'))
	require.True(t, b.InsertByte(0, 1, 'x'))
	assert.Equal(t, "axb", b.Line(0))
	assert.False(t, b.InsertByte(0, 0, 'y'))

	assert.False(t, b.DeleteByte(0, 3))
	require.True(t, b.DeleteByte(0, 0))
	assert.Equal(t, "xb", b.Line(0))
}

func TestLinesIsSnapshot(t *testing.T) {
	b := Load([]string{"abc"})
	snap := b.Lines()
	b.InsertByte(0, 0, 'z')
	assert.Equal(t, []string{"abc"}, snap)
	assert.Equal(t, "zabc", b.Line(0))
}
