package fileiter

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func collect(t *testing.T, it Iterator) []string {
	t.Helper()
	var lines []string
	for {
		line, err := it.Next()
		if !assert.NoError(t, err) || line == nil {
			return lines
		}
		lines = append(lines, string(line))
	}
}

func TestReaderIterator(t *testing.T) {
	it := NewWithReader(strings.NewReader("a\nb\n\nc"))
	assert.Equal(t, []string{"a", "b", "", "c"}, collect(t, it))
}

func TestReaderIteratorIllFormed(t *testing.T) {
	it := NewWithReader(strings.NewReader("ok\nbad \xff\xfe byte\nnext\n"))
	lines := collect(t, it)
	if assert.Len(t, lines, 3) {
		assert.True(t, utf8.ValidString(lines[1]))
		assert.True(t, strings.HasPrefix(lines[1], "bad \uFFFD"))
		assert.True(t, strings.HasSuffix(lines[1], " byte"))
		assert.Equal(t, "next", lines[2])
	}
}

func TestReaderIteratorLineEndings(t *testing.T) {
	it := NewWithReader(strings.NewReader("a\r\nb\n"))
	assert.Equal(t, []string{"a", "b"}, collect(t, it))
}

func TestReaderIteratorSkipsLongLines(t *testing.T) {
	input := "short\n" +
		strings.Repeat("x", 100) + "\n" +
		strings.Repeat("z", 32) + "\n" +
		"after\n" +
		strings.Repeat("y", 40)
	it := newReaderIterator(strings.NewReader(input), 16, 32)
	assert.Equal(t, []string{"short", strings.Repeat("z", 32), "after"}, collect(t, it))
	assert.EqualValues(t, 2, it.Skipped())
}

func TestSliceIterator(t *testing.T) {
	it := NewWithLines([][]byte{[]byte("a"), nil, []byte("b")})
	assert.Equal(t, []string{"a", "", "b"}, collect(t, it))
}
