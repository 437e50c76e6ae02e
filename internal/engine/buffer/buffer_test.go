package buffer

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer()

	assert.True(t, b.IsEmpty())
	assert.Equal(t, ByteOffset(0), b.Len())
	assert.Equal(t, uint32(1), b.LineCount())
}

func TestNewBufferFromString(t *testing.T) {
	text := "Hello, World!"
	b := NewBufferFromString(text)

	assert.Equal(t, text, b.Text())
	assert.Equal(t, ByteOffset(len(text)), b.Len())
}

func TestNewBufferFromStringMultiline(t *testing.T) {
	text := "line1\nline2\nline3"
	b := NewBufferFromString(text)

	require.Equal(t, uint32(3), b.LineCount())
	assert.Equal(t, "line1", b.LineText(0))
	assert.Equal(t, "line2", b.LineText(1))
	assert.Equal(t, "line3", b.LineText(2))
}

func TestBufferInsert(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Insert(5, ",")
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(6), end)
	assert.Equal(t, "Hello, World", b.Text())
}

func TestBufferInsertAtStart(t *testing.T) {
	b := NewBufferFromString("World")

	_, err := b.Insert(0, "Hello ")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", b.Text())
}

func TestBufferInsertAtEnd(t *testing.T) {
	b := NewBufferFromString("Hello")

	_, err := b.Insert(5, " World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World", b.Text())
}

func TestBufferInsertOutOfRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	_, err := b.Insert(100, "X")
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)

	_, err = b.Insert(-1, "X")
	assert.ErrorIs(t, err, ErrOffsetOutOfRange)
}

func TestBufferDelete(t *testing.T) {
	b := NewBufferFromString("Hello, World!")

	require.NoError(t, b.Delete(5, 7))
	assert.Equal(t, "HelloWorld!", b.Text())
}

func TestBufferDeleteInvalidRange(t *testing.T) {
	b := NewBufferFromString("Hello")

	assert.ErrorIs(t, b.Delete(3, 2), ErrRangeInvalid)
	assert.ErrorIs(t, b.Delete(0, 100), ErrRangeInvalid)
}

func TestBufferReplace(t *testing.T) {
	b := NewBufferFromString("Hello World")

	end, err := b.Replace(6, 11, "Go")
	require.NoError(t, err)
	assert.Equal(t, ByteOffset(8), end)
	assert.Equal(t, "Hello Go", b.Text())
}

func TestBufferApplyEdit(t *testing.T) {
	b := NewBufferFromString("Hello World")

	edit := NewEdit(Range{Start: 0, End: 5}, "Hi")
	result, err := b.ApplyEdit(edit)
	require.NoError(t, err)

	assert.Equal(t, "Hi World", b.Text())
	assert.Equal(t, "Hello", result.OldText)
	assert.Equal(t, int64(-3), result.Delta)
}

func TestBufferApplyEdits(t *testing.T) {
	b := NewBufferFromString("Hello World")

	// Edits must be in reverse order.
	edits := []Edit{
		NewEdit(Range{Start: 6, End: 11}, "Go"),     // "World" -> "Go"
		NewEdit(Range{Start: 0, End: 5}, "Goodbye"), // "Hello" -> "Goodbye"
	}

	require.NoError(t, b.ApplyEdits(edits))
	assert.Equal(t, "Goodbye Go", b.Text())
}

func TestBufferApplyEditsOverlap(t *testing.T) {
	b := NewBufferFromString("Hello World")

	edits := []Edit{
		NewEdit(Range{Start: 3, End: 8}, "X"),
		NewEdit(Range{Start: 5, End: 10}, "Y"),
	}

	err := b.ApplyEdits(edits)
	assert.ErrorIs(t, err, ErrEditsOverlap)
}

func TestBufferLineOperations(t *testing.T) {
	text := "first line\nsecond line\nthird line"
	b := NewBufferFromString(text)

	require.Equal(t, uint32(3), b.LineCount())

	tests := []struct {
		line     uint32
		expected string
	}{
		{0, "first line"},
		{1, "second line"},
		{2, "third line"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, b.LineText(tt.line))
	}
}

func TestBufferLineStartEnd(t *testing.T) {
	text := "abc\ndefgh\nij"
	b := NewBufferFromString(text)

	tests := []struct {
		line          uint32
		expectedStart ByteOffset
		expectedEnd   ByteOffset
	}{
		{0, 0, 3},
		{1, 4, 9},
		{2, 10, 12},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expectedStart, b.LineStartOffset(tt.line))
		assert.Equal(t, tt.expectedEnd, b.LineEndOffset(tt.line))
	}
}

func TestBufferOffsetToPoint(t *testing.T) {
	text := "abc\ndefgh\nij"
	b := NewBufferFromString(text)

	tests := []struct {
		offset   ByteOffset
		expected Point
	}{
		{0, Point{Line: 0, Column: 0}},
		{2, Point{Line: 0, Column: 2}},
		{3, Point{Line: 0, Column: 3}},
		{4, Point{Line: 1, Column: 0}},
		{7, Point{Line: 1, Column: 3}},
		{10, Point{Line: 2, Column: 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, b.OffsetToPoint(tt.offset))
	}
}

func TestBufferPointToOffset(t *testing.T) {
	text := "abc\ndefgh\nij"
	b := NewBufferFromString(text)

	tests := []struct {
		point    Point
		expected ByteOffset
	}{
		{Point{Line: 0, Column: 0}, 0},
		{Point{Line: 0, Column: 2}, 2},
		{Point{Line: 1, Column: 0}, 4},
		{Point{Line: 1, Column: 3}, 7},
		{Point{Line: 2, Column: 0}, 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, b.PointToOffset(tt.point))
	}
}

func TestBufferRuneAt(t *testing.T) {
	b := NewBufferFromString("ab")

	r, size := b.RuneAt(0)
	assert.Equal(t, 'a', r)
	assert.Equal(t, 1, size)

	_, size = b.RuneAt(100)
	assert.Equal(t, 0, size)
}

func TestBufferSnapshot(t *testing.T) {
	b := NewBufferFromString("Hello")
	snap := b.Snapshot()

	_, err := b.Insert(5, " World")
	require.NoError(t, err)

	// Snapshot should retain the original content.
	assert.Equal(t, "Hello", snap.Text())
	// Buffer should have the new content.
	assert.Equal(t, "Hello World", b.Text())
}

func TestBufferSnapshotOperations(t *testing.T) {
	text := "abc\ndefgh\nij"
	b := NewBufferFromString(text)
	snap := b.Snapshot()

	assert.Equal(t, ByteOffset(len(text)), snap.Len())
	assert.Equal(t, uint32(3), snap.LineCount())
}

func TestBufferSnapshotFingerprintStableAndSensitive(t *testing.T) {
	b := NewBufferFromString("Hello")
	snapA := b.Snapshot()
	snapB := b.Snapshot()

	assert.Equal(t, snapA.Fingerprint(), snapB.Fingerprint())

	_, err := b.Insert(5, "!")
	require.NoError(t, err)
	snapC := b.Snapshot()

	assert.NotEqual(t, snapA.Fingerprint(), snapC.Fingerprint())
}

func TestBufferLineEndingNormalization(t *testing.T) {
	b := NewBufferFromString("line1\r\nline2\r\n")
	assert.Equal(t, "line1\nline2\n", b.Text())

	b = NewBufferFromString("line1\rline2\r")
	assert.Equal(t, "line1\nline2\n", b.Text())
}

func TestBufferWithCRLFLineEnding(t *testing.T) {
	b := NewBufferFromString("line1\nline2", WithCRLF())
	assert.Equal(t, "line1\r\nline2", b.Text())

	_, err := b.Insert(ByteOffset(len(b.Text())), "\nline3")
	require.NoError(t, err)
	assert.Equal(t, "line1\r\nline2\r\nline3", b.Text())
}

func TestBufferWithBufferThreshold(t *testing.T) {
	b := NewBuffer(WithBufferThreshold(4))
	_, err := b.Insert(0, "hello world")
	require.NoError(t, err)
	assert.Equal(t, "hello world", b.Text())
}

func TestBufferRevisionID(t *testing.T) {
	b := NewBuffer()
	rev1 := b.RevisionID()

	_, err := b.Insert(0, "Hello")
	require.NoError(t, err)
	rev2 := b.RevisionID()
	assert.NotEqual(t, rev1, rev2)

	require.NoError(t, b.Delete(0, 5))
	rev3 := b.RevisionID()
	assert.NotEqual(t, rev2, rev3)
}

func TestDetectLineEnding(t *testing.T) {
	tests := []struct {
		text     string
		expected LineEnding
	}{
		{"no newlines", LineEndingLF},
		{"unix\nstyle\n", LineEndingLF},
		{"windows\r\nstyle\r\n", LineEndingCRLF},
		{"old mac\rstyle\r", LineEndingCR},
		{"mixed\r\nmore\nlines", LineEndingCRLF}, // CRLF wins
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectLineEnding(tt.text))
	}
}

func TestPointOperations(t *testing.T) {
	p1 := Point{Line: 1, Column: 5}
	p2 := Point{Line: 1, Column: 10}
	p3 := Point{Line: 2, Column: 0}

	assert.True(t, p1.Before(p2))
	assert.True(t, p2.Before(p3))
	assert.False(t, p2.Before(p1))
	assert.Zero(t, p1.Compare(p1))
}

func TestRangeOperations(t *testing.T) {
	r1 := Range{Start: 0, End: 10}
	r2 := Range{Start: 5, End: 15}
	r3 := Range{Start: 20, End: 30}

	assert.True(t, r1.Overlaps(r2))
	assert.False(t, r1.Overlaps(r3))
	assert.True(t, r1.Contains(5))
	assert.False(t, r1.Contains(10)) // exclusive end

	assert.Equal(t, Range{Start: 5, End: 10}, r1.Intersect(r2))
	assert.Equal(t, Range{Start: 0, End: 15}, r1.Union(r2))
}

func TestEditOperations(t *testing.T) {
	insert := NewInsert(5, "Hello")
	assert.True(t, insert.IsInsert())

	del := NewDelete(0, 5)
	assert.True(t, del.IsDelete())

	replace := NewEdit(Range{Start: 0, End: 5}, "World")
	assert.True(t, replace.IsReplace())

	assert.Equal(t, ByteOffset(5), insert.Delta())
	assert.Equal(t, ByteOffset(-5), del.Delta())
}

func TestBufferApplyEditsErrorsDoNotMutate(t *testing.T) {
	b := NewBufferFromString("Hello World")

	err := b.ApplyEdits([]Edit{NewEdit(Range{Start: 0, End: 100}, "x")})
	assert.True(t, errors.Is(err, ErrRangeInvalid))
	assert.Equal(t, "Hello World", b.Text())
}

func TestConcatenatedDelete(t *testing.T) {
	b := NewBufferFromString("The quick brown fox")
	require.NoError(t, b.Delete(4, 10))
	assert.Equal(t, "The brown fox", b.Text())
	assert.False(t, strings.Contains(b.Text(), "quick"))
}
