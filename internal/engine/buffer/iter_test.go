package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIteratorBasic(t *testing.T) {
	b := NewBufferFromString("line1\nline2\nline3")
	snap := b.Snapshot()

	var got []string
	iter := snap.Lines()
	for iter.Next() {
		got = append(got, iter.Text())
	}

	assert.Equal(t, []string{"line1", "line2", "line3"}, got)
}

func TestLineIteratorEmptyBuffer(t *testing.T) {
	b := NewBuffer()
	snap := b.Snapshot()

	iter := snap.Lines()
	assert.True(t, iter.Next())
	assert.Equal(t, "", iter.Text())
	assert.False(t, iter.Next())
}

func TestLineIteratorTracksOffsets(t *testing.T) {
	b := NewBufferFromString("abc\ndefgh\nij")
	snap := b.Snapshot()

	type bound struct {
		start, end ByteOffset
		text       string
	}
	var got []bound

	iter := snap.Lines()
	for iter.Next() {
		got = append(got, bound{iter.StartOffset(), iter.EndOffset(), iter.Text()})
	}

	assert.Equal(t, []bound{
		{0, 3, "abc"},
		{4, 9, "defgh"},
		{10, 12, "ij"},
	}, got)
}

func TestLineIteratorUnaffectedByLaterMutation(t *testing.T) {
	b := NewBufferFromString("one\ntwo")
	snap := b.Snapshot()

	_, err := b.Insert(0, "zero\n")
	assert := assert.New(t)
	assert.NoError(err)

	var got []string
	iter := snap.Lines()
	for iter.Next() {
		got = append(got, iter.Text())
	}
	assert.Equal([]string{"one", "two"}, got)
}
