package buffer

import "strings"

// LineIterator walks the lines of a Snapshot one at a time, in the
// manner of the piece tree's own line-content retrieval but without
// requiring the caller to know the line count up front. It holds its
// own materialized copy of the snapshot text, so it is unaffected by
// any later mutation of the Buffer the Snapshot came from.
type LineIterator struct {
	full      string
	seq       string
	lineNum   uint32
	lineStart ByteOffset
	lineEnd   ByteOffset
	text      string
	pos       int
	done      bool
	started   bool
}

// Lines returns an iterator over all lines in the snapshot, each
// reported without its trailing newline sequence.
func (s *Snapshot) Lines() *LineIterator {
	return &LineIterator{
		full: s.Text(),
		seq:  s.lineEnding.Sequence(),
	}
}

// Next advances to the next line. It returns true if a line is
// available, false once iteration is complete.
func (it *LineIterator) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
		if it.full == "" {
			it.text, it.lineStart, it.lineEnd = "", 0, 0
			it.done = true
			return true
		}
	} else {
		it.lineNum++
		it.pos = int(it.lineEnd) + len(it.seq)
		if it.pos > len(it.full) {
			it.done = true
			return false
		}
	}

	if idx := strings.Index(it.full[it.pos:], it.seq); idx >= 0 {
		it.lineStart = ByteOffset(it.pos)
		it.lineEnd = ByteOffset(it.pos + idx)
	} else {
		it.lineStart = ByteOffset(it.pos)
		it.lineEnd = ByteOffset(len(it.full))
	}
	it.text = it.full[it.lineStart:it.lineEnd]
	return true
}

// Text returns the text of the current line, without its newline.
func (it *LineIterator) Text() string {
	return it.text
}

// Line returns the current line number (0-indexed).
func (it *LineIterator) Line() uint32 {
	return it.lineNum
}

// StartOffset returns the byte offset of the start of the current line.
func (it *LineIterator) StartOffset() ByteOffset {
	return it.lineStart
}

// EndOffset returns the byte offset of the end of the current line
// (before its newline sequence, if any).
func (it *LineIterator) EndOffset() ByteOffset {
	return it.lineEnd
}
