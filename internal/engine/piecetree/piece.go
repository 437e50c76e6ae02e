package piecetree

// Piece describes a half-open byte range inside one appendableBuffer,
// with the range's length and newline count cached so the tree's
// aggregates never need to re-scan buffer content to maintain them.
// Pieces with Length == 0 are never stored in the tree.
type Piece struct {
	BufferIndex int
	Start       Position
	End         Position
	Length      int
	LineCount   int
}

// lineCountOf scans buf's bytes in [start, end) and returns the number
// of newline sequences strictly inside that range. This is authoritative
// — piece operations always recompute it from the underlying bytes
// rather than trying to infer it arithmetically from split/erase deltas.
func lineCountOf(buf *appendableBuffer, start, end Position) int {
	so := buf.offsetFromPosition(start)
	eo := buf.offsetFromPosition(end)
	return countNewlines(buf.content[so:eo])
}

// splitPiece cuts p at localOffset (a byte offset relative to p's
// start) and discards gap bytes between the two halves. It is used both
// for mid-piece insertion (gap == 0) and mid-piece erasure
// (gap == bytes removed). Either half may come back with Length == 0.
func splitPiece(buf *appendableBuffer, p Piece, localOffset, gap int) (left, right Piece) {
	absStart := buf.offsetFromPosition(p.Start)
	cutOffset := absStart + localOffset
	gapEnd := cutOffset + gap

	cutPos := buf.positionFromOffset(cutOffset)
	gapEndPos := buf.positionFromOffset(gapEnd)

	left = Piece{
		BufferIndex: p.BufferIndex,
		Start:       p.Start,
		End:         cutPos,
		Length:      localOffset,
	}
	left.LineCount = lineCountOf(buf, left.Start, left.End)

	right = Piece{
		BufferIndex: p.BufferIndex,
		Start:       gapEndPos,
		End:         p.End,
		Length:      p.Length - localOffset - gap,
	}
	right.LineCount = lineCountOf(buf, right.Start, right.End)

	return left, right
}

// eraseHead shrinks p by removing n bytes from its start.
func eraseHead(buf *appendableBuffer, p Piece, n int) Piece {
	if n <= 0 {
		return p
	}
	newStart, _ := buf.movePositionBy(p.Start, n)
	p.Start = newStart
	p.Length -= n
	p.LineCount = lineCountOf(buf, p.Start, p.End)
	return p
}

// eraseTail shrinks p by removing n bytes from its end.
func eraseTail(buf *appendableBuffer, p Piece, n int) Piece {
	if n <= 0 {
		return p
	}
	newEnd, _ := buf.movePositionBy(p.End, -n)
	p.End = newEnd
	p.Length -= n
	p.LineCount = lineCountOf(buf, p.Start, p.End)
	return p
}
