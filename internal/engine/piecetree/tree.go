package piecetree

import "io"

// defaultBufferThreshold bounds how large a single change buffer or
// loaded file chunk is allowed to grow before a new appendableBuffer is
// started. Keeping buffers capped this way keeps the worst-case
// reallocation cost of any single append bounded, independent of how
// much text has accumulated in the document overall.
const defaultBufferThreshold = 65535

// Tree is an augmented red-black tree of pieces over a set of
// append-only byte buffers. It is the core, unsynchronized text-storage
// engine; callers that need safe concurrent access should wrap a Tree
// behind their own lock. The internal/engine/buffer package wraps a Tree
// with host-facing types but adds no locking of its own.
type Tree struct {
	root    *node
	nilNode *node

	// buffers[0] is always the first change buffer. Additional entries
	// are appended either when LoadFile reads another threshold-sized
	// chunk, or when the active change buffer fills past threshold and
	// a fresh one is rolled in.
	buffers       []*appendableBuffer
	currentChange int
	threshold     int
	newline       Newline

	length    int
	lineCount int
}

// Create returns an empty tree ready to accept inserts, or to have
// LoadFile populate it from existing content.
func Create(opts ...Option) *Tree {
	t := &Tree{
		newline:   NewlineLF,
		threshold: defaultBufferThreshold,
	}
	t.nilNode = &node{color: black}
	t.nilNode.left = t.nilNode
	t.nilNode.right = t.nilNode
	t.nilNode.parent = t.nilNode
	t.root = t.nilNode
	t.buffers = []*appendableBuffer{newAppendableBuffer()}

	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Destroy releases the tree's internal buffers and nodes. Go's garbage
// collector reclaims this memory regardless, but a Tree that has been
// explicitly destroyed may not be used again, mirroring the lifecycle
// of the reference implementation it was ported from.
func (t *Tree) Destroy() {
	t.root = nil
	t.nilNode = nil
	t.buffers = nil
}

// Length returns the document's total length in bytes.
func (t *Tree) Length() int { return t.length }

// Newline returns the document's declared newline convention.
func (t *Tree) Newline() Newline { return t.newline }

// LineCount returns the number of newline sequences in the document.
// The document always has LineCount()+1 logical lines, since the final
// line needs no trailing newline.
func (t *Tree) LineCount() int { return t.lineCount }

// LoadFile appends the entirety of r to the tree as a sequence of
// read-only original buffers, one per threshold-sized chunk read. It is
// meant to populate an otherwise-empty tree with a file's starting
// content; calling it after edits have already been made simply appends
// r's content to the end of the document.
func (t *Tree) LoadFile(r io.Reader) error {
	chunk := make([]byte, t.threshold)
	for {
		n, err := io.ReadFull(r, chunk)
		if n > 0 {
			owned := append([]byte(nil), chunk[:n]...)
			ab := newAppendableBufferFromBytes(owned)
			idx := len(t.buffers)
			t.buffers = append(t.buffers, ab)
			t.insertNodeAtEnd(Piece{
				BufferIndex: idx,
				Start:       Position{0, 0},
				End:         ab.endPosition(),
				Length:      ab.len(),
				LineCount:   countNewlines(ab.content),
			})
		}
		switch err {
		case nil:
			continue
		case io.EOF, io.ErrUnexpectedEOF:
			return nil
		default:
			return Error.Wrap(err)
		}
	}
}

// Insert splices text into the document at offset, which must be in
// [0, Length()]. An empty text is a no-op.
func (t *Tree) Insert(offset int, text string) error {
	if offset < 0 || offset > t.length {
		return ErrBadInsertion
	}
	if text == "" {
		return nil
	}
	data := []byte(text)

	if offset == t.length {
		if t.tryExtendLast(data) {
			return nil
		}
		t.insertNodeAtEnd(t.appendPiece(data))
		return nil
	}

	n, _, localOffset := t.nodeAtOffset(offset)
	if t.isNil(n) {
		return ErrBadInsertion
	}

	if localOffset == 0 {
		if pred := t.prev(n); !t.isNil(pred) && t.tryExtendNode(pred, data) {
			return nil
		}
		p := t.appendPiece(data)
		t.insertBefore(n, newPieceNode(p))
		t.length += p.Length
		t.lineCount += p.LineCount
		return nil
	}

	buf := t.buffers[n.piece.BufferIndex]
	left, right := splitPiece(buf, n.piece, localOffset, 0)
	t.setPieceAndPropagate(n, left)

	inserted := newPieceNode(t.appendPiece(data))
	t.insertAfter(n, inserted)
	t.insertAfter(inserted, newPieceNode(right))
	t.length += inserted.piece.Length + right.Length
	t.lineCount += inserted.piece.LineCount + right.LineCount

	return nil
}

// Erase removes the byte range [start, end) from the document. start
// and end must satisfy 0 <= start <= end <= Length(). start == end is a
// no-op.
func (t *Tree) Erase(start, end int) error {
	if start < 0 || end < start || end > t.length {
		return ErrInvalidOffsets
	}
	if start == end {
		return nil
	}

	sn, _, sLocal := t.nodeAtOffset(start)
	en, _, eLocal := t.nodeAtOffset(end)
	if t.isNil(sn) {
		return ErrInvalidOffsets
	}

	if sn == en {
		buf := t.buffers[sn.piece.BufferIndex]
		left, right := splitPiece(buf, sn.piece, sLocal, eLocal-sLocal)
		t.spliceReplacement(sn, left, right)
		return nil
	}

	var mid []*node
	for cur := t.next(sn); !t.isNil(cur) && cur != en; cur = t.next(cur) {
		mid = append(mid, cur)
	}

	if !t.isNil(en) {
		buf := t.buffers[en.piece.BufferIndex]
		newPiece := eraseHead(buf, en.piece, eLocal)
		if newPiece.Length == 0 {
			t.removeAccounted(en)
		} else {
			t.setPieceAndPropagate(en, newPiece)
		}
	}

	for _, m := range mid {
		t.removeAccounted(m)
	}

	buf := t.buffers[sn.piece.BufferIndex]
	newPiece := eraseTail(buf, sn.piece, sn.piece.Length-sLocal)
	if newPiece.Length == 0 {
		t.removeAccounted(sn)
	} else {
		t.setPieceAndPropagate(sn, newPiece)
	}

	return nil
}

// Text returns the entire document content.
func (t *Tree) Text() string {
	return string(t.readRange(0, t.length))
}

// TextRange returns the document content in [start, end).
func (t *Tree) TextRange(start, end int) (string, error) {
	if start < 0 || end < start || end > t.length {
		return "", ErrInvalidOffsets
	}
	return string(t.readRange(start, end)), nil
}

// ByteAt returns the byte at offset, and false if offset is out of range.
func (t *Tree) ByteAt(offset int) (byte, bool) {
	if offset < 0 || offset >= t.length {
		return 0, false
	}
	b := t.readRange(offset, offset+1)
	if len(b) == 0 {
		return 0, false
	}
	return b[0], true
}

// PositionAt converts an absolute byte offset into a (line, column)
// pair, both 0-indexed, where column counts bytes since the start of
// that line. It is the inverse of OffsetAt.
func (t *Tree) PositionAt(offset int) (line, column int, err error) {
	if offset < 0 || offset > t.length {
		return 0, 0, ErrBadInsertion
	}
	line = t.lineAt(offset)
	lineStart := 0
	if line > 0 {
		lineStart, _ = t.lineStartOffset(line)
	}
	return line, offset - lineStart, nil
}

// OffsetAt converts a (line, column) pair into an absolute byte offset.
// It performs no bounds checking against where line's content actually
// ends, matching the reference implementation's own arithmetic-only
// conversion; a column past the end of its line simply lands on or past
// the start of the next one.
func (t *Tree) OffsetAt(line, column int) (int, error) {
	if line < 0 || line > t.lineCount || column < 0 {
		return 0, ErrBadInsertion
	}
	lineStart := 0
	if line > 0 {
		ls, ok := t.lineStartOffset(line)
		if !ok {
			return 0, ErrBadInsertion
		}
		lineStart = ls
	}
	offset := lineStart + column
	if offset > t.length {
		return 0, ErrBadInsertion
	}
	return offset, nil
}

// lineAt returns the 0-indexed line number that offset falls on, by
// counting newlines strictly before it.
func (t *Tree) lineAt(offset int) int {
	if offset == 0 {
		return 0
	}
	n, _, localOffset, lineAtPieceStart := t.pieceAtOffset(offset)
	if t.isNil(n) {
		return t.lineCount
	}
	buf := t.buffers[n.piece.BufferIndex]
	so := buf.offsetFromPosition(n.piece.Start)
	within := countNewlines(buf.content[so : so+localOffset])
	return lineAtPieceStart + within
}

// pieceAtOffset is nodeAtOffset's combined-aggregate sibling: it walks
// the same offset-ordered path nodeAtOffset does, but accumulates the
// line-count aggregate alongside the length aggregate at each step,
// since both describe the very same skipped subtrees. That lets callers
// needing line information avoid a second independent tree descent.
func (t *Tree) pieceAtOffset(offset int) (n *node, pieceStart, localOffset, lineAtPieceStart int) {
	n = t.root
	consumed := 0
	lineConsumed := 0
	rel := offset
	for !t.isNil(n) {
		if rel < n.leftSubtreeLength {
			n = n.left
			continue
		}
		rel2 := rel - n.leftSubtreeLength
		start := consumed + n.leftSubtreeLength
		lineStart := lineConsumed + n.leftSubtreeLineCount
		if rel2 < n.piece.Length {
			return n, start, rel2, lineStart
		}
		consumed = start + n.piece.Length
		lineConsumed = lineStart + n.piece.LineCount
		rel = rel2 - n.piece.Length
		n = n.right
	}
	return t.nilNode, consumed, 0, lineConsumed
}

// LineContent returns the text of logical line row (0-indexed), not
// including its trailing newline sequence if one is present. Valid rows
// are [0, LineCount()].
func (t *Tree) LineContent(row int) (string, error) {
	if row < 0 || row > t.lineCount {
		return "", ErrLineOutOfRange
	}

	startOffset := 0
	if row > 0 {
		off, ok := t.lineStartOffset(row)
		if !ok {
			return "", ErrLineOutOfRange
		}
		startOffset = off
	}

	endOffset := t.length
	if row < t.lineCount {
		if off, ok := t.lineStartOffset(row + 1); ok {
			endOffset = off
		}
	}

	content := t.readRange(startOffset, endOffset)
	if n := newlineSequenceLenAtEnd(content); n > 0 {
		content = content[:len(content)-n]
	}
	return string(content), nil
}

// nodeAtOffset locates the node whose piece contains absolute byte
// offset, returning that node, the absolute offset its piece starts at,
// and offset's position relative to the piece's start. It returns the
// sentinel if offset == Length(), since no piece begins exactly there.
func (t *Tree) nodeAtOffset(offset int) (n *node, pieceStart, localOffset int) {
	n = t.root
	consumed := 0
	rel := offset
	for !t.isNil(n) {
		if rel < n.leftSubtreeLength {
			n = n.left
			continue
		}
		rel2 := rel - n.leftSubtreeLength
		start := consumed + n.leftSubtreeLength
		if rel2 < n.piece.Length {
			return n, start, rel2
		}
		consumed = start + n.piece.Length
		rel = rel2 - n.piece.Length
		n = n.right
	}
	return t.nilNode, consumed, 0
}

// findNthNewline locates the node containing the target-th (0-indexed)
// newline sequence in the whole document, returning that node, the
// absolute offset its piece starts at, and the newline's index relative
// to the piece's own newlines. It returns the sentinel if target is out
// of range.
func (t *Tree) findNthNewline(target int) (n *node, pieceStart, withinPiece int) {
	n = t.root
	consumed := 0
	rel := target
	for !t.isNil(n) {
		if rel < n.leftSubtreeLineCount {
			n = n.left
			continue
		}
		rel2 := rel - n.leftSubtreeLineCount
		start := consumed + n.leftSubtreeLength
		if rel2 < n.piece.LineCount {
			return n, start, rel2
		}
		consumed = start + n.piece.Length
		rel = rel2 - n.piece.LineCount
		n = n.right
	}
	return t.nilNode, consumed, 0
}

// lineStartOffset returns the absolute document offset where logical
// line row (row >= 1) begins: the position immediately after the row-th
// newline sequence overall. This is the operation the reference
// implementation's own row/column lookup left unimplemented; it is
// supplied here via the same order-statistic technique nodeAtOffset
// uses, applied to the line-count augmentation instead of the length
// augmentation.
func (t *Tree) lineStartOffset(row int) (int, bool) {
	n, pieceStart, withinPiece := t.findNthNewline(row - 1)
	if t.isNil(n) {
		return 0, false
	}
	buf := t.buffers[n.piece.BufferIndex]
	so := buf.offsetFromPosition(n.piece.Start)
	eo := buf.offsetFromPosition(n.piece.End)
	abs := buf.nthNewlineEnd(so, eo, withinPiece)
	return pieceStart + (abs - so), true
}

// readRange returns a fresh copy of the document bytes in [start, end).
func (t *Tree) readRange(start, end int) []byte {
	if start >= end {
		return nil
	}
	n, _, localOffset := t.nodeAtOffset(start)
	out := make([]byte, 0, end-start)
	remaining := end - start
	for !t.isNil(n) && remaining > 0 {
		buf := t.buffers[n.piece.BufferIndex]
		so := buf.offsetFromPosition(n.piece.Start)
		avail := n.piece.Length - localOffset
		take := avail
		if take > remaining {
			take = remaining
		}
		out = append(out, buf.content[so+localOffset:so+localOffset+take]...)
		remaining -= take
		localOffset = 0
		n = t.next(n)
	}
	return out
}

// insertNodeAtEnd splices a new node for p in as the tree's last node.
// Used by LoadFile for each loaded chunk and by Insert's append fast
// path when the last piece can't be extended in place.
func (t *Tree) insertNodeAtEnd(p Piece) *node {
	if p.Length == 0 {
		return t.nilNode
	}
	newNode := newPieceNode(p)
	if t.isNil(t.root) {
		t.insertAsRoot(newNode)
	} else {
		t.insertRightOf(t.rightmost(t.root), newNode)
	}
	t.length += p.Length
	t.lineCount += p.LineCount
	return newNode
}

// appendPiece writes data to the active change buffer (rolling over to
// a fresh one first if data would push it past threshold) and returns
// the piece describing the bytes just written.
func (t *Tree) appendPiece(data []byte) Piece {
	if t.buffers[t.currentChange].len()+len(data) > t.threshold {
		t.buffers = append(t.buffers, newAppendableBuffer())
		t.currentChange = len(t.buffers) - 1
	}
	buf := t.buffers[t.currentChange]
	start := buf.endPosition()
	buf.append(data)
	return Piece{
		BufferIndex: t.currentChange,
		Start:       start,
		End:         buf.endPosition(),
		Length:      len(data),
		LineCount:   countNewlines(data),
	}
}

// tryExtendLast attempts the append fast path against the document's
// very last node.
func (t *Tree) tryExtendLast(data []byte) bool {
	if t.isNil(t.root) {
		return false
	}
	return t.tryExtendNode(t.rightmost(t.root), data)
}

// tryExtendNode extends n's piece in place by appending data directly
// to the change buffer it already ends in, avoiding the extra node (and
// extra piece-table fragmentation) a naive insert would otherwise add
// for the overwhelmingly common case of typing or pasting at a single
// advancing cursor position. It only applies when n's piece already
// ends at the live tail of the active change buffer; any other piece is
// left untouched.
func (t *Tree) tryExtendNode(n *node, data []byte) bool {
	if n.piece.BufferIndex != t.currentChange {
		return false
	}
	buf := t.buffers[t.currentChange]
	if buf.offsetFromPosition(n.piece.End) != buf.len() {
		return false
	}
	if buf.len()+len(data) > t.threshold {
		return false
	}
	buf.append(data)
	newPiece := n.piece
	newPiece.End = buf.endPosition()
	newPiece.Length += len(data)
	newPiece.LineCount += countNewlines(data)
	t.setPieceAndPropagate(n, newPiece)
	return true
}

// setPieceAndPropagate replaces n's piece with newPiece and propagates
// the resulting length/line-count delta up through n's ancestors and
// into the tree's cached totals.
func (t *Tree) setPieceAndPropagate(n *node, newPiece Piece) {
	deltaLen := newPiece.Length - n.piece.Length
	deltaLines := newPiece.LineCount - n.piece.LineCount
	n.piece = newPiece
	t.recomputeMetadata(n, deltaLen, deltaLines)
	t.length += deltaLen
	t.lineCount += deltaLines
}

// spliceReplacement handles an erase confined to a single piece: n is
// replaced by left, right, both, or neither, depending on which sides
// of the cut still have content.
func (t *Tree) spliceReplacement(n *node, left, right Piece) {
	switch {
	case left.Length == 0 && right.Length == 0:
		t.removeAccounted(n)
	case left.Length == 0:
		t.setPieceAndPropagate(n, right)
	case right.Length == 0:
		t.setPieceAndPropagate(n, left)
	default:
		t.setPieceAndPropagate(n, left)
		t.insertAfter(n, newPieceNode(right))
		t.length += right.Length
		t.lineCount += right.LineCount
	}
}

// removeAccounted removes n from the tree and subtracts its piece from
// the tree's cached length and line-count totals.
func (t *Tree) removeAccounted(n *node) {
	t.length -= n.piece.Length
	t.lineCount -= n.piece.LineCount
	t.remove(n)
}

func newPieceNode(p Piece) *node {
	return &node{piece: p}
}
