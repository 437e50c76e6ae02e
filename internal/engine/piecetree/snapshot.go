package piecetree

import (
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is an immutable, point-in-time view of a tree's content. It
// holds its own copy of the piece sequence, so later mutation of the
// tree it came from never changes what a Snapshot reports — buffers are
// append-only, so the byte ranges a Snapshot's pieces reference stay
// valid and unchanged for as long as the Snapshot is held.
type Snapshot struct {
	buffers   []*appendableBuffer
	pieces    []Piece
	length    int
	lineCount int
	newline   Newline
}

// Snapshot captures the tree's current content.
func (t *Tree) Snapshot() *Snapshot {
	pieces := make([]Piece, 0, snapshotAllocBase)
	t.collectInorder(t.root, &pieces)

	bufs := make([]*appendableBuffer, len(t.buffers))
	copy(bufs, t.buffers)

	return &Snapshot{
		buffers:   bufs,
		pieces:    pieces,
		length:    t.length,
		lineCount: t.lineCount,
		newline:   t.newline,
	}
}

func (t *Tree) collectInorder(n *node, out *[]Piece) {
	if t.isNil(n) {
		return
	}
	t.collectInorder(n.left, out)
	*out = append(*out, n.piece)
	t.collectInorder(n.right, out)
}

// Length returns the snapshotted document's length in bytes.
func (s *Snapshot) Length() int { return s.length }

// LineCount returns the snapshotted document's newline count.
func (s *Snapshot) LineCount() int { return s.lineCount }

// Newline returns the snapshotted document's declared newline convention.
func (s *Snapshot) Newline() Newline { return s.newline }

// Pieces returns a copy of the snapshot's piece sequence, in document
// order. It is mostly useful for tests and diagnostics that want to
// inspect how fragmented the piece table has become.
func (s *Snapshot) Pieces() []Piece {
	out := make([]Piece, len(s.pieces))
	copy(out, s.pieces)
	return out
}

// Text materializes the snapshot's entire content as a string.
func (s *Snapshot) Text() string {
	var b strings.Builder
	b.Grow(s.length)
	for _, p := range s.pieces {
		buf := s.buffers[p.BufferIndex]
		so := buf.offsetFromPosition(p.Start)
		eo := buf.offsetFromPosition(p.End)
		b.Write(buf.content[so:eo])
	}
	return b.String()
}

// Fingerprint returns a content hash of the snapshot, streamed piece by
// piece so it never needs to materialize the full document to compute
// it. Two snapshots with equal Fingerprint values are, for any practical
// purpose, equal in content; this package makes no cryptographic
// collision-resistance claim, matching xxhash's own.
func (s *Snapshot) Fingerprint() uint64 {
	h := xxhash.New()
	for _, p := range s.pieces {
		buf := s.buffers[p.BufferIndex]
		so := buf.offsetFromPosition(p.Start)
		eo := buf.offsetFromPosition(p.End)
		h.Write(buf.content[so:eo])
	}
	return h.Sum64()
}
