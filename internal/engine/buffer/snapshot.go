package buffer

import (
	"unicode/utf8"

	"github.com/arbor-editor/piecetree/internal/engine/piecetree"
)

// Snapshot provides a read-only view of a buffer at a specific point in
// time. It will not change even if the original buffer is modified
// afterward, since it holds its own piecetree.Snapshot.
type Snapshot struct {
	snap       *piecetree.Snapshot
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
}

// Text returns the full snapshot content as a string.
func (s *Snapshot) Text() string {
	return s.snap.Text()
}

// Len returns the total byte length of the snapshot.
func (s *Snapshot) Len() ByteOffset {
	return ByteOffset(s.snap.Length())
}

// LineCount returns the number of lines.
func (s *Snapshot) LineCount() uint32 {
	return uint32(s.snap.LineCount()) + 1
}

// RevisionID returns the revision ID of this snapshot.
func (s *Snapshot) RevisionID() RevisionID {
	return s.revisionID
}

// IsEmpty returns true if the snapshot is empty.
func (s *Snapshot) IsEmpty() bool {
	return s.snap.Length() == 0
}

// LineEnding returns the snapshot's line ending style.
func (s *Snapshot) LineEnding() LineEnding {
	return s.lineEnding
}

// TabWidth returns the snapshot's tab width.
func (s *Snapshot) TabWidth() int {
	return s.tabWidth
}

// Fingerprint returns a content hash of the snapshot, useful for
// cheaply checking whether two snapshots (or a snapshot and a later
// re-snapshot) describe the same content.
func (s *Snapshot) Fingerprint() uint64 {
	return s.snap.Fingerprint()
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (s *Snapshot) RuneAt(offset ByteOffset) (rune, int) {
	length := ByteOffset(s.snap.Length())
	if offset < 0 || offset >= length {
		return utf8.RuneError, 0
	}

	end := offset + 4
	if end > length {
		end = length
	}

	str := sliceSnapshot(s.snap, offset, end)
	return utf8.DecodeRuneInString(str)
}

// sliceSnapshot materializes a snapshot's [start, end) byte range by
// materializing the snapshot's whole text and slicing it. Snapshots don't
// carry a tree to binary-search against, so this is linear in document
// length rather than O(log n); that trade is fine here since a Snapshot
// is a read-only, short-lived view rather than something repeatedly
// sliced in a hot loop.
func sliceSnapshot(snap *piecetree.Snapshot, start, end ByteOffset) string {
	if start >= end {
		return ""
	}
	full := snap.Text()
	if int(end) > len(full) {
		end = ByteOffset(len(full))
	}
	return full[start:end]
}
