package buffer

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/arbor-editor/piecetree/internal/engine/piecetree"
)

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingLF:
		return "\\n"
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingLF:
		return "\n"
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

func (le LineEnding) toNewline() piecetree.Newline {
	switch le {
	case LineEndingCRLF:
		return piecetree.NewlineCRLF
	case LineEndingCR:
		return piecetree.NewlineCR
	default:
		return piecetree.NewlineLF
	}
}

// Buffer wraps a piecetree.Tree with ergonomic, editor-facing types:
// byte offsets get their own type, positions are (line, column) pairs,
// and every edit bumps a RevisionID callers can compare cheaply. Unlike
// its rope-backed predecessor, Buffer does not synchronize access
// itself — see the package doc comment for why, and wrap a Buffer in
// your own mutex if multiple goroutines need to touch it.
type Buffer struct {
	tree       *piecetree.Tree
	revisionID RevisionID
	lineEnding LineEnding
	tabWidth   int
	threshold  int
}

// NewBuffer creates a new empty buffer.
func NewBuffer(opts ...Option) *Buffer {
	b := &Buffer{
		revisionID: NewRevisionID(),
		lineEnding: LineEndingLF,
		tabWidth:   4,
	}
	for _, opt := range opts {
		opt(b)
	}

	treeOpts := []piecetree.Option{piecetree.WithNewline(b.lineEnding.toNewline())}
	if b.threshold > 0 {
		treeOpts = append(treeOpts, piecetree.WithBufferThreshold(b.threshold))
	}
	b.tree = piecetree.Create(treeOpts...)
	return b
}

// NewBufferFromString creates a buffer with initial content.
func NewBufferFromString(s string, opts ...Option) *Buffer {
	b := NewBuffer(opts...)
	s = b.normalizeLineEndings(s)
	// Insert on a freshly created empty tree never fails.
	_ = b.tree.Insert(0, s)
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader. The full
// content is read up front rather than streamed through LoadFile,
// because CRLF/CR normalization needs to see each newline sequence
// whole, and a sequence can straddle a chunk boundary LoadFile would
// otherwise split it at.
func NewBufferFromReader(r io.Reader, opts ...Option) (*Buffer, error) {
	b := NewBuffer(opts...)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := b.normalizeLineEndings(string(data))
	_ = b.tree.Insert(0, text)
	return b, nil
}

// normalizeLineEndings converts all line endings in s to the buffer's
// preferred style.
func (b *Buffer) normalizeLineEndings(s string) string {
	switch b.lineEnding {
	case LineEndingLF:
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
	case LineEndingCRLF:
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
		s = strings.ReplaceAll(s, "\n", "\r\n")
	case LineEndingCR:
		s = strings.ReplaceAll(s, "\r\n", "\r")
		s = strings.ReplaceAll(s, "\n", "\r")
	}
	return s
}

// Read Operations

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	return b.tree.Text()
}

// TextRange returns text in the given byte range.
func (b *Buffer) TextRange(start, end ByteOffset) string {
	s, err := b.tree.TextRange(int(start), int(end))
	if err != nil {
		return ""
	}
	return s
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	return ByteOffset(b.tree.Length())
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() uint32 {
	return uint32(b.tree.LineCount()) + 1
}

// LineText returns the text of a specific line (without its newline).
func (b *Buffer) LineText(line uint32) string {
	s, err := b.tree.LineContent(int(line))
	if err != nil {
		return ""
	}
	return s
}

// LineLen returns the length of a specific line in bytes (without newline).
func (b *Buffer) LineLen(line uint32) int {
	return len(b.LineText(line))
}

// ByteAt returns the byte at the given offset.
func (b *Buffer) ByteAt(offset ByteOffset) (byte, bool) {
	return b.tree.ByteAt(int(offset))
}

// RuneAt returns the rune at the given byte offset.
// Returns utf8.RuneError and size 0 if offset is out of range.
func (b *Buffer) RuneAt(offset ByteOffset) (rune, int) {
	length := ByteOffset(b.tree.Length())
	if offset < 0 || offset >= length {
		return utf8.RuneError, 0
	}

	end := offset + 4
	if end > length {
		end = length
	}

	s := b.TextRange(offset, end)
	return utf8.DecodeRuneInString(s)
}

// Coordinate Conversion

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset ByteOffset) Point {
	line, col, err := b.tree.PositionAt(int(offset))
	if err != nil {
		return Point{}
	}
	return Point{Line: uint32(line), Column: uint32(col)}
}

// PointToOffset converts line/column to byte offset.
func (b *Buffer) PointToOffset(point Point) ByteOffset {
	offset, err := b.tree.OffsetAt(int(point.Line), int(point.Column))
	if err != nil {
		return 0
	}
	return ByteOffset(offset)
}

// LineStartOffset returns the byte offset of the start of a line.
func (b *Buffer) LineStartOffset(line uint32) ByteOffset {
	offset, err := b.tree.OffsetAt(int(line), 0)
	if err != nil {
		return 0
	}
	return ByteOffset(offset)
}

// LineEndOffset returns the byte offset of the end of a line (before its newline).
func (b *Buffer) LineEndOffset(line uint32) ByteOffset {
	return b.LineStartOffset(line) + ByteOffset(b.LineLen(line))
}

// Write Operations

// Insert inserts text at the given offset. Returns the end position of
// the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	if offset < 0 || offset > ByteOffset(b.tree.Length()) {
		return 0, ErrOffsetOutOfRange
	}

	text = b.normalizeLineEndings(text)
	if err := b.tree.Insert(int(offset), text); err != nil {
		return 0, err
	}
	b.revisionID = NewRevisionID()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the given range.
func (b *Buffer) Delete(start, end ByteOffset) error {
	if start < 0 || start > end || end > ByteOffset(b.tree.Length()) {
		return ErrRangeInvalid
	}

	if err := b.tree.Erase(int(start), int(end)); err != nil {
		return err
	}
	b.revisionID = NewRevisionID()

	return nil
}

// Replace replaces text in the given range with new text. Returns the
// end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	if start < 0 || start > end || end > ByteOffset(b.tree.Length()) {
		return 0, ErrRangeInvalid
	}

	text = b.normalizeLineEndings(text)
	if end > start {
		if err := b.tree.Erase(int(start), int(end)); err != nil {
			return 0, err
		}
	}
	if err := b.tree.Insert(int(start), text); err != nil {
		return 0, err
	}
	b.revisionID = NewRevisionID()

	return start + ByteOffset(len(text)), nil
}

// ApplyEdit applies a single edit to the buffer.
func (b *Buffer) ApplyEdit(edit Edit) (EditResult, error) {
	if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
		edit.Range.End > ByteOffset(b.tree.Length()) {
		return EditResult{}, ErrRangeInvalid
	}

	oldText := b.TextRange(edit.Range.Start, edit.Range.End)
	text := b.normalizeLineEndings(edit.NewText)

	if edit.Range.End > edit.Range.Start {
		if err := b.tree.Erase(int(edit.Range.Start), int(edit.Range.End)); err != nil {
			return EditResult{}, err
		}
	}
	if err := b.tree.Insert(int(edit.Range.Start), text); err != nil {
		return EditResult{}, err
	}
	b.revisionID = NewRevisionID()

	newEnd := edit.Range.Start + ByteOffset(len(text))

	return EditResult{
		OldRange: edit.Range,
		NewRange: Range{Start: edit.Range.Start, End: newEnd},
		OldText:  oldText,
		Delta:    int64(len(text)) - int64(edit.Range.Len()),
	}, nil
}

// ApplyEdits applies multiple edits atomically. Edits must be in
// reverse order (highest offset first) so that applying one never
// shifts the offsets the remaining edits were computed against.
func (b *Buffer) ApplyEdits(edits []Edit) error {
	if len(edits) == 0 {
		return nil
	}

	for i := 1; i < len(edits); i++ {
		if edits[i].Range.End > edits[i-1].Range.Start {
			return ErrEditsOverlap
		}
	}

	length := ByteOffset(b.tree.Length())
	for _, edit := range edits {
		if edit.Range.Start < 0 || edit.Range.Start > edit.Range.End ||
			edit.Range.End > length {
			return ErrRangeInvalid
		}
	}

	for _, edit := range edits {
		text := b.normalizeLineEndings(edit.NewText)
		if edit.Range.End > edit.Range.Start {
			if err := b.tree.Erase(int(edit.Range.Start), int(edit.Range.End)); err != nil {
				return err
			}
		}
		if err := b.tree.Insert(int(edit.Range.Start), text); err != nil {
			return err
		}
	}

	b.revisionID = NewRevisionID()
	return nil
}

// Buffer State

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	return b.revisionID
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.tree.Length() == 0
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	return b.lineEnding
}

// TabWidth returns the buffer's tab width.
func (b *Buffer) TabWidth() int {
	return b.tabWidth
}

// SetLineEnding sets the buffer's line ending style. This does not
// convert existing line endings already in the buffer.
func (b *Buffer) SetLineEnding(le LineEnding) {
	b.lineEnding = le
}

// SetTabWidth sets the buffer's tab width.
func (b *Buffer) SetTabWidth(width int) {
	b.tabWidth = width
}

// Snapshot returns a read-only snapshot of the current buffer state.
func (b *Buffer) Snapshot() *Snapshot {
	return &Snapshot{
		snap:       b.tree.Snapshot(),
		revisionID: b.revisionID,
		lineEnding: b.lineEnding,
		tabWidth:   b.tabWidth,
	}
}
