package piecetree

import "github.com/zeebo/errs"

// Error is the class that contains every error this package returns.
// Grounded on the zeebo/wosl btree package's errs.Class pattern: callers
// can errors.Is against the sentinel values below, or call Error.Has to
// catch anything the package raises.
var Error = errs.Class("piecetree")

// Sentinel errors a caller can match against with errors.Is.
var (
	// ErrBadInsertion is returned when Insert is given an offset outside [0, Length()].
	ErrBadInsertion = Error.New("offset outside document bounds")

	// ErrInvalidOffsets is returned when an erase range is inverted or
	// falls outside [0, Length()].
	ErrInvalidOffsets = Error.New("invalid offset range")

	// ErrLineOutOfRange is returned when LineContent is given a row
	// outside [0, LineCount()].
	ErrLineOutOfRange = Error.New("line index out of range")

	// ErrUnableToOpenFile reports that a file could not be opened. LoadFile
	// reads from an io.Reader and opens nothing itself, so it never returns
	// this error; cmd/ptdump wraps its own open failures with it.
	ErrUnableToOpenFile = Error.New("unable to open file")

	// ErrUnimplemented marks a code path intentionally left unimplemented.
	ErrUnimplemented = Error.New("operation not implemented")

	// ErrAllocFail names an allocation failure. No function in this
	// package returns it: slice growth panics rather than returning an
	// error, and LoadFile reports read failures wrapped in Error instead.
	ErrAllocFail = Error.New("allocation failure")
)
