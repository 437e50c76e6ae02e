// Package buffer provides an ergonomic text buffer built on top of the
// internal/engine/piecetree piece tree. It serves as the primary
// interface for text manipulation in the editor engine, adding the
// position/range types and line-ending conventions an editor host wants
// without reintroducing the piece tree's own internal bookkeeping.
//
// The buffer package provides:
//
//   - Byte-offset and line/column coordinate conversion
//   - Read-only snapshots that outlive later edits to the live buffer
//   - Line ending normalization (LF, CRLF, CR) on insert
//   - Revision tracking for change management
//
// Basic usage:
//
//	// Create a buffer with some text
//	buf := buffer.NewBufferFromString("Hello, World!")
//
//	// Insert text
//	buf.Insert(7, "Beautiful ")  // "Hello, Beautiful World!"
//
//	// Delete text
//	buf.Delete(0, 7)  // "Beautiful World!"
//
//	// Get a snapshot that won't change under later edits
//	snap := buf.Snapshot()
//	text := snap.Text()
//
// Position Types:
//
//   - ByteOffset: raw byte position in the buffer
//   - Point: line and column position (0-indexed, column in bytes)
//
// Concurrency:
//
// A Buffer is not internally synchronized — see internal/engine/piecetree's
// package doc for why. Only one goroutine may hold a mutating reference
// to a Buffer at a time; wrap it in your own mutex for concurrent access.
// A Snapshot, once taken, keeps reporting the same content after later
// edits to the Buffer it came from, and may be read from any number of
// goroutines at once. It shares the append-only byte storage that later
// inserts append to, so reading it while another goroutine mutates that
// Buffer is not synchronized.
package buffer
