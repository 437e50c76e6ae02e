// Package piecetree provides an augmented red-black tree of pieces over
// immutable, append-only byte buffers — the core text-storage engine of
// an interactive editor's document model.
//
// Unlike the rope data structure this package's sibling `buffer` package
// once sat on, a piece tree never copies document bytes on edit. Inserted
// text is appended to a "change buffer" and referenced by a lightweight
// Piece (a half-open byte range plus cached length and newline count);
// erasure trims or removes pieces. Both operations run in O(log n),
// amortized over the edit history, because the tree never rewrites
// buffer content — only the small piece/node metadata describing it.
//
// # Basic usage
//
//	tree := piecetree.Create(piecetree.WithNewline(piecetree.NewlineLF))
//	tree.Insert(0, "hello")
//	tree.Insert(5, " world")
//	tree.Erase(0, 6)
//
//	snap := tree.Snapshot()
//	text := snap.Text()
//
// # Buffers
//
// Buffer 0 is created empty and is the tree's initial change buffer.
// LoadFile appends one or more read-only "original" buffers holding a
// file's bytes. Once the change buffer would exceed BufferThreshold
// (65535 bytes by default, see WithBufferThreshold), a fresh empty
// buffer is allocated and becomes current. Buffers are never freed or
// rewritten individually; piece buffer indices stay valid for the
// tree's lifetime.
//
// # Concurrency
//
// A Tree is not internally synchronized. At most one goroutine may hold
// a mutating reference at a time; read-only operations (Snapshot,
// LineContent, length/line-count accessors) may run concurrently with
// each other only if the caller guarantees no concurrent mutation is in
// flight. Callers needing concurrent access must provide their own
// synchronization — see internal/engine/buffer for a host-facing
// wrapper that adds ergonomic position types without reintroducing
// cross-thread concurrency, which is explicitly out of scope here.
package piecetree
