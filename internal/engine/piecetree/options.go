package piecetree

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithBufferThreshold overrides the default 65535-byte cap on how large
// a single change buffer or loaded-file chunk may grow before a new one
// is started.
func WithBufferThreshold(n int) Option {
	return func(t *Tree) {
		if n > 0 {
			t.threshold = n
		}
	}
}

// WithNewline sets the document's declared newline convention. This
// affects only serialization intent; newline detection within content
// always recognizes all three sequences regardless of this setting.
func WithNewline(n Newline) Option {
	return func(t *Tree) {
		t.newline = n
	}
}
