package piecetree

// Allocation bases for the dynamic arrays this package grows: buffer
// content, line-start offsets, snapshot pieces, and the buffer vector.
// Content and line-start capacities grow by rounding the required size up
// to a power-of-two multiple of their base (growBytes, growInts). The
// snapshot piece list starts with snapshotAllocBase capacity and then
// grows by plain append; the buffer vector grows by plain append and does
// not use bufferVectorAllocBase. Nothing is ever shrunk.
const (
	contentAllocBase     = 256
	lineStartsAllocBase  = 16
	snapshotAllocBase    = 16
	bufferVectorAllocBase = 16
)

// growCapacity rounds required up to the smallest power-of-two multiple
// of base that is >= required.
func growCapacity(required, base int) int {
	if required <= base {
		return base
	}
	multiple := 1
	for base*multiple < required {
		multiple *= 2
	}
	return base * multiple
}

// growBytes returns s with capacity for at least addLen more bytes,
// copying existing content if a reallocation was necessary.
func growBytes(s []byte, addLen int) []byte {
	needed := len(s) + addLen
	if needed <= cap(s) {
		return s
	}
	next := make([]byte, len(s), growCapacity(needed, contentAllocBase))
	copy(next, s)
	return next
}

// growInts returns s with capacity for at least addLen more elements.
func growInts(s []int, addLen int) []int {
	needed := len(s) + addLen
	if needed <= cap(s) {
		return s
	}
	next := make([]int, len(s), growCapacity(needed, lineStartsAllocBase))
	copy(next, s)
	return next
}

// appendSubstring appends src[start:end] to dst, clamping start and end
// to src's bounds and tolerating an inverted range by producing no bytes.
func appendSubstring(dst []byte, src []byte, start, end int) []byte {
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return dst
	}
	return append(dst, src[start:end]...)
}
