// Package bytebuffer implements the backing storage for packio streams
//
// initially tried to use bytes.Buffer but the main restriction with that is that
// it does not allow the freedom to move around in the buffer, and it always
// writes at the end, while a stream needs to rewrite and realign regions it has
// already passed over
//
// this (tries) to implement a minimal storage wrapper that a stream can link
// its write cursor to, grow on demand when it owns the memory, and refuse to
// grow when it does not
package bytebuffer

// Buffer defines an abstraction for a contiguous byte region a stream cursor
// can be linked to. The region is either owned, in which case it can be grown,
// or borrowed from external memory, in which case Reserve must fail rather
// than reallocate memory the buffer does not control.
type Buffer interface {
	Bytes() []byte
	Len() int
	Resizable() bool
	Reserve(n int, preserve bool) error
	Resize(n int) error
}
