package bytebuffer

import "github.com/pkg/errors"

// ByteBuffer is a simple wrapper over a byte slice that supports growing in
// place when it owns the slice and linking to external memory when it does not
type ByteBuffer struct {
	buffer []byte
	owned  bool
}

// NewByteBuffer creates a new owned ByteBuffer of the specified length
func NewByteBuffer(n int) *ByteBuffer {
	return &ByteBuffer{
		buffer: make([]byte, n),
		owned:  true,
	}
}

// NewByteBufferSlice creates a new ByteBuffer linked to the passed slice,
// the buffer does not own the memory and will refuse to grow it
func NewByteBufferSlice(buffer []byte) *ByteBuffer {
	return &ByteBuffer{
		buffer: buffer,
		owned:  false,
	}
}

// NewByteBufferString creates a new owned ByteBuffer initialized with a copy
// of the passed string
func NewByteBufferString(s string) *ByteBuffer {
	return &ByteBuffer{
		buffer: []byte(s),
		owned:  true,
	}
}

// Link rebinds the buffer to external memory, dropping any owned storage
func (b *ByteBuffer) Link(buffer []byte) {
	b.buffer = buffer
	b.owned = false
}

// Bytes returns the internal byte slice of the ByteBuffer, valid only until
// the next Reserve or Resize
func (b *ByteBuffer) Bytes() []byte { return b.buffer }

// Len returns the current length of the ByteBuffer
func (b *ByteBuffer) Len() int { return len(b.buffer) }

// Cap returns the current capacity of the ByteBuffer
func (b *ByteBuffer) Cap() int { return cap(b.buffer) }

// Resizable returns true if the buffer owns its memory and can be grown
func (b *ByteBuffer) Resizable() bool { return b.owned }

// Reserve ensures the buffer's capacity is at least n bytes, reallocating if
// needed. Capacity grows at least geometrically so that repeated small
// reservations stay linear overall. If preserve is false the contents may be
// discarded on reallocation.
func (b *ByteBuffer) Reserve(n int, preserve bool) error {
	if n <= cap(b.buffer) {
		return nil
	}

	if !b.owned {
		return errors.Errorf("cannot reserve %d bytes in a linked buffer of capacity %d", n, cap(b.buffer))
	}

	newcap := 2 * cap(b.buffer)
	if newcap < n {
		newcap = n
	}

	buffer := make([]byte, len(b.buffer), newcap)
	if preserve {
		copy(buffer, b.buffer)
	}
	b.buffer = buffer
	return nil
}

// Resize sets the buffer's length to n bytes, growing capacity if needed.
// Shrinking never reallocates, so truncating to a smaller length keeps the
// underlying storage addresses stable.
func (b *ByteBuffer) Resize(n int) error {
	if n < 0 {
		return errors.Errorf("cannot resize buffer to negative length %d", n)
	}

	if n > cap(b.buffer) {
		if err := b.Reserve(n, true); err != nil {
			return err
		}
	}

	if grown := n - len(b.buffer); grown > 0 {
		// reslicing exposes old capacity contents, zero the new range
		b.buffer = b.buffer[:n]
		tail := b.buffer[n-grown:]
		for i := range tail {
			tail[i] = 0
		}
	} else {
		b.buffer = b.buffer[:n]
	}

	return nil
}
