package bytebuffer

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// MemoryMappedBuffer is a ByteBuffer that is also mapped into memory
//
// the mapping is fixed size, so the buffer is never resizable and a stream
// writing through it gets the bounded, non-growable behavior
type MemoryMappedBuffer struct {
	*ByteBuffer
	mapping mmap.MMap
	loc     string // location of the memory mapped file
	size    int    // size in bytes
}

// NewMemoryMappedBuffer will create and return a new instance of a MemoryMappedBuffer
func NewMemoryMappedBuffer(loc string, size int) (*MemoryMappedBuffer, error) {
	if _, err := os.Stat(loc); err == nil {
		err = os.Remove(loc)
		if err != nil {
			return nil, err
		}
	}

	f, err := os.Create(loc)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err = f.Truncate(int64(size)); err != nil {
		return nil, errors.Wrapf(err, "could not initialize %v to %d bytes", loc, size)
	}

	m, err := mmap.MapRegion(f, size, mmap.RDWR, 0, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "could not map %v into memory", loc)
	}

	return &MemoryMappedBuffer{
		NewByteBufferSlice(m),
		m,
		loc,
		size,
	}, nil
}

// Sync flushes any modified buffer contents back to the mapped file
func (b *MemoryMappedBuffer) Sync() error {
	return b.mapping.Flush()
}

// Unmap will manually delete the memory mapping of a mapped buffer
func (b *MemoryMappedBuffer) Unmap(removefile bool) error {
	if err := b.mapping.Unmap(); err != nil {
		return err
	}

	if removefile {
		return os.Remove(b.loc)
	}

	return nil
}
