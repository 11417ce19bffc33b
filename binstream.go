package packio

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// assumes Little Endian, use _arch.go to set it to BigEndian for those archs
var byteOrder binary.ByteOrder = binary.LittleEndian

// DefaultAlignment is the grain a typed write is checked against when the
// value's own size exceeds it. Some architectures fault on misaligned
// multi-byte stores, so the check is a precondition of every typed write and
// it is the caller's job to Align the stream before writing.
const DefaultAlignment = 4

// BinaryStream is a write cursor over a borrowed byte region.
//
// It never owns or resizes the memory it is linked to: the region must stay
// valid for as long as the stream uses it, and anything that relocates the
// region (such as the owning buffer growing) invalidates the stream until
// Link is called again. Values are stored in native representation, so the
// packed output is only portable between machines of the same architecture.
//
// A BinaryStream must not be used from multiple goroutines at once.
type BinaryStream struct {
	pos       int
	buffer    []byte
	alignment int
}

// NewBinaryStream creates a new BinaryStream over the passed byte region,
// positioned at 0.
func NewBinaryStream(buffer []byte) *BinaryStream {
	return &BinaryStream{buffer: buffer}
}

// Link rebinds the stream to a new byte region. The position is left where
// it was, so callers linking to a smaller region must Seek before writing.
func (s *BinaryStream) Link(buffer []byte) {
	s.buffer = buffer
}

// Unlink detaches the stream from its byte region and resets the position to 0.
func (s *BinaryStream) Unlink() {
	s.buffer = nil
	s.pos = 0
}

// Pos returns the current write position of the stream.
func (s *BinaryStream) Pos() int { return s.pos }

// Size returns the number of bytes written, which equals the position.
func (s *BinaryStream) Size() int { return s.pos }

// Cap returns the capacity of the linked byte region.
func (s *BinaryStream) Cap() int { return len(s.buffer) }

// Remaining returns the number of bytes left between the position and the
// end of the linked region.
func (s *BinaryStream) Remaining() int { return len(s.buffer) - s.pos }

// Bytes returns the linked byte region, written and unwritten parts alike.
func (s *BinaryStream) Bytes() []byte { return s.buffer }

// Seek moves the write position to pos. Both forward and backward moves are
// allowed, so already written regions can be rewritten in place.
func (s *BinaryStream) Seek(pos int) error {
	if pos < 0 || pos > len(s.buffer) {
		return &RangeError{Op: "seek", Pos: s.pos, Requested: pos, Size: len(s.buffer)}
	}

	s.pos = pos
	return nil
}

// MustSeek panics if Seek fails.
func (s *BinaryStream) MustSeek(pos int) {
	if err := s.Seek(pos); err != nil {
		panic(err)
	}
}

// Skip advances the write position by n bytes without writing anything.
func (s *BinaryStream) Skip(n int) error {
	return s.Seek(s.pos + n)
}

// Aligned returns true if the current position is a multiple of grain.
func (s *BinaryStream) Aligned(grain int) bool {
	return s.pos%grain == 0
}

// Align advances the position to the next multiple of grain. Nothing is
// written to the skipped bytes, they keep whatever the region already held.
func (s *BinaryStream) Align(grain int) error {
	return s.Seek((s.pos + grain - 1) / grain * grain)
}

// SetDefaultAlignment overrides the alignment grain capping typed-write
// checks for this stream. The zero value means DefaultAlignment.
func (s *BinaryStream) SetDefaultAlignment(grain int) {
	s.alignment = grain
}

func (s *BinaryStream) defaultAlignment() int {
	if s.alignment == 0 {
		return DefaultAlignment
	}
	return s.alignment
}

// Write copies p into the region at the current position and advances the
// position by len(p). The write is all or nothing: if p does not fit in the
// remaining space, nothing is written and a *RangeError is returned.
func (s *BinaryStream) Write(p []byte) (int, error) {
	if len(p) > s.Remaining() {
		return 0, &RangeError{Op: "write", Pos: s.pos, Requested: len(p), Size: len(s.buffer)}
	}

	copy(s.buffer[s.pos:], p)
	s.pos += len(p)
	return len(p), nil
}

// MustWrite panics if Write fails.
func (s *BinaryStream) MustWrite(p []byte) {
	if _, err := s.Write(p); err != nil {
		panic(err)
	}
}

// WriteString writes the raw bytes of val to the stream.
func (s *BinaryStream) WriteString(val string) error {
	_, err := s.Write([]byte(val))
	return err
}

// writeTyped checks the alignment and capacity preconditions shared by all
// typed writes, then stores the value's native representation at the current
// position. The alignment grain is the value size capped at the stream's
// default alignment, so a uint64 write at position 4 is still legal on a
// stream with the default grain of 4.
func (s *BinaryStream) writeTyped(val interface{}, size int) error {
	grain := size
	if a := s.defaultAlignment(); a < grain {
		grain = a
	}

	if !s.Aligned(grain) {
		return &AlignmentError{Pos: s.pos, Grain: grain}
	}

	if s.Remaining() < size {
		return &RangeError{Op: "write", Pos: s.pos, Requested: size, Size: len(s.buffer)}
	}

	return binary.Write(s, byteOrder, val)
}

// WriteInt8 writes an int8 to the stream
func (s *BinaryStream) WriteInt8(val int8) error { return s.writeTyped(val, 1) }

// WriteUint8 writes a uint8 to the stream
func (s *BinaryStream) WriteUint8(val uint8) error { return s.writeTyped(val, 1) }

// WriteInt16 writes an int16 to the stream
func (s *BinaryStream) WriteInt16(val int16) error { return s.writeTyped(val, 2) }

// WriteUint16 writes a uint16 to the stream
func (s *BinaryStream) WriteUint16(val uint16) error { return s.writeTyped(val, 2) }

// WriteInt32 writes an int32 to the stream
func (s *BinaryStream) WriteInt32(val int32) error { return s.writeTyped(val, 4) }

// WriteUint32 writes a uint32 to the stream
func (s *BinaryStream) WriteUint32(val uint32) error { return s.writeTyped(val, 4) }

// WriteInt64 writes an int64 to the stream
func (s *BinaryStream) WriteInt64(val int64) error { return s.writeTyped(val, 8) }

// WriteUint64 writes a uint64 to the stream
func (s *BinaryStream) WriteUint64(val uint64) error { return s.writeTyped(val, 8) }

// WriteFloat32 writes a float32 to the stream
func (s *BinaryStream) WriteFloat32(val float32) error { return s.writeTyped(val, 4) }

// WriteFloat64 writes a float64 to the stream
func (s *BinaryStream) WriteFloat64(val float64) error { return s.writeTyped(val, 8) }

// WriteBool writes a bool to the stream as a single byte
func (s *BinaryStream) WriteBool(val bool) error { return s.writeTyped(val, 1) }

// WriteVal writes an arbitrary fixed-size value to the stream
func (s *BinaryStream) WriteVal(val interface{}) error {
	switch v := val.(type) {
	case int8:
		return s.WriteInt8(v)
	case uint8:
		return s.WriteUint8(v)
	case int16:
		return s.WriteInt16(v)
	case uint16:
		return s.WriteUint16(v)
	case int32:
		return s.WriteInt32(v)
	case uint32:
		return s.WriteUint32(v)
	case int64:
		return s.WriteInt64(v)
	case uint64:
		return s.WriteUint64(v)
	case float32:
		return s.WriteFloat32(v)
	case float64:
		return s.WriteFloat64(v)
	case bool:
		return s.WriteBool(v)
	}
	return errors.Errorf("cannot write a value of type %T to a binary stream", val)
}

// WriteStream copies the written portion of src into the stream as a raw dump.
func (s *BinaryStream) WriteStream(src *BinaryStream) error {
	_, err := s.Write(src.buffer[:src.pos])
	return err
}

// Insert opens a gap of n bytes at offset at, shifting the bytes between at
// and the current position forward. The gap keeps the shifted-from contents
// until overwritten. The position moves forward by n.
func (s *BinaryStream) Insert(at, n int) error {
	if at < 0 || at > s.pos || n < 0 {
		return &RangeError{Op: "insert", Pos: at, Requested: n, Size: len(s.buffer)}
	}
	if s.pos+n > len(s.buffer) {
		return &RangeError{Op: "insert", Pos: s.pos, Requested: n, Size: len(s.buffer)}
	}

	copy(s.buffer[at+n:s.pos+n], s.buffer[at:s.pos])
	s.pos += n
	return nil
}

// Erase removes n bytes at offset at from the written region, shifting the
// trailing bytes back. The position moves back by n.
func (s *BinaryStream) Erase(at, n int) error {
	if at < 0 || n < 0 || at+n > s.pos {
		return &RangeError{Op: "erase", Pos: at, Requested: n, Size: len(s.buffer)}
	}

	copy(s.buffer[at:], s.buffer[at+n:s.pos])
	s.pos -= n
	return nil
}
