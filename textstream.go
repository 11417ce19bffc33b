package packio

import (
	"fmt"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/packio/packio/bytebuffer"
	"github.com/pkg/errors"
)

// FmtFlag holds the formatting flags of a TextStream. Oct, Dec and Hex are
// not stored as flags: writing them through WriteVal sets the numeric base
// instead. Left and Right are mutually exclusive and setting one clears the
// other.
type FmtFlag uint16

// values for FmtFlag
const (
	Left FmtFlag = 1 << iota
	Right
	Scientific
	Oct
	Dec
	Hex
)

// DefaultPrecision is the number of digits rendered after the decimal
// separator when none has been configured.
const DefaultPrecision = 2

// TextStream renders values as text into a buffer it grows on demand.
//
// It embeds a BinaryStream as its cursor, linked to the backing buffer's
// storage. When a write would pass the end of the buffer the stream invokes
// its overflow protocol: grow the buffer, re-link the cursor to the possibly
// relocated storage, restore the position, retry. Over a buffer that cannot
// grow (an external slice or a memory mapped file) raw writes that do not
// fit are dropped whole, while the formatted paths report a *BoundsError so
// rendered values are never silently cut short.
//
// Like BinaryStream, a TextStream must not be shared between goroutines.
type TextStream struct {
	BinaryStream

	buffer bytebuffer.Buffer
	stats  *WriteStats

	flags              FmtFlag
	base               int
	precision          int
	width              int
	decimalSeparator   byte
	thousandsSeparator byte
}

// NewTextStream creates a TextStream over a new empty owned buffer.
func NewTextStream() *TextStream {
	return NewTextStreamBuffer(bytebuffer.NewByteBuffer(0))
}

// NewTextStreamString creates a TextStream over an owned buffer seeded with
// a copy of s, positioned at the end of s so writes append.
func NewTextStreamString(s string) *TextStream {
	t := NewTextStreamBuffer(bytebuffer.NewByteBufferString(s))
	t.MustSeek(len(s))
	return t
}

// NewTextStreamSlice creates a TextStream over an external raw region. The
// region is never grown, writes that do not fit follow the fixed-view rules.
func NewTextStreamSlice(buffer []byte) *TextStream {
	return NewTextStreamBuffer(bytebuffer.NewByteBufferSlice(buffer))
}

// NewTextStreamBuffer creates a TextStream over the passed buffer,
// positioned at 0.
func NewTextStreamBuffer(buffer bytebuffer.Buffer) *TextStream {
	t := &TextStream{
		buffer:             buffer,
		base:               10,
		precision:          DefaultPrecision,
		decimalSeparator:   '.',
		thousandsSeparator: ',',
	}
	t.BinaryStream.Link(buffer.Bytes())
	return t
}

// SetBase sets the numeric base used to render integers, one of 8, 10 or 16.
func (t *TextStream) SetBase(base int) { t.base = base }

// Base returns the numeric base used to render integers.
func (t *TextStream) Base() int { return t.base }

// SetPrecision sets the number of digits rendered after the decimal separator.
func (t *TextStream) SetPrecision(precision int) { t.precision = precision }

// Precision returns the configured floating point precision.
func (t *TextStream) Precision() int { return t.precision }

// SetWidth sets the minimum field width of rendered numbers. Zero, the
// default, means no padding.
func (t *TextStream) SetWidth(width int) { t.width = width }

// Width returns the configured minimum field width.
func (t *TextStream) Width() int { return t.width }

// SetFlags replaces the stream's formatting flags.
func (t *TextStream) SetFlags(flags FmtFlag) { t.flags = flags }

// Flags returns the stream's formatting flags.
func (t *TextStream) Flags() FmtFlag { return t.flags }

// SetDecimalSeparator sets the decimal separator character. Only the default
// '.' is applied by the rendering path, the setting is kept for formatting
// helpers layered on top.
func (t *TextStream) SetDecimalSeparator(c byte) { t.decimalSeparator = c }

// SetThousandsSeparator sets the thousands separator character. Not applied
// by the rendering path, kept for formatting helpers layered on top.
func (t *TextStream) SetThousandsSeparator(c byte) { t.thousandsSeparator = c }

// SetStats registers a WriteStats recorder observing the size of every
// rendered write. A nil recorder, the default, disables recording.
func (t *TextStream) SetStats(stats *WriteStats) { t.stats = stats }

// overflow tries to make room for n more bytes past the current position.
// It grows the owned buffer to position+n preserving contents, re-links the
// cursor to the relocated storage and restores the position. The new
// remaining count is returned; if it is still short of n the error is a
// *BoundsError.
func (t *TextStream) overflow(n int) (int, error) {
	if n > t.Remaining() && t.buffer.Resizable() {
		pos := t.Pos()

		err := t.buffer.Reserve(pos+n, true)
		if err == nil {
			err = t.buffer.Resize(pos + n)
		}
		if err != nil {
			return t.Remaining(), &BoundsError{
				Op: "write", Subject: "text",
				Pos: pos, Requested: n, Remaining: t.Remaining(),
				Err: errors.Wrap(err, "growing the output buffer"),
			}
		}

		t.BinaryStream.Link(t.buffer.Bytes())
		t.MustSeek(pos)

		if logging {
			logger.Debug("grew text stream buffer",
				zap.String("module", "textstream"),
				zap.Int("position", pos),
				zap.Int("requested", n),
				zap.Int("length", t.buffer.Len()),
			)
		}
	}

	if r := t.Remaining(); n > r {
		return r, &BoundsError{
			Op: "write", Subject: "text",
			Pos: t.Pos(), Requested: n, Remaining: r,
		}
	}
	return t.Remaining(), nil
}

// Write copies p into the stream, growing the buffer as needed, and advances
// the position. Over a fixed view that cannot hold all of p the write is
// dropped whole and (0, nil) is returned: raw byte writes are best effort by
// contract, use the formatted paths when a shortfall must be reported.
func (t *TextStream) Write(p []byte) (int, error) {
	if t.Remaining() < len(p) {
		if r, _ := t.overflow(len(p)); r < len(p) {
			return 0, nil
		}
	}

	t.BinaryStream.MustWrite(p)
	return len(p), nil
}

// WriteString writes the bytes of s to the stream verbatim, unaffected by
// the numeric formatting state.
func (t *TextStream) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// WriteByte writes a single raw byte to the stream.
func (t *TextStream) WriteByte(c byte) error {
	if t.Remaining() < 1 {
		if _, err := t.overflow(1); err != nil {
			return err
		}
	}

	t.BinaryStream.MustWrite([]byte{c})
	return nil
}

// WriteUint8 writes a single raw byte, like WriteByte. It shadows the binary
// typed write so a uint8 never bypasses the overflow protocol.
func (t *TextStream) WriteUint8(c uint8) error { return t.WriteByte(c) }

// WriteInt8 renders an int8 as text.
func (t *TextStream) WriteInt8(v int8) error { return t.writeInteger(v) }

// writeRendered pushes one rendered value into the stream. Unlike the raw
// path it reports an unsatisfiable shortfall: whatever fits is written, the
// position advances by that much, and the overflow's *BoundsError is
// returned so the caller knows the value was truncated.
func (t *TextStream) writeRendered(p []byte) error {
	short := error(nil)
	if t.Remaining() < len(p) {
		if _, err := t.overflow(len(p)); err != nil {
			short = err
		}
	}

	n := len(p)
	if r := t.Remaining(); n > r {
		n = r
	}
	t.BinaryStream.MustWrite(p[:n])

	if t.stats != nil {
		t.stats.Record(n)
	}
	return short
}

// writeInteger renders v in the stream's base, width and justification.
func (t *TextStream) writeInteger(v interface{}) error {
	var spec [fmtStringSize]byte
	var out [renderSize]byte

	f := fmtString(spec[:0], 'd', true, t.width, t.precision, t.flags, t.base)
	n := snprintf(out[:], string(f), v)
	if n > len(out) {
		n = len(out)
	}
	return t.writeRendered(out[:n])
}

// writeFloat renders v with the stream's precision, width and notation.
func (t *TextStream) writeFloat(v interface{}) error {
	var spec [fmtStringSize]byte
	var out [renderSize]byte

	f := fmtString(spec[:0], 'f', false, t.width, t.precision, t.flags, t.base)
	n := snprintf(out[:], string(f), v)
	if n > len(out) {
		n = len(out)
	}
	return t.writeRendered(out[:n])
}

// WriteInt renders an int as text
func (t *TextStream) WriteInt(v int) error { return t.writeInteger(v) }

// WriteInt16 renders an int16 as text
func (t *TextStream) WriteInt16(v int16) error { return t.writeInteger(v) }

// WriteInt32 renders an int32 as text
func (t *TextStream) WriteInt32(v int32) error { return t.writeInteger(v) }

// WriteInt64 renders an int64 as text
func (t *TextStream) WriteInt64(v int64) error { return t.writeInteger(v) }

// WriteUint renders a uint as text
func (t *TextStream) WriteUint(v uint) error { return t.writeInteger(v) }

// WriteUint16 renders a uint16 as text
func (t *TextStream) WriteUint16(v uint16) error { return t.writeInteger(v) }

// WriteUint32 renders a uint32 as text
func (t *TextStream) WriteUint32(v uint32) error { return t.writeInteger(v) }

// WriteUint64 renders a uint64 as text
func (t *TextStream) WriteUint64(v uint64) error { return t.writeInteger(v) }

// WriteFloat32 renders a float32 as text
func (t *TextStream) WriteFloat32(v float32) error { return t.writeFloat(v) }

// WriteFloat64 renders a float64 as text
func (t *TextStream) WriteFloat64(v float64) error { return t.writeFloat(v) }

// WriteBool renders a bool as the literal "true" or "false".
func (t *TextStream) WriteBool(v bool) error {
	if v {
		return t.writeRendered([]byte("true"))
	}
	return t.writeRendered([]byte("false"))
}

// WriteRune encodes r as UTF-8 and writes exactly those 1 to 4 bytes. No
// width, padding or precision applies.
func (t *TextStream) WriteRune(r rune) error {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return t.writeRendered(buf[:n])
}

// setFlag mutates the formatting state for a flag value written through
// WriteVal. Oct, Dec and Hex select the base, Left and Right set one
// justification and clear the other, anything else is or-ed into the flags.
func (t *TextStream) setFlag(f FmtFlag) {
	switch f {
	case Oct:
		t.base = 8
	case Dec:
		t.base = 10
	case Hex:
		t.base = 16
	case Left:
		t.flags |= Left
		t.flags &^= Right
	case Right:
		t.flags |= Right
		t.flags &^= Left
	default:
		t.flags |= f
	}
}

// WriteVal writes a sequence of values and formatting directives in one
// call, so directives can be interleaved with data:
//
//	s.WriteVal(packio.Hex, uint32(255), " ", true)
//
// FmtFlag values mutate the formatting state, byte values are written as raw
// characters, int32 values render as integers (use WriteRune for characters
// beyond ASCII), everything else renders as its text form.
func (t *TextStream) WriteVal(vals ...interface{}) error {
	for _, val := range vals {
		var err error
		switch v := val.(type) {
		case FmtFlag:
			t.setFlag(v)
		case uint8:
			err = t.WriteByte(v)
		case int:
			err = t.WriteInt(v)
		case int8:
			err = t.WriteInt8(v)
		case int16:
			err = t.WriteInt16(v)
		case int32:
			err = t.WriteInt32(v)
		case int64:
			err = t.WriteInt64(v)
		case uint:
			err = t.WriteUint(v)
		case uint16:
			err = t.WriteUint16(v)
		case uint32:
			err = t.WriteUint32(v)
		case uint64:
			err = t.WriteUint64(v)
		case float32:
			err = t.WriteFloat32(v)
		case float64:
			err = t.WriteFloat64(v)
		case bool:
			err = t.WriteBool(v)
		case string:
			err = t.writeRendered([]byte(v))
		case []byte:
			err = t.writeRendered(v)
		default:
			err = errors.Errorf("cannot write a value of type %T to a text stream", val)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Formatf renders a free-form printf string into the stream. The rendering
// is attempted against the remaining space; if it does not fit the overflow
// protocol is invoked for the full size and the write retried once. A final
// buffer still too small truncates the output at the remaining space, the
// position advances by the truncated count, and the returned length is what
// a big enough buffer would have received. The error is non-nil only when
// the overflow protocol itself could not be satisfied.
func (t *TextStream) Formatf(format string, args ...interface{}) (int, error) {
	s := fmt.Sprintf(format, args...)
	n := len(s)

	var short error
	if n >= t.Remaining() {
		_, short = t.overflow(n + 1)
	}

	w := n
	if r := t.Remaining(); w > r {
		w = r
	}
	if w > 0 {
		t.BinaryStream.MustWrite([]byte(s[:w]))
	}

	if t.stats != nil {
		t.stats.Record(w)
	}
	return n, short
}

// Flush truncates the owned buffer to the current position, discarding the
// unused trailing capacity, so a downstream consumer reading the buffer's
// length sees exactly the bytes written. Flushing twice without intervening
// writes is a no-op the second time.
func (t *TextStream) Flush() error {
	pos := t.Pos()
	if err := t.buffer.Resize(pos); err != nil {
		return errors.Wrap(err, "truncating the output buffer")
	}

	t.BinaryStream.Link(t.buffer.Bytes())
	t.MustSeek(pos)
	return nil
}

// Bytes returns the written portion of the stream.
func (t *TextStream) Bytes() []byte {
	return t.BinaryStream.Bytes()[:t.Pos()]
}

// String returns the written portion of the stream as a string.
func (t *TextStream) String() string {
	return string(t.Bytes())
}

// WriteStream copies the written portion of src into the stream through the
// raw write path.
func (t *TextStream) WriteStream(src *BinaryStream) (int, error) {
	return t.Write(src.Bytes()[:src.Pos()])
}
