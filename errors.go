package packio

import "fmt"

// RangeError is returned when a seek or a raw write on a stream would move
// the position past the capacity of a buffer that cannot grow.
type RangeError struct {
	Op        string // the operation that failed
	Pos       int    // stream position when the operation was attempted
	Requested int    // bytes (or target position, for seeks) requested
	Size      int    // capacity of the linked buffer
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("packio: %s out of range: position %d, requested %d, buffer size %d", e.Op, e.Pos, e.Requested, e.Size)
}

// AlignmentError is returned when a typed write is attempted at a position
// that is not a multiple of the required alignment grain. The stream never
// realigns on its own since inserting pad bytes would change the packed
// layout seen by readers.
type AlignmentError struct {
	Pos   int // misaligned stream position
	Grain int // required alignment in bytes
}

func (e *AlignmentError) Error() string {
	return fmt.Sprintf("packio: misaligned write: position %d is not aligned on %d bytes", e.Pos, e.Grain)
}

// BoundsError is returned by the formatted write paths of a TextStream when
// the overflow protocol cannot make enough room, either because the stream is
// bound to a fixed external region or because growing the owned buffer failed.
type BoundsError struct {
	Op        string // operation being performed, e.g. "write"
	Subject   string // what was being written, e.g. "text"
	Pos       int    // stream position when the shortfall was detected
	Requested int    // bytes needed
	Remaining int    // bytes actually available
	Err       error  // underlying growth failure, if any
}

func (e *BoundsError) Error() string {
	s := fmt.Sprintf("packio: %s %s: bounds exceeded at position %d: requested %d bytes, %d remaining", e.Op, e.Subject, e.Pos, e.Requested, e.Remaining)
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Cause returns the underlying growth failure, for compatibility with
// errors.Cause.
func (e *BoundsError) Cause() error { return e.Err }
