package packio

import "github.com/codahale/hdrhistogram"

// WriteStats records the size of every rendered write going through a
// TextStream it is registered on with SetStats. The distribution tells a
// caller how big rendered values actually are in their workload, which is
// the number to pre-size buffers with instead of guessing.
type WriteStats struct {
	h *hdrhistogram.Histogram
}

// NewWriteStats creates a recorder for write sizes between 1 and maxSize
// bytes, tracked at three significant figures.
func NewWriteStats(maxSize int64) *WriteStats {
	return &WriteStats{h: hdrhistogram.New(1, maxSize, 3)}
}

// Record adds one observed write of n bytes. Sizes outside the recorder's
// range are dropped.
func (s *WriteStats) Record(n int) {
	if n <= 0 {
		return
	}
	_ = s.h.RecordValue(int64(n))
}

// Count returns the number of writes recorded.
func (s *WriteStats) Count() int64 { return s.h.TotalCount() }

// Mean returns the mean recorded write size.
func (s *WriteStats) Mean() float64 { return s.h.Mean() }

// Max returns the largest recorded write size.
func (s *WriteStats) Max() int64 { return s.h.Max() }

// Percentile returns the write size at the qth percentile, q in (0, 100].
func (s *WriteStats) Percentile(q float64) int64 {
	return s.h.ValueAtQuantile(q)
}

// SuggestedCapacity returns a per-write buffer capacity covering 99 percent
// of the recorded writes, rounded up to a multiple of DefaultAlignment.
func (s *WriteStats) SuggestedCapacity() int {
	p := int(s.h.ValueAtQuantile(99))
	return (p + DefaultAlignment - 1) / DefaultAlignment * DefaultAlignment
}
