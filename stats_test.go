package packio

import "testing"

func TestWriteStats(t *testing.T) {
	s := NewWriteStats(4096)

	for i := 0; i < 99; i++ {
		s.Record(8)
	}
	s.Record(120)

	if s.Count() != 100 {
		t.Errorf("expected 100 recorded writes, got %v", s.Count())
		return
	}

	if s.Max() != 120 {
		t.Errorf("expected max write of 120, got %v", s.Max())
	}

	if p := s.Percentile(50); p != 8 {
		t.Errorf("expected a median write of 8, got %v", p)
	}
}

func TestWriteStatsIgnoresNonPositiveSizes(t *testing.T) {
	s := NewWriteStats(1024)

	s.Record(0)
	s.Record(-5)

	if s.Count() != 0 {
		t.Errorf("expected no recorded writes, got %v", s.Count())
	}
}

func TestSuggestedCapacityIsAligned(t *testing.T) {
	s := NewWriteStats(1024)

	for i := 0; i < 100; i++ {
		s.Record(7)
	}

	c := s.SuggestedCapacity()

	if c%DefaultAlignment != 0 {
		t.Errorf("expected a capacity aligned on %v, got %v", DefaultAlignment, c)
	}

	if c < 7 {
		t.Errorf("expected a capacity covering the recorded writes, got %v", c)
	}
}
