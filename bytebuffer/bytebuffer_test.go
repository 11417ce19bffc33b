package bytebuffer

import "testing"

func TestReserveGrowsAndPreserves(t *testing.T) {
	b := NewByteBufferString("packed")

	if err := b.Reserve(64, true); err != nil {
		t.Error(err)
		return
	}

	if b.Cap() < 64 {
		t.Errorf("expected capacity of at least 64, got %v", b.Cap())
		return
	}

	if string(b.Bytes()) != "packed" {
		t.Errorf("expected contents to be preserved across growth, got %v", string(b.Bytes()))
	}
}

func TestReserveIsMonotonic(t *testing.T) {
	b := NewByteBuffer(8)

	cases := []int{16, 4, 100, 50, 1}
	last := b.Cap()

	for _, n := range cases {
		if err := b.Reserve(n, true); err != nil {
			t.Error(err)
			return
		}

		if b.Cap() < last {
			t.Errorf("capacity shrank from %v to %v on Reserve(%v)", last, b.Cap(), n)
			return
		}
		last = b.Cap()
	}
}

func TestLinkedBufferRefusesGrowth(t *testing.T) {
	raw := make([]byte, 4)
	b := NewByteBufferSlice(raw)

	if b.Resizable() {
		t.Error("a linked buffer should not report itself resizable")
		return
	}

	if err := b.Reserve(8, true); err == nil {
		t.Error("expected error reserving past the capacity of a linked buffer")
	}

	if err := b.Reserve(4, true); err != nil {
		t.Error("reserving within the capacity of a linked buffer should succeed")
	}
}

func TestResize(t *testing.T) {
	b := NewByteBuffer(4)
	copy(b.Bytes(), "abcd")

	if err := b.Resize(2); err != nil {
		t.Error(err)
		return
	}

	if b.Len() != 2 || string(b.Bytes()) != "ab" {
		t.Errorf("expected truncation to \"ab\", got %v", string(b.Bytes()))
		return
	}

	if err := b.Resize(4); err != nil {
		t.Error(err)
		return
	}

	if b.Bytes()[2] != 0 || b.Bytes()[3] != 0 {
		t.Error("bytes exposed by growing back should be zeroed")
	}

	if err := b.Resize(-1); err == nil {
		t.Error("expected error resizing to a negative length")
	}
}

func TestLinkDropsOwnership(t *testing.T) {
	b := NewByteBuffer(4)
	raw := make([]byte, 2)
	b.Link(raw)

	if b.Resizable() {
		t.Error("buffer should not be resizable after linking to external memory")
	}

	if b.Len() != 2 {
		t.Errorf("expected length 2 after linking, got %v", b.Len())
	}
}
