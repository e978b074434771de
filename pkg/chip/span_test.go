package chip

import "testing"

func TestMutableByteSpan(t *testing.T) {
	s := NewMutableByteSpan(make([]byte, 8))
	if s.Size() != 8 {
		t.Fatalf("Size() = %d, want 8", s.Size())
	}

	copy(s.Data(), "abc")
	s.ReduceSize(3)
	if string(s.Bytes()) != "abc" {
		t.Errorf("Bytes() = %q, want abc", s.Bytes())
	}

	s.ReduceSize(100)
	if s.Size() != 8 {
		t.Errorf("ReduceSize past buffer: Size() = %d, want 8", s.Size())
	}
	s.ReduceSize(-1)
	if s.Size() != 0 {
		t.Errorf("ReduceSize(-1): Size() = %d, want 0", s.Size())
	}
}
