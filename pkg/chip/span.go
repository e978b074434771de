package chip

// MutableByteSpan is a writable view over a caller-owned buffer. Writers
// fill Data and then shrink the visible length with ReduceSize.
type MutableByteSpan struct {
	buf []byte
	n   int
}

// NewMutableByteSpan returns a span covering all of buf.
func NewMutableByteSpan(buf []byte) *MutableByteSpan {
	return &MutableByteSpan{buf: buf, n: len(buf)}
}

// Data returns the full backing buffer.
func (s *MutableByteSpan) Data() []byte {
	return s.buf
}

// Size returns the visible length.
func (s *MutableByteSpan) Size() int {
	return s.n
}

// Bytes returns the visible part of the buffer.
func (s *MutableByteSpan) Bytes() []byte {
	return s.buf[:s.n]
}

// ReduceSize shrinks the visible length. Growing past the backing buffer is
// not possible; n is clamped.
func (s *MutableByteSpan) ReduceSize(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(s.buf) {
		n = len(s.buf)
	}
	s.n = n
}
