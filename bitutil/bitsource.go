package bitutil

// BitSource reads integers from a bit sequence where the number of bits read
// is not necessarily a multiple of 8. The sequence is backed by a bool slice
// because the zigzag extractor yields a stream whose length is rarely
// byte-aligned.
type BitSource struct {
	bits []bool
	pos  int
}

// NewBitSource creates a new BitSource over the given bits. Bits are read in
// order, most-significant first.
func NewBitSource(bits []bool) *BitSource {
	return &BitSource{bits: bits}
}

// ReadBits reads numBits bits and returns them as the least-significant bits
// of an int, accumulated big-endian.
func (bs *BitSource) ReadBits(numBits int) (int, error) {
	if numBits < 1 || numBits > 32 || numBits > bs.Available() {
		return 0, &BitSourceError{NumBits: numBits}
	}
	result := 0
	for i := 0; i < numBits; i++ {
		result <<= 1
		if bs.bits[bs.pos] {
			result |= 1
		}
		bs.pos++
	}
	return result, nil
}

// Available returns the number of bits that can still be read.
func (bs *BitSource) Available() int {
	return len(bs.bits) - bs.pos
}

// BitSourceError is returned when an invalid number of bits is requested.
type BitSourceError struct {
	NumBits int
}

func (e *BitSourceError) Error() string {
	return "bitsource: invalid number of bits"
}
