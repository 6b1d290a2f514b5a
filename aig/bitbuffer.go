package aig

// bitBuffer is an append-only sequence of unsigned integers, each
// packed into the minimum number of bits needed to represent a
// caller-supplied inclusive upper bound (limit). Width is derived per
// call, not stored: callers must pass a consistent limit across
// append/get calls against the same logical buffer, exactly as
// original_source/libaig/src/bitbuffer.c documents — passing an
// inconsistent limit is undefined behavior, debug-checkable only by
// value <= limit at append time.
//
// Bits are packed LSB-first within each byte and appended sequentially
// across the backing array, the same bit order nes/controller.go's
// shift-register read/write and nes/cpu.go's status.encode/decodeFrom
// use for their fixed eight-bit case, generalized here to an arbitrary
// per-call width.
type bitBuffer struct {
	buf   []byte
	nbits uint64
	count uint64
}

// width returns the number of bits needed to hold any value up to and
// including limit.
func width(limit uint64) uint {
	if limit == 0 {
		return 1
	}
	var w uint
	for v := limit; v != 0; v >>= 1 {
		w++
	}
	return w
}

// isEmpty reports whether the buffer holds no items.
func (b *bitBuffer) isEmpty() bool {
	return b.count == 0
}

// len returns the number of items appended so far.
func (b *bitBuffer) len() uint64 {
	return b.count
}

// reset discards all storage, returning the buffer to its zero state.
func (b *bitBuffer) reset() {
	b.buf = nil
	b.nbits = 0
	b.count = 0
}

// append adds value to the end of the buffer, packed at width(limit)
// bits. It returns KindInvalidArgument if value exceeds limit.
func (b *bitBuffer) append(value, limit uint64) error {
	if value > limit {
		return newErr(KindInvalidArgument, "value %d exceeds limit %d", value, limit)
	}

	w := width(limit)
	b.ensureBits(b.nbits + uint64(w))

	for i := uint(0); i < w; i++ {
		bit := (value >> i) & 1
		if bit != 0 {
			b.setBit(b.nbits + uint64(i))
		}
	}
	b.nbits += uint64(w)
	b.count++
	return nil
}

// get retrieves the item at index, assuming every item in the buffer
// was appended with the same limit. It returns KindOutOfRange if the
// buffer holds fewer than index+1 items.
func (b *bitBuffer) get(index, limit uint64) (uint64, error) {
	if index >= b.count {
		return 0, newErr(KindOutOfRange, "bit buffer index %d out of range (len=%d)", index, b.count)
	}

	w := width(limit)
	start := index * uint64(w)

	var v uint64
	for i := int(w) - 1; i >= 0; i-- {
		v <<= 1
		v |= b.getBit(start + uint64(i))
	}
	return v, nil
}

// ensureBits grows buf so it can hold at least n bits.
func (b *bitBuffer) ensureBits(n uint64) {
	need := (n + 7) / 8
	if uint64(len(b.buf)) >= need {
		return
	}
	grown := make([]byte, need)
	copy(grown, b.buf)
	b.buf = grown
}

func (b *bitBuffer) setBit(pos uint64) {
	byteOffset := pos / 8
	bitOffset := pos % 8
	b.buf[byteOffset] |= 1 << bitOffset
}

func (b *bitBuffer) getBit(pos uint64) uint64 {
	byteOffset := pos / 8
	bitOffset := pos % 8
	return uint64((b.buf[byteOffset] >> bitOffset) & 1)
}
