package bitio

import (
	"fmt"

	"github.com/arloliu/symcodec/errs"
)

// Reader extracts bit fields written by Writer.
//
// The zero value is an empty reader; call Init to attach it to data.
type Reader struct {
	data  []byte
	pos   int // bit cursor
	limit int // total readable bits
}

// NewReader creates a reader positioned at the first bit of data.
func NewReader(data []byte) *Reader {
	r := &Reader{}
	_ = r.Init(data, len(data))

	return r
}

// Init attaches the reader to the first length bytes of data and resets the cursor to bit 0.
//
// Returns errs.ErrBufferUnderrun if length exceeds len(data), errs.ErrInvalidInput if it is negative.
func (r *Reader) Init(data []byte, length int) error {
	if length < 0 {
		return fmt.Errorf("%w: negative length %d", errs.ErrInvalidInput, length)
	}
	if length > len(data) {
		return fmt.Errorf("%w: length %d exceeds %d available bytes", errs.ErrBufferUnderrun, length, len(data))
	}

	r.data = data[:length]
	r.pos = 0
	r.limit = length * 8

	return nil
}

// GetBits reads the next numBits bits as an unsigned integer and advances the cursor.
//
// Returns errs.ErrInvalidWidth for widths outside 0..MaxBits and errs.ErrBufferUnderrun
// when fewer than numBits bits remain; the cursor is not moved on error.
func (r *Reader) GetBits(numBits int) (uint32, error) {
	if numBits < 0 || numBits > MaxBits {
		return 0, fmt.Errorf("%w: %d bits exceeds the %d-bit ceiling", errs.ErrInvalidWidth, numBits, MaxBits)
	}
	if numBits == 0 {
		return 0, nil
	}
	if numBits > r.limit-r.pos {
		return 0, fmt.Errorf("%w: need %d bits, %d remain", errs.ErrBufferUnderrun, numBits, r.limit-r.pos)
	}

	byteIdx := r.pos >> 3
	bitOff := r.pos & 7
	numBytes := (bitOff + numBits + 7) >> 3

	// at most 5 bytes for a 32-bit field at a non-zero bit offset
	var acc uint64
	for _, b := range r.data[byteIdx : byteIdx+numBytes] {
		acc = (acc << 8) | uint64(b)
	}
	acc >>= numBytes*8 - bitOff - numBits
	r.pos += numBits

	return uint32(acc & ((1 << numBits) - 1)), nil //nolint:gosec // masked to numBits <= 32
}

// GetBit reads a single bit.
func (r *Reader) GetBit() (uint32, error) {
	if r.pos >= r.limit {
		return 0, fmt.Errorf("%w: need 1 bit, 0 remain", errs.ErrBufferUnderrun)
	}

	bit := (r.data[r.pos>>3] >> (7 - r.pos&7)) & 1
	r.pos++

	return uint32(bit), nil
}

// BitsRemaining returns the number of unread bits, including final-byte padding.
func (r *Reader) BitsRemaining() int {
	return r.limit - r.pos
}

// BitPosition returns the cursor position in bits from the start of the data.
func (r *Reader) BitPosition() int {
	return r.pos
}

// Skip advances the cursor by numBits bits.
//
// Returns errs.ErrBufferUnderrun if fewer than numBits bits remain; the cursor is not moved on error.
func (r *Reader) Skip(numBits int) error {
	if numBits < 0 {
		return fmt.Errorf("%w: negative skip %d", errs.ErrInvalidInput, numBits)
	}
	if numBits > r.limit-r.pos {
		return fmt.Errorf("%w: cannot skip %d bits, %d remain", errs.ErrBufferUnderrun, numBits, r.limit-r.pos)
	}
	r.pos += numBits

	return nil
}
