package bitio

import (
	"fmt"

	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/internal/pool"
)

// MaxBits is the widest field accepted by PutBits and GetBits.
const MaxBits = 32

// Writer appends bit fields to a pooled byte buffer, most significant bit first.
type Writer struct {
	bitBuf   uint64 // pending bits, right-aligned
	bitCount int    // number of valid bits in bitBuf, always < 8 between calls
	total    int    // number of bits written in the current session
	ended    bool

	buf *pool.ByteBuffer
}

// NewWriter creates a writer and starts a session sized for capacityHint bytes.
func NewWriter(capacityHint int) *Writer {
	w := &Writer{}
	w.StartBitEncoding(capacityHint)

	return w
}

// StartBitEncoding begins a fresh write session, discarding any previous content.
//
// Parameters:
//   - capacityHint: expected size of the encoded data in bytes (0 if unknown)
func (w *Writer) StartBitEncoding(capacityHint int) {
	if w.buf == nil {
		w.buf = pool.GetBitBuffer()
	}
	w.buf.Reset()
	if capacityHint > 0 {
		w.buf.Grow(capacityHint)
	}

	w.bitBuf = 0
	w.bitCount = 0
	w.total = 0
	w.ended = false
}

// PutBits appends the low numBits bits of value.
//
// Returns errs.ErrInvalidWidth if numBits is negative, exceeds MaxBits, or if
// value has bits set above numBits. Writing zero bits of a zero value is a no-op.
func (w *Writer) PutBits(value uint32, numBits int) error {
	if numBits < 0 || numBits > MaxBits {
		return fmt.Errorf("%w: %d bits exceeds the %d-bit ceiling", errs.ErrInvalidWidth, numBits, MaxBits)
	}
	if numBits < MaxBits && value>>numBits != 0 {
		return fmt.Errorf("%w: value %d does not fit in %d bits", errs.ErrInvalidWidth, value, numBits)
	}
	if w.ended {
		panic("bitio: PutBits called after EndEncoding")
	}
	if numBits == 0 {
		return nil
	}
	if w.buf == nil {
		w.StartBitEncoding(0)
	}

	w.bitBuf = (w.bitBuf << numBits) | uint64(value)
	w.bitCount += numBits
	w.total += numBits

	for w.bitCount >= 8 {
		w.bitCount -= 8
		w.buf.AppendByte(byte(w.bitBuf >> w.bitCount))
	}
	w.bitBuf &= (1 << w.bitCount) - 1

	return nil
}

// PutBit appends a single bit.
func (w *Writer) PutBit(bit bool) {
	if bit {
		_ = w.PutBits(1, 1)
	} else {
		_ = w.PutBits(0, 1)
	}
}

// BitsWritten returns the number of bits written in the current session, excluding padding.
func (w *Writer) BitsWritten() int {
	return w.total
}

// EndEncoding pads the final byte with zero bits and returns the encoded byte count.
//
// Calling EndEncoding more than once returns the same count.
func (w *Writer) EndEncoding() int {
	if w.buf == nil {
		w.StartBitEncoding(0)
	}
	if !w.ended && w.bitCount > 0 {
		w.buf.AppendByte(byte(w.bitBuf << (8 - w.bitCount)))
		w.bitBuf = 0
		w.bitCount = 0
	}
	w.ended = true

	return w.buf.Len()
}

// Len returns the number of complete bytes in the buffer.
func (w *Writer) Len() int {
	if w.buf == nil {
		return 0
	}

	return w.buf.Len()
}

// Bytes returns a copy of the encoded bytes owned by the caller.
//
// Pending bits are only included after EndEncoding.
func (w *Writer) Bytes() []byte {
	if w.buf == nil {
		return []byte{}
	}

	out := make([]byte, w.buf.Len())
	copy(out, w.buf.Bytes())

	return out
}

// Release returns the internal buffer to the pool. The writer can be reused
// after another StartBitEncoding call.
func (w *Writer) Release() {
	if w.buf == nil {
		return
	}

	pool.PutBitBuffer(w.buf)
	w.buf = nil
}
