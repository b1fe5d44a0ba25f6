package encoding

import (
	"fmt"

	"github.com/arloliu/symcodec/bitio"
	"github.com/arloliu/symcodec/errs"
)

// widthFieldBits is the size of the raw payload header.
const widthFieldBits = 5

// RawEncoder packs symbols into fixed-width bit fields.
type RawEncoder struct {
	width int
}

// NewRawEncoder creates an encoder writing width-bit fields.
//
// Returns errs.ErrInvalidWidth if width is outside 1..bitio.MaxBits.
func NewRawEncoder(width int) (RawEncoder, error) {
	if width < 1 || width > bitio.MaxBits {
		return RawEncoder{}, fmt.Errorf("%w: raw width %d outside 1..%d", errs.ErrInvalidWidth, width, bitio.MaxBits)
	}

	return RawEncoder{width: width}, nil
}

// Width returns the field width in bits.
func (e RawEncoder) Width() int {
	return e.width
}

// EncodedBits returns the number of bits Encode writes for count symbols, header included.
func (e RawEncoder) EncodedBits(count int) int {
	return widthFieldBits + count*e.width
}

// Encode writes the width header followed by every symbol.
//
// Returns errs.ErrInvalidWidth if a symbol does not fit into the encoder width.
func (e RawEncoder) Encode(w *bitio.Writer, symbols []uint32) error {
	if err := w.PutBits(uint32(e.width-1), widthFieldBits); err != nil { //nolint:gosec // 0..31
		return err
	}

	for i, s := range symbols {
		if err := w.PutBits(s, e.width); err != nil {
			return fmt.Errorf("symbol %d: %w", i, err)
		}
	}

	return nil
}

// RawDecoder unpacks fixed-width bit fields written by RawEncoder.
//
// The decoder is stateless and can be used concurrently.
type RawDecoder struct{}

// NewRawDecoder creates a raw decoder.
func NewRawDecoder() RawDecoder {
	return RawDecoder{}
}

// ReadWidth reads the width header.
func (RawDecoder) ReadWidth(r *bitio.Reader) (int, error) {
	v, err := r.GetBits(widthFieldBits)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errs.ErrTruncatedStream, err)
	}

	return int(v) + 1, nil
}

// Decode reads the width header and fills dst with len(dst) symbols.
//
// The payload length is checked before any symbol is decoded, so a short buffer
// fails with errs.ErrTruncatedStream without touching dst.
func (d RawDecoder) Decode(r *bitio.Reader, dst []uint32) error {
	width, err := d.ReadWidth(r)
	if err != nil {
		return err
	}

	if need := len(dst) * width; need > r.BitsRemaining() {
		return fmt.Errorf("%w: %d values of %d bits need %d bits, %d remain",
			errs.ErrTruncatedStream, len(dst), width, need, r.BitsRemaining())
	}

	for i := range dst {
		v, err := r.GetBits(width)
		if err != nil {
			return fmt.Errorf("%w: symbol %d: %w", errs.ErrTruncatedStream, i, err)
		}
		dst[i] = v
	}

	return nil
}

// At returns the symbol at index from a raw payload that starts at the first bit of data.
//
// The second return value is false if index is out of range or data is too short.
func (d RawDecoder) At(data []byte, index int, count int) (uint32, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	r := bitio.NewReader(data)
	width, err := d.ReadWidth(r)
	if err != nil {
		return 0, false
	}

	if err := r.Skip(index * width); err != nil {
		return 0, false
	}

	v, err := r.GetBits(width)
	if err != nil {
		return 0, false
	}

	return v, true
}
