package container

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/arloliu/symcodec"
	"github.com/arloliu/symcodec/compress"
	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/internal/hash"
	"github.com/arloliu/symcodec/internal/options"
)

// Frame is an encoded symbol buffer together with its shape.
type Frame struct {
	NumValues     int
	NumComponents int
	// Data is the codec buffer produced by symcodec.EncodeSymbols.
	Data []byte
}

// NewFrame encodes symbols and wraps the buffer in a Frame.
func NewFrame(symbols []uint32, numComponents int, opts ...symcodec.Option) (Frame, error) {
	data, err := symcodec.EncodeSymbols(symbols, len(symbols), numComponents, opts...)
	if err != nil {
		return Frame{}, err
	}

	return Frame{NumValues: len(symbols), NumComponents: numComponents, Data: data}, nil
}

// Decode decodes the symbols held by the frame.
func (f Frame) Decode(opts ...symcodec.Option) ([]uint32, error) {
	return symcodec.DecodeSymbols(f.Data, f.NumValues, f.NumComponents, opts...)
}

func (f Frame) validate() error {
	if f.NumComponents < 1 || uint64(f.NumComponents) > math.MaxUint32 {
		return fmt.Errorf("%w: numComponents %d", errs.ErrInvalidInput, f.NumComponents)
	}
	if f.NumValues < 0 || uint64(f.NumValues) > math.MaxUint32 {
		return fmt.Errorf("%w: numValues %d", errs.ErrInvalidInput, f.NumValues)
	}
	if uint64(len(f.Data)) > math.MaxUint32 {
		return fmt.Errorf("%w: %d byte buffer", errs.ErrInvalidInput, len(f.Data))
	}

	return nil
}

// Marshal serializes f into a new container.
func Marshal(f Frame, opts ...Option) ([]byte, error) {
	h, payload, err := build(f, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = append(out, h.Bytes()...)

	return append(out, payload...), nil
}

// Write serializes f into w and returns the number of bytes written.
func Write(w io.Writer, f Frame, opts ...Option) (int, error) {
	h, payload, err := build(f, opts...)
	if err != nil {
		return 0, err
	}

	n, err := w.Write(h.Bytes())
	if err != nil {
		return n, err
	}
	m, err := w.Write(payload)

	return n + m, err
}

func build(f Frame, opts ...Option) (Header, []byte, error) {
	cfg := &config{flag: NewFlag()}
	if err := options.Apply(cfg, opts...); err != nil {
		return Header{}, nil, err
	}
	if err := f.validate(); err != nil {
		return Header{}, nil, err
	}

	codec, err := compress.GetCodec(cfg.flag.Compression())
	if err != nil {
		return Header{}, nil, err
	}
	payload, err := codec.Compress(f.Data)
	if err != nil {
		return Header{}, nil, fmt.Errorf("compress payload: %w", err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return Header{}, nil, fmt.Errorf("%w: %d byte payload", errs.ErrInvalidInput, len(payload))
	}

	h := Header{
		Flag:          cfg.flag,
		NumValues:     uint32(f.NumValues),     //nolint:gosec // validated
		NumComponents: uint32(f.NumComponents), //nolint:gosec // validated
		PayloadSize:   uint32(len(payload)),    //nolint:gosec // checked above
		RawSize:       uint32(len(f.Data)),     //nolint:gosec // validated
		Checksum:      hash.Checksum(f.Data),
	}

	return h, payload, nil
}

// Unmarshal parses a container produced by Marshal.
//
// Trailing bytes after the payload are ignored. Returns errs.ErrInvalidHeader
// for a malformed header, errs.ErrTruncatedStream if the payload is shorter
// than announced and errs.ErrChecksumMismatch if the restored buffer does not
// match the stored checksum.
func Unmarshal(data []byte) (Frame, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return Frame{}, err
	}

	rest := data[HeaderSize:]
	if uint64(len(rest)) < uint64(h.PayloadSize) {
		return Frame{}, fmt.Errorf("%w: payload of %d bytes, %d available",
			errs.ErrTruncatedStream, h.PayloadSize, len(rest))
	}

	return open(h, rest[:h.PayloadSize])
}

// Read reads one container from r.
func Read(r io.Reader) (Frame, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Frame{}, fmt.Errorf("%w: %w", errs.ErrInvalidHeader, err)
	}

	h, err := ParseHeader(buf)
	if err != nil {
		return Frame{}, err
	}

	// grow with the data actually read instead of trusting the announced size
	var payload bytes.Buffer
	if _, err := io.CopyN(&payload, r, int64(h.PayloadSize)); err != nil {
		return Frame{}, fmt.Errorf("%w: %w", errs.ErrTruncatedStream, err)
	}

	return open(h, payload.Bytes())
}

func open(h Header, payload []byte) (Frame, error) {
	codec, err := compress.GetCodec(h.Flag.Compression())
	if err != nil {
		return Frame{}, err
	}

	data, err := codec.Decompress(payload)
	if err != nil {
		return Frame{}, fmt.Errorf("%w: %w", errs.ErrChecksumMismatch, err)
	}
	if uint64(len(data)) != uint64(h.RawSize) {
		return Frame{}, fmt.Errorf("%w: restored %d bytes, expected %d",
			errs.ErrChecksumMismatch, len(data), h.RawSize)
	}
	if sum := hash.Checksum(data); sum != h.Checksum {
		return Frame{}, fmt.Errorf("%w: got %016x, expected %016x", errs.ErrChecksumMismatch, sum, h.Checksum)
	}

	// the none codec aliases the input
	out := make([]byte, len(data))
	copy(out, data)

	return Frame{
		NumValues:     int(h.NumValues),
		NumComponents: int(h.NumComponents),
		Data:          out,
	}, nil
}
