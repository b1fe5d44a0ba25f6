package container

import (
	"fmt"

	"github.com/arloliu/symcodec/endian"
	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/format"
)

const (
	// HeaderSize is the size of the fixed container header in bytes.
	HeaderSize = 28

	magic0 = 'S'
	magic1 = 'C'

	bigEndianMask    = 0x01
	compressionShift = 4
	reservedFlagMask = 0x0E
)

// Flag packs the byte order and the compression type of a container.
type Flag uint8

// NewFlag returns little-endian flags without compression.
func NewFlag() Flag {
	return Flag(uint8(format.CompressionNone) << compressionShift)
}

// IsBigEndian reports whether header integers are big-endian.
func (f Flag) IsBigEndian() bool {
	return f&bigEndianMask != 0
}

// WithBigEndian returns f with the big-endian bit set.
func (f Flag) WithBigEndian() Flag {
	return f | bigEndianMask
}

// Compression returns the payload compression type.
func (f Flag) Compression() format.CompressionType {
	return format.CompressionType(uint8(f) >> compressionShift)
}

// WithCompression returns f with the compression type replaced by c.
func (f Flag) WithCompression(c format.CompressionType) Flag {
	return f&0x0F | Flag(uint8(c)<<compressionShift)
}

// Engine returns the byte order selected by f.
func (f Flag) Engine() endian.EndianEngine {
	return endian.GetEngine(f.IsBigEndian())
}

// Validate checks the reserved bits and the compression type.
func (f Flag) Validate() error {
	if f&reservedFlagMask != 0 {
		return fmt.Errorf("%w: reserved flag bits set (0x%02x)", errs.ErrInvalidHeader, uint8(f))
	}
	if !f.Compression().IsValid() {
		return fmt.Errorf("%w: compression type %d", errs.ErrInvalidCompression, f.Compression())
	}

	return nil
}

// Header is the fixed-size container header.
type Header struct {
	Flag          Flag
	NumValues     uint32
	NumComponents uint32
	PayloadSize   uint32
	RawSize       uint32
	Checksum      uint64
}

// Bytes serializes the header.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine := h.Flag.Engine()

	b[0], b[1] = magic0, magic1
	b[2] = byte(h.Flag)
	engine.PutUint32(b[4:8], h.NumValues)
	engine.PutUint32(b[8:12], h.NumComponents)
	engine.PutUint32(b[12:16], h.PayloadSize)
	engine.PutUint32(b[16:20], h.RawSize)
	engine.PutUint64(b[20:28], h.Checksum)

	return b
}

// ParseHeader parses the header at the start of data.
//
// Returns errs.ErrInvalidHeader if data is too short, the magic does not match,
// the reserved fields are set or numComponents is zero.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, need %d", errs.ErrInvalidHeader, len(data), HeaderSize)
	}
	if data[0] != magic0 || data[1] != magic1 {
		return Header{}, fmt.Errorf("%w: bad magic 0x%02x%02x", errs.ErrInvalidHeader, data[0], data[1])
	}
	if data[3] != 0 {
		return Header{}, fmt.Errorf("%w: reserved byte 0x%02x", errs.ErrInvalidHeader, data[3])
	}

	h := Header{Flag: Flag(data[2])}
	if err := h.Flag.Validate(); err != nil {
		return Header{}, err
	}

	engine := h.Flag.Engine()
	h.NumValues = engine.Uint32(data[4:8])
	h.NumComponents = engine.Uint32(data[8:12])
	h.PayloadSize = engine.Uint32(data[12:16])
	h.RawSize = engine.Uint32(data[16:20])
	h.Checksum = engine.Uint64(data[20:28])

	if h.NumComponents == 0 {
		return Header{}, fmt.Errorf("%w: zero components", errs.ErrInvalidHeader)
	}
	if h.Flag.Compression() == format.CompressionNone && h.PayloadSize != h.RawSize {
		return Header{}, fmt.Errorf("%w: uncompressed payload of %d bytes declares raw size %d",
			errs.ErrInvalidHeader, h.PayloadSize, h.RawSize)
	}

	return h, nil
}
