package compress

import (
	"fmt"
	"time"

	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/format"
)

// maxDecodedSize bounds the size of a decompressed buffer.
const maxDecodedSize = 1 << 30

// Compressor compresses a complete encoded buffer.
//
// The returned slice is owned by the caller; implementations may return the
// input itself when no transformation is applied.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a buffer produced by the matching Compressor.
//
// Corrupted input or input produced by another algorithm results in an error.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions of one algorithm.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compress/decompress round of a buffer.
type CompressionStats struct {
	Algorithm           format.CompressionType
	OriginalSize        int64
	CompressedSize      int64
	CompressionTimeNs   int64
	DecompressionTimeNs int64
}

// CompressionRatio returns compressed size / original size, or 0 for an empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the saved space in percent. Negative values mean the
// algorithm expanded the input.
func (s CompressionStats) SpaceSavings() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec returns a new codec for compressionType.
//
// Returns errs.ErrInvalidCompression for unknown types.
func CreateCodec(compressionType format.CompressionType) (Codec, error) {
	switch compressionType {
	case format.CompressionNone:
		return NewNoOpCompressor(), nil
	case format.CompressionZstd:
		return NewZstdCompressor(), nil
	case format.CompressionS2:
		return NewS2Compressor(), nil
	case format.CompressionLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
	}
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec returns the shared codec instance for compressionType.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrInvalidCompression, compressionType)
}

// Measure compresses and decompresses data with the given algorithm and reports
// sizes and timings. It fails if the round trip does not restore data.
func Measure(compressionType format.CompressionType, data []byte) (CompressionStats, error) {
	st := CompressionStats{Algorithm: compressionType, OriginalSize: int64(len(data))}

	codec, err := GetCodec(compressionType)
	if err != nil {
		return st, err
	}

	start := time.Now()
	packed, err := codec.Compress(data)
	if err != nil {
		return st, fmt.Errorf("%s compress: %w", compressionType, err)
	}
	st.CompressionTimeNs = time.Since(start).Nanoseconds()
	st.CompressedSize = int64(len(packed))

	start = time.Now()
	restored, err := codec.Decompress(packed)
	if err != nil {
		return st, fmt.Errorf("%s decompress: %w", compressionType, err)
	}
	st.DecompressionTimeNs = time.Since(start).Nanoseconds()

	if len(restored) != len(data) {
		return st, fmt.Errorf("%s round trip: got %d bytes, expected %d", compressionType, len(restored), len(data))
	}

	return st, nil
}
