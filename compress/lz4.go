package compress

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"
)

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor compresses with LZ4 blocks.
//
// Each block is prefixed with the uncompressed length as a uvarint so that
// decompression allocates the exact output size.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates an LZ4 codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress writes the length prefix followed by an LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dst := binary.AppendUvarint(make([]byte, 0, binary.MaxVarintLen64+lz4.CompressBlockBound(len(data))), uint64(len(data)))
	prefix := len(dst)
	dst = dst[:cap(dst)]

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[prefix:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		// stored input: a block exactly as long as the announced size
		dst = append(dst[:prefix], data...)
		return dst, nil
	}

	return dst[:prefix+n], nil
}

// Decompress reads the length prefix and decodes the LZ4 block.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	size, n := binary.Uvarint(data)
	if n <= 0 || size > maxDecodedSize {
		return nil, fmt.Errorf("lz4: invalid length prefix")
	}
	block := data[n:]

	if uint64(len(block)) == size {
		out := make([]byte, size)
		copy(out, block)

		return out, nil
	}

	out := make([]byte, size)
	written, err := lz4.UncompressBlock(block, out)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if uint64(written) != size {
		return nil, fmt.Errorf("lz4: decoded %d bytes, expected %d", written, size)
	}

	return out, nil
}
