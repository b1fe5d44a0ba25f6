package compress

// ZstdCompressor compresses with Zstandard.
//
// The implementation is selected at build time: klauspost/compress by default,
// valyala/gozstd when built with cgo and the gozstd tag. Both produce standard
// zstd frames, so buffers are interchangeable between builds.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
