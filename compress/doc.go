// Package compress provides general-purpose compression codecs applied to
// encoded symbol buffers before they are written to a container.
//
// The symbol codec already removes most redundancy from the values themselves,
// but buffers produced by the raw scheme still carry byte-level repetition
// (long runs of identical fields, aligned patterns) that a dictionary coder can
// exploit. The container stores the chosen algorithm in its header so the
// reader can pick the matching Decompressor.
//
// Supported algorithms:
//   - None: returns the input unchanged
//   - Zstd: best ratio, moderate speed
//   - S2: balanced ratio and speed
//   - LZ4: fastest decompression
//
// Zstd uses the pure Go klauspost/compress implementation by default. Building
// with cgo enabled and the gozstd tag switches to the libzstd binding:
//
//	go build -tags gozstd ./...
//
// All codecs are safe for concurrent use. Use GetCodec to obtain a shared
// instance, or Measure to compare algorithms on a concrete buffer:
//
//	codec, err := compress.GetCodec(format.CompressionS2)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(buf)
package compress
