// Package errs defines the sentinel errors returned by symcodec packages.
//
// Call sites wrap these sentinels with additional context using fmt.Errorf and
// the %w verb, so callers should match them with errors.Is:
//
//	values, err := symcodec.DecodeSymbols(data, n, 3)
//	if errors.Is(err, errs.ErrTruncatedStream) {
//	    // re-fetch the buffer
//	}
package errs

import "errors"

// Codec call and bit buffer errors.
var (
	// ErrInvalidInput indicates malformed call parameters, such as zero components
	// or a symbol slice whose length does not match the declared value count.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidWidth indicates a bit width outside the supported range, or a value
	// that cannot be represented in the requested number of bits.
	ErrInvalidWidth = errors.New("invalid bit width")

	// ErrBufferUnderrun indicates a read request for more bits than remain in the buffer.
	ErrBufferUnderrun = errors.New("bit buffer underrun")
)

// Compressed buffer errors.
var (
	// ErrTruncatedStream indicates the payload ended before all symbols were recovered.
	ErrTruncatedStream = errors.New("truncated stream")

	// ErrCorruptTable indicates a serialized code table that fails consistency checks,
	// or a payload code that does not map to any table entry.
	ErrCorruptTable = errors.New("corrupt code table")

	// ErrUnknownScheme indicates an unsupported format version or scheme tag.
	ErrUnknownScheme = errors.New("unknown scheme")
)

// Container errors.
var (
	// ErrInvalidHeader indicates a container header that is too short or carries a bad magic number.
	ErrInvalidHeader = errors.New("invalid container header")

	// ErrChecksumMismatch indicates the container payload does not match its stored checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrInvalidCompression indicates an unsupported compression type in a container.
	ErrInvalidCompression = errors.New("invalid compression type")
)
