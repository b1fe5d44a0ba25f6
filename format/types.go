package format

type (
	SchemeType      uint8
	CompressionType uint8
)

const (
	SchemeRaw               SchemeType = 0x1 // SchemeRaw represents fixed-width bit-packing.
	SchemeHuffman           SchemeType = 0x2 // SchemeHuffman represents a canonical prefix code over the whole sequence.
	SchemeHuffmanComponents SchemeType = 0x3 // SchemeHuffmanComponents represents one canonical prefix code per component.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

const (
	// Version is the current format version stored in the high nibble of the scheme tag.
	Version = 0x1

	versionShift = 4
	schemeMask   = 0x0F
)

// Tag packs the format version and the scheme into a single tag byte.
func (s SchemeType) Tag() byte {
	return byte(Version<<versionShift) | byte(s)&schemeMask
}

// ParseTag splits a tag byte into its version and scheme.
func ParseTag(tag byte) (version uint8, scheme SchemeType) {
	return tag >> versionShift, SchemeType(tag & schemeMask)
}

// IsValid reports whether s is a known scheme.
func (s SchemeType) IsValid() bool {
	switch s {
	case SchemeRaw, SchemeHuffman, SchemeHuffmanComponents:
		return true
	default:
		return false
	}
}

func (s SchemeType) String() string {
	switch s {
	case SchemeRaw:
		return "Raw"
	case SchemeHuffman:
		return "Huffman"
	case SchemeHuffmanComponents:
		return "HuffmanComponents"
	default:
		return "Unknown"
	}
}

// IsValid reports whether c is a known compression type.
func (c CompressionType) IsValid() bool {
	switch c {
	case CompressionNone, CompressionZstd, CompressionS2, CompressionLZ4:
		return true
	default:
		return false
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression converts a lower-case compression name into a CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}
