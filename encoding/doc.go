// Package encoding implements fixed-width bit-packing of symbol sequences, the
// raw scheme of symcodec.
//
// A raw payload starts with a 5-bit field holding the symbol width minus one,
// followed by every symbol in encounter order using exactly that many bits:
//
//	width-1 (5 bits) | s0 (w bits) | s1 (w bits) | ... | s[n-1] (w bits)
//
// The width is the minimum able to represent the largest symbol, so an n-symbol
// payload occupies 5 + n*w bits. Because every field has the same width, the
// symbol at index i starts at bit 5 + i*w, which RawDecoder.At uses for random
// access without decoding the preceding symbols.
package encoding
