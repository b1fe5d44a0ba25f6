// Package bitio provides the bit buffer underlying every symcodec buffer.
//
// Writer appends variable-width bit fields to a growable byte sequence and
// Reader extracts them again. Both use the same bit order: most significant bit
// first within each byte, bytes in ascending order. Fields of different widths
// can be mixed freely; nothing is realigned between fields, only the final byte
// is padded with zero bits by Writer.EndEncoding.
//
// # Basic Usage
//
//	w := bitio.NewWriter(64)
//	defer w.Release()
//
//	_ = w.PutBits(0x12, 8) // tag byte
//	_ = w.PutBits(5, 3)    // a 3-bit field
//	n := w.EndEncoding()
//	data := w.Bytes()      // n bytes, caller owned
//
//	var r bitio.Reader
//	_ = r.Init(data, len(data))
//	tag, _ := r.GetBits(8)
//	v, _ := r.GetBits(3)
//
// Field widths are limited to MaxBits. Writers and readers are not safe for
// concurrent use; create one per encode or decode call.
package bitio
