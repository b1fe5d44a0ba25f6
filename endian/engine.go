// Package endian selects the byte order of the fixed-width integers stored in
// container headers and raw value files.
//
// Encoded symbol buffers are bit streams and have no byte order; only the
// framing around them does. Little-endian is the default everywhere:
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, numValues)
//
// All engines are immutable and safe for concurrent use.
package endian

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// EndianEngine reads, writes and appends fixed-width integers in one byte order.
//
// binary.LittleEndian and binary.BigEndian satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness returns the byte order of the host.
func CheckEndianness() binary.ByteOrder {
	var probe uint16 = 0x0100
	if (*[2]byte)(unsafe.Pointer(&probe))[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

// CompareNativeEndian reports whether engine matches the host byte order.
func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetEngine returns the big-endian engine if bigEndian is set, little-endian otherwise.
func GetEngine(bigEndian bool) EndianEngine {
	if bigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// AppendUint32s appends every value to dst as a 4-byte integer.
func AppendUint32s(engine EndianEngine, dst []byte, values []uint32) []byte {
	dst = growCap(dst, len(values)*4)
	for _, v := range values {
		dst = engine.AppendUint32(dst, v)
	}

	return dst
}

// Uint32s decodes data as a packed array of 4-byte integers.
func Uint32s(engine EndianEngine, data []byte) ([]uint32, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("length %d is not a multiple of 4", len(data))
	}

	values := make([]uint32, len(data)/4)
	for i := range values {
		values[i] = engine.Uint32(data[i*4:])
	}

	return values, nil
}

func growCap(b []byte, n int) []byte {
	if cap(b)-len(b) >= n {
		return b
	}
	grown := make([]byte, len(b), len(b)+n)
	copy(grown, b)

	return grown
}
