// Package container frames an encoded symbol buffer for storage or transfer.
//
// The symbol codec does not record how many values or components a buffer
// holds; the caller must supply both when decoding. A container stores them
// next to the buffer together with a checksum and an optional general-purpose
// compression pass:
//
//	offset  size  field
//	0       2     magic "SC"
//	2       1     flags: bit 0 big-endian, bits 4-7 compression type
//	3       1     reserved, must be zero
//	4       4     number of values
//	8       4     number of components
//	12      4     payload size (as stored, possibly compressed)
//	16      4     codec buffer size (before compression)
//	20      8     xxhash64 of the codec buffer
//	28      n     payload
//
// Integers use the byte order selected by the flags; the magic and the flags
// byte are read before the byte order is known.
//
// # Usage
//
//	frame, err := container.NewFrame(values, 3)
//	if err != nil {
//	    return err
//	}
//	data, err := container.Marshal(frame, container.WithCompression(format.CompressionZstd))
//
//	frame, err = container.Unmarshal(data)
//	values, err = frame.Decode()
package container
