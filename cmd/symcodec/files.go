package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/arloliu/symcodec/endian"
)

// dummyValues is written when the input file does not exist.
var dummyValues = []uint32{1, 2, 3, 1, 1, 1, 2, 1, 1, 2, 3, 1}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

func createDummyFile(path string) error {
	return writeValues(path, dummyValues)
}

// readValues reads a file of packed little-endian uint32 values.
func readValues(path string) ([]uint32, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values, err := endian.Uint32s(endian.GetLittleEndianEngine(), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return values, nil
}

// writeValues writes values as packed little-endian uint32 values.
func writeValues(path string, values []uint32) error {
	data := endian.AppendUint32s(endian.GetLittleEndianEngine(), nil, values)

	return os.WriteFile(path, data, 0o644) //nolint:gosec // output files are meant to be shared
}
