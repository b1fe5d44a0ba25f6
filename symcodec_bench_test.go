package symcodec

import (
	"math/rand"
	"testing"
)

func benchSymbols(n int, spread float64) []uint32 {
	rng := rand.New(rand.NewSource(99))
	symbols := make([]uint32, n)
	for i := range symbols {
		symbols[i] = uint32(rng.ExpFloat64() * spread) //nolint:gosec
	}

	return symbols
}

func BenchmarkEncodeSymbols(b *testing.B) {
	for _, tc := range []struct {
		name   string
		spread float64
	}{
		{"Skewed", 4},
		{"Wide", 5000},
	} {
		symbols := benchSymbols(100_000, tc.spread)
		b.Run(tc.name, func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(symbols) * 4))
			for b.Loop() {
				if _, err := EncodeSymbols(symbols, len(symbols), 3); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkDecodeSymbolsInto(b *testing.B) {
	symbols := benchSymbols(100_000, 4)
	data, err := EncodeSymbols(symbols, len(symbols), 3)
	if err != nil {
		b.Fatal(err)
	}
	dst := make([]uint32, len(symbols))

	b.ReportAllocs()
	b.SetBytes(int64(len(symbols) * 4))
	for b.Loop() {
		if err := DecodeSymbolsInto(dst, data, 3); err != nil {
			b.Fatal(err)
		}
	}
}
