package symcodec

import (
	"fmt"
	"math/rand"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/format"
)

func roundTrip(t *testing.T, symbols []uint32, numComponents int, opts ...Option) []byte {
	t.Helper()

	data, err := EncodeSymbols(symbols, len(symbols), numComponents, opts...)
	require.NoError(t, err)

	decoded, err := DecodeSymbols(data, len(symbols), numComponents, opts...)
	require.NoError(t, err)
	require.Len(t, decoded, len(symbols))
	for i := range symbols {
		require.Equal(t, symbols[i], decoded[i], "symbol %d", i)
	}

	return data
}

func TestEncodeSymbols_RawLayout(t *testing.T) {
	symbols := []uint32{1, 1, 1, 1, 2, 3, 2, 1, 1}

	data := roundTrip(t, symbols, 3)

	// tag, then width-1 = 1 in 5 bits and nine 2-bit fields
	require.Equal(t, []byte{0x11, 0x0A, 0xAD, 0xCA}, data)
}

func TestEncodeSymbols_SingleDistinctSymbol(t *testing.T) {
	data := roundTrip(t, []uint32{5, 5, 5, 5}, 1)

	// tag 0x12, table with one entry (symbol 5, length 0), no payload bits
	require.Equal(t, []byte{0x12, 0x06, 0x2A, 0x00}, data)

	// the size does not depend on the number of repetitions
	long := make([]uint32, 10000)
	for i := range long {
		long[i] = 5
	}
	require.Len(t, roundTrip(t, long, 1), len(data))
}

func TestEncodeSymbols_Empty(t *testing.T) {
	data := roundTrip(t, []uint32{}, 1)
	require.Equal(t, format.SchemeRaw.Tag(), data[0])

	decoded, err := DecodeSymbols(data, 0, 4)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestEncodeSymbols_SingleValue(t *testing.T) {
	for _, v := range []uint32{0, 1, 7, 1 << 31, 0xFFFFFFFF} {
		roundTrip(t, []uint32{v}, 1)
	}
}

func TestEncodeSymbols_FullRange(t *testing.T) {
	symbols := []uint32{0, 0xFFFFFFFF, 12345, 0xFFFFFFFF, 1 << 31, 0}
	roundTrip(t, symbols, 2)
	roundTrip(t, symbols, 2, WithScheme(format.SchemeHuffman))
	roundTrip(t, symbols, 2, WithScheme(format.SchemeHuffmanComponents))
}

func TestEncodeSymbols_SkewedPrefersHuffman(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	symbols := make([]uint32, 4096)
	for i := range symbols {
		if rng.Intn(10) == 0 {
			symbols[i] = uint32(rng.Intn(200)) //nolint:gosec
		} else {
			symbols[i] = 3
		}
	}

	c, err := NewCodec()
	require.NoError(t, err)

	d, err := c.Analyze(symbols, 1)
	require.NoError(t, err)
	require.Equal(t, format.SchemeHuffman, d.Scheme)

	data := roundTrip(t, symbols, 1)
	require.Equal(t, format.SchemeHuffman.Tag(), data[0])
	require.Less(t, float64(len(data)*8), d.RawBits)
}

func TestEncodeSymbols_UniformPrefersRaw(t *testing.T) {
	symbols := make([]uint32, 1024)
	for i := range symbols {
		symbols[i] = uint32(i % 256) //nolint:gosec
	}

	data := roundTrip(t, symbols, 1)
	require.Equal(t, format.SchemeRaw.Tag(), data[0])
	require.Len(t, data, 1+(5+1024*8+7)/8)
}

func TestEncodeSymbols_ComponentContexts(t *testing.T) {
	symbols := make([]uint32, 300)
	for i := range symbols {
		switch i % 3 {
		case 0:
			symbols[i] = 0
		case 1:
			symbols[i] = 1000
		default:
			symbols[i] = 70000
		}
	}

	data := roundTrip(t, symbols, 3)
	require.Equal(t, format.SchemeHuffman.Tag(), data[0])

	withContexts := roundTrip(t, symbols, 3, WithComponentContexts(true))
	require.Equal(t, format.SchemeHuffmanComponents.Tag(), withContexts[0])
	require.Less(t, len(withContexts), len(data))

	// a single component never uses per-component tables
	single := roundTrip(t, symbols, 1, WithComponentContexts(true))
	require.Equal(t, format.SchemeHuffman.Tag(), single[0])
}

func TestEncodeSymbols_FewerValuesThanComponents(t *testing.T) {
	symbols := []uint32{4, 9}
	data := roundTrip(t, symbols, 3, WithScheme(format.SchemeHuffmanComponents))
	require.Equal(t, format.SchemeHuffmanComponents.Tag(), data[0])
}

func TestEncodeSymbols_ForcedScheme(t *testing.T) {
	symbols := []uint32{1, 1, 1, 1, 2, 3, 2, 1, 1}

	for _, s := range []format.SchemeType{format.SchemeRaw, format.SchemeHuffman, format.SchemeHuffmanComponents} {
		t.Run(s.String(), func(t *testing.T) {
			data := roundTrip(t, symbols, 3, WithScheme(s))
			require.Equal(t, s.Tag(), data[0])
		})
	}

	_, err := NewCodec(WithScheme(format.SchemeType(0x9)))
	require.ErrorIs(t, err, errs.ErrUnknownScheme)
}

func TestEncodeSymbols_Deterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	symbols := make([]uint32, 2000)
	for i := range symbols {
		symbols[i] = uint32(rng.ExpFloat64() * 20) //nolint:gosec
	}

	first, err := EncodeSymbols(symbols, len(symbols), 4, WithComponentContexts(true))
	require.NoError(t, err)
	for range 5 {
		again, err := EncodeSymbols(symbols, len(symbols), 4, WithComponentContexts(true))
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestEncodeSymbols_RandomRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for iter := range 50 {
		n := rng.Intn(500)
		k := rng.Intn(4) + 1
		maxVal := uint32(1) << uint(rng.Intn(32)) //nolint:gosec
		symbols := make([]uint32, n)
		for i := range symbols {
			symbols[i] = rng.Uint32() % maxVal
		}

		roundTrip(t, symbols, k, WithComponentContexts(iter%2 == 0))
	}
}

func TestEncodeSymbols_InvalidInput(t *testing.T) {
	_, err := EncodeSymbols([]uint32{1, 2}, 2, 0)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = EncodeSymbols([]uint32{1, 2}, 3, 1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = EncodeSymbols(nil, -1, 1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = DecodeSymbols([]byte{0x11}, 1, 0)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = DecodeSymbols([]byte{0x11}, -1, 1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestDecodeSymbols_BadTag(t *testing.T) {
	_, err := DecodeSymbols(nil, 1, 1)
	require.ErrorIs(t, err, errs.ErrTruncatedStream)

	_, err = DecodeSymbols([]byte{0x15, 0x00}, 1, 1)
	require.ErrorIs(t, err, errs.ErrUnknownScheme)

	_, err = DecodeSymbols([]byte{0x21, 0x00}, 1, 1)
	require.ErrorIs(t, err, errs.ErrUnknownScheme)
}

func TestDecodeSymbols_EmptyTable(t *testing.T) {
	// Huffman tag, count width 0, symbol width field 0
	data := []byte{0x12, 0x00, 0x00}

	_, err := DecodeSymbols(data, 1, 1)
	require.ErrorIs(t, err, errs.ErrCorruptTable)

	decoded, err := DecodeSymbols(data, 0, 1)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestDecodeSymbols_Truncated(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	symbols := make([]uint32, 500)
	for i := range symbols {
		symbols[i] = uint32(rng.ExpFloat64() * 5) //nolint:gosec
	}

	for _, s := range []format.SchemeType{format.SchemeRaw, format.SchemeHuffman, format.SchemeHuffmanComponents} {
		t.Run(s.String(), func(t *testing.T) {
			data, err := EncodeSymbols(symbols, len(symbols), 2, WithScheme(s))
			require.NoError(t, err)

			_, err = DecodeSymbols(data[:len(data)-1], len(symbols), 2)
			require.ErrorIs(t, err, errs.ErrTruncatedStream)

			_, err = DecodeSymbols(data[:1], len(symbols), 2)
			require.ErrorIs(t, err, errs.ErrTruncatedStream)

			// asking for more values than were encoded runs out of bits
			_, err = DecodeSymbols(data, len(symbols)+100, 2)
			require.ErrorIs(t, err, errs.ErrTruncatedStream)
		})
	}
}

func TestDecodeSymbolsInto(t *testing.T) {
	symbols := []uint32{9, 8, 7, 9, 9, 9, 1}
	data, err := EncodeSymbols(symbols, len(symbols), 1)
	require.NoError(t, err)

	dst := make([]uint32, len(symbols))
	require.NoError(t, DecodeSymbolsInto(dst, data, 1))
	require.Equal(t, symbols, dst)
}

func TestCodec_SymbolAt(t *testing.T) {
	c, err := NewCodec()
	require.NoError(t, err)

	symbols := []uint32{1, 1, 1, 1, 2, 3, 2, 1, 1}
	raw, err := c.Encode(symbols, len(symbols), 3)
	require.NoError(t, err)

	huff, err := NewCodec(WithScheme(format.SchemeHuffman))
	require.NoError(t, err)
	coded, err := huff.Encode(symbols, len(symbols), 3)
	require.NoError(t, err)

	for i, want := range symbols {
		v, err := c.SymbolAt(raw, i, len(symbols), 3)
		require.NoError(t, err)
		require.Equal(t, want, v)

		v, err = c.SymbolAt(coded, i, len(symbols), 3)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}

	_, err = c.SymbolAt(raw, len(symbols), len(symbols), 3)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = c.SymbolAt(raw[:2], 8, len(symbols), 3)
	require.ErrorIs(t, err, errs.ErrTruncatedStream)
}

func TestCodec_LogsDecision(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := EncodeSymbols([]uint32{5, 5, 5, 5}, 4, 1, WithLogger(logger))
	require.NoError(t, err)

	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	require.Equal(t, "encoding symbols", entries[0].Message)
	require.Equal(t, "Huffman", entries[0].Data["scheme"])
	require.Equal(t, 4, entries[0].Data["num_values"])

	// nil restores the discarding logger
	_, err = EncodeSymbols([]uint32{1}, 1, 1, WithLogger(nil))
	require.NoError(t, err)
}

func TestCodec_Concurrent(t *testing.T) {
	c, err := NewCodec(WithComponentContexts(true))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errCh := make(chan error, 16)
	for g := range 16 {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			symbols := make([]uint32, 1000)
			for i := range symbols {
				symbols[i] = uint32(rng.Intn(64)) //nolint:gosec
			}
			for range 20 {
				data, err := c.Encode(symbols, len(symbols), 2)
				if err != nil {
					errCh <- err
					return
				}
				decoded, err := c.Decode(data, len(symbols), 2)
				if err != nil {
					errCh <- err
					return
				}
				for i := range symbols {
					if decoded[i] != symbols[i] {
						errCh <- fmt.Errorf("goroutine %d: symbol %d mismatch", seed, i)
						return
					}
				}
			}
		}(int64(g))
	}
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}
}
