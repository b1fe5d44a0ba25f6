package entropy

import (
	"math/rand"
	"testing"

	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/stats"
	"github.com/stretchr/testify/require"
)

func kraftSum(lengths []uint8, maxLen int) int {
	sum := 0
	for _, l := range lengths {
		sum += 1 << (maxLen - int(l))
	}

	return sum
}

func TestBuildCodeLengths_Small(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		lengths, err := BuildCodeLengths(nil, MaxCodeLength)
		require.NoError(t, err)
		require.Empty(t, lengths)
	})

	t.Run("single symbol", func(t *testing.T) {
		lengths, err := BuildCodeLengths([]stats.SymbolFreq{{Symbol: 5, Count: 4}}, MaxCodeLength)
		require.NoError(t, err)
		require.Equal(t, []uint8{0}, lengths)
	})

	t.Run("two symbols", func(t *testing.T) {
		lengths, err := BuildCodeLengths([]stats.SymbolFreq{{Symbol: 0, Count: 1}, {Symbol: 9, Count: 100}}, MaxCodeLength)
		require.NoError(t, err)
		require.Equal(t, []uint8{1, 1}, lengths)
	})

	t.Run("skewed", func(t *testing.T) {
		freqs := []stats.SymbolFreq{
			{Symbol: 1, Count: 6},
			{Symbol: 2, Count: 2},
			{Symbol: 3, Count: 1},
		}
		lengths, err := BuildCodeLengths(freqs, MaxCodeLength)
		require.NoError(t, err)
		require.Equal(t, []uint8{1, 2, 2}, lengths)
	})
}

func TestBuildCodeLengths_InvalidInput(t *testing.T) {
	freqs := []stats.SymbolFreq{{Symbol: 1, Count: 1}, {Symbol: 2, Count: 1}, {Symbol: 3, Count: 1}}

	_, err := BuildCodeLengths(freqs, 0)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = BuildCodeLengths(freqs, MaxCodeLength+1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	// three symbols cannot fit in 1-bit codes
	_, err = BuildCodeLengths(freqs, 1)
	require.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = BuildCodeLengths([]stats.SymbolFreq{{Symbol: 1, Count: 0}, {Symbol: 2, Count: 1}}, MaxCodeLength)
	require.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestBuildCodeLengths_CompleteCode(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := range 20 {
		n := 2 + rng.Intn(500)
		freqs := make([]stats.SymbolFreq, n)
		for i := range freqs {
			freqs[i] = stats.SymbolFreq{Symbol: uint32(i * 3), Count: 1 + rng.Intn(10000)}
		}

		lengths, err := BuildCodeLengths(freqs, MaxCodeLength)
		require.NoError(t, err, "trial %d", trial)
		require.Equal(t, 1<<MaxCodeLength, kraftSum(lengths, MaxCodeLength), "trial %d", trial)
	}
}

func TestBuildCodeLengths_LengthLimited(t *testing.T) {
	// Fibonacci weights produce a maximally deep Huffman tree
	n := 30
	freqs := make([]stats.SymbolFreq, n)
	a, b := 1, 1
	for i := range freqs {
		freqs[i] = stats.SymbolFreq{Symbol: uint32(i), Count: a}
		a, b = b, a+b
	}

	deep, err := BuildCodeLengths(freqs, MaxCodeLength)
	require.NoError(t, err)
	longest := 0
	for _, l := range deep {
		longest = max(longest, int(l))
	}
	require.Greater(t, longest, 8)

	const limit = 8
	lengths, err := BuildCodeLengths(freqs, limit)
	require.NoError(t, err)
	for _, l := range lengths {
		require.LessOrEqual(t, int(l), limit)
		require.GreaterOrEqual(t, int(l), 1)
	}
	require.Equal(t, 1<<limit, kraftSum(lengths, limit))

	// more frequent symbols never get longer codes
	for i := 1; i < n; i++ {
		require.LessOrEqual(t, lengths[i], lengths[i-1])
	}
}

func TestBuildCodeLengths_Deterministic(t *testing.T) {
	freqs := []stats.SymbolFreq{
		{Symbol: 1, Count: 3}, {Symbol: 2, Count: 3}, {Symbol: 3, Count: 3},
		{Symbol: 4, Count: 3}, {Symbol: 5, Count: 3},
	}

	first, err := BuildCodeLengths(freqs, MaxCodeLength)
	require.NoError(t, err)
	for range 10 {
		again, err := BuildCodeLengths(freqs, MaxCodeLength)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestCanonicalCodes(t *testing.T) {
	// the RFC 1951 section 3.2.2 example
	lengths := []uint8{3, 3, 3, 3, 3, 2, 4, 4}
	codes := canonicalCodes(lengths)

	require.Equal(t, []uint32{0b010, 0b011, 0b100, 0b101, 0b110, 0b00, 0b1110, 0b1111}, codes)
}
