// Package stats computes the symbol statistics used to pick and parameterize a
// compression scheme: value range, minimum fixed bit width, frequency table and
// a Shannon entropy estimate.
package stats

import (
	"math"
	"math/bits"
	"slices"

	"github.com/arloliu/symcodec/internal/pool"
)

// denseLimit is the largest maximum value counted with a dense array instead of a map.
const denseLimit = 1 << 16

// SymbolFreq is one frequency table entry.
type SymbolFreq struct {
	Symbol uint32
	Count  int
}

// Stats describes a symbol sequence.
type Stats struct {
	// Count is the number of symbols in the sequence.
	Count int
	// Max is the largest symbol value, 0 for an empty sequence.
	Max uint32
	// Width is the minimum fixed bit width able to hold every symbol, at least 1.
	Width int
	// Freqs lists every distinct symbol in ascending order with its count.
	// The counts sum to Count.
	Freqs []SymbolFreq
	// EntropyBits is the Shannon estimate sum(c * -log2(c/Count)) of the payload size in bits.
	EntropyBits float64
}

// Distinct returns the number of distinct symbols.
func (s Stats) Distinct() int {
	return len(s.Freqs)
}

// BitWidth returns ceil(log2(v+1)), treating the all-zero case as 1 bit.
func BitWidth(v uint32) int {
	w := bits.Len32(v)
	if w == 0 {
		return 1
	}

	return w
}

// Compute scans symbols and returns their statistics.
func Compute(symbols []uint32) Stats {
	st := Stats{Count: len(symbols), Width: 1}
	if len(symbols) == 0 {
		return st
	}

	for _, v := range symbols {
		if v > st.Max {
			st.Max = v
		}
	}
	st.Width = BitWidth(st.Max)

	if st.Max < denseLimit {
		st.Freqs = denseFreqs(symbols, st.Max)
	} else {
		st.Freqs = sparseFreqs(symbols)
	}
	st.EntropyBits = entropyBits(st.Freqs, st.Count)

	return st
}

// ComputeComponents returns one Stats per component, where symbol i belongs to
// component i mod numComponents. numComponents must be at least 1.
func ComputeComponents(symbols []uint32, numComponents int) []Stats {
	if numComponents <= 1 {
		return []Stats{Compute(symbols)}
	}

	perComponent := make([][]uint32, numComponents)
	for c := range perComponent {
		perComponent[c] = make([]uint32, 0, len(symbols)/numComponents+1)
	}
	for i, v := range symbols {
		c := i % numComponents
		perComponent[c] = append(perComponent[c], v)
	}

	result := make([]Stats, numComponents)
	for c, values := range perComponent {
		result[c] = Compute(values)
	}

	return result
}

func denseFreqs(symbols []uint32, maxVal uint32) []SymbolFreq {
	counts, cleanup := pool.GetCountSlice(int(maxVal) + 1)
	defer cleanup()

	distinct := 0
	for _, v := range symbols {
		if counts[v] == 0 {
			distinct++
		}
		counts[v]++
	}

	freqs := make([]SymbolFreq, 0, distinct)
	for v, c := range counts {
		if c > 0 {
			freqs = append(freqs, SymbolFreq{Symbol: uint32(v), Count: c}) //nolint:gosec // v <= maxVal
		}
	}

	return freqs
}

func sparseFreqs(symbols []uint32) []SymbolFreq {
	counts := make(map[uint32]int)
	for _, v := range symbols {
		counts[v]++
	}

	freqs := make([]SymbolFreq, 0, len(counts))
	for v, c := range counts {
		freqs = append(freqs, SymbolFreq{Symbol: v, Count: c})
	}
	slices.SortFunc(freqs, func(a, b SymbolFreq) int {
		switch {
		case a.Symbol < b.Symbol:
			return -1
		case a.Symbol > b.Symbol:
			return 1
		default:
			return 0
		}
	})

	return freqs
}

// entropyBits is 0 for a single distinct symbol, so no log of zero or division by zero occurs.
func entropyBits(freqs []SymbolFreq, total int) float64 {
	if total == 0 || len(freqs) <= 1 {
		return 0
	}

	n := float64(total)
	sum := 0.0
	for _, f := range freqs {
		c := float64(f.Count)
		sum -= c * math.Log2(c/n)
	}

	return sum
}
