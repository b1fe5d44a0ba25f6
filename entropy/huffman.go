package entropy

import (
	"container/heap"
	"fmt"
	"slices"

	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/stats"
)

const (
	// MaxCodeLength is the longest code the encoder produces.
	MaxCodeLength = 24

	// MaxAlphabetSize is the largest number of distinct symbols a table can hold.
	MaxAlphabetSize = 1 << MaxCodeLength

	// LengthFieldBits is the width of a serialized code length.
	LengthFieldBits = 5
)

// nodeHeap orders Huffman nodes by weight, then by creation order.
type nodeHeap struct {
	ids     []int
	weights []int
}

func (h *nodeHeap) Len() int { return len(h.ids) }

func (h *nodeHeap) Less(i, j int) bool {
	wi, wj := h.weights[h.ids[i]], h.weights[h.ids[j]]
	if wi != wj {
		return wi < wj
	}

	return h.ids[i] < h.ids[j]
}

func (h *nodeHeap) Swap(i, j int) { h.ids[i], h.ids[j] = h.ids[j], h.ids[i] }

func (h *nodeHeap) Push(x any) { h.ids = append(h.ids, x.(int)) } //nolint:forcetypeassert

func (h *nodeHeap) Pop() any {
	old := h.ids
	n := len(old)
	id := old[n-1]
	h.ids = old[:n-1]

	return id
}

// BuildCodeLengths computes a code length for every entry of freqs.
//
// freqs must be sorted by symbol with positive counts. A single entry gets
// length 0. The returned lengths never exceed maxLen.
//
// Returns errs.ErrInvalidInput if the alphabet cannot fit into maxLen-bit codes,
// or if maxLen is outside 1..MaxCodeLength.
func BuildCodeLengths(freqs []stats.SymbolFreq, maxLen int) ([]uint8, error) {
	if maxLen < 1 || maxLen > MaxCodeLength {
		return nil, fmt.Errorf("%w: code length limit %d outside 1..%d", errs.ErrInvalidInput, maxLen, MaxCodeLength)
	}

	n := len(freqs)
	switch {
	case n == 0:
		return []uint8{}, nil
	case n == 1:
		return []uint8{0}, nil
	case n > 1<<maxLen:
		return nil, fmt.Errorf("%w: %d distinct symbols do not fit in %d-bit codes", errs.ErrInvalidInput, n, maxLen)
	}

	// leaves are nodes 0..n-1, internal nodes follow in creation order
	weights := make([]int, n, 2*n-1)
	parent := make([]int, 2*n-1)
	h := &nodeHeap{ids: make([]int, n), weights: weights}
	for i, f := range freqs {
		if f.Count <= 0 {
			return nil, fmt.Errorf("%w: symbol %d has count %d", errs.ErrInvalidInput, f.Symbol, f.Count)
		}
		weights[i] = f.Count
		h.ids[i] = i
	}
	heap.Init(h)

	for h.Len() > 1 {
		a, _ := heap.Pop(h).(int)
		b, _ := heap.Pop(h).(int)

		id := len(h.weights)
		h.weights = append(h.weights, h.weights[a]+h.weights[b])
		parent[a] = id
		parent[b] = id
		heap.Push(h, id)
	}

	// parents always have larger ids than their children
	root := len(h.weights) - 1
	depth := make([]int, len(h.weights))
	for id := root - 1; id >= 0; id-- {
		depth[id] = depth[parent[id]] + 1
	}

	lengths := make([]uint8, n)
	longest := 0
	for i := range lengths {
		lengths[i] = uint8(min(depth[i], 255)) //nolint:gosec // clamped above
		longest = max(longest, depth[i])
	}

	if longest > maxLen {
		limitCodeLengths(freqs, lengths, maxLen)
	}

	return lengths, nil
}

// limitCodeLengths rewrites lengths so that none exceeds maxLen while the code stays complete.
func limitCodeLengths(freqs []stats.SymbolFreq, lengths []uint8, maxLen int) {
	numCodes := make([]int, 256)
	for _, l := range lengths {
		numCodes[min(int(l), maxLen)]++
	}

	total := 0
	for l := 1; l <= maxLen; l++ {
		total += numCodes[l] << (maxLen - l)
	}

	for total > 1<<maxLen {
		numCodes[maxLen]--
		for l := maxLen - 1; l > 0; l-- {
			if numCodes[l] > 0 {
				numCodes[l]--
				numCodes[l+1] += 2

				break
			}
		}
		total--
	}

	// most frequent symbols take the shortest codes
	order := make([]int, len(freqs))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return freqs[b].Count - freqs[a].Count
	})

	k := 0
	for l := 1; l <= maxLen; l++ {
		for range numCodes[l] {
			lengths[order[k]] = uint8(l) //nolint:gosec // l <= MaxCodeLength
			k++
		}
	}
}

// canonicalCodes assigns canonical codes to symbols in table order.
func canonicalCodes(lengths []uint8) []uint32 {
	var blCount [MaxCodeLength + 1]int
	for _, l := range lengths {
		if l > 0 {
			blCount[l]++
		}
	}

	var nextCode [MaxCodeLength + 2]uint32
	code := uint32(0)
	for l := 1; l <= MaxCodeLength; l++ {
		code = (code + uint32(blCount[l-1])) << 1 //nolint:gosec // bounded by alphabet size
		nextCode[l] = code
	}

	codes := make([]uint32, len(lengths))
	for i, l := range lengths {
		if l == 0 {
			continue
		}
		codes[i] = nextCode[l]
		nextCode[l]++
	}

	return codes
}
