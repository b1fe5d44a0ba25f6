package entropy

import (
	"fmt"
	"math/bits"

	"github.com/arloliu/symcodec/bitio"
	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/stats"
)

const (
	countWidthBits  = 6
	symbolWidthBits = 5

	// denseLookupLimit bounds the symbol range served by a dense encoder lookup.
	denseLookupLimit = 1 << 16
)

// Table is a canonical prefix code over a set of distinct symbols.
//
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	symbols []uint32 // ascending
	lengths []uint8
	codes   []uint32

	symbolWidth int
	maxLen      int

	// decoding: symbols ordered by (length, symbol) and the number of codes per length
	sorted   []uint32
	lenCount [MaxCodeLength + 1]int
}

// NewTable builds a code table from a frequency table sorted by symbol.
func NewTable(freqs []stats.SymbolFreq) (*Table, error) {
	lengths, err := BuildCodeLengths(freqs, MaxCodeLength)
	if err != nil {
		return nil, err
	}

	symbols := make([]uint32, len(freqs))
	for i, f := range freqs {
		symbols[i] = f.Symbol
	}

	return newTable(symbols, lengths)
}

// newTable validates symbols and lengths and derives the canonical code.
func newTable(symbols []uint32, lengths []uint8) (*Table, error) {
	t := &Table{
		symbols:     symbols,
		lengths:     lengths,
		symbolWidth: 1,
	}

	n := len(symbols)
	if n == 0 {
		return t, nil
	}

	for i := 1; i < n; i++ {
		if symbols[i] <= symbols[i-1] {
			return nil, fmt.Errorf("%w: symbol %d at entry %d is not ascending", errs.ErrCorruptTable, symbols[i], i)
		}
	}
	t.symbolWidth = stats.BitWidth(symbols[n-1])

	if n == 1 {
		if lengths[0] != 0 {
			return nil, fmt.Errorf("%w: single-entry table with code length %d", errs.ErrCorruptTable, lengths[0])
		}
		t.codes = []uint32{0}
		t.sorted = []uint32{symbols[0]}

		return t, nil
	}

	// Kraft sum scaled by 2^MaxCodeLength
	kraft := uint64(0)
	for i, l := range lengths {
		if l == 0 || int(l) > MaxCodeLength {
			return nil, fmt.Errorf("%w: code length %d for symbol %d outside 1..%d",
				errs.ErrCorruptTable, l, symbols[i], MaxCodeLength)
		}
		kraft += 1 << (MaxCodeLength - int(l))
		t.lenCount[l]++
		t.maxLen = max(t.maxLen, int(l))
	}
	if kraft > 1<<MaxCodeLength {
		return nil, fmt.Errorf("%w: over-subscribed code lengths", errs.ErrCorruptTable)
	}

	t.codes = canonicalCodes(lengths)

	t.sorted = make([]uint32, 0, n)
	for l := 1; l <= t.maxLen; l++ {
		if t.lenCount[l] == 0 {
			continue
		}
		for i, sl := range lengths {
			if int(sl) == l {
				t.sorted = append(t.sorted, symbols[i])
			}
		}
	}

	return t, nil
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	return len(t.symbols)
}

// Symbols returns the table symbols in ascending order. The slice must not be modified.
func (t *Table) Symbols() []uint32 {
	return t.symbols
}

// Lengths returns the code length of each entry. The slice must not be modified.
func (t *Table) Lengths() []uint8 {
	return t.lengths
}

// Code returns the code and code length of entry i.
func (t *Table) Code(i int) (code uint32, length int) {
	return t.codes[i], int(t.lengths[i])
}

// SerializedBits returns the exact number of bits WriteTo produces.
func (t *Table) SerializedBits() int {
	n := len(t.symbols)
	return countWidthBits + bits.Len(uint(n)) + symbolWidthBits + n*(t.symbolWidth+LengthFieldBits)
}

// PayloadBits returns the number of bits needed to encode a sequence with the given frequencies.
// freqs must list the table symbols in the same order.
func (t *Table) PayloadBits(freqs []stats.SymbolFreq) int {
	total := 0
	for i, f := range freqs {
		total += f.Count * int(t.lengths[i])
	}

	return total
}

// WriteTo serializes the table into w.
func (t *Table) WriteTo(w *bitio.Writer) error {
	n := len(t.symbols)
	countWidth := bits.Len(uint(n))
	if countWidth > bitio.MaxBits {
		return fmt.Errorf("%w: %d table entries", errs.ErrInvalidInput, n)
	}

	if err := w.PutBits(uint32(countWidth), countWidthBits); err != nil { //nolint:gosec // <= 32
		return err
	}
	if err := w.PutBits(uint32(n), countWidth); err != nil { //nolint:gosec // fits countWidth
		return err
	}
	if err := w.PutBits(uint32(t.symbolWidth-1), symbolWidthBits); err != nil { //nolint:gosec // 0..31
		return err
	}

	for i, s := range t.symbols {
		if err := w.PutBits(s, t.symbolWidth); err != nil {
			return err
		}
		if err := w.PutBits(uint32(t.lengths[i]), LengthFieldBits); err != nil {
			return err
		}
	}

	return nil
}

// ReadTable deserializes a table written by WriteTo.
//
// Returns errs.ErrTruncatedStream if the buffer ends inside the table and
// errs.ErrCorruptTable if the entries fail validation.
func ReadTable(r *bitio.Reader) (*Table, error) {
	countWidth, err := r.GetBits(countWidthBits)
	if err != nil {
		return nil, truncated(err)
	}
	if countWidth > bitio.MaxBits {
		return nil, fmt.Errorf("%w: entry count width %d", errs.ErrCorruptTable, countWidth)
	}

	count, err := r.GetBits(int(countWidth))
	if err != nil {
		return nil, truncated(err)
	}

	widthField, err := r.GetBits(symbolWidthBits)
	if err != nil {
		return nil, truncated(err)
	}
	symbolWidth := int(widthField) + 1

	if count > MaxAlphabetSize {
		return nil, fmt.Errorf("%w: %d entries exceeds the alphabet limit", errs.ErrCorruptTable, count)
	}
	n := int(count)
	if n*(symbolWidth+LengthFieldBits) > r.BitsRemaining() {
		return nil, fmt.Errorf("%w: table of %d entries exceeds the remaining %d bits",
			errs.ErrTruncatedStream, n, r.BitsRemaining())
	}

	symbols := make([]uint32, n)
	lengths := make([]uint8, n)
	for i := range n {
		if symbols[i], err = r.GetBits(symbolWidth); err != nil {
			return nil, truncated(err)
		}
		l, err := r.GetBits(LengthFieldBits)
		if err != nil {
			return nil, truncated(err)
		}
		lengths[i] = uint8(l) //nolint:gosec // 5-bit field
	}

	return newTable(symbols, lengths)
}

func truncated(err error) error {
	return fmt.Errorf("%w: %w", errs.ErrTruncatedStream, err)
}
