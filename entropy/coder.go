package entropy

import (
	"fmt"

	"github.com/arloliu/symcodec/bitio"
	"github.com/arloliu/symcodec/errs"
)

// Encoder writes symbols as canonical codes from a Table.
//
// An Encoder holds no mutable state after construction and can be shared by
// concurrent callers writing to different bit writers.
type Encoder struct {
	table *Table
	dense []int32          // symbol -> entry index + 1, when the symbol range is small
	index map[uint32]int32 // symbol -> entry index, otherwise
}

// NewEncoder creates an encoder for table.
func NewEncoder(table *Table) *Encoder {
	e := &Encoder{table: table}

	n := table.Len()
	if n == 0 {
		return e
	}

	if maxSym := table.symbols[n-1]; maxSym < denseLookupLimit {
		e.dense = make([]int32, maxSym+1)
		for i, s := range table.symbols {
			e.dense[s] = int32(i + 1) //nolint:gosec // bounded by MaxAlphabetSize
		}

		return e
	}

	e.index = make(map[uint32]int32, n)
	for i, s := range table.symbols {
		e.index[s] = int32(i) //nolint:gosec // bounded by MaxAlphabetSize
	}

	return e
}

func (e *Encoder) lookup(symbol uint32) (int, bool) {
	if e.dense != nil {
		if symbol >= uint32(len(e.dense)) { //nolint:gosec // len <= denseLookupLimit
			return 0, false
		}
		i := e.dense[symbol]

		return int(i) - 1, i != 0
	}

	i, ok := e.index[symbol]

	return int(i), ok
}

// EncodeSymbol writes the code of a single symbol.
//
// Returns errs.ErrInvalidInput if symbol is not in the table.
func (e *Encoder) EncodeSymbol(w *bitio.Writer, symbol uint32) error {
	i, ok := e.lookup(symbol)
	if !ok {
		return fmt.Errorf("%w: symbol %d is not in the code table", errs.ErrInvalidInput, symbol)
	}

	code, length := e.table.Code(i)

	return w.PutBits(code, length)
}

// Encode writes the codes of all symbols in order.
func (e *Encoder) Encode(w *bitio.Writer, symbols []uint32) error {
	for _, s := range symbols {
		if err := e.EncodeSymbol(w, s); err != nil {
			return err
		}
	}

	return nil
}

// Decoder reads canonical codes from a bit reader using a Table.
type Decoder struct {
	table *Table
}

// NewDecoder creates a decoder for table.
func NewDecoder(table *Table) Decoder {
	return Decoder{table: table}
}

// DecodeSymbol reads a single symbol.
//
// Codes are matched one bit at a time against the per-length code ranges of the
// canonical code. Returns errs.ErrTruncatedStream if the bits run out and
// errs.ErrCorruptTable if the table is empty or the bits form no valid code.
func (d Decoder) DecodeSymbol(r *bitio.Reader) (uint32, error) {
	t := d.table
	switch len(t.symbols) {
	case 0:
		return 0, fmt.Errorf("%w: empty code table", errs.ErrCorruptTable)
	case 1:
		return t.symbols[0], nil
	}

	code := 0  // bits read so far
	first := 0 // first code of the current length
	index := 0 // index of the first code of the current length in sorted
	for l := 1; l <= t.maxLen; l++ {
		bit, err := r.GetBit()
		if err != nil {
			return 0, truncated(err)
		}
		code |= int(bit)

		count := t.lenCount[l]
		if code-first < count {
			return t.sorted[index+code-first], nil
		}

		index += count
		first = (first + count) << 1
		code <<= 1
	}

	return 0, fmt.Errorf("%w: bit pattern at position %d matches no code", errs.ErrCorruptTable, r.BitPosition())
}

// Decode fills dst with decoded symbols.
func (d Decoder) Decode(r *bitio.Reader, dst []uint32) error {
	if len(dst) > 0 && len(d.table.symbols) == 0 {
		return fmt.Errorf("%w: empty code table for %d values", errs.ErrCorruptTable, len(dst))
	}

	for i := range dst {
		v, err := d.DecodeSymbol(r)
		if err != nil {
			return fmt.Errorf("symbol %d: %w", i, err)
		}
		dst[i] = v
	}

	return nil
}
