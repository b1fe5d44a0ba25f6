// Package symcodec losslessly compresses sequences of non-negative integers
// into compact, self-describing bit-packed buffers.
//
// A sequence holds numValues symbols, logically split into numComponents
// interleaved components (symbol i belongs to component i mod numComponents),
// for example the x/y/z channels of a vector stream. Components only matter for
// the optional per-component scheme; symbols are always coded in encounter order.
//
// # Schemes
//
// Every encode picks a scheme from the symbol statistics:
//
//   - Raw: fixed-width bit-packing using the minimum width of the largest symbol
//   - Huffman: a canonical prefix code over the whole sequence
//   - HuffmanComponents: one canonical prefix code per component (opt-in)
//
// The choice compares estimated sizes and favors Raw on ties. It is recorded in
// the first byte of the buffer, so decoding never re-derives it.
//
// # Buffer Format
//
//	tag byte     high nibble: format version, low nibble: scheme
//	tables       Huffman: one code table, HuffmanComponents: numComponents tables
//	payload      bit-packed symbols, zero-padded to a byte boundary
//
// # Basic Usage
//
//	data, err := symcodec.EncodeSymbols(values, len(values), 3)
//	if err != nil {
//	    return err
//	}
//
//	decoded, err := symcodec.DecodeSymbols(data, len(values), 3)
//
// Encoding and decoding hold no state between calls and are safe for
// concurrent use on independent inputs.
package symcodec

import (
	"fmt"

	"github.com/arloliu/symcodec/bitio"
	"github.com/arloliu/symcodec/encoding"
	"github.com/arloliu/symcodec/entropy"
	"github.com/arloliu/symcodec/errs"
	"github.com/arloliu/symcodec/format"
	"github.com/arloliu/symcodec/scheme"
	"github.com/arloliu/symcodec/stats"
	"github.com/sirupsen/logrus"
)

// tagBits is the size of the scheme tag.
const tagBits = 8

// Codec encodes and decodes symbol sequences with a fixed configuration.
//
// A Codec is immutable and safe for concurrent use.
type Codec struct {
	cfg *Config
}

// NewCodec creates a codec with the given options.
//
// Available options:
//   - WithLogger(logger)
//   - WithComponentContexts(true|false)
//   - WithScheme(format.SchemeRaw|SchemeHuffman|SchemeHuffmanComponents)
func NewCodec(opts ...Option) (*Codec, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Codec{cfg: cfg}, nil
}

// EncodeSymbols compresses symbols with a codec built from opts.
//
// See Codec.Encode.
func EncodeSymbols(symbols []uint32, numValues, numComponents int, opts ...Option) ([]byte, error) {
	c, err := NewCodec(opts...)
	if err != nil {
		return nil, err
	}

	return c.Encode(symbols, numValues, numComponents)
}

// DecodeSymbols decompresses numValues symbols with a codec built from opts.
//
// See Codec.Decode.
func DecodeSymbols(data []byte, numValues, numComponents int, opts ...Option) ([]uint32, error) {
	c, err := NewCodec(opts...)
	if err != nil {
		return nil, err
	}

	return c.Decode(data, numValues, numComponents)
}

// DecodeSymbolsInto decompresses len(dst) symbols into dst with a codec built from opts.
//
// See Codec.DecodeInto.
func DecodeSymbolsInto(dst []uint32, data []byte, numComponents int, opts ...Option) error {
	c, err := NewCodec(opts...)
	if err != nil {
		return err
	}

	return c.DecodeInto(dst, data, numComponents)
}

func validate(numValues, numComponents int) error {
	if numComponents < 1 {
		return fmt.Errorf("%w: numComponents must be at least 1, got %d", errs.ErrInvalidInput, numComponents)
	}
	if numValues < 0 {
		return fmt.Errorf("%w: negative numValues %d", errs.ErrInvalidInput, numValues)
	}

	return nil
}

// Analyze computes the statistics of symbols and returns the scheme Encode would choose.
func (c *Codec) Analyze(symbols []uint32, numComponents int) (scheme.Decision, error) {
	if err := validate(len(symbols), numComponents); err != nil {
		return scheme.Decision{}, err
	}

	st := stats.Compute(symbols)
	comps := c.componentStats(symbols, numComponents)

	return c.decide(st, comps)
}

func (c *Codec) componentStats(symbols []uint32, numComponents int) []stats.Stats {
	useComponents := c.cfg.componentContexts && numComponents > 1
	if c.cfg.scheme == format.SchemeHuffmanComponents {
		useComponents = true
	}
	if !useComponents {
		return nil
	}

	return stats.ComputeComponents(symbols, numComponents)
}

func (c *Codec) decide(st stats.Stats, comps []stats.Stats) (scheme.Decision, error) {
	d := scheme.Select(st, comps)
	if c.cfg.scheme == 0 {
		return d, nil
	}

	switch c.cfg.scheme {
	case format.SchemeHuffman:
		if !scheme.Eligible(st) {
			return d, fmt.Errorf("%w: %d distinct symbols exceed the code table limit", errs.ErrInvalidInput, st.Distinct())
		}
	case format.SchemeHuffmanComponents:
		for i, cs := range comps {
			if !scheme.Eligible(cs) {
				return d, fmt.Errorf("%w: component %d has %d distinct symbols", errs.ErrInvalidInput, i, cs.Distinct())
			}
		}
	}
	d.Scheme = c.cfg.scheme

	return d, nil
}

// Encode compresses symbols into a new buffer.
//
// numValues must equal len(symbols) and numComponents must be at least 1;
// otherwise errs.ErrInvalidInput is returned. The same input always produces a
// byte-identical buffer.
func (c *Codec) Encode(symbols []uint32, numValues, numComponents int) ([]byte, error) {
	if err := validate(numValues, numComponents); err != nil {
		return nil, err
	}
	if len(symbols) != numValues {
		return nil, fmt.Errorf("%w: got %d symbols, expected %d", errs.ErrInvalidInput, len(symbols), numValues)
	}

	st := stats.Compute(symbols)
	comps := c.componentStats(symbols, numComponents)
	d, err := c.decide(st, comps)
	if err != nil {
		return nil, err
	}

	c.cfg.logger.WithFields(logrus.Fields{
		"scheme":         d.Scheme.String(),
		"num_values":     numValues,
		"num_components": numComponents,
		"distinct":       st.Distinct(),
		"width":          st.Width,
		"raw_bits":       d.RawBits,
		"entropy_bits":   d.EntropyBits,
		"component_bits": d.ComponentBits,
	}).Debug("encoding symbols")

	w := bitio.NewWriter(capacityHint(d))
	defer w.Release()

	if err := w.PutBits(uint32(d.Scheme.Tag()), tagBits); err != nil {
		return nil, err
	}

	switch d.Scheme {
	case format.SchemeRaw:
		err = encodeRaw(w, st, symbols)
	case format.SchemeHuffman:
		err = encodeHuffman(w, st, symbols)
	case format.SchemeHuffmanComponents:
		err = encodeComponents(w, comps, symbols)
	default:
		err = fmt.Errorf("%w: %s", errs.ErrUnknownScheme, d.Scheme)
	}
	if err != nil {
		return nil, err
	}

	n := w.EndEncoding()
	c.cfg.logger.WithField("bytes", n).Debug("encoded symbols")

	return w.Bytes(), nil
}

func capacityHint(d scheme.Decision) int {
	best := d.RawBits
	if d.EntropyBits < best {
		best = d.EntropyBits
	}
	if d.ComponentBits < best {
		best = d.ComponentBits
	}

	return int(best/8) + 16
}

func encodeRaw(w *bitio.Writer, st stats.Stats, symbols []uint32) error {
	enc, err := encoding.NewRawEncoder(st.Width)
	if err != nil {
		return err
	}

	return enc.Encode(w, symbols)
}

func encodeHuffman(w *bitio.Writer, st stats.Stats, symbols []uint32) error {
	table, err := entropy.NewTable(st.Freqs)
	if err != nil {
		return err
	}
	if err := table.WriteTo(w); err != nil {
		return err
	}

	return entropy.NewEncoder(table).Encode(w, symbols)
}

func encodeComponents(w *bitio.Writer, comps []stats.Stats, symbols []uint32) error {
	encoders := make([]*entropy.Encoder, len(comps))
	for i, cs := range comps {
		table, err := entropy.NewTable(cs.Freqs)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		if err := table.WriteTo(w); err != nil {
			return err
		}
		encoders[i] = entropy.NewEncoder(table)
	}

	k := len(encoders)
	for i, s := range symbols {
		if err := encoders[i%k].EncodeSymbol(w, s); err != nil {
			return err
		}
	}

	return nil
}

// Decode decompresses exactly numValues symbols from data.
//
// Returns errs.ErrInvalidInput for invalid parameters, errs.ErrUnknownScheme for
// an unsupported tag, errs.ErrCorruptTable for an inconsistent code table and
// errs.ErrTruncatedStream if data ends before numValues symbols are recovered.
// On failure no symbols are returned.
func (c *Codec) Decode(data []byte, numValues, numComponents int) ([]uint32, error) {
	if err := validate(numValues, numComponents); err != nil {
		return nil, err
	}

	dst := make([]uint32, numValues)
	if err := c.DecodeInto(dst, data, numComponents); err != nil {
		return nil, err
	}

	return dst, nil
}

// DecodeInto decompresses len(dst) symbols from data into dst.
//
// On failure the content of dst is unspecified and must be discarded.
func (c *Codec) DecodeInto(dst []uint32, data []byte, numComponents int) error {
	if err := validate(len(dst), numComponents); err != nil {
		return err
	}

	r := bitio.NewReader(data)
	s, err := readTag(r)
	if err != nil {
		return err
	}

	c.cfg.logger.WithFields(logrus.Fields{
		"scheme":         s.String(),
		"num_values":     len(dst),
		"num_components": numComponents,
		"bytes":          len(data),
	}).Debug("decoding symbols")

	switch s {
	case format.SchemeRaw:
		return encoding.NewRawDecoder().Decode(r, dst)
	case format.SchemeHuffman:
		return decodeHuffman(r, dst)
	default:
		return decodeComponents(r, dst, numComponents)
	}
}

// SymbolAt returns the symbol at index without materializing the whole sequence
// when the buffer uses the raw scheme; other schemes decode sequentially.
func (c *Codec) SymbolAt(data []byte, index, numValues, numComponents int) (uint32, error) {
	if err := validate(numValues, numComponents); err != nil {
		return 0, err
	}
	if index < 0 || index >= numValues {
		return 0, fmt.Errorf("%w: index %d out of range [0, %d)", errs.ErrInvalidInput, index, numValues)
	}

	r := bitio.NewReader(data)
	s, err := readTag(r)
	if err != nil {
		return 0, err
	}

	if s == format.SchemeRaw {
		v, ok := encoding.NewRawDecoder().At(data[tagBits/8:], index, numValues)
		if !ok {
			return 0, fmt.Errorf("%w: raw payload too short for index %d", errs.ErrTruncatedStream, index)
		}

		return v, nil
	}

	values, err := c.Decode(data, numValues, numComponents)
	if err != nil {
		return 0, err
	}

	return values[index], nil
}

func readTag(r *bitio.Reader) (format.SchemeType, error) {
	tag, err := r.GetBits(tagBits)
	if err != nil {
		return 0, fmt.Errorf("%w: missing scheme tag: %w", errs.ErrTruncatedStream, err)
	}

	version, s := format.ParseTag(byte(tag))
	if version != format.Version || !s.IsValid() {
		return 0, fmt.Errorf("%w: tag 0x%02x", errs.ErrUnknownScheme, tag)
	}

	return s, nil
}

func decodeHuffman(r *bitio.Reader, dst []uint32) error {
	table, err := entropy.ReadTable(r)
	if err != nil {
		return err
	}

	return entropy.NewDecoder(table).Decode(r, dst)
}

func decodeComponents(r *bitio.Reader, dst []uint32, numComponents int) error {
	decoders := make([]entropy.Decoder, numComponents)
	for i := range decoders {
		table, err := entropy.ReadTable(r)
		if err != nil {
			return fmt.Errorf("component %d: %w", i, err)
		}
		if table.Len() == 0 && i < len(dst) {
			return fmt.Errorf("%w: component %d has an empty table", errs.ErrCorruptTable, i)
		}
		decoders[i] = entropy.NewDecoder(table)
	}

	for i := range dst {
		v, err := decoders[i%numComponents].DecodeSymbol(r)
		if err != nil {
			return fmt.Errorf("symbol %d: %w", i, err)
		}
		dst[i] = v
	}

	return nil
}
