// Package entropy implements the table-driven entropy coder used by symcodec:
// a length-limited canonical prefix (Huffman) code.
//
// # Code Construction
//
// Code lengths are derived from a frequency table with a min-heap Huffman
// construction. Ties are broken by node creation order, and the input table is
// sorted by symbol, so the same table always yields the same lengths. Lengths
// longer than MaxCodeLength are clamped and the Kraft inequality is restored by
// moving codes to longer lengths, after which lengths are handed out again in
// descending frequency order.
//
// Codes are assigned canonically: shorter codes first, and within one length in
// ascending symbol order. Only the code lengths are serialized, so a decoder can
// rebuild the exact same code from the table alone.
//
// # Table Format
//
// All fields are written through a bitio.Writer, most significant bit first:
//
//	count width   6 bits          bit length of the entry count (0-32)
//	entry count   count width     number of distinct symbols
//	symbol width  5 bits          symbol field width minus one (1-32)
//	entries       per entry:      symbol (symbol width bits), code length (5 bits)
//
// Entries are strictly ascending by symbol. A table with a single entry uses code
// length 0 and the payload carries no bits at all.
package entropy
