// Package scheme chooses the compression scheme for a symbol sequence by
// comparing estimated encoded sizes.
package scheme

import (
	"github.com/arloliu/symcodec/entropy"
	"github.com/arloliu/symcodec/format"
	"github.com/arloliu/symcodec/stats"
)

// Decision is the outcome of a scheme selection together with the estimates it was based on.
type Decision struct {
	Scheme format.SchemeType

	// RawBits is the fixed-width estimate: Count * Width.
	RawBits float64
	// EntropyBits is the whole-sequence prefix code estimate, +Inf when ineligible.
	EntropyBits float64
	// ComponentBits is the per-component prefix code estimate, +Inf when not considered.
	ComponentBits float64
}

// RawBits returns the payload size in bits of fixed-width packing.
func RawBits(st stats.Stats) float64 {
	return float64(st.Count) * float64(st.Width)
}

// EntropyBits returns the Shannon estimate of the payload plus one
// (symbol, code length) table pair per distinct symbol.
func EntropyBits(st stats.Stats) float64 {
	return st.EntropyBits + float64(st.Distinct()*(st.Width+entropy.LengthFieldBits))
}

// Eligible reports whether the alphabet fits into a length-limited prefix code.
func Eligible(st stats.Stats) bool {
	return st.Distinct() <= entropy.MaxAlphabetSize
}

// Select picks the scheme with the smallest estimate; ties go to the simpler scheme.
//
// components holds per-component statistics and may be nil, in which case the
// per-component scheme is not considered.
func Select(st stats.Stats, components []stats.Stats) Decision {
	d := Decision{
		Scheme:        format.SchemeRaw,
		RawBits:       RawBits(st),
		EntropyBits:   inf,
		ComponentBits: inf,
	}

	if Eligible(st) {
		d.EntropyBits = EntropyBits(st)
	}
	if len(components) > 0 {
		d.ComponentBits = componentBits(components)
	}

	best := d.RawBits
	if d.EntropyBits < best {
		d.Scheme = format.SchemeHuffman
		best = d.EntropyBits
	}
	if d.ComponentBits < best {
		d.Scheme = format.SchemeHuffmanComponents
	}

	return d
}

func componentBits(components []stats.Stats) float64 {
	total := 0.0
	for _, c := range components {
		if !Eligible(c) {
			return inf
		}
		total += EntropyBits(c)
	}

	return total
}
