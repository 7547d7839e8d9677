// Package numeric implements the sortable binary encoding the index uses
// for long values: the sign bit is flipped so that byte order equals
// numeric order, the payload is split into 7-bit groups, and a leading
// shift byte tags the precision level. A value is indexed at several
// levels at once ("trie terms") so range lookups can cover wide spans
// with coarse terms and the edges with fine ones.
package numeric

import (
	"fmt"
)

const (
	shiftStartLong = 0x20

	// MaxPrecisionStep makes Terms emit a single level per value.
	MaxPrecisionStep = 64
)

// EncodeTerm produces the prefix-coded form of v with the given number
// of low bits stripped. Terms of equal shift compare byte-wise in value
// order. shift must be in [0, 63].
func EncodeTerm(v int64, shift uint32) []byte {
	if shift > 63 {
		panic(fmt.Sprintf("illegal shift value %d", shift))
	}

	nBytes := (63-int(shift))/7 + 1
	buf := make([]byte, nBytes+1)
	buf[0] = byte(shiftStartLong + shift)

	sortable := uint64(v) ^ 0x8000000000000000
	sortable >>= shift
	for i := nBytes; i >= 1; i-- {
		buf[i] = byte(sortable & 0x7f)
		sortable >>= 7
	}
	return buf
}

// DecodeTerm reverses EncodeTerm, returning the value with its stripped
// low bits zeroed and the shift level the term was encoded at.
func DecodeTerm(term []byte) (int64, uint32, error) {
	if len(term) == 0 {
		return 0, 0, fmt.Errorf("empty numeric term")
	}

	shift := int(term[0]) - shiftStartLong
	if shift < 0 || shift > 63 {
		return 0, 0, fmt.Errorf("invalid shift byte 0x%x in numeric term", term[0])
	}
	if want := (63-shift)/7 + 2; len(term) != want {
		return 0, 0, fmt.Errorf("numeric term of %d bytes, want %d for shift %d", len(term), want, shift)
	}

	var sortable uint64
	for _, b := range term[1:] {
		if b > 0x7f {
			return 0, 0, fmt.Errorf("invalid byte 0x%x in numeric term", b)
		}
		sortable = sortable<<7 | uint64(b)
	}
	sortable <<= shift

	return int64(sortable ^ 0x8000000000000000), uint32(shift), nil
}

// Terms encodes v at every precision level implied by the step: shifts
// 0, step, 2*step, ... below 64. The step must be in [1, 64].
func Terms(v int64, step uint32) [][]byte {
	if step == 0 || step > MaxPrecisionStep {
		panic(fmt.Sprintf("illegal precision step %d", step))
	}

	terms := make([][]byte, 0, (64+step-1)/step)
	for shift := uint32(0); shift < 64; shift += step {
		terms = append(terms, EncodeTerm(v, shift))
	}
	return terms
}
