package contig

import (
	"github.com/grailbio/base/errors"
)

// ParseCigar expands an EncodedNode's internal cigar string - runs of
// decimal length followed by one of M/X/I/D, e.g. "12M1X3D" - into the Op
// sequence it denotes. It is the bridge between the per-node cigar the
// upstream encoder attaches to a read and the per-window Op slices the
// alignment distributor and window splitter operate on.
func ParseCigar(cigar string) ([]Op, error) {
	var ops []Op
	n := 0
	haveDigit := false
	for i := 0; i < len(cigar); i++ {
		c := cigar[i]
		switch {
		case c >= '0' && c <= '9':
			n = n*10 + int(c-'0')
			haveDigit = true
		case c == 'M' || c == 'X' || c == 'I' || c == 'D':
			if !haveDigit || n <= 0 {
				return nil, errors.E(errors.Invalid, "cigar: missing run length before", string(c), "in", cigar)
			}
			op := opFromByte(c)
			for k := 0; k < n; k++ {
				ops = append(ops, op)
			}
			n, haveDigit = 0, false
		default:
			return nil, errors.E(errors.Invalid, "cigar: unrecognized operator", string(c), "in", cigar)
		}
	}
	if haveDigit {
		return nil, errors.E(errors.Invalid, "cigar: trailing run length with no operator in", cigar)
	}
	return ops, nil
}

func opFromByte(c byte) Op {
	switch c {
	case 'X':
		return Mismatch
	case 'I':
		return Insertion
	case 'D':
		return Deletion
	default:
		return Match
	}
}
