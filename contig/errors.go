package contig

import (
	"github.com/grailbio/base/errors"
)

// CheckInvariants verifies the two length equalities spec.md §3 requires of
// every Alignment. Like CheckLoad, it runs unconditionally; nothing in this
// package is gated on a debug build.
func (a *Alignment) CheckInvariants() error {
	if got, want := a.ContigSpan(), a.ContigEnd-a.ContigStart; got != want {
		return errors.E(errors.Invalid, "alignment contig span mismatch for", a.ContigID,
			": ops account for", got, "bases but contig range is", want)
	}
	if got, want := a.QueryConsumed(), len(a.Query); got != want {
		return errors.E(errors.Invalid, "alignment query length mismatch for", a.ContigID,
			": ops account for", got, "bases but query is", want, "bytes")
	}
	return nil
}

// CheckLoad validates a freshly loaded EncodedRead against MalformedInput
// class errors (spec.md §7): a node's query length must not be negative, its
// unit id must not be negative, and its cigar (if present) must actually
// consume QueryLength query bases. It does not compare a node's extent with
// the next node's position or with the raw read bytes, and it does not look
// the unit id up in any unit table.
func (r *EncodedRead) CheckLoad() error {
	for i, n := range r.Nodes {
		if n.QueryLength < 0 {
			return errors.E(errors.Invalid, "malformed read", r.ID, ": negative query length at node", i)
		}
		if n.Unit < 0 {
			return errors.E(errors.Invalid, "malformed read", r.ID, ": node", i, "references no unit")
		}
		if n.Cigar == "" {
			continue
		}
		ops, err := ParseCigar(n.Cigar)
		if err != nil {
			return errors.E(errors.Invalid, "malformed read", r.ID, ": node", i, err)
		}
		consumed := 0
		for _, op := range ops {
			if op != Deletion {
				consumed++
			}
		}
		if consumed != n.QueryLength {
			return errors.E(errors.Invalid, "malformed read", r.ID, ": node", i,
				"cigar consumes", consumed, "query bases but QueryLength is", n.QueryLength)
		}
	}
	return nil
}
