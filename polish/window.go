package polish

import (
	"math"

	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/hmm"
	"github.com/yosuzuki-lab/jtk-go/window/editalign"
)

// polishWindow runs spec.md §4.5 step 4 for one window. model is cloned
// internally before any training mutation, so the caller's instance - the
// one carried and retrained across rounds (step 3) - is never touched by a
// single window's FIX_TIME retraining (spec.md §5: the HMM is cloned per
// task, or treated as immutable, during the parallel polish segment).
func polishWindow(model hmm.Model, draft []byte, seqs [][]byte, ops [][]contig.Op, opts Opts) (newDraft []byte, newOps [][]contig.Op) {
	if len(seqs) < opts.MinCoverage {
		return draft, ops
	}

	lengths := make([]int, len(seqs))
	for i, s := range seqs {
		lengths[i] = len(s)
	}
	lengthMedian := medianInt(lengths)
	if lengthMedian == 0 {
		cleared := make([][]contig.Op, len(seqs))
		for i, s := range seqs {
			cleared[i] = repeatOp(contig.Insertion, len(s))
		}
		return nil, cleared
	}

	var inIdx, outIdx []int
	for i, l := range lengths {
		if inBand(float64(l), lengthMedian) {
			inIdx = append(inIdx, i)
		} else {
			outIdx = append(outIdx, i)
		}
	}
	inSeqs := make([][]byte, len(inIdx))
	inOps := make([][]contig.Op, len(inIdx))
	for k, i := range inIdx {
		inSeqs[k] = seqs[i]
		inOps[k] = ops[i]
	}

	local := model.Clone()
	seed := draft
	if !inBand(float64(len(draft)), lengthMedian) {
		// The draft's own length is itself off-median: bootstrap a fresh
		// seed from the in-band query closest to the median length and
		// realign every in-band query against it, rather than polishing
		// the stale, badly-sized draft (spec.md §4.5 step 4 "bootstrap a
		// draft by ternary consensus ... realign ... via global
		// alignment"). hmm.Model.PolishGuided's own majority-vote
		// convergence loop already performs the consensus-then-realign
		// role here; see DESIGN.md.
		seed = bootstrapSeed(inSeqs, lengthMedian)
		for k, s := range inSeqs {
			inOps[k] = editalign.Global(s, seed)
		}
	}

	polished, polishedOps := local.PolishGuided(seed, inSeqs, inOps, opts.Radius)
	for i := 0; i < fixTime; i++ {
		polished, polishedOps = local.PolishGuided(polished, inSeqs, polishedOps, opts.Radius)
		local.FitGuided(polished, inSeqs, polishedOps, opts.Radius)
	}

	result := make([][]contig.Op, len(seqs))
	for k, i := range inIdx {
		result[i] = polishedOps[k]
	}
	for _, i := range outIdx {
		result[i] = editalign.Global(seqs[i], polished)
	}
	return polished, result
}

// inBand reports whether length sits within +/-20% of median (spec.md
// §4.5 step 4), used both for the query in-band/out-of-band partition and
// for deciding whether the window's own draft length is trustworthy.
func inBand(length, median float64) bool {
	return length >= (1-inBandFrac)*median && length < (1+inBandFrac)*median
}

// bootstrapSeed picks the in-band query whose length is closest to median
// as the starting draft for the off-median-draft branch.
func bootstrapSeed(seqs [][]byte, median float64) []byte {
	best := -1
	bestDiff := math.Inf(1)
	for i, s := range seqs {
		if diff := math.Abs(float64(len(s)) - median); diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	if best == -1 {
		return nil
	}
	return append([]byte(nil), seqs[best]...)
}

func repeatOp(op contig.Op, n int) []contig.Op {
	ops := make([]contig.Op, n)
	for i := range ops {
		ops[i] = op
	}
	return ops
}
