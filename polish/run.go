package polish

import (
	"github.com/grailbio/base/traverse"
	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/hmm"
	"github.com/yosuzuki-lab/jtk-go/window"
)

// Run executes opts.RoundNum rounds of (split, train, polish, join,
// truncate) independently per contig (spec.md §4.5), returning the new
// per-contig draft segments and the rebuilt per-contig alignments.
//
// model is cloned once per contig (spec.md §9 "the HMM is carried as a
// parameter and cloned per polishing invocation so that training mutations
// do not leak across contigs") and that one clone is carried through every
// round for that contig (spec.md §4.5 step 3 "use the same HMM instance
// across rounds").
func Run(segments []*contig.Segment, alignments map[string][]*contig.Alignment, model hmm.Model, opts Opts) ([]*contig.Segment, map[string][]*contig.Alignment, error) {
	newSegments := make([]*contig.Segment, len(segments))
	newAlignments := make(map[string][]*contig.Alignment, len(segments))

	for i, seg := range segments {
		segModel := model.Clone()
		curSeg, curAligns := seg, alignments[seg.ID]
		for round := 0; round < opts.RoundNum; round++ {
			var err error
			curSeg, curAligns, err = polishRound(curSeg, curAligns, segModel, opts)
			if err != nil {
				return nil, nil, err
			}
		}
		newSegments[i] = curSeg
		newAlignments[curSeg.ID] = curAligns
	}
	return newSegments, newAlignments, nil
}

// polishRound runs one (split, train, polish, join, truncate) pass for one
// contig. model is mutated in place by the sequential training step
// (spec.md §4.5 step 3) and read during the parallel per-window polish
// that follows; each window task clones it again internally before any
// further (window-local) retraining, so the parallel section never writes
// to model itself (spec.md §5).
func polishRound(segment *contig.Segment, alignments []*contig.Alignment, model hmm.Model, opts Opts) (*contig.Segment, []*contig.Alignment, error) {
	splits, numFullWindows := buildSplits(segment, alignments, opts.WindowSize)
	refs := pileupRefs(splits, numFullWindows)

	draftLens := make([]int, numFullWindows)
	coverage := make([]int, numFullWindows)
	windowSeqs := make([][][]byte, numFullWindows)
	windowOps := make([][][]contig.Op, numFullWindows)
	for w := 0; w < numFullWindows; w++ {
		draftLens[w] = opts.WindowSize
		seqs, ops := gatherWindow(splits, refs[w])
		windowSeqs[w], windowOps[w] = seqs, ops
		coverage[w] = len(seqs)
	}

	for _, w := range selectTrainingWindows(opts.WindowSize, draftLens, coverage) {
		model.FitGuided(windowDraft(segment, w, opts.WindowSize), windowSeqs[w], windowOps[w], opts.Radius)
	}

	newDrafts := make([][]byte, numFullWindows)
	err := traverse.Each(numFullWindows, func(w int) error {
		draft := windowDraft(segment, w, opts.WindowSize)
		newDraft, newOps := polishWindow(model, draft, windowSeqs[w], windowOps[w], opts)
		newDrafts[w] = newDraft
		writeBackWindow(splits, refs[w], newOps)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	newSequence, offsets := stitch(segment, newDrafts, opts.WindowSize)
	newSegment := &contig.Segment{ID: segment.ID, Sequence: newSequence}

	newAlignments := make([]*contig.Alignment, len(alignments))
	for i, s := range splits {
		a, err := window.Join(s, newSequence, offsets)
		if err != nil {
			return nil, nil, err
		}
		truncateHomopolymers(a)
		if err := a.CheckInvariants(); err != nil {
			return nil, nil, err
		}
		newAlignments[i] = a
	}
	return newSegment, newAlignments, nil
}

func windowDraft(segment *contig.Segment, w, windowSize int) []byte {
	start := w * windowSize
	return segment.Sequence[start : start+windowSize]
}

// stitch concatenates the round's polished window drafts, followed
// unchanged by whatever tail of the segment's sequence fell past the last
// full window (spec.md §4.5 step 5), and returns the new sequence plus the
// prefix-sum offsets table window.Join needs to re-anchor tips.
func stitch(segment *contig.Segment, newDrafts [][]byte, windowSize int) ([]byte, []int) {
	offsets := make([]int, len(newDrafts)+1)
	var out []byte
	for w, d := range newDrafts {
		out = append(out, d...)
		offsets[w+1] = offsets[w] + len(d)
	}
	out = append(out, segment.Sequence[len(newDrafts)*windowSize:]...)
	return out, offsets
}
