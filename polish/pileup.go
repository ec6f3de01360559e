package polish

import (
	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/window"
)

// pieceRef locates one window.Piece within the per-contig slice of Splits
// (one per alignment), so a window's pileup can be written back in place
// once it has been polished.
type pieceRef struct {
	splitIdx, pieceIdx int
}

// buildSplits runs window.Split over every alignment of one contig
// (spec.md §4.5 step 1) and reports how many full [k*W,(k+1)*W) windows
// the contig's own current sequence spans; any remaining bytes past the
// last full window are carried through unpolished, the same way a read's
// own trailing tip is never assigned to a window of its own.
func buildSplits(segment *contig.Segment, alignments []*contig.Alignment, windowSize int) ([]window.Split, int) {
	splits := make([]window.Split, len(alignments))
	for i, a := range alignments {
		splits[i] = window.Split(a, windowSize)
	}
	return splits, segment.Len() / windowSize
}

// pileupRefs groups every piece across every split by the window it
// belongs to (spec.md §4.5 step 2).
func pileupRefs(splits []window.Split, numFullWindows int) [][]pieceRef {
	refs := make([][]pieceRef, numFullWindows)
	for si, s := range splits {
		for pi, p := range s.Pieces {
			refs[p.WindowIndex] = append(refs[p.WindowIndex], pieceRef{si, pi})
		}
	}
	return refs
}

// gatherWindow collects one window's pileup: the query slice and op
// sequence of every piece assigned to it, in a fixed order that
// writeBackWindow later relies on to put polished ops back in the right
// place.
func gatherWindow(splits []window.Split, refs []pieceRef) (seqs [][]byte, ops [][]contig.Op) {
	seqs = make([][]byte, len(refs))
	ops = make([][]contig.Op, len(refs))
	for i, r := range refs {
		p := splits[r.splitIdx].Pieces[r.pieceIdx]
		seqs[i] = p.Query
		ops[i] = p.Ops
	}
	return seqs, ops
}

// writeBackWindow stores a window's polished op sequences back into the
// pieces they came from, in the same order gatherWindow produced them in.
func writeBackWindow(splits []window.Split, refs []pieceRef, ops [][]contig.Op) {
	for i, r := range refs {
		splits[r.splitIdx].Pieces[r.pieceIdx].Ops = ops[i]
	}
}
