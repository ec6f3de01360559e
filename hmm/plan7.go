package hmm

import (
	"bytes"

	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/internal/numeric"
	"github.com/yosuzuki-lab/jtk-go/window/editalign"
)

// maxPolishIters bounds the polish-to-convergence loop (§4.5 step 4); the
// consensus vote is a monotone-ish fixed-point in practice and converges
// within a handful of iterations for the window sizes this package targets.
const maxPolishIters = 8

var bases = [4]byte{'A', 'C', 'G', 'T'}

// Plan7 is a three-state (Match/Insertion/Deletion) pair-HMM, grounded on
// the Plan7 topology in the TuftsBCB-seq hmm reference: seven allowed
// transitions (MM, MI, MD, IM, II, DM, DD; ID and DI are never part of the
// model), and emissions kept separate from transitions.
//
// Unlike that reference's per-column profile (a table of emissions per
// node), Plan7 here uses a single homogeneous parameter set shared across
// every template position. Pair-HMM internals are a black-box capability
// per spec.md §1/§9 - any Model is substitutable - so the simplification
// trades profile fidelity for an implementation whose FitGuided/
// PolishGuided behavior can be hand-verified one arithmetic step at a time.
type Plan7 struct {
	MM, MI, MD float64
	IM, II     float64
	DM, DD     float64

	MatchEmit    float64 // log P(observed base == template base)
	MismatchEmit float64 // log P(observed == one particular other base)
	InsertEmit   float64 // log P of any one base while inserting (background)
}

// NewDefaultPlan7 returns a Plan7 seeded with a generic long-read error
// profile: 92% match-state continuation, 4% insertion open, 4% deletion
// open; insertions extend 40% of the time, deletions 30% of the time.
// Callers hold this as the "pretrained model" spec.md §6 takes as input.
func NewDefaultPlan7() *Plan7 {
	p := &Plan7{}
	p.reestimateM(92, 4, 4)
	p.reestimateI(6, 4)
	p.reestimateD(7, 3)
	p.MatchEmit = numeric.Log(0.9)
	p.MismatchEmit = numeric.Log(0.1 / 3)
	p.InsertEmit = numeric.Log(0.25)
	return p
}

// Clone returns an independent copy; Plan7 holds no pointer or slice
// fields, so a value copy already is a deep copy.
func (p *Plan7) Clone() Model {
	cp := *p
	return &cp
}

// FitGuided re-estimates transition and match/mismatch emission parameters
// by counting operation types and adjacent-operation pairs across every
// (seq, ops) guide directly - a Viterbi-training style reestimation rather
// than full forward-backward Baum-Welch, since the guide ops already stand
// in for the most likely path (spec.md §4.5 step 3: "guided Baum-Welch").
// template and radius are accepted for interface compatibility; neither
// participates in a counting pass over an already-given alignment.
func (p *Plan7) FitGuided(template []byte, seqs [][]byte, ops [][]contig.Op, radius int) {
	_, _ = template, radius
	var mm, mi, md, im, ii, dm, dd int
	var matchOK, matchBad int
	for _, opSeq := range ops {
		havePrev := false
		var prev contig.Op
		for _, op := range opSeq {
			switch op {
			case contig.Match:
				matchOK++
			case contig.Mismatch:
				matchBad++
			}
			if havePrev {
				switch {
				case state(prev) == 'M' && state(op) == 'M':
					mm++
				case state(prev) == 'M' && state(op) == 'I':
					mi++
				case state(prev) == 'M' && state(op) == 'D':
					md++
				case state(prev) == 'I' && state(op) == 'M':
					im++
				case state(prev) == 'I' && state(op) == 'I':
					ii++
				case state(prev) == 'D' && state(op) == 'M':
					dm++
				case state(prev) == 'D' && state(op) == 'D':
					dd++
					// state(prev)=='I' && state(op)=='D', or the reverse: not
					// part of the Plan7 topology; not counted.
				}
			}
			prev, havePrev = op, true
		}
	}
	p.reestimateM(mm, mi, md)
	p.reestimateI(im, ii)
	p.reestimateD(dm, dd)
	if total := matchOK + matchBad; total > 0 {
		frac := float64(matchOK) / float64(total)
		p.MatchEmit = numeric.Log(frac)
		p.MismatchEmit = numeric.Log((1 - frac) / 3)
	}
}

// reestimateM/I/D leave the parameter untouched when no relevant
// transitions were observed (no data this round is not grounds to forget
// the prior model).
func (p *Plan7) reestimateM(mm, mi, md int) {
	if total := mm + mi + md; total > 0 {
		p.MM = numeric.Log(float64(mm) / float64(total))
		p.MI = numeric.Log(float64(mi) / float64(total))
		p.MD = numeric.Log(float64(md) / float64(total))
	}
}

func (p *Plan7) reestimateI(im, ii int) {
	if total := im + ii; total > 0 {
		p.IM = numeric.Log(float64(im) / float64(total))
		p.II = numeric.Log(float64(ii) / float64(total))
	}
}

func (p *Plan7) reestimateD(dm, dd int) {
	if total := dm + dd; total > 0 {
		p.DM = numeric.Log(float64(dm) / float64(total))
		p.DD = numeric.Log(float64(dd) / float64(total))
	}
}

// state collapses an Op into its Plan7 state letter: Match and Mismatch
// both occupy the Match state (they differ only in emission, not in
// transition structure).
func state(op contig.Op) byte {
	switch op {
	case contig.Insertion:
		return 'I'
	case contig.Deletion:
		return 'D'
	default:
		return 'M'
	}
}

// PolishGuided refines template by majority-vote consensus against seqs,
// re-aligning every seq to the current draft each round via
// window/editalign's full DP, until the draft stops changing or
// maxPolishIters is reached. radius is accepted for interface
// compatibility: editalign has no banded variant, and the window sizes
// this package targets (a few thousand bases) make full DP tractable
// without one - see DESIGN.md.
func (p *Plan7) PolishGuided(template []byte, seqs [][]byte, ops [][]contig.Op, radius int) ([]byte, [][]contig.Op) {
	_ = radius
	current := append([]byte(nil), template...)
	currentOps := ops
	for iter := 0; iter < maxPolishIters; iter++ {
		next := p.consensus(current, seqs, currentOps)
		nextOps := make([][]contig.Op, len(seqs))
		for i, seq := range seqs {
			nextOps[i] = editalign.Global(seq, next)
		}
		done := bytes.Equal(next, current)
		current, currentOps = next, nextOps
		if done {
			break
		}
	}
	return current, currentOps
}

// locusVotes tallies what the aligned seqs say should happen at one
// template position: which base occupies it (or whether it should be
// dropped), and which base (if any) should be inserted just before it.
type locusVotes struct {
	baseCount map[byte]int
	del       int
	ins       map[byte]int
}

// consensus builds the next-round draft from ops aligning each of seqs to
// template: at each template position, a strict majority of seqs voting to
// delete it drops the base; otherwise the plurality-voted base is kept
// (ties favor the current template base, so an unproductive vote is a
// no-op, keeping convergence well-defined). An inserted base is carried
// into the new draft only when a strict majority of seqs agree on it.
func (p *Plan7) consensus(template []byte, seqs [][]byte, ops [][]contig.Op) []byte {
	loci := make([]locusVotes, len(template)+1)
	for i := range loci {
		loci[i] = locusVotes{baseCount: map[byte]int{}, ins: map[byte]int{}}
	}
	for s, opSeq := range ops {
		seq := seqs[s]
		cpos, qpos := 0, 0
		for _, op := range opSeq {
			switch op {
			case contig.Match, contig.Mismatch:
				loci[cpos].baseCount[seq[qpos]]++
				cpos++
				qpos++
			case contig.Deletion:
				loci[cpos].del++
				cpos++
			case contig.Insertion:
				loci[cpos].ins[seq[qpos]]++
				qpos++
			}
		}
	}

	n := len(seqs)
	var out []byte
	for i := 0; i <= len(template); i++ {
		for _, b := range bases {
			if loci[i].ins[b]*2 > n {
				out = append(out, b)
				break
			}
		}
		if i == len(template) {
			break
		}
		if loci[i].del*2 > n {
			continue
		}
		out = append(out, majorityBase(loci[i].baseCount, template[i]))
	}
	return out
}

// majorityBase picks the most-voted base at a locus, defaulting to (and
// favoring on ties) the template's current base there.
func majorityBase(counts map[byte]int, fallback byte) byte {
	best, bestCount := fallback, counts[fallback]
	for _, b := range bases {
		if counts[b] > bestCount {
			best, bestCount = b, counts[b]
		}
	}
	return best
}
