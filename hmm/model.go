// Package hmm defines the pair-HMM capability spec.md §9 treats as a
// black box ("any implementation meeting that contract is substitutable"),
// plus one concrete reference implementation, Plan7, sufficient to exercise
// the polishing loop end to end.
package hmm

import "github.com/yosuzuki-lab/jtk-go/contig"

// Model is the three-method capability a pair-HMM must offer the polishing
// loop (spec.md §9 Polymorphism): fit_guided, polish_guided, clone.
//
// The HMM is carried as a parameter and cloned per polishing invocation
// (spec.md §9 Global state) so that one contig's training never leaks into
// another's; Clone is what makes that safe across the per-window fork-join
// (spec.md §5).
type Model interface {
	// FitGuided re-estimates the model's parameters from seqs aligned
	// against template, using ops as the guide alignment for each seq
	// (§4.5 step 3: "fit the HMM ... with guided Baum-Welch at radius r").
	// It mutates the receiver; callers that must not disturb a shared
	// instance call Clone first.
	FitGuided(template []byte, seqs [][]byte, ops [][]contig.Op, radius int)

	// PolishGuided refines template against seqs to convergence, guided by
	// ops, and returns the refined template plus each seq's final op
	// sequence against it, in the same order as seqs (§4.5 step 4).
	PolishGuided(template []byte, seqs [][]byte, ops [][]contig.Op, radius int) (polished []byte, newOps [][]contig.Op)

	// Clone returns an independent copy: training or polishing through the
	// copy never mutates the receiver.
	Clone() Model
}
