package hmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/internal/numeric"
)

func TestNewDefaultPlan7Values(t *testing.T) {
	p := NewDefaultPlan7()
	assert.InDelta(t, numeric.Log(0.92), p.MM, 1e-12)
	assert.InDelta(t, numeric.Log(0.04), p.MI, 1e-12)
	assert.InDelta(t, numeric.Log(0.04), p.MD, 1e-12)
	assert.InDelta(t, numeric.Log(0.6), p.IM, 1e-12)
	assert.InDelta(t, numeric.Log(0.4), p.II, 1e-12)
	assert.InDelta(t, numeric.Log(0.7), p.DM, 1e-12)
	assert.InDelta(t, numeric.Log(0.3), p.DD, 1e-12)
	assert.InDelta(t, numeric.Log(0.9), p.MatchEmit, 1e-12)
	assert.InDelta(t, numeric.Log(0.1/3), p.MismatchEmit, 1e-12)
	assert.InDelta(t, numeric.Log(0.25), p.InsertEmit, 1e-12)
}

func TestPlan7CloneIsIndependent(t *testing.T) {
	p := NewDefaultPlan7()
	clone := p.Clone().(*Plan7)
	clone.MM = -1.0
	assert.NotEqual(t, p.MM, clone.MM)
}

// TestFitGuidedReestimatesFromCounts hand-derives every expected parameter
// from one guide op sequence: M,M,I,M,D,M. Adjacent-pair transitions are
// (M,M) (M,I) (I,M) (M,D) (D,M); Match op count is 4 (all of them, no
// Mismatch), so MatchEmit should become log(1) and MismatchEmit log(0)
// (clamped).
func TestFitGuidedReestimatesFromCounts(t *testing.T) {
	ops := []contig.Op{contig.Match, contig.Match, contig.Insertion, contig.Match, contig.Deletion, contig.Match}
	p := &Plan7{}
	p.FitGuided(nil, [][]byte{{'A'}}, [][]contig.Op{ops}, 100)

	assert.InDelta(t, numeric.Log(1.0/3), p.MM, 1e-12)
	assert.InDelta(t, numeric.Log(1.0/3), p.MI, 1e-12)
	assert.InDelta(t, numeric.Log(1.0/3), p.MD, 1e-12)
	assert.InDelta(t, numeric.Log(1.0), p.IM, 1e-12)
	assert.InDelta(t, numeric.Log(0.0), p.II, 1e-12)
	assert.InDelta(t, numeric.Log(1.0), p.DM, 1e-12)
	assert.InDelta(t, numeric.Log(0.0), p.DD, 1e-12)
	assert.InDelta(t, numeric.Log(1.0), p.MatchEmit, 1e-12)
	assert.InDelta(t, numeric.Log(0.0), p.MismatchEmit, 1e-12)
}

func TestFitGuidedLeavesParametersUnchangedWithNoData(t *testing.T) {
	p := NewDefaultPlan7()
	before := *p
	p.FitGuided(nil, nil, nil, 100)
	assert.Equal(t, before, *p)
}

// TestPolishGuidedNoOpWhenSeqsMatchTemplate exercises spec.md §8 E3: all
// queries already equal the draft, so polishing must leave it untouched.
func TestPolishGuidedNoOpWhenSeqsMatchTemplate(t *testing.T) {
	template := []byte("ACGTACGTACGT")
	seqs := [][]byte{[]byte(template), []byte(template), []byte(template)}
	ops := make([][]contig.Op, 3)
	for i := range ops {
		ops[i] = allMatch(12)
	}
	p := NewDefaultPlan7()
	polished, newOps := p.PolishGuided(template, seqs, ops, 100)
	assert.Equal(t, template, polished)
	for _, o := range newOps {
		assert.Equal(t, allMatch(12), o)
	}
}

func TestConsensusSubstitutesOnPluralityVote(t *testing.T) {
	p := NewDefaultPlan7()
	template := []byte("AC")
	seqs := [][]byte{[]byte("AC"), []byte("GC"), []byte("GC")}
	ops := [][]contig.Op{
		{contig.Match, contig.Match},
		{contig.Mismatch, contig.Match},
		{contig.Mismatch, contig.Match},
	}
	got := p.consensus(template, seqs, ops)
	assert.Equal(t, []byte("GC"), got)
}

func TestConsensusDropsBaseOnMajorityDeletionVote(t *testing.T) {
	p := NewDefaultPlan7()
	template := []byte("ACG")
	seqs := [][]byte{[]byte("AG"), []byte("AG"), []byte("AG")}
	ops := make([][]contig.Op, 3)
	for i := range ops {
		ops[i] = []contig.Op{contig.Match, contig.Deletion, contig.Match}
	}
	got := p.consensus(template, seqs, ops)
	assert.Equal(t, []byte("AG"), got)
}

func TestConsensusInsertsOnMajorityVote(t *testing.T) {
	p := NewDefaultPlan7()
	template := []byte("AC")
	seqs := [][]byte{[]byte("ATC"), []byte("ATC"), []byte("ATC")}
	ops := make([][]contig.Op, 3)
	for i := range ops {
		ops[i] = []contig.Op{contig.Match, contig.Insertion, contig.Match}
	}
	got := p.consensus(template, seqs, ops)
	assert.Equal(t, []byte("ATC"), got)
}

func allMatch(n int) []contig.Op {
	ops := make([]contig.Op, n)
	for i := range ops {
		ops[i] = contig.Match
	}
	return ops
}
