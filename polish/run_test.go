package polish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/hmm"
)

// TestRunIdentityPolishReproducesAlignment hand-verifies a variant of
// spec.md §8 E5: a single read spanning two full windows exactly, with a
// query identical to the contig, should come out of a polish round
// byte-for-byte and op-for-op identical (no homopolymer run in the test
// sequence exceeds truncateLen, so truncation is also a no-op).
func TestRunIdentityPolishReproducesAlignment(t *testing.T) {
	seq := []byte("ACGTACGTACGTACGTACGT") // 20 bases, no run longer than 1
	segment := &contig.Segment{ID: "ctg1", Sequence: append([]byte(nil), seq...)}
	a := &contig.Alignment{
		ContigID:    "ctg1",
		ContigStart: 0,
		ContigEnd:   20,
		Query:       append([]byte(nil), seq...),
		Ops:         matchOps(20),
	}
	alignments := map[string][]*contig.Alignment{"ctg1": {a}}

	opts := Opts{WindowSize: 10, Radius: 50, RoundNum: 1, MinCoverage: 1}
	model := hmm.NewDefaultPlan7()

	newSegments, newAlignments, err := Run([]*contig.Segment{segment}, alignments, model, opts)
	require.NoError(t, err)
	require.Len(t, newSegments, 1)

	assert.Equal(t, seq, newSegments[0].Sequence)
	got := newAlignments["ctg1"]
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].ContigStart)
	assert.Equal(t, 20, got[0].ContigEnd)
	assert.Equal(t, seq, got[0].Query)
	assert.Equal(t, matchOps(20), got[0].Ops)
	assert.NoError(t, got[0].CheckInvariants())
}

// TestRunDoesNotMutateCallersModel runs 2 rounds, each of which trains the
// model via FitGuided, and checks that the caller's own model is left
// completely untouched: Run trains only its per-contig clone. It does not
// check that round 2 sees round 1's retraining.
func TestRunDoesNotMutateCallersModel(t *testing.T) {
	seq := []byte("ACGTACGTACGTACGTACGT")
	segment := &contig.Segment{ID: "ctg1", Sequence: append([]byte(nil), seq...)}
	a := &contig.Alignment{
		ContigID: "ctg1", ContigStart: 0, ContigEnd: 20,
		Query: append([]byte(nil), seq...), Ops: matchOps(20),
	}
	alignments := map[string][]*contig.Alignment{"ctg1": {a}}
	opts := Opts{WindowSize: 10, Radius: 50, RoundNum: 2, MinCoverage: 1}

	model := hmm.NewDefaultPlan7()
	before := *model

	_, _, err := Run([]*contig.Segment{segment}, alignments, model, opts)
	require.NoError(t, err)

	assert.Equal(t, before, *model)
}
