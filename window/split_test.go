package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yosuzuki-lab/jtk-go/contig"
)

// testContig is a 30-base sequence hand-checked to contain no repeated
// 7-mer inside the 10-base windows the tests slice out of it, so every
// DP alignment in these tests has a unique, unambiguous zero-cost answer.
const testContig = "ACGTGGCATCAGTCAGGCTAACGGTACCAT"

func allMatchOps(n int) []contig.Op {
	ops := make([]contig.Op, n)
	for i := range ops {
		ops[i] = contig.Match
	}
	return ops
}

func TestSplitProducesLeadPieceAndTrailTip(t *testing.T) {
	a := &contig.Alignment{
		ContigID:    "ctg1",
		ContigStart: 3,
		ContigEnd:   27,
		Query:       []byte(testContig[3:27]),
		Ops:         allMatchOps(24),
	}
	s := Split(a, 10)

	assert.NotNil(t, s.LeadTip)
	assert.Equal(t, 1, s.LeadTip.WindowIndex)
	assert.Equal(t, []byte(testContig[3:10]), s.LeadTip.Query)

	assert.Len(t, s.Pieces, 1)
	assert.Equal(t, 1, s.Pieces[0].WindowIndex)
	assert.Equal(t, []byte(testContig[10:20]), s.Pieces[0].Query)
	assert.Equal(t, allMatchOps(10), s.Pieces[0].Ops)

	assert.NotNil(t, s.TrailTip)
	assert.Equal(t, 2, s.TrailTip.WindowIndex)
	assert.Equal(t, []byte(testContig[20:27]), s.TrailTip.Query)
}

func TestSplitExactBoundariesHasNoTips(t *testing.T) {
	a := &contig.Alignment{
		ContigID:    "ctg1",
		ContigStart: 0,
		ContigEnd:   30,
		Query:       []byte(testContig),
		Ops:         allMatchOps(30),
	}
	s := Split(a, 10)
	assert.Nil(t, s.LeadTip)
	assert.Nil(t, s.TrailTip)
	assert.Len(t, s.Pieces, 3)
	assert.Equal(t, 0, s.Pieces[0].WindowIndex)
	assert.Equal(t, 1, s.Pieces[1].WindowIndex)
	assert.Equal(t, 2, s.Pieces[2].WindowIndex)
}

func TestSplitWhollyWithinOneWindowIsOneTipNoPieces(t *testing.T) {
	a := &contig.Alignment{
		ContigID:    "ctg1",
		ContigStart: 2,
		ContigEnd:   8,
		Query:       []byte(testContig[2:8]),
		Ops:         allMatchOps(6),
	}
	s := Split(a, 10)
	assert.NotNil(t, s.LeadTip)
	assert.Equal(t, 0, s.LeadTip.WindowIndex)
	assert.Empty(t, s.Pieces)
	assert.Nil(t, s.TrailTip)
	assert.Equal(t, []byte(testContig[2:8]), s.LeadTip.Query)
}

func TestSplitAssignsInsertionsToSurroundingWindow(t *testing.T) {
	// Contig range [8,22): a lead tip [8,10), one full piece [10,20), and
	// a trail tip [20,22). The insertion sits right at the lead-tip/piece
	// boundary: it must land in the piece (cpos has already reached 10,
	// the piece's own start) not the lead tip.
	var ops []contig.Op
	ops = append(ops, contig.Match, contig.Match) // consumes contig 8,9 (lead tip)
	ops = append(ops, contig.Insertion)           // cpos==10 already: belongs to the piece
	for i := 0; i < 10; i++ {
		ops = append(ops, contig.Match) // consumes contig 10..19 (piece)
	}
	ops = append(ops, contig.Match, contig.Match) // consumes contig 20,21 (trail tip)

	a := &contig.Alignment{
		ContigID:    "ctg1",
		ContigStart: 8,
		ContigEnd:   22,
		Query:       make([]byte, len(ops)), // no Deletions, so query length == op count
		Ops:         ops,
	}
	s := Split(a, 10)

	assert.NotNil(t, s.LeadTip)
	assert.Len(t, s.LeadTip.Query, 2)
	assert.Len(t, s.Pieces, 1)
	assert.Equal(t, 11, len(s.Pieces[0].Query)) // insertion + 10 matches
	assert.Equal(t, contig.Insertion, s.Pieces[0].Ops[0])
	assert.NotNil(t, s.TrailTip)
	assert.Len(t, s.TrailTip.Query, 2)
}
