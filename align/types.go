// Package align places encoded reads onto draft contigs: it enumerates
// unit-level chain nodes, finds minimum-cost chains through them by DP, and
// samples among overlapping alternative chains the way a long-read mapper
// picks among candidate loci for a repetitive read (spec.md §4.3).
package align

import "github.com/yosuzuki-lab/jtk-go/contig"

// ChainNode is one candidate correspondence between a read's tile and a
// contig's tile: both name the same (unit, cluster) on the same strand.
type ChainNode struct {
	ReadTile, ContigTile   int
	ContigStart, ContigEnd int
	ReadStart, ReadEnd     int
}

// Chain is an ordered, contig-position-increasing run of ChainNodes, plus
// its DP cost and the derived Score (= -Cost) larger-is-better weighted
// sampling expects.
type Chain struct {
	Nodes []ChainNode
	Cost  float64
	Score float64
	// SegmentIndex names which contig (by index into the caller's segment
	// slice) this chain was built against. MinCostChains leaves it at the
	// zero value; Distribute fills it in once a chain is pooled alongside
	// candidates from other contigs for weighted sampling.
	SegmentIndex int
}

// ReadSpan is the [start, end) range on the read this chain covers.
func (c Chain) ReadSpan() (start, end int) {
	start, end = c.Nodes[0].ReadStart, c.Nodes[0].ReadEnd
	for _, n := range c.Nodes[1:] {
		if n.ReadStart < start {
			start = n.ReadStart
		}
		if n.ReadEnd > end {
			end = n.ReadEnd
		}
	}
	return start, end
}

// ContigSpan is the [start, end) range on the contig this chain covers.
func (c Chain) ContigSpan() (start, end int) {
	start, end = c.Nodes[0].ContigStart, c.Nodes[0].ContigEnd
	for _, n := range c.Nodes[1:] {
		if n.ContigStart < start {
			start = n.ContigStart
		}
		if n.ContigEnd > end {
			end = n.ContigEnd
		}
	}
	return start, end
}

// orientationOf reports the strand the chain's read tiles lie on, read off
// the first node's originating read node.
func orientationOf(read *contig.EncodedRead, c Chain) contig.Orientation {
	if read.Nodes[c.Nodes[0].ReadTile].Forward {
		return contig.Forward
	}
	return contig.Reverse
}
