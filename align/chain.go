package align

import (
	"math"
	"sort"

	"github.com/yosuzuki-lab/jtk-go/contig"
)

// ChainMatch is the constant per-node reward (a cost reduction, hence
// negative) the chain DP applies for every node it accepts; a longer chain
// of genuine matches always costs less than a shorter one plus a gap
// penalty alone could offset (spec.md §4.3).
const ChainMatch = -4000

// enumerateChainNodes lists every (read-tile, contig-tile) pair that agrees
// on unit, cluster and strand, sorted by (contig-start, read-start) as
// spec.md §4.3 requires before the chain DP runs.
func enumerateChainNodes(read *contig.EncodedRead, seg *contig.Segment) []ChainNode {
	var nodes []ChainNode
	for ri, rn := range read.Nodes {
		for ti, tile := range seg.Tiles {
			if rn.Unit != tile.Unit || rn.Cluster != tile.Cluster {
				continue
			}
			forward := tile.Orientation == contig.Forward
			if rn.Forward != forward {
				continue
			}
			nodes = append(nodes, ChainNode{
				ReadTile:    ri,
				ContigTile:  ti,
				ContigStart: tile.ContigStart,
				ContigEnd:   tile.ContigEnd,
				ReadStart:   rn.Position,
				ReadEnd:     rn.Position + rn.QueryLength,
			})
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].ContigStart != nodes[j].ContigStart {
			return nodes[i].ContigStart < nodes[j].ContigStart
		}
		return nodes[i].ReadStart < nodes[j].ReadStart
	})
	return nodes
}

// bestChain runs the minimum-cost chain DP once over nodes (already sorted
// by contig-start, read-start) and returns the globally best chain. nodes
// must be non-empty.
func bestChain(nodes []ChainNode) Chain {
	n := len(nodes)
	minDist := make([]float64, n)
	parent := make([]int, n)
	for j := range nodes {
		minDist[j] = ChainMatch
		parent[j] = -1
		for i := 0; i < j; i++ {
			if nodes[i].ContigStart >= nodes[j].ContigStart || nodes[i].ReadStart >= nodes[j].ReadStart {
				continue // spec.md §4.3: both coordinates must strictly increase
			}
			gap := (nodes[j].ContigStart - nodes[i].ContigStart) + (nodes[j].ReadStart - nodes[i].ReadStart)
			if gap <= 0 {
				continue
			}
			cost := minDist[i] + math.Ceil(math.Log(float64(gap))) + ChainMatch
			if cost < minDist[j] {
				minDist[j] = cost
				parent[j] = i
			}
		}
	}
	best := 0
	for j := 1; j < n; j++ {
		if minDist[j] < minDist[best] {
			best = j
		}
	}
	var path []int
	for j := best; j != -1; j = parent[j] {
		path = append(path, j)
	}
	chainNodes := make([]ChainNode, len(path))
	for i, j := range path {
		chainNodes[len(path)-1-i] = nodes[j]
	}
	return Chain{Nodes: chainNodes, Cost: minDist[best], Score: -minDist[best]}
}

// MinCostChains enumerates alternative chains by repeatedly extracting the
// global minimum-cost chain and removing its member nodes, until every
// chain node has been claimed by some chain (spec.md §4.3 "repeat on
// remaining chain nodes to enumerate alternative chains").
func MinCostChains(read *contig.EncodedRead, seg *contig.Segment) []Chain {
	active := enumerateChainNodes(read, seg)
	var chains []Chain
	for len(active) > 0 {
		c := bestChain(active)
		chains = append(chains, c)
		used := make(map[ChainNode]bool, len(c.Nodes))
		for _, n := range c.Nodes {
			used[n] = true
		}
		remaining := active[:0:0]
		for _, n := range active {
			if !used[n] {
				remaining = append(remaining, n)
			}
		}
		active = remaining
	}
	return chains
}
