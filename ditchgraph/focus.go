package ditchgraph

import (
	"math"
	"sort"

	"github.com/grailbio/base/log"
	"github.com/yosuzuki-lab/jtk-go/contig"
	"github.com/yosuzuki-lab/jtk-go/internal/numeric"
)

// Focus is a candidate rewrite: a unique->multi->unique evidence structure
// running from Origin to Terminus, scored by LLR (spec.md §3).
type Focus struct {
	Origin       Endpoint
	Terminus     Endpoint
	Distance     int
	Observations []int // per-depth support count along the winning path, depth 0..Distance
	LLR          float64
	Path         []Endpoint // intermediate (node, port) pairs, Origin and Terminus excluded
}

type unitCluster struct{ Unit, Cluster int }

// FindCandidates scans the graph for unique-into-repeat entry points
// (spec.md §4.1 Candidate selection): a copy-number-1 node N with a port P
// that has exactly one outgoing edge into a copy->=2 joint with at least one
// sibling edge.
func FindCandidates(g *Graph) []Endpoint {
	var out []Endpoint
	for i := 0; i < g.NumNodes(); i++ {
		idx := NodeIndex(i)
		n := g.Node(idx)
		if n.Deleted() || n.CopyNumber == nil || *n.CopyNumber != 1 {
			continue
		}
		for _, port := range [...]Port{Head, Tail} {
			edges := g.EdgesAt(idx, port)
			if len(edges) != 1 {
				continue
			}
			e := g.Edge(edges[0])
			far := e.OtherEnd(Endpoint{Node: idx, Port: port})
			m := g.Node(far.Node)
			if m.Deleted() || m.CopyNumber == nil || *m.CopyNumber < 2 {
				continue
			}
			if len(g.EdgesAt(far.Node, far.Port)) < 2 {
				continue
			}
			out = append(out, Endpoint{Node: idx, Port: port})
		}
	}
	return out
}

// buildReadTraces walks every read once from wherever it crosses the
// origin node, recording the (unit, cluster) label the read carries at
// each successive depth into the repeat. A read's direction of travel
// through the origin (spec.md: "walking with the read's implicit strand")
// is derived from the node's orientation and the exit port.
func buildReadTraces(g *Graph, reads []*contig.EncodedRead, origin Endpoint) [][]unitCluster {
	originNode := g.Node(origin.Node)
	var traces [][]unitCluster
	for _, r := range reads {
		for i, nd := range r.Nodes {
			if nd.Unit != originNode.Unit || nd.Cluster != originNode.Cluster {
				continue
			}
			dir := exitDirection(nd, origin.Port)
			trace := make([]unitCluster, 0, 4)
			trace = append(trace, unitCluster{nd.Unit, nd.Cluster})
			for j := i + dir; j >= 0 && j < len(r.Nodes); j += dir {
				trace = append(trace, unitCluster{r.Nodes[j].Unit, r.Nodes[j].Cluster})
			}
			traces = append(traces, trace)
			break
		}
	}
	return traces
}

// exitDirection returns the read-index step (+1 or -1) that corresponds to
// leaving node n through port, given the read's orientation at that node.
func exitDirection(n contig.EncodedNode, port Port) int {
	leavesForward := port == Tail
	if n.Forward == leavesForward {
		return 1
	}
	return -1
}

type frontierNode struct {
	ep      Endpoint
	support int
	cum     int
	parent  int
}

// traceFocus runs the layered traversal from a single candidate origin and
// returns the best-scoring Focus it finds, or nil if the layer never
// produces an eligible terminus before support dries up.
func traceFocus(g *Graph, reads []*contig.EncodedRead, origin Endpoint, cfg Config) (*Focus, error) {
	traces := buildReadTraces(g, reads, origin)

	layers := [][]frontierNode{{{ep: Endpoint{Node: origin.Node, Port: origin.Port.Opposite()}, parent: -1}}}

	type topHit struct {
		layer, idx int
		score      float64
	}
	top := topHit{layer: -1, idx: -1, score: math.Inf(-1)}

	maxDepth := g.NumNodes() + len(traces) + 2
	for depth := 1; depth <= maxDepth; depth++ {
		prev := layers[depth-1]
		parentsOf := map[Endpoint][]int{}
		for pi, ln := range prev {
			outPort := ln.ep.Port.Opposite()
			for _, eIdx := range g.EdgesAt(ln.ep.Node, outPort) {
				e := g.Edge(eIdx)
				if e.CopyNumber != nil && *e.CopyNumber <= 0 {
					continue
				}
				far := e.OtherEnd(Endpoint{Node: ln.ep.Node, Port: outPort})
				parentsOf[far] = append(parentsOf[far], pi)
			}
		}
		if len(parentsOf) == 0 {
			break
		}

		labelCounts := map[unitCluster]int{}
		for _, tr := range traces {
			if depth < len(tr) {
				labelCounts[tr[depth]]++
			}
		}

		frontier := make([]frontierNode, 0, len(parentsOf))
		totalSupport := 0
		for ep, parents := range parentsOf {
			lbl := unitCluster{g.Node(ep.Node).Unit, g.Node(ep.Node).Cluster}
			supp := labelCounts[lbl]
			bestParent := parents[0]
			for _, p := range parents[1:] {
				if prev[p].cum > prev[bestParent].cum {
					bestParent = p
				}
			}
			frontier = append(frontier, frontierNode{ep: ep, support: supp, cum: prev[bestParent].cum + supp, parent: bestParent})
			totalSupport += supp
		}
		sort.Slice(frontier, func(i, j int) bool {
			if frontier[i].ep.Node != frontier[j].ep.Node {
				return frontier[i].ep.Node < frontier[j].ep.Node
			}
			return frontier[i].ep.Port < frontier[j].ep.Port
		})

		if totalSupport < cfg.MinSpanReads {
			if log.At(log.Debug) {
				log.Debug.Printf("ditchgraph: focus from %v terminates at depth %d: support %d < min_span_reads %d",
					origin, depth, totalSupport, cfg.MinSpanReads)
			}
			break
		}

		if len(frontier) >= 2 {
			counts := make([]int, len(frontier))
			occ := make([]int, len(frontier))
			copyOne := make([]bool, len(frontier))
			for i, fn := range frontier {
				n := g.Node(fn.ep.Node)
				counts[i] = fn.support
				occ[i] = n.Occupancy
				copyOne[i] = n.CopyNumber != nil && *n.CopyNumber == 1
			}
			ls, ok, err := scoreLayer(counts, occ, copyOne)
			if err != nil {
				return nil, err
			}
			if ok && ls.score > top.score {
				top = topHit{layer: depth, idx: ls.idx, score: ls.score}
			}
		}
		layers = append(layers, frontier)
	}

	if top.layer == -1 {
		return nil, nil
	}

	var path []Endpoint
	obs := make([]int, 0, top.layer+1)
	layer, idx := top.layer, top.idx
	for layer >= 0 {
		fn := layers[layer][idx]
		path = append([]Endpoint{fn.ep}, path...)
		obs = append([]int{fn.support}, obs...)
		idx = fn.parent
		layer--
	}
	// path[0] is the layer-0 origin bookkeeping entry; drop it, and split
	// the rest into interior path vs. terminus.
	path = path[1:]
	terminus := path[len(path)-1]
	interior := path[:len(path)-1]

	return &Focus{
		Origin:       origin,
		Terminus:     terminus,
		Distance:     top.layer,
		Observations: obs,
		LLR:          top.score,
		Path:         interior,
	}, nil
}

// DetectFoci scans the graph for all accepted Focus values: ones whose LLR
// is finite and exceeds cfg.RepeatResolutionThreshold, sorted by LLR
// descending with ties broken by (distance desc, origin node index desc)
// for determinism (spec.md §4.1 Filtering).
func DetectFoci(g *Graph, reads []*contig.EncodedRead, cfg Config) ([]Focus, error) {
	var foci []Focus
	for _, origin := range FindCandidates(g) {
		f, err := traceFocus(g, reads, origin, cfg)
		if err != nil {
			return nil, err
		}
		if f == nil {
			continue
		}
		if !numeric.Finite(f.LLR) || f.LLR <= cfg.RepeatResolutionThreshold {
			continue
		}
		foci = append(foci, *f)
	}
	sort.SliceStable(foci, func(i, j int) bool {
		if foci[i].LLR != foci[j].LLR {
			return foci[i].LLR > foci[j].LLR
		}
		if foci[i].Distance != foci[j].Distance {
			return foci[i].Distance > foci[j].Distance
		}
		return foci[i].Origin.Node > foci[j].Origin.Node
	})
	return foci, nil
}
