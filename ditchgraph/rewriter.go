package ditchgraph

import (
	"github.com/grailbio/base/errors"
)

// findEdge returns the live edge connecting from (at its own recorded
// port) to to, if one exists.
func (g *Graph) findEdge(from, to Endpoint) (EdgeIndex, bool) {
	for _, eIdx := range g.EdgesAt(from.Node, from.Port) {
		e := g.Edge(eIdx)
		if e.OtherEnd(from) == to {
			return eIdx, true
		}
	}
	return -1, false
}

// carveOccupancy removes a proportional share of n's occupancy - based on
// its copy number before this rewrite - and returns the carved amount, for
// use as the new duplicate node's starting occupancy (spec.md §4.2
// Duplicate along path).
func carveOccupancy(n *Node) int {
	copyBefore := 1
	if n.CopyNumber != nil && *n.CopyNumber > 0 {
		copyBefore = *n.CopyNumber
	}
	share := n.Occupancy / copyBefore
	if share < 0 {
		share = 0
	}
	n.Occupancy -= share
	return share
}

func carveEdgeOccupancy(e *Edge) int {
	copyBefore := 1
	if e.CopyNumber != nil && *e.CopyNumber > 0 {
		copyBefore = *e.CopyNumber
	}
	share := e.Occupancy / copyBefore
	if share < 0 {
		share = 0
	}
	e.Occupancy -= share
	return share
}

// pruneZeroEdgesAt removes every edge incident to idx whose copy number has
// already reached zero, then compacts the node if that leaves it with no
// live edges (spec.md §4.2 "Prune exhausted").
func (g *Graph) pruneZeroEdgesAt(idx NodeIndex) {
	for _, port := range [...]Port{Head, Tail} {
		for _, eIdx := range g.EdgesAt(idx, port) {
			e := g.Edge(eIdx)
			if e.CopyNumber != nil && *e.CopyNumber <= 0 {
				g.PruneEdge(eIdx)
			}
		}
	}
	g.CompactNode(idx)
}

// RewriteFocus applies an accepted Focus to the graph, first rechecking
// every precondition in spec.md §4.2: the origin and terminus still carry
// copy number 1, the origin-side branch is still singular, the entry joint
// still branches, and nothing on the path has been touched by an earlier
// rewrite in the same round. A failed recheck is not an error - it is
// reported via the bool return so the caller silently skips the focus.
//
// touched accumulates every node index this rewrite affects; the caller is
// expected to reuse the same set across a round (spec.md §4.2 "Affected
// set").
func (g *Graph) RewriteFocus(f Focus, touched map[NodeIndex]bool) (bool, error) {
	origin := g.Node(f.Origin.Node)
	if origin.Deleted() || origin.CopyNumber == nil || *origin.CopyNumber != 1 {
		return false, nil
	}
	terminus := g.Node(f.Terminus.Node)
	if terminus.Deleted() || terminus.CopyNumber == nil || *terminus.CopyNumber != 1 {
		return false, nil
	}
	originEdges := g.EdgesAt(f.Origin.Node, f.Origin.Port)
	if len(originEdges) != 1 {
		return false, nil
	}
	if len(f.Path) == 0 {
		// No intermediate node: nothing to untangle by duplication.
		return false, nil
	}
	entry := f.Path[0]
	if len(g.EdgesAt(entry.Node, entry.Port)) < 2 {
		return false, nil // the branch this focus relied on has since collapsed
	}
	if touched[f.Origin.Node] || touched[f.Terminus.Node] {
		return false, nil
	}
	for _, ep := range f.Path {
		if touched[ep.Node] {
			return false, nil
		}
	}

	// oldPrev walks the pre-existing graph (it is where the edge to carve
	// actually lives); newPrev walks the chain of freshly created
	// duplicates (it is where the new edge should attach). The two
	// diverge after the first duplication: an old interior node's
	// surviving edges still connect it to its old neighbors, not to the
	// new duplicate standing in for it.
	oldPrev := f.Origin
	newPrev := f.Origin
	var newPath []NodeIndex
	for _, m := range f.Path {
		eIdx, ok := g.findEdge(oldPrev, m)
		if !ok {
			return false, errors.E(errors.Invalid, "ditchgraph: focus path edge missing between", oldPrev, "and", m)
		}
		e := g.Edge(eIdx)
		if e.CopyNumber == nil || *e.CopyNumber < 1 {
			return false, errors.E(errors.Invalid, "ditchgraph: focus path edge already exhausted at", oldPrev)
		}
		mNode := g.Node(m.Node)
		if mNode.CopyNumber == nil || *mNode.CopyNumber < 1 {
			return false, errors.E(errors.Invalid, "ditchgraph: focus path node already exhausted", m.Node)
		}

		edgeShare := carveEdgeOccupancy(e)
		*e.CopyNumber--

		nodeShare := carveOccupancy(mNode)
		*mNode.CopyNumber--

		one := 1
		mPrime := g.AddNode(mNode.Unit, mNode.Cluster, nodeShare, &one)
		oneCopy := 1
		if _, err := g.AddEdge(newPrev, Endpoint{Node: mPrime, Port: m.Port}, edgeShare, &oneCopy); err != nil {
			return false, err
		}

		newPath = append(newPath, mPrime)
		if *e.CopyNumber <= 0 {
			g.PruneEdge(eIdx)
		}
		g.pruneZeroEdgesAt(oldPrev.Node)
		g.pruneZeroEdgesAt(m.Node)

		oldPrev = Endpoint{Node: m.Node, Port: m.Port.Opposite()}
		newPrev = Endpoint{Node: mPrime, Port: m.Port.Opposite()}
	}

	// The terminus is not duplicated, but the final edge into it is
	// decremented exactly like every other edge along the path: a fresh
	// copy_number=1 edge carries the carved share from the last duplicate
	// directly onto the (unduplicated) terminus.
	finalEdgeIdx, ok := g.findEdge(oldPrev, f.Terminus)
	if !ok {
		return false, errors.E(errors.Invalid, "ditchgraph: focus path has no final edge into terminus", f.Terminus.Node)
	}
	finalEdge := g.Edge(finalEdgeIdx)
	if finalEdge.CopyNumber == nil || *finalEdge.CopyNumber < 1 {
		return false, errors.E(errors.Invalid, "ditchgraph: focus path's final edge already exhausted")
	}
	finalShare := carveEdgeOccupancy(finalEdge)
	*finalEdge.CopyNumber--
	oneFinal := 1
	if _, err := g.AddEdge(newPrev, f.Terminus, finalShare, &oneFinal); err != nil {
		return false, err
	}
	if *finalEdge.CopyNumber <= 0 {
		g.PruneEdge(finalEdgeIdx)
	}
	g.pruneZeroEdgesAt(oldPrev.Node)
	g.pruneZeroEdgesAt(f.Terminus.Node)

	touched[f.Origin.Node] = true
	touched[f.Terminus.Node] = true
	for _, ep := range f.Path {
		touched[ep.Node] = true
	}
	for _, idx := range newPath {
		touched[idx] = true
	}
	return true, nil
}
