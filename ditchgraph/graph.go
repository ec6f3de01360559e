package ditchgraph

import (
	"encoding/binary"

	farm "github.com/dgryski/go-farm"
	"github.com/grailbio/base/errors"
)

// Port names the two ends of a node. Every edge attaches to a specific
// port on each of its two endpoints.
type Port uint8

const (
	Head Port = iota
	Tail
)

// Opposite returns the other port of the same node.
func (p Port) Opposite() Port {
	if p == Head {
		return Tail
	}
	return Head
}

func (p Port) String() string {
	if p == Head {
		return "head"
	}
	return "tail"
}

// NodeIndex addresses a Node in a Graph's arena. Indices are stable across
// a peeling round; a deleted node's index is never reused.
type NodeIndex int

// EdgeIndex addresses an Edge in a Graph's arena.
type EdgeIndex int

// Endpoint is one side of an edge: a node and the port the edge attaches
// to on that node.
type Endpoint struct {
	Node NodeIndex
	Port Port
}

// Node is one unit/cluster occurrence in the ditch graph. Its domain label
// (Unit, Cluster) is immutable once created; Occupancy and CopyNumber are
// mutated by the rewriter. A node is logically deleted once its edge list
// is empty and its occupancy has been fully carved away.
type Node struct {
	Unit, Cluster int
	Occupancy     int
	CopyNumber    *int
	edges         []EdgeIndex
	deleted       bool
}

// Edges lists the (still-live) edges incident to this node, on either
// port.
func (n *Node) Edges() []EdgeIndex { return n.edges }

// Deleted reports whether this node has been logically removed: no
// incident edges and no occupancy left to carve.
func (n *Node) Deleted() bool { return n.deleted }

// Edge connects two (node, port) endpoints. Occupancy and CopyNumber are
// evidence counts the rewriter decrements as it peels repeats apart.
type Edge struct {
	From, To   Endpoint
	Occupancy  int
	CopyNumber *int
	pruned     bool
}

// Pruned reports whether this edge has been logically removed (its copy
// number reached zero and it was cleaned up).
func (e *Edge) Pruned() bool { return e.pruned }

// OtherEnd returns the endpoint on the opposite side of ep.
func (e *Edge) OtherEnd(ep Endpoint) Endpoint {
	if e.From == ep {
		return e.To
	}
	return e.From
}

// Graph is the arena-backed bidirected ditch graph: nodes and edges are
// addressed by dense integer index, never by pointer, so the structure's
// natural cycles (an edge references both its endpoints; both endpoints
// list the edge) cost nothing to build or walk.
type Graph struct {
	nodes   []Node
	edges   []Edge
	edgeKey map[uint64][]EdgeIndex // canonical unordered-endpoint-pair hash -> edges sharing it
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{edgeKey: make(map[uint64][]EdgeIndex)}
}

// AddNode allocates a new node with the given domain label and occupancy.
// copyNumber may be nil if not yet estimated.
func (g *Graph) AddNode(unit, cluster, occupancy int, copyNumber *int) NodeIndex {
	g.nodes = append(g.nodes, Node{Unit: unit, Cluster: cluster, Occupancy: occupancy, CopyNumber: copyNumber})
	return NodeIndex(len(g.nodes) - 1)
}

// Node returns a pointer into the arena for idx. The pointer is valid
// until the next AddNode call (append may reallocate the backing array);
// callers that need to retain a reference across mutations should re-fetch
// by index.
func (g *Graph) Node(idx NodeIndex) *Node { return &g.nodes[idx] }

// Edge returns a pointer into the arena for idx, subject to the same
// re-fetch caveat as Node.
func (g *Graph) Edge(idx EdgeIndex) *Edge { return &g.edges[idx] }

// NumNodes is the arena length, including tombstoned nodes.
func (g *Graph) NumNodes() int { return len(g.nodes) }

// NumEdges is the arena length, including pruned edges.
func (g *Graph) NumEdges() int { return len(g.edges) }

func canonicalKey(a, b Endpoint) uint64 {
	// Order the two endpoints so the key doesn't depend on which side of
	// the edge the caller names first.
	if a.Node > b.Node || (a.Node == b.Node && a.Port > b.Port) {
		a, b = b, a
	}
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(a.Node))
	buf[4] = byte(a.Port)
	binary.LittleEndian.PutUint32(buf[8:12], uint32(b.Node))
	buf[12] = byte(b.Port)
	return farm.Hash64(buf[:])
}

// resolve validates that ep names a live node; used before mutating the
// graph so that InvariantViolation (spec.md §7) is caught at the earliest
// point rather than silently corrupting the arena.
func (g *Graph) resolve(ep Endpoint) error {
	if int(ep.Node) < 0 || int(ep.Node) >= len(g.nodes) {
		return errors.E(errors.Invalid, "edge endpoint references out-of-range node", ep.Node)
	}
	if g.nodes[ep.Node].deleted {
		return errors.E(errors.Invalid, "edge endpoint references deleted node", ep.Node)
	}
	return nil
}

// AddEdge inserts an edge between from and to, merging with any existing
// edge sharing the same canonical (unordered) endpoint pair: occupancy and
// copy number of the duplicate are added to the existing edge rather than
// creating a second parallel edge (spec.md §3: "duplicates are merged on
// insertion").
func (g *Graph) AddEdge(from, to Endpoint, occupancy int, copyNumber *int) (EdgeIndex, error) {
	if err := g.resolve(from); err != nil {
		return -1, err
	}
	if err := g.resolve(to); err != nil {
		return -1, err
	}
	key := canonicalKey(from, to)
	for _, idx := range g.edgeKey[key] {
		e := &g.edges[idx]
		if e.pruned {
			continue
		}
		if sameEndpoints(*e, from, to) {
			e.Occupancy += occupancy
			e.CopyNumber = mergeCopyNumber(e.CopyNumber, copyNumber)
			return idx, nil
		}
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Occupancy: occupancy, CopyNumber: copyNumber})
	idx := EdgeIndex(len(g.edges) - 1)
	g.edgeKey[key] = append(g.edgeKey[key], idx)
	g.nodes[from.Node].edges = append(g.nodes[from.Node].edges, idx)
	if to != from {
		g.nodes[to.Node].edges = append(g.nodes[to.Node].edges, idx)
	}
	return idx, nil
}

func sameEndpoints(e Edge, a, b Endpoint) bool {
	return (e.From == a && e.To == b) || (e.From == b && e.To == a)
}

func mergeCopyNumber(a, b *int) *int {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	sum := *a + *b
	return &sum
}

// EdgesAt returns the live edges incident to (idx, port).
func (g *Graph) EdgesAt(idx NodeIndex, port Port) []EdgeIndex {
	var out []EdgeIndex
	for _, eIdx := range g.nodes[idx].edges {
		e := &g.edges[eIdx]
		if e.pruned {
			continue
		}
		if (e.From == Endpoint{Node: idx, Port: port}) || (e.To == Endpoint{Node: idx, Port: port}) {
			out = append(out, eIdx)
		}
	}
	return out
}

// PruneEdge marks an edge as logically removed and detaches it from both
// endpoint node's edge lists. It does not by itself delete either node;
// call CompactNode to check whether a node has become empty.
func (g *Graph) PruneEdge(idx EdgeIndex) {
	e := &g.edges[idx]
	if e.pruned {
		return
	}
	e.pruned = true
	g.detach(e.From.Node, idx)
	if e.To.Node != e.From.Node {
		g.detach(e.To.Node, idx)
	}
}

func (g *Graph) detach(nodeIdx NodeIndex, edgeIdx EdgeIndex) {
	edges := g.nodes[nodeIdx].edges
	for i, e := range edges {
		if e == edgeIdx {
			g.nodes[nodeIdx].edges = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}

// CompactNode logically deletes idx if it now has zero live edges and zero
// occupancy left (spec.md §3: "A node is deleted when it has no edges and
// zero effective occupancy").
func (g *Graph) CompactNode(idx NodeIndex) {
	n := &g.nodes[idx]
	if n.deleted {
		return
	}
	if len(n.edges) == 0 && n.Occupancy <= 0 {
		n.deleted = true
	}
}

// SumCopyNumbers totals CopyNumber over all live nodes and all live edges.
func (g *Graph) SumCopyNumbers() (nodes, edges int) {
	for i := range g.nodes {
		if g.nodes[i].deleted || g.nodes[i].CopyNumber == nil {
			continue
		}
		nodes += *g.nodes[i].CopyNumber
	}
	for i := range g.edges {
		if g.edges[i].pruned || g.edges[i].CopyNumber == nil {
			continue
		}
		edges += *g.edges[i].CopyNumber
	}
	return nodes, edges
}

// ExcessCopyNumbers totals max(CopyNumber-1, 0) over all live nodes and all
// live edges: the "copy-number excess" spec.md §4.2's Failure mode refers
// to, which is what the rewriter guarantees strictly decreases on every
// successful rewrite (spec.md §8, property 1) - a freshly duplicated node or
// edge is assigned copy_number=1 and so contributes zero excess, while the
// node/edge it was carved from loses exactly one unit of it.
func (g *Graph) ExcessCopyNumbers() (nodes, edges int) {
	for i := range g.nodes {
		if g.nodes[i].deleted || g.nodes[i].CopyNumber == nil {
			continue
		}
		if cn := *g.nodes[i].CopyNumber; cn > 1 {
			nodes += cn - 1
		}
	}
	for i := range g.edges {
		if g.edges[i].pruned || g.edges[i].CopyNumber == nil {
			continue
		}
		if cn := *g.edges[i].CopyNumber; cn > 1 {
			edges += cn - 1
		}
	}
	return nodes, edges
}
