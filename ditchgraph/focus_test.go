package ditchgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yosuzuki-lab/jtk-go/contig"
)

// buildTandemDupGraph constructs the E1 scenario from spec.md §8: a unique
// node A entering a copy-2 repeat R shared with a second unique flank A2 (so
// R's entry port has the required two siblings), R exiting to two unique
// termini B and C. Nine reads traverse A->R->B and one traverses A->R->C.
func buildTandemDupGraph(t *testing.T) (*Graph, NodeIndex, NodeIndex, NodeIndex, NodeIndex, NodeIndex, []*contig.EncodedRead) {
	t.Helper()
	g := New()
	a := g.AddNode(1, 0, 10, ip(1))
	a2 := g.AddNode(5, 0, 10, ip(1))
	r := g.AddNode(2, 0, 20, ip(2))
	b := g.AddNode(3, 0, 10, ip(1))
	c := g.AddNode(4, 0, 10, ip(1))

	_, err := g.AddEdge(Endpoint{a, Tail}, Endpoint{r, Head}, 10, ip(1))
	assert.NoError(t, err)
	_, err = g.AddEdge(Endpoint{a2, Tail}, Endpoint{r, Head}, 10, ip(1))
	assert.NoError(t, err)
	_, err = g.AddEdge(Endpoint{r, Tail}, Endpoint{b, Head}, 10, ip(1))
	assert.NoError(t, err)
	_, err = g.AddEdge(Endpoint{r, Tail}, Endpoint{c, Head}, 10, ip(1))
	assert.NoError(t, err)

	var reads []*contig.EncodedRead
	for i := 0; i < 9; i++ {
		reads = append(reads, &contig.EncodedRead{
			ID: "b-read",
			Nodes: []contig.EncodedNode{
				{Unit: 1, Cluster: 0, Forward: true},
				{Unit: 2, Cluster: 0, Forward: true},
				{Unit: 3, Cluster: 0, Forward: true},
			},
		})
	}
	reads = append(reads, &contig.EncodedRead{
		ID: "c-read",
		Nodes: []contig.EncodedNode{
			{Unit: 1, Cluster: 0, Forward: true},
			{Unit: 2, Cluster: 0, Forward: true},
			{Unit: 4, Cluster: 0, Forward: true},
		},
	})
	return g, a, a2, r, b, c, reads
}

func TestFindCandidatesRequiresTwoSiblingsAtFarPort(t *testing.T) {
	g, a, a2, _, _, _, _ := buildTandemDupGraph(t)
	cands := FindCandidates(g)
	assert.Contains(t, cands, Endpoint{a, Tail})
	assert.Contains(t, cands, Endpoint{a2, Tail})
	// B and C qualify too: each has copy number 1 and a single edge at its
	// head port, leading to R (copy number 2) at R's tail port, which
	// carries two edges (to B and to C).
	assert.Len(t, cands, 4)
}

func TestDetectFociTandemDup(t *testing.T) {
	g, _, _, r, b, _, reads := buildTandemDupGraph(t)
	a := NodeIndex(0)

	foci, err := DetectFoci(g, reads, DefaultConfig)
	assert.NoError(t, err)
	assert.NotEmpty(t, foci)

	var found *Focus
	for i := range foci {
		if foci[i].Origin == (Endpoint{a, Tail}) {
			found = &foci[i]
			break
		}
	}
	if assert.NotNil(t, found, "expected a focus originating from A") {
		assert.Equal(t, Endpoint{b, Head}, found.Terminus)
		assert.Equal(t, 2, found.Distance)
		assert.Equal(t, []Endpoint{{r, Head}}, found.Path)
		assert.Greater(t, found.LLR, DefaultConfig.RepeatResolutionThreshold)
		assert.Equal(t, []int{0, 10, 9}, found.Observations)
	}
}

func TestDetectFociNoBranchSkip(t *testing.T) {
	// E2: a linear A->B->C, all copy number 1. No candidate satisfies the
	// far-port copy->=2 requirement, so no foci are produced at all.
	g := New()
	a := g.AddNode(1, 0, 10, ip(1))
	b := g.AddNode(2, 0, 10, ip(1))
	c := g.AddNode(3, 0, 10, ip(1))
	_, err := g.AddEdge(Endpoint{a, Tail}, Endpoint{b, Head}, 10, ip(1))
	assert.NoError(t, err)
	_, err = g.AddEdge(Endpoint{b, Tail}, Endpoint{c, Head}, 10, ip(1))
	assert.NoError(t, err)

	assert.Empty(t, FindCandidates(g))

	reads := []*contig.EncodedRead{{
		ID: "r1",
		Nodes: []contig.EncodedNode{
			{Unit: 1, Cluster: 0, Forward: true},
			{Unit: 2, Cluster: 0, Forward: true},
			{Unit: 3, Cluster: 0, Forward: true},
		},
	}}
	foci, err := DetectFoci(g, reads, DefaultConfig)
	assert.NoError(t, err)
	assert.Empty(t, foci)
}
