package ditchgraph

import (
	"sort"

	"github.com/grailbio/base/log"
	"github.com/yosuzuki-lab/jtk-go/contig"
)

// Peel runs the repeat-resolution loop to convergence: each round detects
// every qualifying Focus, applies them in descending-LLR order (skipping
// any whose precondition recheck fails or whose path has already been
// touched this round), and stops once a full pass applies zero rewrites
// (spec.md §4.2 Convergence). It returns the total number of successful
// rewrites across all rounds.
func Peel(g *Graph, reads []*contig.EncodedRead, cfg Config) (int, error) {
	total := 0
	for round := 0; ; round++ {
		foci, err := DetectFoci(g, reads, cfg)
		if err != nil {
			return total, err
		}
		touched := make(map[NodeIndex]bool)
		applied := 0
		for _, f := range foci {
			ok, err := g.RewriteFocus(f, touched)
			if err != nil {
				return total, err
			}
			if ok {
				applied++
			}
		}
		total += applied
		if log.At(log.Debug) {
			log.Debug.Printf("ditchgraph: peel round %d: %d/%d foci applied", round, applied, len(foci))
		}
		if applied == 0 {
			return total, nil
		}
	}
}

// EstimateCopyNumbers assigns an initial copy number to every node from its
// occupancy, via a fixed-iteration coverage EM pass: estimate the haploid
// coverage as the median occupancy, round each node's occupancy/coverage
// ratio to its copy number, then re-estimate coverage as the mean
// occupancy over nodes assigned copy number 1, and repeat. This
// supplements spec.md §4.1's precondition ("a ditch graph with copy numbers
// assigned") for callers that have not already run their own multiplicity
// estimation; Peel itself does not require it.
func EstimateCopyNumbers(g *Graph, iterations int) {
	if iterations <= 0 {
		iterations = 5
	}
	coverage := medianOccupancy(g)
	if coverage <= 0 {
		return
	}
	for it := 0; it < iterations; it++ {
		var uniqueSum, uniqueCount int
		for i := 0; i < g.NumNodes(); i++ {
			n := g.Node(NodeIndex(i))
			if n.Deleted() {
				continue
			}
			cn := roundRatio(n.Occupancy, coverage)
			n.CopyNumber = &cn
			if cn == 1 {
				uniqueSum += n.Occupancy
				uniqueCount++
			}
		}
		if uniqueCount > 0 {
			coverage = float64(uniqueSum) / float64(uniqueCount)
		}
	}
}

func roundRatio(occupancy int, coverage float64) int {
	if coverage <= 0 {
		return 0
	}
	ratio := float64(occupancy)/coverage + 0.5
	if ratio < 0 {
		return 0
	}
	return int(ratio)
}

func medianOccupancy(g *Graph) float64 {
	var occ []int
	for i := 0; i < g.NumNodes(); i++ {
		n := g.Node(NodeIndex(i))
		if n.Deleted() {
			continue
		}
		occ = append(occ, n.Occupancy)
	}
	if len(occ) == 0 {
		return 0
	}
	sort.Ints(occ)
	mid := len(occ) / 2
	if len(occ)%2 == 0 {
		return float64(occ[mid-1]+occ[mid]) / 2
	}
	return float64(occ[mid])
}
