package align

import (
	"math"
	"math/rand"
)

// SelectChains picks among candidate chains by weighted random sampling -
// weight ∝ exp(score − max_score) - removes every remaining candidate that
// overlaps the chosen chain by at least half of its own read span, and
// repeats against what is left, until no candidates remain (spec.md §4.3).
// This is what turns "alternative chains" (possible placements, including
// ones that largely duplicate each other over repeats) into the 0–k
// disjoint placements actually reported for a read.
func SelectChains(candidates []Chain, rng *rand.Rand) []Chain {
	remaining := append([]Chain(nil), candidates...)
	var selected []Chain
	for len(remaining) > 0 {
		chosen := sampleOne(remaining, rng)
		selected = append(selected, remaining[chosen])
		cs, ce := remaining[chosen].ReadSpan()
		var kept []Chain
		for i, cand := range remaining {
			if i == chosen {
				continue
			}
			if overlapFraction(cand, cs, ce) < 0.5 {
				kept = append(kept, cand)
			}
		}
		remaining = kept
	}
	return selected
}

func sampleOne(chains []Chain, rng *rand.Rand) int {
	maxScore := chains[0].Score
	for _, c := range chains[1:] {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}
	weights := make([]float64, len(chains))
	var total float64
	for i, c := range chains {
		weights[i] = math.Exp(c.Score - maxScore)
		total += weights[i]
	}
	r := rng.Float64() * total
	var cum float64
	for i, w := range weights {
		cum += w
		if r < cum {
			return i
		}
	}
	return len(chains) - 1
}

// overlapFraction is the fraction of cand's own read span that lies inside
// [chosenStart, chosenEnd).
func overlapFraction(cand Chain, chosenStart, chosenEnd int) float64 {
	cs, ce := cand.ReadSpan()
	start := max(cs, chosenStart)
	end := min(ce, chosenEnd)
	overlap := end - start
	if overlap <= 0 {
		return 0
	}
	span := ce - cs
	if span <= 0 {
		return 0
	}
	return float64(overlap) / float64(span)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
