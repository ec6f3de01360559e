package polish

import "sort"

// selectTrainingWindows picks up to 3 window indices, in increasing
// window-index order, whose own draft length and read coverage both fall
// within 2/3..4/3 of windowSize and the cross-window coverage median
// respectively (spec.md §4.5 step 3).
func selectTrainingWindows(windowSize int, draftLens, coverage []int) []int {
	m := medianInt(coverage)
	lowLen, highLen := 2.0/3.0*float64(windowSize), 4.0/3.0*float64(windowSize)
	lowCov, highCov := 2.0/3.0*m, 4.0/3.0*m

	var picked []int
	for w := range draftLens {
		if len(picked) == 3 {
			break
		}
		dl, cv := float64(draftLens[w]), float64(coverage[w])
		if dl < lowLen || dl >= highLen {
			continue
		}
		if cv < lowCov || cv >= highCov {
			continue
		}
		picked = append(picked, w)
	}
	return picked
}

// medianInt mirrors ditchgraph.medianOccupancy's sort-then-midpoint median,
// generalized from node occupancy counts to whatever int slice a caller
// needs a median of.
func medianInt(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	sorted := append([]int(nil), xs...)
	sort.Ints(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return float64(sorted[mid-1]+sorted[mid]) / 2
	}
	return float64(sorted[mid])
}
