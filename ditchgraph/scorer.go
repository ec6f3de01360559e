package ditchgraph

import (
	"math"

	"github.com/grailbio/base/errors"
	"github.com/yosuzuki-lab/jtk-go/internal/numeric"
)

// epsilon is the per-base error rate the alt model's mixture is built
// from (spec.md §4.1 Scoring).
const epsilon = 0.05

type layerScore struct {
	score float64
	idx   int
}

// scoreLayer computes the null-vs-alt log-likelihood ratio for one layer of
// the focus traversal (spec.md §4.1 Scoring). counts holds each candidate's
// observed read support, occ its graph occupancy (used only by the null
// model), and copyOne whether the candidate is copy-number-1 and therefore
// eligible to be scored as a terminus. It returns the best-scoring eligible
// candidate's index, or ok=false if the layer has no eligible candidate.
func scoreLayer(counts, occ []int, copyOne []bool) (layerScore, bool, error) {
	n := len(counts)
	if n < 2 {
		return layerScore{}, false, nil
	}
	totalOcc := 0
	for _, o := range occ {
		totalOcc += o
	}
	if totalOcc <= 0 {
		return layerScore{}, false, nil
	}

	l0 := 0.0
	for i, c := range counts {
		p := float64(occ[i]) / float64(totalOcc)
		l0 += float64(c) * numeric.Log(p)
	}
	if math.IsNaN(l0) {
		return layerScore{}, false, errors.E(errors.Invalid, "non-finite null log-likelihood in focus scorer")
	}

	lenF := float64(n)
	logCorrect := numeric.Log((1-epsilon)*(1-epsilon) + epsilon/lenF)
	logError := numeric.Log((1-epsilon)*epsilon*(lenF-1)/lenF + (epsilon/lenF)*epsilon*(lenF-1)/lenF)

	best := layerScore{score: math.Inf(-1), idx: -1}
	for k := 0; k < n; k++ {
		if !copyOne[k] {
			continue
		}
		lk := 0.0
		for i, c := range counts {
			if i == k {
				lk += float64(c) * logCorrect
			} else {
				lk += float64(c) * logError
			}
		}
		score := lk - l0
		if math.IsNaN(score) {
			return layerScore{}, false, errors.E(errors.Invalid, "non-finite focus score at candidate", k)
		}
		if score > best.score {
			best = layerScore{score: score, idx: k}
		}
	}
	if best.idx == -1 {
		return layerScore{}, false, nil
	}
	return best, true, nil
}
