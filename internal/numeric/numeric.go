// Package numeric holds the small numerical-hygiene helpers the scorer and
// the HMM trainer both need (spec.md §9): a clamped log and a
// max-subtraction log-sum-exp.
package numeric

import "math"

// Small is the floor every logarithm argument is clamped to before taking
// math.Log, so that a probability of exactly zero never produces -Inf.
const Small = 1e-5

// Log returns math.Log(max(x, Small)).
func Log(x float64) float64 {
	if x < Small {
		x = Small
	}
	return math.Log(x)
}

// LogSumExp combines log-domain terms via the max-subtraction identity,
// avoiding overflow/underflow when terms span a wide dynamic range.
func LogSumExp(terms ...float64) float64 {
	if len(terms) == 0 {
		return math.Inf(-1)
	}
	max := terms[0]
	for _, t := range terms[1:] {
		if t > max {
			max = t
		}
	}
	if math.IsInf(max, -1) {
		return max
	}
	sum := 0.0
	for _, t := range terms {
		sum += math.Exp(t - max)
	}
	return max + math.Log(sum)
}

// Finite reports whether x is neither NaN nor +/-Inf. DetectFoci uses it to
// reject a focus whose LLR is not finite (spec.md §7, NumericEdge class).
func Finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
