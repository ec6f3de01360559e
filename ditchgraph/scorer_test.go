package ditchgraph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreLayerPrefersSupportedCandidate(t *testing.T) {
	// Two candidates at equal occupancy (so the null model is uniform);
	// nine reads support index 0, one supports index 1. Hand-derived
	// arithmetic: l0 = 10*ln(0.5) = -6.9314718; with len=2, eps=0.05,
	// logCorrect = ln(0.9025+0.025) = ln(0.9275), logError = ln(0.0475/2+
	// 0.00125/2) = ln(0.02375+0.000625) = ln(0.024375). lk(k=0) =
	// 9*logCorrect + 1*logError; score = lk - l0 = 2.5399 (approx).
	counts := []int{9, 1}
	occ := []int{10, 10}
	copyOne := []bool{true, true}

	got, ok, err := scoreLayer(counts, occ, copyOne)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, got.idx)

	l0 := 10 * math.Log(0.5)
	logCorrect := math.Log(0.9025 + 0.025)
	logError := math.Log(0.0475/2 + 0.00125/2)
	want := (9*logCorrect + 1*logError) - l0
	assert.InEpsilon(t, want, got.score, 1e-9)
	assert.Greater(t, got.score, DefaultConfig.RepeatResolutionThreshold)
}

func TestScoreLayerIneligibleWithoutCopyOneCandidate(t *testing.T) {
	counts := []int{5, 5}
	occ := []int{10, 10}
	copyOne := []bool{false, false}
	_, ok, err := scoreLayer(counts, occ, copyOne)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestScoreLayerRequiresTwoCandidates(t *testing.T) {
	_, ok, err := scoreLayer([]int{5}, []int{10}, []bool{true})
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestScoreLayerRejectsZeroOccupancy(t *testing.T) {
	_, ok, err := scoreLayer([]int{1, 1}, []int{0, 0}, []bool{true, true})
	assert.NoError(t, err)
	assert.False(t, ok)
}
