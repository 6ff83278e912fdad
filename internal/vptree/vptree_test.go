package vptree

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func euclidean1D(a, b float64) float64 { return math.Abs(a - b) }

func TestRangeQueryZeroEpsilonReturnsExactPoint(t *testing.T) {
	points := make([]float64, 1000)
	for i := range points {
		points[i] = float64(i)
	}
	idx := Build(points, euclidean1D)

	for _, p := range points[:50] {
		result := idx.RangeQuery(p, 0)
		assert.Contains(t, result, p)
	}
}

func TestRangeQueryFindsAllPointsWithinEpsilon(t *testing.T) {
	points := []float64{0, 1, 2, 3, 10, 11, 12, 50}
	idx := Build(points, euclidean1D)

	result := idx.RangeQuery(1, 1.5)
	sort.Float64s(result)
	assert.Equal(t, []float64{0, 1, 2}, result)
}

func TestRangeQueryOnEmptyIndex(t *testing.T) {
	idx := Build([]float64{}, euclidean1D)
	assert.Empty(t, idx.RangeQuery(5, 10))
}

func TestKNNReturnsNearestFirst(t *testing.T) {
	points := []float64{0, 5, 10, 15, 20}
	idx := Build(points, euclidean1D)

	result := idx.KNN(9, 2)
	assert.Equal(t, []float64{10, 5}, result)
}

func TestKNNCapsAtAvailablePoints(t *testing.T) {
	points := []float64{1, 2}
	idx := Build(points, euclidean1D)
	result := idx.KNN(1, 10)
	assert.Len(t, result, 2)
}
