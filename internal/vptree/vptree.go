// Package vptree implements a vantage-point tree (spec.md §4.5): a
// metric-space index supporting ε-range queries over an arbitrary
// distance function, used by the clusterer to bound DBSCAN's neighbor
// search below brute-force O(n²).
//
// No example in the retrieved pack implements a metric tree, so this
// package follows spec.md's own build/query pseudocode directly,
// built on the standard library only.
package vptree

import (
	"math/rand"
	"sort"
)

// DistanceFunc computes the distance between two points identified by
// T. Must be a metric (symmetric, triangle inequality) for the range
// query pruning rule to be sound.
type DistanceFunc[T comparable] func(a, b T) float64

type node[T comparable] struct {
	point     T
	threshold float64
	left      *node[T]
	right     *node[T]
}

// Index is a vantage-point tree over a frozen set of points.
type Index[T comparable] struct {
	root     *node[T]
	distance DistanceFunc[T]
}

// Build constructs an Index from points using dist as the metric. The
// input snapshot is frozen — subsequent mutation of the points slice
// does not affect the tree.
func Build[T comparable](points []T, dist DistanceFunc[T]) *Index[T] {
	pts := append([]T(nil), points...)
	idx := &Index[T]{distance: dist}
	idx.root = build(pts, dist)
	return idx
}

func build[T comparable](points []T, dist DistanceFunc[T]) *node[T] {
	if len(points) == 0 {
		return nil
	}

	pivotIdx := rand.Intn(len(points))
	pivot := points[pivotIdx]
	rest := make([]T, 0, len(points)-1)
	for i, p := range points {
		if i != pivotIdx {
			rest = append(rest, p)
		}
	}

	if len(rest) == 0 {
		return &node[T]{point: pivot}
	}

	dists := make([]float64, len(rest))
	for i, p := range rest {
		dists[i] = dist(pivot, p)
	}

	order := make([]int, len(rest))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool { return dists[order[i]] < dists[order[j]] })

	median := dists[order[len(order)/2]]

	var leftPts, rightPts []T
	for _, i := range order {
		if dists[i] < median {
			leftPts = append(leftPts, rest[i])
		} else {
			rightPts = append(rightPts, rest[i])
		}
	}

	return &node[T]{
		point:     pivot,
		threshold: median,
		left:      build(leftPts, dist),
		right:     build(rightPts, dist),
	}
}

// RangeQuery returns every indexed point p with distance(q, p) <= eps.
func (idx *Index[T]) RangeQuery(q T, eps float64) []T {
	var out []T
	idx.rangeQuery(idx.root, q, eps, &out)
	return out
}

func (idx *Index[T]) rangeQuery(n *node[T], q T, eps float64, out *[]T) {
	if n == nil {
		return
	}
	dp := idx.distance(q, n.point)
	if dp <= eps {
		*out = append(*out, n.point)
	}
	if n.left != nil && dp-eps <= n.threshold {
		idx.rangeQuery(n.left, q, eps, out)
	}
	if n.right != nil && dp+eps >= n.threshold {
		idx.rangeQuery(n.right, q, eps, out)
	}
}

// neighbor pairs a point with its distance to a query.
type neighbor[T comparable] struct {
	point T
	dist  float64
}

// KNN returns the k nearest indexed points to q, nearest first. This
// is a diagnostic helper (spec.md §4.5); the clustering pipeline only
// uses RangeQuery.
func (idx *Index[T]) KNN(q T, k int) []T {
	if k <= 0 {
		return nil
	}
	var all []neighbor[T]
	idx.collectAll(idx.root, q, &all)
	sort.Slice(all, func(i, j int) bool { return all[i].dist < all[j].dist })
	if k > len(all) {
		k = len(all)
	}
	out := make([]T, k)
	for i := 0; i < k; i++ {
		out[i] = all[i].point
	}
	return out
}

func (idx *Index[T]) collectAll(n *node[T], q T, out *[]neighbor[T]) {
	if n == nil {
		return
	}
	*out = append(*out, neighbor[T]{point: n.point, dist: idx.distance(q, n.point)})
	idx.collectAll(n.left, q, out)
	idx.collectAll(n.right, q, out)
}
