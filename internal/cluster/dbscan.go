// Package cluster implements the DBSCAN Clusterer (spec.md §4.6):
// density-based clustering over a VP-tree-indexed point set, with an
// adaptive per-pair acceptance threshold and a parallel-chunk
// execution strategy consolidated by connected components.
package cluster

import (
	"sort"
	"sync"

	"github.com/HaiderBassem/mediadedupe/internal/distance"
	"github.com/HaiderBassem/mediadedupe/internal/vptree"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Point is one indexed element: a file identifier plus the MediaInfo
// the distance function compares against.
type Point struct {
	ID    api.FileID
	Media api.MediaInfo
}

// Config carries the thresholds DBSCAN needs (spec.md §4.6).
type Config struct {
	Thresholds distance.ThresholdConfig
	MinPts     int
	// Concurrency is the number of worker-local chunks to partition
	// the point list into; 1 disables chunking.
	Concurrency int
}

// Run executes DBSCAN over points, grounded on the teacher's
// DBSCANClustering/rangeQuery/expandCluster (visited map + seed stack
// shape), replacing its O(n²) rangeQuery with a VP-tree and adding the
// parallel-chunk + connected-components merge spec.md §4.6 asks for.
func Run(points []Point, cfg Config) []api.Cluster {
	if len(points) == 0 {
		return nil
	}

	byID := make(map[api.FileID]Point, len(points))
	for _, p := range points {
		byID[p.ID] = p
	}

	eps := 1 - cfg.Thresholds.MinThreshold()
	dist := func(a, b api.FileID) float64 {
		d, err := distance.Distance(byID[a].Media, byID[b].Media, cfg.Thresholds)
		if err != nil {
			return 1
		}
		return d
	}

	ids := make([]api.FileID, len(points))
	for i, p := range points {
		ids[i] = p.ID
	}
	index := vptree.Build(ids, dist)

	acceptPair := func(a, b api.FileID) bool {
		sim, err := distance.Similarity(byID[a].Media, byID[b].Media, cfg.Thresholds)
		if err != nil {
			return false
		}
		return sim >= adaptiveThreshold(byID[a].Media, byID[b].Media, cfg.Thresholds)
	}

	chunks := chunk(ids, concurrencyOrDefault(cfg.Concurrency))

	var wg sync.WaitGroup
	workerClusters := make([][][]api.FileID, len(chunks))
	for w, chunkIDs := range chunks {
		wg.Add(1)
		go func(w int, chunkIDs []api.FileID) {
			defer wg.Done()
			workerClusters[w] = dbscanChunk(chunkIDs, index, eps, cfg.MinPts, acceptPair)
		}(w, chunkIDs)
	}
	wg.Wait()

	return mergeByConnectedComponents(workerClusters, points)
}

// adaptiveThreshold returns the §4.4 threshold appropriate to the pair
// (p,q)'s regime: image/image, image/video, or video/video.
func adaptiveThreshold(a, b api.MediaInfo, cfg distance.ThresholdConfig) float64 {
	switch {
	case a.IsImage() && b.IsImage():
		return cfg.ImageSimilarityThreshold
	case a.IsImage() != b.IsImage():
		return cfg.ImageVideoSimilarityThreshold
	default:
		return cfg.VideoSimilarityThreshold
	}
}

// dbscanChunk runs the teacher's visited-map + seed-stack DBSCAN shape
// over one chunk, using the shared VP-tree for range queries.
func dbscanChunk(chunkIDs []api.FileID, index *vptree.Index[api.FileID], eps float64, minPts int, acceptPair func(a, b api.FileID) bool) [][]api.FileID {
	visited := make(map[api.FileID]bool, len(chunkIDs))
	var clusters [][]api.FileID

	neighborsOf := func(p api.FileID) []api.FileID {
		candidates := index.RangeQuery(p, eps)
		var out []api.FileID
		for _, c := range candidates {
			if c != p && acceptPair(p, c) {
				out = append(out, c)
			}
		}
		return out
	}

	for _, p := range chunkIDs {
		if visited[p] {
			continue
		}
		visited[p] = true

		neighbors := neighborsOf(p)
		if len(neighbors) < minPts {
			clusters = append(clusters, []api.FileID{p})
			continue
		}

		members := []api.FileID{p}
		seeds := append([]api.FileID(nil), neighbors...)
		for i := 0; i < len(seeds); i++ {
			q := seeds[i]
			if visited[q] {
				continue
			}
			visited[q] = true
			members = append(members, q)

			qNeighbors := neighborsOf(q)
			if len(qNeighbors) >= minPts {
				seeds = append(seeds, qNeighbors...)
			}
		}
		clusters = append(clusters, members)
	}

	return clusters
}

// mergeByConnectedComponents consolidates the per-worker cluster lists
// into final clusters: two files are connected iff they appear together
// in any worker's cluster (spec.md §4.6, Open Question (a)). Ordering
// is made deterministic by sorting the final member lists.
func mergeByConnectedComponents(workerClusters [][][]api.FileID, points []Point) []api.Cluster {
	uf := newUnionFind()
	for _, p := range points {
		uf.add(p.ID)
	}
	for _, clusters := range workerClusters {
		for _, members := range clusters {
			for i := 1; i < len(members); i++ {
				uf.union(members[0], members[i])
			}
		}
	}

	groups := make(map[api.FileID][]api.FileID)
	for _, p := range points {
		root := uf.find(p.ID)
		groups[root] = append(groups[root], p.ID)
	}

	roots := make([]api.FileID, 0, len(groups))
	for root := range groups {
		roots = append(roots, root)
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })

	out := make([]api.Cluster, 0, len(groups))
	for _, root := range roots {
		members := groups[root]
		sort.Slice(members, func(i, j int) bool { return members[i] < members[j] })
		out = append(out, api.Cluster{Members: members})
	}
	return out
}

func chunk(ids []api.FileID, n int) [][]api.FileID {
	if n <= 1 || len(ids) <= n {
		return [][]api.FileID{ids}
	}
	chunkSize := (len(ids) + n - 1) / n
	var out [][]api.FileID
	for i := 0; i < len(ids); i += chunkSize {
		end := i + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		out = append(out, ids[i:end])
	}
	return out
}

func concurrencyOrDefault(c int) int {
	if c <= 0 {
		return 1
	}
	return c
}
