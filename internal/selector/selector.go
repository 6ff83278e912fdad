// Package selector implements the Representative Selector (spec.md
// §4.7/§4.8): scores cluster members, picks the best, and for a
// video-best cluster recursively pulls in high-quality still captures
// of the same moment.
package selector

import (
	"sort"

	"github.com/HaiderBassem/mediadedupe/internal/cluster"
	"github.com/HaiderBassem/mediadedupe/internal/distance"
	"github.com/HaiderBassem/mediadedupe/pkg/api"
)

// Resolver maps a file identifier to its assembled FileInfo.
type Resolver func(id api.FileID) api.FileInfo

// Select implements spec.md §4.7's recursive representative selection
// over a cluster's members (size >= 2). It returns the ordered
// representative list, first entry is bestFile. Grounded on the
// teacher's pkg/engine/engine.go selectBestImage/calculateImageScore,
// generalized from a single best pick to the spec's multi-representative
// recursive case.
func Select(members []api.FileID, resolve Resolver, thresholds distance.ThresholdConfig) []api.FileID {
	if len(members) == 0 {
		return nil
	}

	ranked := rankByScore(members, resolve)
	best := ranked[0]
	bestInfo := resolve(best)

	if bestInfo.Media.IsImage() {
		return []api.FileID{best}
	}

	var candidates []api.FileID
	for _, id := range ranked[1:] {
		info := resolve(id)
		if !info.Media.IsImage() {
			continue
		}
		if info.Quality() < bestInfo.Quality() {
			continue
		}
		if bestInfo.Metadata.ImageDate != nil && info.Metadata.ImageDate == nil {
			continue
		}
		candidates = append(candidates, id)
	}

	representatives := []api.FileID{best}
	if len(candidates) == 0 {
		return representatives
	}

	representatives = append(representatives, subClusterRepresentatives(candidates, resolve, thresholds)...)
	return representatives
}

// rankByScore sorts members by descending score, tie-broken by stable
// input order (spec.md §4.8).
func rankByScore(members []api.FileID, resolve Resolver) []api.FileID {
	type scored struct {
		id    api.FileID
		score float64
		order int
	}
	items := make([]scored, len(members))
	for i, id := range members {
		items[i] = scored{id: id, score: Score(resolve(id)), order: i}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].order < items[j].order
	})
	out := make([]api.FileID, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

// subClusterRepresentatives recursively clusters candidates with the
// same distance function and returns the unique set of representatives
// chosen across the resulting sub-clusters.
func subClusterRepresentatives(candidates []api.FileID, resolve Resolver, thresholds distance.ThresholdConfig) []api.FileID {
	points := make([]cluster.Point, len(candidates))
	for i, id := range candidates {
		points[i] = cluster.Point{ID: id, Media: resolve(id).Media}
	}

	clusters := cluster.Run(points, cluster.Config{
		Thresholds:  thresholds,
		MinPts:      2,
		Concurrency: 1,
	})

	seen := make(map[api.FileID]bool)
	var out []api.FileID
	for _, c := range clusters {
		for _, rep := range Select(c.Members, resolve, thresholds) {
			if !seen[rep] {
				seen[rep] = true
				out = append(out, rep)
			}
		}
	}
	return out
}
