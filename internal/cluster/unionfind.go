package cluster

import "github.com/HaiderBassem/mediadedupe/pkg/api"

// unionFind implements the connected-components merge spec.md §4.6
// asks for when consolidating parallel DBSCAN workers' cluster edges.
type unionFind struct {
	parent map[api.FileID]api.FileID
}

func newUnionFind() *unionFind {
	return &unionFind{parent: make(map[api.FileID]api.FileID)}
}

func (u *unionFind) add(id api.FileID) {
	if _, ok := u.parent[id]; !ok {
		u.parent[id] = id
	}
}

func (u *unionFind) find(id api.FileID) api.FileID {
	root := id
	for u.parent[root] != root {
		root = u.parent[root]
	}
	// Path compression.
	for u.parent[id] != root {
		next := u.parent[id]
		u.parent[id] = root
		id = next
	}
	return root
}

func (u *unionFind) union(a, b api.FileID) {
	u.add(a)
	u.add(b)
	ra, rb := u.find(a), u.find(b)
	if ra != rb {
		u.parent[ra] = rb
	}
}
