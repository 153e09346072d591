package hierarchy

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// FindCycles reports every group of ids whose declared parent links form a
// loop in a raw, unvalidated collection. Each group is sorted by id and the
// groups are ordered by their first id. Build cuts such loops silently; this
// is the diagnostic view used by import validation and integrity checks.
func FindCycles[T any](items []T, idFn func(T) string, parentFn func(T) string) [][]string {
	ids := make(map[string]int64, len(items))
	names := make([]string, 0, len(items))
	for _, item := range items {
		id := idFn(item)
		if _, ok := ids[id]; ok {
			continue
		}
		ids[id] = int64(len(names))
		names = append(names, id)
	}

	g := simple.NewDirectedGraph()
	for _, n := range ids {
		g.AddNode(simple.Node(n))
	}

	var cycles [][]string
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		id := idFn(item)
		if seen[id] {
			continue
		}
		seen[id] = true

		parent := parentFn(item)
		if parent == "" {
			continue
		}
		if parent == id {
			// simple graphs reject self edges.
			cycles = append(cycles, []string{id})
			continue
		}
		if p, ok := ids[parent]; ok {
			g.SetEdge(g.NewEdge(simple.Node(ids[id]), simple.Node(p)))
		}
	}

	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		group := make([]string, len(scc))
		for k, n := range scc {
			group[k] = names[n.ID()]
		}
		sort.Strings(group)
		cycles = append(cycles, group)
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}
