package hierarchy

type frame struct {
	node     int
	expanded bool
}

// CriticalPathLength returns the longest cumulative weight on any
// root-to-leaf chain of the forest, or 0 for an empty forest.
func (f *Forest[T]) CriticalPathLength(weight func(T) float64) float64 {
	length, _ := f.CriticalPath(weight)
	return length
}

// CriticalPath returns the longest root-to-leaf cumulative weight together
// with the ids on that chain, root first. Ties go to the earlier root or
// child in collection order.
//
// Each node is evaluated once in post-order: its value is its own weight plus
// the largest child value. Results are memoized by node id.
func (f *Forest[T]) CriticalPath(weight func(T) float64) (float64, []string) {
	memo := make(map[string]float64, len(f.nodes))
	best := make(map[string]int, len(f.nodes))

	stack := make([]frame, 0, len(f.roots))
	for _, r := range f.roots {
		stack = append(stack, frame{node: r})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &f.nodes[top.node]
		if _, done := memo[n.ID]; done {
			continue
		}

		if !top.expanded {
			stack = append(stack, frame{node: top.node, expanded: true})
			for _, c := range n.children {
				if _, done := memo[f.nodes[c].ID]; !done {
					stack = append(stack, frame{node: c})
				}
			}
			continue
		}

		var maxChild float64
		bestChild := -1
		for _, c := range n.children {
			if v := memo[f.nodes[c].ID]; bestChild < 0 || v > maxChild {
				maxChild = v
				bestChild = c
			}
		}
		memo[n.ID] = weight(n.Item) + maxChild
		best[n.ID] = bestChild
	}

	var length float64
	start := -1
	for _, r := range f.roots {
		if v := memo[f.nodes[r].ID]; start < 0 || v > length {
			length = v
			start = r
		}
	}
	if start < 0 {
		return 0, nil
	}

	var path []string
	for cur := start; cur >= 0; cur = best[f.nodes[cur].ID] {
		path = append(path, f.nodes[cur].ID)
	}
	return length, path
}
