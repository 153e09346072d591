package hierarchy

// Descendants returns every id below id in pre-order (children in
// collection order). The node itself is not included.
func (f *Forest[T]) Descendants(id string) []string {
	i, ok := f.index[id]
	if !ok {
		return nil
	}

	var out []string
	stack := pushReversed(nil, f.nodes[i].children)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, f.nodes[cur].ID)
		stack = pushReversed(stack, f.nodes[cur].children)
	}
	return out
}

// Ancestors returns the ids above id, nearest parent first.
func (f *Forest[T]) Ancestors(id string) []string {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	var out []string
	for p := f.nodes[i].parent; p >= 0; p = f.nodes[p].parent {
		out = append(out, f.nodes[p].ID)
	}
	return out
}

// WouldCreateCycle reports whether re-parenting nodeID under
// proposedParentID would close a loop: the two are equal, or the proposed
// parent already sits somewhere below nodeID. An empty proposedParentID
// (detach to root) never creates a cycle.
//
// The forest never rejects anything itself; callers must evaluate this
// before committing a parent change.
func (f *Forest[T]) WouldCreateCycle(nodeID, proposedParentID string) bool {
	if proposedParentID == "" {
		return false
	}
	if proposedParentID == nodeID {
		return true
	}
	// proposedParentID is a descendant of nodeID exactly when nodeID is one
	// of its ancestors; walking up is O(depth) instead of O(subtree).
	for _, a := range f.Ancestors(proposedParentID) {
		if a == nodeID {
			return true
		}
	}
	return false
}

func pushReversed(stack, idx []int) []int {
	for k := len(idx) - 1; k >= 0; k-- {
		stack = append(stack, idx[k])
	}
	return stack
}
