// Package hierarchy builds single-parent forests from flat parent-linked
// collections and answers traversal, cycle and critical-path queries on them.
//
// Nodes live in an arena indexed by id; every traversal uses an explicit
// stack so arbitrarily deep chains are safe.
package hierarchy

// Node is one entry of a Forest. ParentID is empty for roots, including
// items whose declared parent is absent from the collection.
type Node[T any] struct {
	ID       string
	ParentID string
	Item     T
	Depth    int

	parent   int
	children []int
}

// Forest is an immutable single-parent hierarchy. Rebuild it from scratch
// whenever the underlying collection changes.
type Forest[T any] struct {
	nodes []Node[T]
	index map[string]int
	roots []int

	duplicates []string
	cutLinks   []string
}

// Build turns a flat collection into a forest. idFn and parentFn read each
// item's id and declared parent id ("" for none).
//
// An item whose parent id is missing from the collection becomes a root.
// When the same id appears twice, the first occurrence wins. A parent chain
// that loops back on itself is cut at the node that closes the loop, which
// becomes a root; callers are expected to keep such data out in the first
// place (see WouldCreateCycle).
func Build[T any](items []T, idFn func(T) string, parentFn func(T) string) *Forest[T] {
	f := &Forest[T]{
		nodes: make([]Node[T], 0, len(items)),
		index: make(map[string]int, len(items)),
	}

	declared := make([]string, 0, len(items))
	for _, item := range items {
		id := idFn(item)
		if _, dup := f.index[id]; dup {
			f.duplicates = append(f.duplicates, id)
			continue
		}
		f.index[id] = len(f.nodes)
		f.nodes = append(f.nodes, Node[T]{ID: id, Item: item, parent: -1})
		declared = append(declared, parentFn(item))
	}

	for i := range f.nodes {
		if p, ok := f.index[declared[i]]; ok && declared[i] != "" {
			f.nodes[i].parent = p
		}
	}

	f.breakCycles()

	for i := range f.nodes {
		p := f.nodes[i].parent
		if p < 0 {
			f.roots = append(f.roots, i)
			continue
		}
		f.nodes[i].ParentID = f.nodes[p].ID
		f.nodes[p].children = append(f.nodes[p].children, i)
	}

	f.assignDepths()
	return f
}

// breakCycles walks each parent chain once. A chain that reaches a node
// already on the current walk is a loop; the last node of the walk loses its
// parent link.
func (f *Forest[T]) breakCycles() {
	const (
		unseen = iota
		onWalk
		settled
	)
	state := make([]int, len(f.nodes))
	var walk []int

	for start := range f.nodes {
		walk = walk[:0]
		cur := start
		for cur >= 0 && state[cur] == unseen {
			state[cur] = onWalk
			walk = append(walk, cur)
			cur = f.nodes[cur].parent
		}
		if cur >= 0 && state[cur] == onWalk {
			last := walk[len(walk)-1]
			f.nodes[last].parent = -1
			f.cutLinks = append(f.cutLinks, f.nodes[last].ID)
		}
		for _, i := range walk {
			state[i] = settled
		}
	}
}

func (f *Forest[T]) assignDepths() {
	stack := make([]int, 0, len(f.roots))
	stack = append(stack, f.roots...)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range f.nodes[i].children {
			f.nodes[c].Depth = f.nodes[i].Depth + 1
			stack = append(stack, c)
		}
	}
}

// Len returns the number of nodes in the forest.
func (f *Forest[T]) Len() int { return len(f.nodes) }

// Contains reports whether id is a node of the forest.
func (f *Forest[T]) Contains(id string) bool {
	_, ok := f.index[id]
	return ok
}

// Node returns the node for id.
func (f *Forest[T]) Node(id string) (Node[T], bool) {
	i, ok := f.index[id]
	if !ok {
		return Node[T]{}, false
	}
	return f.nodes[i], true
}

// Roots returns root ids in collection order.
func (f *Forest[T]) Roots() []string {
	return f.ids(f.roots)
}

// Children returns the direct children of id in collection order.
func (f *Forest[T]) Children(id string) []string {
	i, ok := f.index[id]
	if !ok {
		return nil
	}
	return f.ids(f.nodes[i].children)
}

// Duplicates lists ids that appeared more than once in the collection.
func (f *Forest[T]) Duplicates() []string { return f.duplicates }

// CutLinks lists ids whose parent link was dropped to break a loop.
func (f *Forest[T]) CutLinks() []string { return f.cutLinks }

func (f *Forest[T]) ids(idx []int) []string {
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = f.nodes[i].ID
	}
	return out
}
