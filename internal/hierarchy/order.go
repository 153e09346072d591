package hierarchy

import (
	"sort"
	"strings"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
)

// Row is one line of a flattened forest.
type Row[T any] struct {
	ID          string
	ParentID    string
	Depth       int
	HasChildren bool
	Item        T
}

// Flatten renders the forest in pre-order. Roots are ordered among
// themselves and each sibling group is ordered independently with less; a
// nil less keeps collection order. Ordering never moves a node across
// levels.
func (f *Forest[T]) Flatten(less func(a, b T) bool) []Row[T] {
	out := make([]Row[T], 0, len(f.nodes))
	stack := pushReversed(nil, f.sorted(f.roots, less))
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.nodes[i]
		out = append(out, Row[T]{
			ID:          n.ID,
			ParentID:    n.ParentID,
			Depth:       n.Depth,
			HasChildren: len(n.children) > 0,
			Item:        n.Item,
		})
		stack = pushReversed(stack, f.sorted(n.children, less))
	}
	return out
}

func (f *Forest[T]) sorted(idx []int, less func(a, b T) bool) []int {
	if less == nil || len(idx) < 2 {
		return idx
	}
	out := append([]int(nil), idx...)
	sort.SliceStable(out, func(i, j int) bool {
		return less(f.nodes[out[i]].Item, f.nodes[out[j]].Item)
	})
	return out
}

// SortFields exposes the attributes sibling ordering can use.
type SortFields struct {
	CreatedAt    time.Time
	Priority     domain.Priority
	Title        string
	EstimateDays float64
}

// Comparator builds a sibling ordering for key. Equal keys keep their
// relative order because Flatten sorts stably. An unknown key returns nil.
func Comparator[T any](key domain.SortKey, fields func(T) SortFields) func(a, b T) bool {
	switch key {
	case domain.SortCreatedAsc:
		return func(a, b T) bool { return fields(a).CreatedAt.Before(fields(b).CreatedAt) }
	case domain.SortCreatedDesc:
		return func(a, b T) bool { return fields(a).CreatedAt.After(fields(b).CreatedAt) }
	case domain.SortPriority:
		return func(a, b T) bool { return fields(a).Priority.Rank() < fields(b).Priority.Rank() }
	case domain.SortTitle:
		return func(a, b T) bool {
			ta, tb := strings.ToLower(fields(a).Title), strings.ToLower(fields(b).Title)
			if ta != tb {
				return ta < tb
			}
			return fields(a).Title < fields(b).Title
		}
	case domain.SortEstimateAsc:
		return func(a, b T) bool { return fields(a).EstimateDays < fields(b).EstimateDays }
	case domain.SortEstimateDesc:
		return func(a, b T) bool { return fields(a).EstimateDays > fields(b).EstimateDays }
	}
	return nil
}
