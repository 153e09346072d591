package portfolio

import (
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
	"github.com/Ehphp/RequestEstimator-sub000/internal/hierarchy"
)

// Criteria selects requirements for the dashboard. Empty fields do not
// filter; non-empty fields are combined with AND. Tags match when the
// requirement carries any of them.
type Criteria struct {
	Priorities []domain.Priority
	Tags       []string
	States     []domain.RequirementState
	Search     string
}

// IsEmpty reports whether the criteria select everything.
func (c Criteria) IsEmpty() bool {
	return len(c.Priorities) == 0 && len(c.Tags) == 0 && len(c.States) == 0 &&
		strings.TrimSpace(c.Search) == ""
}

// Matches reports whether r satisfies every non-empty criterion.
func (c Criteria) Matches(r domain.Requirement) bool {
	if len(c.Priorities) > 0 && !contains(c.Priorities, r.Priority) {
		return false
	}
	if len(c.States) > 0 && !contains(c.States, r.State) {
		return false
	}
	if len(c.Tags) > 0 {
		hit := false
		for _, tag := range c.Tags {
			if r.HasTag(tag) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if q := strings.ToLower(strings.TrimSpace(c.Search)); q != "" {
		if !strings.Contains(strings.ToLower(r.Title), q) {
			return false
		}
	}
	return true
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Row is one line of the filtered dashboard list. Context rows are
// ancestors of a match kept so the hierarchy still reads correctly; they have
// Matched set to false.
type Row struct {
	Entry
	EstimateDays float64
	Depth        int
	ParentID     string
	HasChildren  bool
	Matched      bool
}

// NewForest builds the requirement forest for a set of entries.
func NewForest(entries []Entry) *hierarchy.Forest[Entry] {
	return hierarchy.Build(entries,
		func(e Entry) string { return e.Requirement.ID },
		func(e Entry) string { return e.Requirement.ParentIDOrEmpty() },
	)
}

// SortFields exposes an entry's ordering attributes.
func SortFields(e Entry) hierarchy.SortFields {
	return hierarchy.SortFields{
		CreatedAt:    e.Requirement.CreatedAt,
		Priority:     e.Requirement.Priority,
		Title:        e.Requirement.Title,
		EstimateDays: e.Days(),
	}
}

// Filter returns the rows of forest that match criteria, plus every
// ancestor of a match, in pre-order with siblings sorted by key.
func Filter(forest *hierarchy.Forest[Entry], criteria Criteria, key domain.SortKey) []Row {
	flat := forest.Flatten(hierarchy.Comparator(key, SortFields))

	matched := make(map[string]bool, len(flat))
	keep := make(map[string]bool, len(flat))
	for _, r := range flat {
		if !criteria.Matches(r.Item.Requirement) {
			continue
		}
		matched[r.ID] = true
		keep[r.ID] = true
		for _, a := range forest.Ancestors(r.ID) {
			if keep[a] {
				break
			}
			keep[a] = true
		}
	}

	var rows []Row
	for _, r := range flat {
		if !keep[r.ID] {
			continue
		}
		rows = append(rows, Row{
			Entry:        r.Item,
			EstimateDays: r.Item.Days(),
			Depth:        r.Depth,
			ParentID:     r.ParentID,
			HasChildren:  hasKeptChild(forest, r.ID, keep),
			Matched:      matched[r.ID],
		})
	}
	return rows
}

func hasKeptChild(forest *hierarchy.Forest[Entry], id string, keep map[string]bool) bool {
	for _, c := range forest.Children(id) {
		if keep[c] {
			return true
		}
	}
	return false
}

// MatchedEntries returns the entries of matched rows, skipping context rows.
func MatchedEntries(rows []Row) []Entry {
	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		if r.Matched {
			out = append(out, r.Entry)
		}
	}
	return out
}

// CriticalPathDays returns the longest chain of matched effort through the
// filtered rows at estimate precision. Context rows contribute no effort.
func CriticalPathDays(rows []Row) (float64, []string) {
	forest := hierarchy.Build(rows,
		func(r Row) string { return r.Requirement.ID },
		func(r Row) string { return r.ParentID },
	)
	length, path := forest.CriticalPath(func(r Row) float64 {
		if !r.Matched {
			return 0
		}
		return r.EstimateDays
	})
	return estimator.RoundHalfUp(length, 3), path
}
