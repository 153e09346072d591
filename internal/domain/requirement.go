package domain

import (
	"fmt"
	"strings"
	"time"
)

type Requirement struct {
	ID          string
	Seq         int // sequential display ID
	ParentID    *string
	Title       string
	Description string
	Priority    Priority
	State       RequirementState
	Difficulty  Difficulty // optional; derived from estimate days when empty
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ParentIDOrEmpty returns the parent id, or "" for a root requirement.
func (r *Requirement) ParentIDOrEmpty() string {
	if r.ParentID == nil {
		return ""
	}
	return *r.ParentID
}

// HasTag reports whether the requirement carries tag (case-insensitive).
func (r *Requirement) HasTag(tag string) bool {
	for _, t := range r.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Validate checks the fields every stored requirement must carry.
func (r *Requirement) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if r.Priority.Rank() > 2 {
		return fmt.Errorf("priority %q must be one of High, Med, Low", r.Priority)
	}
	if !ValidStates[string(r.State)] {
		return fmt.Errorf("state %q must be one of proposed, selected, scheduled, done", r.State)
	}
	if r.Difficulty != "" && !ValidDifficulties[string(r.Difficulty)] {
		return fmt.Errorf("difficulty %q must be one of low, medium, high", r.Difficulty)
	}
	if r.ParentID != nil && *r.ParentID == r.ID {
		return fmt.Errorf("requirement cannot be its own parent")
	}
	return nil
}

// NormalizeTags trims, drops empty entries and removes case-insensitive
// duplicates while keeping first-seen order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// FirstNonBlank returns the first value that is not blank, trimmed, or ""
// when every value is blank.
func FirstNonBlank(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
