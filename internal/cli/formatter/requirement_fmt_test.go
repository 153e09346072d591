package formatter

import (
	"testing"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
	"github.com/stretchr/testify/assert"
)

func row(id string, seq, depth int, title string, days float64, matched bool) portfolio.Row {
	r := portfolio.Row{
		Entry: portfolio.Entry{Requirement: domain.Requirement{
			ID: id, Seq: seq, Title: title,
			Priority: domain.PriorityMed, State: domain.StateProposed,
		}},
		Depth:   depth,
		Matched: matched,
	}
	if days > 0 {
		r.Estimate = &domain.Estimate{TotalDays: days}
		r.EstimateDays = days
	}
	return r
}

func sampleRows() []portfolio.Row {
	return []portfolio.Row{
		row("a", 1, 0, "Checkout", 0, false),
		row("b", 2, 1, "Cart", 3.5, true),
		row("c", 4, 2, "Coupons", 1, true),
		row("d", 3, 1, "Payment", 4, true),
		row("e", 5, 0, "Login", 2, true),
	}
}

func TestTreeItems_MarksLastSiblings(t *testing.T) {
	items := TreeItems(sampleRows())

	last := make([]bool, len(items))
	for i, it := range items {
		last[i] = it.IsLast
	}
	assert.Equal(t, []bool{false, false, true, true, true}, last)
	assert.True(t, items[0].Context)
	assert.Empty(t, items[0].Detail)
	assert.Equal(t, "3.5d", items[1].Detail)
}

func TestFormatRequirementTree(t *testing.T) {
	out := stripANSI(FormatRequirementTree(sampleRows()))

	assert.Contains(t, out, "REQUIREMENT TREE")
	assert.Contains(t, out, "#1 Checkout")
	assert.Contains(t, out, "├─ #2 Cart")
	assert.Contains(t, out, "│  └─ #4 Coupons")
	assert.Contains(t, out, "└─ #3 Payment")
	assert.Contains(t, out, "[ 4d ]")
}

func TestFormatRequirementList(t *testing.T) {
	out := stripANSI(FormatRequirementList(sampleRows()))

	assert.Contains(t, out, "ESTIMATE")
	assert.Contains(t, out, "  Cart")
	assert.Contains(t, out, "3.5d")
	assert.Contains(t, out, "○ Proposed")
}

func TestFormatRequirementList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatRequirementList(nil)), "No requirements match.")
}

func TestFormatRequirement(t *testing.T) {
	parent := &domain.Requirement{ID: "p", Seq: 1, Title: "Checkout"}
	req := &domain.Requirement{
		ID: "11111111-2222", Seq: 2, Title: "Cart",
		Priority: domain.PriorityHigh, State: domain.StateSelected,
		Tags: []string{"web"}, Description: "Keep items between sessions.",
		CreatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	out := stripANSI(FormatRequirement(req, parent, &domain.Estimate{TotalDays: 6, Scenario: "base"}))
	assert.Contains(t, out, "#2 11111111")
	assert.Contains(t, out, "● High")
	assert.Contains(t, out, "#1 Checkout")
	assert.Contains(t, out, "6d (base)")
	assert.Contains(t, out, "Keep items between sessions.")

	bare := stripANSI(FormatRequirement(req, nil, nil))
	assert.Contains(t, bare, "not estimated")
	assert.NotContains(t, bare, "Parent")
}
