package formatter

import (
	"strings"
	"testing"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/catalog"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatCatalog(t *testing.T) {
	out := stripANSI(FormatCatalog(catalog.Default()))

	assert.Contains(t, out, "CATALOG 2025.1")
	assert.Contains(t, out, "DEV_BE")
	assert.Contains(t, out, "×1.3")
	assert.Contains(t, out, "R_SECURITY")
	assert.Contains(t, out, "≤ 10")
	assert.Contains(t, out, "35%")
	assert.Less(t, strings.Index(out, "backend-api"), strings.Index(out, "enterprise"))
	assert.Less(t, strings.Index(out, "enterprise"), strings.Index(out, "small-change"))
}

func TestFormatImportResult(t *testing.T) {
	res := &app.ImportResult{
		Requirements: []*domain.Requirement{
			{Seq: 1, Title: "Checkout", Priority: domain.PriorityHigh},
			{Seq: 2, Title: "Cart", Priority: domain.PriorityMed, Tags: []string{"web"}},
		},
		Estimates: 1,
		Warnings:  []string{"unknown risk R_GONE weighs 0"},
	}
	out := stripANSI(FormatImportResult(res))

	assert.Contains(t, out, "✔ Imported 2 requirements, 1 estimates")
	assert.Contains(t, out, "#2")
	assert.Contains(t, out, "Cart")
	assert.Contains(t, out, "! unknown risk R_GONE weighs 0")
}
