package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
)

// FormatCatalog renders the reference tables an estimate is computed against.
func FormatCatalog(cat *domain.Catalog) string {
	var b strings.Builder

	b.WriteString(Header("Activities") + "\n")
	acts := make([][]string, 0, len(cat.Activities))
	for _, a := range cat.Activities {
		acts = append(acts, []string{a.Code, a.Name, Dim(a.DriverGroup), FormatDays(a.BaseDays)})
	}
	b.WriteString(RenderAlignedTable([]string{"CODE", "NAME", "GROUP", "BASE"}, acts,
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight}))

	b.WriteString("\n" + Header("Drivers") + "\n")
	drv := make([][]string, 0, len(cat.Drivers))
	for _, dim := range domain.DriverDimensions {
		for _, d := range cat.DriverOptions(dim) {
			drv = append(drv, []string{string(dim), d.Option, fmt.Sprintf("×%g", d.Multiplier)})
		}
	}
	b.WriteString(RenderAlignedTable([]string{"DIMENSION", "OPTION", "MULT"}, drv,
		[]Align{AlignLeft, AlignLeft, AlignRight}))

	b.WriteString("\n" + Header("Risks") + "\n")
	risks := make([][]string, 0, len(cat.Risks))
	for _, r := range cat.Risks {
		risks = append(risks, []string{r.ID, r.Name, fmt.Sprintf("%g", r.Weight)})
	}
	b.WriteString(RenderAlignedTable([]string{"ID", "NAME", "WEIGHT"}, risks,
		[]Align{AlignLeft, AlignLeft, AlignRight}))

	b.WriteString("\n" + Header("Contingency") + "\n")
	for _, band := range cat.Bands {
		upTo := "above"
		if band.UpTo != nil {
			upTo = fmt.Sprintf("≤ %g", *band.UpTo)
		}
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("risk %-8s", upTo)), FormatPct(estimator.RoundHalfUp(band.Pct*100, 2)))
	}

	if len(cat.Presets) > 0 {
		b.WriteString("\n" + Header("Presets") + "\n")
		names := make([]string, 0, len(cat.Presets))
		for n := range cat.Presets {
			names = append(names, n)
		}
		sort.Strings(names)
		rows := make([][]string, 0, len(names))
		for _, n := range names {
			p := cat.Presets[n]
			rows = append(rows, []string{Bold(n), p.Complexity, p.Environments, p.Reuse, p.Stakeholders})
		}
		b.WriteString(RenderTable([]string{"PRESET", "COMPLEXITY", "ENVIRONMENTS", "REUSE", "STAKEHOLDERS"}, rows))
	}

	title := fmt.Sprintf("Catalog %s", cat.CatalogVersion)
	return RenderBox(title, strings.TrimRight(b.String(), "\n"))
}
