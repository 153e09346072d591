package formatter

import (
	"fmt"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/estimator"
)

// FormatEstimate renders the full breakdown of one estimate against the
// catalog it was computed with.
func FormatEstimate(est *domain.Estimate, cat *domain.Catalog) string {
	var b strings.Builder

	b.WriteString(Header("Activities") + "\n")
	actRows := make([][]string, 0, len(est.ActivityCodes))
	for _, code := range est.ActivityCodes {
		name, base := Dim("unknown activity"), Dim("--")
		if a, ok := cat.Activity(code); ok {
			name, base = a.Name, FormatDays(a.BaseDays)
		}
		actRows = append(actRows, []string{code, name, base})
	}
	b.WriteString(RenderAlignedTable([]string{"CODE", "NAME", "BASE"}, actRows,
		[]Align{AlignLeft, AlignLeft, AlignRight}))

	b.WriteString("\n" + Header("Drivers") + "\n")
	drvRows := make([][]string, 0, len(domain.DriverDimensions))
	for _, dim := range domain.DriverDimensions {
		opt := est.Drivers.Option(dim)
		mult := Dim("--")
		if d, ok := cat.Driver(dim, opt); ok {
			mult = fmt.Sprintf("×%g", d.Multiplier)
		}
		drvRows = append(drvRows, []string{string(dim), opt, mult, Dim(SourceLabel(est.DriverSources[dim]))})
	}
	b.WriteString(RenderAlignedTable([]string{"DIMENSION", "OPTION", "MULT", "SOURCE"}, drvRows,
		[]Align{AlignLeft, AlignLeft, AlignRight}))

	if len(est.RiskIDs) > 0 {
		b.WriteString("\n" + Header("Risks") + "\n")
		riskRows := make([][]string, 0, len(est.RiskIDs))
		for _, id := range est.RiskIDs {
			name, weight := Dim("unknown risk"), "0"
			if r, ok := cat.Risk(id); ok {
				name, weight = r.Name, fmt.Sprintf("%g", r.Weight)
			}
			riskRows = append(riskRows, []string{id, name, weight})
		}
		b.WriteString(RenderAlignedTable([]string{"ID", "NAME", "WEIGHT"}, riskRows,
			[]Align{AlignLeft, AlignLeft, AlignRight}))
	}

	b.WriteString("\n" + Header("Result") + "\n")
	sums := [][]string{
		{"Activities", FormatDays(est.ActivitiesBaseDays)},
		{"Driver multiplier", fmt.Sprintf("×%g", est.DriverMultiplier)},
		{"Subtotal", FormatDays(est.SubtotalDays)},
		{"Risk score", fmt.Sprintf("%g", est.RiskScore)},
		{"Contingency", fmt.Sprintf("%s (%s)", FormatDays(est.ContingencyDays), FormatPct(estimator.RoundHalfUp(est.ContingencyPct*100, 2)))},
		{"Total", Bold(FormatDays(est.TotalDays))},
	}
	for _, s := range sums {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim(fmt.Sprintf("%-18s", s[0])), s[1]))
	}
	b.WriteString(Dim(fmt.Sprintf("\ncatalog %s · drivers %s · riskmap %s",
		est.CatalogVersion, est.DriversVersion, est.RiskmapVersion)))

	return RenderBox("Estimate · "+est.Scenario, b.String())
}

// FormatEstimateHistory lists a requirement's estimates in creation order;
// the last row is the one the dashboard uses.
func FormatEstimateHistory(req *domain.Requirement, history []*domain.Estimate) string {
	title := fmt.Sprintf("Estimates of %s %s", SeqLabel(req.Seq), req.Title)
	if len(history) == 0 {
		return RenderBox(title, Dim("No estimates yet."))
	}

	rows := make([][]string, 0, len(history))
	for i, e := range history {
		total := FormatDays(e.TotalDays)
		if i == len(history)-1 {
			total = Bold(total)
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			e.Scenario,
			e.CreatedOn.Format("2006-01-02 15:04"),
			fmt.Sprintf("%d", len(e.ActivityCodes)),
			FormatPct(estimator.RoundHalfUp(e.ContingencyPct*100, 2)),
			total,
		})
	}
	table := RenderAlignedTable(
		[]string{"ID", "SCENARIO", "CREATED", "ACTIVITIES", "CONTINGENCY", "TOTAL"}, rows,
		[]Align{AlignLeft, AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight})
	return RenderBox(title, table)
}
