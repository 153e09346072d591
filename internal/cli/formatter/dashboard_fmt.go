package formatter

import (
	"fmt"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
	"github.com/Ehphp/RequestEstimator-sub000/internal/scheduler"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

func labelLine(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", Dim(fmt.Sprintf("%-16s", label)), value)
}

// FormatDashboard renders the requirement tree followed by the KPI,
// projection, confidence and alert panels.
func FormatDashboard(resp *app.DashboardResponse) string {
	parts := []string{
		FormatRequirementTree(resp.Rows),
		lipgloss.JoinHorizontal(lipgloss.Top,
			FormatKPI(resp.KPI),
			" ",
			FormatProjection(resp),
		),
		FormatConfidence(resp.Confidence),
	}
	if len(resp.Alerts) > 0 {
		parts = append(parts, FormatAlerts(resp.Alerts))
	}
	if len(resp.Warnings) > 0 {
		var b strings.Builder
		for _, w := range resp.Warnings {
			b.WriteString(StyleYellow.Render("! ") + w + "\n")
		}
		parts = append(parts, RenderBox("Warnings", strings.TrimRight(b.String(), "\n")))
	}
	return strings.Join(parts, "\n")
}

// FormatKPI renders the portfolio summary numbers.
func FormatKPI(kpi portfolio.KPI) string {
	var b strings.Builder

	labelLine(&b, "Requirements", fmt.Sprintf("%d %s", kpi.Count, Dim(fmt.Sprintf("(%d estimated)", kpi.EstimatedCount))))
	labelLine(&b, "Total effort", Bold(FormatDays(kpi.TotalDays)))
	labelLine(&b, "Average", FormatDays(kpi.AvgDays))
	labelLine(&b, "Median", FormatDays(kpi.MedianDays))
	labelLine(&b, "P80", FormatDays(kpi.P80Days))
	labelLine(&b, "Std deviation", FormatDays(kpi.StdDevDays))

	b.WriteString("\n" + Header("Effort by priority") + "\n")
	for _, p := range domain.Priorities {
		pct := kpi.EffortByPriorityPct[p]
		fmt.Fprintf(&b, "%s %s %s %s\n",
			PriorityColor(p).Render(fmt.Sprintf("%-4s", p)),
			RenderShareBar(pct/100, 12, kpi.EffortByPriority[p] == 0),
			fmt.Sprintf("%4s", FormatPct(pct)),
			Dim(fmt.Sprintf("%s · %d items", FormatDays(kpi.EffortByPriority[p]), kpi.PriorityMix[p])),
		)
	}

	b.WriteString("\n" + Header("Difficulty") + "\n")
	fmt.Fprintf(&b, "low %d · medium %d · high %d\n",
		kpi.DifficultyMix[domain.DifficultyLow],
		kpi.DifficultyMix[domain.DifficultyMedium],
		kpi.DifficultyMix[domain.DifficultyHigh])

	if kpi.TopTagByEffort != "" {
		b.WriteString("\n")
		labelLine(&b, "Top tag", StylePurple.Render(kpi.TopTagByEffort))
	}
	return RenderBox("Portfolio", strings.TrimRight(b.String(), "\n"))
}

// FormatProjection renders the projected delivery and the critical path.
func FormatProjection(resp *app.DashboardResponse) string {
	p := resp.Projection
	var b strings.Builder

	labelLine(&b, "Finish date", Bold(CalendarDate(p.FinishDate)))
	labelLine(&b, "Workdays", fmt.Sprintf("%d", p.TotalWorkdays))
	labelLine(&b, "Effective effort", FormatDays(p.EffectiveEffortDays))
	labelLine(&b, "Developers", fmt.Sprintf("%d", p.Developers))
	labelLine(&b, "Policy", string(p.Policy))
	if v, ok := scheduler.Velocity(p.TotalDays, p.TotalWorkdays, p.Developers); ok {
		labelLine(&b, "Velocity", fmt.Sprintf("%.2f", v))
	}
	labelLine(&b, "Critical path", FormatDays(resp.CriticalPathDays))

	if len(resp.CriticalPath) > 0 {
		byID := make(map[string]domain.Requirement, len(resp.Rows))
		for _, r := range resp.Rows {
			byID[r.Requirement.ID] = r.Requirement
		}
		chain := make([]string, 0, len(resp.CriticalPath))
		for _, id := range resp.CriticalPath {
			if r, ok := byID[id]; ok {
				chain = append(chain, SeqLabel(r.Seq))
			}
		}
		b.WriteString(Dim("  "+strings.Join(chain, " → ")) + "\n")
	}
	return RenderBox("Projection", strings.TrimRight(b.String(), "\n"))
}

// FormatConfidence renders the confidence score with its breakdown.
func FormatConfidence(c scheduler.Confidence) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n\n", ConfidenceIndicator(c.Level), RenderProgress(float64(c.Score)/100, barWidth))

	subs := []struct {
		label string
		value float64
		max   float64
	}{
		{"Completeness", c.Breakdown.Completeness, scheduler.CompletenessWeight},
		{"Consistency", c.Breakdown.Consistency, scheduler.ConsistencyWeight},
		{"Volume", c.Breakdown.Volume, scheduler.VolumeWeight},
		{"Categorization", c.Breakdown.Categorization, scheduler.CategorizationWeight},
	}
	for _, s := range subs {
		labelLine(&b, s.label, fmt.Sprintf("%s %s",
			RenderShareBar(s.value/s.max, 10, false),
			Dim(fmt.Sprintf("%g / %g", s.value, s.max))))
	}
	return RenderBox("Confidence", strings.TrimRight(b.String(), "\n"))
}

// FormatAlerts renders deviation alerts most severe first, as received.
func FormatAlerts(alerts []scheduler.Alert) string {
	var b strings.Builder
	for i, a := range alerts {
		if i > 0 {
			b.WriteString("\n")
		}
		style := AlertColor(a.Type)
		fmt.Fprintf(&b, "%s %s\n", style.Render(a.Icon), style.Render(a.Message))
		if a.Tooltip != "" {
			b.WriteString("  " + Dim(a.Tooltip) + "\n")
		}
	}
	return RenderBox("Alerts", strings.TrimRight(b.String(), "\n"))
}
