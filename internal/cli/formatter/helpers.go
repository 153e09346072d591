package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate returns a human-friendly absolute date string relative to now.
func HumanDate(t time.Time) string {
	return HumanDateFrom(t, time.Now())
}

// HumanDateFrom is HumanDate against a fixed reference time.
func HumanDateFrom(t, now time.Time) string {
	y1, m1, d1 := now.Date()
	y2, m2, d2 := t.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y2 == y3 && m2 == m3 && d2 == d3 {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// CalendarDate renders a projected date as "Thu 13 Mar 2025".
func CalendarDate(t time.Time) string {
	return t.Format("Mon 2 Jan 2006")
}

// FormatDays renders a day count without trailing zeros, e.g. "8.5d".
func FormatDays(days float64) string {
	return strconv.FormatFloat(days, 'f', -1, 64) + "d"
}

// FormatPct renders a percentage that is already on a 0-100 scale.
func FormatPct(pct float64) string {
	return strconv.FormatFloat(pct, 'f', -1, 64) + "%"
}

// SeqLabel renders a display id like "#12".
func SeqLabel(seq int) string {
	if seq <= 0 {
		return "--"
	}
	return fmt.Sprintf("#%d", seq)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// PriorityPill returns a colored priority label.
func PriorityPill(p domain.Priority) string {
	if p == "" {
		return StyleDim.Render("--")
	}
	return PriorityColor(p).Render("● " + string(p))
}

// StatePill returns a colored indicator for a requirement state.
func StatePill(s domain.RequirementState) string {
	switch s {
	case domain.StateProposed:
		return StyleBlue.Render("○ Proposed")
	case domain.StateSelected:
		return StylePurple.Render("◆ Selected")
	case domain.StateScheduled:
		return StyleYellow.Render("▶ Scheduled")
	case domain.StateDone:
		return StyleDim.Render("✔ Done")
	default:
		return StyleDim.Render(string(s))
	}
}

// TagList renders tags as a comma-separated purple list.
func TagList(tags []string) string {
	if len(tags) == 0 {
		return StyleDim.Render("--")
	}
	return StylePurple.Render(strings.Join(tags, ", "))
}

// SourceLabel describes where a pre-filled driver came from.
func SourceLabel(s domain.DefaultSource) string {
	switch s.Kind {
	case "":
		return "chosen"
	case domain.SourceStickyEstimator:
		return "previous estimate"
	case domain.SourcePreset:
		return "preset " + s.Preset
	case domain.SourceSystemDefault:
		return "catalog baseline"
	case domain.SourceListDefault:
		return "list default"
	case domain.SourceKeywordAnalysis:
		return "keyword analysis"
	default:
		return string(s.Kind)
	}
}
