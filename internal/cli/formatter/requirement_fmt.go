package formatter

import (
	"fmt"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/Ehphp/RequestEstimator-sub000/internal/portfolio"
)

func estimateCell(r portfolio.Row) string {
	if r.Estimate == nil {
		return Dim("--")
	}
	return FormatDays(r.EstimateDays)
}

// FormatRequirementList renders dashboard rows as a table. Titles are
// indented by depth; context rows are dimmed.
func FormatRequirementList(rows []portfolio.Row) string {
	if len(rows) == 0 {
		return RenderBox("Requirements", Dim("No requirements match."))
	}

	headers := []string{"ID", "TITLE", "PRIORITY", "STATE", "TAGS", "ESTIMATE"}
	align := []Align{AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignLeft, AlignRight}
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		req := r.Requirement
		title := strings.Repeat("  ", r.Depth) + req.Title
		if !r.Matched {
			out = append(out, []string{
				Dim(SeqLabel(req.Seq)), Dim(title), Dim(string(req.Priority)),
				Dim(string(req.State)), Dim(strings.Join(req.Tags, ", ")), Dim("--"),
			})
			continue
		}
		out = append(out, []string{
			SeqLabel(req.Seq),
			Bold(title),
			PriorityPill(req.Priority),
			StatePill(req.State),
			TagList(req.Tags),
			estimateCell(r),
		})
	}
	return RenderBox("Requirements", RenderAlignedTable(headers, out, align))
}

// TreeItems converts pre-order rows into tree items, working out which rows
// close their sibling group.
func TreeItems(rows []portfolio.Row) []TreeItem {
	items := make([]TreeItem, len(rows))
	for i, r := range rows {
		last := true
		for _, next := range rows[i+1:] {
			if next.Depth <= r.Depth {
				last = next.Depth < r.Depth
				break
			}
		}

		detail := ""
		if r.Estimate != nil && r.Matched {
			detail = FormatDays(r.EstimateDays)
		}
		items[i] = TreeItem{
			Title:   r.Requirement.Title,
			Seq:     r.Requirement.Seq,
			Level:   r.Depth,
			IsLast:  last,
			State:   r.Requirement.State,
			Context: !r.Matched,
			Detail:  detail,
		}
	}
	return items
}

// FormatRequirementTree renders dashboard rows as a hierarchy.
func FormatRequirementTree(rows []portfolio.Row) string {
	if len(rows) == 0 {
		return RenderBox("Requirement tree", Dim("No requirements match."))
	}
	return RenderBox("Requirement tree", strings.TrimRight(RenderTree(TreeItems(rows)), "\n"))
}

// FormatRequirement renders a single requirement card with its latest
// estimate, if any.
func FormatRequirement(r *domain.Requirement, parent *domain.Requirement, latest *domain.Estimate) string {
	var b strings.Builder
	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", Dim(fmt.Sprintf("%-11s", label)), value)
	}

	line("ID", fmt.Sprintf("%s %s", SeqLabel(r.Seq), TruncID(r.ID)))
	line("Priority", PriorityPill(r.Priority))
	line("State", StatePill(r.State))
	if r.Difficulty != "" {
		line("Difficulty", string(r.Difficulty))
	}
	line("Tags", TagList(r.Tags))
	if parent != nil {
		line("Parent", fmt.Sprintf("%s %s", SeqLabel(parent.Seq), parent.Title))
	}
	line("Created", HumanDate(r.CreatedAt))
	if latest != nil {
		line("Estimate", fmt.Sprintf("%s %s", Bold(FormatDays(latest.TotalDays)), Dim("("+latest.Scenario+")")))
	} else {
		line("Estimate", Dim("not estimated"))
	}
	if d := strings.TrimSpace(r.Description); d != "" {
		b.WriteString("\n" + d + "\n")
	}

	return RenderBox(r.Title, strings.TrimRight(b.String(), "\n"))
}
