package formatter

import (
	"fmt"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/app"
)

// FormatImportResult summarizes an import.
func FormatImportResult(res *app.ImportResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d requirements, %d estimates\n",
		StyleGreen.Render("✔ Imported"), len(res.Requirements), res.Estimates)

	if len(res.Requirements) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(res.Requirements))
		for _, r := range res.Requirements {
			rows = append(rows, []string{SeqLabel(r.Seq), r.Title, PriorityPill(r.Priority), TagList(r.Tags)})
		}
		b.WriteString(RenderTable([]string{"ID", "TITLE", "PRIORITY", "TAGS"}, rows))
	}
	for _, w := range res.Warnings {
		b.WriteString(StyleYellow.Render("! ") + w + "\n")
	}
	return RenderBox("Import", strings.TrimRight(b.String(), "\n"))
}
