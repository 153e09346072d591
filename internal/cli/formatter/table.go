package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Align is the horizontal alignment of a table column.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// RenderTable renders a left-aligned table with a header separator line.
func RenderTable(headers []string, rows [][]string) string {
	return RenderAlignedTable(headers, rows, nil)
}

// RenderAlignedTable renders an aligned table with a header separator line.
// Columns are padded to the widest visible cell; align gives per-column
// alignment and may be shorter than headers (missing columns are left
// aligned). Numeric columns such as day counts read best right aligned.
func RenderAlignedTable(headers []string, rows [][]string, align []Align) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2
	alignOf := func(i int) Align {
		if i < len(align) {
			return align[i]
		}
		return AlignLeft
	}

	var b strings.Builder
	writeRow := func(cells []string, style func(string) string) {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			pad := max(widths[i]-lipgloss.Width(cell), 0)
			last := i == cols-1
			if alignOf(i) == AlignRight {
				b.WriteString(strings.Repeat(" ", pad))
				b.WriteString(style(cell))
			} else {
				b.WriteString(style(cell))
				if !last {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
			if !last {
				b.WriteString(strings.Repeat(" ", colGap))
			}
		}
		b.WriteString("\n")
	}

	writeRow(headers, func(s string) string { return StyleHeader.Render(s) })

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row, func(s string) string { return s })
	}
	return b.String()
}
