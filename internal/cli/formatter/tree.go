package formatter

import (
	"fmt"
	"strings"

	"github.com/Ehphp/RequestEstimator-sub000/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single node in a tree display.
type TreeItem struct {
	Title  string
	Seq    int // sequential display ID; 0 means don't display
	Level  int
	IsLast bool
	State  domain.RequirementState
	// Context marks an ancestor shown only to place a match in the tree.
	Context bool
	Detail  string
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// RenderTree renders a list of TreeItems as an indented tree using
// box-drawing characters for connectors. Done requirements get a green ✔,
// scheduled ones an amber ▶, context rows are dimmed, and detail badges are
// right-aligned.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	type lineInfo struct {
		content string
		badge   string
	}

	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	for idx, item := range items {
		var prefix string
		if item.Level > 0 {
			prefix = strings.Repeat(treePipe, item.Level-1)
			if item.IsLast {
				prefix += treeCorner
			} else {
				prefix += treeBranch
			}
		}

		title := item.Title
		if item.Seq > 0 {
			title = StyleDim.Render(fmt.Sprintf("#%d ", item.Seq)) + title
		}

		statusPrefix := ""
		switch {
		case item.Context:
			title = Dim(title)
		case item.State == domain.StateDone:
			statusPrefix = StyleGreen.Render("✔ ")
			title = Dim(title)
		case item.State == domain.StateScheduled:
			statusPrefix = StyleYellowBold.Render("▶ ")
			title = StyleYellowBold.Render(title)
		}

		content := prefix + statusPrefix + title
		lines[idx].content = content
		if item.Detail != "" {
			badgeStyle := StyleBlue
			if item.Context {
				badgeStyle = StyleDim
			}
			lines[idx].badge = badgeStyle.Render(fmt.Sprintf("[ %s ]", item.Detail))
		}
		if w := lipgloss.Width(content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge == "" {
			b.WriteString(li.content + "\n")
			continue
		}
		pad := max(maxContentWidth-lipgloss.Width(li.content), 0)
		b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
	}
	return b.String()
}
