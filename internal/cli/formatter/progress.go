package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 1 {
		return 1
	}
	return pct
}

func blocks(pct float64, width int) string {
	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}
	return strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
}

// RenderProgress renders a bar like [████░░░░]  45%.
// The bar is colored on the same thresholds as the confidence levels:
// green from 80%, yellow from 50%, red below.
func RenderProgress(pct float64, width int) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}

	style := StyleGreen
	if pct < 0.5 {
		style = StyleRed
	} else if pct < 0.8 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(blocks(pct, width)), pct*100)
}

// RenderShareBar renders an uncolored-frame bar for a share of a whole,
// e.g. one priority's slice of total effort. dim mutes the filled part.
func RenderShareBar(pct float64, width int, dim bool) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}
	bar := blocks(pct, width)
	if dim {
		return StyleDim.Render(bar)
	}
	return StyleBlue.Render(bar)
}
