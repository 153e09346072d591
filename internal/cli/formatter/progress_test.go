package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name    string
		pct     float64
		width   int
		want    string
		filled  int
	}{
		{"empty", 0, 10, "  0%", 0},
		{"half", 0.5, 10, " 50%", 5},
		{"full", 1, 10, "100%", 10},
		{"over clamps", 1.7, 4, "100%", 4},
		{"negative clamps", -0.2, 4, "  0%", 0},
		{"tiny width", 0.5, 1, " 50%", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(RenderProgress(tt.pct, tt.width))
			assert.True(t, strings.HasSuffix(got, tt.want), got)
			assert.Equal(t, tt.filled, strings.Count(got, filledBlock))
		})
	}
}

func TestRenderShareBar(t *testing.T) {
	got := stripANSI(RenderShareBar(0.25, 8, false))
	assert.Equal(t, "██░░░░░░", got)
	assert.NotContains(t, got, "%")

	dimmed := stripANSI(RenderShareBar(1.5, 4, true))
	assert.Equal(t, "████", dimmed)
}
