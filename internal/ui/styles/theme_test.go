package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/store"
)

func TestProgressBar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		percent float64
		filled  int
	}{
		{0, 0},
		{50, 5},
		{99, 9},
		{100, 10},
		{150, 10},
		{-5, 0},
	}

	for _, tt := range tests {
		bar := ProgressBar(tt.percent, 10)
		assert.Equal(t, tt.filled, strings.Count(bar, "█"), "percent %v", tt.percent)
		assert.Equal(t, 10-tt.filled, strings.Count(bar, "░"), "percent %v", tt.percent)
	}

	assert.Empty(t, ProgressBar(50, 0))
}

func TestTagColorCycles(t *testing.T) {
	t.Parallel()

	assert.Equal(t, lipgloss.Color(store.Palette[0]), TagColor(0))
	assert.Equal(t, lipgloss.Color(store.Palette[1]), TagColor(len(store.Palette)+1))
}

func TestPriorityColor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Current.Error, PriorityColor(models.PriorityHigh))
	assert.Equal(t, Current.Warning, PriorityColor(models.PriorityMedium))
	assert.Equal(t, Current.Success, PriorityColor(models.PriorityLow))
}

func TestContentWidth(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 40, ContentWidth(40))
	assert.Equal(t, MaxWidth, ContentWidth(200))
}
