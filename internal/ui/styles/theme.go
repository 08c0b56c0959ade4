package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/todo/internal/models"
	"github.com/tgienger/todo/internal/store"
)

// Theme represents a color scheme for the application
type Theme struct {
	Background    lipgloss.Color
	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Primary lipgloss.Color

	// Semantic colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color
	Selection   lipgloss.Color
}

// TokyoNight is the default color theme. Its accents are the tag palette.
var TokyoNight = Theme{
	Background:    lipgloss.Color("#1a1b26"),
	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Primary: lipgloss.Color(store.Palette[0]),

	Success: lipgloss.Color(store.Palette[3]),
	Warning: lipgloss.Color(store.Palette[4]),
	Error:   lipgloss.Color(store.Palette[5]),
	Info:    lipgloss.Color(store.Palette[2]),

	Border:      lipgloss.Color("#3b4261"),
	BorderFocus: lipgloss.Color(store.Palette[0]),
	Selection:   lipgloss.Color("#33467c"),
}

// Current holds the active theme
var Current = TokyoNight

// MaxWidth is the maximum content width for the app (classic terminal width)
const MaxWidth = 80

// ContentWidth returns the actual content width to use (min of terminal width and MaxWidth)
func ContentWidth(terminalWidth int) int {
	return min(terminalWidth, MaxWidth)
}

// CenterView centers content horizontally if the terminal is wider than MaxWidth
func CenterView(content string, terminalWidth, terminalHeight int) string {
	if terminalWidth <= MaxWidth {
		return content
	}
	return lipgloss.Place(terminalWidth, terminalHeight,
		lipgloss.Center, lipgloss.Top,
		content,
	)
}

// Styles holds all the pre-computed styles for the UI
type Styles struct {
	Title      lipgloss.Style
	TitleMuted lipgloss.Style

	// Lists
	ListItem     lipgloss.Style
	ListSelected lipgloss.Style

	// Filter bar and popups
	FilterBar    lipgloss.Style
	FilterButton lipgloss.Style

	// Buttons
	Button        lipgloss.Style
	ButtonPrimary lipgloss.Style

	// Task item
	Tag           lipgloss.Style
	TaskCompleted lipgloss.Style
	TaskDue       lipgloss.Style
	TaskOverdue   lipgloss.Style

	// Inline validation message
	ErrorText lipgloss.Style

	// Statistics panel
	StatCard  lipgloss.Style
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Input fields
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style
}

// NewStyles creates styles based on the current theme
func NewStyles() *Styles {
	t := Current

	return &Styles{
		Title: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		TitleMuted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		ListItem: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Padding(0, 2),

		ListSelected: lipgloss.NewStyle().
			Foreground(t.Primary).
			Background(t.Selection).
			Padding(0, 2).
			Bold(true),

		FilterBar: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),

		FilterButton: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(0, 1),

		Button: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 2),

		ButtonPrimary: lipgloss.NewStyle().
			Foreground(t.Background).
			Background(t.Primary).
			Padding(0, 2).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Italic(true),

		TaskCompleted: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Strikethrough(true),

		TaskDue: lipgloss.NewStyle().
			Foreground(t.Info),

		TaskOverdue: lipgloss.NewStyle().
			Foreground(t.Error).
			Bold(true),

		ErrorText: lipgloss.NewStyle().
			Foreground(t.Error).
			Padding(0, 1),

		StatCard: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1).
			MarginRight(1),

		StatLabel: lipgloss.NewStyle().
			Foreground(t.ForegroundDim),

		StatValue: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),

		InputFocused: lipgloss.NewStyle().
			Foreground(t.Foreground).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(t.ForegroundDim).
			Padding(1, 2),

		HelpKey: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
	}
}

// TagColor returns the palette color the n-th created tag receives
func TagColor(n int) lipgloss.Color {
	return lipgloss.Color(store.Palette[n%len(store.Palette)])
}

// PriorityColor returns the color used to mark a priority
func PriorityColor(p models.Priority) lipgloss.Color {
	switch p {
	case models.PriorityHigh:
		return Current.Error
	case models.PriorityLow:
		return Current.Success
	default:
		return Current.Warning
	}
}

// ProgressBar renders a bar of width cells filled to percent (0-100)
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(percent / 100 * float64(width))
	filled = max(0, min(filled, width))
	bar := lipgloss.NewStyle().Foreground(Current.Success).Render(strings.Repeat("█", filled))
	rest := lipgloss.NewStyle().Foreground(Current.Border).Render(strings.Repeat("░", width-filled))
	return bar + rest
}
