package tui

import "github.com/charmbracelet/lipgloss"

const (
	// MaxVisibleErrors is how many recent errors the live view shows
	MaxVisibleErrors = 3
	// DefaultPadding is the default padding for UI elements
	DefaultPadding = 2
	// KeyCtrlC is the key binding for cancellation
	KeyCtrlC = "ctrl+c"
)

func AccentColor() lipgloss.Color { return lipgloss.Color(accentColorCode) }

func DimColor() lipgloss.Color { return lipgloss.Color(dimColorCode) }

func ErrorColor() lipgloss.Color { return lipgloss.Color(errorColorCode) }

func NormalColor() lipgloss.Color { return lipgloss.Color(normalColorCode) }

// PrimaryColor returns the primary color for the UI
func PrimaryColor() lipgloss.Color { return lipgloss.Color(primaryColorCode) }

func SuccessColor() lipgloss.Color { return lipgloss.Color(successColorCode) }

// BoxStyle returns the style for boxes with padding
func BoxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor()).
		Padding(1, DefaultPadding)
}

// DimStyle returns the style for dimmed text
func DimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(DimColor())
}

// ErrorStyle returns the style for error messages
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(ErrorColor()).
		Bold(true)
}

// MatchStyle returns the style for matched paths
func MatchStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(NormalColor())
}

// SuccessStyle returns the style for success messages
func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(SuccessColor()).
		Bold(true)
}

// TitleStyle returns the style for titles
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(PrimaryColor()).
		MarginBottom(1)
}

// unexported constants.
const (
	accentColorCode  = "62"  // Blue
	dimColorCode     = "240" // Dark gray
	errorColorCode   = "196" // Red
	normalColorCode  = "252" // Light gray
	primaryColorCode = "205" // Pink/purple
	successColorCode = "42"  // Green
)
