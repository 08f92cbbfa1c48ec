package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/sentimoji/internal/sentiment"
)

// Theme represents a color theme for the TUI
type Theme struct {
	Name string

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Accent    lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Progress  lipgloss.AdaptiveColor

	// Tiers holds one color per star, worst first
	Tiers [5]lipgloss.AdaptiveColor
}

func adaptive(c [2]string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
}

// buildTheme creates a theme with the given light/dark color pairs
func buildTheme(name string, primary, secondary, accent, errorColor, border, muted, progress [2]string, tiers [5][2]string) Theme {
	t := Theme{
		Name:      name,
		Primary:   adaptive(primary),
		Secondary: adaptive(secondary),
		Accent:    adaptive(accent),
		Error:     adaptive(errorColor),
		Border:    adaptive(border),
		Muted:     adaptive(muted),
		Progress:  adaptive(progress),
	}
	for i, c := range tiers {
		t.Tiers[i] = adaptive(c)
	}
	return t
}

// Available themes
var (
	DefaultTheme = buildTheme("default",
		[2]string{"#1E40AF", "#3B82F6"}, [2]string{"#6B7280", "#9CA3AF"}, [2]string{"#7C3AED", "#A855F7"},
		[2]string{"#DC2626", "#EF4444"}, [2]string{"#D1D5DB", "#374151"}, [2]string{"#6B7280", "#9CA3AF"},
		[2]string{"#059669", "#10B981"},
		[5][2]string{
			{"#B91C1C", "#F87171"}, {"#C2410C", "#FB923C"}, {"#A16207", "#FACC15"},
			{"#15803D", "#4ADE80"}, {"#047857", "#34D399"},
		})

	HighContrastTheme = buildTheme("high-contrast",
		[2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"}, [2]string{"#000080", "#8080FF"},
		[2]string{"#CC0000", "#FF4444"}, [2]string{"#000000", "#FFFFFF"}, [2]string{"#666666", "#BBBBBB"},
		[2]string{"#006600", "#00FF00"},
		[5][2]string{
			{"#CC0000", "#FF4444"}, {"#CC6600", "#FFAA00"}, {"#000000", "#FFFFFF"},
			{"#006600", "#00FF00"}, {"#0000CC", "#4499FF"},
		})

	MinimalTheme = buildTheme("minimal",
		[2]string{"#2D3748", "#E2E8F0"}, [2]string{"#718096", "#A0AEC0"}, [2]string{"#4A5568", "#CBD5E0"},
		[2]string{"#C53030", "#FC8181"}, [2]string{"#E2E8F0", "#2D3748"}, [2]string{"#A0AEC0", "#718096"},
		[2]string{"#2F855A", "#68D391"},
		[5][2]string{
			{"#4A5568", "#CBD5E0"}, {"#4A5568", "#CBD5E0"}, {"#4A5568", "#CBD5E0"},
			{"#4A5568", "#CBD5E0"}, {"#4A5568", "#CBD5E0"},
		})
)

// Current active theme
var currentTheme = DefaultTheme

// GetTheme returns the current active theme
func GetTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme
func SetTheme(theme *Theme) {
	currentTheme = *theme
}

// SetThemeByName sets the theme by name
func SetThemeByName(name string) bool {
	switch name {
	case "", "default":
		SetTheme(&DefaultTheme)
		return true
	case "high-contrast":
		SetTheme(&HighContrastTheme)
		return true
	case "minimal":
		SetTheme(&MinimalTheme)
		return true
	default:
		return false
	}
}

// IsColorDisabled checks if colors should be disabled
func IsColorDisabled() bool {
	return os.Getenv("NO_COLOR") != ""
}

// GetAvailableThemes returns list of available theme names
func GetAvailableThemes() []string {
	return []string{"default", "high-contrast", "minimal"}
}

// TierColor returns the color for t; unknown uses the muted color
func (t *Theme) TierColor(tier sentiment.Tier) lipgloss.AdaptiveColor {
	if s := tier.Stars(); s > 0 {
		return t.Tiers[s-1]
	}
	return t.Muted
}

// Styles contains all the styled components
type Styles struct {
	Theme Theme

	Title   lipgloss.Style
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Input   lipgloss.Style
	Button  lipgloss.Style
	Busy    lipgloss.Style
	Bubble  lipgloss.Style
	Legend  lipgloss.Style
	Spinner lipgloss.Style
}

// GetStyles builds the styles of the current theme
func GetStyles() *Styles {
	theme := GetTheme()

	return &Styles{
		Theme: theme,

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			Padding(0, 1),

		Header: lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Error: lipgloss.NewStyle().
			Foreground(theme.Error).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1).
			Width(48),

		Button: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(theme.Primary).
			Bold(true).
			Padding(0, 2),

		Busy: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Border).
			Padding(0, 2),

		Bubble: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			Padding(0, 2),

		Legend: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Progress).
			Bold(true),
	}
}
