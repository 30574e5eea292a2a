package render

import (
	"github.com/charmbracelet/lipgloss"
)

// TUITheme is the colour palette of the chat interface
type TUITheme struct {
	Name        string
	Description string

	Background lipgloss.Color
	Surface    lipgloss.Color
	Border     lipgloss.Color

	// Message bubbles
	User lipgloss.Color
	Bot  lipgloss.Color

	// Keyword spans inside translated text
	Keyword lipgloss.Color

	// Departments, links and status
	Accent  lipgloss.Color
	Warning lipgloss.Color
	Alert   lipgloss.Color

	Text    lipgloss.Color
	TextDim lipgloss.Color
}

var (
	// TokyoNightTheme is the default palette
	TokyoNightTheme = TUITheme{
		Name:        "tokyonight",
		Description: "Tokyo Night - dark with blue accents",

		Background: lipgloss.Color("#1a1b26"),
		Surface:    lipgloss.Color("#24283b"),
		Border:     lipgloss.Color("#414868"),

		User:    lipgloss.Color("#7aa2f7"),
		Bot:     lipgloss.Color("#9ece6a"),
		Keyword: lipgloss.Color("#ff9e64"),

		Accent:  lipgloss.Color("#bb9af7"),
		Warning: lipgloss.Color("#e0af68"),
		Alert:   lipgloss.Color("#f7768e"),

		Text:    lipgloss.Color("#c0caf5"),
		TextDim: lipgloss.Color("#565f89"),
	}

	// CatppuccinMochaTheme is a warm pastel palette
	CatppuccinMochaTheme = TUITheme{
		Name:        "catppuccin",
		Description: "Catppuccin Mocha - warm pastels",

		Background: lipgloss.Color("#1e1e2e"),
		Surface:    lipgloss.Color("#313244"),
		Border:     lipgloss.Color("#45475a"),

		User:    lipgloss.Color("#89b4fa"),
		Bot:     lipgloss.Color("#a6e3a1"),
		Keyword: lipgloss.Color("#fab387"),

		Accent:  lipgloss.Color("#cba6f7"),
		Warning: lipgloss.Color("#f9e2af"),
		Alert:   lipgloss.Color("#f38ba8"),

		Text:    lipgloss.Color("#cdd6f4"),
		TextDim: lipgloss.Color("#6c7086"),
	}

	// WardTheme is a light palette for bright clinic screens
	WardTheme = TUITheme{
		Name:        "ward",
		Description: "Ward - light, high contrast",

		Background: lipgloss.Color("#fafafa"),
		Surface:    lipgloss.Color("#eceff1"),
		Border:     lipgloss.Color("#90a4ae"),

		User:    lipgloss.Color("#1565c0"),
		Bot:     lipgloss.Color("#2e7d32"),
		Keyword: lipgloss.Color("#d84315"),

		Accent:  lipgloss.Color("#6a1b9a"),
		Warning: lipgloss.Color("#ef6c00"),
		Alert:   lipgloss.Color("#c62828"),

		Text:    lipgloss.Color("#212121"),
		TextDim: lipgloss.Color("#757575"),
	}
)

var currentTUITheme = TokyoNightTheme

// GetTUITheme returns the active palette
func GetTUITheme() TUITheme {
	return currentTUITheme
}

// SetTUITheme activates a palette by name
func SetTUITheme(name string) bool {
	theme, ok := GetTUIThemeByName(name)
	if ok {
		currentTUITheme = theme
	}
	return ok
}

// GetTUIThemeByName looks up a palette
func GetTUIThemeByName(name string) (TUITheme, bool) {
	for _, t := range AvailableTUIThemes() {
		if t.Name == name {
			return t, true
		}
	}
	return TUITheme{}, false
}

// AvailableTUIThemes lists the built-in palettes
func AvailableTUIThemes() []TUITheme {
	return []TUITheme{TokyoNightTheme, CatppuccinMochaTheme, WardTheme}
}

// TUIThemeNames returns the palette names
func TUIThemeNames() []string {
	themes := AvailableTUIThemes()
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}
