package render

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

// Markdown style names accepted in config
const (
	StyleDark       = "dark"
	StyleLight      = "light"
	StyleTokyoNight = "tokyonight"
	StyleDracula    = "dracula"
	StyleClinic     = "clinic"
	StyleNoTTY      = "notty"
	StyleASCII      = "ascii"
)

// StyleInfo describes a markdown style for the config listing
type StyleInfo struct {
	Name        string
	Description string
}

// AvailableStyles lists the built-in markdown styles
func AvailableStyles() []StyleInfo {
	return []StyleInfo{
		{Name: StyleDark, Description: "Dark theme (default)"},
		{Name: StyleLight, Description: "Light theme for bright terminals"},
		{Name: StyleTokyoNight, Description: "Tokyo Night color scheme"},
		{Name: StyleDracula, Description: "Dracula color scheme"},
		{Name: StyleClinic, Description: "High-contrast headings for department lists"},
		{Name: StyleNoTTY, Description: "Plain text (no styling)"},
		{Name: StyleASCII, Description: "ASCII-only output"},
	}
}

// StyleNames returns the built-in style names
func StyleNames() []string {
	list := AvailableStyles()
	names := make([]string, len(list))
	for i, s := range list {
		names[i] = s.Name
	}
	return names
}

// IsBuiltinStyle reports whether style names a built-in style rather than a file
func IsBuiltinStyle(style string) bool {
	_, ok := builtinStyle(style)
	return ok
}

func builtinStyle(name string) (ansi.StyleConfig, bool) {
	switch name {
	case StyleDark:
		return styles.DarkStyleConfig, true
	case StyleLight:
		return styles.LightStyleConfig, true
	case StyleTokyoNight:
		return styles.TokyoNightStyleConfig, true
	case StyleDracula:
		return styles.DraculaStyleConfig, true
	case StyleNoTTY:
		return styles.NoTTYStyleConfig, true
	case StyleASCII:
		return styles.ASCIIStyleConfig, true
	case StyleClinic:
		return clinicStyle(), true
	default:
		return ansi.StyleConfig{}, false
	}
}

// clinicStyle is the dark style with list markers and headings tuned for
// short department lists
func clinicStyle() ansi.StyleConfig {
	s := styles.DarkStyleConfig
	heading := "#7dcfff"
	bold := true
	s.H2.Prefix = "+ "
	s.H2.Color = &heading
	s.H2.Bold = &bold
	s.Item.BlockPrefix = "> "
	return s
}

// styleOption resolves a style name or a JSON style path
func styleOption(style string) glamour.TermRendererOption {
	if cfg, ok := builtinStyle(style); ok {
		return glamour.WithStyles(cfg)
	}
	if style == "" {
		return glamour.WithStyles(styles.DarkStyleConfig)
	}
	return glamour.WithStylePath(style)
}
