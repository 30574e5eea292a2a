// Package tui provides the terminal chat interface for medilingua.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/render"
)

// Colours, refreshed from the active theme
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorUser    lipgloss.Color
	colorBot     lipgloss.Color
	colorKeyword lipgloss.Color

	colorAccent  lipgloss.Color
	colorWarning lipgloss.Color
	colorAlert   lipgloss.Color

	colorText    lipgloss.Color
	colorTextDim lipgloss.Color
)

// Styles, rebuilt when the theme changes
var (
	headerStyle   lipgloss.Style
	titleStyle    lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userBubbleStyle lipgloss.Style
	userLabelStyle  lipgloss.Style
	botBubbleStyle  lipgloss.Style
	botLabelStyle   lipgloss.Style
	selectedMarker  lipgloss.Style

	keywordStyle         lipgloss.Style
	keywordSelectedStyle lipgloss.Style

	departmentsStyle  lipgloss.Style
	visualAidStyle    lipgloss.Style
	linkStyle         lipgloss.Style
	speakingStyle     lipgloss.Style
	listeningStyle    lipgloss.Style
	inputPanelStyle   lipgloss.Style
	inputLabelStyle   lipgloss.Style
	loadingStyle      lipgloss.Style
	noticeStyle       lipgloss.Style
	errorStyle        lipgloss.Style
	modalStyle        lipgloss.Style
	alertModalStyle   lipgloss.Style
	modalTitleStyle   lipgloss.Style
	statusBarStyle    lipgloss.Style
	statusKeyStyle    lipgloss.Style
	statusDescStyle   lipgloss.Style
	menuItemStyle     lipgloss.Style
	menuSelectedStyle lipgloss.Style
	menuCursorStyle   lipgloss.Style
	timestampStyle    lipgloss.Style
)

func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles from the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorUser = theme.User
	colorBot = theme.Bot
	colorKeyword = theme.Keyword
	colorAccent = theme.Accent
	colorWarning = theme.Warning
	colorAlert = theme.Alert
	colorText = theme.Text
	colorTextDim = theme.TextDim

	rebuildStyles()
}

func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
		Foreground(colorBot).
		Bold(true)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorText)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorUser).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true).
		MarginLeft(4)

	botBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBot).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	botLabelStyle = lipgloss.NewStyle().
		Foreground(colorBot).
		Bold(true)

	selectedMarker = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	keywordStyle = lipgloss.NewStyle().
		Foreground(colorKeyword).
		Underline(true)

	keywordSelectedStyle = lipgloss.NewStyle().
		Foreground(colorSurface).
		Background(colorKeyword).
		Bold(true)

	departmentsStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(colorAccent).
		PaddingLeft(1).
		MarginLeft(1)

	visualAidStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	linkStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Underline(true)

	speakingStyle = lipgloss.NewStyle().
		Foreground(colorWarning).
		Bold(true)

	listeningStyle = lipgloss.NewStyle().
		Foreground(colorAlert).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorUser).
		Bold(true).
		MarginRight(1)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	noticeStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorAlert).
		Bold(true)

	modalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(1, 2)

	alertModalStyle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(colorAlert).
		Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true).
		MarginBottom(1)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	menuItemStyle = lipgloss.NewStyle().
		Foreground(colorText)

	menuSelectedStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	menuCursorStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	timestampStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)
}

// FormatError renders an error with a hint for the common failure kinds
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dim := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dim.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case apierrors.IsNetworkError(err):
		sb.WriteString(dim.Render("\n  Hint: check that the translation backend is running"))
	case apierrors.IsParseError(err):
		sb.WriteString(dim.Render("\n  Hint: the backend returned an unexpected response"))
	}

	return sb.String()
}
