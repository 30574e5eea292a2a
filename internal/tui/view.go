package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/medilingua/internal/models"
	"github.com/diogo/medilingua/internal/panels"
	"github.com/diogo/medilingua/internal/render"
)

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	switch {
	case m.alert != "":
		return m.overlay(m.renderAlert())
	case m.viewer.Current() != nil:
		return m.overlay(m.renderExternalView(m.viewer.Current()))
	case m.info != "":
		return m.overlay(modalStyle.Render(m.info + "\n\n" + hintStyle.Render("Esc to close")))
	case m.history != nil:
		return m.overlay(m.renderHistory())
	}

	contentWidth := m.width - 4
	sections := []string{
		headerStyle.Width(contentWidth).Render(m.renderHeader()),
		messagesAreaStyle.Width(contentWidth).Height(m.viewport.Height).Render(m.viewport.View()),
		inputPanelStyle.Width(contentWidth).Render(m.renderInput()),
		m.renderStatusBar(contentWidth),
	}

	if m.status != "" {
		if m.statusErr {
			sections = append(sections, m.status)
		} else {
			sections = append(sections, noticeStyle.Render(m.status))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) overlay(box string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) renderHeader() string {
	parts := []string{
		titleStyle.Render("✚ MediLingua"),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(fmt.Sprintf("%s → %s",
			models.LanguageName(m.input.Source()),
			models.LanguageName(m.input.Target()))),
	}
	if m.dictation.Listening() {
		parts = append(parts, hintStyle.Render("  •  "), listeningStyle.Render("● listening"))
	}
	if m.store.ActiveVisualAid() != "" {
		parts = append(parts, hintStyle.Render("  •  "), visualAidStyle.Render("◆ diagram"))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m Model) renderInput() string {
	var status []string
	if m.orch.Busy() {
		status = append(status, m.spinner.View()+loadingStyle.Render(" Translating..."))
	}
	if m.uploading > 0 {
		status = append(status, m.spinner.View()+loadingStyle.Render(" Processing image..."))
	}
	if m.locating {
		status = append(status, m.spinner.View()+loadingStyle.Render(" Finding nearby hospitals..."))
	}

	label := inputLabelStyle.Render(fmt.Sprintf("You (%s)", models.LanguageName(m.input.Source())))
	if len(status) > 0 {
		label = lipgloss.JoinHorizontal(lipgloss.Center, label, strings.Join(status, "  "))
	}
	return lipgloss.JoinVertical(lipgloss.Left, label, m.textarea.View())
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	items := [][2]string{
		{"Enter", "Send"},
		{"Ctrl+L", "Mic"},
		{"Ctrl+S", "Speak"},
		{"Ctrl+K", "Signs"},
		{"Ctrl+O", "SOS"},
		{"/help", "More"},
	}
	if m.keywordMode {
		items = [][2]string{
			{"←→", "Choose term"},
			{"Enter", "Sign lookup"},
			{"Esc", "Back"},
		}
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(joinShortcuts(items))
}

func (m Model) renderAlert() string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		errorStyle.Render("⚠ "+m.alert),
		"",
		hintStyle.Render("Enter to dismiss"),
	)
	return alertModalStyle.Render(content)
}

func (m Model) renderExternalView(v *panels.ExternalView) string {
	width := min(max(40, m.width-8), 100)

	lines := []string{
		modalTitleStyle.Render(v.Title),
		linkStyle.Render(v.URL),
		"",
	}
	switch {
	case v.Copied:
		lines = append(lines, noticeStyle.Render("✓ Link copied to clipboard"))
	case v.Err != nil:
		lines = append(lines, noticeStyle.Render("Open the link above in a browser"))
	}
	lines = append(lines, "", hintStyle.Render("Esc to close"))

	return modalStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// refresh re-renders the chat into the viewport
func (m *Model) refresh() {
	if !m.ready {
		return
	}

	chat := m.store.Chat()
	selected := m.selectedIndex()
	bubbleWidth := max(20, m.viewport.Width-6)

	var content strings.Builder
	for i, msg := range chat {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(m.renderMessage(msg, i == selected, bubbleWidth))
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

func (m Model) renderMessage(msg models.Message, selected bool, width int) string {
	marker := "  "
	if selected {
		marker = selectedMarker.Render("▸ ")
	}

	if !msg.IsBot() {
		label := userLabelStyle.Render(fmt.Sprintf("● You · %s", models.LanguageName(msg.Lang)))
		bubble := userBubbleStyle.Width(width).Render(msg.Text)
		return marker + label + "\n" + bubble
	}

	label := botLabelStyle.Render(fmt.Sprintf("✚ MediLingua · %s", models.LanguageName(msg.Lang)))
	if m.reader.SpeakingID() == msg.ID {
		indicator := "◌ preparing speech"
		if m.reader.Started() {
			indicator = "♪ speaking"
		}
		label += "  " + speakingStyle.Render(indicator)
	}

	highlight := -1
	if selected && m.keywordMode {
		highlight = m.keywordCursor
	}
	body := []string{renderKeywords(msg, highlight)}

	if len(msg.Recommendations) > 0 {
		if m.recs.Visible(msg.ID) {
			recs := render.Recommendations(msg.Recommendations, m.renderOpts.WithWidth(width-6))
			body = append(body, departmentsStyle.Render(strings.TrimRight(recs, "\n")))
		} else if selected {
			body = append(body, hintStyle.Render("Ctrl+D: possible departments to consult"))
		}
	}
	if msg.HasVisualAid() {
		body = append(body, visualAidStyle.Render("◆ Anatomical diagram available (Ctrl+G)"))
	}

	bubble := botBubbleStyle.Width(width).Render(strings.Join(body, "\n"))
	return marker + label + "\n" + bubble
}

// renderKeywords styles the keyword spans of a bot message; the span at
// index highlight (counting keywords only) is shown as selected
func renderKeywords(msg models.Message, highlight int) string {
	var sb strings.Builder
	k := 0
	for _, seg := range panels.Segments(msg.Text, msg.Keywords) {
		if !seg.Keyword {
			sb.WriteString(seg.Text)
			continue
		}
		if k == highlight {
			sb.WriteString(keywordSelectedStyle.Render(seg.Text))
		} else {
			sb.WriteString(keywordStyle.Render(seg.Text))
		}
		k++
	}
	return sb.String()
}

// keywordSegments returns the highlighted spans of msg in display order
func keywordSegments(msg models.Message) []panels.Segment {
	var out []panels.Segment
	for _, seg := range panels.Segments(msg.Text, msg.Keywords) {
		if seg.Keyword {
			out = append(out, seg)
		}
	}
	return out
}
