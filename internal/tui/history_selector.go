package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/medilingua/internal/history"
	"github.com/diogo/medilingua/internal/models"
)

// historyPanel lists the session's conversations over the chat.
// Row 0 is always "New chat"; typing filters the list.
type historyPanel struct {
	store         *history.Store
	conversations []*models.Conversation
	filter        string
	cursor        int
}

func newHistoryPanel(store *history.Store) *historyPanel {
	p := &historyPanel{store: store}
	p.reload()
	return p
}

func (p *historyPanel) reload() {
	if p.filter == "" {
		p.conversations = p.store.History()
	} else {
		p.conversations = p.store.Search(p.filter)
	}
	if p.cursor > len(p.conversations) {
		p.cursor = len(p.conversations)
	}
}

// selected returns the conversation under the cursor, nil for "New chat"
func (p *historyPanel) selected() *models.Conversation {
	if p.cursor == 0 || p.cursor > len(p.conversations) {
		return nil
	}
	return p.conversations[p.cursor-1]
}

func (m *Model) updateHistory(msg tea.KeyMsg) tea.Cmd {
	p := m.history

	switch msg.String() {
	case "esc":
		m.history = nil

	case "up":
		p.cursor--
		if p.cursor < 0 {
			// Wrap to last item (+1 for "New chat")
			p.cursor = len(p.conversations)
		}

	case "down":
		p.cursor++
		if p.cursor > len(p.conversations) {
			p.cursor = 0
		}

	case "home":
		p.cursor = 0

	case "end":
		p.cursor = len(p.conversations)

	case "enter":
		if conv := p.selected(); conv != nil {
			m.reader.Stop()
			m.store.Load(conv.ID)
			m.recs.Reset()
			m.followNewest()
		} else {
			m.newChat()
		}
		m.history = nil

	case "backspace":
		if p.filter != "" {
			r := []rune(p.filter)
			p.filter = string(r[:len(r)-1])
			p.reload()
		}

	default:
		switch msg.Type {
		case tea.KeyRunes:
			p.filter += string(msg.Runes)
		case tea.KeySpace:
			p.filter += " "
		default:
			return nil
		}
		p.cursor = 0
		p.reload()
	}
	return nil
}

func (m Model) renderHistory() string {
	p := m.history
	width := min(max(40, m.width-8), 90)

	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Conversations"))
	sb.WriteString("\n")

	filter := hintStyle.Render("type to search")
	if p.filter != "" {
		filter = subtitleStyle.Render("search: " + p.filter)
	}
	sb.WriteString(filter)
	sb.WriteString("\n\n")

	sb.WriteString(p.renderItem(0, "+ New chat", ""))
	sb.WriteString("\n")

	if len(p.conversations) == 0 {
		msg := "  No conversations yet"
		if p.filter != "" {
			msg = "  No matches"
		}
		sb.WriteString(hintStyle.Render(msg))
		sb.WriteString("\n")
	} else {
		maxItems := max(5, m.height-14)

		scrollOffset := 0
		if p.cursor > maxItems {
			scrollOffset = p.cursor - maxItems
		}
		endIdx := min(scrollOffset+maxItems, len(p.conversations))

		if scrollOffset > 0 {
			sb.WriteString(hintStyle.Render("  ↑ more above"))
			sb.WriteString("\n")
		}
		for i := scrollOffset; i < endIdx; i++ {
			conv := p.conversations[i]
			title := conv.Title
			if conv.ID == m.store.ActiveID() {
				title += " •"
			}
			sb.WriteString(p.renderItem(i+1, title, history.FormatRelativeTime(conv.UpdatedAt)))
			sb.WriteString("\n")
		}
		if endIdx < len(p.conversations) {
			sb.WriteString(hintStyle.Render("  ↓ more below"))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(joinShortcuts([][2]string{
		{"↑↓", "Navigate"},
		{"Enter", "Open"},
		{"Esc", "Close"},
	}))

	return modalStyle.Width(width).Render(sb.String())
}

func (p *historyPanel) renderItem(index int, title, when string) string {
	cursor := "  "
	style := menuItemStyle
	if index == p.cursor {
		cursor = menuCursorStyle.Render("> ")
		style = menuSelectedStyle
	}

	line := cursor + style.Render(title)
	if when != "" {
		line += timestampStyle.Render(fmt.Sprintf(" - %s", when))
	}
	return line
}

func joinShortcuts(items [][2]string) string {
	parts := make([]string, 0, len(items))
	for _, s := range items {
		parts = append(parts, lipgloss.JoinHorizontal(
			lipgloss.Center,
			statusKeyStyle.Render(s[0]),
			statusDescStyle.Render(" "+s[1]),
		))
	}
	return strings.Join(parts, "  │  ")
}
