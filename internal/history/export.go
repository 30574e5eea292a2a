package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diogo/medilingua/internal/models"
)

// ExportFormat represents the format for exporting conversations
type ExportFormat string

const (
	ExportFormatMarkdown ExportFormat = "markdown"
	ExportFormatJSON     ExportFormat = "json"
)

// FormatForPath picks the export format from a file extension
func FormatForPath(path string) ExportFormat {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ExportFormatJSON
	}
	return ExportFormatMarkdown
}

// ExportMarkdown renders a conversation as Markdown
func ExportMarkdown(conv *models.Conversation) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(conv.Title)
	sb.WriteString("\n\n")

	sb.WriteString("**Created:** ")
	sb.WriteString(conv.CreatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString("**Updated:** ")
	sb.WriteString(conv.UpdatedAt.Format("2006-01-02 15:04:05"))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("**Messages:** %d", len(conv.Chat)))
	sb.WriteString("\n\n---\n\n")

	for i, msg := range conv.Chat {
		role := "User"
		if msg.IsBot() {
			role = "Assistant"
		}

		sb.WriteString("## ")
		sb.WriteString(role)
		sb.WriteString(" (")
		sb.WriteString(models.LanguageName(msg.Lang))
		sb.WriteString(")\n\n")

		sb.WriteString(msg.Text)
		sb.WriteString("\n")

		if len(msg.Keywords) > 0 {
			sb.WriteString("\n**Keywords:** ")
			terms := make([]string, len(msg.Keywords))
			for j, kw := range msg.Keywords {
				terms[j] = fmt.Sprintf("%s (%s)", kw.Term, kw.English)
			}
			sb.WriteString(strings.Join(terms, ", "))
			sb.WriteString("\n")
		}

		if len(msg.Recommendations) > 0 {
			sb.WriteString("\n**Possible departments:**\n\n")
			for _, dept := range msg.Recommendations {
				sb.WriteString("- ")
				sb.WriteString(dept)
				sb.WriteString("\n")
			}
		}

		if msg.HasVisualAid() {
			sb.WriteString("\n![Anatomical diagram](")
			sb.WriteString(msg.VisualAid)
			sb.WriteString(")\n")
		}

		if i < len(conv.Chat)-1 {
			sb.WriteString("\n---\n\n")
		}
	}

	return sb.String()
}

// ExportJSON renders a conversation as indented JSON
func ExportJSON(conv *models.Conversation) ([]byte, error) {
	type exportConversation struct {
		ID        string           `json:"id"`
		Title     string           `json:"title"`
		CreatedAt time.Time        `json:"created_at"`
		UpdatedAt time.Time        `json:"updated_at"`
		Chat      []models.Message `json:"chat"`
	}

	return json.MarshalIndent(exportConversation{
		ID:        conv.ID,
		Title:     conv.Title,
		CreatedAt: conv.CreatedAt,
		UpdatedAt: conv.UpdatedAt,
		Chat:      conv.Chat,
	}, "", "  ")
}

// ExportToFile writes a conversation to path, choosing the format by extension
func ExportToFile(conv *models.Conversation, path string) error {
	if conv == nil {
		return fmt.Errorf("no conversation to export")
	}

	var data []byte
	switch FormatForPath(path) {
	case ExportFormatJSON:
		var err error
		data, err = ExportJSON(conv)
		if err != nil {
			return fmt.Errorf("failed to marshal conversation: %w", err)
		}
	default:
		data = []byte(ExportMarkdown(conv))
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}

// Search returns conversations whose title or message text contains query
func (s *Store) Search(query string) []*models.Conversation {
	q := strings.ToLower(strings.TrimSpace(query))
	all := s.History()
	if q == "" {
		return all
	}

	var results []*models.Conversation
	for _, conv := range all {
		if strings.Contains(strings.ToLower(conv.Title), q) {
			results = append(results, conv)
			continue
		}
		for _, msg := range conv.Chat {
			if strings.Contains(strings.ToLower(msg.Text), q) {
				results = append(results, conv)
				break
			}
		}
	}
	return results
}

// FormatRelativeTime formats a time as a short relative string like "2h ago"
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%d min ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return t.Format("2006-01-02")
	}
}
