package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/history"
	"github.com/diogo/medilingua/internal/models"
	"github.com/diogo/medilingua/internal/orchestrator"
)

// slashCommand is a command typed into the input line
type slashCommand struct {
	name string
	args string
	help string
}

var slashCommands = []slashCommand{
	{name: "/from", args: "<code>", help: "Set the source language"},
	{name: "/to", args: "<code>", help: "Set the target language"},
	{name: "/image", args: "<path>", help: "Extract and translate the text of an image"},
	{name: "/export", args: "<path>", help: "Save the active conversation (.md or .json)"},
	{name: "/new", help: "Start a new chat"},
	{name: "/history", help: "Browse this session's conversations"},
	{name: "/langs", help: "List supported languages"},
	{name: "/help", help: "Show commands and shortcuts"},
	{name: "/quit", help: "Exit"},
}

var shortcuts = []struct {
	key  string
	desc string
}{
	{"Enter", "Translate"},
	{"Ctrl+L", "Dictate"},
	{"Ctrl+S", "Read aloud"},
	{"Ctrl+K", "Sign lookup"},
	{"Ctrl+D", "Departments"},
	{"Ctrl+G", "Diagram"},
	{"Ctrl+O", "SOS"},
	{"Ctrl+Y", "Copy"},
	{"Ctrl+N", "New chat"},
	{"Ctrl+R", "History"},
	{"Alt+↑↓", "Select"},
	{"PgUp/PgDn", "Scroll"},
	{"Esc", "Quit"},
}

// parseCommand splits "/name rest of line"
func parseCommand(line string) (name, arg string) {
	name, arg, _ = strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(name), strings.TrimSpace(arg)
}

func (m *Model) runCommand(line string) tea.Cmd {
	name, arg := parseCommand(line)
	m.textarea.Reset()
	m.input.ClearDraft()

	switch name {
	case "/quit", "/exit":
		m.dictation.Stop()
		m.reader.Stop()
		return tea.Quit

	case "/from":
		if err := m.input.SetSource(strings.ToLower(arg)); err != nil {
			m.fail(err)
			return nil
		}
		m.notice("Source language: " + models.LanguageName(m.input.Source()))

	case "/to":
		if err := m.input.SetTarget(strings.ToLower(arg)); err != nil {
			m.fail(err)
			return nil
		}
		m.notice("Target language: " + models.LanguageName(m.input.Target()))

	case "/image":
		return m.startImage(arg)

	case "/export":
		m.export(arg)

	case "/new":
		m.newChat()

	case "/history":
		m.history = newHistoryPanel(m.store)

	case "/langs", "/languages":
		m.info = languagesText()

	case "/help":
		m.info = helpText()

	default:
		m.notice(fmt.Sprintf("Unknown command %s, try /help", name))
	}
	return nil
}

func (m *Model) startImage(path string) tea.Cmd {
	if path == "" {
		m.notice("Usage: /image <path>")
		return nil
	}
	path = expandHome(path)

	up, err := m.orch.BeginImage(path)
	if err != nil {
		if !errors.Is(err, orchestrator.ErrNotImage) {
			m.fail(err)
		}
		return nil
	}

	m.uploading++
	m.followNewest()
	return tea.Batch(m.uploadCmd(up), m.spinner.Tick)
}

func (m *Model) export(path string) {
	if path == "" {
		m.notice("Usage: /export <path>")
		return
	}
	conv, ok := m.store.Active()
	if !ok {
		m.notice("Nothing to export yet")
		return
	}
	path = expandHome(path)
	if err := history.ExportToFile(conv, path); err != nil {
		m.logger.Warn("export failed", zap.String("path", path), zap.Error(err))
		m.fail(err)
		return
	}
	m.notice("Exported to " + path)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

func helpText() string {
	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render("Commands"))
	sb.WriteString("\n")
	for _, c := range slashCommands {
		usage := c.name
		if c.args != "" {
			usage += " " + c.args
		}
		sb.WriteString(fmt.Sprintf("%s  %s\n",
			statusKeyStyle.Render(fmt.Sprintf("%-16s", usage)),
			statusDescStyle.Render(c.help)))
	}
	sb.WriteString("\n")
	sb.WriteString(modalTitleStyle.Render("Shortcuts"))
	sb.WriteString("\n")
	for _, s := range shortcuts {
		sb.WriteString(fmt.Sprintf("%s  %s\n",
			statusKeyStyle.Render(fmt.Sprintf("%-16s", s.key)),
			statusDescStyle.Render(s.desc)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func languagesText() string {
	langs := models.AllLanguages()

	var sb strings.Builder
	sb.WriteString(modalTitleStyle.Render(fmt.Sprintf("Supported languages (%d)", len(langs))))
	sb.WriteString("\n")

	// three columns
	rows := (len(langs) + 2) / 3
	for r := 0; r < rows; r++ {
		for c := 0; c < 3; c++ {
			i := c*rows + r
			if i >= len(langs) {
				continue
			}
			sb.WriteString(statusKeyStyle.Render(fmt.Sprintf("%-3s", langs[i].Code)))
			sb.WriteString(statusDescStyle.Render(fmt.Sprintf(" %-24s", langs[i].Name)))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
