package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/api"
	"github.com/diogo/medilingua/internal/config"
	"github.com/diogo/medilingua/internal/history"
	"github.com/diogo/medilingua/internal/input"
	"github.com/diogo/medilingua/internal/location"
	"github.com/diogo/medilingua/internal/logging"
	"github.com/diogo/medilingua/internal/models"
	"github.com/diogo/medilingua/internal/orchestrator"
	"github.com/diogo/medilingua/internal/panels"
	"github.com/diogo/medilingua/internal/render"
	"github.com/diogo/medilingua/internal/voice"
)

// Deps are the collaborators of the chat model. Capture, Playback and
// Locator may be nil when the system has no such service.
type Deps struct {
	Client   api.BackendClient
	Capture  voice.SpeechCapture
	Playback voice.SpeechPlayback
	Locator  location.Provider
	// Copy writes links to the clipboard; nil uses the system clipboard
	Copy   panels.CopyFunc
	Config config.Config
	Logger *zap.Logger
}

// Model represents the TUI state
type Model struct {
	ctx    context.Context
	client api.BackendClient
	logger *zap.Logger

	store     *history.Store
	input     *input.Controller
	orch      *orchestrator.Orchestrator
	dictation *voice.Dictation
	reader    *voice.Reader
	locator   location.Provider
	recs      *panels.Recommendations
	viewer    *panels.Viewer
	copy      panels.CopyFunc

	renderOpts render.Options

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// selected is the index of the focused message; -1 follows the newest
	selected      int
	keywordMode   bool
	keywordCursor int

	history *historyPanel
	alert   string
	info    string

	status    string
	statusErr bool

	uploading int
	locating  bool

	// Dimensions
	width  int
	height int
	ready  bool
}

// NewChatModel creates the chat model
func NewChatModel(deps Deps) Model {
	logger := logging.OrNop(deps.Logger)
	cfg := deps.Config

	ta := textarea.New()
	ta.Placeholder = "Describe your symptoms or type a message..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	in := input.NewController(
		input.WithLogger(logger.Named("input")),
		input.WithDetectDelay(cfg.DetectDelay()),
		input.WithLanguages(cfg.SourceLang, cfg.TargetLang),
	)
	store := history.NewStore()

	copyFn := deps.Copy
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	return Model{
		ctx:        context.Background(),
		client:     deps.Client,
		logger:     logger,
		store:      store,
		input:      in,
		orch:       orchestrator.New(store, in, deps.Client, orchestrator.WithLogger(logger.Named("orchestrator"))),
		dictation:  voice.NewDictation(deps.Capture, logger.Named("capture")),
		reader:     voice.NewReader(deps.Playback, logger.Named("playback")),
		locator:    deps.Locator,
		recs:       panels.NewRecommendations(),
		viewer:     panels.NewViewer(copyFn),
		copy:       copyFn,
		renderOpts: render.OptionsFromConfig(cfg.Markdown),
		textarea:   ta,
		spinner:    s,
		selected:   -1,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case translateResultMsg:
		if _, err := m.orch.Complete(msg.sub, msg.tr, msg.err); err != nil {
			m.logger.Debug("dropping translation result", zap.Error(err))
			return m, nil
		}
		m.followNewest()

	case detectTickMsg:
		text, ok := m.input.Settled(msg.gen)
		if ok && input.ShouldDetect(text) {
			return m, m.detectCmd(text)
		}

	case detectResultMsg:
		if msg.err != nil {
			m.input.DetectFailed(msg.err)
		} else {
			m.input.ApplyDetected(msg.code)
		}

	case imageResultMsg:
		m.uploading--
		sub, _ := m.orch.ImageDone(msg.up, msg.text, msg.err)
		m.followNewest()
		if sub != nil {
			cmds = append(cmds, m.translateCmd(sub), m.spinner.Tick)
		}

	case captureMsg:
		if !msg.ok {
			m.dictation.Handle(msg.session, voice.CaptureEvent{End: true})
			return m, nil
		}
		if text, ok := m.dictation.Handle(msg.session, msg.ev); ok {
			m.textarea.SetValue(text)
			cmds = append(cmds, m.detectTick(m.input.SetDraft(text)))
		}
		cmds = append(cmds, waitCapture(msg.session, msg.events))

	case playbackMsg:
		if !msg.ok {
			// engine closed without a final event
			m.reader.Handle(msg.seq, voice.PlaybackEvent{Kind: voice.PlaybackEnded})
			m.refresh()
			return m, nil
		}
		m.reader.Handle(msg.seq, msg.ev)
		m.refresh()
		cmds = append(cmds, waitPlayback(msg.seq, msg.events))

	case locationMsg:
		m.locating = false
		if msg.err != nil {
			m.logger.Warn("location lookup failed", zap.Error(msg.err))
			m.alert = models.LocationDeniedText
			return m, nil
		}
		m.viewer.Open("Nearby hospitals", location.HospitalURL(msg.coords))

	case spinner.TickMsg:
		if m.working() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	headerHeight := 4 // Header panel with border
	inputHeight := 6  // Input panel with border
	statusHeight := 2 // Status bar and notice line
	padding := 2

	vpHeight := max(5, m.height-headerHeight-inputHeight-statusHeight-padding)
	contentWidth := m.width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.refresh()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	if key == "ctrl+c" {
		m.dictation.Stop()
		m.reader.Stop()
		return tea.Quit
	}

	// Overlays take every key until dismissed
	switch {
	case m.alert != "":
		if key == "esc" || key == "enter" {
			m.alert = ""
		}
		return nil
	case m.viewer.Current() != nil:
		if key == "esc" || key == "enter" || key == "q" {
			m.viewer.Close()
		}
		return nil
	case m.info != "":
		if key == "esc" || key == "enter" || key == "q" {
			m.info = ""
		}
		return nil
	case m.history != nil:
		return m.updateHistory(msg)
	case m.keywordMode:
		return m.updateKeywords(key)
	}

	m.status, m.statusErr = "", false

	switch key {
	case "esc":
		m.dictation.Stop()
		m.reader.Stop()
		return tea.Quit

	case "enter":
		return m.submit()

	case "ctrl+n":
		m.newChat()
		return nil

	case "ctrl+r":
		m.history = newHistoryPanel(m.store)
		return nil

	case "ctrl+l":
		return m.toggleDictation()

	case "ctrl+s":
		return m.toggleSpeech()

	case "ctrl+d":
		m.toggleDepartments()
		return nil

	case "ctrl+k":
		m.enterKeywordMode()
		return nil

	case "ctrl+g":
		if _, ok := m.viewer.OpenVisualAid(m.store.ActiveVisualAid()); !ok {
			m.notice("No anatomical diagram for this conversation yet")
		}
		return nil

	case "ctrl+o":
		return m.sos()

	case "ctrl+y":
		m.copySelected()
		return nil

	case "alt+up":
		m.moveSelection(-1)
		return nil

	case "alt+down":
		m.moveSelection(1)
		return nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	}

	before := m.textarea.Value()
	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	if after := m.textarea.Value(); after != before {
		return tea.Batch(cmd, m.detectTick(m.input.SetDraft(after)))
	}
	return cmd
}

// submit handles enter in the input line
func (m *Model) submit() tea.Cmd {
	value := m.textarea.Value()
	if strings.HasPrefix(strings.TrimSpace(value), "/") {
		return m.runCommand(strings.TrimSpace(value))
	}

	sub, err := m.orch.Submit(value)
	if err != nil {
		// empty text and busy submissions are dropped without feedback
		m.logger.Debug("submission rejected", zap.Error(err))
		return nil
	}

	m.textarea.Reset()
	m.followNewest()
	return tea.Batch(m.translateCmd(sub), m.spinner.Tick)
}

func (m *Model) newChat() {
	m.reader.Stop()
	m.store.StartNewChat()
	m.recs.Reset()
	m.keywordMode = false
	m.followNewest()
}

func (m *Model) toggleDictation() tea.Cmd {
	session, events, err := m.dictation.Toggle(m.ctx, m.input.Source())
	if err != nil {
		m.notice("Speech input is not available")
		return nil
	}
	if events == nil {
		return nil
	}
	return waitCapture(session, events)
}

func (m *Model) toggleSpeech() tea.Cmd {
	msg, ok := m.selectedMessage()
	if !ok || !msg.IsBot() {
		return nil
	}
	seq, events, err := m.reader.Toggle(m.ctx, msg)
	m.refresh()
	if err != nil {
		m.notice("Speech output is not available")
		return nil
	}
	if events == nil {
		return nil
	}
	return waitPlayback(seq, events)
}

func (m *Model) toggleDepartments() {
	msg, ok := m.selectedMessage()
	if !ok || len(msg.Recommendations) == 0 {
		return
	}
	m.recs.Toggle(msg.ID)
	m.refresh()
}

func (m *Model) enterKeywordMode() {
	msg, ok := m.selectedMessage()
	if !ok || len(keywordSegments(msg)) == 0 {
		m.notice("No highlighted terms in this message")
		return
	}
	m.keywordMode = true
	m.keywordCursor = 0
	m.refresh()
}

func (m *Model) updateKeywords(key string) tea.Cmd {
	msg, _ := m.selectedMessage()
	terms := keywordSegments(msg)

	switch key {
	case "left", "shift+tab":
		if m.keywordCursor > 0 {
			m.keywordCursor--
		}
	case "right", "tab":
		if m.keywordCursor < len(terms)-1 {
			m.keywordCursor++
		}
	case "enter":
		if m.keywordCursor < len(terms) {
			m.viewer.OpenSignLookup(terms[m.keywordCursor].English)
		}
		m.keywordMode = false
	case "esc", "ctrl+k":
		m.keywordMode = false
	}
	m.refresh()
	return nil
}

func (m *Model) sos() tea.Cmd {
	if m.locator == nil {
		m.alert = models.LocationUnsupportedText
		return nil
	}
	if m.locating {
		return nil
	}
	m.locating = true
	return tea.Batch(locateCmd(m.ctx, m.locator), m.spinner.Tick)
}

func (m *Model) copySelected() {
	msg, ok := m.selectedMessage()
	if !ok {
		return
	}
	if err := m.copy(msg.Text); err != nil {
		m.fail(err)
		return
	}
	m.notice("Message copied to clipboard")
}

func (m *Model) moveSelection(delta int) {
	n := m.store.Len()
	if n == 0 {
		return
	}
	idx := m.selectedIndex() + delta
	switch {
	case idx < 0:
		idx = 0
	case idx >= n-1:
		idx = -1
	}
	m.selected = idx
	m.refresh()
}

// selectedIndex resolves the follow-newest marker
func (m Model) selectedIndex() int {
	n := m.store.Len()
	if m.selected < 0 || m.selected >= n {
		return n - 1
	}
	return m.selected
}

func (m Model) selectedMessage() (models.Message, bool) {
	chat := m.store.Chat()
	idx := m.selectedIndex()
	if idx < 0 || idx >= len(chat) {
		return models.Message{}, false
	}
	return chat[idx], true
}

func (m *Model) followNewest() {
	m.selected = -1
	m.keywordMode = false
	m.refresh()
	m.viewport.GotoBottom()
}

func (m Model) working() bool {
	return m.orch.Busy() || m.uploading > 0 || m.locating
}

func (m *Model) notice(text string) {
	m.status, m.statusErr = text, false
}

func (m *Model) fail(err error) {
	m.status, m.statusErr = FormatError(err), true
}

// RunChat starts the chat TUI
func RunChat(deps Deps) error {
	if deps.Client == nil {
		return errors.New("chat requires a backend client")
	}
	p := tea.NewProgram(
		NewChatModel(deps),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
