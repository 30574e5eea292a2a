package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/medilingua/internal/location"
	"github.com/diogo/medilingua/internal/models"
	"github.com/diogo/medilingua/internal/orchestrator"
	"github.com/diogo/medilingua/internal/voice"
)

// Results of background work, delivered on the update loop
type (
	translateResultMsg struct {
		sub *orchestrator.Submission
		tr  *models.Translation
		err error
	}

	// detectTickMsg fires when the debounce delay of edit gen elapses
	detectTickMsg struct {
		gen uint64
	}

	detectResultMsg struct {
		code string
		err  error
	}

	imageResultMsg struct {
		up   *orchestrator.ImageUpload
		text string
		err  error
	}

	captureMsg struct {
		session uint64
		ev      voice.CaptureEvent
		ok      bool
		events  <-chan voice.CaptureEvent
	}

	playbackMsg struct {
		seq    uint64
		ev     voice.PlaybackEvent
		ok     bool
		events <-chan voice.PlaybackEvent
	}

	locationMsg struct {
		coords models.Coordinates
		err    error
	}
)

func (m Model) translateCmd(sub *orchestrator.Submission) tea.Cmd {
	orch, ctx := m.orch, m.ctx
	return func() tea.Msg {
		tr, err := orch.Execute(ctx, sub)
		return translateResultMsg{sub: sub, tr: tr, err: err}
	}
}

func (m Model) detectTick(gen uint64) tea.Cmd {
	return tea.Tick(m.input.Delay(), func(time.Time) tea.Msg {
		return detectTickMsg{gen: gen}
	})
}

func (m Model) detectCmd(text string) tea.Cmd {
	client, ctx := m.client, m.ctx
	return func() tea.Msg {
		code, err := client.Detect(ctx, text)
		return detectResultMsg{code: code, err: err}
	}
}

func (m Model) uploadCmd(up *orchestrator.ImageUpload) tea.Cmd {
	orch, ctx := m.orch, m.ctx
	return func() tea.Msg {
		text, err := orch.Upload(ctx, up)
		return imageResultMsg{up: up, text: text, err: err}
	}
}

func waitCapture(session uint64, events <-chan voice.CaptureEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return captureMsg{session: session, ev: ev, ok: ok, events: events}
	}
}

func waitPlayback(seq uint64, events <-chan voice.PlaybackEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return playbackMsg{seq: seq, ev: ev, ok: ok, events: events}
	}
}

func locateCmd(ctx context.Context, p location.Provider) tea.Cmd {
	return func() tea.Msg {
		coords, err := p.Locate(ctx)
		return locationMsg{coords: coords, err: err}
	}
}
