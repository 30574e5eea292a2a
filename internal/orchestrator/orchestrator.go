// Package orchestrator drives a submission through translation and records
// the outcome in the conversation store.
//
// All state changes happen on the caller's goroutine (the TUI update loop).
// Execute and Upload only talk to the backend and are safe to run inside a
// tea.Cmd; their results are handed back through Complete and ImageDone.
package orchestrator

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/api"
	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/history"
	"github.com/diogo/medilingua/internal/input"
	"github.com/diogo/medilingua/internal/logging"
	"github.com/diogo/medilingua/internal/models"
)

// Phase is the lifecycle stage of the latest submission
type Phase int

const (
	Idle Phase = iota
	Submitting
	Settled
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Settled:
		return "settled"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrEmptyText = errors.New("nothing to submit")
	ErrBusy      = errors.New("a submission is already in flight")
	ErrStale     = errors.New("result does not belong to the current submission")
)

// Submission is one translation request in flight
type Submission struct {
	ID      uint64
	Request models.TranslateRequest
}

// Orchestrator owns the submission state machine
type Orchestrator struct {
	store  *history.Store
	input  *input.Controller
	client api.BackendClient
	logger *zap.Logger

	phase   Phase
	current *Submission
	seq     uint64
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithLogger sets the orchestrator logger
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logging.OrNop(l)
	}
}

// New creates an orchestrator over the given store, input state and backend
func New(store *history.Store, in *input.Controller, client api.BackendClient, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		store:  store,
		input:  in,
		client: client,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Phase returns the current phase
func (o *Orchestrator) Phase() Phase { return o.phase }

// Busy reports whether a translation is in flight
func (o *Orchestrator) Busy() bool { return o.phase == Submitting }

// Submit validates text and starts a submission.
// The user message is appended unless it repeats the last message, and the
// draft is cleared only when text came from it.
func (o *Orchestrator) Submit(text string) (*Submission, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if o.Busy() {
		return nil, ErrBusy
	}

	if text == o.input.Draft() {
		o.input.ClearDraft()
	}

	if last, ok := o.store.LastText(); !ok || last != text {
		o.store.AppendUserMessage(text, o.input.Source())
	}

	o.seq++
	o.current = &Submission{
		ID: o.seq,
		Request: models.TranslateRequest{
			Text:   text,
			Source: o.input.Source(),
			Target: o.input.Target(),
		},
	}
	o.phase = Submitting

	o.logger.Debug("submission started",
		zap.Uint64("id", o.current.ID),
		zap.String("source", o.current.Request.Source),
		zap.String("target", o.current.Request.Target))

	return o.current, nil
}

// Execute performs the translation request for sub
func (o *Orchestrator) Execute(ctx context.Context, sub *Submission) (*models.Translation, error) {
	return o.client.Translate(ctx, sub.Request)
}

// Complete records the outcome of sub and returns the bot message appended.
// A backend error response still settles with the fallback text; transport
// and parse failures append the service-unavailable message and are not
// committed.
func (o *Orchestrator) Complete(sub *Submission, t *models.Translation, err error) (models.Message, error) {
	if sub == nil || o.current == nil || sub.ID != o.current.ID || o.phase != Submitting {
		return models.Message{}, ErrStale
	}

	if err != nil && !apierrors.IsAPIError(err) {
		return o.fail(sub, err), nil
	}
	if err != nil {
		o.logger.Warn("translate returned error status",
			zap.Int("status", apierrors.GetHTTPStatus(err)),
			zap.Error(err))
		t = nil
	}
	return o.settle(sub, t), nil
}

func (o *Orchestrator) settle(sub *Submission, t *models.Translation) models.Message {
	msg := o.store.AppendBotMessage(t.BotMessage(sub.Request.Target))
	if msg.HasVisualAid() {
		o.store.SetActiveVisualAid(msg.VisualAid)
	}
	o.store.Commit(sub.Request.Text)

	o.phase = Settled
	o.current = nil
	return msg
}

func (o *Orchestrator) fail(sub *Submission, err error) models.Message {
	o.logger.Warn("translation failed",
		zap.Uint64("id", sub.ID),
		zap.Bool("network", apierrors.IsNetworkError(err)),
		zap.Error(err))

	msg := o.store.AppendBotMessage(models.NewBotMessage(models.ServiceUnavailableText, models.DefaultDisplayLang))

	o.phase = Failed
	o.current = nil
	return msg
}
