// Package input owns the draft text and the language pair, and decides when
// the draft has settled long enough to be sent for language detection.
package input

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/logging"
	"github.com/diogo/medilingua/internal/models"
)

// DefaultDetectDelay is the quiet period before a draft is considered settled
const DefaultDetectDelay = 1000 * time.Millisecond

// Controller holds the draft and the selected source and target languages
type Controller struct {
	draft  string
	source string
	target string

	debounce *Debouncer
	logger   *zap.Logger
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for detection decisions
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		c.logger = logging.OrNop(l)
	}
}

// WithDetectDelay overrides the debounce delay
func WithDetectDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.debounce = NewDebouncer(d)
		}
	}
}

// WithLanguages sets the initial language pair; unsupported codes are ignored
func WithLanguages(source, target string) Option {
	return func(c *Controller) {
		if models.IsSupportedLanguage(source) {
			c.source = source
		}
		if models.IsSupportedLanguage(target) {
			c.target = target
		}
	}
}

// NewController creates a controller with an empty draft
func NewController(opts ...Option) *Controller {
	c := &Controller{
		source:   models.DefaultSourceLang,
		target:   models.DefaultTargetLang,
		debounce: NewDebouncer(DefaultDetectDelay),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draft returns the current draft text
func (c *Controller) Draft() string { return c.draft }

// Source returns the source language code
func (c *Controller) Source() string { return c.source }

// Target returns the target language code
func (c *Controller) Target() string { return c.target }

// Delay returns the debounce delay
func (c *Controller) Delay() time.Duration { return c.debounce.Delay() }

// SetDraft replaces the draft and restarts the settle timer.
// The returned generation must be handed back to Settled when the timer fires.
func (c *Controller) SetDraft(text string) uint64 {
	c.draft = text
	return c.debounce.Touch()
}

// ClearDraft empties the draft
func (c *Controller) ClearDraft() uint64 {
	return c.SetDraft("")
}

// Settled reports whether gen is still the newest edit, and if so returns
// the draft as it stood when the quiet period elapsed
func (c *Controller) Settled(gen uint64) (string, bool) {
	if !c.debounce.Settled(gen) {
		return "", false
	}
	return c.draft, true
}

// SetSource selects the source language
func (c *Controller) SetSource(code string) error {
	if !models.IsSupportedLanguage(code) {
		return fmt.Errorf("unsupported language: %q", code)
	}
	c.source = code
	return nil
}

// SetTarget selects the target language
func (c *Controller) SetTarget(code string) error {
	if !models.IsSupportedLanguage(code) {
		return fmt.Errorf("unsupported language: %q", code)
	}
	c.target = code
	return nil
}

// ShouldDetect reports whether text is long enough to be worth detecting
func ShouldDetect(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) > models.DetectMinLength
}

// ApplyDetected overwrites the source language with a detection result.
// Codes equal to the current source or outside the supported set are rejected.
func (c *Controller) ApplyDetected(code string) bool {
	if code == c.source {
		return false
	}
	if !models.IsSupportedLanguage(code) {
		c.logger.Debug("detected language rejected", zap.String("code", code))
		return false
	}
	c.logger.Debug("source language detected",
		zap.String("from", c.source),
		zap.String("to", code))
	c.source = code
	return true
}

// DetectFailed records a swallowed detection error
func (c *Controller) DetectFailed(err error) {
	c.logger.Warn("language detection failed", zap.Error(err))
}
