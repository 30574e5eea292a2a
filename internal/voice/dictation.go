package voice

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/logging"
	"github.com/diogo/medilingua/internal/models"
)

// Dictation owns the single speech capture session
type Dictation struct {
	capture SpeechCapture
	logger  *zap.Logger

	listening bool
	session   uint64
	finals    strings.Builder
}

// NewDictation creates a dictation adapter; capture may be nil when no
// recognizer is available
func NewDictation(capture SpeechCapture, logger *zap.Logger) *Dictation {
	return &Dictation{capture: capture, logger: logging.OrNop(logger)}
}

// Available reports whether a recognizer is configured
func (d *Dictation) Available() bool {
	return d.capture != nil
}

// Listening reports whether a session is active
func (d *Dictation) Listening() bool {
	return d.listening
}

// Toggle stops an active session, or starts one in the capture locale of
// lang. A started session returns its id and event channel.
func (d *Dictation) Toggle(ctx context.Context, lang string) (uint64, <-chan CaptureEvent, error) {
	if d.listening {
		d.Stop()
		return 0, nil, nil
	}
	if d.capture == nil {
		d.logger.Warn("speech capture unavailable")
		return 0, nil, fmt.Errorf("speech capture: %w", apierrors.ErrNotConfigured)
	}

	locale := models.CaptureLocale(lang)
	events, err := d.capture.Start(ctx, locale)
	if err != nil {
		d.logger.Warn("speech capture failed to start", zap.String("locale", locale), zap.Error(err))
		return 0, nil, err
	}

	d.session++
	d.listening = true
	d.finals.Reset()
	d.logger.Debug("speech capture started", zap.String("locale", locale), zap.Uint64("session", d.session))
	return d.session, events, nil
}

// Stop ends the active session
func (d *Dictation) Stop() {
	if !d.listening {
		return
	}
	d.capture.Stop()
	d.listening = false
}

// Handle applies an event from session. It returns the new draft text when
// the event carries a transcript; events from older sessions are ignored.
func (d *Dictation) Handle(session uint64, ev CaptureEvent) (string, bool) {
	if session != d.session || !d.listening {
		return "", false
	}

	if ev.Err != nil {
		d.logger.Warn("speech capture error", zap.Error(ev.Err))
		d.listening = false
		return "", false
	}
	if ev.End {
		d.listening = false
		return "", false
	}

	if ev.Final {
		d.finals.WriteString(ev.Text)
		return d.finals.String(), true
	}
	return d.finals.String() + ev.Text, true
}
