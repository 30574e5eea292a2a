package voice

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/logging"
	"github.com/diogo/medilingua/internal/models"
)

// Reader reads messages aloud, one at a time
type Reader struct {
	playback SpeechPlayback
	logger   *zap.Logger

	voices       []Voice
	voicesLoaded bool

	speakingID string
	started    bool
	seq        uint64
}

// NewReader creates a playback adapter; playback may be nil
func NewReader(playback SpeechPlayback, logger *zap.Logger) *Reader {
	return &Reader{playback: playback, logger: logging.OrNop(logger)}
}

// Available reports whether a synthesizer is configured
func (r *Reader) Available() bool {
	return r.playback != nil
}

// SpeakingID returns the id of the message being read, or ""
func (r *Reader) SpeakingID() string {
	return r.speakingID
}

// Started reports whether the engine confirmed the current utterance began
func (r *Reader) Started() bool {
	return r.speakingID != "" && r.started
}

// Toggle reads msg aloud. Toggling the message being read stops it; any
// other message replaces the current utterance.
func (r *Reader) Toggle(ctx context.Context, msg models.Message) (uint64, <-chan PlaybackEvent, error) {
	if r.playback == nil {
		return 0, nil, fmt.Errorf("speech playback: %w", apierrors.ErrNotConfigured)
	}

	if r.speakingID != "" {
		same := r.speakingID == msg.ID
		r.Stop()
		if same {
			return 0, nil, nil
		}
	}

	locale, ok := models.SpeechLocale(msg.Lang)
	if !ok {
		locale = msg.Lang
	}
	u := Utterance{
		Text:   msg.Text,
		Locale: locale,
		Voice:  SelectVoice(r.loadVoices(), msg.Lang),
		Rate:   DefaultRate,
		Pitch:  DefaultPitch,
	}

	events, err := r.playback.Speak(ctx, u)
	if err != nil {
		r.logger.Warn("speech playback failed", zap.String("message", msg.ID), zap.Error(err))
		return 0, nil, err
	}

	r.seq++
	r.speakingID = msg.ID
	r.started = false
	return r.seq, events, nil
}

// Stop cancels the current utterance
func (r *Reader) Stop() {
	if r.speakingID == "" {
		return
	}
	r.playback.Cancel()
	r.speakingID = ""
	r.started = false
	r.seq++
}

// Handle applies an event for utterance seq; stale events are ignored
func (r *Reader) Handle(seq uint64, ev PlaybackEvent) {
	if seq != r.seq || r.speakingID == "" {
		return
	}
	switch ev.Kind {
	case PlaybackStarted:
		r.started = true
	case PlaybackEnded:
		r.speakingID = ""
		r.started = false
	case PlaybackFailed:
		r.logger.Warn("speech playback error", zap.Error(ev.Err))
		r.speakingID = ""
		r.started = false
	}
}

func (r *Reader) loadVoices() []Voice {
	if r.voicesLoaded {
		return r.voices
	}
	voices, err := r.playback.Voices()
	if err != nil {
		r.logger.Debug("voice list unavailable", zap.Error(err))
		return nil
	}
	r.voices = voices
	r.voicesLoaded = true
	return r.voices
}
