// Package voice adapts speech engines to the chat: dictation into the draft
// and reading messages aloud.
//
// Engines sit behind SpeechCapture and SpeechPlayback. Dictation and Reader
// hold the session state and are driven from the UI loop; events from the
// engines arrive on channels and are fed back through Handle.
package voice

import (
	"context"
	"strings"

	"github.com/diogo/medilingua/internal/models"
)

// Playback tuning applied to every utterance
const (
	DefaultRate  = 0.9
	DefaultPitch = 1.0
)

// CaptureEvent is a recognition result or the end of a capture session
type CaptureEvent struct {
	Text  string
	Final bool

	// End is set on the last event of a session; Err when it ended in error
	End bool
	Err error
}

// SpeechCapture is a speech recognizer
type SpeechCapture interface {
	// Start begins recognition in locale. The channel is closed when the
	// session ends.
	Start(ctx context.Context, locale string) (<-chan CaptureEvent, error)
	Stop()
}

// Voice is a synthesizer voice
type Voice struct {
	ID      string
	Name    string
	Lang    string
	Default bool
}

// Utterance is one piece of text to speak
type Utterance struct {
	Text   string
	Locale string
	Voice  *Voice
	Rate   float64
	Pitch  float64
}

// PlaybackEventKind identifies a playback lifecycle event
type PlaybackEventKind int

const (
	PlaybackStarted PlaybackEventKind = iota
	PlaybackEnded
	PlaybackFailed
)

// PlaybackEvent reports progress of an utterance
type PlaybackEvent struct {
	Kind PlaybackEventKind
	Err  error
}

// SpeechPlayback is a speech synthesizer
type SpeechPlayback interface {
	// Speak starts u. The channel is closed after the final event.
	Speak(ctx context.Context, u Utterance) (<-chan PlaybackEvent, error)
	Cancel()
	Voices() ([]Voice, error)
}

// SelectVoice picks the voice for a language code: an exact locale match
// first, then any voice whose language starts with the code, else nil for the
// engine default
func SelectVoice(voices []Voice, code string) *Voice {
	locale, ok := models.SpeechLocale(code)
	if !ok {
		locale = code
	}

	for i := range voices {
		if strings.EqualFold(voices[i].Lang, locale) {
			return &voices[i]
		}
	}
	prefix := strings.ToLower(code)
	for i := range voices {
		if prefix != "" && strings.HasPrefix(strings.ToLower(voices[i].Lang), prefix) {
			return &voices[i]
		}
	}
	for i := range voices {
		if voices[i].Default {
			return &voices[i]
		}
	}
	return nil
}
