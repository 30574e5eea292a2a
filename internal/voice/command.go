package voice

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/diogo/medilingua/internal/logging"
)

// LocalePlaceholder in a recognizer command is replaced by the capture locale
const LocalePlaceholder = "{locale}"

// espeak-ng speaks at 175 words per minute and pitch 50 by default
const (
	baseWordsPerMinute = 175
	basePitch          = 50
)

// CommandRecognizer runs an external recognizer that prints one JSON object
// per line: {"text": "...", "final": true|false}
type CommandRecognizer struct {
	command []string
	logger  *zap.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	session uint64
}

// NewCommandRecognizer creates a recognizer; command must not be empty
func NewCommandRecognizer(command []string, logger *zap.Logger) (*CommandRecognizer, error) {
	if len(command) == 0 || command[0] == "" {
		return nil, errors.New("recognizer command cannot be empty")
	}
	return &CommandRecognizer{command: command, logger: logging.OrNop(logger)}, nil
}

// Start launches the recognizer for locale
func (r *CommandRecognizer) Start(ctx context.Context, locale string) (<-chan CaptureEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return nil, errors.New("capture already running")
	}

	args := make([]string, len(r.command)-1)
	for i, a := range r.command[1:] {
		args[i] = strings.ReplaceAll(a, LocalePlaceholder, locale)
	}

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, r.command[0], args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return nil, fmt.Errorf("failed to open recognizer output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start recognizer: %w", err)
	}
	r.cancel = cancel
	r.session++
	session := r.session

	events := make(chan CaptureEvent, 16)
	go func() {
		defer close(events)
		defer r.clear(session, cancel)

		scanner := bufio.NewScanner(stdout)
		for scanner.Scan() {
			ev, ok := parseCaptureLine(scanner.Bytes())
			if !ok {
				r.logger.Debug("ignoring recognizer line", zap.ByteString("line", scanner.Bytes()))
				continue
			}
			select {
			case events <- ev:
			case <-runCtx.Done():
			}
		}

		end := CaptureEvent{End: true}
		if err := cmd.Wait(); err != nil && runCtx.Err() == nil {
			end.Err = fmt.Errorf("recognizer exited: %w", err)
		}
		select {
		case events <- end:
		default:
		}
	}()

	return events, nil
}

// Stop terminates the running recognizer. A new session may start right away;
// the old process winds down on its own channel.
func (r *CommandRecognizer) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// clear releases session once its process has exited, unless a newer
// session already took its place
func (r *CommandRecognizer) clear(session uint64, cancel context.CancelFunc) {
	cancel()
	r.mu.Lock()
	if r.session == session {
		r.cancel = nil
	}
	r.mu.Unlock()
}

func parseCaptureLine(line []byte) (CaptureEvent, bool) {
	if !gjson.ValidBytes(line) {
		return CaptureEvent{}, false
	}
	res := gjson.ParseBytes(line)
	text := res.Get("text")
	if !text.Exists() {
		return CaptureEvent{}, false
	}
	return CaptureEvent{Text: text.String(), Final: res.Get("final").Bool()}, true
}

// CommandSynthesizer speaks through an espeak-ng compatible binary
type CommandSynthesizer struct {
	binary string
	logger *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewCommandSynthesizer creates a synthesizer; binary defaults to espeak-ng
func NewCommandSynthesizer(binary string, logger *zap.Logger) *CommandSynthesizer {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &CommandSynthesizer{binary: binary, logger: logging.OrNop(logger)}
}

// Speak starts speaking u, cancelling anything already playing
func (s *CommandSynthesizer) Speak(ctx context.Context, u Utterance) (<-chan PlaybackEvent, error) {
	s.Cancel()

	runCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(runCtx, s.binary, synthArgs(u)...)
	if err := cmd.Start(); err != nil {
		cancel()
		return nil, fmt.Errorf("failed to start synthesizer: %w", err)
	}

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	events := make(chan PlaybackEvent, 2)
	events <- PlaybackEvent{Kind: PlaybackStarted}

	go func() {
		defer close(events)
		err := cmd.Wait()
		cancelled := runCtx.Err() != nil
		cancel()
		switch {
		case cancelled:
			// the adapter has already moved on
		case err != nil:
			events <- PlaybackEvent{Kind: PlaybackFailed, Err: err}
		default:
			events <- PlaybackEvent{Kind: PlaybackEnded}
		}
	}()

	return events, nil
}

// Cancel stops the current utterance
func (s *CommandSynthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Voices lists the installed voices from `<binary> --voices`
func (s *CommandSynthesizer) Voices() ([]Voice, error) {
	out, err := exec.Command(s.binary, "--voices").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list voices: %w", err)
	}
	return parseVoices(string(out)), nil
}

func synthArgs(u Utterance) []string {
	rate := u.Rate
	if rate <= 0 {
		rate = 1
	}
	pitch := u.Pitch
	if pitch <= 0 {
		pitch = 1
	}

	args := []string{
		"-s", strconv.Itoa(int(math.Round(baseWordsPerMinute * rate))),
		"-p", strconv.Itoa(min(99, int(math.Round(basePitch*pitch)))),
	}
	switch {
	case u.Voice != nil && u.Voice.ID != "":
		args = append(args, "-v", u.Voice.ID)
	case u.Locale != "":
		args = append(args, "-v", strings.ToLower(u.Locale))
	}
	// end of options; text may start with '-'
	return append(args, "--", u.Text)
}

// parseVoices reads the espeak-ng voice table:
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US     (en 3)
func parseVoices(out string) []Voice {
	var voices []Voice
	for i, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if i == 0 || len(fields) < 4 {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		voices = append(voices, Voice{
			ID:   fields[1],
			Name: strings.ReplaceAll(fields[3], "_", " "),
			Lang: fields[1],
		})
	}
	return voices
}
