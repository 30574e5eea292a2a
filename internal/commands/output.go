package commands

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	apierrors "github.com/diogo/medilingua/internal/errors"
)

// Gradient colors for animation
var gradientColors = []lipgloss.Color{
	lipgloss.Color("#7dcfff"), // Cyan
	lipgloss.Color("#73daca"), // Teal
	lipgloss.Color("#9ece6a"), // Green
	lipgloss.Color("#e0af68"), // Amber
	lipgloss.Color("#f7768e"), // Red
	lipgloss.Color("#bb9af7"), // Purple
	lipgloss.Color("#7aa2f7"), // Blue
}

var (
	colorText     = lipgloss.Color("#c0caf5")
	colorTextDim  = lipgloss.Color("#565f89")
	colorTextMute = lipgloss.Color("#3b4261")
	colorSuccess  = lipgloss.Color("#9ece6a")
	colorPrimary  = lipgloss.Color("#7dcfff")
	colorKeyword  = lipgloss.Color("#e0af68")
	colorError    = lipgloss.Color("#f7768e")
)

// Styles matching the chat TUI
var (
	botLabelStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	botBubbleStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Foreground(colorText).
			Padding(0, 1).
			MarginBottom(1)

	keywordStyle = lipgloss.NewStyle().
			Foreground(colorKeyword).
			Underline(true)

	dimStyle = lipgloss.NewStyle().Foreground(colorTextDim)
)

// spinner handles the animated loading indicator on stderr
type spinner struct {
	message string
	out     io.Writer
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		out:     os.Stderr,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

	spinColor := gradientColors[s.frame%len(gradientColors)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dotColor := gradientColors[(s.frame+i)%len(gradientColors)]
			dots.WriteString(lipgloss.NewStyle().Foreground(dotColor).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and shows error
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// progress wraps a spinner that is only shown on a terminal
type progress struct {
	spin *spinner
}

func startProgress(enabled bool, message string) *progress {
	if !enabled {
		return &progress{}
	}
	s := newSpinner(message)
	s.start()
	return &progress{spin: s}
}

func (p *progress) success(message string) {
	if p.spin != nil {
		p.spin.stopWithSuccess(message)
	}
}

func (p *progress) fail() {
	if p.spin != nil {
		p.spin.stopWithError()
	}
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isStdoutTTY returns true if stdout is connected to a terminal
func isStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// isStdinPiped reports whether stdin carries data rather than a terminal
func isStdinPiped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// readInput returns the joined args, or stdin when no args were given
func readInput(args []string, stdin io.Reader, piped bool) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	if !piped {
		return "", nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// bubbleWidth clamps the terminal width for rendered output
func bubbleWidth() int {
	return min(max(getTerminalWidth()-4, 40), 120)
}

// formatErrorMessage formats an error with additional context from structured errors
func formatErrorMessage(err error, context, backendURL string) string {
	if err == nil {
		return ""
	}

	errorStyle := lipgloss.NewStyle().Foreground(colorError)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %s: %v", context, err)))

	if status := apierrors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	switch {
	case apierrors.IsNetworkError(err):
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Hint: check that the backend is running at %s", backendURL)))
	case apierrors.IsParseError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: the backend answered with an unexpected payload; check the backend version"))
	case apierrors.IsAPIError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: the backend rejected the request; see its logs for details"))
	}

	return sb.String()
}
