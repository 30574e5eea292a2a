package panels

import (
	"github.com/atotto/clipboard"
)

// CopyFunc writes text to the system clipboard
type CopyFunc func(string) error

// Recommendations tracks which messages have their department panel open.
// Panels start hidden.
type Recommendations struct {
	open map[string]bool
}

// NewRecommendations creates an all-hidden recommendation state
func NewRecommendations() *Recommendations {
	return &Recommendations{open: make(map[string]bool)}
}

// Toggle flips the panel for a message and returns the new visibility
func (r *Recommendations) Toggle(messageID string) bool {
	r.open[messageID] = !r.open[messageID]
	return r.open[messageID]
}

// Visible reports whether a message's panel is open
func (r *Recommendations) Visible(messageID string) bool {
	return r.open[messageID]
}

// Reset hides every panel
func (r *Recommendations) Reset() {
	r.open = make(map[string]bool)
}

// ExternalView is a full-screen view of a link outside the chat, such as the
// visual aid image or a sign-language lookup
type ExternalView struct {
	Title string
	URL   string

	// Copied is set once the URL reached the clipboard
	Copied bool
	Err    error
}

// Viewer manages the single external view shown over the chat
type Viewer struct {
	copy    CopyFunc
	current *ExternalView
}

// NewViewer creates a viewer copying links with copyFn; nil uses the system clipboard
func NewViewer(copyFn CopyFunc) *Viewer {
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	return &Viewer{copy: copyFn}
}

// Open shows url, replacing any open view, and tries to copy it
func (v *Viewer) Open(title, url string) *ExternalView {
	view := &ExternalView{Title: title, URL: url}
	if err := v.copy(url); err != nil {
		view.Err = err
	} else {
		view.Copied = true
	}
	v.current = view
	return view
}

// OpenVisualAid opens the active visual aid; false when there is none
func (v *Viewer) OpenVisualAid(ref string) (*ExternalView, bool) {
	if ref == "" {
		return nil, false
	}
	return v.Open("Anatomical diagram", ref), true
}

// OpenSignLookup opens the sign-language dictionary for an English term
func (v *Viewer) OpenSignLookup(english string) *ExternalView {
	return v.Open("Sign language: "+english, SignLookupURL(english))
}

// Current returns the open view, or nil
func (v *Viewer) Current() *ExternalView {
	return v.current
}

// Close discards the open view
func (v *Viewer) Close() {
	v.current = nil
}
