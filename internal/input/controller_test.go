package input

import (
	"errors"
	"testing"
	"time"
)

func TestNewController_Defaults(t *testing.T) {
	c := NewController()

	if c.Source() != "en" || c.Target() != "hi" {
		t.Errorf("languages = %s->%s, want en->hi", c.Source(), c.Target())
	}
	if c.Draft() != "" {
		t.Errorf("Draft = %q, want empty", c.Draft())
	}
	if c.Delay() != time.Second {
		t.Errorf("Delay = %v, want 1s", c.Delay())
	}
}

func TestNewController_Options(t *testing.T) {
	c := NewController(
		WithLanguages("fr", "xx"),
		WithDetectDelay(250*time.Millisecond),
		WithLogger(nil),
	)

	if c.Source() != "fr" {
		t.Errorf("Source = %s, want fr", c.Source())
	}
	if c.Target() != "hi" {
		t.Errorf("unsupported target should be ignored, got %s", c.Target())
	}
	if c.Delay() != 250*time.Millisecond {
		t.Errorf("Delay = %v", c.Delay())
	}
}

func TestController_SetLanguages(t *testing.T) {
	c := NewController()

	if err := c.SetSource("es"); err != nil {
		t.Errorf("SetSource(es) error: %v", err)
	}
	if err := c.SetTarget("ur"); err != nil {
		t.Errorf("SetTarget(ur) error: %v", err)
	}
	if err := c.SetSource("klingon"); err == nil {
		t.Error("SetSource should reject unsupported code")
	}
	if err := c.SetTarget(""); err == nil {
		t.Error("SetTarget should reject empty code")
	}
	if c.Source() != "es" || c.Target() != "ur" {
		t.Errorf("languages = %s->%s, want es->ur", c.Source(), c.Target())
	}
}

func TestShouldDetect(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", false},
		{"hello", false},
		{"0123456789", false},
		{"   0123456789   ", false},
		{"01234567890", true},
		{"मेरे सिर में दर्द है", true},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ShouldDetect(tt.text); got != tt.want {
				t.Errorf("ShouldDetect(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestController_SettledOnlyForLatestEdit(t *testing.T) {
	c := NewController()

	g1 := c.SetDraft("my head")
	g2 := c.SetDraft("my head hurts")
	g3 := c.SetDraft("my head hurts a lot")

	for _, g := range []uint64{g1, g2} {
		if _, ok := c.Settled(g); ok {
			t.Errorf("stale generation %d reported settled", g)
		}
	}

	text, ok := c.Settled(g3)
	if !ok {
		t.Fatal("latest generation should be settled")
	}
	if text != "my head hurts a lot" {
		t.Errorf("settled text = %q", text)
	}
}

// A burst of keystrokes yields exactly one detection when the last tick fires
func TestController_DetectOncePerQuietPeriod(t *testing.T) {
	c := NewController()

	var gens []uint64
	for _, draft := range []string{"m", "my", "my s", "my stomach", "my stomach aches"} {
		gens = append(gens, c.SetDraft(draft))
	}

	detections := 0
	for _, g := range gens {
		if text, ok := c.Settled(g); ok && ShouldDetect(text) {
			detections++
		}
	}
	if detections != 1 {
		t.Errorf("detections = %d, want 1", detections)
	}
}

func TestController_ApplyDetected(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		wantOK     bool
		wantSource string
	}{
		{"same as current", "en", false, "en"},
		{"unsupported", "zz", false, "en"},
		{"empty", "", false, "en"},
		{"supported", "hi", true, "hi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			if got := c.ApplyDetected(tt.code); got != tt.wantOK {
				t.Errorf("ApplyDetected(%q) = %v, want %v", tt.code, got, tt.wantOK)
			}
			if c.Source() != tt.wantSource {
				t.Errorf("Source = %s, want %s", c.Source(), tt.wantSource)
			}
		})
	}
}

func TestController_DetectFailedLeavesSource(t *testing.T) {
	c := NewController()
	c.DetectFailed(errors.New("boom"))
	if c.Source() != "en" {
		t.Errorf("Source = %s, want en", c.Source())
	}
}

func TestController_ClearDraft(t *testing.T) {
	c := NewController()
	g := c.SetDraft("hello")
	c.ClearDraft()

	if c.Draft() != "" {
		t.Errorf("Draft = %q, want empty", c.Draft())
	}
	if _, ok := c.Settled(g); ok {
		t.Error("clearing the draft should invalidate pending ticks")
	}
}
