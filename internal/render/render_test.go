package render

import (
	"strings"
	"testing"

	"github.com/diogo/medilingua/internal/config"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.Width != 80 {
		t.Errorf("expected Width=80, got %d", opts.Width)
	}
	if opts.Style != StyleDark {
		t.Errorf("expected Style=dark, got %s", opts.Style)
	}
	if !opts.PreserveNewLines {
		t.Error("expected PreserveNewLines=true")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().WithWidth(100).WithStyle(StyleLight)

	if opts.Width != 100 || opts.Style != StyleLight {
		t.Errorf("opts = %+v", opts)
	}
}

func TestOptionsFromConfig(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", "")

	opts := OptionsFromConfig(config.MarkdownConfig{Style: StyleClinic, EnableEmoji: true})
	if opts.Style != StyleClinic {
		t.Errorf("Style = %s, want clinic", opts.Style)
	}
	if !opts.EnableEmoji || opts.PreserveNewLines {
		t.Errorf("booleans not taken from config: %+v", opts)
	}

	empty := OptionsFromConfig(config.MarkdownConfig{})
	if empty.Style != StyleDark {
		t.Errorf("empty style should default to dark, got %s", empty.Style)
	}
}

func TestOptionsFromConfig_EnvOverride(t *testing.T) {
	t.Setenv("GLAMOUR_STYLE", StyleDracula)

	opts := OptionsFromConfig(config.MarkdownConfig{Style: StyleLight})
	if opts.Style != StyleDracula {
		t.Errorf("Style = %s, want dracula from env", opts.Style)
	}
}

func TestMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"plain text", "Take with food", "Take with food"},
		{"heading", "# Dosage", "Dosage"},
		{"list", "- Cardiology\n- Neurology", "Neurology"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Markdown(tt.input, DefaultOptions().WithStyle(StyleNoTTY))
			if err != nil {
				t.Fatalf("Markdown failed: %v", err)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("output %q missing %q", out, tt.contains)
			}
		})
	}
}

func TestMarkdown_AllBuiltinStyles(t *testing.T) {
	for _, name := range StyleNames() {
		t.Run(name, func(t *testing.T) {
			if _, err := Markdown("## Orthopedics", DefaultOptions().WithStyle(name)); err != nil {
				t.Errorf("style %s failed: %v", name, err)
			}
		})
	}
}

func TestMarkdown_MissingStyleFile(t *testing.T) {
	ClearCache()
	_, err := Markdown("text", DefaultOptions().WithStyle("/nonexistent/style.json"))
	if err == nil {
		t.Error("expected error for missing style file")
	}
}

func TestMarkdownWithWidth(t *testing.T) {
	out, err := MarkdownWithWidth("hello", 40)
	if err != nil {
		t.Fatalf("MarkdownWithWidth failed: %v", err)
	}
	if !strings.Contains(out, "hello") {
		t.Errorf("output %q missing text", out)
	}
}

func TestRecommendationsMarkdown(t *testing.T) {
	if got := RecommendationsMarkdown(nil); got != "" {
		t.Errorf("empty recommendations should render nothing, got %q", got)
	}

	md := RecommendationsMarkdown([]string{"Orthopedics", "Physiotherapy"})
	for _, want := range []string{"## Possible Departments to Consult", "- Orthopedics\n", "- Physiotherapy\n"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown %q missing %q", md, want)
		}
	}
}

func TestRecommendations(t *testing.T) {
	out := Recommendations([]string{"Cardiology"}, DefaultOptions().WithStyle(StyleNoTTY))
	if !strings.Contains(out, "Cardiology") || !strings.Contains(out, RecommendationsHeading) {
		t.Errorf("rendered panel = %q", out)
	}
	if Recommendations(nil, DefaultOptions()) != "" {
		t.Error("no recommendations should render empty panel")
	}
}

func TestCache(t *testing.T) {
	ClearCache()
	if CacheSize() != 0 {
		t.Fatalf("CacheSize = %d after clear", CacheSize())
	}

	opts := DefaultOptions().WithStyle(StyleASCII)
	_, _ = Markdown("a", opts)
	_, _ = Markdown("b", opts)
	if CacheSize() != 1 {
		t.Errorf("CacheSize = %d, want 1 for identical options", CacheSize())
	}

	_, _ = Markdown("c", opts.WithWidth(40))
	if CacheSize() != 2 {
		t.Errorf("CacheSize = %d, want 2", CacheSize())
	}
}
