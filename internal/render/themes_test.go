package render

import (
	"testing"
)

func TestIsBuiltinStyle(t *testing.T) {
	for _, name := range StyleNames() {
		if !IsBuiltinStyle(name) {
			t.Errorf("%s should be built-in", name)
		}
	}
	for _, name := range []string{"", "pink-ish", "/tmp/theme.json"} {
		if IsBuiltinStyle(name) {
			t.Errorf("%q should not be built-in", name)
		}
	}
}

func TestAvailableStyles(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range AvailableStyles() {
		if s.Description == "" {
			t.Errorf("style %s has no description", s.Name)
		}
		if seen[s.Name] {
			t.Errorf("duplicate style %s", s.Name)
		}
		seen[s.Name] = true
	}
	if !seen[StyleDark] {
		t.Error("dark style missing")
	}
}

func TestClinicStyle(t *testing.T) {
	s := clinicStyle()
	if s.H2.Prefix != "+ " {
		t.Errorf("H2 prefix = %q", s.H2.Prefix)
	}
	if s.H2.Color == nil || *s.H2.Color != "#7dcfff" {
		t.Error("H2 colour not set")
	}
}
