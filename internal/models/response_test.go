package models

import "testing"

func TestTranslationText(t *testing.T) {
	var nilT *Translation
	if got := nilT.Text(); got != TranslationFallbackText {
		t.Errorf("nil Text() = %q", got)
	}
	if got := (&Translation{}).Text(); got != TranslationFallbackText {
		t.Errorf("empty Text() = %q", got)
	}
	if got := (&Translation{TranslatedText: "बुखार"}).Text(); got != "बुखार" {
		t.Errorf("Text() = %q", got)
	}
}

func TestTranslationBotMessage(t *testing.T) {
	tr := &Translation{
		TranslatedText:  "Tengo fiebre",
		Keywords:        []Keyword{{Term: "fiebre", English: "fever"}},
		Recommendations: []string{"Medicina General"},
		VisualAid:       "https://example.com/fever.png",
	}

	m := tr.BotMessage("es")
	if !m.IsBot() {
		t.Error("expected bot sender")
	}
	if m.Lang != "es" || m.Text != "Tengo fiebre" {
		t.Errorf("unexpected message: %+v", m)
	}
	if len(m.Keywords) != 1 || m.Keywords[0].English != "fever" {
		t.Errorf("keywords = %+v", m.Keywords)
	}
	if len(m.Recommendations) != 1 {
		t.Errorf("recommendations = %+v", m.Recommendations)
	}
	if !m.HasVisualAid() {
		t.Error("expected visual aid")
	}

	tr.Keywords[0].Term = "mutated"
	if m.Keywords[0].Term != "fiebre" {
		t.Error("BotMessage shares keyword slice with translation")
	}
}

func TestTranslationBotMessageDefaults(t *testing.T) {
	m := (&Translation{}).BotMessage("hi")
	if m.Text != TranslationFallbackText {
		t.Errorf("Text = %q", m.Text)
	}
	if m.Keywords == nil || len(m.Keywords) != 0 {
		t.Errorf("expected empty keywords, got %#v", m.Keywords)
	}
	if m.Recommendations == nil || len(m.Recommendations) != 0 {
		t.Errorf("expected empty recommendations, got %#v", m.Recommendations)
	}
	if m.HasVisualAid() {
		t.Error("expected no visual aid")
	}
}
