package models

// TranslateRequest is the body sent to the translate endpoint
type TranslateRequest struct {
	Text   string
	Source string
	Target string
}

// Translation represents a decoded translate response.
// Optional fields are already defaulted: empty slices and an empty visual aid.
type Translation struct {
	TranslatedText  string
	Keywords        []Keyword
	Recommendations []string
	VisualAid       string
}

// Text returns the translated text, or the fallback literal when absent
func (t *Translation) Text() string {
	if t == nil || t.TranslatedText == "" {
		return TranslationFallbackText
	}
	return t.TranslatedText
}

// BotMessage builds the chat message for this translation in lang
func (t *Translation) BotMessage(lang string) Message {
	m := NewBotMessage(t.Text(), lang)
	if t == nil {
		return m
	}
	if t.Keywords != nil {
		m.Keywords = append([]Keyword(nil), t.Keywords...)
	}
	if t.Recommendations != nil {
		m.Recommendations = append([]string(nil), t.Recommendations...)
	}
	m.VisualAid = t.VisualAid
	return m
}

// Coordinates is a geographic position
type Coordinates struct {
	Latitude  float64
	Longitude float64
}
