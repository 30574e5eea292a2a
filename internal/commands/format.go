package commands

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/diogo/medilingua/internal/models"
	"github.com/diogo/medilingua/internal/panels"
	"github.com/diogo/medilingua/internal/render"
)

// translationJSON builds the machine-readable form of a translation
func translationJSON(req models.TranslateRequest, tr *models.Translation) (string, error) {
	keywords := tr.Keywords
	if keywords == nil {
		keywords = []models.Keyword{}
	}
	recs := tr.Recommendations
	if recs == nil {
		recs = []string{}
	}

	out := "{}"
	var err error
	for _, field := range []struct {
		path  string
		value any
	}{
		{"source", req.Source},
		{"target", req.Target},
		{"text", req.Text},
		{"translatedText", tr.Text()},
		{"keywords", keywords},
		{"recommendations", recs},
		{"visualAid", tr.VisualAid},
	} {
		out, err = sjson.Set(out, field.path, field.value)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", field.path, err)
		}
	}
	return out, nil
}

// plainTranslation renders a translation without styling, for pipes and files
func plainTranslation(tr *models.Translation) string {
	var sb strings.Builder
	sb.WriteString(tr.Text())
	sb.WriteString("\n")

	if len(tr.Keywords) > 0 {
		sb.WriteString("\nMedical terms:\n")
		for _, kw := range tr.Keywords {
			sb.WriteString(fmt.Sprintf("  %s (%s)\n", kw.Term, kw.English))
		}
	}
	if len(tr.Recommendations) > 0 {
		sb.WriteString("\nPossible departments to consult:\n")
		for _, rec := range tr.Recommendations {
			sb.WriteString("  - " + rec + "\n")
		}
	}
	if tr.VisualAid != "" {
		sb.WriteString("\nAnatomical diagram: " + tr.VisualAid + "\n")
	}
	return sb.String()
}

// styledTranslation renders a translation the way the chat shows a bot message
func styledTranslation(tr *models.Translation, target string, opts render.Options, width int) string {
	var body strings.Builder
	for _, seg := range panels.Segments(tr.Text(), tr.Keywords) {
		if seg.Keyword {
			body.WriteString(keywordStyle.Render(seg.Text))
		} else {
			body.WriteString(seg.Text)
		}
	}

	sections := []string{body.String()}
	if len(tr.Keywords) > 0 {
		terms := make([]string, 0, len(tr.Keywords))
		for _, kw := range tr.Keywords {
			terms = append(terms, fmt.Sprintf("%s %s", keywordStyle.Render(kw.Term), dimStyle.Render("("+kw.English+")")))
		}
		sections = append(sections, strings.Join(terms, dimStyle.Render(" · ")))
	}
	if recs := render.Recommendations(tr.Recommendations, opts.WithWidth(width-6)); recs != "" {
		sections = append(sections, recs)
	}
	if tr.VisualAid != "" {
		sections = append(sections, dimStyle.Render("◆ Anatomical diagram: ")+tr.VisualAid)
	}

	label := botLabelStyle.Render(fmt.Sprintf("✚ MediLingua · %s", models.LanguageName(target)))
	return label + "\n" + botBubbleStyle.Width(width).Render(strings.Join(sections, "\n\n"))
}
