// Package panels holds the state behind the auxiliary views around a chat:
// keyword highlighting, department recommendations, the visual aid and the
// sign-language lookup.
package panels

import (
	"net/url"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/diogo/medilingua/internal/models"
)

// Segment is a run of message text; keyword segments carry the English term
type Segment struct {
	Text    string
	Keyword bool
	English string
}

// Segments splits text so that every case-insensitive occurrence of a keyword
// term becomes its own segment. Longer terms win when terms overlap.
func Segments(text string, keywords []models.Keyword) []Segment {
	re, terms := keywordPattern(keywords)
	if re == nil || text == "" {
		if text == "" {
			return nil
		}
		return []Segment{{Text: text}}
	}

	var segs []Segment
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			segs = append(segs, Segment{Text: text[last:loc[0]]})
		}
		match := text[loc[0]:loc[1]]
		segs = append(segs, Segment{
			Text:    match,
			Keyword: true,
			English: englishFor(terms, match),
		})
		last = loc[1]
	}
	if last < len(text) {
		segs = append(segs, Segment{Text: text[last:]})
	}
	return segs
}

// keywordPattern builds a longest-first alternation over the non-empty terms.
// The returned keywords keep their input order for englishFor.
func keywordPattern(keywords []models.Keyword) (*regexp.Regexp, []models.Keyword) {
	kept := make([]models.Keyword, 0, len(keywords))
	for _, kw := range keywords {
		if kw.Term != "" {
			kept = append(kept, kw)
		}
	}
	if len(kept) == 0 {
		return nil, nil
	}

	terms := make([]string, len(kept))
	for i, kw := range kept {
		terms[i] = kw.Term
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return utf8.RuneCountInString(terms[i]) > utf8.RuneCountInString(terms[j])
	})

	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile("(?i)(" + strings.Join(quoted, "|") + ")"), kept
}

// englishFor resolves a matched span with the same case folding the pattern
// uses. When several keywords share a term the last one wins.
func englishFor(keywords []models.Keyword, match string) string {
	for i := len(keywords) - 1; i >= 0; i-- {
		if strings.EqualFold(keywords[i].Term, match) {
			return keywords[i].English
		}
	}
	return ""
}

// SignLookupURL returns the sign-language dictionary search for an English term
func SignLookupURL(english string) string {
	// encodeURIComponent semantics: spaces become %20, not +
	q := strings.ReplaceAll(url.QueryEscape(english), "+", "%20")
	return models.SignLanguageSearchURL + q
}
