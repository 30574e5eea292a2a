package api

import (
	"context"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	apierrors "github.com/diogo/medilingua/internal/errors"
	"github.com/diogo/medilingua/internal/models"
)

// Detect asks the backend for the language of text and returns its code
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("text cannot be empty")
	}

	body, err := sjson.Set("{}", FieldText, text)
	if err != nil {
		return "", fmt.Errorf("failed to build payload: %w", err)
	}

	respBody, status, err := c.post(ctx, models.EndpointDetect, "", []byte(body))
	if err != nil {
		return "", err
	}
	if !isSuccess(status) {
		return "", apierrors.NewAPIError(status, models.EndpointDetect, errorMessage(respBody))
	}

	return parseDetectResponse(respBody)
}

// Translate sends text for translation and keyword/department analysis
func (c *Client) Translate(ctx context.Context, req models.TranslateRequest) (*models.Translation, error) {
	payload, err := buildTranslatePayload(req)
	if err != nil {
		return nil, fmt.Errorf("failed to build payload: %w", err)
	}

	respBody, status, err := c.post(ctx, models.EndpointTranslate, "", []byte(payload))
	if err != nil {
		return nil, err
	}
	if !isSuccess(status) {
		// An unreadable error body is indistinguishable from a broken backend
		if !gjson.ValidBytes(respBody) {
			return nil, apierrors.NewParseError("error response is not valid JSON", "")
		}
		return nil, apierrors.NewAPIError(status, models.EndpointTranslate, errorMessage(respBody))
	}

	return parseTranslateResponse(respBody)
}

func buildTranslatePayload(req models.TranslateRequest) (string, error) {
	payload := "{}"
	var err error
	for _, field := range []struct {
		path  string
		value string
	}{
		{FieldText, req.Text},
		{FieldSource, req.Source},
		{FieldTarget, req.Target},
	} {
		payload, err = sjson.Set(payload, field.path, field.value)
		if err != nil {
			return "", err
		}
	}
	return payload, nil
}

func parseDetectResponse(body []byte) (string, error) {
	if !gjson.ValidBytes(body) {
		return "", apierrors.NewParseError("response is not valid JSON", "")
	}
	lang := gjson.GetBytes(body, PathLanguage)
	if !lang.Exists() || lang.String() == "" {
		return "", apierrors.NewParseError("missing language", PathLanguage)
	}
	return lang.String(), nil
}

// parseTranslateResponse decodes a translate body, defaulting every optional field
func parseTranslateResponse(body []byte) (*models.Translation, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("response is not valid JSON", "")
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, apierrors.NewParseError("response is not an object", "")
	}

	out := &models.Translation{
		TranslatedText:  root.Get(PathTranslatedText).String(),
		Keywords:        []models.Keyword{},
		Recommendations: []string{},
	}

	root.Get(PathKeywords).ForEach(func(_, kw gjson.Result) bool {
		term := kw.Get(PathKeywordTerm).String()
		if term == "" {
			return true
		}
		out.Keywords = append(out.Keywords, models.Keyword{
			Term:    term,
			English: kw.Get(PathKeywordEnglish).String(),
		})
		return true
	})

	root.Get(PathRecommendations).ForEach(func(_, rec gjson.Result) bool {
		if s := rec.String(); s != "" {
			out.Recommendations = append(out.Recommendations, s)
		}
		return true
	})

	if aid := root.Get(PathVisualAid); aid.Type == gjson.String {
		out.VisualAid = aid.String()
	}

	return out, nil
}

// errorMessage extracts the backend's {error} field, falling back to the raw body
func errorMessage(body []byte) string {
	if msg := gjson.GetBytes(body, PathError); msg.Exists() {
		return msg.String()
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
