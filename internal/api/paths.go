// Package api provides the MediLingua backend client implementation.
package api

// GJSON paths for extracting values from backend responses.
const (
	PathLanguage        = "language"
	PathTranslatedText  = "translatedText"
	PathKeywords        = "keywords"
	PathKeywordTerm     = "term"
	PathKeywordEnglish  = "english"
	PathRecommendations = "recommendations"
	PathVisualAid       = "visualAid"
	PathExtractedText   = "extractedText"
	PathError           = "error"
)

// SJSON paths for building request bodies.
const (
	FieldText   = "text"
	FieldSource = "source"
	FieldTarget = "target"
)
