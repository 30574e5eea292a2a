// Package models contains data types and constants for the MediLingua client.
package models

import "sort"

// Backend endpoints, relative to the configured backend origin
const (
	DefaultBackendURL = "http://localhost:5001"

	EndpointDetect       = "/detect"
	EndpointTranslate    = "/translate"
	EndpointProcessImage = "/process_image"
)

// External reference views
const (
	SignLanguageSearchURL = "https://www.spreadthesign.com/en.us/search/?q="
	HospitalSearchURL     = "https://www.google.com/maps/search/hospitals/@%s,%s,13z"
)

// Fixed message texts shown in the chat
const (
	WelcomeID          = "welcome"
	WelcomeText        = "Welcome! Translate text or upload a prescription."
	NewChatWelcomeText = "How can I help you today?"

	TranslationFallbackText = "Translation failed"
	ServiceUnavailableText  = "Service unavailable."
	ImagePlaceholderFormat  = "Uploading and processing image: %s..."
	ImageServerErrorFormat  = "Error processing image: %s"
	ImageTransportErrorText = "Service unavailable. Failed to process image."

	LocationDeniedText      = "Please enable location services and try again."
	LocationUnsupportedText = "Geolocation is not supported on this system."
)

// Language defaults
const (
	DefaultDisplayLang = "en"
	DefaultSourceLang  = "en"
	DefaultTargetLang  = "hi"
	FallbackLocale     = "en-US"

	// TitleMaxLength is the number of characters of the triggering text kept as a conversation title
	TitleMaxLength = 30

	// DetectMinLength is the settled text length that must be exceeded before detection runs
	DetectMinLength = 10
)

// Language is a supported source/target language
type Language struct {
	Name string
	Code string
}

// languages lists every language the selectors accept, keyed by code
var languages = map[string]string{
	"en": "English",
	"hi": "Hindi",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"ar": "Arabic",
	"bn": "Bengali",
	"zh": "Chinese",
	"zt": "Chinese (Traditional)",
	"ja": "Japanese",
	"ko": "Korean",
	"ru": "Russian",
	"pt": "Portuguese",
	"pb": "Portuguese (Brazil)",
	"it": "Italian",
	"nl": "Dutch",
	"tr": "Turkish",
	"sq": "Albanian",
	"az": "Azerbaijani",
	"eu": "Basque",
	"bg": "Bulgarian",
	"ca": "Catalan",
	"cs": "Czech",
	"da": "Danish",
	"eo": "Esperanto",
	"et": "Estonian",
	"fi": "Finnish",
	"gl": "Galician",
	"el": "Greek",
	"he": "Hebrew",
	"hu": "Hungarian",
	"id": "Indonesian",
	"ga": "Irish",
	"ky": "Kyrgyz",
	"lv": "Latvian",
	"lt": "Lithuanian",
	"ms": "Malay",
	"nb": "Norwegian",
	"fa": "Persian",
	"pl": "Polish",
	"ro": "Romanian",
	"sk": "Slovak",
	"sl": "Slovenian",
	"sv": "Swedish",
	"tl": "Tagalog",
	"th": "Thai",
	"uk": "Ukrainian",
	"ur": "Urdu",
}

// speechLocales maps language codes to the locale used by speech capture and playback
var speechLocales = map[string]string{
	"en": "en-US",
	"hi": "hi-IN",
	"es": "es-ES",
	"fr": "fr-FR",
	"de": "de-DE",
	"ar": "ar-SA",
	"bn": "bn-IN",
	"zh": "zh-CN",
	"zt": "zh-TW",
	"ja": "ja-JP",
	"ko": "ko-KR",
	"ru": "ru-RU",
	"pt": "pt-PT",
	"pb": "pt-BR",
	"it": "it-IT",
	"nl": "nl-NL",
	"tr": "tr-TR",
}

// IsSupportedLanguage reports whether code is in the supported language set
func IsSupportedLanguage(code string) bool {
	_, ok := languages[code]
	return ok
}

// LanguageName returns the display name for a code, or the code itself
func LanguageName(code string) string {
	if name, ok := languages[code]; ok {
		return name
	}
	return code
}

// AllLanguages returns the supported languages sorted by display name
func AllLanguages() []Language {
	out := make([]Language, 0, len(languages))
	for code, name := range languages {
		out = append(out, Language{Name: name, Code: code})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// SpeechLocale returns the mapped speech locale for a language code
func SpeechLocale(code string) (string, bool) {
	locale, ok := speechLocales[code]
	return locale, ok
}

// CaptureLocale returns the recognizer locale for a language, falling back to en-US
func CaptureLocale(code string) string {
	if locale, ok := speechLocales[code]; ok {
		return locale
	}
	return FallbackLocale
}

// DefaultHeaders returns the headers sent with every JSON backend request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   "medilingua-cli",
	}
}
