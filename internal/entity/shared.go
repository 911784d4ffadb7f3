package entity

import "strings"

// Language represents supported language codes using ISO-style abbreviations.
type Language string

const (
	LanguageUnspecified Language = ""
	LanguageHindi       Language = "hi"
	LanguageKannada     Language = "kn"
	LanguageBengali     Language = "bn"
	LanguageMarathi     Language = "mr"
	LanguageTamil       Language = "ta"
	LanguageTelugu      Language = "te"
	LanguageEnglish     Language = "en"
)

var languageNames = map[Language]string{
	LanguageHindi:   "Hindi",
	LanguageKannada: "Kannada",
	LanguageBengali: "Bengali",
	LanguageMarathi: "Marathi",
	LanguageTamil:   "Tamil",
	LanguageTelugu:  "Telugu",
	LanguageEnglish: "English",
}

// Code returns the lowercase language code (without defaulting).
func (l Language) Code() string {
	return strings.TrimSpace(string(l))
}

// Display returns the human-readable name for the language, falling back to
// the raw code for values outside the supported set.
func (l Language) Display() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return l.Code()
}

// ParseLanguage converts an arbitrary string into a supported Language value.
// Both ISO codes ("hi") and English names ("Hindi") are accepted.
func ParseLanguage(value string) Language {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "":
		return LanguageUnspecified
	case "hi", "hindi":
		return LanguageHindi
	case "kn", "kannada":
		return LanguageKannada
	case "bn", "bengali":
		return LanguageBengali
	case "mr", "marathi":
		return LanguageMarathi
	case "ta", "tamil":
		return LanguageTamil
	case "te", "telugu":
		return LanguageTelugu
	case "en", "english":
		return LanguageEnglish
	default:
		return LanguageUnspecified
	}
}
