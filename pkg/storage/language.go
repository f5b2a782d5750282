// Package storage holds the process-wide dictionary stores. All stores are
// loaded once at startup, from SQLite or from in-memory fixtures, and are
// read-only afterwards.
package storage

import "strings"

// Language is a translation target language.
type Language int

const (
	English Language = iota
	German
	Spanish
	Russian
	Swedish
	French
	Dutch
	Hungarian
	Slovenian
)

var languageCodes = map[string]Language{
	"en":    English,
	"en-US": English,
	"de":    German,
	"de-DE": German,
	"es":    Spanish,
	"es-ES": Spanish,
	"ru":    Russian,
	"sv":    Swedish,
	"sv-SE": Swedish,
	"fr":    French,
	"fr-FR": French,
	"nl":    Dutch,
	"nl-NL": Dutch,
	"hu":    Hungarian,
	"sl":    Slovenian,
	"sl-SI": Slovenian,
}

var languageNames = map[Language]string{
	English:   "en",
	German:    "de",
	Spanish:   "es",
	Russian:   "ru",
	Swedish:   "sv",
	French:    "fr",
	Dutch:     "nl",
	Hungarian: "hu",
	Slovenian: "sl",
}

// LanguageFromCode parses a language code, defaulting to English.
func LanguageFromCode(code string) Language {
	if lang, ok := languageCodes[strings.TrimSpace(code)]; ok {
		return lang
	}
	if idx := strings.IndexByte(code, '-'); idx > 0 {
		if lang, ok := languageCodes[code[:idx]]; ok {
			return lang
		}
	}
	return English
}

// Code returns the short code of the language.
func (l Language) Code() string {
	if name, ok := languageNames[l]; ok {
		return name
	}
	return "en"
}

// AllLanguages lists every supported translation language.
func AllLanguages() []Language {
	return []Language{English, German, Spanish, Russian, Swedish, French, Dutch, Hungarian, Slovenian}
}
