package query

import (
	"strings"
	"unicode"

	"github.com/jcantosz/jotoba/pkg/japanese"
)

// Parser builds a Query from raw request input.
type Parser struct {
	raw      string
	target   Target
	settings UserSettings

	page      int
	wordIndex int
}

// NewParser creates a parser for the given input and search target.
func NewParser(raw string, target Target, settings UserSettings) *Parser {
	if settings.PageSize <= 0 {
		settings.PageSize = DefaultSettings().PageSize
	}
	return &Parser{raw: raw, target: target, settings: settings}
}

// WithPage sets the requested result page (1-based).
func (p *Parser) WithPage(page int) *Parser {
	p.page = page
	return p
}

// WithWordIndex selects the word of a parsed sentence.
func (p *Parser) WithWordIndex(index int) *Parser {
	p.wordIndex = index
	return p
}

// ParseLang detects the script of a string.
func ParseLang(s string) Lang {
	hasForeign := false
	for _, r := range s {
		switch {
		case japanese.IsKana(r) || japanese.IsKanji(r):
			return LangJapanese
		case r >= 0xAC00 && r <= 0xD7AF:
			return LangKorean
		case r > 0x7F && unicode.IsLetter(r):
			hasForeign = true
		}
	}
	if hasForeign {
		return LangForeign
	}
	return LangUndetected
}

// Parse validates and normalizes the input. The only failure mode is
// validation; classification itself never fails.
func (p *Parser) Parse() (*Query, error) {
	text := strings.TrimLeft(p.raw, " \t　")
	text, tags := extractTags(text)

	lang := ParseLang(text)
	text = normalizeJapanese(text, lang)

	tagOnly := text == "" && len(tags) > 0
	length := japanese.RealLen(text)
	if !tagOnly && (length < 1 || length > MaxQueryLen) {
		return nil, ErrBadRequest
	}

	q := &Query{
		Raw:           p.raw,
		Query:         text,
		Lang:          lang,
		Form:          FormNormal,
		Target:        p.target,
		Settings:      p.settings,
		Tags:          tags,
		WordIndex:     p.wordIndex,
		ParseJapanese: true,
	}
	if p.page > 1 {
		q.PageOffset = (p.page - 1) * p.settings.PageSize
	}

	switch {
	case tagOnly:
		q.Form = FormTagOnly
	case hasRegexMeta(text):
		q.Form = FormRegex
	default:
		if kr, ok := parseKanjiReading(text); ok {
			q.Form = FormKanjiReading
			q.KReading = kr
		}
	}
	return q, nil
}

// normalizeJapanese folds the IME artifacts of Japanese input: a trailing
// fullwidth ｎ becomes ん and an in-progress romaji tail is stripped.
func normalizeJapanese(text string, lang Lang) string {
	if lang != LangJapanese {
		return text
	}

	if strings.HasSuffix(text, "ｎ") {
		text = strings.TrimSuffix(text, "ｎ") + "ん"
	}

	runes := []rune(text)
	if len(runes) <= 1 {
		return text
	}

	// Strip up to two trailing roman letters when the rest stays Japanese.
	stripped := len(runes)
	for stripped > 0 && len(runes)-stripped < 2 && japanese.IsRomanLetter(runes[stripped-1]) && !japanese.IsKana(runes[stripped-1]) && !japanese.IsKanji(runes[stripped-1]) {
		stripped--
	}
	if stripped < len(runes) && stripped > 0 {
		rest := runes[:stripped]
		if japanese.StrIsJapanese(string(rest)) {
			return string(rest)
		}
	}
	return text
}

func hasRegexMeta(s string) bool {
	return strings.ContainsAny(s, "*?")
}

// parseKanjiReading recognizes a kanji literal paired with a kana reading,
// either spaced (音 おん) or dotted (音.おん).
func parseKanjiReading(s string) (KanjiReading, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '　' || r == '.' || r == '。'
	})
	if len(fields) != 2 {
		return KanjiReading{}, false
	}
	lit := []rune(fields[0])
	if len(lit) != 1 || !japanese.IsKanji(lit[0]) {
		return KanjiReading{}, false
	}
	reading := fields[1]
	if !japanese.StrIsKana(reading) {
		return KanjiReading{}, false
	}
	return KanjiReading{Literal: lit[0], Reading: reading}, true
}
