// Package query parses and validates raw user input into the immutable Query
// consumed by the search pipelines.
package query

import (
	"errors"
	"strings"

	"github.com/jcantosz/jotoba/pkg/storage"
)

// ErrBadRequest is returned when validation rejects the input.
var ErrBadRequest = errors.New("bad request")

// MaxQueryLen is the maximum accepted query length in code points.
const MaxQueryLen = 37

// Lang is the detected script of the raw input.
type Lang int

const (
	LangUndetected Lang = iota
	LangJapanese
	LangForeign
	LangKorean
)

// Form is the structural form of the query.
type Form int

const (
	FormNormal Form = iota
	FormRegex
	FormTagOnly
	FormKanjiReading
)

// Target selects the searched collection.
type Target int

const (
	TargetWords Target = iota
	TargetKanji
	TargetSentences
	TargetNames
)

// TargetFromName parses a target name, defaulting to words.
func TargetFromName(name string) Target {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "kanji":
		return TargetKanji
	case "sentences", "sentence":
		return TargetSentences
	case "names", "name":
		return TargetNames
	default:
		return TargetWords
	}
}

// KanjiReading is the literal/reading pair of a kanji-reading query.
type KanjiReading struct {
	Literal rune
	Reading string
}

// UserSettings carries the per-user options influencing a search.
type UserSettings struct {
	UserLang    storage.Language
	ShowEnglish bool
	PageSize    int
}

// DefaultSettings returns the settings used when the caller provides none.
func DefaultSettings() UserSettings {
	return UserSettings{UserLang: storage.English, ShowEnglish: true, PageSize: 10}
}

// Query is the parsed, validated and normalized search input. It is immutable
// after construction.
type Query struct {
	Raw           string
	Query         string
	Lang          Lang
	Form          Form
	Target        Target
	Settings      UserSettings
	KReading      KanjiReading
	Tags          []Tag
	LangOverride  *storage.Language
	PageOffset    int
	WordIndex     int
	ParseJapanese bool
	UseOriginal   bool
	Radicals      []rune
}

// IsRegex reports whether the query is a wildcard search.
func (q *Query) IsRegex() bool { return q.Form == FormRegex }

// LangWithOverride returns the effective translation language.
func (q *Query) LangWithOverride() storage.Language {
	if q.LangOverride != nil {
		return *q.LangOverride
	}
	return q.Settings.UserLang
}

// WithLangOverride returns a copy of the query searching in lang.
func (q *Query) WithLangOverride(lang storage.Language) *Query {
	cp := *q
	cp.LangOverride = &lang
	return &cp
}

// PosTags returns the simple POS filters among the query tags.
func (q *Query) PosTags() []storage.PosSimple {
	var out []storage.PosSimple
	for _, t := range q.Tags {
		if t.Kind == TagPos {
			out = append(out, t.Pos)
		}
	}
	return out
}

// MiscTags returns the misc filters among the query tags.
func (q *Query) MiscTags() []string {
	var out []string
	for _, t := range q.Tags {
		if t.Kind == TagMisc {
			out = append(out, t.Misc)
		}
	}
	return out
}

// HasTag reports whether the query carries the given tag kind.
func (q *Query) HasTag(kind TagKind) bool {
	for _, t := range q.Tags {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// JlptTag returns the JLPT filter level if present.
func (q *Query) JlptTag() (uint8, bool) {
	for _, t := range q.Tags {
		if t.Kind == TagJlpt {
			return t.Jlpt, true
		}
	}
	return 0, false
}
