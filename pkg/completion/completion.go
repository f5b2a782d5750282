// Package completion produces autocomplete suggestions for the search input,
// mirroring the search pipeline's normalization.
package completion

import (
	"sort"
	"strings"

	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// maxSuggestions bounds one completion response.
const maxSuggestions = 10

// Request is the inbound completion payload.
type Request struct {
	Input    string
	Lang     string
	Target   query.Target
	Radicals []rune
}

// SuggestionType discriminates the response flavor.
type SuggestionType int

const (
	SuggestionDefault SuggestionType = iota
	SuggestionKanjiReading
)

// WordPair is one suggestion: the primary form plus an optional secondary
// written form.
type WordPair struct {
	Primary   string
	Secondary string
}

// HasReading reports whether either form equals reading.
func (p WordPair) HasReading(reading string) bool {
	return p.Primary == reading || (p.Secondary != "" && p.Secondary == reading)
}

// Response is the completion result.
type Response struct {
	Suggestions []WordPair
	Type        SuggestionType
}

// Adjust folds IME artifacts off the raw input the same way the query parser
// does: a trailing fullwidth ｎ becomes ん and a dangling romaji tail on
// Japanese input is stripped.
func Adjust(req Request) Request {
	input := req.Input
	if query.ParseLang(input) != query.LangJapanese {
		return req
	}

	if strings.HasSuffix(input, "ｎ") {
		input = strings.TrimSuffix(input, "ｎ") + "ん"
	}

	runes := []rune(input)
	if len(runes) > 1 {
		stripped := len(runes)
		for stripped > 0 && len(runes)-stripped < 2 &&
			japanese.IsRomanLetter(runes[stripped-1]) &&
			!japanese.IsKana(runes[stripped-1]) && !japanese.IsKanji(runes[stripped-1]) {
			stripped--
		}
		if stripped < len(runes) && stripped > 0 && japanese.StrIsJapanese(string(runes[:stripped])) {
			input = string(runes[:stripped])
		}
	}

	req.Input = input
	return req
}

// Suggestions returns completion suggestions for the request. Validation
// failures yield query.ErrBadRequest.
func Suggestions(res *search.Resources, req Request) (*Response, error) {
	req = Adjust(req)

	length := japanese.RealLen(req.Input)
	if length < 1 || length > query.MaxQueryLen {
		return nil, query.ErrBadRequest
	}

	settings := query.DefaultSettings()
	settings.UserLang = storage.LanguageFromCode(req.Lang)
	q, err := query.NewParser(req.Input, req.Target, settings).Parse()
	if err != nil {
		return nil, err
	}
	q.Radicals = req.Radicals

	if q.Form == query.FormKanjiReading {
		return kanjiReadingSuggestions(res, q)
	}

	pairs := trySuggestions(res, q)

	// Hiragana queries with no hits retry as katakana (loanwords).
	if len(pairs) == 0 && japanese.StrIsHiragana(q.Query) {
		kq := *q
		kq.Query = japanese.HiraganaToKatakana(q.Query)
		pairs = trySuggestions(res, &kq)
	}

	return &Response{Suggestions: pairs, Type: SuggestionDefault}, nil
}

func trySuggestions(res *search.Resources, q *query.Query) []WordPair {
	switch q.Lang {
	case query.LangJapanese:
		return nativeSuggestions(res, q)
	default:
		pairs := foreignSuggestions(res, q)
		// Exact matches first.
		sort.SliceStable(pairs, func(i, j int) bool {
			return boolOrd(pairs[i].HasReading(q.Query), pairs[j].HasReading(q.Query))
		})
		return pairs
	}
}

func boolOrd(a, b bool) bool { return a && !b }

// nativeSuggestions prefix-searches the kana suggestion index. When radicals
// are posted, only words containing a kanji built from all of them remain.
func nativeSuggestions(res *search.Resources, q *query.Query) []WordPair {
	entries := res.WordSuggestions.Prefix(q.Query, maxSuggestions*2)

	var allowed map[rune]bool
	if len(q.Radicals) > 0 {
		allowed = make(map[rune]bool)
		for _, k := range res.Kanji.ByRadicals(q.Radicals) {
			allowed[k.Literal] = true
		}
	}

	var pairs []WordPair
	for _, e := range entries {
		if allowed != nil && !containsAllowedKanji(e.Secondary, allowed) {
			continue
		}
		pair := WordPair{Primary: e.Primary, Secondary: e.Secondary}
		if e.Secondary != "" {
			// Show the written form first like dictionary entries do.
			pair = WordPair{Primary: e.Secondary, Secondary: e.Primary}
		}
		pairs = append(pairs, pair)
		if len(pairs) >= maxSuggestions {
			break
		}
	}
	return pairs
}

func containsAllowedKanji(form string, allowed map[rune]bool) bool {
	for _, r := range form {
		if allowed[r] {
			return true
		}
	}
	return false
}

// foreignSuggestions prefix-searches the gloss suggestion index of the user
// language, falling back to English.
func foreignSuggestions(res *search.Resources, q *query.Query) []WordPair {
	lang := q.LangWithOverride()
	idx, ok := res.ForeignSuggestions[lang]
	if !ok {
		idx, ok = res.ForeignSuggestions[storage.English]
		if !ok {
			return nil
		}
	}

	var pairs []WordPair
	for _, e := range idx.Prefix(strings.ToLower(q.Query), maxSuggestions) {
		pairs = append(pairs, WordPair{Primary: e.Primary, Secondary: e.Secondary})
	}
	return pairs
}

// kanjiReadingSuggestions proposes the known readings of the literal matching
// the typed reading prefix.
func kanjiReadingSuggestions(res *search.Resources, q *query.Query) (*Response, error) {
	k, ok := res.Kanji.ByLiteral(q.KReading.Literal)
	if !ok {
		return &Response{Type: SuggestionKanjiReading}, nil
	}

	prefix := japanese.KatakanaToHiragana(q.KReading.Reading)
	var pairs []WordPair
	for _, reading := range append(append([]string{}, k.Kunyomi...), k.Onyomi...) {
		folded := japanese.KatakanaToHiragana(reading)
		if !strings.HasPrefix(strings.ReplaceAll(folded, ".", ""), prefix) {
			continue
		}
		pairs = append(pairs, WordPair{Primary: string(k.Literal) + " " + folded})
		if len(pairs) >= maxSuggestions {
			break
		}
	}
	return &Response{Suggestions: pairs, Type: SuggestionKanjiReading}, nil
}
