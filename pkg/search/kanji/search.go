// Package kanji implements the kanji search: by literal, by kana reading, by
// meaning and by radicals, with example words resolved from the kun/on
// dictionaries.
package kanji

import (
	"sort"
	"strings"

	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// exampleWordLimit bounds the loaded kun/on example words per kanji.
const exampleWordLimit = 10

// Item is one kanji result with its example words materialized.
type Item struct {
	Kanji    *storage.Kanji
	KunWords []*storage.Word
	OnWords  []*storage.Word
}

// Result is the outcome of a kanji search.
type Result struct {
	Items []Item
	Count int
}

// Search runs the kanji search for a parsed query.
func Search(res *search.Resources, q *query.Query) (*Result, error) {
	var literals []rune

	switch {
	case len(q.Radicals) > 0:
		for _, k := range res.Kanji.ByRadicals(q.Radicals) {
			literals = append(literals, k.Literal)
		}
	case q.Form == query.FormKanjiReading:
		literals = byReadingPair(res, q.KReading)
	case japanese.HasKanji(q.Query):
		for _, r := range q.Query {
			if japanese.IsKanji(r) && res.Kanji.HasLiteral(r) {
				literals = append(literals, r)
			}
		}
	case q.Lang == query.LangJapanese:
		literals = byKanaReading(res, q.Query)
	default:
		literals = byMeaning(res, q.Query)
	}

	if jlpt, ok := q.JlptTag(); ok {
		literals = filterJlpt(res, literals, jlpt)
	}

	total := len(literals)
	literals = paginate(literals, q.PageOffset, q.Settings.PageSize)

	items := make([]Item, 0, len(literals))
	for _, lit := range literals {
		k, ok := res.Kanji.ByLiteral(lit)
		if !ok {
			continue
		}
		items = append(items, Item{
			Kanji:    k,
			KunWords: loadExamples(res, k.KunDicts),
			OnWords:  loadExamples(res, k.OnDicts),
		})
	}
	return &Result{Items: items, Count: total}, nil
}

// byReadingPair matches kanji by an explicit literal+reading pair. Romaji
// readings are folded to kana first.
func byReadingPair(res *search.Resources, kr query.KanjiReading) []rune {
	reading := kr.Reading
	if !japanese.StrIsKana(reading) {
		reading = japanese.ToHiragana(reading)
	}
	k, ok := res.Kanji.ByLiteral(kr.Literal)
	if !ok || !k.HasReadingMatch(reading) {
		return nil
	}
	return []rune{kr.Literal}
}

// byKanaReading lists every kanji carrying the kana reading.
func byKanaReading(res *search.Resources, reading string) []rune {
	var out []rune
	res.Kanji.Iter(func(k *storage.Kanji) bool {
		if k.HasReadingMatch(reading) {
			out = append(out, k.Literal)
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// byMeaning matches kanji whose meaning list contains the query.
func byMeaning(res *search.Resources, meaning string) []rune {
	meaning = strings.ToLower(strings.TrimSpace(meaning))
	if meaning == "" {
		return nil
	}
	var out []rune
	res.Kanji.Iter(func(k *storage.Kanji) bool {
		for _, m := range k.Meanings {
			if strings.ToLower(m) == meaning {
				out = append(out, k.Literal)
				break
			}
		}
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func filterJlpt(res *search.Resources, literals []rune, jlpt uint8) []rune {
	out := literals[:0]
	for _, lit := range literals {
		if k, ok := res.Kanji.ByLiteral(lit); ok && k.JLPT == jlpt {
			out = append(out, lit)
		}
	}
	return out
}

func loadExamples(res *search.Resources, seqs []uint32) []*storage.Word {
	var out []*storage.Word
	for _, seq := range seqs {
		if len(out) >= exampleWordLimit {
			break
		}
		if w, ok := res.Words.BySequence(seq); ok {
			out = append(out, w)
		}
	}
	return out
}

func paginate(literals []rune, offset, size int) []rune {
	if offset >= len(literals) {
		return nil
	}
	literals = literals[offset:]
	if size > 0 && len(literals) > size {
		literals = literals[:size]
	}
	return literals
}
