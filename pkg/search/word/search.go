package word

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jcantosz/jotoba/pkg/engine"
	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// kanjiInfoWords bounds how many top results contribute kanji records.
const kanjiInfoWords = 10

// Search runs the word pipeline for a parsed query.
func Search(res *search.Resources, q *query.Query) (*WordResult, error) {
	switch q.Form {
	case query.FormKanjiReading:
		return byKanjiReading(res, q)
	case query.FormTagOnly:
		return tagOnly(res, q)
	default:
		return producerSearch(res, q)
	}
}

func producerSearch(res *search.Resources, q *query.Query) (*WordResult, error) {
	var rq *engine.RegexQuery
	if q.IsRegex() {
		compiled, err := engine.NewRegexQuery(q.Query)
		switch {
		case err == nil:
			rq = compiled
		case japanese.RealLen(q.Query) >= 2 || japanese.HasKanji(q.Query):
			// Long enough yet uncompilable: a genuinely malformed pattern.
			return nil, fmt.Errorf("%w: %s", query.ErrBadRequest, q.Query)
		}
		// Too-short wildcard queries silently fall through to the other
		// producers.
	}

	out := search.NewOutputBuilder[*storage.Word, *AddResData](
		q.Settings.PageSize+q.PageOffset,
		languageFilter(q),
	)
	out.Output = &AddResData{}

	producers := []search.Producer[*storage.Word, *AddResData]{
		&regexProducer{res: res, q: q, rq: rq},
		newSentenceReaderProducer(res, q),
		&nativeProducer{res: res, q: q},
		&glossProducer{res: res, q: q},
		&romajiProducer{res: res, q: q},
	}
	search.RunProducers(producers, out)

	items := out.Items()
	total := len(items)
	if q.PageOffset < len(items) {
		items = items[q.PageOffset:]
	} else {
		items = nil
	}

	words := materializeWords(items, q)

	searched := out.Output.RawQuery
	if searched == "" {
		searched = q.Query
	}

	result := &WordResult{
		Words:          words,
		Kanji:          loadWordKanjiInfo(res, words),
		Count:          total,
		InflectionInfo: out.Output.Inflection,
		SentenceIndex:  q.WordIndex,
		SearchedQuery:  searched,
	}
	if out.Output.Sentence != nil {
		result.SentenceParts = out.Output.Sentence.Parts
		result.SentenceIndex = out.Output.Sentence.Index
		result.SearchedQuery = out.Output.Sentence.Query
	}
	return result, nil
}

// languageFilter builds the output builder's reject predicate: language
// availability and misc tags. POS filters stay per-task since the sentence
// reader disables them.
func languageFilter(q *query.Query) func(*storage.Word) bool {
	miscTags := q.MiscTags()
	return func(w *storage.Word) bool {
		if !w.HasLanguage(q.Settings.UserLang, q.Settings.ShowEnglish) {
			return true
		}
		for _, misc := range miscTags {
			if !w.HasMisc(misc) {
				return true
			}
		}
		return false
	}
}

// materializeWords copies the ranked words and filters their senses to the
// user language. Words losing every sense are dropped; store entries are
// never mutated.
func materializeWords(items []engine.ResultItem[*storage.Word], q *query.Query) []*storage.Word {
	lang := q.Settings.UserLang
	if q.LangOverride != nil {
		lang = *q.LangOverride
	}

	words := make([]*storage.Word, 0, len(items))
	for _, item := range items {
		words = append(words, item.Item)
	}
	return filterSenses(words, lang, q.Settings.ShowEnglish)
}

// filterSenses copies words and restricts their senses to lang (plus English
// when allowed). Words losing every sense are dropped; store entries are
// never mutated.
func filterSenses(words []*storage.Word, lang storage.Language, showEnglish bool) []*storage.Word {
	out := make([]*storage.Word, 0, len(words))
	for _, w := range words {
		cp := *w
		cp.Senses = append([]storage.Sense{}, w.Senses...)
		if !cp.FilterSenses(lang, showEnglish) {
			continue
		}
		out = append(out, &cp)
	}
	return out
}

// loadWordKanjiInfo collects the kanji records of the top results, in first
// appearance order.
func loadWordKanjiInfo(res *search.Resources, words []*storage.Word) []*storage.Kanji {
	var out []*storage.Kanji
	seen := map[rune]bool{}
	for i, w := range words {
		if i >= kanjiInfoWords {
			break
		}
		for _, literal := range w.Kanji() {
			if seen[literal] {
				continue
			}
			seen[literal] = true
			if k, ok := res.Kanji.ByLiteral(literal); ok {
				out = append(out, k)
			}
		}
	}
	return out
}

// byKanjiReading finds the words exercising a kanji literal with a given
// reading, using the kanji record's kun/on dictionaries.
func byKanjiReading(res *search.Resources, q *query.Query) (*WordResult, error) {
	k, ok := res.Kanji.ByLiteral(q.KReading.Literal)
	if !ok {
		return &WordResult{SearchedQuery: q.Query}, nil
	}

	reading := japanese.KatakanaToHiragana(q.KReading.Reading)
	seqs := k.OnDicts
	if isKunReading(k, reading) {
		seqs = k.KunDicts
	}

	var words []*storage.Word
	for _, seq := range seqs {
		if w, ok := res.Words.BySequence(seq); ok {
			words = append(words, w)
		}
	}
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].IsCommon() != words[j].IsCommon() {
			return words[i].IsCommon()
		}
		return words[i].Sequence < words[j].Sequence
	})

	total := len(words)
	words = filterSenses(paginate(words, q.PageOffset, q.Settings.PageSize), q.Settings.UserLang, q.Settings.ShowEnglish)
	return &WordResult{
		Words:         words,
		Kanji:         loadWordKanjiInfo(res, words),
		Count:         total,
		SearchedQuery: q.Query,
	}, nil
}

func isKunReading(k *storage.Kanji, reading string) bool {
	for _, kun := range k.Kunyomi {
		folded := japanese.KatakanaToHiragana(kun)
		if folded == reading || strings.ReplaceAll(folded, ".", "") == reading {
			return true
		}
		if idx := strings.IndexByte(folded, '.'); idx >= 0 && folded[:idx] == reading {
			return true
		}
	}
	return false
}

// tagOnly lists words by tag filters alone. Only tags allowing an empty
// query are valid entry points.
func tagOnly(res *search.Resources, q *query.Query) (*WordResult, error) {
	valid := false
	for _, t := range q.Tags {
		if t.AllowsEmptyQuery() {
			valid = true
			break
		}
	}
	if !valid {
		return nil, fmt.Errorf("%w: tag-only search without a listable tag", search.ErrUnexpected)
	}

	jlpt, hasJlpt := q.JlptTag()
	if !hasJlpt {
		return &WordResult{SearchedQuery: q.Raw}, nil
	}
	if jlpt < 1 || jlpt > 5 {
		return nil, errors.New("jlpt level out of range")
	}

	var words []*storage.Word
	res.Words.Iter(func(w *storage.Word) bool {
		if w.JLPT == jlpt {
			words = append(words, w)
		}
		return true
	})
	sort.SliceStable(words, func(i, j int) bool {
		if words[i].IsCommon() != words[j].IsCommon() {
			return words[i].IsCommon()
		}
		return words[i].Sequence < words[j].Sequence
	})

	total := len(words)
	words = filterSenses(paginate(words, q.PageOffset, q.Settings.PageSize), q.Settings.UserLang, q.Settings.ShowEnglish)
	return &WordResult{
		Words:         words,
		Count:         total,
		SearchedQuery: q.Raw,
	}, nil
}

func paginate[T any](items []T, offset, size int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if size > 0 && len(items) > size {
		items = items[:size]
	}
	return items
}
