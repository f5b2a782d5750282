// Package name implements the name search over the native and transcription
// engines, including the kanji-reading form.
package name

import (
	"strings"

	"github.com/jcantosz/jotoba/pkg/engine"
	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// Result is the outcome of a name search.
type Result struct {
	Items []*storage.Name
	Count int
}

// Search runs the name search for a parsed query.
func Search(res *search.Resources, q *query.Query) (*Result, error) {
	if q.Form == query.FormKanjiReading {
		return byKanjiReading(res, q)
	}

	var found *engine.SearchResult[*storage.Name]
	if q.Lang == query.LangJapanese {
		found = japaneseTask(res, q).Find()
	} else {
		found = foreignTask(res, q).Find()
	}

	items := make([]*storage.Name, 0, found.Len())
	for _, item := range found.Items {
		items = append(items, item.Item)
	}
	return &Result{Items: items, Count: found.TotalItems}, nil
}

func japaneseTask(res *search.Resources, q *query.Query) *engine.Task[*storage.Name] {
	return engine.NewTask[*storage.Name](res.NativeNameEngine(), q.Query).
		Threshold(res.Thresholds.Names).
		Offset(q.PageOffset).
		Limit(q.Settings.PageSize).
		WithCustomOrder(func(item engine.ResultItem[*storage.Name]) float32 {
			return nameOrder(item, q.Query)
		})
}

func foreignTask(res *search.Resources, q *query.Query) *engine.Task[*storage.Name] {
	return engine.NewTask[*storage.Name](res.ForeignNameEngine(), q.Query).
		Threshold(res.Thresholds.Names).
		Offset(q.PageOffset).
		Limit(q.Settings.PageSize).
		WithCustomOrder(func(item engine.ResultItem[*storage.Name]) float32 {
			return foreignNameOrder(item, q.Query)
		})
}

// nameOrder mirrors the japanese word ordering without sentence context.
func nameOrder(item engine.ResultItem[*storage.Name], originalQuery string) float32 {
	n := item.Item
	score := item.Relevance * 10
	switch {
	case n.Kana == originalQuery || (n.Kanji != "" && n.Kanji == originalQuery):
		score += 100
	case strings.HasPrefix(n.Kana, originalQuery) ||
		(n.Kanji != "" && strings.HasPrefix(n.Kanji, originalQuery)):
		score += 20
	}
	return score
}

func foreignNameOrder(item engine.ResultItem[*storage.Name], originalQuery string) float32 {
	score := item.Relevance * 10
	if strings.EqualFold(item.Item.Transcribed, originalQuery) {
		score += 100
	}
	return score
}

// byKanjiReading lists names whose furigana uses the literal with the given
// reading.
func byKanjiReading(res *search.Resources, q *query.Query) (*Result, error) {
	literal := q.KReading.Literal
	reading := japanese.KatakanaToHiragana(q.KReading.Reading)

	var matches []*storage.Name
	res.Names.Iter(func(n *storage.Name) bool {
		if !n.HasKanji() || !strings.ContainsRune(n.Kanji, literal) {
			return true
		}
		furi := japanese.GenerateFurigana(n.Kanji, n.Kana, res.Kanji)
		if furi != "" && japanese.HasReading(furi, literal, reading) {
			matches = append(matches, n)
		}
		return true
	})

	total := len(matches)
	if q.PageOffset >= len(matches) {
		matches = nil
	} else {
		matches = matches[q.PageOffset:]
		if len(matches) > q.Settings.PageSize {
			matches = matches[:q.Settings.PageSize]
		}
	}
	return &Result{Items: matches, Count: total}, nil
}
