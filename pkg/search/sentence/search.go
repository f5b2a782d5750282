// Package sentence implements the sentence search: content matching for
// Japanese input, translation matching for foreign input and the tag-only
// JLPT listing.
package sentence

import (
	"fmt"
	"strings"

	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// tagOnlyScanCap bounds the tag-only listing before pagination.
const tagOnlyScanCap = 10000

// NoEnglish encodes "no English translation" on the wire.
const NoEnglish = "-"

// Item is one sentence result rendered for the response.
type Item struct {
	ID          uint32
	Content     string
	Furigana    string
	Translation string
	Language    storage.Language
	Eng         string
}

// GetEnglish returns the English translation, if any.
func (i *Item) GetEnglish() (string, bool) {
	if i.Eng == NoEnglish {
		return "", false
	}
	return i.Eng, true
}

// Result is the outcome of a sentence search.
type Result struct {
	Items  []Item
	Len    int
	Hidden bool
}

// Search runs the sentence search for a parsed query.
func Search(res *search.Resources, q *query.Query) (*Result, error) {
	if q.Form == query.FormTagOnly {
		return tagOnly(res, q)
	}

	var matches []*storage.Sentence
	if q.Lang == query.LangJapanese {
		matches = byContent(res, q)
	} else {
		matches = byTranslation(res, q)
	}

	if jlpt, ok := q.JlptTag(); ok {
		kept := matches[:0]
		for _, s := range matches {
			if s.JLPT == jlpt {
				kept = append(kept, s)
			}
		}
		matches = kept
	}

	total := len(matches)
	page := paginate(matches, q.PageOffset, q.Settings.PageSize)

	items := make([]Item, 0, len(page))
	for _, s := range page {
		if item, ok := mapSentence(s, q.Settings.UserLang, q.Settings.ShowEnglish); ok {
			items = append(items, item)
		}
	}
	return &Result{Items: items, Len: total, Hidden: q.HasTag(query.TagHidden)}, nil
}

// byContent matches the Japanese text or its kana reading.
func byContent(res *search.Resources, q *query.Query) []*storage.Sentence {
	needle := japanese.ToHalfwidth(q.Query)
	var out []*storage.Sentence
	res.Sentences.Iter(func(s *storage.Sentence) bool {
		if strings.Contains(s.Japanese, needle) || strings.Contains(s.Reading(), needle) {
			out = append(out, s)
		}
		return true
	})
	return out
}

// byTranslation substring-matches the translation in the user language (and
// English when allowed).
func byTranslation(res *search.Resources, q *query.Query) []*storage.Sentence {
	needle := strings.ToLower(q.Query)
	lang := q.LangWithOverride()
	var out []*storage.Sentence
	res.Sentences.Iter(func(s *storage.Sentence) bool {
		if t, ok := s.GetTranslation(lang); ok && strings.Contains(strings.ToLower(t), needle) {
			out = append(out, s)
			return true
		}
		if q.Settings.ShowEnglish && lang != storage.English {
			if t, ok := s.GetTranslation(storage.English); ok && strings.Contains(strings.ToLower(t), needle) {
				out = append(out, s)
			}
		}
		return true
	})
	return out
}

// tagOnly lists sentences of one JLPT level.
func tagOnly(res *search.Resources, q *query.Query) (*Result, error) {
	jlpt, ok := q.JlptTag()
	if !ok {
		return nil, fmt.Errorf("%w: sentence tag search without a listable tag", search.ErrUnexpected)
	}
	if jlpt < 1 || jlpt > 5 {
		return nil, fmt.Errorf("%w: jlpt level %d", query.ErrBadRequest, jlpt)
	}

	var matches []*storage.Sentence
	res.Sentences.ByJlpt(jlpt, func(s *storage.Sentence) bool {
		if !s.HasTranslation(q.Settings.UserLang) &&
			!(q.Settings.ShowEnglish && s.HasTranslation(storage.English)) {
			return true
		}
		matches = append(matches, s)
		return len(matches) < tagOnlyScanCap
	})

	total := len(matches)
	page := paginate(matches, q.PageOffset, q.Settings.PageSize)

	items := make([]Item, 0, len(page))
	for _, s := range page {
		if item, ok := mapSentence(s, q.Settings.UserLang, q.Settings.ShowEnglish); ok {
			items = append(items, item)
		}
	}
	return &Result{Items: items, Len: total, Hidden: q.HasTag(query.TagHidden)}, nil
}

// mapSentence renders a stored sentence for the user language. English fills
// in when the language is missing and allowed; Eng stays "-" otherwise.
func mapSentence(s *storage.Sentence, lang storage.Language, allowEnglish bool) (Item, bool) {
	translation, ok := s.GetTranslation(lang)
	usedLang := lang
	if !ok && allowEnglish {
		translation, ok = s.GetTranslation(storage.English)
		usedLang = storage.English
	}
	if !ok {
		return Item{}, false
	}

	item := Item{
		ID:          s.ID,
		Content:     s.Japanese,
		Furigana:    s.Furigana,
		Translation: translation,
		Language:    usedLang,
		Eng:         NoEnglish,
	}
	if lang != storage.English && allowEnglish {
		if eng, ok := s.GetTranslation(storage.English); ok && usedLang != storage.English {
			item.Eng = eng
		}
	}
	return item, true
}

func paginate(items []*storage.Sentence, offset, size int) []*storage.Sentence {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if size > 0 && len(items) > size {
		items = items[:size]
	}
	return items
}
