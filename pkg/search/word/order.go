package word

import (
	"strings"

	"github.com/jcantosz/jotoba/pkg/engine"
	"github.com/jcantosz/jotoba/pkg/index"
	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// japaneseSearchOrder ranks a native hit against the original query: engine
// similarity as the base, a large exactness bonus, a prefix bonus and small
// commonness/JLPT priors.
func japaneseSearchOrder(item engine.ResultItem[*storage.Word], originalQuery string) float32 {
	w := item.Item
	score := item.Relevance * 10

	switch {
	case w.Reading.Kana == originalQuery || (w.Reading.Kanji != "" && w.Reading.Kanji == originalQuery):
		score += 100
	case strings.HasPrefix(w.Reading.Kana, originalQuery) ||
		(w.Reading.Kanji != "" && strings.HasPrefix(w.Reading.Kanji, originalQuery)):
		score += 20
	}

	if w.IsCommon() {
		score += 5
	}
	if jlpt, ok := w.GetJlpt(); ok {
		score += float32(jlpt)
	}
	return score
}

// japaneseSearchOrderWithPos additionally penalizes hits disagreeing with the
// POS detected by the sentence reader.
func japaneseSearchOrderWithPos(item engine.ResultItem[*storage.Word], originalQuery string, pos *storage.PosSimple) float32 {
	score := japaneseSearchOrder(item, originalQuery)
	if pos != nil && !item.Item.HasPos([]storage.PosSimple{*pos}) {
		score -= 30
		if score < 0 {
			score = 0
		}
	}
	return score
}

// foreignOrder ranks gloss hits: cosine similarity, exact gloss bonus and a
// language-match bonus preferring the requested language over the English
// fallback.
type foreignOrder struct {
	query    string
	usedLang storage.Language
}

func (o foreignOrder) score(item engine.ResultItem[*storage.Word]) float32 {
	w := item.Item
	score := item.Relevance * 10

	itemLang := o.usedLang
	if item.HasLang {
		itemLang = item.Language
	}
	if w.HasGloss(o.query, itemLang) {
		score += 30
	}
	if itemLang == o.usedLang {
		score += 10
	}
	if w.IsCommon() {
		score += 3
	}
	if jlpt, ok := w.GetJlpt(); ok {
		score += float32(jlpt)
	}
	return score
}

// furiOrder ranks furigana lookup candidates for a morpheme: exact reading
// dominates, POS agreement helps, commonness and JLPT nudge, and single-kanji
// readings get a normalized frequency bump.
func furiOrder(w *storage.Word, pos *storage.PosSimple, morph string, freq *index.ReadingFreq) float32 {
	var score float32
	if w.GetReading() == morph {
		score += 100
	}

	reading := []rune(w.GetReading())
	if len(reading) == 1 && japanese.IsKanji(reading[0]) && freq != nil {
		if norm, ok := freq.NormReadingFreq(reading[0], w.GetKana()); ok {
			score += norm * 10
		}
	}

	if pos != nil {
		if w.HasPos([]storage.PosSimple{*pos}) {
			score += 20
		} else {
			score -= 30
			if score < 0 {
				score = 0
			}
		}
	}
	if w.IsCommon() {
		score += 2
	}
	if _, ok := w.GetJlpt(); ok {
		score += 2
	}
	return score
}
