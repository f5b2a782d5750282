package word

import (
	"github.com/jcantosz/jotoba/pkg/engine"
	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/sentreader"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// furiganaByReading resolves the furigana of a morpheme: primarily a native
// word lookup ordered by furiOrder, with a name lookup fallback for proper
// nouns.
func furiganaByReading(res *search.Resources, morpheme string, part *sentreader.Part) (string, bool) {
	if furi, ok := wordFurigana(res, morpheme, part); ok {
		return furi, ok
	}
	return nameFurigana(res, morpheme)
}

func wordFurigana(res *search.Resources, morpheme string, part *sentreader.Part) (string, bool) {
	var pos *storage.PosSimple
	if p, ok := part.WordClassRaw().ToPosSimple(); ok {
		pos = &p
	}

	task := engine.NewTask[*storage.Word](res.NativeWordEngine(), morpheme).
		Limit(10).
		SetResultFilter(func(w *storage.Word) bool { return w.HasReading(morpheme) }).
		WithCustomOrder(func(item engine.ResultItem[*storage.Word]) float32 {
			return furiOrder(item.Item, pos, morpheme, res.ReadingFreq)
		})

	found := task.Find()
	first, ok := found.Get(0)
	if !ok || first.Item.Furigana == "" {
		return "", false
	}
	return first.Item.Furigana, true
}

// nameFurigana falls back to the name store for single-token proper nouns.
// The match must be unambiguous and carry both kanji and kana.
func nameFurigana(res *search.Resources, morpheme string) (string, bool) {
	task := engine.NewTask[*storage.Name](res.NativeNameEngine(), morpheme).
		Limit(1).
		SetResultFilter(func(n *storage.Name) bool {
			return n.GetReading() == morpheme && n.HasKanji()
		})

	found := task.Find()
	if found.TotalItems != 1 {
		return "", false
	}
	name, _ := found.Get(0)
	return japanese.KanjiSegment(name.Item.Kanji, name.Item.Kana).Encode(), true
}

// setSentenceFurigana reconciles furigana for every part of a sentence.
func setSentenceFurigana(res *search.Resources, sentence *sentreader.Sentence) {
	sentence.Each(func(part *sentreader.Part) {
		part.SetFurigana(func(morpheme string) (string, bool) {
			return furiganaByReading(res, morpheme, part)
		})
	})
}
