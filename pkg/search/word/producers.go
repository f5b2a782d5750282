package word

import (
	"strings"

	"github.com/jcantosz/jotoba/pkg/engine"
	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/sentreader"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// Builder is the shared output container of the word pipeline.
type Builder = search.OutputBuilder[*storage.Word, *AddResData]

// nativeTask builds the standard native search task: thresholded, paginated
// and ranked against originalQuery.
func nativeTask(res *search.Resources, q *query.Query, text, originalQuery string, pos *storage.PosSimple, posFilter []storage.PosSimple) *engine.Task[*storage.Word] {
	task := engine.NewTask[*storage.Word](res.NativeWordEngine(), text).
		Threshold(res.Thresholds.Native).
		Limit(q.Settings.PageSize + q.PageOffset).
		WithCustomOrder(func(item engine.ResultItem[*storage.Word]) float32 {
			return japaneseSearchOrderWithPos(item, originalQuery, pos)
		})
	if len(posFilter) > 0 {
		task.SetResultFilter(func(w *storage.Word) bool { return w.HasPos(posFilter) })
	}
	return task
}

// regexProducer scans written forms with a wildcard query.
type regexProducer struct {
	res *search.Resources
	q   *query.Query
	rq  *engine.RegexQuery
}

func (p *regexProducer) ShouldRun(int) bool {
	return p.rq != nil
}

func (p *regexProducer) Produce(out *Builder) {
	res := engine.RegexSearch(p.res.Words, p.rq, func(w *storage.Word) float32 {
		score := float32(0)
		if w.IsCommon() {
			score += 5
		}
		if jlpt, ok := w.GetJlpt(); ok {
			score += float32(jlpt)
		}
		return score
	}, 0, p.q.Settings.PageSize+p.q.PageOffset)
	for _, item := range res.Items {
		out.Push(item)
	}
}

// sentenceReaderProducer feeds results for inflected words and selected
// sentence words, attaching inflection and sentence information.
type sentenceReaderProducer struct {
	res    *search.Resources
	q      *query.Query
	parsed sentreader.ParseResult
}

func newSentenceReaderProducer(res *search.Resources, q *query.Query) *sentenceReaderProducer {
	p := &sentenceReaderProducer{res: res, q: q}
	if res.Parser != nil && q.ParseJapanese && q.Lang == query.LangJapanese {
		p.parsed = res.Parser.Parse(japanese.ToHalfwidth(q.Query))
	}
	return p
}

func (p *sentenceReaderProducer) ShouldRun(int) bool {
	if p.parsed.IsNone() || p.q.Lang != query.LangJapanese || p.q.Form != query.FormNormal || p.q.Query == "" {
		return false
	}
	if _, ok := p.parsed.AsInflectedWord(); ok {
		return true
	}
	// No sentence reader for short queries or queries that already are an
	// exact dictionary term.
	if japanese.RealLen(p.q.Query) <= 3 {
		return false
	}
	return !p.res.Words.HasTerm(p.q.Query)
}

func (p *sentenceReaderProducer) selectedWord(s *sentreader.Sentence) (*sentreader.Part, int) {
	index := p.q.WordIndex
	if index < 0 {
		index = 0
	}
	if index >= s.WordCount() {
		index = s.WordCount() - 1
	}
	part, _ := s.GetAt(index)
	return part, index
}

func (p *sentenceReaderProducer) Produce(out *Builder) {
	if infl, ok := p.parsed.AsInflectedWord(); ok {
		var pos *storage.PosSimple
		if ps, ok := infl.WordClassRaw().ToPosSimple(); ok {
			pos = &ps
		}
		nativeTask(p.res, p.q, infl.GetNormalized(), infl.GetInflected(), pos, nil).FindTo(out)
		out.Output.Inflection = InflectionInfoFromPart(infl)
		out.Output.RawQuery = infl.GetInflected()
		return
	}

	sentence, ok := p.parsed.AsSentence()
	if !ok {
		return
	}
	setSentenceFurigana(p.res, sentence)

	word, idx := p.selectedWord(sentence)
	var pos *storage.PosSimple
	if ps, ok := word.WordClassRaw().ToPosSimple(); ok {
		pos = &ps
	}

	nativeTask(p.res, p.q, word.GetNormalized(), word.GetInflected(), pos, nil).FindTo(out)
	if word.GetInflected() != word.GetNormalized() {
		nativeTask(p.res, p.q, word.GetInflected(), word.GetInflected(), pos, nil).FindTo(out)
	}

	out.Output.Inflection = InflectionInfoFromPart(word)
	out.Output.RawQuery = word.GetInflected()
	out.Output.Sentence = &SentenceInfo{
		Parts: sentence,
		Index: idx,
		Query: word.GetNormalized(),
	}
}

// nativeProducer runs the plain native engine search.
type nativeProducer struct {
	res *search.Resources
	q   *query.Query
}

func (p *nativeProducer) ShouldRun(int) bool {
	// A wildcard too short for the regex producer runs natively whatever its
	// script.
	if p.q.Form == query.FormRegex && japanese.RealLen(p.q.Query) < 2 {
		return true
	}
	if p.q.Lang != query.LangJapanese && !japanese.StrIsJapanese(p.q.Query) {
		return false
	}
	// Wildcard queries the regex producer declined still search natively.
	return p.q.Form == query.FormNormal || p.q.Form == query.FormRegex
}

func (p *nativeProducer) Produce(out *Builder) {
	fmtQuery := japanese.ToHalfwidth(p.q.Query)
	task := nativeTask(p.res, p.q, fmtQuery, p.q.Query, nil, p.q.PosTags())
	if fmtQuery != p.q.Query {
		task.AddQuery(p.q.Query)
	}
	task.FindTo(out)
}

// glossProducer searches translations in the user language, with an optional
// parallel English query and a guessed-language fallback.
type glossProducer struct {
	res *search.Resources
	q   *query.Query
}

func (p *glossProducer) ShouldRun(int) bool {
	return (p.q.Lang == query.LangForeign || p.q.Lang == query.LangUndetected) &&
		p.q.Form == query.FormNormal
}

func (p *glossProducer) task(q *query.Query) *engine.Task[*storage.Word] {
	usedLang := q.LangWithOverride()
	task := engine.NewTaskWithLanguage[*storage.Word](p.res.ForeignWordEngine(), q.Query, usedLang).
		Threshold(p.res.Thresholds.Foreign).
		Limit(q.Settings.PageSize + q.PageOffset).
		SetAlign(false).
		WithCustomOrder(foreignOrder{query: q.Query, usedLang: usedLang}.score)

	if q.Settings.ShowEnglish && usedLang != storage.English {
		task.AddLanguageQuery(q.Query, storage.English)
	}
	if posFilter := q.PosTags(); len(posFilter) > 0 {
		task.SetResultFilter(func(w *storage.Word) bool { return w.HasPos(posFilter) })
	}
	return task
}

func (p *glossProducer) Produce(out *Builder) {
	if p.task(p.q).FindTo(out) {
		return
	}

	// Nothing found: when exactly one other language knows the query, search
	// there instead.
	guessed := p.res.ForeignWordEngine().GuessLanguage(p.q.Query)
	filtered := guessed[:0]
	for _, lang := range guessed {
		if lang != p.q.LangWithOverride() {
			filtered = append(filtered, lang)
		}
	}
	if len(filtered) == 1 {
		p.task(p.q.WithLangOverride(filtered[0])).FindTo(out)
	}
}

// romajiProducer converts a plausible romaji query to hiragana and feeds the
// native engine when the gloss search stayed under its hit budget.
type romajiProducer struct {
	res *search.Resources
	q   *query.Query
}

func (p *romajiProducer) ShouldRun(alreadyFound int) bool {
	if p.q.UseOriginal || p.q.Form != query.FormNormal {
		return false
	}
	if p.q.Lang != query.LangUndetected && p.q.Lang != query.LangForeign {
		return false
	}
	if alreadyFound >= p.res.Thresholds.RomajiFallbackMax {
		return false
	}
	if !japanese.CouldBeRomaji(p.q.Query) {
		return false
	}
	// The query being a known gloss term means it was meant as one.
	return !p.res.ForeignWordEngine().HasExact(strings.ToLower(p.q.Query), p.q.LangWithOverride())
}

func (p *romajiProducer) Produce(out *Builder) {
	hira := japanese.ToHiragana(japanese.FormatRomajiNN(p.q.Query))
	nativeTask(p.res, p.q, hira, hira, nil, p.q.PosTags()).FindTo(out)
	if out.Output.RawQuery == "" {
		out.Output.RawQuery = hira
	}
}
