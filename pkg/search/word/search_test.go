package word

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcantosz/jotoba/pkg/engine"
	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/sentreader"
	"github.com/jcantosz/jotoba/pkg/storage"
)

var (
	parserOnce sync.Once
	testParser *sentreader.Parser
)

func sharedParser(t *testing.T) *sentreader.Parser {
	t.Helper()
	parserOnce.Do(func() {
		p, err := sentreader.NewParser(sentreader.DictUni)
		require.NoError(t, err)
		testParser = p
	})
	return testParser
}

func eng(glosses ...string) storage.Sense {
	sense := storage.Sense{Language: storage.English}
	for _, g := range glosses {
		sense.Glosses = append(sense.Glosses, storage.Gloss{Gloss: g})
	}
	return sense
}

func withPos(sense storage.Sense, pos ...storage.PosSimple) storage.Sense {
	sense.POS = pos
	return sense
}

func fixtureStores() (*storage.WordStore, *storage.KanjiStore, *storage.NameStore, *storage.SentenceStore) {
	words := storage.NewWordStore([]storage.Word{
		{
			Sequence: 1358280,
			Reading:  storage.Reading{Kana: "たべる", Kanji: "食べる"},
			Furigana: "[食|た]べる",
			Common:   true,
			JLPT:     5,
			Senses:   []storage.Sense{withPos(eng("to eat"), storage.PosVerb)},
		},
		{
			Sequence: 1358310,
			Reading:  storage.Reading{Kana: "たべもの", Kanji: "食べ物"},
			Furigana: "[食|た]べ[物|もの]",
			Common:   true,
			Senses:   []storage.Sense{withPos(eng("food"), storage.PosNoun)},
		},
		{
			Sequence: 1169870,
			Reading:  storage.Reading{Kana: "のむ", Kanji: "飲む"},
			Furigana: "[飲|の]む",
			Senses:   []storage.Sense{withPos(eng("to drink"), storage.PosVerb)},
		},
		{
			Sequence: 1628530,
			Reading:  storage.Reading{Kana: "これ"},
			Common:   true,
			Senses:   []storage.Sense{withPos(eng("this"), storage.PosPronoun)},
		},
		{
			Sequence: 1213500,
			Reading:  storage.Reading{Kana: "かんじ", Kanji: "漢字"},
			Furigana: "[漢|かん][字|じ]",
			Common:   true,
			JLPT:     4,
			Senses:   []storage.Sense{withPos(eng("kanji", "chinese character"), storage.PosNoun)},
		},
		{
			Sequence: 1344340,
			Reading:  storage.Reading{Kana: "かく", Kanji: "書く"},
			Furigana: "[書|か]く",
			Common:   true,
			JLPT:     5,
			Senses:   []storage.Sense{withPos(eng("to write"), storage.PosVerb)},
		},
		{
			Sequence: 1078730,
			Reading:  storage.Reading{Kana: "テキスト"},
			Senses:   []storage.Sense{withPos(eng("text", "textbook"), storage.PosNoun)},
		},
		{
			Sequence: 1000000,
			Reading:  storage.Reading{Kana: "ドイツご", Kanji: "ドイツ語"},
			Senses: []storage.Sense{
				withPos(eng("german language"), storage.PosNoun),
				{
					Language: storage.German,
					POS:      []storage.PosSimple{storage.PosNoun},
					Glosses:  []storage.Gloss{{Gloss: "Deutsch"}},
				},
			},
		},
	})

	kanji := storage.NewKanjiStore([]storage.Kanji{
		{
			Literal: '音', Onyomi: []string{"オン", "イン"}, Kunyomi: []string{"おと", "ね"},
			Meanings: []string{"sound"}, JLPT: 4,
			KunDicts: []uint32{1},
			KoreanH:  []string{"음"}, KoreanR: []string{"eum"},
		},
		{Literal: '食', Onyomi: []string{"ショク"}, Kunyomi: []string{"た.べる"}, Meanings: []string{"eat"}, JLPT: 5, KunDicts: []uint32{1358280, 1358310}},
		{Literal: '物', Onyomi: []string{"ブツ"}, Kunyomi: []string{"もの"}, Meanings: []string{"thing"}, JLPT: 5},
		{Literal: '漢', Onyomi: []string{"カン"}, Meanings: []string{"china"}, JLPT: 3},
		{Literal: '字', Onyomi: []string{"ジ"}, Meanings: []string{"character"}, JLPT: 4},
		{Literal: '書', Onyomi: []string{"ショ"}, Kunyomi: []string{"か.く"}, Meanings: []string{"write"}, JLPT: 5},
		{Literal: '飲', Onyomi: []string{"イン"}, Kunyomi: []string{"の.む"}, Meanings: []string{"drink"}, JLPT: 5},
		{Literal: '語', Onyomi: []string{"ゴ"}, Meanings: []string{"language"}, JLPT: 5},
	})

	names := storage.NewNameStore([]storage.Name{
		{Sequence: 1, Kana: "たなか", Kanji: "田中", Transcribed: "Tanaka", NameType: "surname"},
	})

	sentences := storage.NewSentenceStore([]storage.Sentence{
		{
			ID: 1, Japanese: "音が鳴る", Furigana: "[音|おと]が[鳴|な]る", JLPT: 5,
			Translations: map[storage.Language]string{storage.English: "A sound rings."},
		},
	})

	return words, kanji, names, sentences
}

func fixtureResources(t *testing.T, withParser bool) *search.Resources {
	words, kanji, names, sentences := fixtureStores()
	var parser *sentreader.Parser
	if withParser {
		parser = sharedParser(t)
	}
	return search.BuildResources(words, kanji, names, sentences, parser)
}

func parseQuery(t *testing.T, raw string) *query.Query {
	t.Helper()
	q, err := query.NewParser(raw, query.TargetWords, query.DefaultSettings()).Parse()
	require.NoError(t, err)
	return q
}

func TestRomajiFallbackScenario(t *testing.T) {
	// "taberu" detects no script, the gloss search finds nothing, the romaji
	// fallback converts to たべる and the native engine takes over.
	res := fixtureResources(t, false)
	q := parseQuery(t, "taberu")
	require.Equal(t, query.LangUndetected, q.Lang)

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	assert.Equal(t, uint32(1358280), result.Words[0].Sequence)
	assert.Equal(t, "たべる", result.SearchedQuery)
}

func TestInflectedWordScenario(t *testing.T) {
	// "食べた" resolves through the sentence reader to the lexeme 食べる with
	// a Past inflection.
	res := fixtureResources(t, true)
	q := parseQuery(t, "食べた")

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	assert.Equal(t, uint32(1358280), result.Words[0].Sequence)

	require.NotNil(t, result.InflectionInfo)
	assert.Equal(t, "食べる", result.InflectionInfo.Lexeme)
	assert.Contains(t, result.InflectionInfo.Inflections, sentreader.InflPast)
}

func TestSentenceScenario(t *testing.T) {
	res := fixtureResources(t, true)
	q := parseQuery(t, "これは漢字で書いたテキストです")

	result, err := Search(res, q)
	require.NoError(t, err)

	require.NotNil(t, result.SentenceParts, "sentence info must be attached")
	assert.Equal(t, 0, result.SentenceIndex)
	assert.Equal(t, "これ", result.SearchedQuery)
	require.NotEmpty(t, result.Words)
	assert.Equal(t, "これ", result.Words[0].GetKana())
}

func TestSentenceFurigana(t *testing.T) {
	res := fixtureResources(t, true)
	q := parseQuery(t, "これは漢字で書いたテキストです")

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotNil(t, result.SentenceParts)

	var kanjiPart *sentreader.Part
	result.SentenceParts.Each(func(p *sentreader.Part) {
		if p.GetInflected() == "漢字" {
			kanjiPart = p
		}
	})
	require.NotNil(t, kanjiPart)
	assert.Equal(t, "[漢|かん][字|じ]", kanjiPart.Furigana())
}

func TestSentenceReaderSuppressedForKnownTerm(t *testing.T) {
	// A query that already is a dictionary term skips the sentence reader.
	res := fixtureResources(t, true)
	q := parseQuery(t, "たべもの")

	result, err := Search(res, q)
	require.NoError(t, err)
	assert.Nil(t, result.SentenceParts)
	assert.Nil(t, result.InflectionInfo)
	require.NotEmpty(t, result.Words)
	assert.Equal(t, uint32(1358310), result.Words[0].Sequence)
}

func TestExactMatchOutranksPrefix(t *testing.T) {
	res := fixtureResources(t, false)
	q := parseQuery(t, "たべる")

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	assert.Equal(t, "たべる", result.Words[0].GetKana())
}

func TestGlossSearch(t *testing.T) {
	res := fixtureResources(t, false)
	q := parseQuery(t, "eat")

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	assert.Equal(t, uint32(1358280), result.Words[0].Sequence)
}

func TestGlossLanguageFallback(t *testing.T) {
	// "Deutsch" only exists in the German index; with English configured the
	// guessed-language fallback finds it anyway.
	res := fixtureResources(t, false)
	q := parseQuery(t, "deutsch")

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	assert.Equal(t, uint32(1000000), result.Words[0].Sequence)
}

func TestRegexSearchPipeline(t *testing.T) {
	res := fixtureResources(t, false)
	q := parseQuery(t, "食べ*")
	require.True(t, q.IsRegex())

	result, err := Search(res, q)
	require.NoError(t, err)
	assert.Len(t, result.Words, 2)
}

func TestShortRegexFallsThrough(t *testing.T) {
	// A lone wildcard declines the regex producer; the search degrades to an
	// empty result instead of failing.
	res := fixtureResources(t, false)
	q, err := query.NewParser("*", query.TargetWords, query.DefaultSettings()).Parse()
	require.NoError(t, err)
	require.True(t, q.IsRegex())

	result, err := Search(res, q)
	require.NoError(t, err)
	assert.Empty(t, result.Words)
}

func TestKanjiInfoAttached(t *testing.T) {
	res := fixtureResources(t, false)
	q := parseQuery(t, "たべる")

	result, err := Search(res, q)
	require.NoError(t, err)
	require.True(t, result.ContainsKanji())

	literals := make([]rune, 0, len(result.Kanji))
	for _, k := range result.Kanji {
		literals = append(literals, k.Literal)
	}
	assert.Contains(t, literals, '食')
}

func TestKanjiReadingForm(t *testing.T) {
	res := fixtureResources(t, false)
	q := parseQuery(t, "食 たべる")
	require.Equal(t, query.FormKanjiReading, q.Form)

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	for _, w := range result.Words {
		assert.Contains(t, []uint32{1358280, 1358310}, w.Sequence)
	}
}

func TestTagOnlyJlpt(t *testing.T) {
	res := fixtureResources(t, false)
	q := parseQuery(t, "#n5")
	require.Equal(t, query.FormTagOnly, q.Form)

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	for _, w := range result.Words {
		assert.Equal(t, uint8(5), w.JLPT)
	}
}

func TestSenseLanguageFiltering(t *testing.T) {
	res := fixtureResources(t, false)
	settings := query.DefaultSettings()
	settings.UserLang = storage.German
	settings.ShowEnglish = false
	q, err := query.NewParser("ドイツ語", query.TargetWords, settings).Parse()
	require.NoError(t, err)

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Words)
	for _, w := range result.Words {
		for _, sense := range w.Senses {
			assert.Equal(t, storage.German, sense.Language)
		}
	}
}

func TestRankingMonotonicity(t *testing.T) {
	// Strictly higher exactness with equal other features scores higher.
	exact := storage.Word{Reading: storage.Reading{Kana: "たべる"}}
	prefix := storage.Word{Reading: storage.Reading{Kana: "たべもの"}}

	sExact := japaneseSearchOrder(engine.NewResultItem(&exact, 0.5), "たべる")
	sPrefix := japaneseSearchOrder(engine.NewResultItem(&prefix, 0.5), "たべる")
	assert.Greater(t, sExact, sPrefix)

	sNone := japaneseSearchOrder(engine.NewResultItem(&prefix, 0.5), "のむ")
	assert.Greater(t, sPrefix, sNone)
}

func TestFuriOrder(t *testing.T) {
	common := &storage.Word{
		Reading: storage.Reading{Kana: "かんじ", Kanji: "漢字"},
		Common:  true,
		Senses:  []storage.Sense{withPos(eng("kanji"), storage.PosNoun)},
	}
	other := &storage.Word{
		Reading: storage.Reading{Kana: "かんじ", Kanji: "感じ"},
		Senses:  []storage.Sense{withPos(eng("feeling"), storage.PosVerb)},
	}

	pos := storage.PosNoun
	sCommon := furiOrder(common, &pos, "漢字", nil)
	sOther := furiOrder(other, &pos, "漢字", nil)
	assert.Greater(t, sCommon, sOther)
}
