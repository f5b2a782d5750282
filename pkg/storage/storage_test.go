package storage

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWord(seq uint32, kana, kanji string, glosses ...string) Word {
	sense := Sense{Language: English, POS: []PosSimple{PosNoun}}
	for _, g := range glosses {
		sense.Glosses = append(sense.Glosses, Gloss{Gloss: g})
	}
	return Word{
		Sequence: seq,
		Reading:  Reading{Kana: kana, Kanji: kanji},
		Senses:   []Sense{sense},
	}
}

func TestWordStoreLookup(t *testing.T) {
	store := NewWordStore([]Word{
		testWord(1, "たべる", "食べる", "to eat"),
		testWord(2, "かく", "書く", "to write"),
		testWord(3, "かな", "", "kana"),
	})

	w, ok := store.BySequence(1)
	require.True(t, ok)
	assert.Equal(t, "食べる", w.GetReading())
	assert.Equal(t, "たべる", w.GetKana())

	assert.True(t, store.HasTerm("食べる"))
	assert.True(t, store.HasTerm("たべる"))
	assert.True(t, store.HasTerm("かな"))
	assert.False(t, store.HasTerm("よむ"))

	hits := store.ByReading("書く")
	require.Len(t, hits, 1)
	assert.Equal(t, uint32(2), hits[0].Sequence)
}

func TestWordSenseFiltering(t *testing.T) {
	w := Word{
		Sequence: 1,
		Reading:  Reading{Kana: "いぬ", Kanji: "犬"},
		Senses: []Sense{
			{Language: English, Glosses: []Gloss{{Gloss: "dog"}}},
			{Language: German, Glosses: []Gloss{{Gloss: "Hund"}}},
		},
	}

	assert.True(t, w.HasLanguage(German, false))
	assert.True(t, w.HasGloss("dog", English))
	assert.False(t, w.HasGloss("dog", German))

	cp := w
	cp.Senses = append([]Sense{}, w.Senses...)
	require.True(t, cp.FilterSenses(German, false))
	assert.Len(t, cp.Senses, 1)
	assert.Equal(t, German, cp.Senses[0].Language)

	cp = w
	cp.Senses = []Sense{{Language: German, Glosses: []Gloss{{Gloss: "Hund"}}}}
	assert.False(t, cp.FilterSenses(Russian, false))
}

func TestKanjiStore(t *testing.T) {
	store := NewKanjiStore([]Kanji{
		{
			Literal: '音', Onyomi: []string{"オン"}, Kunyomi: []string{"おと"},
			Parts: []rune{'立', '日'}, JLPT: 4,
			KoreanH: []string{"음"}, KoreanR: []string{"eum"},
		},
		{Literal: '暗', Parts: []rune{'日', '音'}, JLPT: 3},
	})

	k, ok := store.ByLiteral('音')
	require.True(t, ok)
	assert.Equal(t, []string{"음 (eum)"}, k.GetKorean())
	assert.True(t, k.HasReadingMatch("おん"))
	assert.True(t, k.HasReadingMatch("おと"))
	assert.False(t, k.HasReadingMatch("こえ"))

	both := store.ByRadicals([]rune{'日'})
	assert.Len(t, both, 2)
	one := store.ByRadicals([]rune{'立', '日'})
	require.Len(t, one, 1)
	assert.Equal(t, '音', one[0].Literal)

	assert.Equal(t, []rune{'音'}, store.ByJlpt(4))
}

func TestKanjiReadingNormalization(t *testing.T) {
	k := Kanji{Literal: '楽', Kunyomi: []string{"たの.しい"}, Onyomi: []string{"ガク"}}
	// Okurigana stem matches, as does the reading with the dot removed.
	assert.True(t, k.HasReadingMatch("たの"))
	assert.True(t, k.HasReadingMatch("たのしい"))
	assert.True(t, k.HasReadingMatch("がく"))
}

func TestSentenceStore(t *testing.T) {
	store := NewSentenceStore([]Sentence{
		{ID: 1, Japanese: "音が鳴る", Furigana: "[音|おと]が[鳴|な]る", JLPT: 5,
			Translations: map[Language]string{English: "A sound rings."}},
		{ID: 2, Japanese: "難しい", Furigana: "[難|むずか]しい", JLPT: 1,
			Translations: map[Language]string{German: "Schwierig."}},
	})

	s, ok := store.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "おとがなる", s.Reading())
	assert.True(t, s.HasTranslation(English))
	assert.False(t, s.HasTranslation(German))

	var n5 int
	store.ByJlpt(5, func(*Sentence) bool { n5++; return true })
	assert.Equal(t, 1, n5)
}

func TestSQLiteRoundTrip(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, InitDB(conn))

	entries := []JMdictEntry{
		{
			Id:    "1358280",
			Kanji: []JMdictElement{{Text: "食べる", Common: true}},
			Kana:  []JMdictElement{{Text: "たべる", Common: true}},
			Sense: []JMdictSense{{
				PartOfSpeech: []string{"v1"},
				Gloss:        []JMdictGloss{{Text: "to eat"}, {Text: "essen", Lang: "ger"}},
			}},
		},
	}
	count, err := ImportJMdict(conn, entries)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	store, err := LoadWords(conn)
	require.NoError(t, err)
	require.Equal(t, 1, store.Len())

	w, ok := store.BySequence(1358280)
	require.True(t, ok)
	assert.Equal(t, "食べる", w.Reading.Kanji)
	assert.True(t, w.Common)
	assert.True(t, w.HasPos([]PosSimple{PosVerb}))
	assert.True(t, w.HasGloss("to eat", English))
	assert.True(t, w.HasLanguage(German, false))
}
