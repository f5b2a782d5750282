package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcantosz/jotoba/pkg/storage"
)

func TestTermSetSortedUnique(t *testing.T) {
	ts := NewTermSet([]uint32{5, 3, 5, 1, 3, 9})
	assert.Equal(t, TermSet{1, 3, 5, 9}, ts)
	for i := 1; i < len(ts); i++ {
		assert.Less(t, ts[i-1], ts[i], "term set must be strictly ascending")
	}
	assert.True(t, ts.Has(5))
	assert.False(t, ts.Has(4))
}

func TestWordgramsAndPad(t *testing.T) {
	grams := Wordgrams(Pad("あい", 2), 3)
	// Padding guarantees prefix and suffix n-grams.
	assert.Equal(t, 4, len(grams))
	assert.Equal(t, string(padRune)+string(padRune)+"あ", grams[0])
	assert.Equal(t, "い"+string(padRune)+string(padRune), grams[3])
}

func TestNGramRetrieve(t *testing.T) {
	x := NewNGramIndex(3)
	x.Insert(1, "たべる")
	x.Insert(2, "たべもの")
	x.Insert(3, "のむ")

	hits := x.Retrieve(x.CompileQuery("たべる"))
	require.NotEmpty(t, hits)
	assert.Equal(t, uint32(1), hits[0].Doc, "exact form ranks first")
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)

	// Unknown terms compile to no results, not an error.
	assert.Empty(t, x.Retrieve(x.CompileQuery("xyz")))
	assert.Empty(t, x.CompileQuery("xyz"))
}

func TestNGramHasExact(t *testing.T) {
	x := NewNGramIndex(3)
	x.Insert(1, "たべる")
	assert.True(t, x.HasExact("たべる"))
	assert.False(t, x.HasExact("たべ"))
	assert.False(t, x.HasExact("のむ"))
}

func TestVectorIndex(t *testing.T) {
	x := NewVectorIndex()
	x.Add("to eat", []uint32{1358280})
	x.Add("to drink", []uint32{1169870})
	x.Add("food", []uint32{1358310})
	x.Finish()

	hits := x.Retrieve(x.QueryVec("eat"), 0.1)
	require.NotEmpty(t, hits)
	assert.Equal(t, []uint32{1358280}, x.Docs[hits[0].Doc].SeqIDs)

	// Prefix subterms make longer tokens reachable.
	hits = x.Retrieve(x.QueryVec("drin"), 0.1)
	require.NotEmpty(t, hits)
	assert.Equal(t, []uint32{1169870}, x.Docs[hits[0].Doc].SeqIDs)

	assert.Empty(t, x.Retrieve(x.QueryVec("zzz"), 0.1))
}

func TestSubTerms(t *testing.T) {
	assert.Equal(t, []string{"eat"}, SubTerms("eat"))
	subs := SubTerms("coffee")
	assert.Contains(t, subs, "coff")
	assert.Contains(t, subs, "coffe")
	assert.Contains(t, subs, "coffee")
	assert.Contains(t, SubTerms("good-bye"), "goodbye")
}

func TestReadingFreq(t *testing.T) {
	f := NewReadingFreq()
	f.Add('日', "にち")
	f.Add('日', "にち")
	f.Add('日', "ひ")

	v, ok := f.NormReadingFreq('日', "にち")
	require.True(t, ok)
	assert.InDelta(t, 1.0, v, 1e-6)

	v, ok = f.NormReadingFreq('日', "ひ")
	require.True(t, ok)
	assert.InDelta(t, 0.5, v, 1e-6)

	_, ok = f.NormReadingFreq('日', "か")
	assert.False(t, ok)
	_, ok = f.NormReadingFreq('月', "つき")
	assert.False(t, ok)
}

func TestSuggestionPrefix(t *testing.T) {
	idx := NewSuggestionIndex([]SuggestionEntry{
		{Primary: "たべる", Secondary: "食べる", Frequency: 100},
		{Primary: "たべもの", Secondary: "食べ物", Frequency: 50},
		{Primary: "のむ", Secondary: "飲む", Frequency: 10},
	})

	hits := idx.Prefix("たべ", 10)
	require.Len(t, hits, 2)
	assert.Equal(t, "たべる", hits[0].Primary, "most frequent first")

	assert.Empty(t, idx.Prefix("よむ", 10))
	assert.Len(t, idx.Prefix("たべ", 1), 1)
}

func testWordStore() *storage.WordStore {
	return storage.NewWordStore([]storage.Word{
		{
			Sequence: 1358280,
			Reading:  storage.Reading{Kana: "たべる", Kanji: "食べる"},
			Common:   true,
			Senses: []storage.Sense{{
				Language: storage.English,
				POS:      []storage.PosSimple{storage.PosVerb},
				Glosses:  []storage.Gloss{{Gloss: "to eat"}},
			}},
		},
		{
			Sequence: 1169870,
			Reading:  storage.Reading{Kana: "のむ", Kanji: "飲む"},
			Senses: []storage.Sense{{
				Language: storage.English,
				POS:      []storage.PosSimple{storage.PosVerb},
				Glosses:  []storage.Gloss{{Gloss: "to drink"}},
			}},
		},
	})
}

func TestBuildNativeWordIndex(t *testing.T) {
	x := BuildNativeWordIndex(testWordStore())
	hits := x.NGram.Retrieve(x.NGram.CompileQuery("たべる"))
	require.NotEmpty(t, hits)
	assert.Equal(t, uint32(1358280), x.Seq(hits[0].Doc))

	// The kanji form is indexed as its own document.
	hits = x.NGram.Retrieve(x.NGram.CompileQuery("食べる"))
	require.NotEmpty(t, hits)
	assert.Equal(t, uint32(1358280), x.Seq(hits[0].Doc))
}

func TestBuildForeignWordIndex(t *testing.T) {
	x := BuildForeignWordIndex(testWordStore(), storage.English)
	hits := x.Retrieve(x.QueryVec("eat"), 0.1)
	require.NotEmpty(t, hits)
	assert.Equal(t, []uint32{1358280}, x.Docs[hits[0].Doc].SeqIDs)
}
