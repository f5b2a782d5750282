package name

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcantosz/jotoba/pkg/query"
	"github.com/jcantosz/jotoba/pkg/search"
	"github.com/jcantosz/jotoba/pkg/storage"
)

func fixtureResources() *search.Resources {
	words := storage.NewWordStore(nil)
	kanji := storage.NewKanjiStore([]storage.Kanji{
		{Literal: '田', Kunyomi: []string{"た"}, Onyomi: []string{"デン"}},
		{Literal: '中', Kunyomi: []string{"なか"}, Onyomi: []string{"チュウ"}},
	})
	names := storage.NewNameStore([]storage.Name{
		{Sequence: 1, Kana: "たなか", Kanji: "田中", Transcribed: "Tanaka", NameType: "surname"},
		{Sequence: 2, Kana: "たなべ", Kanji: "田辺", Transcribed: "Tanabe", NameType: "surname"},
		{Sequence: 3, Kana: "なかた", Kanji: "中田", Transcribed: "Nakata", NameType: "surname"},
	})
	sentences := storage.NewSentenceStore(nil)
	return search.BuildResources(words, kanji, names, sentences, nil)
}

func parseNameQuery(t *testing.T, raw string) *query.Query {
	t.Helper()
	q, err := query.NewParser(raw, query.TargetNames, query.DefaultSettings()).Parse()
	require.NoError(t, err)
	return q
}

func TestJapaneseNameSearch(t *testing.T) {
	res := fixtureResources()
	result, err := Search(res, parseNameQuery(t, "たなか"))
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, "田中", result.Items[0].GetReading())
}

func TestForeignNameSearch(t *testing.T) {
	res := fixtureResources()
	result, err := Search(res, parseNameQuery(t, "Tanaka"))
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, "たなか", result.Items[0].Kana)
}

func TestNameKanjiReading(t *testing.T) {
	res := fixtureResources()
	q := parseNameQuery(t, "田 た")
	require.Equal(t, query.FormKanjiReading, q.Form)

	result, err := Search(res, q)
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	for _, n := range result.Items {
		assert.Contains(t, n.Kanji, "田")
	}
}

func TestNameExactOutranksPrefix(t *testing.T) {
	res := fixtureResources()
	result, err := Search(res, parseNameQuery(t, "たなか"))
	require.NoError(t, err)
	require.NotEmpty(t, result.Items)
	assert.Equal(t, "たなか", result.Items[0].Kana)
}
