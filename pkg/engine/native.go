package engine

import (
	"github.com/jcantosz/jotoba/pkg/index"
	"github.com/jcantosz/jotoba/pkg/japanese"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// NativeWords retrieves words by Japanese writing through the n-gram index.
type NativeWords struct {
	Index *index.NativeIndex
	Words *storage.WordStore
}

// FormatQuery folds widths and converts non-Japanese input without katakana
// to hiragana so romanized queries reach the native index.
func (e *NativeWords) FormatQuery(query string) string {
	query = japanese.ToHalfwidth(query)
	if !japanese.HasKana(query) && !japanese.StrIsJapanese(query) {
		return japanese.ToHiragana(query)
	}
	return query
}

// Retrieve implements Engine.
func (e *NativeWords) Retrieve(query string, _ storage.Language, vectorFilter func(uint32) bool) []Candidate[*storage.Word] {
	formatted := e.FormatQuery(query)
	hits := e.Index.NGram.Retrieve(e.Index.NGram.CompileQuery(formatted))

	out := make([]Candidate[*storage.Word], 0, len(hits))
	seen := make(map[uint32]struct{}, len(hits))
	for _, hit := range hits {
		seq := e.Index.Seq(hit.Doc)
		if vectorFilter != nil && !vectorFilter(seq) {
			continue
		}
		// Kana and kanji forms of the same word collapse on the best doc.
		if _, ok := seen[seq]; ok {
			continue
		}
		seen[seq] = struct{}{}
		word, ok := e.Words.BySequence(seq)
		if !ok {
			continue
		}
		out = append(out, Candidate[*storage.Word]{Doc: seq, Score: hit.Score, Output: word})
	}
	return out
}

// HasExact implements Engine using the store's exact written-form test.
func (e *NativeWords) HasExact(query string, _ storage.Language) bool {
	return e.Words.HasTerm(e.FormatQuery(query))
}

// EstimateCount implements Engine.
func (e *NativeWords) EstimateCount(query string, _ storage.Language, cap int) int {
	ts := e.Index.NGram.CompileQuery(e.FormatQuery(query))
	return e.Index.NGram.EstimateCount(ts, cap)
}

// NativeNames retrieves names by Japanese writing through the n-gram index.
type NativeNames struct {
	Index *index.NativeIndex
	Names *storage.NameStore
}

// Retrieve implements Engine.
func (e *NativeNames) Retrieve(query string, _ storage.Language, vectorFilter func(uint32) bool) []Candidate[*storage.Name] {
	query = japanese.ToHalfwidth(query)
	hits := e.Index.NGram.Retrieve(e.Index.NGram.CompileQuery(query))

	out := make([]Candidate[*storage.Name], 0, len(hits))
	seen := make(map[uint32]struct{}, len(hits))
	for _, hit := range hits {
		seq := e.Index.Seq(hit.Doc)
		if vectorFilter != nil && !vectorFilter(seq) {
			continue
		}
		if _, ok := seen[seq]; ok {
			continue
		}
		seen[seq] = struct{}{}
		name, ok := e.Names.BySequence(seq)
		if !ok {
			continue
		}
		out = append(out, Candidate[*storage.Name]{Doc: seq, Score: hit.Score, Output: name})
	}
	return out
}

// HasExact implements Engine.
func (e *NativeNames) HasExact(query string, _ storage.Language) bool {
	return e.Index.NGram.HasExact(japanese.ToHalfwidth(query))
}

// EstimateCount implements Engine.
func (e *NativeNames) EstimateCount(query string, _ storage.Language, cap int) int {
	ts := e.Index.NGram.CompileQuery(japanese.ToHalfwidth(query))
	return e.Index.NGram.EstimateCount(ts, cap)
}
