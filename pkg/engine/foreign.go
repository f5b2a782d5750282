package engine

import (
	"strings"

	"github.com/jcantosz/jotoba/pkg/index"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// ForeignWords retrieves words by translation gloss through the per-language
// vector space model.
type ForeignWords struct {
	Indexes map[storage.Language]*index.VectorIndex
	Words   *storage.WordStore
}

func (e *ForeignWords) indexFor(lang storage.Language) (*index.VectorIndex, bool) {
	idx, ok := e.Indexes[lang]
	return idx, ok
}

// Retrieve implements Engine. Documents map to all word sequences carrying
// the matched gloss.
func (e *ForeignWords) Retrieve(query string, lang storage.Language, vectorFilter func(uint32) bool) []Candidate[*storage.Word] {
	idx, ok := e.indexFor(lang)
	if !ok {
		return nil
	}
	hits := idx.Retrieve(idx.QueryVec(query), 0)

	var out []Candidate[*storage.Word]
	seen := make(map[uint32]struct{})
	for _, hit := range hits {
		for _, seq := range idx.Docs[hit.Doc].SeqIDs {
			if vectorFilter != nil && !vectorFilter(seq) {
				continue
			}
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
	}
	return out
}

// HasExact implements Engine: the query must consist of terms known to the
// index, indexed prefix subterms included.
func (e *ForeignWords) HasExact(query string, lang storage.Language) bool {
	idx, ok := e.indexFor(lang)
	if !ok {
		return false
	}
	return idx.HasExactTerm(strings.ToLower(query))
}

// EstimateCount implements Engine.
func (e *ForeignWords) EstimateCount(query string, lang storage.Language, cap int) int {
	idx, ok := e.indexFor(lang)
	if !ok {
		return 0
	}
	hits := idx.Retrieve(idx.QueryVec(query), 0.1)
	count := 0
	for _, hit := range hits {
		count += len(idx.Docs[hit.Doc].SeqIDs)
		if count >= cap {
			return cap
		}
	}
	return count
}

// GuessLanguage returns the languages whose gloss index knows every term of
// the query. Used for the language fallback when the user language finds
// nothing.
func (e *ForeignWords) GuessLanguage(query string) []storage.Language {
	query = strings.ToLower(query)
	var out []storage.Language
	for _, lang := range storage.AllLanguages() {
		idx, ok := e.Indexes[lang]
		if !ok {
			continue
		}
		if idx.HasExactTerm(query) {
			out = append(out, lang)
		}
	}
	return out
}

// ForeignNames retrieves names by transcription through a vector index.
type ForeignNames struct {
	Index *index.VectorIndex
	Names *storage.NameStore
}

// Retrieve implements Engine.
func (e *ForeignNames) Retrieve(query string, _ storage.Language, vectorFilter func(uint32) bool) []Candidate[*storage.Name] {
	hits := e.Index.Retrieve(e.Index.QueryVec(query), 0)

	var out []Candidate[*storage.Name]
	seen := make(map[uint32]struct{})
	for _, hit := range hits {
		for _, seq := range e.Index.Docs[hit.Doc].SeqIDs {
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
	}
	return out
}

// HasExact implements Engine.
func (e *ForeignNames) HasExact(query string, _ storage.Language) bool {
	return e.Index.HasExactTerm(strings.ToLower(query))
}

// EstimateCount implements Engine.
func (e *ForeignNames) EstimateCount(query string, _ storage.Language, cap int) int {
	hits := e.Index.Retrieve(e.Index.QueryVec(query), 0.1)
	if len(hits) > cap {
		return cap
	}
	return len(hits)
}
