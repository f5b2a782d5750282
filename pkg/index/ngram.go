package index

import (
	"sort"
	"strings"
)

// NativeNGram is the window size of the native word index.
const NativeNGram = 3

// padRune marks the virtual start and end of an indexed text so prefix and
// suffix n-grams exist. It lies in the private use area and never occurs in
// dictionary data.
const padRune = '\uE000'

// Pad surrounds text with n sentinel runes on both sides.
func Pad(text string, n int) string {
	pad := strings.Repeat(string(padRune), n)
	return pad + text + pad
}

// Wordgrams yields every n-rune window of text.
func Wordgrams(text string, n int) []string {
	runes := []rune(text)
	if len(runes) < n {
		if len(runes) == 0 {
			return nil
		}
		return []string{string(runes)}
	}
	out := make([]string, 0, len(runes)-n+1)
	for i := 0; i+n <= len(runes); i++ {
		out = append(out, string(runes[i:i+n]))
	}
	return out
}

// TermSet is the compiled query of the n-gram engine: sorted, unique term ids.
type TermSet []uint32

// NewTermSet sorts and deduplicates ids.
func NewTermSet(ids []uint32) TermSet {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := ids[:0]
	var last uint32
	for i, id := range ids {
		if i > 0 && id == last {
			continue
		}
		out = append(out, id)
		last = id
	}
	return TermSet(out)
}

// Has reports whether id is in the set.
func (t TermSet) Has(id uint32) bool {
	i := sort.Search(len(t), func(i int) bool { return t[i] >= id })
	return i < len(t) && t[i] == id
}

// IndexItem is one posting of the n-gram index.
type IndexItem struct {
	Doc     uint32
	Payload uint16
}

// Hit is a retrieval candidate with its similarity score.
type Hit struct {
	Doc   uint32
	Score float32
}

// NGramIndex is an immutable inverted index from term ids to postings, with
// per-document term counts for similarity scoring.
type NGramIndex struct {
	N        int
	Dict     *Dictionary
	Postings map[uint32][]IndexItem
	DocTerms map[uint32]uint16
}

// NewNGramIndex creates an empty index with window n.
func NewNGramIndex(n int) *NGramIndex {
	return &NGramIndex{
		N:        n,
		Dict:     NewDictionary(),
		Postings: make(map[uint32][]IndexItem),
		DocTerms: make(map[uint32]uint16),
	}
}

// Insert indexes text under the document id.
func (x *NGramIndex) Insert(doc uint32, text string) {
	grams := Wordgrams(Pad(text, x.N-1), x.N)
	ids := make([]uint32, 0, len(grams))
	for _, g := range grams {
		ids = append(ids, x.Dict.Add(g))
	}
	ts := NewTermSet(ids)
	for _, id := range ts {
		x.Postings[id] = append(x.Postings[id], IndexItem{Doc: doc, Payload: 1})
	}
	x.DocTerms[doc] += uint16(len(ts))
}

// CompileQuery extracts the term set of a query text. Unknown n-grams are
// dropped; a query with no known terms compiles to an empty set.
func (x *NGramIndex) CompileQuery(text string) TermSet {
	grams := Wordgrams(Pad(text, x.N-1), x.N)
	ids := make([]uint32, 0, len(grams))
	for _, g := range grams {
		if id, ok := x.Dict.GetID(g); ok {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	return NewTermSet(ids)
}

// Retrieve yields the candidates sharing terms with the query set, ordered by
// descending dice similarity over the shared term counts. Ties order by
// ascending document id so retrieval is deterministic.
func (x *NGramIndex) Retrieve(query TermSet) []Hit {
	if len(query) == 0 {
		return nil
	}

	shared := make(map[uint32]int)
	for _, id := range query {
		for _, item := range x.Postings[id] {
			shared[item.Doc] += int(item.Payload)
		}
	}

	hits := make([]Hit, 0, len(shared))
	for doc, count := range shared {
		docTerms := int(x.DocTerms[doc])
		if docTerms == 0 {
			continue
		}
		score := 2 * float32(count) / float32(len(query)+docTerms)
		hits = append(hits, Hit{Doc: doc, Score: score})
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].Doc < hits[j].Doc
	})
	return hits
}

// HasExact reports whether text compiles to a term set that is exactly the
// term set of some indexed document.
func (x *NGramIndex) HasExact(text string) bool {
	query := x.CompileQuery(text)
	if len(query) == 0 {
		return false
	}
	for _, hit := range x.Retrieve(query) {
		if int(x.DocTerms[hit.Doc]) == len(query) && hit.Score >= 1 {
			return true
		}
	}
	return false
}

// EstimateCount returns the number of documents sharing at least one term
// with the query, stopping at cap.
func (x *NGramIndex) EstimateCount(query TermSet, cap int) int {
	seen := make(map[uint32]struct{})
	for _, id := range query {
		for _, item := range x.Postings[id] {
			seen[item.Doc] = struct{}{}
			if len(seen) >= cap {
				return cap
			}
		}
	}
	return len(seen)
}

// Len returns the number of indexed documents.
func (x *NGramIndex) Len() int { return len(x.DocTerms) }
