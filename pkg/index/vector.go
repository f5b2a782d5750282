package index

import (
	"math"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// MinWordLen is the shortest prefix expanded into subdocuments of a gloss
// term.
const MinWordLen = 4

var glossSplitter = func(r rune) bool {
	return strings.ContainsRune(".,[]() \t\"'\\/-;:", r)
}

// SplitToWords splits a gloss into its lowercased index terms.
func SplitToWords(gloss string) []string {
	folded := strings.ToLower(norm.NFKC.String(gloss))
	var out []string
	for _, term := range strings.FieldsFunc(folded, glossSplitter) {
		if term != "" {
			out = append(out, term)
		}
	}
	return out
}

// SubTerms expands a term into the prefixes of length >= MinWordLen plus
// dehyphenated variants, mirroring the gloss subdocument expansion.
func SubTerms(term string) []string {
	runes := []rune(term)
	if len(runes) <= MinWordLen {
		return []string{term}
	}
	out := make([]string, 0, len(runes)-MinWordLen+1)
	for i := MinWordLen; i <= len(runes); i++ {
		out = append(out, string(runes[:i]))
	}
	if strings.Contains(term, "-") {
		out = append(out, strings.ReplaceAll(term, "-", ""))
	}
	return out
}

// Dim is one weighted dimension of a sparse vector.
type Dim struct {
	ID uint32
	W  float32
}

// SparseVec is a sparse vector with dimensions sorted by id.
type SparseVec []Dim

// Dot computes the dot product of two sorted sparse vectors.
func (v SparseVec) Dot(other SparseVec) float32 {
	var sum float32
	i, j := 0, 0
	for i < len(v) && j < len(other) {
		switch {
		case v[i].ID < other[j].ID:
			i++
		case v[i].ID > other[j].ID:
			j++
		default:
			sum += v[i].W * other[j].W
			i++
			j++
		}
	}
	return sum
}

// Norm returns the L2 norm of the vector.
func (v SparseVec) Norm() float32 {
	var sum float64
	for _, d := range v {
		sum += float64(d.W) * float64(d.W)
	}
	return float32(math.Sqrt(sum))
}

// Cosine returns the cosine similarity of two vectors.
func (v SparseVec) Cosine(other SparseVec) float32 {
	n := v.Norm() * other.Norm()
	if n == 0 {
		return 0
	}
	return v.Dot(other) / n
}

// VecDoc is one indexed document of the vector index, carrying the word
// sequences it belongs to.
type VecDoc struct {
	SeqIDs []uint32
	Vec    SparseVec
}

// VectorIndex is a TF-IDF vector space model over gloss documents of one
// language.
type VectorIndex struct {
	Dict     *Dictionary
	Docs     []VecDoc
	Inverted map[uint32][]uint32 // term id -> doc indices
	DocFreq  map[uint32]uint32
	docTexts []map[uint32]int // term counts per doc, dropped after Finish
	finished bool
}

// NewVectorIndex creates an empty vector index.
func NewVectorIndex() *VectorIndex {
	return &VectorIndex{
		Dict:     NewDictionary(),
		Inverted: make(map[uint32][]uint32),
		DocFreq:  make(map[uint32]uint32),
	}
}

// Add indexes a gloss document for the given word sequences. Terms are split,
// expanded into subterms and counted. Must be called before Finish.
func (x *VectorIndex) Add(gloss string, seqIDs []uint32) {
	terms := SplitToWords(gloss)
	if len(terms) == 0 {
		return
	}
	counts := make(map[uint32]int)
	for _, term := range terms {
		counts[x.Dict.Add(term)]++
		for _, sub := range SubTerms(term) {
			if sub == term {
				continue
			}
			counts[x.Dict.Add(sub)]++
		}
	}
	// Hyphenated words also index their dehyphenated form (good-bye -> goodbye).
	for _, word := range strings.Fields(strings.ToLower(gloss)) {
		if !strings.Contains(word, "-") {
			continue
		}
		for _, joined := range SplitToWords(strings.ReplaceAll(word, "-", "")) {
			if !strings.Contains(word, joined) {
				counts[x.Dict.Add(joined)]++
			}
		}
	}

	docIdx := uint32(len(x.Docs))
	x.Docs = append(x.Docs, VecDoc{SeqIDs: seqIDs})
	x.docTexts = append(x.docTexts, counts)
	for id := range counts {
		x.DocFreq[id]++
		x.Inverted[id] = append(x.Inverted[id], docIdx)
	}
}

// Finish computes the TF-IDF weights of all documents. The index is read-only
// afterwards.
func (x *VectorIndex) Finish() {
	n := float64(len(x.Docs))
	for i, counts := range x.docTexts {
		vec := make(SparseVec, 0, len(counts))
		for id, count := range counts {
			vec = append(vec, Dim{ID: id, W: x.tfidf(count, id, n)})
		}
		sort.Slice(vec, func(a, b int) bool { return vec[a].ID < vec[b].ID })
		x.Docs[i].Vec = vec
	}
	x.docTexts = nil
	x.finished = true
}

func (x *VectorIndex) tfidf(count int, id uint32, docs float64) float32 {
	tf := 1 + math.Log(float64(count))
	idf := math.Log(1 + docs/float64(x.DocFreq[id]))
	return float32(tf * idf)
}

// QueryVec builds the vector of a query text. Unknown terms are dropped.
func (x *VectorIndex) QueryVec(text string) SparseVec {
	counts := make(map[uint32]int)
	for _, term := range SplitToWords(text) {
		if id, ok := x.Dict.GetID(term); ok {
			counts[id]++
		}
	}
	if len(counts) == 0 {
		return nil
	}
	vec := make(SparseVec, 0, len(counts))
	n := float64(len(x.Docs))
	for id, count := range counts {
		vec = append(vec, Dim{ID: id, W: x.tfidf(count, id, n)})
	}
	sort.Slice(vec, func(a, b int) bool { return vec[a].ID < vec[b].ID })
	return vec
}

// Retrieve returns the documents whose cosine similarity with the query
// vector reaches threshold, ordered by descending similarity then document
// index.
func (x *VectorIndex) Retrieve(query SparseVec, threshold float32) []Hit {
	if len(query) == 0 {
		return nil
	}

	candidates := make(map[uint32]struct{})
	for _, d := range query {
		for _, doc := range x.Inverted[d.ID] {
			candidates[doc] = struct{}{}
		}
	}

	hits := make([]Hit, 0, len(candidates))
	for doc := range candidates {
		score := query.Cosine(x.Docs[doc].Vec)
		if score < threshold {
			continue
		}
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

// HasExactTerm reports whether every term of text is known to the index.
// Indexed prefix subterms (MinWordLen and longer) count as known terms.
func (x *VectorIndex) HasExactTerm(text string) bool {
	terms := SplitToWords(text)
	if len(terms) == 0 {
		return false
	}
	for _, term := range terms {
		if _, ok := x.Dict.GetID(term); !ok {
			return false
		}
	}
	return true
}

// Len returns the number of indexed documents.
func (x *VectorIndex) Len() int { return len(x.Docs) }
