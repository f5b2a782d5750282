// Package word implements the word search pipeline: the producer chain over
// the native, gloss, regex and sentence-reader engines, the word rankers and
// the result enrichment.
package word

import (
	"github.com/jcantosz/jotoba/pkg/sentreader"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// InflectionInformation describes how an observed surface maps back to its
// dictionary lexeme.
type InflectionInformation struct {
	Lexeme      string
	Inflections []sentreader.Inflection
}

// InflectionInfoFromPart extracts inflection information from a parsed part,
// or nil when the part carries no inflections.
func InflectionInfoFromPart(part *sentreader.Part) *InflectionInformation {
	if part == nil || !part.HasInflections() {
		return nil
	}
	return &InflectionInformation{
		Lexeme:      part.GetNormalized(),
		Inflections: append([]sentreader.Inflection{}, part.Inflections()...),
	}
}

// SentenceInfo carries the parsed sentence of a sentence-reader search.
type SentenceInfo struct {
	Parts *sentreader.Sentence
	Index int
	Query string
}

// AddResData is the aggregated side channel of the word pipeline.
type AddResData struct {
	Sentence   *SentenceInfo
	Inflection *InflectionInformation
	RawQuery   string
}

// WordResult is the final result of a word search: kanji records of the top
// words followed by the ranked words themselves.
type WordResult struct {
	Words          []*storage.Word
	Kanji          []*storage.Kanji
	Count          int
	InflectionInfo *InflectionInformation
	SentenceParts  *sentreader.Sentence
	SentenceIndex  int
	SearchedQuery  string
}

// ContainsKanji reports whether kanji records were attached.
func (r *WordResult) ContainsKanji() bool { return len(r.Kanji) > 0 }
