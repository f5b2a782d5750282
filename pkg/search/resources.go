package search

import (
	"github.com/jcantosz/jotoba/pkg/engine"
	"github.com/jcantosz/jotoba/pkg/index"
	"github.com/jcantosz/jotoba/pkg/sentreader"
	"github.com/jcantosz/jotoba/pkg/storage"
)

// Thresholds carries the empirical retrieval cutoffs. They default to the
// values proven in production but stay configurable.
type Thresholds struct {
	Native  float32
	Names   float32
	Foreign float32
	// RomajiFallbackMax triggers the romaji fallback when the gloss search
	// found fewer hits than this.
	RomajiFallbackMax int
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Native: 0.04, Names: 0.05, Foreign: 0.4, RomajiFallbackMax: 50}
}

// Resources bundles the process-wide read-only stores, indexes and the
// morphological analyzer. Built once at startup and shared by all requests.
type Resources struct {
	Words     *storage.WordStore
	Kanji     *storage.KanjiStore
	Names     *storage.NameStore
	Sentences *storage.SentenceStore

	WordIndex      *index.NativeIndex
	NameIndex      *index.NativeIndex
	ForeignIndexes map[storage.Language]*index.VectorIndex
	NameForeign    *index.VectorIndex
	ReadingFreq    *index.ReadingFreq

	WordSuggestions    *index.SuggestionIndex
	ForeignSuggestions map[storage.Language]*index.SuggestionIndex

	Parser     *sentreader.Parser
	Thresholds Thresholds
}

// BuildResources constructs every index from the loaded stores. parser may be
// nil when morphological analysis is unavailable; the sentence reader then
// stays inactive.
func BuildResources(words *storage.WordStore, kanji *storage.KanjiStore, names *storage.NameStore, sentences *storage.SentenceStore, parser *sentreader.Parser) *Resources {
	r := &Resources{
		Words:     words,
		Kanji:     kanji,
		Names:     names,
		Sentences: sentences,

		WordIndex:      index.BuildNativeWordIndex(words),
		NameIndex:      index.BuildNativeNameIndex(names),
		ForeignIndexes: make(map[storage.Language]*index.VectorIndex),
		NameForeign:    index.BuildForeignNameIndex(names),
		ReadingFreq:    index.NewReadingFreq(),

		WordSuggestions:    index.BuildWordSuggestions(words),
		ForeignSuggestions: make(map[storage.Language]*index.SuggestionIndex),

		Parser:     parser,
		Thresholds: DefaultThresholds(),
	}
	for _, lang := range storage.AllLanguages() {
		foreign := index.BuildForeignWordIndex(words, lang)
		if foreign.Len() == 0 {
			continue
		}
		r.ForeignIndexes[lang] = foreign
		r.ForeignSuggestions[lang] = index.BuildForeignSuggestions(words, lang)
	}
	return r
}

// NativeWordEngine returns the native word engine over the shared index.
func (r *Resources) NativeWordEngine() *engine.NativeWords {
	return &engine.NativeWords{Index: r.WordIndex, Words: r.Words}
}

// ForeignWordEngine returns the gloss engine over the shared indexes.
func (r *Resources) ForeignWordEngine() *engine.ForeignWords {
	return &engine.ForeignWords{Indexes: r.ForeignIndexes, Words: r.Words}
}

// NativeNameEngine returns the native name engine.
func (r *Resources) NativeNameEngine() *engine.NativeNames {
	return &engine.NativeNames{Index: r.NameIndex, Names: r.Names}
}

// ForeignNameEngine returns the transcription name engine.
func (r *Resources) ForeignNameEngine() *engine.ForeignNames {
	return &engine.ForeignNames{Index: r.NameForeign, Names: r.Names}
}
