package storage

import (
	"strings"

	"github.com/jcantosz/jotoba/pkg/japanese"
)

// Reading is the written form of a word. Kanji is empty for kana-only words.
type Reading struct {
	Kana  string
	Kanji string
}

// Gloss is one translation of one sense.
type Gloss struct {
	Gloss string
}

// Sense groups compatible glosses of one language with shared POS and misc
// information.
type Sense struct {
	Glosses  []Gloss
	POS      []PosSimple
	Misc     string
	Language Language
}

// Word is one dictionary entry.
type Word struct {
	Sequence uint32
	Reading  Reading
	Senses   []Sense
	Furigana string
	JLPT     uint8 // 0 = untagged
	Common   bool
}

// GetReading returns the primary written form, preferring kanji.
func (w *Word) GetReading() string {
	if w.Reading.Kanji != "" {
		return w.Reading.Kanji
	}
	return w.Reading.Kana
}

// GetKana returns the kana reading.
func (w *Word) GetKana() string {
	return w.Reading.Kana
}

// HasReading reports whether term matches the kana or kanji form exactly.
func (w *Word) HasReading(term string) bool {
	return w.Reading.Kana == term || (w.Reading.Kanji != "" && w.Reading.Kanji == term)
}

// HasPos reports whether any sense carries one of the given POS classes.
func (w *Word) HasPos(filter []PosSimple) bool {
	for _, sense := range w.Senses {
		for _, pos := range sense.POS {
			for _, want := range filter {
				if pos == want {
					return true
				}
			}
		}
	}
	return false
}

// HasMisc reports whether any sense carries the misc tag.
func (w *Word) HasMisc(misc string) bool {
	for _, sense := range w.Senses {
		if sense.Misc == misc {
			return true
		}
	}
	return false
}

// HasLanguage reports whether the word has senses for the given language, or
// English when English results are allowed.
func (w *Word) HasLanguage(lang Language, allowEnglish bool) bool {
	for _, sense := range w.Senses {
		if sense.Language == lang || (allowEnglish && sense.Language == English) {
			return true
		}
	}
	return false
}

// HasGloss reports whether any sense in lang contains term as a gloss,
// case-insensitively.
func (w *Word) HasGloss(term string, lang Language) bool {
	term = strings.ToLower(term)
	for _, sense := range w.Senses {
		if sense.Language != lang {
			continue
		}
		for _, g := range sense.Glosses {
			if strings.ToLower(g.Gloss) == term {
				return true
			}
		}
	}
	return false
}

// IsCommon reports whether the word carries a common-usage priority tag.
func (w *Word) IsCommon() bool { return w.Common }

// GetJlpt returns the JLPT level and whether the word is tagged at all.
func (w *Word) GetJlpt() (uint8, bool) {
	return w.JLPT, w.JLPT > 0
}

// FilterSenses drops senses outside lang (keeping English when allowed) and
// reports whether any sense remains.
func (w *Word) FilterSenses(lang Language, allowEnglish bool) bool {
	kept := w.Senses[:0:0]
	for _, sense := range w.Senses {
		if sense.Language == lang || (allowEnglish && sense.Language == English) {
			kept = append(kept, sense)
		}
	}
	w.Senses = kept
	return len(kept) > 0
}

// Kanji returns the distinct kanji literals of the written form, in order.
func (w *Word) Kanji() []rune {
	var out []rune
	seen := map[rune]bool{}
	for _, r := range w.Reading.Kanji {
		if japanese.IsKanji(r) && !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}

// WordStore is the immutable process-wide word store.
type WordStore struct {
	words  []Word
	bySeq  map[uint32]int
	byKana map[string][]uint32
	byForm map[string][]uint32
}

// NewWordStore builds a store from loaded entries.
func NewWordStore(words []Word) *WordStore {
	s := &WordStore{
		words:  words,
		bySeq:  make(map[uint32]int, len(words)),
		byKana: make(map[string][]uint32),
		byForm: make(map[string][]uint32),
	}
	for i := range words {
		w := &words[i]
		s.bySeq[w.Sequence] = i
		s.byKana[w.Reading.Kana] = append(s.byKana[w.Reading.Kana], w.Sequence)
		s.byForm[w.Reading.Kana] = append(s.byForm[w.Reading.Kana], w.Sequence)
		if w.Reading.Kanji != "" {
			s.byForm[w.Reading.Kanji] = append(s.byForm[w.Reading.Kanji], w.Sequence)
		}
	}
	return s
}

// BySequence returns the word with the given sequence id.
func (s *WordStore) BySequence(seq uint32) (*Word, bool) {
	idx, ok := s.bySeq[seq]
	if !ok {
		return nil, false
	}
	return &s.words[idx], true
}

// ByReading returns all words whose kana or kanji form equals term exactly.
func (s *WordStore) ByReading(term string) []*Word {
	var out []*Word
	for _, seq := range s.byForm[term] {
		if w, ok := s.BySequence(seq); ok {
			out = append(out, w)
		}
	}
	return out
}

// HasTerm reports whether term exists as an exact written form.
func (s *WordStore) HasTerm(term string) bool {
	return len(s.byForm[term]) > 0
}

// Iter calls fn for every word until fn returns false.
func (s *WordStore) Iter(fn func(*Word) bool) {
	for i := range s.words {
		if !fn(&s.words[i]) {
			return
		}
	}
}

// Len returns the number of words.
func (s *WordStore) Len() int { return len(s.words) }
