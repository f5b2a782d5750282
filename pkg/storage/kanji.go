package storage

import (
	"fmt"
	"sort"

	"github.com/jcantosz/jotoba/pkg/japanese"
)

// Kanji is one kanji record with readings, decomposition and the word
// sequences exercising each reading.
type Kanji struct {
	Literal  rune
	Onyomi   []string
	Kunyomi  []string
	Meanings []string
	Radical  rune
	Parts    []rune
	KunDicts []uint32
	OnDicts  []uint32
	JLPT     uint8
	Stroke   uint8
	KoreanH  []string
	KoreanR  []string
}

// GetKorean returns the Korean readings formatted as "hangul (romanized)".
func (k *Kanji) GetKorean() []string {
	if len(k.KoreanH) == 0 {
		return nil
	}
	out := make([]string, 0, len(k.KoreanH))
	for i, h := range k.KoreanH {
		if i < len(k.KoreanR) {
			out = append(out, fmt.Sprintf("%s (%s)", h, k.KoreanR[i]))
		} else {
			out = append(out, h)
		}
	}
	return out
}

// HasReadingMatch reports whether reading matches one of the kanji's kun or
// on readings after kana folding. Okurigana markers ('.') and leading
// hyphens in the stored reading are ignored for the comparison.
func (k *Kanji) HasReadingMatch(reading string) bool {
	want := japanese.KatakanaToHiragana(reading)
	for _, r := range append(append([]string{}, k.Kunyomi...), k.Onyomi...) {
		if normalizeKanjiReading(r) == want || fullKanjiReading(r) == want {
			return true
		}
	}
	return false
}

func normalizeKanjiReading(r string) string {
	r = japanese.KatakanaToHiragana(r)
	out := make([]rune, 0, len(r))
	for _, c := range r {
		if c == '.' {
			break
		}
		if c == '-' {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

func fullKanjiReading(r string) string {
	r = japanese.KatakanaToHiragana(r)
	out := make([]rune, 0, len(r))
	for _, c := range r {
		if c == '.' || c == '-' {
			continue
		}
		out = append(out, c)
	}
	return string(out)
}

// KanjiStore is the immutable process-wide kanji store.
type KanjiStore struct {
	byLiteral map[rune]*Kanji
	byRadical map[rune][]rune
	byJlpt    map[uint8][]rune
	literals  []rune
}

// NewKanjiStore builds a store from loaded records.
func NewKanjiStore(kanji []Kanji) *KanjiStore {
	s := &KanjiStore{
		byLiteral: make(map[rune]*Kanji, len(kanji)),
		byRadical: make(map[rune][]rune),
		byJlpt:    make(map[uint8][]rune),
	}
	for i := range kanji {
		k := &kanji[i]
		s.byLiteral[k.Literal] = k
		s.literals = append(s.literals, k.Literal)
		for _, part := range k.Parts {
			s.byRadical[part] = append(s.byRadical[part], k.Literal)
		}
		if k.Radical != 0 {
			s.byRadical[k.Radical] = append(s.byRadical[k.Radical], k.Literal)
		}
		if k.JLPT > 0 {
			s.byJlpt[k.JLPT] = append(s.byJlpt[k.JLPT], k.Literal)
		}
	}
	sort.Slice(s.literals, func(i, j int) bool { return s.literals[i] < s.literals[j] })
	for _, lits := range s.byRadical {
		sort.Slice(lits, func(i, j int) bool { return lits[i] < lits[j] })
	}
	return s
}

// ByLiteral returns the record for a kanji literal.
func (s *KanjiStore) ByLiteral(literal rune) (*Kanji, bool) {
	k, ok := s.byLiteral[literal]
	return k, ok
}

// HasLiteral reports whether the literal is known.
func (s *KanjiStore) HasLiteral(literal rune) bool {
	_, ok := s.byLiteral[literal]
	return ok
}

// ByRadicals returns all kanji containing every given radical, sorted by
// literal. Radical posting lists are pre-sorted so this is a sorted
// intersection.
func (s *KanjiStore) ByRadicals(radicals []rune) []*Kanji {
	if len(radicals) == 0 {
		return nil
	}
	lists := make([][]rune, 0, len(radicals))
	for _, r := range radicals {
		list, ok := s.byRadical[r]
		if !ok {
			return nil
		}
		lists = append(lists, list)
	}

	out := []*Kanji{}
	for _, lit := range lists[0] {
		inAll := true
		for _, list := range lists[1:] {
			i := sort.Search(len(list), func(i int) bool { return list[i] >= lit })
			if i >= len(list) || list[i] != lit {
				inAll = false
				break
			}
		}
		if inAll {
			if k, ok := s.ByLiteral(lit); ok {
				out = append(out, k)
			}
		}
	}
	return out
}

// ByJlpt returns the literals tagged with the given JLPT level.
func (s *KanjiStore) ByJlpt(jlpt uint8) []rune {
	return s.byJlpt[jlpt]
}

// Iter calls fn for every kanji until fn returns false.
func (s *KanjiStore) Iter(fn func(*Kanji) bool) {
	for _, lit := range s.literals {
		if !fn(s.byLiteral[lit]) {
			return
		}
	}
}

// Len returns the number of kanji.
func (s *KanjiStore) Len() int { return len(s.literals) }

// Onyomi implements japanese.ReadingRetrieve.
func (s *KanjiStore) Onyomi(literal rune) []string {
	if k, ok := s.ByLiteral(literal); ok {
		return k.Onyomi
	}
	return nil
}

// Kunyomi implements japanese.ReadingRetrieve.
func (s *KanjiStore) Kunyomi(literal rune) []string {
	if k, ok := s.ByLiteral(literal); ok {
		return k.Kunyomi
	}
	return nil
}
