package storage

import "github.com/jcantosz/jotoba/pkg/japanese"

// Name is one name-dictionary entry.
type Name struct {
	Sequence    uint32
	Kana        string
	Kanji       string
	Transcribed string
	NameType    string
}

// GetReading returns the written form, preferring kanji.
func (n *Name) GetReading() string {
	if n.Kanji != "" {
		return n.Kanji
	}
	return n.Kana
}

// HasKanji reports whether the name has a kanji form.
func (n *Name) HasKanji() bool { return n.Kanji != "" }

// NameStore is the immutable process-wide name store.
type NameStore struct {
	names []Name
	bySeq map[uint32]int
}

// NewNameStore builds a store from loaded entries.
func NewNameStore(names []Name) *NameStore {
	s := &NameStore{
		names: names,
		bySeq: make(map[uint32]int, len(names)),
	}
	for i := range names {
		s.bySeq[names[i].Sequence] = i
	}
	return s
}

// BySequence returns the name with the given sequence id.
func (s *NameStore) BySequence(seq uint32) (*Name, bool) {
	idx, ok := s.bySeq[seq]
	if !ok {
		return nil, false
	}
	return &s.names[idx], true
}

// Iter calls fn for every name until fn returns false.
func (s *NameStore) Iter(fn func(*Name) bool) {
	for i := range s.names {
		if !fn(&s.names[i]) {
			return
		}
	}
}

// Len returns the number of names.
func (s *NameStore) Len() int { return len(s.names) }

// Sentence is one example sentence with furigana and translations.
type Sentence struct {
	ID           uint32
	Japanese     string
	Furigana     string
	Translations map[Language]string
	JLPT         uint8
}

// HasTranslation reports whether the sentence is translated into lang.
func (s *Sentence) HasTranslation(lang Language) bool {
	_, ok := s.Translations[lang]
	return ok
}

// GetTranslation returns the translation for lang.
func (s *Sentence) GetTranslation(lang Language) (string, bool) {
	t, ok := s.Translations[lang]
	return t, ok
}

// Reading returns the kana reading derived from the furigana annotation.
func (s *Sentence) Reading() string {
	return japanese.FuriganaReading(s.Furigana)
}

// SentenceStore is the immutable process-wide sentence store.
type SentenceStore struct {
	sentences []Sentence
	byID      map[uint32]int
	byJlpt    map[uint8][]int
}

// NewSentenceStore builds a store from loaded entries.
func NewSentenceStore(sentences []Sentence) *SentenceStore {
	s := &SentenceStore{
		sentences: sentences,
		byID:      make(map[uint32]int, len(sentences)),
		byJlpt:    make(map[uint8][]int),
	}
	for i := range sentences {
		s.byID[sentences[i].ID] = i
		if jlpt := sentences[i].JLPT; jlpt > 0 {
			s.byJlpt[jlpt] = append(s.byJlpt[jlpt], i)
		}
	}
	return s
}

// ByID returns the sentence with the given id.
func (s *SentenceStore) ByID(id uint32) (*Sentence, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return &s.sentences[idx], true
}

// ByJlpt calls fn for every sentence of the given JLPT level.
func (s *SentenceStore) ByJlpt(jlpt uint8, fn func(*Sentence) bool) {
	for _, idx := range s.byJlpt[jlpt] {
		if !fn(&s.sentences[idx]) {
			return
		}
	}
}

// Iter calls fn for every sentence until fn returns false.
func (s *SentenceStore) Iter(fn func(*Sentence) bool) {
	for i := range s.sentences {
		if !fn(&s.sentences[i]) {
			return
		}
	}
}

// Len returns the number of sentences.
func (s *SentenceStore) Len() int { return len(s.sentences) }
