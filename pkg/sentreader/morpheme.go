// Package sentreader segments Japanese input with the kagome morphological
// analyzer and reconstructs dictionary forms, inflection chains and furigana
// for whole sentences.
package sentreader

import "github.com/jcantosz/jotoba/pkg/storage"

// WordClass is the coarse word class reported by the analyzer.
type WordClass int

const (
	ClassUnknown WordClass = iota
	ClassNoun
	ClassVerb
	ClassAdjective
	ClassAdverb
	ClassParticle
	ClassPronoun
	ClassInterjection
	ClassConjunction
	ClassSuffix
	ClassPrefix
	ClassPreNoun
	ClassAuxVerb
	ClassSymbol
	ClassSpace
)

// wordClassFromPOS maps the analyzer's POS label to a WordClass.
func wordClassFromPOS(pos []string) WordClass {
	if len(pos) == 0 {
		return ClassUnknown
	}
	switch pos[0] {
	case "名詞":
		return ClassNoun
	case "代名詞":
		return ClassPronoun
	case "動詞":
		return ClassVerb
	case "形容詞", "形状詞":
		return ClassAdjective
	case "副詞":
		return ClassAdverb
	case "助詞":
		return ClassParticle
	case "感動詞":
		return ClassInterjection
	case "接続詞":
		return ClassConjunction
	case "接尾辞":
		return ClassSuffix
	case "接頭辞", "接頭詞":
		return ClassPrefix
	case "連体詞":
		return ClassPreNoun
	case "助動詞":
		return ClassAuxVerb
	case "記号", "補助記号":
		return ClassSymbol
	case "空白":
		return ClassSpace
	}
	return ClassUnknown
}

// Name returns a display name for the class.
func (c WordClass) Name() string {
	switch c {
	case ClassNoun:
		return "Noun"
	case ClassVerb:
		return "Verb"
	case ClassAdjective:
		return "Adjective"
	case ClassAdverb:
		return "Adverb"
	case ClassParticle:
		return "Particle"
	case ClassPronoun:
		return "Pronoun"
	case ClassInterjection:
		return "Interjection"
	case ClassConjunction:
		return "Conjunction"
	case ClassSuffix:
		return "Suffix"
	case ClassPrefix:
		return "Prefix"
	case ClassPreNoun:
		return "Pre-noun"
	case ClassAuxVerb:
		return "Auxiliary verb"
	case ClassSymbol:
		return "Symbol"
	case ClassSpace:
		return "Space"
	}
	return "Undetected"
}

// ToPosSimple converts the word class to the dictionary POS class used by
// filters and rankers.
func (c WordClass) ToPosSimple() (storage.PosSimple, bool) {
	switch c {
	case ClassNoun:
		return storage.PosNoun, true
	case ClassVerb:
		return storage.PosVerb, true
	case ClassAdjective:
		return storage.PosAdjective, true
	case ClassAdverb:
		return storage.PosAdverb, true
	case ClassParticle:
		return storage.PosParticle, true
	case ClassPronoun:
		return storage.PosPronoun, true
	case ClassInterjection:
		return storage.PosInterjection, true
	case ClassConjunction:
		return storage.PosConjunction, true
	case ClassSuffix:
		return storage.PosSuffix, true
	case ClassPrefix:
		return storage.PosPrefix, true
	}
	return storage.PosUnknown, false
}

// Morpheme is one analyzed unit with its surface, dictionary form and word
// class. Reading is katakana as produced by the analyzer.
type Morpheme struct {
	Surface  string
	Lexeme   string
	Reading  string
	POS      []string
	Class    WordClass
	ConjForm string
}

// DictForm returns the dictionary form, falling back to the surface when the
// analyzer reports none.
func (m *Morpheme) DictForm() string {
	if m.Lexeme != "" && m.Lexeme != "*" {
		return m.Lexeme
	}
	return m.Surface
}
