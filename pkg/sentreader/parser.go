package sentreader

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// ParseKind discriminates the analyzer outcome.
type ParseKind int

const (
	// ParsedNone means the input is neither a sentence nor an inflected word.
	ParsedNone ParseKind = iota
	// ParsedInflectedWord means the whole input is one inflected word.
	ParsedInflectedWord
	// ParsedSentence means the input segments into multiple words.
	ParsedSentence
)

// ParseResult is the outcome of analyzing one input string.
type ParseResult struct {
	Kind     ParseKind
	Word     *Part
	Sentence *Sentence
}

// IsNone reports whether nothing was recognized.
func (r ParseResult) IsNone() bool { return r.Kind == ParsedNone }

// AsInflectedWord returns the single inflected word, if any.
func (r ParseResult) AsInflectedWord() (*Part, bool) {
	return r.Word, r.Kind == ParsedInflectedWord
}

// AsSentence returns the parsed sentence, if any.
func (r ParseResult) AsSentence() (*Sentence, bool) {
	return r.Sentence, r.Kind == ParsedSentence
}

// DictKind selects the morphology dictionary.
type DictKind string

const (
	DictUni DictKind = "uni"
	DictIPA DictKind = "ipa"
)

// Parser segments Japanese text. It is safe for concurrent use; the
// underlying tokenizer and its dictionary are read-only after construction.
type Parser struct {
	t *tokenizer.Tokenizer
}

// NewParser creates a parser backed by the given dictionary.
func NewParser(kind DictKind) (*Parser, error) {
	dict := uni.Dict()
	if kind == DictIPA {
		dict = ipa.Dict()
	}
	t, err := tokenizer.New(dict, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}
	return &Parser{t: t}, nil
}

// morphemes tokenizes text into the analyzer's morpheme representation.
func (p *Parser) morphemes(text string) []Morpheme {
	var out []Morpheme
	for _, token := range p.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		m := Morpheme{Surface: token.Surface, POS: token.POS()}
		if base, ok := token.BaseForm(); ok {
			m.Lexeme = base
		}
		if reading, ok := token.Reading(); ok && reading != "*" {
			m.Reading = reading
		}
		if form, ok := token.InflectionalForm(); ok {
			m.ConjForm = form
		}
		m.Class = wordClassFromPOS(m.POS)
		out = append(out, m)
	}
	return out
}

// attachesToPrevious reports whether the morpheme continues the preceding
// part instead of starting a word of its own.
func attachesToPrevious(m *Morpheme, prev []Morpheme) bool {
	if len(prev) == 0 {
		return false
	}
	switch m.Class {
	case ClassAuxVerb:
		return true
	case ClassSuffix:
		return true
	case ClassParticle:
		// Only the te-form conjunctive particle belongs to the verb.
		if len(m.POS) > 1 && m.POS[1] == "接続助詞" && (m.Surface == "て" || m.Surface == "で") {
			return prev[0].Class == ClassVerb || prev[0].Class == ClassAdjective
		}
	case ClassVerb:
		// Subsidiary verbs (ている, でいる) continue the inflection chain.
		if len(m.POS) > 1 && m.POS[1] == "非自立可能" {
			last := prev[len(prev)-1]
			return last.Surface == "て" || last.Surface == "で"
		}
	}
	return false
}

// groupParts merges morphemes into word parts.
func groupParts(morphemes []Morpheme) []Part {
	var parts []Part
	var current []Morpheme

	flush := func() {
		if part, ok := NewPart(current, len(parts)); ok {
			parts = append(parts, *part)
		}
		current = nil
	}

	for i := range morphemes {
		m := morphemes[i]
		if attachesToPrevious(&m, current) {
			current = append(current, m)
			continue
		}
		if len(current) > 0 {
			flush()
		}
		current = append(current, m)
	}
	if len(current) > 0 {
		flush()
	}
	return parts
}

// Parse analyzes the input and decides whether it is a sentence, a single
// inflected word, or neither. The analyzer itself never fails; unknown text
// yields ParsedNone.
func (p *Parser) Parse(text string) ParseResult {
	text = strings.TrimSpace(text)
	if text == "" {
		return ParseResult{}
	}

	parts := groupParts(p.morphemes(text))
	switch len(parts) {
	case 0:
		return ParseResult{}
	case 1:
		part := parts[0]
		if part.HasInflections() || part.GetNormalized() != part.GetInflected() {
			return ParseResult{Kind: ParsedInflectedWord, Word: &part}
		}
		return ParseResult{}
	default:
		return ParseResult{Kind: ParsedSentence, Sentence: NewSentence(parts)}
	}
}
