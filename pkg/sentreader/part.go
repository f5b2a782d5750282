package sentreader

import (
	"strings"

	"github.com/jcantosz/jotoba/pkg/japanese"
)

// Part is a single word within a sentence, carrying the morphemes building
// its (possibly inflected) surface.
type Part struct {
	morphemes   []Morpheme
	inflections []Inflection
	pos         int
	furigana    string
}

// NewPart builds a part from a non-empty morpheme group. The head morpheme is
// the main lexeme; the tail is parsed into the inflection chain.
func NewPart(morphemes []Morpheme, pos int) (*Part, bool) {
	if len(morphemes) == 0 {
		return nil, false
	}
	return &Part{
		morphemes:   morphemes,
		inflections: parseInflections(&morphemes[0], morphemes[1:]),
		pos:         pos,
	}, true
}

// Morphemes returns the part's morphemes.
func (p *Part) Morphemes() []Morpheme { return p.morphemes }

// Inflections returns the parsed inflection chain.
func (p *Part) Inflections() []Inflection { return p.inflections }

// HasInflections reports whether the part carries at least one inflection.
func (p *Part) HasInflections() bool { return len(p.inflections) > 0 }

// Pos returns the position of the part within its sentence.
func (p *Part) Pos() int { return p.pos }

// GetInflected returns the surface of the part with all inflections applied.
func (p *Part) GetInflected() string {
	var b strings.Builder
	for i := range p.morphemes {
		b.WriteString(p.morphemes[i].Surface)
	}
	return b.String()
}

// GetNormalized returns the dictionary form of the part's main lexeme.
func (p *Part) GetNormalized() string {
	return p.mainMorpheme().DictForm()
}

// WordClassRaw returns the word class of the main morpheme.
func (p *Part) WordClassRaw() WordClass {
	return p.mainMorpheme().Class
}

// WordClass returns a display class. A symbol classification for a non-symbol
// lexeme means the analyzer did not recognize the word.
func (p *Part) WordClass() string {
	main := p.mainMorpheme()
	if main.Class == ClassSymbol && !japanese.StrIsSymbol(main.DictForm()) {
		return "Undetected"
	}
	return main.Class.Name()
}

// Furigana returns the reconciled furigana, empty when unresolved.
func (p *Part) Furigana() string { return p.furigana }

func (p *Part) mainMorpheme() *Morpheme {
	return &p.morphemes[0]
}

// SetFurigana resolves the part's furigana morpheme by morpheme through the
// lookup. The lookup receives the written dictionary form and returns
// bracket-encoded furigana. When any kanji morpheme stays unresolved the part
// keeps no furigana at all.
func (p *Part) SetFurigana(lookup func(string) (string, bool)) {
	var out strings.Builder
	hasFurigana := false

	for i := range p.morphemes {
		m := &p.morphemes[i]
		if !japanese.HasKanji(m.Surface) {
			out.WriteString(m.Surface)
			continue
		}
		furi, ok := lookup(m.DictForm())
		if !ok {
			return
		}
		// A lookup result without brackets carries no annotation.
		if !strings.Contains(furi, "|") {
			out.WriteString(furi)
			continue
		}
		merged, ok := MergeFurigana(m.Surface, furi)
		if !ok {
			return
		}
		hasFurigana = true
		out.WriteString(merged)
	}

	if hasFurigana {
		p.furigana = out.String()
	}
}

// MergeFurigana re-aligns dictionary furigana onto an inflected surface.
// The dictionary reading annotates the lexeme (行く) while the surface may be
// inflected (行った): kana runs are taken from the surface, kanji keep their
// dictionary readings. Returns false when the paths cannot be aligned.
func MergeFurigana(src, furi string) (string, bool) {
	kanaRuns := japanese.AllWordsWithCT(src, japanese.CharKana)
	var kanjiPool []rune
	for _, run := range japanese.AllWordsWithCT(src, japanese.CharKanji) {
		kanjiPool = append(kanjiPool, []rune(run)...)
	}

	var out strings.Builder
	kanaIdx := 0
	for _, seg := range japanese.ParseFurigana(furi) {
		if !seg.HasKanji() {
			if kanaIdx >= len(kanaRuns) {
				continue
			}
			out.WriteString(kanaRuns[kanaIdx])
			kanaIdx++
			continue
		}

		need := len([]rune(seg.Kanji))
		if need > len(kanjiPool) {
			return "", false
		}
		replacement := string(kanjiPool[:need])
		kanjiPool = kanjiPool[need:]
		out.WriteString(japanese.Segment{Kanji: replacement, Readings: seg.Readings}.Encode())
	}
	return out.String(), true
}

// Sentence is an ordered list of parts.
type Sentence struct {
	parts []Part
}

// NewSentence builds a sentence from its parts.
func NewSentence(parts []Part) *Sentence {
	return &Sentence{parts: parts}
}

// WordCount returns the number of parts.
func (s *Sentence) WordCount() int { return len(s.parts) }

// GetAt returns the part at index.
func (s *Sentence) GetAt(index int) (*Part, bool) {
	if index < 0 || index >= len(s.parts) {
		return nil, false
	}
	return &s.parts[index], true
}

// Parts returns all parts of the sentence.
func (s *Sentence) Parts() []Part { return s.parts }

// Each calls fn with every part, allowing in-place mutation.
func (s *Sentence) Each(fn func(*Part)) {
	for i := range s.parts {
		fn(&s.parts[i])
	}
}
