package japanese

import "strings"

// Segment is one element of an encoded furigana string. A segment without a
// kanji part is a plain kana run. Multi-kanji compounds may carry one reading
// per kanji ([音楽|おん|がく]) or a single undivided reading ([音楽|おんがく]).
type Segment struct {
	Kanji    string
	Readings []string
}

// HasKanji reports whether the segment annotates kanji.
func (s Segment) HasKanji() bool { return s.Kanji != "" }

// Kana returns the reading of the segment. For plain segments this is the
// run itself.
func (s Segment) Kana() string {
	return strings.Join(s.Readings, "")
}

// Encode renders the segment back into its on-wire form.
func (s Segment) Encode() string {
	if !s.HasKanji() {
		return s.Kana()
	}
	return "[" + s.Kanji + "|" + strings.Join(s.Readings, "|") + "]"
}

// PlainSegment returns a segment holding an unannotated kana run.
func PlainSegment(kana string) Segment {
	return Segment{Readings: []string{kana}}
}

// KanjiSegment returns a segment annotating kanji with its reading.
func KanjiSegment(kanji, kana string) Segment {
	return Segment{Kanji: kanji, Readings: []string{kana}}
}

// ParseFurigana decodes a bracket-encoded furigana string into its segments.
// Malformed brackets are treated as plain text.
func ParseFurigana(furi string) []Segment {
	var out []Segment
	rest := furi
	for rest != "" {
		open := strings.IndexByte(rest, '[')
		if open == -1 {
			out = append(out, PlainSegment(rest))
			break
		}
		if open > 0 {
			out = append(out, PlainSegment(rest[:open]))
		}
		rest = rest[open+1:]
		close := strings.IndexByte(rest, ']')
		if close == -1 {
			out = append(out, PlainSegment(rest))
			break
		}
		body := rest[:close]
		rest = rest[close+1:]

		parts := strings.Split(body, "|")
		if len(parts) < 2 {
			// No reading. Keep the text so nothing is lost.
			out = append(out, PlainSegment(body))
			continue
		}
		out = append(out, Segment{Kanji: parts[0], Readings: parts[1:]})
	}
	return out
}

// EncodeFurigana renders segments into the bracket on-wire form.
func EncodeFurigana(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Encode())
	}
	return b.String()
}

// FuriganaSurface reconstructs the written surface of an encoded furigana
// string.
func FuriganaSurface(furi string) string {
	var b strings.Builder
	for _, s := range ParseFurigana(furi) {
		if s.HasKanji() {
			b.WriteString(s.Kanji)
		} else {
			b.WriteString(s.Kana())
		}
	}
	return b.String()
}

// FuriganaReading reconstructs the full kana reading of an encoded furigana
// string.
func FuriganaReading(furi string) string {
	var b strings.Builder
	for _, s := range ParseFurigana(furi) {
		b.WriteString(s.Kana())
	}
	return b.String()
}

// CoversSurface reports whether furi decodes back to surface with every kanji
// annotated. Incomplete annotations must not be emitted to clients.
func CoversSurface(furi, surface string) bool {
	if FuriganaSurface(furi) != surface {
		return false
	}
	for _, s := range ParseFurigana(furi) {
		if !s.HasKanji() && HasKanji(s.Kana()) {
			return false
		}
	}
	return true
}

// HasReading reports whether the kanji literal is annotated with the given
// reading anywhere inside furi, checking compound boundaries where a direct
// mapping exists.
func HasReading(furi string, literal rune, reading string) bool {
	for _, seg := range ParseFurigana(furi) {
		if !seg.HasKanji() || !strings.ContainsRune(seg.Kanji, literal) {
			continue
		}
		if matchReading(seg.Kanji, seg.Kana(), literal, reading) {
			return true
		}
	}
	return false
}

// matchReading checks whether literal carries reading within a compound and
// its undivided kana mapping.
func matchReading(comp, compReading string, literal rune, reading string) bool {
	if comp == string(literal) {
		return compReading == reading
	}

	compLen := len([]rune(comp))
	readingLen := len([]rune(reading))
	compReadingLen := len([]rune(compReading))
	if compLen-1 > compReadingLen-readingLen {
		// The other kanji of the compound need at least one syllable each.
		return false
	}

	if strings.HasSuffix(comp, string(literal)) {
		return strings.HasSuffix(compReading, reading)
	}
	if strings.HasPrefix(comp, string(literal)) {
		return strings.HasPrefix(compReading, reading)
	}
	return false
}

// ReadingRetrieve yields the known readings of a kanji literal. The kanji
// store implements it.
type ReadingRetrieve interface {
	Onyomi(literal rune) []string
	Kunyomi(literal rune) []string
}

// GenerateFurigana aligns a written surface with its kana reading using the
// per-kanji readings from retrieve. Kanji runs are matched greedily, longest
// reading first. Returns "" when no full alignment exists.
func GenerateFurigana(surface, kana string, retrieve ReadingRetrieve) string {
	kana = KatakanaToHiragana(kana)
	surfRunes := []rune(surface)
	kanaRunes := []rune(kana)

	var segs []Segment
	ki := 0
	for si := 0; si < len(surfRunes); {
		r := surfRunes[si]
		if !IsKanji(r) {
			// Kana and symbols must match the reading verbatim.
			if ki >= len(kanaRunes) || KatakanaToHiragana(string(r)) != KatakanaToHiragana(string(kanaRunes[ki])) {
				return ""
			}
			segs = append(segs, PlainSegment(string(r)))
			si++
			ki++
			continue
		}

		candidates := readingVariants(r, retrieve)
		best := bestGreedyMatch(kanaRunes[ki:], candidates, si > 0)
		if best == "" {
			// Last kanji may absorb the remaining reading when the tail has
			// no more kana anchors.
			if si == len(surfRunes)-1 && ki < len(kanaRunes) {
				best = string(kanaRunes[ki:])
			} else {
				return ""
			}
		}
		segs = append(segs, KanjiSegment(string(r), best))
		si++
		ki += len([]rune(best))
	}
	if ki != len(kanaRunes) {
		return ""
	}
	return mergePlainSegments(segs)
}

func readingVariants(literal rune, retrieve ReadingRetrieve) []string {
	var out []string
	add := func(reading string) {
		reading = KatakanaToHiragana(reading)
		if idx := strings.IndexByte(reading, '.'); idx >= 0 {
			// Okurigana marker: only the stem belongs to the kanji.
			out = append(out, strings.TrimPrefix(reading[:idx], "-"))
			return
		}
		out = append(out, strings.TrimPrefix(reading, "-"))
	}
	for _, r := range retrieve.Kunyomi(literal) {
		add(r)
	}
	for _, r := range retrieve.Onyomi(literal) {
		add(r)
	}
	return out
}

// bestGreedyMatch picks the longest candidate reading that prefixes rest,
// allowing rendaku voicing of the first syllable for non-initial kanji.
func bestGreedyMatch(rest []rune, candidates []string, allowRendaku bool) string {
	best := ""
	for _, cand := range candidates {
		variants := []string{cand}
		if allowRendaku {
			if v := rendaku(cand); v != "" {
				variants = append(variants, v)
			}
		}
		for _, v := range variants {
			vr := []rune(v)
			if len(vr) == 0 || len(vr) > len(rest) {
				continue
			}
			if string(rest[:len(vr)]) == v && len(vr) > len([]rune(best)) {
				best = string(rest[:len(vr)])
			}
		}
	}
	return best
}

var rendakuPairs = map[rune]rune{
	'か': 'が', 'き': 'ぎ', 'く': 'ぐ', 'け': 'げ', 'こ': 'ご',
	'さ': 'ざ', 'し': 'じ', 'す': 'ず', 'せ': 'ぜ', 'そ': 'ぞ',
	'た': 'だ', 'ち': 'ぢ', 'つ': 'づ', 'て': 'で', 'と': 'ど',
	'は': 'ば', 'ひ': 'び', 'ふ': 'ぶ', 'へ': 'べ', 'ほ': 'ぼ',
}

func rendaku(reading string) string {
	runes := []rune(reading)
	if len(runes) == 0 {
		return ""
	}
	voiced, ok := rendakuPairs[runes[0]]
	if !ok {
		return ""
	}
	runes[0] = voiced
	return string(runes)
}

func mergePlainSegments(segs []Segment) string {
	var merged []Segment
	for _, s := range segs {
		if !s.HasKanji() && len(merged) > 0 && !merged[len(merged)-1].HasKanji() {
			merged[len(merged)-1] = PlainSegment(merged[len(merged)-1].Kana() + s.Kana())
			continue
		}
		merged = append(merged, s)
	}
	return EncodeFurigana(merged)
}
