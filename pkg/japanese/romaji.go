package japanese

import (
	"strings"
	"unicode/utf8"
)

// Longest-match romaji syllable tables. Lookup tries three characters first
// so youon (kya, sho, ...) win over their single-kana prefixes.
var romajiSyllables = map[string]string{
	"kya": "きゃ", "kyu": "きゅ", "kyo": "きょ",
	"sha": "しゃ", "shu": "しゅ", "sho": "しょ", "shi": "し",
	"cha": "ちゃ", "chu": "ちゅ", "cho": "ちょ", "chi": "ち",
	"nya": "にゃ", "nyu": "にゅ", "nyo": "にょ",
	"hya": "ひゃ", "hyu": "ひゅ", "hyo": "ひょ",
	"mya": "みゃ", "myu": "みゅ", "myo": "みょ",
	"rya": "りゃ", "ryu": "りゅ", "ryo": "りょ",
	"gya": "ぎゃ", "gyu": "ぎゅ", "gyo": "ぎょ",
	"bya": "びゃ", "byu": "びゅ", "byo": "びょ",
	"pya": "ぴゃ", "pyu": "ぴゅ", "pyo": "ぴょ",
	"tsu": "つ", "dzu": "づ",
	"ja": "じゃ", "ju": "じゅ", "jo": "じょ", "ji": "じ",
	"fa": "ふぁ", "fi": "ふぃ", "fe": "ふぇ", "fo": "ふぉ", "fu": "ふ",
	"ka": "か", "ki": "き", "ku": "く", "ke": "け", "ko": "こ",
	"sa": "さ", "su": "す", "se": "せ", "so": "そ",
	"ta": "た", "te": "て", "to": "と",
	"na": "な", "ni": "に", "nu": "ぬ", "ne": "ね", "no": "の",
	"ha": "は", "hi": "ひ", "he": "へ", "ho": "ほ",
	"ma": "ま", "mi": "み", "mu": "む", "me": "め", "mo": "も",
	"ya": "や", "yu": "ゆ", "yo": "よ",
	"ra": "ら", "ri": "り", "ru": "る", "re": "れ", "ro": "ろ",
	"wa": "わ", "wo": "を",
	"ga": "が", "gi": "ぎ", "gu": "ぐ", "ge": "げ", "go": "ご",
	"za": "ざ", "zu": "ず", "ze": "ぜ", "zo": "ぞ",
	"da": "だ", "de": "で", "do": "ど",
	"ba": "ば", "bi": "び", "bu": "ぶ", "be": "べ", "bo": "ぼ",
	"pa": "ぱ", "pi": "ぴ", "pu": "ぷ", "pe": "ぺ", "po": "ぽ",
	"va": "ゔぁ", "vu": "ゔ",
	"a": "あ", "i": "い", "u": "う", "e": "え", "o": "お",
	"nn": "ん",
}

var kanaToRomaji = map[rune]string{
	'あ': "a", 'い': "i", 'う': "u", 'え': "e", 'お': "o",
	'か': "ka", 'き': "ki", 'く': "ku", 'け': "ke", 'こ': "ko",
	'さ': "sa", 'し': "shi", 'す': "su", 'せ': "se", 'そ': "so",
	'た': "ta", 'ち': "chi", 'つ': "tsu", 'て': "te", 'と': "to",
	'な': "na", 'に': "ni", 'ぬ': "nu", 'ね': "ne", 'の': "no",
	'は': "ha", 'ひ': "hi", 'ふ': "fu", 'へ': "he", 'ほ': "ho",
	'ま': "ma", 'み': "mi", 'む': "mu", 'め': "me", 'も': "mo",
	'や': "ya", 'ゆ': "yu", 'よ': "yo",
	'ら': "ra", 'り': "ri", 'る': "ru", 'れ': "re", 'ろ': "ro",
	'わ': "wa", 'を': "wo", 'ん': "n",
	'が': "ga", 'ぎ': "gi", 'ぐ': "gu", 'げ': "ge", 'ご': "go",
	'ざ': "za", 'じ': "ji", 'ず': "zu", 'ぜ': "ze", 'ぞ': "zo",
	'だ': "da", 'ぢ': "ji", 'づ': "zu", 'で': "de", 'ど': "do",
	'ば': "ba", 'び': "bi", 'ぶ': "bu", 'べ': "be", 'ぼ': "bo",
	'ぱ': "pa", 'ぴ': "pi", 'ぷ': "pu", 'ぺ': "pe", 'ぽ': "po",
	'ぁ': "a", 'ぃ': "i", 'ぅ': "u", 'ぇ': "e", 'ぉ': "o",
	'ー': "",
}

var youonToRomaji = map[string]string{
	"きゃ": "kya", "きゅ": "kyu", "きょ": "kyo",
	"しゃ": "sha", "しゅ": "shu", "しょ": "sho",
	"ちゃ": "cha", "ちゅ": "chu", "ちょ": "cho",
	"にゃ": "nya", "にゅ": "nyu", "にょ": "nyo",
	"ひゃ": "hya", "ひゅ": "hyu", "ひょ": "hyo",
	"みゃ": "mya", "みゅ": "myu", "みょ": "myo",
	"りゃ": "rya", "りゅ": "ryu", "りょ": "ryo",
	"ぎゃ": "gya", "ぎゅ": "gyu", "ぎょ": "gyo",
	"じゃ": "ja", "じゅ": "ju", "じょ": "jo",
	"びゃ": "bya", "びゅ": "byu", "びょ": "byo",
	"ぴゃ": "pya", "ぴゅ": "pyu", "ぴょ": "pyo",
}

// KatakanaToHiragana shifts katakana code points into the hiragana block.
func KatakanaToHiragana(s string) string {
	return shift(s, 0x30A1, 0x30F6, -0x60)
}

// HiraganaToKatakana shifts hiragana code points into the katakana block.
func HiraganaToKatakana(s string) string {
	return shift(s, 0x3041, 0x3096, 0x60)
}

func isVowel(c byte) bool {
	return c == 'a' || c == 'i' || c == 'u' || c == 'e' || c == 'o'
}

func isRomajiConsonant(c byte) bool {
	return c >= 'a' && c <= 'z' && !isVowel(c)
}

// ToHiragana converts romanized input to hiragana. Characters that cannot be
// consumed as romaji syllables pass through unchanged; katakana is folded
// into hiragana so mixed IME input normalizes to a single script.
func ToHiragana(s string) string {
	src := strings.ToLower(ToHalfwidth(s))
	src = KatakanaToHiragana(src)

	var out strings.Builder
	i := 0
	for i < len(src) {
		c := src[i]
		if c >= 0x80 {
			// Multibyte, already kana or other non-ASCII. Copy the rune.
			r, size := utf8.DecodeRuneInString(src[i:])
			out.WriteRune(r)
			i += size
			continue
		}

		// Geminated consonant: "tte" -> って
		if i+1 < len(src) && c == src[i+1] && isRomajiConsonant(c) && c != 'n' {
			out.WriteRune('っ')
			i++
			continue
		}

		// Syllabic n before a consonant or at the end: "kanji" -> かんじ
		if c == 'n' && (i+1 >= len(src) || (src[i+1] != 'y' && !isVowel(src[i+1]) && src[i+1] != 'n')) {
			out.WriteRune('ん')
			i++
			continue
		}

		matched := false
		for l := 3; l >= 1; l-- {
			if i+l > len(src) {
				continue
			}
			if kana, ok := romajiSyllables[src[i:i+l]]; ok {
				out.WriteString(kana)
				i += l
				matched = true
				break
			}
		}
		if !matched {
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// ToKatakana converts romanized input to katakana.
func ToKatakana(s string) string {
	return HiraganaToKatakana(ToHiragana(s))
}

// ToRomaji converts kana input to romaji. Kanji and other characters pass
// through unchanged.
func ToRomaji(s string) string {
	hira := KatakanaToHiragana(s)
	runes := []rune(hira)

	var out strings.Builder
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if i+1 < len(runes) {
			if ro, ok := youonToRomaji[string(runes[i:i+2])]; ok {
				out.WriteString(ro)
				i++
				continue
			}
		}

		if r == 'っ' {
			// Double the next consonant.
			if i+1 < len(runes) {
				next := kanaToRomaji[runes[i+1]]
				if next != "" {
					out.WriteByte(next[0])
				}
			}
			continue
		}

		if ro, ok := kanaToRomaji[r]; ok {
			out.WriteString(ro)
			continue
		}
		out.WriteRune(r)
	}
	return out.String()
}

// FormatRomajiNN doubles a dangling syllabic n so a following kana conversion
// yields ん instead of dropping it ("shimasen" -> "shimasenn").
func FormatRomajiNN(s string) string {
	if strings.HasSuffix(s, "n") && !strings.HasSuffix(s, "nn") {
		return s + "n"
	}
	return s
}

// CouldBeRomaji reports whether the whole input is consumable as romanized
// Japanese. Spaces and hyphens are ignored.
func CouldBeRomaji(s string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\'' {
			return -1
		}
		return r
	}, strings.ToLower(s))
	if cleaned == "" {
		return false
	}
	for _, r := range cleaned {
		if r > 'z' || r < 'a' {
			return false
		}
	}
	converted := ToHiragana(FormatRomajiNN(cleaned))
	for _, r := range converted {
		if r < 0x80 {
			return false
		}
	}
	return true
}

// RomajiPrefix reports whether romaji is a prefix of the romanization of hira.
func RomajiPrefix(romaji, hira string) bool {
	return strings.HasPrefix(strings.ToLower(ToRomaji(hira)), strings.ToLower(romaji))
}
