package japanese

import "testing"

func TestStrIsKanji(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"音", true},
		{"あ", false},
		{"、", false},
		{"漢字", true},
		{"", false},
	}
	for _, c := range cases {
		if got := StrIsKanji(c.in); got != c.want {
			t.Errorf("StrIsKanji(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestStrIsSymbol(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"、", true},
		{"音", false},
		{"あ", false},
	}
	for _, c := range cases {
		if got := StrIsSymbol(c.in); got != c.want {
			t.Errorf("StrIsSymbol(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestTextParts(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"これは漢字で書いたテキストです", []string{"これは", "漢字", "で", "書", "いたテキストです"}},
		{"このテキストはかなだけでかいた", []string{"このテキストはかなだけでかいた"}},
	}
	for _, c := range cases {
		got := TextParts(c.in)
		if len(got) != len(c.want) {
			t.Fatalf("TextParts(%q) = %v, want %v", c.in, got, c.want)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("TextParts(%q)[%d] = %q, want %q", c.in, i, got[i], c.want[i])
			}
		}
	}
}

func TestWidthFolding(t *testing.T) {
	if got := ToFullwidth("1234"); got != "１２３４" {
		t.Errorf("ToFullwidth(1234) = %q", got)
	}
	if got := ToHalfwidth("１２３４"); got != "1234" {
		t.Errorf("ToHalfwidth = %q", got)
	}
	if got := ToHalfwidth("５日"); got != "5日" {
		t.Errorf("ToHalfwidth with kanji = %q", got)
	}

	// Round trips on the covered ranges.
	ascii := "Hello, World! 42"
	if got := ToHalfwidth(ToFullwidth(ascii)); got != ascii {
		t.Errorf("halfwidth(fullwidth(%q)) = %q", ascii, got)
	}
	wide := "ＡＢＣ１２３"
	if got := ToFullwidth(ToHalfwidth(wide)); got != wide {
		t.Errorf("fullwidth(halfwidth(%q)) = %q", wide, got)
	}
}

func TestAllWordsWithCT(t *testing.T) {
	kana := AllWordsWithCT("行った", CharKana)
	if len(kana) != 1 || kana[0] != "った" {
		t.Errorf("kana runs of 行った = %v", kana)
	}
	kanji := AllWordsWithCT("書き込み", CharKanji)
	if len(kanji) != 2 || kanji[0] != "書" || kanji[1] != "込" {
		t.Errorf("kanji runs of 書き込み = %v", kanji)
	}
}

func TestGetTextType(t *testing.T) {
	if GetTextType("漢字") != CharKanji {
		t.Error("漢字 should classify as kanji")
	}
	if GetTextType("かな") != CharKana {
		t.Error("かな should classify as kana")
	}
	if GetTextType("kanji") != CharOther {
		t.Error("ascii should classify as other")
	}
	// Symbols group with kanji on string level only.
	if GetTextType("、") != CharKanji {
		t.Error("、 string should group with kanji")
	}
	if CharTypeOf('、') != CharSymbol {
		t.Error("、 rune should stay a symbol")
	}
}

func TestPredicates(t *testing.T) {
	if !IsParticle('の') || IsParticle('あ') {
		t.Error("particle classification broken")
	}
	if KanjiCount("漢字とかな") != 2 {
		t.Error("KanjiCount broken")
	}
	if !StrIsJapanese("漢字とかな") {
		t.Error("StrIsJapanese broken")
	}
	if StrIsJapanese("漢字abc") {
		t.Error("ascii should not be japanese")
	}
	if !HasJapanese("abc字") {
		t.Error("HasJapanese broken")
	}
}
