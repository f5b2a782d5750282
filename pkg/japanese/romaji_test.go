package japanese

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHiragana(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"taberu", "たべる"},
		{"kanji", "かんじ"},
		{"kyou", "きょう"},
		{"gakkou", "がっこう"},
		{"shimasenn", "しません"},
		{"konnnichiha", "こんにちは"},
		{"ramen", "らめん"},
		{"カタカナ", "かたかな"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToHiragana(c.in), "ToHiragana(%q)", c.in)
	}
}

func TestToKatakana(t *testing.T) {
	assert.Equal(t, "タベル", ToKatakana("taberu"))
	assert.Equal(t, "カタカナ", ToKatakana("かたかな"))
}

func TestToRomaji(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"たべる", "taberu"},
		{"きょう", "kyou"},
		{"がっこう", "gakkou"},
		{"カタカナ", "katakana"},
		{"しません", "shimasen"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ToRomaji(c.in), "ToRomaji(%q)", c.in)
	}
}

func TestFormatRomajiNN(t *testing.T) {
	assert.Equal(t, "shimasenn", FormatRomajiNN("shimasen"))
	assert.Equal(t, "shimasenn", FormatRomajiNN("shimasenn"))
	assert.Equal(t, "taberu", FormatRomajiNN("taberu"))
}

func TestCouldBeRomaji(t *testing.T) {
	assert.True(t, CouldBeRomaji("taberu"))
	assert.True(t, CouldBeRomaji("kyou"))
	assert.True(t, CouldBeRomaji("onngaku"))
	assert.False(t, CouldBeRomaji("たべる"))
	assert.False(t, CouldBeRomaji("xzqw"))
	assert.False(t, CouldBeRomaji(""))
}

func TestKanaShifts(t *testing.T) {
	assert.Equal(t, "かたかな", KatakanaToHiragana("カタカナ"))
	assert.Equal(t, "カタカナ", HiraganaToKatakana("かたかな"))
	// Kanji untouched.
	assert.Equal(t, "漢字", KatakanaToHiragana("漢字"))
}
