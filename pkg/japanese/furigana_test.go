package japanese

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFurigana(t *testing.T) {
	segs := ParseFurigana("[音|おと]が[鳴|な]る")
	require.Len(t, segs, 4)
	assert.Equal(t, "音", segs[0].Kanji)
	assert.Equal(t, "おと", segs[0].Kana())
	assert.Equal(t, "が", segs[1].Kana())
	assert.False(t, segs[1].HasKanji())
	assert.Equal(t, "鳴", segs[2].Kanji)
	assert.Equal(t, "る", segs[3].Kana())
}

func TestParseFuriganaCompound(t *testing.T) {
	segs := ParseFurigana("[音楽|おん|がく]")
	require.Len(t, segs, 1)
	assert.Equal(t, "音楽", segs[0].Kanji)
	assert.Equal(t, []string{"おん", "がく"}, segs[0].Readings)
	assert.Equal(t, "おんがく", segs[0].Kana())
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, furi := range []string{
		"[音|おと]が[鳴|な]る",
		"[音楽|おん|がく]",
		"かなだけ",
		"[食|た]べた",
	} {
		assert.Equal(t, furi, EncodeFurigana(ParseFurigana(furi)))
	}
}

func TestFuriganaSurfaceReading(t *testing.T) {
	furi := "[食|た]べ[物|もの]"
	assert.Equal(t, "食べ物", FuriganaSurface(furi))
	assert.Equal(t, "たべもの", FuriganaReading(furi))
}

func TestCoversSurface(t *testing.T) {
	assert.True(t, CoversSurface("[食|た]べる", "食べる"))
	assert.False(t, CoversSurface("[食|た]べる", "食べた"))
	// A kanji left unannotated does not count as coverage.
	assert.False(t, CoversSurface("食べる", "食べる"))
}

func TestHasReading(t *testing.T) {
	assert.True(t, HasReading("[音|おと]", '音', "おと"))
	assert.False(t, HasReading("[音|おと]", '音', "おん"))
	// Compound boundaries.
	assert.True(t, HasReading("[音楽|おんがく]", '音', "おん"))
	assert.True(t, HasReading("[音楽|おんがく]", '楽', "がく"))
	assert.False(t, HasReading("[音楽|おんがく]", '楽', "たの"))
}

type fakeReadings map[rune][]string

func (f fakeReadings) Onyomi(literal rune) []string  { return f[literal] }
func (f fakeReadings) Kunyomi(literal rune) []string { return nil }

func TestGenerateFurigana(t *testing.T) {
	readings := fakeReadings{
		'音': {"オン", "おと"},
		'楽': {"ガク", "たの.しい"},
	}
	furi := GenerateFurigana("音楽", "おんがく", readings)
	assert.Equal(t, "[音|おん][楽|がく]", furi)

	furi = GenerateFurigana("音が", "おとが", readings)
	assert.Equal(t, "[音|おと]が", furi)

	// No alignment possible.
	assert.Equal(t, "", GenerateFurigana("音楽", "まったくちがう", readings))
}
