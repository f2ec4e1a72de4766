package alphabet

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestFilterIsValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain word", "כלב", true},
		{"final form", "שלום", true},
		{"gimel digraph", "ג'ירפה", true},
		{"zayin digraph", "ז'קט", true},
		{"tsadi digraph", "צ'יפס", true},
		{"final tsadi digraph", "ץ'", true},
		{"tav digraph at end", "תת'", true},
		{"empty", "", false},
		{"leading apostrophe", "'אבא", false},
		{"apostrophe after alef", "א'בא", false},
		{"double apostrophe", "ג''", false},
		{"latin letters", "abc", false},
		{"mixed latin", "כלבx", false},
		{"digit", "כלב1", false},
		{"space", "כלב גדול", false},
		{"hyphen", "כלב-ים", false},
		{"niqqud left in", "שָׁלוֹם", false},
		{"separator without mode", "כלב_ים", false},
		{"geresh sign is not an apostrophe", "ג׳ירפה", false},
	}
	f := Filter{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.IsValid(tt.in))
		})
	}
}

func TestFilterAllowSeparator(t *testing.T) {
	f := Filter{AllowSeparator: true}

	assert.True(t, f.IsValid("כלב_ים"))
	assert.True(t, f.IsValid("ג'ק_לונדון"))
	assert.False(t, f.IsValid("כלב_'ים"), "separator must not license an apostrophe")
	assert.False(t, f.IsValid("כלב ים"))
	assert.False(t, f.IsValid("'_כלב"))
}

// Every accepted word is made of script letters and apostrophes that follow a digraph base.
func TestFilterAcceptedWordsProperty(t *testing.T) {
	candidates := []string{
		"אבא", "'א", "ג'", "ט'", "צ'צ'", "ת'ת", "אב'", "ז'ז'ז'", "ץ'ץ", "abc'", "ש'",
	}
	f := Filter{}
	for _, w := range candidates {
		if !f.IsValid(w) {
			continue
		}
		first, _ := utf8.DecodeRuneInString(w)
		assert.NotEqual(t, Apostrophe, first, w)

		var prev rune
		for _, r := range w {
			if r == Apostrophe {
				assert.True(t, IsDigraphBase(prev), "%q: apostrophe after %q", w, prev)
			} else {
				assert.True(t, IsLetter(r), "%q: %q is not a letter", w, r)
			}
			prev = r
		}
	}
}

func TestEffectiveLength(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"אבא", 3},
		{"ג'ירפה", 5},
		{"צ'ז'ת'", 3},
		{"כלב_ים", 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EffectiveLength(tt.in), tt.in)
	}

	// n characters with k apostrophes bucket under n-k.
	w := "ג'ירפ"
	assert.Equal(t, 5, utf8.RuneCountInString(w))
	assert.Equal(t, 1, CountApostrophes(w))
	assert.Equal(t, 4, EffectiveLength(w))
}
