package bucket

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bastiangx/tashbetz/pkg/translit"
)

func TestBucketizeNative(t *testing.T) {
	m := Bucketize([]string{"כלב", "אבא", "ג'ירפה", "שלום"}, nil)

	assert.Equal(t, []int{3, 4, 5}, m.Lengths())
	assert.Equal(t, []string{"אבא", "כלב"}, m[3])
	assert.Equal(t, []string{"שלום"}, m[4])
	assert.Equal(t, []string{"ג'ירפה"}, m[5])
	assert.Equal(t, 5, m.MaxLength())
	assert.Equal(t, 4, m.Count())
}

// The transliterated form is keyed by the native effective length, never re-measured.
func TestBucketizeTranslatedKeyedByNative(t *testing.T) {
	words := []string{"ג'ירפ", "אבא", "צ'ז'ת'"}

	native := Bucketize(words, Native)
	translated := Bucketize(words, translit.Default.Translate)

	assert.Equal(t, native.Lengths(), translated.Lengths())
	assert.Equal(t, []string{"jyrp"}, translated[4], "5 characters with one apostrophe go under 4")
	assert.Equal(t, []string{"WZq", "aba"}, translated[3])
	for _, l := range native.Lengths() {
		assert.Len(t, translated[l], len(native[l]))
	}
}

func TestBucketizeIdempotent(t *testing.T) {
	words := []string{"כלב", "אבא", "חתול", "בית", "ג'ק", "ספר"}
	reversed := make([]string, len(words))
	for i, w := range words {
		reversed[len(words)-1-i] = w
	}

	first := Bucketize(words, nil)
	second := Bucketize(words, nil)
	third := Bucketize(reversed, nil)

	assert.Equal(t, first, second)
	assert.Equal(t, first, third, "input order must not matter")
}

func TestBucketizeEmpty(t *testing.T) {
	m := Bucketize(nil, nil)
	assert.Empty(t, m)
	assert.Empty(t, m.Lengths())
	assert.Zero(t, m.MaxLength())
}
