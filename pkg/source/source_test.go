package source

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
	"github.com/bastiangx/tashbetz/pkg/ignore"
	"github.com/bastiangx/tashbetz/pkg/wordset"
)

func TestNormalize(t *testing.T) {
	n := NewNormalizer(alphabet.Filter{}, ignore.New("זבל"), nil)
	tests := []struct {
		name   string
		in     string
		want   string
		reason SkipReason
	}{
		{"plain", "אבא", "אבא", SkipNone},
		{"niqqud", "שָׁלוֹם", "שלום", SkipNone},
		{"presentation form", "שׁלום", "שלום", SkipNone},
		{"trimmed", "\n!כלב!\r\n", "כלב", SkipNone},
		{"digraph", "ג'ירפה", "ג'ירפה", SkipNone},
		{"single letter", "א", "א", SkipShort},
		{"lone digraph", "ג'", "ג'", SkipShort},
		{"empty", "  ", "", SkipShort},
		{"latin", "abc", "abc", SkipAlphabet},
		{"bad apostrophe", "אב'", "אב'", SkipAlphabet},
		{"separator", "כלב_ים", "כלב_ים", SkipAlphabet},
		{"ignored", "זבל", "זבל", SkipIgnored},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := n.Normalize(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestNormalizeSeparatorMode(t *testing.T) {
	n := NewNormalizer(alphabet.Filter{AllowSeparator: true}, nil, nil)

	got, reason := n.Normalize("כלב_ים")
	assert.Equal(t, SkipNone, reason)
	assert.Equal(t, "כלב_ים", got)

	_, reason = n.Normalize("ג_'")
	assert.Equal(t, SkipAlphabet, reason)
}

func TestHspell(t *testing.T) {
	in := "3\nאבא/foo\nא/bar\nכלב/baz\n"

	res, err := NewHspell(ignore.New(), nil).Extract(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, wordset.New("אבא", "כלב"), res.Words)
	assert.Equal(t, 4, res.Stats.Read)
	assert.Equal(t, 2, res.Stats.Accepted)
	assert.Equal(t, 1, res.Stats.Skipped[SkipShort])
	assert.Equal(t, 1, res.Stats.Skipped[SkipMalformed])
	assert.Equal(t, 2, res.Stats.TotalSkipped())
	assert.Empty(t, res.Groups)
}

func TestHspellDuplicatesAndIgnored(t *testing.T) {
	in := "כלב/A\nכלב/B\nזבל/C\nשָׁלוֹם/D\n"

	res, err := NewHspell(ignore.New("זבל"), nil).Extract(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"כלב", "שלום"}, res.Words.Sorted())
	assert.Equal(t, 1, res.Stats.Duplicates)
	assert.Equal(t, 1, res.Stats.Skipped[SkipIgnored])
}

func TestWiktionary(t *testing.T) {
	in := strings.Join([]string{
		"page_namespace\tpage_title",
		"0\tכלב",
		"0\tחתול",
		"1\tשיחה",
		"0\tdog",
		"0",
		"14\tקטגוריה",
	}, "\n")

	res, err := NewWiktionary(nil, nil).Extract(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"חתול", "כלב"}, res.Words.Sorted())
	assert.Equal(t, 4, res.Stats.Skipped[SkipMalformed])
	assert.Equal(t, 1, res.Stats.Skipped[SkipAlphabet])
}

func TestWikipedia(t *testing.T) {
	in := "page_title\nכלב_ים\nירושלים\nBerlin\nג'_א\n"

	res, err := NewWikipedia(nil, nil).Extract(context.Background(), strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"ג'_א", "ירושלים", "כלב_ים"}, res.Words.Sorted())
	assert.Equal(t, 4, res.Stats.Read, "header is not a record")
	assert.Equal(t, 1, res.Stats.Skipped[SkipAlphabet])
}

const sampleWordNet = `<?xml version="1.0" encoding="UTF-8"?>
<wordnet>
  <synset id="1">
    <word><lemma>כֶּלֶב</lemma><undotted>כלב</undotted></word>
    <word><lemma>כַּלְבָּה</lemma><dotted_without_dots>כלבה</dotted_without_dots></word>
  </synset>
  <synset id="2">
    <word><lemma>א</lemma></word>
    <word><lemma>חתול!</lemma></word>
  </synset>
  <lemma>ג'ירפה</lemma>
</wordnet>`

func TestWordNet(t *testing.T) {
	res, err := NewWordNet(nil, nil).Extract(context.Background(), strings.NewReader(sampleWordNet))
	require.NoError(t, err)

	assert.Equal(t, []string{"ג'ירפה", "חתול", "כלב", "כלבה"}, res.Words.Sorted())
	assert.Equal(t, [][]string{{"כלב", "כלבה"}}, res.Groups, "single-word synsets are not groups")
	assert.Equal(t, 7, res.Stats.Read)
	assert.Equal(t, 2, res.Stats.Duplicates)
	assert.Equal(t, 1, res.Stats.Skipped[SkipShort])
}

func TestWordNetMalformed(t *testing.T) {
	_, err := NewWordNet(nil, nil).Extract(context.Background(), strings.NewReader("<wordnet><lemma>כלב</wordnet>"))
	assert.Error(t, err)
}

func TestExtractCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWordNet(nil, nil).Extract(ctx, strings.NewReader(sampleWordNet))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNew(t *testing.T) {
	for _, k := range Kinds() {
		e, err := New(k, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, k, e.Kind())
	}

	_, err := New("aspell", nil, nil)
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestExtractFileMissing(t *testing.T) {
	_, err := ExtractFile(context.Background(), NewHspell(nil, nil), filepath.Join(t.TempDir(), "he_IL.dic"))
	assert.Error(t, err)
}
