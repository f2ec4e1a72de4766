package translit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"אבא", "aba"},
		{"כלב", "clb"},
		{"שלום", "SlvM"},
		{"ג'ירפה", "jyrph"},
		{"ז'קט", "ZkT"},
		{"צ'יפס", "Wyps"},
		{"תת'", "tq"},
		{"ץ'", "X"},
		{"כלב_ים", "clb_yM"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Default.Translate(tt.in))
		})
	}
}

func TestTranslateApostropheAfterNonDigraph(t *testing.T) {
	// Not a valid word, but the scan must not swallow the apostrophe.
	assert.Equal(t, "a'", Default.Translate("א'"))
}

func TestTableIsTotal(t *testing.T) {
	m := Default.Mapping()
	assert.Len(t, m, 32, "22 base letters, 5 final forms and 5 digraphs")

	for r := 'א'; r <= 'ת'; r++ {
		_, ok := m[string(r)]
		assert.True(t, ok, "no token for %q", r)
	}
	for _, d := range []string{"ג'", "ז'", "צ'", "ץ'", "ת'"} {
		_, ok := m[d]
		assert.True(t, ok, "no token for digraph %q", d)
	}
}

// Distinct valid words without final letters never share a transliteration.
func TestTranslateInjective(t *testing.T) {
	words := []string{
		"אב", "בא", "גג", "ג'ג", "גג'", "ג'ג'", "זז'", "ז'ז", "צצ'", "צ'צ", "תת'", "ת'ת",
		"אבגד", "אבג'ד", "כלב", "כלבה", "כללב", "ששש", "סס", "טט",
	}
	seen := make(map[string]string, len(words))
	for _, w := range words {
		tr := Default.Translate(w)
		if prev, ok := seen[tr]; ok {
			t.Fatalf("%q and %q both translate to %q", prev, w, tr)
		}
		seen[tr] = w
		assert.Equal(t, w, Default.Reverse(tr), "reverse of %q", tr)
	}
}

func TestCollapse(t *testing.T) {
	assert.Equal(t, "c", Default.Collapse("C"))
	assert.Equal(t, "m", Default.Collapse("M"))
	assert.Equal(t, "n", Default.Collapse("N"))
	assert.Equal(t, "p", Default.Collapse("P"))
	assert.Equal(t, "w", Default.Collapse("x"))
	assert.Equal(t, "X", Default.Collapse("X"), "the final tsadi digraph has no collapse entry")
	assert.Equal(t, "a", Default.Collapse("a"))
	assert.Equal(t, "_", Default.Collapse("_"))
}

func TestCopiesAreIndependent(t *testing.T) {
	m := Default.Mapping()
	m["א"] = "zzz"
	assert.Equal(t, "a", Default.Mapping()["א"])

	f := Default.FinalForms()
	delete(f, "C")
	assert.Equal(t, "c", Default.FinalForms()["C"])
}

func TestNewRejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		mapping map[string]string
		finals  map[string]string
	}{
		{"duplicate token", map[string]string{"א": "a", "ב": "a"}, nil},
		{"empty token", map[string]string{"א": ""}, nil},
		{"long key", map[string]string{"אב": "a"}, nil},
		{"unknown final", map[string]string{"א": "a"}, map[string]string{"Q": "a"}},
		{"unknown base", map[string]string{"ך": "C"}, map[string]string{"C": "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.mapping, tt.finals)
			require.Error(t, err)
			var te *TableError
			assert.ErrorAs(t, err, &te)
		})
	}
}
