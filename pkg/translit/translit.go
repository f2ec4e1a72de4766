/*
Package translit maps native Hebrew words to the Latin working alphabet used by the solver.

Every letter and every digraph (letter followed by an apostrophe) maps to exactly one ASCII
token, so a transliterated word has one character per effective letter:

	Translate("ג'ירפה") == "jyrph"

Final letter forms keep their own tokens (ך -> C, ם -> M, ...). FinalForms collapses those tokens
back to the base-form token when an alphabet without final forms is needed, e.g. for anagrams.

Tables are immutable; Mapping and FinalForms return copies for publishing in the manifest.
*/
package translit

import (
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
)

var defaultMapping = map[string]string{
	"א": "a", "ב": "b", "ג": "g", "ג'": "j", "ד": "d", "ה": "h",
	"ו": "v", "ז": "z", "ז'": "Z", "ח": "H", "ט": "T", "י": "y",
	"כ": "c", "ך": "C", "ל": "l", "מ": "m", "ם": "M", "נ": "n",
	"ן": "N", "ס": "s", "ע": "e", "פ": "p", "ף": "P", "צ": "w",
	"צ'": "W", "ץ": "x", "ץ'": "X", "ק": "k", "ר": "r", "ש": "S",
	"ת": "t", "ת'": "q",
}

var defaultFinals = map[string]string{
	"C": "c", "M": "m", "N": "n", "P": "p", "x": "w",
}

// Default is the table used for every published word list.
var Default = MustNew(defaultMapping, defaultFinals)

// Table is an immutable transliteration table.
type Table struct {
	single  map[rune]string
	digraph map[rune]string // keyed by the base letter
	reverse map[string]string
	finals  map[string]string
	mapping map[string]string
}

// New validates and builds a table. Keys are a single letter or a letter followed by an
// apostrophe; tokens must be unique; every finals key and value must be a token.
func New(mapping, finals map[string]string) (*Table, error) {
	t := &Table{
		single:  make(map[rune]string, len(mapping)),
		digraph: make(map[rune]string),
		reverse: make(map[string]string, len(mapping)),
		finals:  make(map[string]string, len(finals)),
		mapping: make(map[string]string, len(mapping)),
	}
	for key, token := range mapping {
		if token == "" {
			return nil, &TableError{Key: key, Reason: "empty token"}
		}
		if prev, dup := t.reverse[token]; dup {
			return nil, &TableError{Key: key, Reason: "token " + token + " already used by " + prev}
		}
		r, size := utf8.DecodeRuneInString(key)
		switch rest := key[size:]; {
		case r == utf8.RuneError || key == "":
			return nil, &TableError{Key: key, Reason: "invalid key"}
		case rest == "":
			t.single[r] = token
		case rest == string(alphabet.Apostrophe):
			t.digraph[r] = token
		default:
			return nil, &TableError{Key: key, Reason: "key is neither a letter nor a digraph"}
		}
		t.reverse[token] = key
		t.mapping[key] = token
	}
	for from, to := range finals {
		if _, ok := t.reverse[from]; !ok {
			return nil, &TableError{Key: from, Reason: "final form is not a token"}
		}
		if _, ok := t.reverse[to]; !ok {
			return nil, &TableError{Key: to, Reason: "base form is not a token"}
		}
		t.finals[from] = to
	}
	return t, nil
}

// MustNew is like New but panics on an invalid table. Use it for package level tables.
func MustNew(mapping, finals map[string]string) *Table {
	t, err := New(mapping, finals)
	if err != nil {
		panic(err)
	}
	return t
}

// TableError describes an invalid table entry.
type TableError struct {
	Key    string
	Reason string
}

func (e *TableError) Error() string {
	return "translit: " + e.Key + ": " + e.Reason
}

// Translate scans word left to right. A letter followed by an apostrophe is looked up as a
// digraph first; otherwise the letter alone is used. Runes without an entry (the phrase
// separator) are copied unchanged.
func (t *Table) Translate(word string) string {
	var b strings.Builder
	b.Grow(len(word))
	for i := 0; i < len(word); {
		r, size := utf8.DecodeRuneInString(word[i:])
		if tok, ok := t.digraph[r]; ok && strings.HasPrefix(word[i+size:], string(alphabet.Apostrophe)) {
			b.WriteString(tok)
			i += size + 1
			continue
		}
		if tok, ok := t.single[r]; ok {
			b.WriteString(tok)
		} else {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}

// Reverse maps a transliterated word back to native script. Tokens without an entry are
// copied unchanged. Tokens are single characters in the default table.
func (t *Table) Reverse(translated string) string {
	var b strings.Builder
	for _, r := range translated {
		if native, ok := t.reverse[string(r)]; ok {
			b.WriteString(native)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Collapse replaces a final-form token with its base-form token. Other tokens are returned as is.
func (t *Table) Collapse(token string) string {
	if base, ok := t.finals[token]; ok {
		return base
	}
	return token
}

// Mapping returns a copy of the native -> token table.
func (t *Table) Mapping() map[string]string {
	out := make(map[string]string, len(t.mapping))
	for k, v := range t.mapping {
		out[k] = v
	}
	return out
}

// FinalForms returns a copy of the final token -> base token table.
func (t *Table) FinalForms() map[string]string {
	out := make(map[string]string, len(t.finals))
	for k, v := range t.finals {
		out[k] = v
	}
	return out
}
