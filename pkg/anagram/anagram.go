/*
Package anagram builds the anagram index of transliterated words.

A signature is the sorted letter histogram of a word after final forms are collapsed to their
base form, written as token+count pairs:

	Signature("aba")  == "a2b1",   weight 3
	Signature("mlC")  == "c1l1m1", weight 3 (מלך)
	Signature("cml")  == "c1l1m1", weight 3 (כמל)

Two words share a signature exactly when they are permutations of each other over the collapsed
alphabet. Non-letter tokens such as the phrase separator are ignored.

Groups are partitioned by signature weight (number of letters counted), which is not the same as
the effective length used for word list buckets: "clb_yM" sits in bucket 6 but has weight 5.
*/
package anagram

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/bastiangx/tashbetz/pkg/bucket"
	"github.com/bastiangx/tashbetz/pkg/translit"
)

// Encoder computes signatures using the final-form table of a transliteration table.
type Encoder struct {
	table *translit.Table
}

// NewEncoder returns an encoder over table. A nil table uses translit.Default.
func NewEncoder(table *translit.Table) *Encoder {
	if table == nil {
		table = translit.Default
	}
	return &Encoder{table: table}
}

// Signature returns the canonical anagram key of a transliterated word and its weight.
func (e *Encoder) Signature(translated string) (string, int) {
	counts := make(map[string]int, len(translated))
	for _, r := range translated {
		if !unicode.IsLetter(r) {
			continue
		}
		counts[e.table.Collapse(string(r))]++
	}

	tokens := make([]string, 0, len(counts))
	for tok := range counts {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)

	var b strings.Builder
	weight := 0
	for _, tok := range tokens {
		n := counts[tok]
		b.WriteString(tok)
		b.WriteString(strconv.Itoa(n))
		weight += n
	}
	return b.String(), weight
}

// Groups maps weight -> signature -> words.
type Groups map[int]map[string][]string

// Group indexes transliterated buckets. Buckets are visited by ascending length and each bucket in
// its sorted order, so the word order of every signature is deterministic.
func (e *Encoder) Group(translated bucket.Map) Groups {
	g := make(Groups)
	for _, length := range translated.Lengths() {
		for _, w := range translated[length] {
			key, weight := e.Signature(w)
			if weight == 0 {
				continue
			}
			part, ok := g[weight]
			if !ok {
				part = make(map[string][]string)
				g[weight] = part
			}
			part[key] = append(part[key], w)
		}
	}
	return g
}

// Weights returns the partition keys in ascending order.
func (g Groups) Weights() []int {
	keys := make([]int, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// MaxWeight returns the largest weight, or 0 when empty.
func (g Groups) MaxWeight() int {
	heaviest := 0
	for k := range g {
		heaviest = max(heaviest, k)
	}
	return heaviest
}
