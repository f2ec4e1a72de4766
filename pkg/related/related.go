// Package related indexes groups of related words (WordNet synsets) by word.
package related

import (
	"sort"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
)

// Index maps effective length -> transliterated word -> its related words, transliterated.
type Index map[int]map[string][]string

// Build indexes native groups. Every member of a group points at all the other members;
// a word that sits in several groups gets the union. Lists are sorted and free of duplicates.
func Build(groups [][]string, translate func(string) string) Index {
	acc := make(map[string]map[string]struct{})
	lengths := make(map[string]int)
	for _, g := range groups {
		forms := make([]string, len(g))
		for i, w := range g {
			forms[i] = translate(w)
			lengths[forms[i]] = alphabet.EffectiveLength(w)
		}
		for i, key := range forms {
			for j, other := range forms {
				if i == j || other == key {
					continue
				}
				if acc[key] == nil {
					acc[key] = make(map[string]struct{})
				}
				acc[key][other] = struct{}{}
			}
		}
	}

	idx := make(Index)
	for key, others := range acc {
		list := make([]string, 0, len(others))
		for w := range others {
			list = append(list, w)
		}
		sort.Strings(list)
		l := lengths[key]
		if idx[l] == nil {
			idx[l] = make(map[string][]string)
		}
		idx[l][key] = list
	}
	return idx
}

// Lengths returns the keys in ascending order.
func (idx Index) Lengths() []int {
	keys := make([]int, 0, len(idx))
	for k := range idx {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// MaxLength returns the largest key, or 0 when empty.
func (idx Index) MaxLength() int {
	longest := 0
	for k := range idx {
		longest = max(longest, k)
	}
	return longest
}
