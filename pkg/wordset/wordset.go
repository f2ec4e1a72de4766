// Package wordset holds the canonical per-category word sets and merges them.
package wordset

import "sort"

// Set is a set of unique native-form words.
type Set map[string]struct{}

// New returns a set holding words.
func New(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s.Add(w)
	}
	return s
}

// Add inserts word, reporting whether it was new.
func (s Set) Add(word string) bool {
	if s.Has(word) {
		return false
	}
	s[word] = struct{}{}
	return true
}

// Has reports whether word is in the set.
func (s Set) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// Len returns the number of words.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the words ordered by code point.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for w := range s {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Merge returns the union of sets. Inputs are not modified.
func Merge(sets ...Set) Set {
	n := 0
	for _, s := range sets {
		n += len(s)
	}
	out := make(Set, n)
	for _, s := range sets {
		for w := range s {
			out[w] = struct{}{}
		}
	}
	return out
}
