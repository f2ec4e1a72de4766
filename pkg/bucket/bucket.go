// Package bucket partitions word sets by effective length.
//
// The key is always measured on the native word: a transliterated word is stored under the
// same key as its native form, so native and transliterated buckets line up one to one.
package bucket

import (
	"sort"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
)

// Map holds one sorted word list per effective length.
type Map map[int][]string

// Form turns a native word into the representation stored in the bucket.
type Form func(native string) string

// Native keeps the word as is.
func Native(w string) string { return w }

// Bucketize groups words by alphabet.EffectiveLength of the native word and stores form(word).
// A nil form stores the native word. Every bucket is sorted by code point, so the output does
// not depend on the input order.
func Bucketize(words []string, form Form) Map {
	if form == nil {
		form = Native
	}
	m := make(Map)
	for _, w := range words {
		key := alphabet.EffectiveLength(w)
		m[key] = append(m[key], form(w))
	}
	for _, list := range m {
		sort.Strings(list)
	}
	return m
}

// Lengths returns the keys in ascending order.
func (m Map) Lengths() []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// MaxLength returns the largest key, or 0 for an empty map.
func (m Map) MaxLength() int {
	longest := 0
	for k := range m {
		longest = max(longest, k)
	}
	return longest
}

// Count returns the number of words across all buckets.
func (m Map) Count() int {
	n := 0
	for _, list := range m {
		n += len(list)
	}
	return n
}
