/*
Package alphabet validates words against the Hebrew script used by the word lists.

A valid word contains only the letters Alef..Tav (U+05D0..U+05EA, final forms included)
and apostrophes. An apostrophe is only allowed directly after one of the letters that form
a digraph with it (Gimel, Zayin, Tsadi, final Tsadi and Tav), e.g. "ג'ירפה".

Multi-word titles may additionally contain the separator '_' when the filter is created
with AllowSeparator. The separator does not relax the apostrophe rule: "ג_'" is invalid.
*/
package alphabet

import (
	"strings"
	"unicode/utf8"
)

const (
	// FirstLetter is Alef, the first letter of the accepted range.
	FirstLetter rune = 'א'
	// LastLetter is Tav, the last letter of the accepted range.
	LastLetter rune = 'ת'
	// Apostrophe marks a digraph when it follows a digraph base letter.
	Apostrophe rune = '\''
	// Separator stands in for a space in multi-word phrases.
	Separator rune = '_'
)

// digraphBases are the letters that may be followed by an apostrophe.
var digraphBases = [...]rune{'ג', 'ז', 'צ', 'ץ', 'ת'}

// Filter decides whether a candidate string is an acceptable word.
// The zero value rejects the separator.
type Filter struct {
	AllowSeparator bool
}

// IsLetter reports whether r is inside the Hebrew letter range.
func IsLetter(r rune) bool {
	return r >= FirstLetter && r <= LastLetter
}

// IsDigraphBase reports whether r may be followed by an apostrophe.
func IsDigraphBase(r rune) bool {
	for _, b := range digraphBases {
		if r == b {
			return true
		}
	}
	return false
}

// IsValid reports whether word is made only of letters, correctly placed
// apostrophes and (if allowed) separators. The empty string is not valid.
func (f Filter) IsValid(word string) bool {
	if word == "" {
		return false
	}
	var prev rune
	for _, r := range word {
		switch {
		case IsLetter(r):
		case r == Apostrophe:
			if !IsDigraphBase(prev) {
				return false
			}
		case r == Separator && f.AllowSeparator:
		default:
			return false
		}
		prev = r
	}
	return true
}

// EffectiveLength is the number of characters in word minus its apostrophes,
// i.e. a digraph counts once.
func EffectiveLength(word string) int {
	return utf8.RuneCountInString(word) - CountApostrophes(word)
}

// CountApostrophes returns the number of apostrophes in word.
func CountApostrophes(word string) int {
	return strings.Count(word, string(Apostrophe))
}
