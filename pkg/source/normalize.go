package source

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
	"github.com/bastiangx/tashbetz/pkg/ignore"
)

// Niqqud and cantillation marks stripped before validation.
var niqqud = runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x05B0, Hi: 0x05C7, Stride: 1}},
})

// trimSet is removed from both ends of every candidate.
const trimSet = " \t\r\n!"

// minLength is the shortest accepted effective length.
const minLength = 2

// Normalizer applies the checks shared by every source. It is not safe for concurrent use.
type Normalizer struct {
	filter alphabet.Filter
	ignore *ignore.List
	log    *log.Logger
	strip  transform.Transformer
}

// NewNormalizer returns a Normalizer. A nil logger discards debug output.
func NewNormalizer(filter alphabet.Filter, ignored *ignore.List, logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.Default()
	}
	return &Normalizer{
		filter: filter,
		ignore: ignored,
		log:    logger,
		strip:  transform.Chain(norm.NFD, runes.Remove(niqqud)),
	}
}

// Clean strips niqqud and trims the candidate without validating it.
func (n *Normalizer) Clean(raw string) string {
	out, _, err := transform.String(n.strip, raw)
	if err != nil {
		out = raw
	}
	return strings.Trim(out, trimSet)
}

// Normalize returns the canonical form of raw, or the reason it was rejected.
func (n *Normalizer) Normalize(raw string) (string, SkipReason) {
	word := n.Clean(raw)
	switch {
	case alphabet.EffectiveLength(word) < minLength:
		return word, SkipShort
	case !n.filter.IsValid(word):
		return word, SkipAlphabet
	case n.ignore.Contains(word):
		return word, SkipIgnored
	}
	return word, SkipNone
}

// accept normalizes raw into res, logging and counting rejections.
func (n *Normalizer) accept(res *Result, raw string) (string, bool) {
	word, reason := n.Normalize(raw)
	if reason != SkipNone {
		res.Stats.skip(reason)
		n.log.Debug("Skipping", "word", word, "reason", reason)
		return "", false
	}
	if !res.Words.Add(word) {
		res.Stats.Duplicates++
		return word, true
	}
	res.Stats.Accepted++
	return word, true
}

// malformed counts a record that could not be parsed at all.
func (n *Normalizer) malformed(res *Result, line string) {
	res.Stats.skip(SkipMalformed)
	n.log.Debug("Skipping", "line", line, "reason", SkipMalformed)
}
