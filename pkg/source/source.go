/*
Package source turns raw dictionary dumps into canonical word sets.

Every extractor feeds its candidates through a Normalizer, which strips niqqud, trims
whitespace and exclamation marks, and rejects words that are too short, fall outside the
alphabet or appear on the ignore list. Rejections are never errors: they are logged at
debug level and counted in Stats.

Supported inputs:

	hspell      he_IL.dic, "word/flags" per line
	wiktionary  all-titles dump, "<namespace> <title>" per line, namespace 0 only
	wikipedia   ns0 all-titles dump, one title per line, '_' kept as a separator
	wordnet     Hebrew WordNet XML export (lemma, undotted, dotted_without_dots)
*/
package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/tashbetz/pkg/ignore"
	"github.com/bastiangx/tashbetz/pkg/wordset"
)

// ErrUnknownSource is returned by New for an unsupported kind.
var ErrUnknownSource = errors.New("unknown source")

// Kind names a supported input format.
type Kind string

const (
	Hspell     Kind = "hspell"
	Wiktionary Kind = "wiktionary"
	Wikipedia  Kind = "wikipedia"
	WordNet    Kind = "wordnet"
)

// Kinds returns every supported kind in a stable order.
func Kinds() []Kind {
	return []Kind{Hspell, Wiktionary, Wikipedia, WordNet}
}

// SkipReason explains why a record was dropped.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipMalformed SkipReason = "malformed"
	SkipShort     SkipReason = "short"
	SkipAlphabet  SkipReason = "alphabet"
	SkipIgnored   SkipReason = "ignored"
)

// Stats counts what happened to the records of one source.
type Stats struct {
	Read       int
	Accepted   int
	Duplicates int
	Skipped    map[SkipReason]int
}

func (s *Stats) skip(reason SkipReason) {
	if s.Skipped == nil {
		s.Skipped = make(map[SkipReason]int)
	}
	s.Skipped[reason]++
}

// TotalSkipped sums the skipped records over all reasons.
func (s Stats) TotalSkipped() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// Log writes a one-line summary for source.
func (s Stats) Log(logger *log.Logger, source Kind) {
	kv := []any{"source", source, "read", s.Read, "accepted", s.Accepted, "duplicates", s.Duplicates, "skipped", s.TotalSkipped()}
	reasons := make([]string, 0, len(s.Skipped))
	for r := range s.Skipped {
		reasons = append(reasons, string(r))
	}
	sort.Strings(reasons)
	for _, r := range reasons {
		kv = append(kv, "skipped_"+r, s.Skipped[SkipReason(r)])
	}
	logger.Info("Extracted", kv...)
}

// Result is the outcome of one extraction.
type Result struct {
	Words wordset.Set
	// Groups holds sets of related words (WordNet synsets), native form.
	Groups [][]string
	Stats  Stats
}

func newResult() Result {
	return Result{Words: wordset.New()}
}

// Extractor reads one raw source.
type Extractor interface {
	Kind() Kind
	Extract(ctx context.Context, r io.Reader) (Result, error)
}

// New returns the extractor for kind.
func New(kind Kind, ignored *ignore.List, logger *log.Logger) (Extractor, error) {
	switch kind {
	case Hspell:
		return NewHspell(ignored, logger), nil
	case Wiktionary:
		return NewWiktionary(ignored, logger), nil
	case Wikipedia:
		return NewWikipedia(ignored, logger), nil
	case WordNet:
		return NewWordNet(ignored, logger), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSource, kind)
}

// ExtractFile opens path and runs e over it.
func ExtractFile(ctx context.Context, e Extractor, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to open %s input %s: %w", e.Kind(), path, err)
	}
	defer f.Close()

	res, err := e.Extract(ctx, f)
	if err != nil {
		return Result{}, fmt.Errorf("failed to extract %s from %s: %w", e.Kind(), path, err)
	}
	return res, nil
}

const maxLineSize = 1 << 20

// scanLines calls fn for every line of r, checking ctx every few thousand lines.
func scanLines(ctx context.Context, r io.Reader, fn func(line string)) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for sc.Scan() {
		if n++; n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		fn(sc.Text())
	}
	return sc.Err()
}
