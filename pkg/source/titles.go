package source

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
	"github.com/bastiangx/tashbetz/pkg/ignore"
)

const (
	mainNamespace = "0"
	titleHeader   = "page_title"
)

// TitlesExtractor reads a Wikimedia all-titles dump.
//
// Namespaced dumps carry "<namespace> <title>" per line and only namespace 0 is kept.
// Plain ns0 dumps carry one title per line after a "page_title" header.
type TitlesExtractor struct {
	kind       Kind
	namespaced bool
	norm       *Normalizer
}

// NewWiktionary returns the extractor for the namespaced Wiktionary titles dump.
func NewWiktionary(ignored *ignore.List, logger *log.Logger) *TitlesExtractor {
	return &TitlesExtractor{
		kind:       Wiktionary,
		namespaced: true,
		norm:       NewNormalizer(alphabet.Filter{}, ignored, logger),
	}
}

// NewWikipedia returns the extractor for the Wikipedia ns0 titles dump. Multi-word
// titles keep '_' as the separator.
func NewWikipedia(ignored *ignore.List, logger *log.Logger) *TitlesExtractor {
	return &TitlesExtractor{
		kind: Wikipedia,
		norm: NewNormalizer(alphabet.Filter{AllowSeparator: true}, ignored, logger),
	}
}

func (e *TitlesExtractor) Kind() Kind { return e.kind }

func (e *TitlesExtractor) Extract(ctx context.Context, r io.Reader) (Result, error) {
	res := newResult()
	first := true
	err := scanLines(ctx, r, func(line string) {
		header := first
		first = false
		if header && strings.TrimSpace(line) == titleHeader {
			return
		}
		res.Stats.Read++
		title, ok := e.title(line)
		if !ok {
			e.norm.malformed(&res, line)
			return
		}
		e.norm.accept(&res, title)
	})
	return res, err
}

func (e *TitlesExtractor) title(line string) (string, bool) {
	if !e.namespaced {
		return line, true
	}
	if !strings.HasPrefix(line, mainNamespace) {
		return "", false
	}
	fields := strings.Fields(line)
	if len(fields) < 2 || fields[0] != mainNamespace {
		return "", false
	}
	return fields[1], true
}
