package source

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
	"github.com/bastiangx/tashbetz/pkg/ignore"
)

// HspellExtractor reads a Hunspell .dic file. Lines without a '/' (the count header,
// comments) are skipped; otherwise the word is the text before the first '/'.
type HspellExtractor struct {
	norm *Normalizer
}

// NewHspell returns the spell-check dictionary extractor.
func NewHspell(ignored *ignore.List, logger *log.Logger) *HspellExtractor {
	return &HspellExtractor{norm: NewNormalizer(alphabet.Filter{}, ignored, logger)}
}

func (e *HspellExtractor) Kind() Kind { return Hspell }

func (e *HspellExtractor) Extract(ctx context.Context, r io.Reader) (Result, error) {
	res := newResult()
	err := scanLines(ctx, r, func(line string) {
		res.Stats.Read++
		word, _, ok := strings.Cut(line, "/")
		if !ok {
			e.norm.malformed(&res, line)
			return
		}
		e.norm.accept(&res, word)
	})
	return res, err
}
