package source

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/tashbetz/pkg/alphabet"
	"github.com/bastiangx/tashbetz/pkg/ignore"
)

// wordElements hold a single word as character data.
var wordElements = map[string]bool{
	"lemma":               true,
	"undotted":            true,
	"dotted_without_dots": true,
}

const synsetElement = "synset"

// WordNetExtractor streams the Hebrew WordNet XML export. Besides the word set it
// collects, per synset, the accepted words that belong together.
type WordNetExtractor struct {
	norm *Normalizer
}

// NewWordNet returns the WordNet extractor.
func NewWordNet(ignored *ignore.List, logger *log.Logger) *WordNetExtractor {
	return &WordNetExtractor{norm: NewNormalizer(alphabet.Filter{}, ignored, logger)}
}

func (e *WordNetExtractor) Kind() Kind { return WordNet }

func (e *WordNetExtractor) Extract(ctx context.Context, r io.Reader) (Result, error) {
	res := newResult()
	dec := xml.NewDecoder(r)

	var (
		group    []string
		inSynset bool
		seen     map[string]bool
	)
	for n := 0; ; n++ {
		if n%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("malformed wordnet xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			name := t.Name.Local
			if name == synsetElement {
				inSynset, group, seen = true, nil, make(map[string]bool)
				continue
			}
			if !wordElements[name] {
				continue
			}
			var text string
			if err := dec.DecodeElement(&text, &t); err != nil {
				return res, fmt.Errorf("malformed <%s> element: %w", name, err)
			}
			res.Stats.Read++
			word, ok := e.norm.accept(&res, text)
			if ok && inSynset && !seen[word] {
				seen[word] = true
				group = append(group, word)
			}
		case xml.EndElement:
			if t.Name.Local == synsetElement {
				if len(group) > 1 {
					res.Groups = append(res.Groups, group)
				}
				inSynset, group, seen = false, nil, nil
			}
		}
	}
	return res, nil
}
