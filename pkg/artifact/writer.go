/*
Package artifact writes the published tree and its manifest.

Layout under the output root:

	words/<category>/h<len>.txt     native words of effective length len
	words/<category>/e<len>.txt     the same words, transliterated
	words/<category>/e<len>.dawg    compressed counterpart, when one was built
	words/<category>/LICENSE        upstream attribution
	anagram/<category>/<weight>.json  signature -> transliterated words
	related/<category>/<len>.json     transliterated word -> related words
	manifest.json                    written last
*/
package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/tashbetz/internal/utils"
	"github.com/bastiangx/tashbetz/pkg/anagram"
	"github.com/bastiangx/tashbetz/pkg/bucket"
	"github.com/bastiangx/tashbetz/pkg/related"
)

const (
	WordsDir     = "words"
	AnagramDir   = "anagram"
	RelatedDir   = "related"
	ManifestFile = "manifest.json"
	LicenseFile  = "LICENSE"

	NativePrefix     = "h"
	TranslatedPrefix = "e"
)

// Writer writes artifacts below a root directory.
type Writer struct {
	root string
	log  *log.Logger
}

// NewWriter returns a Writer rooted at root. A nil logger uses the default logger.
func NewWriter(root string, logger *log.Logger) *Writer {
	if logger == nil {
		logger = log.Default()
	}
	return &Writer{root: root, log: logger}
}

// Root returns the output directory.
func (w *Writer) Root() string { return w.root }

// ListPath returns the path of the word list for category, prefix and length.
func (w *Writer) ListPath(category, prefix string, length int) string {
	return filepath.Join(w.root, WordsDir, category, prefix+strconv.Itoa(length)+".txt")
}

// WriteWordLists writes the native and transliterated buckets of category and returns the
// transliterated list paths by length; those are the inputs of the compression step.
func (w *Writer) WriteWordLists(category string, native, translated bucket.Map) (map[int]string, error) {
	if err := utils.EnsureDir(filepath.Join(w.root, WordsDir, category)); err != nil {
		return nil, err
	}
	for _, length := range native.Lengths() {
		if err := writeLines(w.ListPath(category, NativePrefix, length), native[length]); err != nil {
			return nil, err
		}
	}

	paths := make(map[int]string, len(translated))
	for _, length := range translated.Lengths() {
		path := w.ListPath(category, TranslatedPrefix, length)
		if err := writeLines(path, translated[length]); err != nil {
			return nil, err
		}
		paths[length] = path
	}
	w.log.Debugf("Wrote %d word lists for %s", len(native)+len(translated), category)
	return paths, nil
}

// WriteAnagrams writes one JSON file per weight.
func (w *Writer) WriteAnagrams(category string, groups anagram.Groups) error {
	dir := filepath.Join(w.root, AnagramDir, category)
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	for _, weight := range groups.Weights() {
		if err := writeJSON(filepath.Join(dir, strconv.Itoa(weight)+".json"), groups[weight]); err != nil {
			return err
		}
	}
	w.log.Debugf("Wrote %d anagram partitions for %s", len(groups), category)
	return nil
}

// WriteRelated writes one JSON file per effective length.
func (w *Writer) WriteRelated(category string, idx related.Index) error {
	dir := filepath.Join(w.root, RelatedDir, category)
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	for _, length := range idx.Lengths() {
		if err := writeJSON(filepath.Join(dir, strconv.Itoa(length)+".json"), idx[length]); err != nil {
			return err
		}
	}
	return nil
}

// WriteLicense writes the LICENSE file of category. Nothing is written without licenses.
func (w *Writer) WriteLicense(category string, licenses []License) error {
	if len(licenses) == 0 {
		return nil
	}
	dir := filepath.Join(w.root, WordsDir, category)
	if err := utils.EnsureDir(dir); err != nil {
		return err
	}
	path := filepath.Join(dir, LicenseFile)
	if err := os.WriteFile(path, []byte(LicenseText(licenses)), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeLines writes words newline separated, without a trailing newline.
func writeLines(path string, words []string) error {
	if err := os.WriteFile(path, []byte(strings.Join(words, "\n")), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
