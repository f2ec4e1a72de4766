// Package ignore holds the maintained exclusion list (profanity, malformed entries,
// known bad imports) that every source extractor consults.
package ignore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrListNotFound is returned by Load when the ignore list file does not exist.
// Building word lists without it is not safe.
var ErrListNotFound = errors.New("ignore list not found")

// List is an immutable set of excluded words. A nil *List ignores nothing.
type List struct {
	words map[string]struct{}
}

// New builds a List from explicit words.
func New(words ...string) *List {
	l := &List{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w != "" {
			l.words[w] = struct{}{}
		}
	}
	return l
}

// Load reads a whitespace separated ignore list from path.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrListNotFound, path)
		}
		return nil, fmt.Errorf("failed to open ignore list %s: %w", path, err)
	}
	defer f.Close()

	l, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore list %s: %w", path, err)
	}
	log.Debugf("Loaded %d ignored words from %s", l.Len(), path)
	return l, nil
}

// Read parses whitespace separated words from r.
func Read(r io.Reader) (*List, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return New(strings.Fields(string(data))...), nil
}

// Contains reports whether word is excluded. Matching is exact.
func (l *List) Contains(word string) bool {
	if l == nil {
		return false
	}
	_, ok := l.words[word]
	return ok
}

// Len returns the number of excluded words.
func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}
