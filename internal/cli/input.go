// Package cli handles the interactive inspect loop used to debug a built output tree.
package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/tashbetz/internal/utils"
	"github.com/bastiangx/tashbetz/pkg/alphabet"
	"github.com/bastiangx/tashbetz/pkg/anagram"
	"github.com/bastiangx/tashbetz/pkg/artifact"
	"github.com/bastiangx/tashbetz/pkg/compress"
	"github.com/bastiangx/tashbetz/pkg/translit"
)

var (
	wordStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Inspection is everything the tree knows about one word.
type Inspection struct {
	Word        string
	Valid       bool
	ValidPhrase bool
	Length      int
	Translated  string
	Signature   string
	Weight      int
	// Found maps a category to the format its list was read from.
	Found map[string]compress.Format
	// Anagrams maps a category to the other native words sharing the signature.
	Anagrams map[string][]string
}

// InputHandler reads words from stdin and reports how the built tree handles them.
type InputHandler struct {
	root         string
	manifest     *artifact.Manifest
	table        *translit.Table
	encoder      *anagram.Encoder
	lists        map[string]*compress.Dawg
	groups       map[string]map[string][]string
	requestCount int
}

// NewInputHandler opens the tree at root. Without a manifest only the word analysis is shown.
func NewInputHandler(root string, table *translit.Table) *InputHandler {
	if table == nil {
		table = translit.Default
	}
	h := &InputHandler{
		root:    root,
		table:   table,
		encoder: anagram.NewEncoder(table),
	}
	h.resetCache()

	m, err := artifact.LoadManifest(filepath.Join(root, artifact.ManifestFile))
	if err != nil {
		log.Warnf("No usable manifest in %s, list lookups are disabled: %v", root, err)
	} else {
		h.manifest = m
		log.Debugf("Loaded manifest of build %s", m.BuildID)
	}
	return h
}

func (h *InputHandler) resetCache() {
	h.lists = make(map[string]*compress.Dawg)
	h.groups = make(map[string]map[string][]string)
}

// Start begins the interface loop on stdin.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin)
}

// Run reads one word per line from r until EOF.
func (h *InputHandler) Run(r io.Reader) error {
	log.Print("tashbetz inspect")
	log.Print("type a word and press Enter (Ctrl+C to exit):")

	reader := bufio.NewReader(r)
	for {
		log.Print("> ")
		word, err := reader.ReadString('\n')
		if word = strings.TrimSpace(word); word != "" {
			h.handleInput(word)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// Inspect analyses word against the loaded tree.
func (h *InputHandler) Inspect(word string) Inspection {
	h.requestCount++
	if h.requestCount%50 == 0 {
		h.resetCache()
	}

	in := Inspection{
		Word:        word,
		Valid:       alphabet.Filter{}.IsValid(word),
		ValidPhrase: alphabet.Filter{AllowSeparator: true}.IsValid(word),
		Length:      alphabet.EffectiveLength(word),
		Translated:  h.table.Translate(word),
		Found:       make(map[string]compress.Format),
		Anagrams:    make(map[string][]string),
	}
	in.Signature, in.Weight = h.encoder.Signature(in.Translated)
	if h.manifest == nil {
		return in
	}

	for cat, formats := range h.manifest.ListSource.Dictionary {
		if in.Length >= len(formats) || formats[in.Length] == compress.FormatNone {
			continue
		}
		d := h.list(cat, in.Length, formats[in.Length])
		if d != nil && d.Contains(in.Translated) {
			in.Found[cat] = formats[in.Length]
		}
	}
	for cat, formats := range h.manifest.ListSource.Anagram {
		if in.Weight >= len(formats) || formats[in.Weight] == compress.FormatNone {
			continue
		}
		var others []string
		for _, w := range h.anagramGroup(cat, in.Weight)[in.Signature] {
			if w != in.Translated {
				others = append(others, h.table.Reverse(w))
			}
		}
		if len(others) > 0 {
			in.Anagrams[cat] = others
		}
	}
	return in
}

func (h *InputHandler) list(category string, length int, f compress.Format) *compress.Dawg {
	path := filepath.Join(h.root, artifact.WordsDir, category, artifact.TranslatedPrefix+strconv.Itoa(length)+f.Ext())
	if d, ok := h.lists[path]; ok {
		return d
	}

	if detected, err := compress.DetectFormat(path); err != nil || detected != f {
		log.Errorf("Artifact %s does not match its manifest entry %q: %v", path, f, err)
		h.lists[path] = nil
		return nil
	}

	var d *compress.Dawg
	switch f {
	case compress.FormatDawg:
		loaded, err := compress.Open(path)
		if err != nil {
			log.Errorf("Failed to open %s: %v", path, err)
			return nil
		}
		d = loaded
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			log.Errorf("Failed to read %s: %v", path, err)
			return nil
		}
		d = compress.NewDawg(strings.Split(string(data), "\n"))
	}
	h.lists[path] = d
	return d
}

func (h *InputHandler) anagramGroup(category string, weight int) map[string][]string {
	path := filepath.Join(h.root, artifact.AnagramDir, category, strconv.Itoa(weight)+".json")
	if g, ok := h.groups[path]; ok {
		return g
	}
	g := make(map[string][]string)
	data, err := os.ReadFile(path)
	if err == nil {
		err = json.Unmarshal(data, &g)
	}
	if err != nil {
		log.Errorf("Failed to load %s: %v", path, err)
	}
	h.groups[path] = g
	return g
}

// handleInput inspects a word and prints the result.
func (h *InputHandler) handleInput(word string) {
	start := time.Now()
	in := h.Inspect(word)
	log.Debugf("Took [ %v ] for '%s'", time.Since(start), word)

	label := func(s string) string { return labelStyle.Render(s) }
	log.Printf("%s %s", label("word:       "), wordStyle.Render(in.Word))
	log.Printf("%s %t (phrase: %t)", label("valid:      "), in.Valid, in.ValidPhrase)
	log.Printf("%s %d", label("length:     "), in.Length)
	log.Printf("%s %s", label("translated: "), wordStyle.Render(in.Translated))
	log.Printf("%s %s (weight %d)", label("signature:  "), in.Signature, in.Weight)

	if h.manifest == nil {
		return
	}
	if len(in.Found) == 0 {
		log.Warnf("'%s' is in none of the built lists", word)
	}
	for _, cat := range sortedKeys(in.Found) {
		log.Printf("%s %s (%s)", label("found in:   "), cat, in.Found[cat])
	}
	for _, cat := range sortedKeys(in.Anagrams) {
		words := in.Anagrams[cat]
		shown := words
		if len(shown) > 10 {
			shown = shown[:10]
		}
		log.Printf("%s %s: %s (%s total)", label("anagrams:   "), cat,
			wordStyle.Render(strings.Join(shown, " ")), utils.FormatWithCommas(len(words)))
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
