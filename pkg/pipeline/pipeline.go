/*
Package pipeline runs a full build: extract every configured source, merge the sets of each
category, write the word lists, build their compressed counterparts, index anagrams and
related words, and finally write the manifest.

The run is single-threaded. Startup checks (ignore list, inputs, categories) happen before
the output directory is touched. Any failure after that aborts the run before the manifest
is written, so a tree without manifest.json is never complete.
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/bastiangx/tashbetz/internal/utils"
	"github.com/bastiangx/tashbetz/pkg/anagram"
	"github.com/bastiangx/tashbetz/pkg/artifact"
	"github.com/bastiangx/tashbetz/pkg/bucket"
	"github.com/bastiangx/tashbetz/pkg/compress"
	"github.com/bastiangx/tashbetz/pkg/ignore"
	"github.com/bastiangx/tashbetz/pkg/publish"
	"github.com/bastiangx/tashbetz/pkg/related"
	"github.com/bastiangx/tashbetz/pkg/source"
	"github.com/bastiangx/tashbetz/pkg/translit"
	"github.com/bastiangx/tashbetz/pkg/wordset"
)

// ErrMissingInput is returned when a configured input does not exist or nothing can be built.
var ErrMissingInput = errors.New("missing input")

// ErrOutputNotWritable is returned when the output directory cannot be created or written.
var ErrOutputNotWritable = errors.New("output directory not writable")

// ErrUnknownCategory is returned for a category filter entry that names no category.
var ErrUnknownCategory = errors.New("unknown category")

// Category is a published word list assembled from one or more sources.
type Category struct {
	Name    string
	Sources []source.Kind
}

// RelatedCategory holds the WordNet synset groups.
const RelatedCategory = "wordnet"

// Categories returns the word list categories in build order.
func Categories() []Category {
	return []Category{
		{Name: "dictionary", Sources: []source.Kind{source.Wiktionary, source.WordNet}},
		{Name: "spellcheck", Sources: []source.Kind{source.Hspell}},
		{Name: "encyclopedia", Sources: []source.Kind{source.Wikipedia}},
	}
}

// Options configures a Pipeline.
type Options struct {
	Output     string
	IgnoreList string
	// Inputs maps a source kind to its input file. Missing or empty entries disable the source.
	Inputs map[source.Kind]string
	// Only restricts the run to the named categories; empty builds everything.
	Only []string

	Table      *translit.Table
	Compressor compress.Compressor
	// Uploader publishes the finished tree; nil disables publishing.
	Uploader      publish.Uploader
	PublishPrefix string

	BuildID string
	Logger  *log.Logger
}

// PhaseResult holds the outcome of one category.
type PhaseResult struct {
	Words      int
	Lists      int
	Compressed int
	Anagrams   int
	// MaxLength is the longest word list; MaxWeight the heaviest anagram partition.
	MaxLength int
	MaxWeight int
	Duration  time.Duration
}

// Report summarizes a run.
type Report struct {
	BuildID    string
	Output     string
	Categories map[string]PhaseResult
	Sources    map[source.Kind]source.Stats
	Published  int
	Duration   time.Duration
}

// Pipeline orchestrates a build.
type Pipeline struct {
	opts    Options
	log     *log.Logger
	table   *translit.Table
	encoder *anagram.Encoder
}

// New creates a Pipeline. Table defaults to translit.Default and Compressor to the
// in-process trie compressor.
func New(opts Options) *Pipeline {
	if opts.Table == nil {
		opts.Table = translit.Default
	}
	if opts.Compressor == nil {
		opts.Compressor = &compress.TrieCompressor{Codec: compress.CodecZstd}
	}
	if opts.BuildID == "" {
		opts.BuildID = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Pipeline{
		opts:    opts,
		log:     logger.With("build", opts.BuildID),
		table:   opts.Table,
		encoder: anagram.NewEncoder(opts.Table),
	}
}

// plan is the validated work of a run.
type plan struct {
	ignored    *ignore.List
	categories []Category
	related    bool
	kinds      []source.Kind
}

func (p *Pipeline) prepare() (*plan, error) {
	ignored, err := ignore.Load(p.opts.IgnoreList)
	if err != nil {
		return nil, err
	}

	want := make(map[string]bool, len(p.opts.Only))
	for _, name := range p.opts.Only {
		known := name == RelatedCategory || slices.ContainsFunc(Categories(), func(c Category) bool { return c.Name == name })
		if !known {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
		}
		want[name] = true
	}
	selected := func(name string) bool { return len(want) == 0 || want[name] }

	pl := &plan{ignored: ignored}
	needed := make(map[source.Kind]bool)
	for _, c := range Categories() {
		if !selected(c.Name) {
			continue
		}
		var enabled []source.Kind
		for _, k := range c.Sources {
			if p.opts.Inputs[k] != "" {
				enabled = append(enabled, k)
			}
		}
		if len(enabled) == 0 {
			p.log.Warn("Skipping category without inputs", "category", c.Name)
			continue
		}
		pl.categories = append(pl.categories, Category{Name: c.Name, Sources: enabled})
		for _, k := range enabled {
			needed[k] = true
		}
	}
	if selected(RelatedCategory) && p.opts.Inputs[source.WordNet] != "" {
		pl.related = true
		needed[source.WordNet] = true
	}

	for _, k := range source.Kinds() {
		if !needed[k] {
			continue
		}
		path := p.opts.Inputs[k]
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s input %s: %v", ErrMissingInput, k, path, err)
		}
		pl.kinds = append(pl.kinds, k)
	}
	if len(pl.categories) == 0 && !pl.related {
		return nil, fmt.Errorf("%w: no category has a configured input", ErrMissingInput)
	}

	status := utils.CheckDirStatus(p.opts.Output)
	if status.Error != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOutputNotWritable, p.opts.Output, status.Error)
	}
	if !status.Writable {
		return nil, fmt.Errorf("%w: %s", ErrOutputNotWritable, p.opts.Output)
	}
	return pl, nil
}

// Run executes the build.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	pl, err := p.prepare()
	if err != nil {
		return nil, err
	}
	if err := utils.ResetDir(p.opts.Output); err != nil {
		return nil, err
	}

	report := &Report{
		BuildID:    p.opts.BuildID,
		Output:     p.opts.Output,
		Categories: make(map[string]PhaseResult),
		Sources:    make(map[source.Kind]source.Stats),
	}

	results := make(map[source.Kind]source.Result, len(pl.kinds))
	for _, k := range pl.kinds {
		res, err := p.extract(ctx, k, pl.ignored)
		if err != nil {
			return nil, err
		}
		results[k] = res
		report.Sources[k] = res.Stats
	}

	writer := artifact.NewWriter(p.opts.Output, p.log)
	manifest := artifact.NewManifest(p.table, p.opts.BuildID)

	for _, c := range pl.categories {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		phaseStart := time.Now()
		p.log.Info("Starting category", "category", c.Name)

		sets := make([]wordset.Set, 0, len(c.Sources))
		for _, k := range c.Sources {
			sets = append(sets, results[k].Words)
		}
		result, err := p.buildCategory(ctx, writer, manifest, c, wordset.Merge(sets...))
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", c.Name, err)
		}
		result.Duration = time.Since(phaseStart)
		report.Categories[c.Name] = result

		p.log.Info("Category completed",
			"category", c.Name,
			"words", result.Words,
			"lists", result.Lists,
			"compressed", result.Compressed,
			"anagram_groups", result.Anagrams,
			"max_length", result.MaxLength,
			"max_weight", result.MaxWeight,
			"duration", result.Duration.Round(time.Millisecond),
		)
	}

	if pl.related {
		result, err := p.buildRelated(writer, manifest, results[source.WordNet].Groups)
		if err != nil {
			return nil, fmt.Errorf("related words: %w", err)
		}
		report.Categories[RelatedCategory] = result
	}

	manifestPath := filepath.Join(p.opts.Output, artifact.ManifestFile)
	if err := manifest.Save(manifestPath); err != nil {
		return nil, err
	}
	p.log.Info("Manifest written", "path", manifestPath)

	if p.opts.Uploader != nil {
		n, err := publish.Tree(ctx, p.opts.Uploader, writer.Root(), p.opts.PublishPrefix, artifact.ManifestFile, p.log)
		report.Published = n
		if err != nil {
			return report, err
		}
		p.log.Info("Published output", "objects", n, "prefix", p.opts.PublishPrefix)
	}

	report.Duration = time.Since(start)
	return report, nil
}

func (p *Pipeline) extract(ctx context.Context, kind source.Kind, ignored *ignore.List) (source.Result, error) {
	e, err := source.New(kind, ignored, p.log.WithPrefix(string(kind)))
	if err != nil {
		return source.Result{}, err
	}
	res, err := source.ExtractFile(ctx, e, p.opts.Inputs[kind])
	if err != nil {
		return source.Result{}, err
	}
	res.Stats.Log(p.log, kind)
	return res, nil
}

func (p *Pipeline) buildCategory(ctx context.Context, w *artifact.Writer, m *artifact.Manifest, c Category, words wordset.Set) (PhaseResult, error) {
	m.Declare(artifact.KindDictionary, c.Name)
	m.Declare(artifact.KindAnagram, c.Name)

	sorted := words.Sorted()
	native := bucket.Bucketize(sorted, bucket.Native)
	translated := bucket.Bucketize(sorted, p.table.Translate)

	lists, err := w.WriteWordLists(c.Name, native, translated)
	if err != nil {
		return PhaseResult{}, err
	}

	result := PhaseResult{Words: len(sorted), Lists: len(native) + len(translated), MaxLength: translated.MaxLength()}
	for _, length := range translated.Lengths() {
		listPath := lists[length]
		packed, err := p.opts.Compressor.Compress(ctx, listPath)
		if err != nil {
			return PhaseResult{}, err
		}
		if packed != "" {
			result.Compressed++
		}
		f, err := artifact.ChooseFormat(listPath, packed)
		if err != nil {
			return PhaseResult{}, err
		}
		m.Record(artifact.KindDictionary, c.Name, length, f)
	}

	groups := p.encoder.Group(translated)
	if err := w.WriteAnagrams(c.Name, groups); err != nil {
		return PhaseResult{}, err
	}
	result.MaxWeight = groups.MaxWeight()
	for _, weight := range groups.Weights() {
		result.Anagrams += len(groups[weight])
		m.Record(artifact.KindAnagram, c.Name, weight, compress.FormatText)
	}

	var licenses []artifact.License
	for _, k := range c.Sources {
		if l, ok := artifact.Attribution(string(k)); ok {
			licenses = append(licenses, l)
		}
	}
	if err := w.WriteLicense(c.Name, licenses); err != nil {
		return PhaseResult{}, err
	}
	return result, nil
}

func (p *Pipeline) buildRelated(w *artifact.Writer, m *artifact.Manifest, groups [][]string) (PhaseResult, error) {
	start := time.Now()
	m.Declare(artifact.KindRelated, RelatedCategory)
	idx := related.Build(groups, p.table.Translate)
	if err := w.WriteRelated(RelatedCategory, idx); err != nil {
		return PhaseResult{}, err
	}
	result := PhaseResult{Lists: len(idx), MaxLength: idx.MaxLength()}
	for _, length := range idx.Lengths() {
		result.Words += len(idx[length])
		m.Record(artifact.KindRelated, RelatedCategory, length, compress.FormatText)
	}
	result.Duration = time.Since(start)
	p.log.Info("Related words written", "groups", len(groups), "words", result.Words, "max_length", result.MaxLength)
	return result, nil
}
