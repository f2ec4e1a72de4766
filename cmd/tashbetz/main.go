// Copyright 2025 The Tashbetz Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main builds the Hebrew word lists consumed by word game clients.

Tashbetz reads the raw Hebrew sources (Hspell, Wiktionary and Wikipedia title dumps, the
Hebrew WordNet), normalizes and filters their words, and writes one directory tree of
per-length word lists, compressed lookup artifacts, anagram and related-word indexes, and a
manifest.json describing which artifact a client should fetch.

# Usage

Build every category with the default config:

	tashbetz build

Build one category into a scratch directory without publishing:

	tashbetz build --category spellcheck --out /tmp/wordlists --no-publish

Print what a single source accepts:

	tashbetz extract hspell

Inspect words against a built tree:

	tashbetz inspect

# Configuration

Configuration is read from the TOML file given with --config, or from
[UserConfigDir]/tashbetz/tashbetz.toml, which is created with defaults on first use:

	[paths]
	output = "wordlists"
	ignore_list = "data/ignore_list.txt"

	[sources]
	hspell = "data/he_IL.dic"
	wiktionary = "data/hewiktionary-latest-all-titles.txt"
	wikipedia = "data/hewiki-latest-all-titles-in-ns0.txt"
	wordnet = "data/hebrew_synonyms.xml"

	[compress]
	mode = "trie"
	codec = "zstd"

	[publish]
	enabled = false
	backend = "s3"
	bucket = "my-bucket"

Every key can be overridden from the environment (TASHBETZ_OUTPUT, TASHBETZ_HSPELL,
TASHBETZ_PUBLISH_BUCKET, ...). An empty source path disables that source.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	internalcli "github.com/bastiangx/tashbetz/internal/cli"
	"github.com/bastiangx/tashbetz/internal/logger"
	"github.com/bastiangx/tashbetz/internal/utils"
	"github.com/bastiangx/tashbetz/pkg/compress"
	"github.com/bastiangx/tashbetz/pkg/config"
	"github.com/bastiangx/tashbetz/pkg/ignore"
	"github.com/bastiangx/tashbetz/pkg/pipeline"
	"github.com/bastiangx/tashbetz/pkg/publish"
	"github.com/bastiangx/tashbetz/pkg/source"
)

const (
	Version = "0.3.0"
	AppName = "tashbetz"
	gh      = "https://github.com/bastiangx/tashbetz"
)

var (
	cfg      *config.Config
	resolver *utils.PathResolver
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:  AppName,
		Usage: "Build Hebrew word lists, anagram indexes and their manifest",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to a TOML config file",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "toggle debug logging",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Value: "text",
				Usage: "log output format: text, json or logfmt",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			buildCommand,
			extractCommand,
			inspectCommand,
			versionCommand,
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// setup configures logging and loads the config before any command runs.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	formatter, err := logger.ParseFormatter(cmd.String("log-format"))
	if err != nil {
		return ctx, err
	}
	logger.Setup(cmd.Bool("debug"), formatter)

	resolver, err = utils.NewPathResolver()
	if err != nil {
		return ctx, fmt.Errorf("failed to initialize path resolver: %w", err)
	}

	var path string
	cfg, path, err = config.LoadConfigWithPriority(cmd.String("config"))
	if err != nil {
		return ctx, err
	}
	log.Debugf("Using config: %s (config dir %s)", config.GetActiveConfigPath(path), resolver.GetConfigDir())
	return ctx, nil
}

var buildCommand = &cli.Command{
	Name:  "build",
	Usage: "run the full pipeline and write the output tree",
	Flags: []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "category",
			Usage: "only build the named categories (dictionary, spellcheck, encyclopedia, wordnet)",
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "output directory, overrides [paths] output",
		},
		&cli.BoolFlag{
			Name:  "no-publish",
			Usage: "skip uploading even when [publish] is enabled",
		},
	},
	Action: runBuild,
}

func runBuild(ctx context.Context, cmd *cli.Command) error {
	output := cfg.Paths.Output
	if out := cmd.String("out"); out != "" {
		output = out
	}

	compressor, err := compress.New(compress.Options{
		Mode:    compress.Mode(cfg.Compress.Mode),
		Codec:   cfg.Compress.Codec,
		Command: cfg.Compress.Command,
		Args:    cfg.Compress.Args,
	})
	if err != nil {
		return err
	}

	var uploader publish.Uploader
	if cfg.Publish.Enabled && !cmd.Bool("no-publish") {
		uploader, err = publish.New(ctx, publish.Options{
			Backend:   cfg.Publish.Backend,
			Endpoint:  cfg.Publish.Endpoint,
			Region:    cfg.Publish.Region,
			Bucket:    cfg.Publish.Bucket,
			Prefix:    cfg.Publish.Prefix,
			AccessKey: cfg.Publish.AccessKey,
			SecretKey: cfg.Publish.SecretKey,
			UseSSL:    cfg.Publish.UseSSL,
		})
		if err != nil {
			return err
		}
	}

	p := pipeline.New(pipeline.Options{
		Output:        output,
		IgnoreList:    resolver.ResolveInput(cfg.Paths.IgnoreList),
		Inputs:        inputs(),
		Only:          cmd.StringSlice("category"),
		Compressor:    compressor,
		Uploader:      uploader,
		PublishPrefix: cfg.Publish.Prefix,
		Logger:        logger.New("build"),
	})
	report, err := p.Run(ctx)
	if err != nil {
		return err
	}
	showSummary(report)
	return nil
}

var extractCommand = &cli.Command{
	Name:      "extract",
	Usage:     "run one source extractor and print the accepted words",
	ArgsUsage: "<hspell|wiktionary|wikipedia|wordnet>",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		kind := source.Kind(cmd.Args().First())
		path := inputs()[kind]
		if path == "" {
			return fmt.Errorf("%w: %q has no configured input", source.ErrUnknownSource, kind)
		}

		ignored := ignore.New()
		if cfg.Paths.IgnoreList != "" {
			var err error
			if ignored, err = ignore.Load(resolver.ResolveInput(cfg.Paths.IgnoreList)); err != nil {
				return err
			}
		}

		l := logger.New(string(kind))
		e, err := source.New(kind, ignored, l)
		if err != nil {
			return err
		}
		res, err := source.ExtractFile(ctx, e, path)
		if err != nil {
			return err
		}
		for _, w := range res.Words.Sorted() {
			fmt.Println(w)
		}
		res.Stats.Log(l, kind)
		return nil
	},
}

var inspectCommand = &cli.Command{
	Name:  "inspect",
	Usage: "interactively check words against a built tree",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "out",
			Usage: "tree to inspect, overrides [paths] output",
		},
	},
	Action: func(ctx context.Context, cmd *cli.Command) error {
		root := cfg.Paths.Output
		if out := cmd.String("out"); out != "" {
			root = out
		}
		log.SetReportTimestamp(false)
		return internalcli.NewInputHandler(root, nil).Start()
	},
}

var versionCommand = &cli.Command{
	Name:  "version",
	Usage: "show the current version",
	Action: func(ctx context.Context, cmd *cli.Command) error {
		l := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		l.SetStyles(styles)

		l.Print("")
		l.Print("[ Tashbetz ] Hebrew word lists for word games")
		l.Print("", "version", Version)
		l.Print("")
		l.Print("use -h or --help to see available commands")
		l.Print("Github Repo", "gh", gh)
		return nil
	},
}

// inputs maps every source kind to its resolved input path. Empty paths stay empty.
func inputs() map[source.Kind]string {
	return map[source.Kind]string{
		source.Hspell:     resolver.ResolveInput(cfg.Sources.Hspell),
		source.Wiktionary: resolver.ResolveInput(cfg.Sources.Wiktionary),
		source.Wikipedia:  resolver.ResolveInput(cfg.Sources.Wikipedia),
		source.WordNet:    resolver.ResolveInput(cfg.Sources.WordNet),
	}
}

// showSummary prints the per-category counts of a finished build.
func showSummary(r *pipeline.Report) {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	row := lipgloss.NewStyle().PaddingLeft(2)

	var b strings.Builder
	b.WriteString(title.Render("Tashbetz build "+r.BuildID) + "\n")
	b.WriteString(row.Render("output: "+r.Output) + "\n")

	names := make([]string, 0, len(r.Categories))
	for name := range r.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c := r.Categories[name]
		b.WriteString(row.Render(fmt.Sprintf("%-13s %9s words  %3d lists  %3d compressed  %3d anagram groups  max length %d, weight %d",
			name, utils.FormatWithCommas(c.Words), c.Lists, c.Compressed, c.Anagrams, c.MaxLength, c.MaxWeight)) + "\n")
	}
	if r.Published > 0 {
		b.WriteString(row.Render("published: "+utils.FormatWithCommas(r.Published)+" files") + "\n")
	}
	b.WriteString(row.Render("took: "+r.Duration.Round(time.Millisecond).String()))
	fmt.Fprintln(os.Stderr, b.String())
}
