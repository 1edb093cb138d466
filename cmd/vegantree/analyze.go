// CLAUDE:SUMMARY CLI subcommands that run the analysis pipeline over a CSV or SQLite basket corpus and clean stdin lines.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazyhaar/vegantree/pkg/analysis"
	"github.com/hazyhaar/vegantree/pkg/corpus"
	"github.com/hazyhaar/vegantree/pkg/vegan"
)

func cmdAnalyze(args []string, stdout io.Writer) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	path := fs.String("corpus", "", "corpus file (CSV or SQLite database) or http(s) URL, optionally zipped")
	kind := fs.String("kind", "csv", "corpus kind: csv or sqlite")
	delimiter := fs.String("delimiter", ",", "CSV delimiter")
	encoding := fs.String("encoding", "", "CSV encoding label (e.g. windows-1252); default utf-8")
	basketCol := fs.String("basket-column", "basket_id", "CSV basket id column")
	ingredientCol := fs.String("ingredient-column", "ingredient", "CSV ingredient column")
	top := fs.Int("top", 50, "keep the N most frequent terms in the report (0 = all)")
	out := fs.String("out", "", "report file; default stdout")
	fs.Parse(args)

	if *path == "" {
		fmt.Fprintln(os.Stderr, "Usage: vegantree analyze --corpus <path> [--kind csv|sqlite] [--out report.json]")
		return 2
	}

	cfg, logger, err := setup(*cfgPath)
	if err != nil {
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if corpus.IsRemote(*path) {
		dir, err := os.MkdirTemp("", "vegantree-corpus-")
		if err != nil {
			logger.Error("create temp dir", "error", err)
			return 1
		}
		defer os.RemoveAll(dir)

		exts := []string{".csv"}
		if *kind == "sqlite" {
			exts = []string{".db", ".sqlite", ".sqlite3"}
		}
		local, err := corpus.Fetch(ctx, *path, dir, exts...)
		if err != nil {
			logger.Error("fetch corpus", "url", *path, "error", err)
			return 1
		}
		logger.Info("corpus fetched", "url", *path, "file", local)
		*path = local
	}

	var src corpus.Source
	switch *kind {
	case "csv":
		src = &corpus.CSVSource{
			Path:             *path,
			Delimiter:        *delimiter,
			Encoding:         *encoding,
			HasHeader:        true,
			BasketColumn:     *basketCol,
			IngredientColumn: *ingredientCol,
		}
	default:
		s, err := corpus.Open(*kind, *path)
		if err != nil {
			logger.Error("open corpus", "error", err)
			return 1
		}
		if c, ok := s.(io.Closer); ok {
			defer c.Close()
		}
		src = s
	}

	norm, err := cfg.normalizer()
	if err != nil {
		logger.Error("failed to load lexicon", "error", err)
		return 1
	}
	fixed, err := cfg.fixedPoints()
	if err != nil {
		logger.Error("failed to load fixed points", "error", err)
		return 1
	}

	baskets, err := src.Baskets(ctx)
	if err != nil {
		logger.Error("read corpus", "error", err)
		return 1
	}
	logger.Info("corpus read", "path", *path, "baskets", len(baskets))

	p := &analysis.Pipeline{
		Classifier:  vegan.New(norm.Lexicon()),
		Normalizer:  norm,
		MinLength:   cfg.MinLength,
		FixedPoints: fixed,
		Workers:     cfg.Workers,
		Logger:      logger,
	}
	rep, err := p.Run(ctx, baskets)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		return 1
	}
	if *top > 0 && len(rep.Frequencies) > *top {
		rep.Frequencies = rep.Frequencies[:*top]
	}

	w := stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			logger.Error("create report", "error", err)
			return 1
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		logger.Error("write report", "error", err)
		return 1
	}
	return 0
}

func cmdClean(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	cfgPath := fs.String("config", "config.yaml", "path to config file")
	drop := fs.Bool("drop-short", false, "skip results shorter than min_length")
	fs.Parse(args)

	cfg, logger, err := setup(*cfgPath)
	if err != nil {
		return 1
	}
	norm, err := cfg.normalizer()
	if err != nil {
		logger.Error("failed to load lexicon", "error", err)
		return 1
	}

	w := bufio.NewWriter(stdout)
	defer w.Flush()
	sc := bufio.NewScanner(stdin)
	for sc.Scan() {
		line := sc.Text()
		if *drop {
			for _, tok := range norm.Preprocess([]string{line}, cfg.MinLength) {
				fmt.Fprintln(w, tok)
			}
			continue
		}
		fmt.Fprintln(w, norm.Clean(line))
	}
	if err := sc.Err(); err != nil {
		logger.Error("read stdin", "error", err)
		return 1
	}
	return 0
}
