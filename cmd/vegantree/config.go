package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hazyhaar/vegantree/pkg/analysis"
	"github.com/hazyhaar/vegantree/pkg/ingredient"
	"github.com/hazyhaar/vegantree/pkg/lemma"
	"github.com/hazyhaar/vegantree/pkg/lexicon"
	"gopkg.in/yaml.v3"
)

type config struct {
	Addr        string `yaml:"addr"`
	LogLevel    string `yaml:"log_level"`
	Lexicon     string `yaml:"lexicon"`    // manifest path; empty = embedded
	Lemmatizer  string `yaml:"lemmatizer"` // wordnet, snowball, none
	Fold        string `yaml:"fold"`       // lowercase_utf8, lowercase_ascii
	MinLength   int    `yaml:"min_length"`
	Workers     int    `yaml:"workers"`      // 0 = GOMAXPROCS
	FixedPoints string `yaml:"fixed_points"` // list path; empty = embedded
}

func defaultConfig() config {
	return config{
		Addr:       ":8421",
		LogLevel:   "info",
		Lemmatizer: "wordnet",
		Fold:       "lowercase_utf8",
		MinLength:  ingredient.DefaultMinLength,
	}
}

// loadConfig reads path over the defaults. A missing file is not an
// error; found reports whether one was read.
func loadConfig(path string) (cfg config, found bool, err error) {
	cfg = defaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, false, nil
		}
		return cfg, false, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false, fmt.Errorf("parse config: %w", err)
	}
	if cfg.MinLength <= 0 {
		cfg.MinLength = ingredient.DefaultMinLength
	}
	return cfg, true, nil
}

// setup loads the config and the logger it configures. A load error is
// logged before it is returned.
func setup(path string) (config, *slog.Logger, error) {
	cfg, found, err := loadConfig(path)
	logger := setupLogger(cfg.LogLevel)
	if err != nil {
		logger.Error("load config", "path", path, "error", err)
		return cfg, logger, err
	}
	if !found {
		logger.Debug("no config file, using defaults", "path", path)
	}
	return cfg, logger, nil
}

// setupLogger builds the stderr text logger and makes it the default.
// Unknown levels fall back to info.
func setupLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	slog.SetDefault(logger)
	return logger
}

// normalizer builds the Normalizer described by the config, re-reading
// the lexicon file each call.
func (c config) normalizer() (*ingredient.Normalizer, error) {
	lex := lexicon.Default()
	if c.Lexicon != "" {
		var err error
		if lex, err = lexicon.Load(c.Lexicon); err != nil {
			return nil, err
		}
	}
	return ingredient.New(lex, lemma.Get(c.Lemmatizer), ingredient.WithFold(c.Fold)), nil
}

func (c config) fixedPoints() ([]string, error) {
	if c.FixedPoints == "" {
		return analysis.DefaultFixedPoints(), nil
	}
	return analysis.LoadFixedPoints(c.FixedPoints)
}
