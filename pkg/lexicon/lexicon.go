// Package lexicon holds the static keyword tables used to classify and
// clean ingredient strings: forbidden substrings grouped by category,
// short tokens forbidden only on exact match, adjective noise words and
// the symbols stripped during normalization.
//
// A Lexicon is immutable once built and safe for concurrent use.
package lexicon

import (
	_ "embed"
	"strings"
	"sync"
)

//go:embed default.yaml
var defaultManifest []byte

// Category groups forbidden substrings.
type Category string

const (
	Meat  Category = "meat"
	Fish  Category = "fish"
	Dairy Category = "dairy"
	Other Category = "other"
)

// categoryOrder is the scan order for forbidden substring tests.
var categoryOrder = []Category{Meat, Fish, Dairy, Other}

func (c Category) valid() bool {
	for _, k := range categoryOrder {
		if c == k {
			return true
		}
	}
	return false
}

// Lexicon is one loaded keyword table set.
type Lexicon struct {
	Manifest   *Manifest
	substrings map[Category][]string
	exact      map[string]struct{}
	adjectives []string
	adjSet     map[string]struct{}
	symbols    []string
}

var (
	defaultOnce sync.Once
	defaultLex  *Lexicon
)

// Default returns the embedded lexicon. It panics if the embedded
// manifest is invalid, which only a broken build can cause.
func Default() *Lexicon {
	defaultOnce.Do(func() {
		lex, err := Parse(defaultManifest)
		if err != nil {
			panic("lexicon: embedded manifest: " + err.Error())
		}
		defaultLex = lex
	})
	return defaultLex
}

// Load reads a manifest file and builds a Lexicon from it.
func Load(path string) (*Lexicon, error) {
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

// Parse builds a Lexicon from raw manifest YAML.
func Parse(data []byte) (*Lexicon, error) {
	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}
	return New(m), nil
}

// New builds a Lexicon from a manifest. Entries are lowercased; empty
// entries are dropped so they cannot match every string.
func New(m *Manifest) *Lexicon {
	lex := &Lexicon{
		Manifest:   m,
		substrings: make(map[Category][]string, len(m.Categories)),
		exact:      make(map[string]struct{}, len(m.Exact)),
		adjSet:     make(map[string]struct{}, len(m.Adjectives)),
	}
	for name, terms := range m.Categories {
		lex.substrings[Category(name)] = lowerAll(terms)
	}
	for _, t := range lowerAll(m.Exact) {
		lex.exact[t] = struct{}{}
	}
	lex.adjectives = lowerAll(m.Adjectives)
	for _, a := range lex.adjectives {
		lex.adjSet[a] = struct{}{}
	}
	// Symbols are matched verbatim, case included.
	for _, s := range m.Symbols {
		if s != "" {
			lex.symbols = append(lex.symbols, s)
		}
	}
	return lex
}

// ForbiddenSubstring reports the first forbidden substring found in s.
// Categories are scanned meat, fish, dairy, other; each list in manifest order.
// s is expected to be lowercase already.
func (l *Lexicon) ForbiddenSubstring(s string) (Category, string, bool) {
	for _, cat := range categoryOrder {
		for _, term := range l.substrings[cat] {
			if strings.Contains(s, term) {
				return cat, term, true
			}
		}
	}
	return "", "", false
}

// IsExactForbidden reports whether s equals one of the short forbidden tokens.
func (l *Lexicon) IsExactForbidden(s string) bool {
	_, ok := l.exact[s]
	return ok
}

// IsAdjective reports whether s is one of the adjective noise tokens.
func (l *Lexicon) IsAdjective(s string) bool {
	_, ok := l.adjSet[s]
	return ok
}

// Adjectives returns the adjective tokens in manifest order.
func (l *Lexicon) Adjectives() []string {
	return append([]string(nil), l.adjectives...)
}

// Symbols returns the symbols stripped during normalization.
func (l *Lexicon) Symbols() []string {
	return append([]string(nil), l.symbols...)
}

// Substrings returns the forbidden substrings of one category.
func (l *Lexicon) Substrings(c Category) []string {
	return append([]string(nil), l.substrings[c]...)
}

// Info is the public metadata of a lexicon.
type Info struct {
	ID         string           `json:"id"`
	Version    string           `json:"version"`
	Source     string           `json:"source"`
	Categories map[Category]int `json:"categories"`
	Exact      int              `json:"exact"`
	Adjectives int              `json:"adjectives"`
	Symbols    int              `json:"symbols"`
}

// Info summarizes the table sizes.
func (l *Lexicon) Info() Info {
	cats := make(map[Category]int, len(l.substrings))
	for c, terms := range l.substrings {
		cats[c] = len(terms)
	}
	return Info{
		ID:         l.Manifest.ID,
		Version:    l.Manifest.Version,
		Source:     l.Manifest.Source,
		Categories: cats,
		Exact:      len(l.exact),
		Adjectives: len(l.adjectives),
		Symbols:    len(l.symbols),
	}
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
