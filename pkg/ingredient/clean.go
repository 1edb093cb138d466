// Package ingredient turns raw ingredient strings into canonical
// vocabulary tokens.
//
// Cleaning runs six steps in a fixed order: lowercase, drop parenthesized
// asides, drop symbols, lemmatize word by word, drop adjective noise
// substrings, trim. Adjective removal is substring based and not word
// aware: "hotdog" loses "hot" as well.
//
// Clean is a projection: Clean(Clean(x)) == Clean(x). Removing an
// adjective can expose a new word ("frozenbeans" -> "beans") or leave a
// double space, so the pass is repeated until its output is stable.
//
// A Normalizer is safe for concurrent use.
package ingredient

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hazyhaar/vegantree/pkg/lemma"
	"github.com/hazyhaar/vegantree/pkg/lexicon"
)

// DefaultMinLength is the shortest token kept by Preprocess.
const DefaultMinLength = 3

// maxPasses is the slack added to the input length to bound the
// fixed-point loop in Clean. A pass that changes its input either removes
// at least one byte or swaps words for lemmas, and lemmas are stable, so
// len(input)+maxPasses passes always reach the fixed point.
const maxPasses = 16

var parenthesized = regexp.MustCompile(`\([^)]*\)`)

// Normalizer cleans ingredient strings against a lexicon and a lemmatizer.
type Normalizer struct {
	lex        *lexicon.Lexicon
	lem        lemma.Lemmatizer
	fold       Fold
	symbols    *strings.Replacer
	adjectives []string
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithFold selects the case-folding mode ("lowercase_utf8" or "lowercase_ascii").
func WithFold(mode string) Option {
	return func(n *Normalizer) { n.fold = GetFold(mode) }
}

// New builds a Normalizer. A nil lexicon or lemmatizer selects the
// embedded defaults.
func New(lex *lexicon.Lexicon, lem lemma.Lemmatizer, opts ...Option) *Normalizer {
	if lex == nil {
		lex = lexicon.Default()
	}
	if lem == nil {
		lem = lemma.Default()
	}
	n := &Normalizer{
		lex:        lex,
		lem:        lem,
		fold:       FoldLowercaseUTF8,
		adjectives: lex.Adjectives(),
	}
	pairs := make([]string, 0, 2*len(lex.Symbols()))
	for _, s := range lex.Symbols() {
		pairs = append(pairs, s, "")
	}
	n.symbols = strings.NewReplacer(pairs...)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var (
	defaultOnce sync.Once
	defaultNorm *Normalizer
)

// Default returns the Normalizer built on the embedded lexicon and
// dictionary lemmatizer.
func Default() *Normalizer {
	defaultOnce.Do(func() {
		defaultNorm = New(lexicon.Default(), lemma.Default())
	})
	return defaultNorm
}

// Clean cleans s with the default Normalizer.
func Clean(s string) string {
	return Default().Clean(s)
}

// Preprocess preprocesses ingredients with the default Normalizer.
func Preprocess(ingredients []string, minLength int) []string {
	return Default().Preprocess(ingredients, minLength)
}

// Clean returns the canonical form of one raw ingredient. The result may
// be empty when the input held nothing but removable content.
func (n *Normalizer) Clean(ingredient string) string {
	s := ingredient
	limit := len(ingredient) + maxPasses
	for i := 0; i < limit; i++ {
		next := n.pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// pass runs the six cleaning steps once.
func (n *Normalizer) pass(s string) string {
	s = n.fold(s)
	s = parenthesized.ReplaceAllString(s, "")
	s = n.symbols.Replace(s)

	words := strings.Fields(s)
	for i, w := range words {
		words[i] = n.lem.Lemmatize(w)
	}
	s = strings.Join(words, " ")

	return strings.TrimSpace(n.stripAdjectives(s))
}

// stripAdjectives removes adjectives in lexicon order until none is left.
// Removing one can form another ("frfrozenozen"), and every removal
// shortens s, so the loop ends.
func (n *Normalizer) stripAdjectives(s string) string {
	for {
		prev := s
		for _, adj := range n.adjectives {
			s = strings.ReplaceAll(s, adj, "")
		}
		if s == prev {
			return s
		}
	}
}

// Preprocess cleans every ingredient in order and drops results shorter
// than minLength characters. Order is kept; duplicates are kept.
func (n *Normalizer) Preprocess(ingredients []string, minLength int) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		c := n.Clean(ing)
		if utf8.RuneCountInString(c) < minLength {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Lexicon returns the lexicon the Normalizer strips adjectives and symbols from.
func (n *Normalizer) Lexicon() *lexicon.Lexicon {
	return n.lex
}
