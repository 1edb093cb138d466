package hierarchy

import (
	"context"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

type config struct {
	workers int
}

// Option configures DecomposeVocab.
type Option func(*config)

// WithWorkers bounds the number of goroutines searching parents.
// Values below 1 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(c *config) { c.workers = n }
}

// DecomposeVocab maps every vocabulary term that has a substring parent
// to its root. Terms with no parent, fixed points included, are absent
// from the result: the caller treats absence as "is its own root".
//
// Parent choice for a term w1 scans the other terms w2 in lexicographic
// order. The first w2 contained in w1 becomes the parent; a later w2
// replaces it when w2 is a fixed point or has strictly fewer words than
// the current parent. Empty terms are ignored.
func DecomposeVocab(vocab, fixedPoints []string, opts ...Option) (map[string]string, error) {
	f, err := BuildForest(context.Background(), vocab, fixedPoints, opts...)
	if err != nil {
		return nil, err
	}
	return f.Roots()
}

// BuildForest infers the parent links of vocab without resolving roots.
func BuildForest(ctx context.Context, vocab, fixedPoints []string, opts ...Option) (*Forest, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers < 1 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	terms := sortedTerms(vocab)
	f := NewForest(terms, fixedPoints)

	// parents[i] is written only by the goroutine handling terms[i].
	parents := make([]int, len(terms))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for i := range terms {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			parents[i] = f.bestParent(terms, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// terms and f.nodes share the same order.
	for i, p := range parents {
		f.nodes[i].parent = p
	}
	return f, nil
}

// bestParent returns the index of the parent chosen for terms[i], or
// noParent. It only reads shared state.
func (f *Forest) bestParent(terms []string, i int) int {
	w1 := terms[i]
	if f.nodes[i].fixed {
		return noParent
	}
	best := noParent
	bestWords := 0
	for j, w2 := range terms {
		if j == i || !strings.Contains(w1, w2) {
			continue
		}
		words := len(strings.Fields(w2))
		if best == noParent || f.nodes[j].fixed || words < bestWords {
			best = j
			bestWords = words
		}
	}
	return best
}

// sortedTerms dedups vocab, drops empty terms and sorts the rest.
func sortedTerms(vocab []string) []string {
	set := toSet(vocab)
	delete(set, "")
	out := make([]string, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, s := range items {
		set[s] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
