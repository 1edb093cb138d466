package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/vegantree/pkg/hierarchy"
	"github.com/hazyhaar/vegantree/pkg/ingredient"
	"github.com/hazyhaar/vegantree/pkg/vegan"
)

// Pipeline classifies raw baskets, cleans the vegan ones and builds the
// root hierarchy of the resulting vocabulary.
type Pipeline struct {
	Classifier  *vegan.Classifier
	Normalizer  *ingredient.Normalizer
	MinLength   int
	FixedPoints []string
	Workers     int
	Logger      *slog.Logger
}

// Report is the outcome of one Pipeline run.
type Report struct {
	Baskets          int               `json:"baskets"`
	VeganBaskets     int               `json:"vegan_baskets"`
	NonVeganBaskets  int               `json:"non_vegan_baskets"`
	VeganSizes       []int             `json:"vegan_sizes"`
	NonVeganSizes    []int             `json:"non_vegan_sizes"`
	Vocabulary       int               `json:"vocabulary"`
	Frequencies      []TermCount       `json:"frequencies"`
	Roots            map[string]string `json:"roots"`
	RootShares       []TermShare       `json:"root_shares"`
	FixedPointShares []TermShare       `json:"fixed_point_shares"`
}

// Run executes the pipeline. Raw baskets are classified as given; only
// vegan baskets are cleaned and feed the vocabulary.
func (p *Pipeline) Run(ctx context.Context, baskets [][]string) (*Report, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cls := p.Classifier
	if cls == nil {
		cls = vegan.Default()
	}
	norm := p.Normalizer
	if norm == nil {
		norm = ingredient.Default()
	}
	minLen := p.MinLength
	if minLen <= 0 {
		minLen = ingredient.DefaultMinLength
	}

	start := time.Now()
	veg, nonVeg := cls.Partition(baskets)
	logger.Info("baskets classified", "total", len(baskets), "vegan", len(veg), "non_vegan", len(nonVeg))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := make([][]string, len(veg))
	for i, b := range veg {
		cleaned[i] = norm.Preprocess(b, minLen)
	}
	vocab := Vocabulary(cleaned)
	logger.Info("vocabulary built", "terms", len(vocab), "min_length", minLen)

	forest, err := hierarchy.BuildForest(ctx, vocab, p.FixedPoints, hierarchy.WithWorkers(p.Workers))
	if err != nil {
		return nil, fmt.Errorf("build hierarchy: %w", err)
	}
	roots, err := forest.Roots()
	if err != nil {
		return nil, fmt.Errorf("resolve roots: %w", err)
	}

	freqs := Frequencies(cleaned)
	shares := RootShares(freqs, roots)

	fixed := make(map[string]struct{}, len(p.FixedPoints))
	for _, f := range p.FixedPoints {
		fixed[f] = struct{}{}
	}
	fixedShares := make([]TermShare, 0)
	for _, s := range shares {
		if _, ok := fixed[s.Term]; ok {
			fixedShares = append(fixedShares, s)
		}
	}

	logger.Info("hierarchy resolved",
		"rooted", len(roots),
		"roots", len(shares),
		"duration", time.Since(start),
	)

	return &Report{
		Baskets:          len(baskets),
		VeganBaskets:     len(veg),
		NonVeganBaskets:  len(nonVeg),
		VeganSizes:       BasketSizes(veg),
		NonVeganSizes:    BasketSizes(nonVeg),
		Vocabulary:       len(vocab),
		Frequencies:      freqs,
		Roots:            roots,
		RootShares:       shares,
		FixedPointShares: fixedShares,
	}, nil
}
