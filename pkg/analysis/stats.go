// Package analysis turns baskets of ingredients into the plain numbers
// that downstream charts consume: basket sizes, ranked term frequencies
// and the share of each hierarchy root.
package analysis

import "sort"

// TermCount is a term and how many times it occurred.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TermShare is a root term, its aggregated count and its share of the total.
type TermShare struct {
	Term  string  `json:"term"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// BasketSizes returns the number of ingredients of each basket.
func BasketSizes(baskets [][]string) []int {
	sizes := make([]int, len(baskets))
	for i, b := range baskets {
		sizes[i] = len(b)
	}
	return sizes
}

// Frequencies counts every term across baskets, ranked by count then term.
func Frequencies(baskets [][]string) []TermCount {
	counts := make(map[string]int)
	for _, b := range baskets {
		for _, term := range b {
			counts[term]++
		}
	}
	out := make([]TermCount, 0, len(counts))
	for term, n := range counts {
		out = append(out, TermCount{Term: term, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// RootShares folds term counts onto their roots. A term absent from
// roots is its own root.
func RootShares(freqs []TermCount, roots map[string]string) []TermShare {
	counts := make(map[string]int)
	total := 0
	for _, tc := range freqs {
		root, ok := roots[tc.Term]
		if !ok {
			root = tc.Term
		}
		counts[root] += tc.Count
		total += tc.Count
	}
	out := make([]TermShare, 0, len(counts))
	for term, n := range counts {
		s := TermShare{Term: term, Count: n}
		if total > 0 {
			s.Share = float64(n) / float64(total)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// Vocabulary returns the distinct terms of baskets, sorted.
func Vocabulary(baskets [][]string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range baskets {
		for _, term := range b {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			out = append(out, term)
		}
	}
	sort.Strings(out)
	return out
}
