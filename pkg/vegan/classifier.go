// Package vegan decides whether a basket of ingredients is vegan.
//
// Each item is lowercased and tested against the lexicon: a forbidden
// substring anywhere in the item ("beef broth") or an exact match on a
// short forbidden token ("ham", but not "shampoo") makes the basket
// non-vegan. The first hit ends the scan. An empty basket is vegan.
package vegan

import (
	"strings"

	"github.com/hazyhaar/vegantree/pkg/lexicon"
)

// CategoryExact marks a verdict triggered by an exact short-token match.
const CategoryExact lexicon.Category = "exact"

// Classifier tests baskets against one lexicon.
type Classifier struct {
	lex *lexicon.Lexicon
}

// New returns a Classifier backed by lex; nil selects the embedded lexicon.
func New(lex *lexicon.Lexicon) *Classifier {
	if lex == nil {
		lex = lexicon.Default()
	}
	return &Classifier{lex: lex}
}

// Default returns a Classifier on the embedded lexicon.
func Default() *Classifier {
	return New(lexicon.Default())
}

// IsVegan reports whether foodlist is vegan with the embedded lexicon.
func IsVegan(foodlist []string) bool {
	return Default().IsVegan(foodlist)
}

// Verdict explains a classification.
type Verdict struct {
	Vegan bool `json:"vegan"`
	// The fields below describe the first offending item; empty when Vegan.
	Item     string           `json:"item,omitempty"`
	Index    int              `json:"index"`
	Category lexicon.Category `json:"category,omitempty"`
	Match    string           `json:"match,omitempty"`
}

// IsVegan reports whether no item of foodlist is forbidden.
func (c *Classifier) IsVegan(foodlist []string) bool {
	return c.Check(foodlist).Vegan
}

// Check classifies foodlist and names the first item that made it
// non-vegan. Index is -1 for a vegan basket.
func (c *Classifier) Check(foodlist []string) Verdict {
	for i, food := range foodlist {
		lower := strings.ToLower(food)
		if cat, term, ok := c.lex.ForbiddenSubstring(lower); ok {
			return Verdict{Item: food, Index: i, Category: cat, Match: term}
		}
		if c.lex.IsExactForbidden(lower) {
			return Verdict{Item: food, Index: i, Category: CategoryExact, Match: lower}
		}
	}
	return Verdict{Vegan: true, Index: -1}
}

// Partition splits baskets into vegan and non-vegan ones, keeping order.
func (c *Classifier) Partition(baskets [][]string) (vegan, nonVegan [][]string) {
	for _, b := range baskets {
		if c.IsVegan(b) {
			vegan = append(vegan, b)
		} else {
			nonVegan = append(nonVegan, b)
		}
	}
	return vegan, nonVegan
}
