// Package lemma reduces single words to a base form.
//
// Three strategies are provided:
//
//   - Dictionary: WordNet-style noun lemmatization against an embedded
//     lemma list ("tomatoes" -> "tomato", "leaves" -> "leaf").
//   - Snowball: Porter2 English stemming ("tomatoes" -> "tomato",
//     "leaves" -> "leav"). Cheaper, but produces non-words.
//   - Identity: returns the word unchanged.
//
// A word the strategy cannot reduce is returned unchanged; this is never
// an error. All implementations are safe for concurrent use.
package lemma

// Lemmatizer maps one lowercase word to its base form.
type Lemmatizer interface {
	Lemmatize(word string) string
}

// Func adapts a plain function to the Lemmatizer interface.
type Func func(string) string

// Lemmatize calls f(word).
func (f Func) Lemmatize(word string) string { return f(word) }

// Identity returns every word unchanged.
var Identity Lemmatizer = Func(func(s string) string { return s })

// Get returns the lemmatizer for the given mode.
// Default is wordnet.
func Get(mode string) Lemmatizer {
	switch mode {
	case "wordnet":
		return Default()
	case "snowball":
		return Snowball{}
	case "none":
		return Identity
	default:
		return Default()
	}
}
