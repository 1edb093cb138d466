package lemma

import "github.com/kljensen/snowball"

// Snowball stems words with the Porter2 English algorithm.
type Snowball struct{}

// Lemmatize returns the English stem of word, or word itself when the
// stemmer fails.
func (Snowball) Lemmatize(word string) string {
	if word == "" {
		return word
	}
	stem, err := snowball.Stem(word, "english", true)
	if err != nil || stem == "" {
		return word
	}
	return stem
}
