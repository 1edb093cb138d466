package lemma

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed nouns.txt
var nounsRaw []byte

//go:embed exceptions.txt
var exceptionsRaw []byte

// suffix is one detachment rule: a word ending in from may have a base
// form ending in to.
type suffix struct {
	from, to string
}

// nounSuffixes are the WordNet noun detachment rules, in WordNet order.
var nounSuffixes = []suffix{
	{"s", ""},
	{"ses", "s"},
	{"ves", "f"},
	{"xes", "x"},
	{"zes", "z"},
	{"ches", "ch"},
	{"shes", "sh"},
	{"men", "man"},
	{"ies", "y"},
}

// Dictionary lemmatizes nouns against a sorted lemma list and an
// irregular-form exception table.
type Dictionary struct {
	lemmas     []string // sorted, for binary search
	exceptions map[string]string
}

var (
	defaultOnce sync.Once
	defaultDict *Dictionary
)

// Default returns the Dictionary built from the embedded word lists.
func Default() *Dictionary {
	defaultOnce.Do(func() {
		d, err := NewDictionary(bytes.NewReader(nounsRaw), bytes.NewReader(exceptionsRaw))
		if err != nil {
			panic("lemma: embedded dictionary: " + err.Error())
		}
		defaultDict = d
	})
	return defaultDict
}

// NewDictionary reads one lemma per line from lemmas, and "form base"
// pairs from exceptions (nil allowed). Blank lines and lines starting
// with '#' are skipped. Entries are lowercased.
func NewDictionary(lemmas, exceptions io.Reader) (*Dictionary, error) {
	d := &Dictionary{exceptions: make(map[string]string)}

	err := scanLines(lemmas, func(line string) error {
		d.lemmas = append(d.lemmas, line)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read lemmas: %w", err)
	}
	sort.Strings(d.lemmas)

	if exceptions != nil {
		err = scanLines(exceptions, func(line string) error {
			fields := strings.Fields(line)
			if len(fields) != 2 {
				return fmt.Errorf("malformed exception %q", line)
			}
			d.exceptions[fields[0]] = fields[1]
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("read exceptions: %w", err)
		}
	}
	return d, nil
}

// LoadDictionary reads a lemma list and an optional exception file from disk.
func LoadDictionary(lemmasPath, exceptionsPath string) (*Dictionary, error) {
	lf, err := os.Open(lemmasPath)
	if err != nil {
		return nil, fmt.Errorf("open lemma list: %w", err)
	}
	defer lf.Close()

	var exc io.Reader
	if exceptionsPath != "" {
		ef, err := os.Open(exceptionsPath)
		if err != nil {
			return nil, fmt.Errorf("open exception list: %w", err)
		}
		defer ef.Close()
		exc = ef
	}
	return NewDictionary(lf, exc)
}

// Lemmatize returns the shortest known base form of word. Irregular
// forms are resolved through the exception table first. A word with no
// known base form is returned unchanged.
func (d *Dictionary) Lemmatize(word string) string {
	if word == "" {
		return word
	}
	if base, ok := d.exceptions[word]; ok {
		return base
	}

	best := ""
	consider := func(c string) {
		if !d.Known(c) {
			return
		}
		if best == "" || len(c) < len(best) {
			best = c
		}
	}
	consider(word)
	for _, rule := range nounSuffixes {
		if strings.HasSuffix(word, rule.from) {
			consider(word[:len(word)-len(rule.from)] + rule.to)
		}
	}
	if best == "" {
		return word
	}
	return best
}

// Known reports whether s is in the lemma list.
func (d *Dictionary) Known(s string) bool {
	if s == "" {
		return false
	}
	i := sort.SearchStrings(d.lemmas, s)
	return i < len(d.lemmas) && d.lemmas[i] == s
}

// Len returns the number of lemmas.
func (d *Dictionary) Len() int {
	return len(d.lemmas)
}

func scanLines(r io.Reader, fn func(string) error) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.ToLower(strings.TrimSpace(sc.Text()))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return sc.Err()
}
