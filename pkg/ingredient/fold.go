// CLAUDE:SUMMARY Case-folding strategies (lowercase-only, lowercase+strip-accents) applied as the first cleaning step.
package ingredient

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases a raw ingredient before cleaning.
type Fold func(string) string

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// FoldLowercaseASCII lowercases and strips accents (e.g. Jalapeño -> jalapeno).
func FoldLowercaseASCII(s string) string {
	result, _, err := transform.String(stripAccents, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return result
}

// FoldLowercaseUTF8 lowercases but preserves accents.
func FoldLowercaseUTF8(s string) string {
	return strings.ToLower(s)
}

// GetFold returns the fold for the given mode.
// Default is lowercase_utf8.
func GetFold(mode string) Fold {
	switch mode {
	case "lowercase_ascii":
		return FoldLowercaseASCII
	case "lowercase_utf8":
		return FoldLowercaseUTF8
	default:
		return FoldLowercaseUTF8
	}
}
