package analysis

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText lower-cases text and strips diacritics so ASCII matchers also
// hit accented spellings. Falls back to plain lower-casing if the
// transform fails. The chain is built per call; transformer chains carry
// state and the analyzers fan out across goroutines.
func foldText(s string) string {
	if isASCII(s) {
		return strings.ToLower(s)
	}
	stripper := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripper, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
