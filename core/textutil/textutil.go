package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFD and strips combining marks, so that
// "García" and "Garcia" compare equal after folding.
var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

var (
	collapseRe = regexp.MustCompile(`[\s_\-]+`)
	tokenRe    = regexp.MustCompile(`[A-Z0-9]+`)
)

// Fold returns s decomposed to NFD, with combining marks removed,
// uppercased. Used for case- and accent-insensitive comparison.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// Invalid input passes through unfolded; comparisons degrade
		// to exact matching rather than failing the caller.
		folded = s
	}
	return strings.ToUpper(folded)
}

// CollapseKey normalizes a header or column name for tolerant matching:
// accents folded, lowercased, whitespace/hyphen/underscore runs removed.
func CollapseKey(s string) string {
	if s == "" {
		return ""
	}
	return collapseRe.ReplaceAllString(strings.ToLower(Fold(s)), "")
}

// Signature is a multiset of uppercase alphanumeric tokens extracted
// from a name. Two names are considered the same iff their signatures
// are equal: word order and accents are ignored, but every token must
// be present with the same multiplicity.
type Signature map[string]int

// TokenSignature extracts the token multiset of s.
func TokenSignature(s string) Signature {
	sig := make(Signature)
	if s == "" {
		return sig
	}
	for _, tok := range tokenRe.FindAllString(Fold(s), -1) {
		sig[tok]++
	}
	return sig
}

// Equal reports whether two signatures contain the same tokens with the
// same counts.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for tok, n := range s {
		if other[tok] != n {
			return false
		}
	}
	return true
}

// Empty reports whether the signature contains no tokens.
func (s Signature) Empty() bool { return len(s) == 0 }
