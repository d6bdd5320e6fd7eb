// Package textnorm canonicalizes concept labels, descriptions and identifiers
// so that concepts from the SDMX glossary and the legacy model can be compared.
package textnorm

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator splits qualified labels such as "Accuracy - overall" into a
// category and a qualifier.
const Separator = " - "

// Lower lowercases s using Unicode case mapping rules.
func Lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// LowerTrim lowercases s and strips surrounding whitespace.
func LowerTrim(s string) string {
	return strings.TrimSpace(Lower(s))
}

// NormalizeText lowercases text, removes every character that is neither a
// word character (letter, number, underscore) nor whitespace and collapses
// whitespace runs to a single space. Combining marks emitted by case mapping
// are removed too, so NormalizeText(NormalizeText(s)) == NormalizeText(s).
//
//	NormalizeText("Hello, World! 123") == "hello world 123"
func NormalizeText(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, Lower(text))
	return strings.Join(strings.Fields(stripped), " ")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// SplitBySeparator splits s at the first occurrence of Separator. It returns
// the rune position of the separator and the text on either side, or
// (-1, "", "") when s contains no separator.
func SplitBySeparator(s string) (int, string, string) {
	index := strings.Index(s, Separator)
	if index == -1 {
		return -1, "", ""
	}
	return utf8.RuneCountInString(s[:index]), s[:index], s[index+len(Separator):]
}

// FindFirstDifference reports where two strings diverge. When the strings
// differ at some rune position it returns that position and the two
// differing characters. When one string is a prefix of the other it returns
// the length of the shorter one and the remaining suffixes (one of them
// empty). Identical strings yield (-1, "", "").
func FindFirstDifference(a, b string) (int, string, string) {
	runesA := []rune(a)
	runesB := []rune(b)

	shortest := min(len(runesA), len(runesB))
	for i := 0; i < shortest; i++ {
		if runesA[i] != runesB[i] {
			return i, string(runesA[i]), string(runesB[i])
		}
	}

	if len(runesA) == len(runesB) {
		return -1, "", ""
	}
	return shortest, string(runesA[shortest:]), string(runesB[shortest:])
}

// TransformConceptID converts a camel-case legacy identifier into the
// upper-case, underscore-separated convention of the SDMX glossary:
//
//	TransformConceptID("refArea")   == "REF_AREA"
//	TransformConceptID("ConceptID") == "CONCEPT_ID"
//
// An underscore starts a new word at each lower-to-upper transition and
// before the last capital of an acronym that is followed by a lowercase
// letter ("HTTPServer" becomes "HTTP_SERVER").
func TransformConceptID(id string) string {
	runes := []rune(id)

	var builder strings.Builder
	builder.Grow(len(id) + 4)

	for i, r := range runes {
		if i > 0 && isASCIIUpper(r) {
			previous := runes[i-1]
			nextIsLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if (!isASCIIUpper(previous) && previous != '_') || (isASCIIUpper(previous) && nextIsLower) {
				builder.WriteByte('_')
			}
		}
		builder.WriteRune(r)
	}

	return strings.ToUpper(builder.String())
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
