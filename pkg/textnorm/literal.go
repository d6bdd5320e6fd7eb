package textnorm

import "strings"

// LanguageTag is attached to every literal emitted for the glossary.
const LanguageTag = "en"

// QuoteLiteral renders value as an English Turtle literal. Values containing
// a double quote are wrapped in triple quotes.
func QuoteLiteral(value string) string {
	value = strings.TrimSpace(value)
	if strings.Contains(value, `"`) {
		return `"""` + value + `"""@` + LanguageTag
	}
	return `"` + value + `"@` + LanguageTag
}

// FormatLiteral renders an indented predicate-object line for a literal value:
//
//	FormatLiteral("Example Concept", "rdfs:label") == `    rdfs:label "Example Concept"@en`
func FormatLiteral(value, predicate string) string {
	return "    " + predicate + " " + QuoteLiteral(value)
}
