package store

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Objects are stored as Turtle terms: IRIs and prefixed names as-is, and
// literals in their quoted Turtle form ("value"@en, """value"""@en or
// "value"). IsLiteral tells the two apart.

// Literal encodes value as a quoted literal with an optional language tag.
func Literal(value, lang string) string {
	encoded := `"` + escapeLiteralString(value) + `"`
	if lang != "" {
		encoded += "@" + lang
	}
	return encoded
}

// IsLiteral reports whether a stored object is a quoted literal.
func IsLiteral(term string) bool {
	return strings.HasPrefix(term, `"`)
}

// LiteralValue decodes a quoted literal into its lexical value and language
// tag. Long (triple-quoted) literals are returned verbatim.
func LiteralValue(term string) (value, lang string, ok bool) {
	if !IsLiteral(term) {
		return "", "", false
	}

	if strings.HasPrefix(term, `"""`) {
		end := strings.LastIndex(term, `"""`)
		if end < 3 {
			return "", "", false
		}
		return term[3:end], languageOf(term[end+3:]), true
	}

	end := strings.LastIndex(term, `"`)
	if end < 1 {
		return "", "", false
	}
	return unescapeLiteralString(term[1:end]), languageOf(term[end+1:]), true
}

func languageOf(suffix string) string {
	if strings.HasPrefix(suffix, "@") {
		return suffix[1:]
	}
	return ""
}

// unescapeLiteralString reverses escapeLiteralString, including \u and \U
// escapes.
func unescapeLiteralString(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}

	var builder strings.Builder
	builder.Grow(len(value))

	for i := 0; i < len(value); i++ {
		char := value[i]
		if char != '\\' || i+1 == len(value) {
			builder.WriteByte(char)
			continue
		}

		i++
		switch value[i] {
		case 'n':
			builder.WriteByte('\n')
		case 'r':
			builder.WriteByte('\r')
		case 't':
			builder.WriteByte('\t')
		case 'b':
			builder.WriteByte('\b')
		case 'f':
			builder.WriteByte('\f')
		case 'u', 'U':
			width := 4
			if value[i] == 'U' {
				width = 8
			}
			if i+width < len(value) {
				if code, err := strconv.ParseUint(value[i+1:i+1+width], 16, 32); err == nil && utf8.ValidRune(rune(code)) {
					builder.WriteRune(rune(code))
					i += width
					continue
				}
			}
			builder.WriteByte('\\')
			builder.WriteByte(value[i])
		default:
			builder.WriteByte(value[i])
		}
	}

	return builder.String()
}

// LocalName returns the part of an IRI or prefixed name after its last '#',
// '/' or ':' separator, in that order of preference.
func LocalName(term string) string {
	for _, separator := range []string{"#", "/", ":"} {
		if index := strings.LastIndex(term, separator); index >= 0 {
			return term[index+1:]
		}
	}
	return term
}
