package store

import (
	"fmt"
	"sort"
	"strings"
)

// PrefixMapping associates a short prefix label with its full namespace URI.
type PrefixMapping struct {
	Prefix    string
	Namespace string
}

// TurtleSerializer converts a TripleStore into Turtle (TTL) format.
// Subjects, predicates and objects are written in insertion order, with
// rdf:type first, so that a glossary serializes the same way on every run.
type TurtleSerializer struct {
	prefixMappings  []PrefixMapping
	prefixIndex     map[string]string // prefix -> namespace
	namespaceIndex  map[string]string // namespace -> prefix
	subjectComments bool
}

// TurtleOption is a functional option for configuring the TurtleSerializer.
type TurtleOption func(*TurtleSerializer)

// NewTurtleSerializer creates a TurtleSerializer with the glossary prefix
// declarations.
func NewTurtleSerializer(options ...TurtleOption) *TurtleSerializer {
	serializer := &TurtleSerializer{
		prefixMappings: defaultPrefixMappings(),
	}

	for _, option := range options {
		option(serializer)
	}

	serializer.rebuildIndexes()

	return serializer
}

// WithPrefix adds or overrides a prefix mapping.
func WithPrefix(prefix, namespace string) TurtleOption {
	return func(serializer *TurtleSerializer) {
		serializer.prefixMappings = setPrefix(serializer.prefixMappings, prefix, namespace)
	}
}

// setPrefix overrides the namespace of an existing prefix in place, or
// appends a new mapping.
func setPrefix(mappings []PrefixMapping, prefix, namespace string) []PrefixMapping {
	for i, mapping := range mappings {
		if mapping.Prefix == prefix {
			mappings[i].Namespace = namespace
			return mappings
		}
	}
	return append(mappings, PrefixMapping{Prefix: prefix, Namespace: namespace})
}

// WithoutDefaultPrefixes clears default prefixes so only custom ones are used.
func WithoutDefaultPrefixes() TurtleOption {
	return func(serializer *TurtleSerializer) {
		serializer.prefixMappings = nil
	}
}

// WithSubjectComments writes a "# <local name>" line before every subject.
func WithSubjectComments() TurtleOption {
	return func(serializer *TurtleSerializer) {
		serializer.subjectComments = true
	}
}

func defaultPrefixMappings() []PrefixMapping {
	return []PrefixMapping{
		{Prefix: PrefixRDF, Namespace: NamespaceRDF},
		{Prefix: PrefixRDFS, Namespace: NamespaceRDFS},
		{Prefix: PrefixXSD, Namespace: NamespaceXSD},
		{Prefix: PrefixDCTerms, Namespace: NamespaceDCTerms},
		{Prefix: PrefixFOAF, Namespace: NamespaceFOAF},
		{Prefix: PrefixSKOS, Namespace: NamespaceSKOS},
		{Prefix: PrefixSDMXConcept, Namespace: NamespaceSDMXConcept},
	}
}

func (serializer *TurtleSerializer) rebuildIndexes() {
	serializer.prefixIndex = make(map[string]string, len(serializer.prefixMappings))
	serializer.namespaceIndex = make(map[string]string, len(serializer.prefixMappings))

	for _, mapping := range serializer.prefixMappings {
		serializer.prefixIndex[mapping.Prefix] = mapping.Namespace
		serializer.namespaceIndex[mapping.Namespace] = mapping.Prefix
	}
}

// Prefixes returns the prefix mappings in declaration order.
func (serializer *TurtleSerializer) Prefixes() []PrefixMapping {
	mappings := make([]PrefixMapping, len(serializer.prefixMappings))
	copy(mappings, serializer.prefixMappings)
	return mappings
}

// Serialize converts all triples in the store to Turtle format.
func (serializer *TurtleSerializer) Serialize(store *TripleStore) string {
	var builder strings.Builder

	serializer.WritePrefixDeclarations(&builder)

	for subjectIndex, subject := range store.Subjects() {
		if subjectIndex > 0 || serializer.subjectComments {
			builder.WriteString("\n")
		}
		serializer.writeSubject(&builder, store, subject)
	}

	return builder.String()
}

// SerializeSubject renders the statements of one subject, without prefix
// declarations.
func (serializer *TurtleSerializer) SerializeSubject(store *TripleStore, subject string) string {
	var builder strings.Builder
	serializer.writeSubject(&builder, store, subject)
	return builder.String()
}

// WritePrefixDeclarations writes one @prefix line per mapping, in
// declaration order, followed by a blank line.
func (serializer *TurtleSerializer) WritePrefixDeclarations(builder *strings.Builder) {
	width := 0
	for _, mapping := range serializer.prefixMappings {
		width = max(width, len(mapping.Prefix)+1)
	}

	for _, mapping := range serializer.prefixMappings {
		fmt.Fprintf(builder, "@prefix %-*s <%s> .\n", width, mapping.Prefix+":", mapping.Namespace)
	}

	if len(serializer.prefixMappings) > 0 {
		builder.WriteString("\n")
	}
}

func (serializer *TurtleSerializer) writeSubject(builder *strings.Builder, store *TripleStore, subject string) {
	predicates, objects := groupPredicates(store, subject)
	if len(predicates) == 0 {
		return
	}

	if serializer.subjectComments {
		fmt.Fprintf(builder, "# %s\n", LocalName(subject))
	}

	serializer.writeSubjectGroup(builder, subject, predicates, objects)
}

// groupPredicates returns the predicates of subject in insertion order with
// rdf:type first, and the objects of each predicate.
func groupPredicates(store *TripleStore, subject string) ([]string, map[string][]string) {
	objects := make(map[string][]string)
	var predicates []string
	for _, triple := range store.Find(subject, "", "") {
		if _, seen := objects[triple.Predicate]; !seen {
			predicates = append(predicates, triple.Predicate)
		}
		objects[triple.Predicate] = append(objects[triple.Predicate], triple.Object)
	}
	return typeFirst(predicates), objects
}

// expandTerm resolves a prefixed name against prefixes. Full IRIs and names
// with an unknown prefix are returned unchanged.
func expandTerm(prefixes map[string]string, term string) string {
	if isFullURI(term) {
		return term
	}
	if isTypePredicate(term) {
		return RDFType
	}

	colonIndex := strings.Index(term, ":")
	if colonIndex <= 0 {
		return term
	}
	if namespace, ok := prefixes[term[:colonIndex]]; ok {
		return namespace + term[colonIndex+1:]
	}
	return term
}

func (serializer *TurtleSerializer) writeSubjectGroup(
	builder *strings.Builder,
	subject string,
	predicates []string,
	predicateObjectMap map[string][]string,
) {
	builder.WriteString(serializer.formatResource(subject))

	for predicateIndex, predicate := range predicates {
		if predicateIndex == 0 {
			builder.WriteString(" ")
		} else {
			builder.WriteString(" ;\n    ")
		}

		builder.WriteString(serializer.formatPredicate(predicate))

		for objectIndex, object := range predicateObjectMap[predicate] {
			if objectIndex > 0 {
				builder.WriteString(" ,\n        ")
			} else {
				builder.WriteString(" ")
			}
			builder.WriteString(serializer.formatObject(object))
		}
	}

	builder.WriteString(" .\n")
}

// formatResource formats a subject or predicate (always a URI or prefixed name).
func (serializer *TurtleSerializer) formatResource(value string) string {
	if isFullURI(value) {
		if compacted, ok := serializer.compactURI(value); ok {
			return compacted
		}
		return "<" + escapeIRI(value) + ">"
	}
	return value
}

// formatPredicate formats a predicate, using "a" shorthand for rdf:type.
func (serializer *TurtleSerializer) formatPredicate(predicate string) string {
	if isTypePredicate(predicate) {
		return TermType
	}
	return serializer.formatResource(predicate)
}

// formatObject formats an object which may be a URI, prefixed name, or literal.
// Quoted literals are already in Turtle form and are written unchanged.
func (serializer *TurtleSerializer) formatObject(value string) string {
	if IsLiteral(value) {
		return value
	}

	if isFullURI(value) {
		if compacted, ok := serializer.compactURI(value); ok {
			return compacted
		}
		return "<" + escapeIRI(value) + ">"
	}

	if isPrefixedName(value) {
		return value
	}

	return formatLiteral(value)
}

// compactURI replaces a full namespace URI with its prefix form.
func (serializer *TurtleSerializer) compactURI(fullURI string) (string, bool) {
	return compactIRI(serializer.namespaceIndex, fullURI)
}

// compactIRI returns the prefixed name of fullURI under the longest matching
// namespace.
func compactIRI(namespaces map[string]string, fullURI string) (string, bool) {
	bestPrefix := ""
	bestNamespace := ""
	for _, namespace := range sortedKeys(namespaces) {
		if strings.HasPrefix(fullURI, namespace) && len(namespace) > len(bestNamespace) {
			localName := fullURI[len(namespace):]
			if isValidLocalName(localName) {
				bestPrefix = namespaces[namespace]
				bestNamespace = namespace
			}
		}
	}

	if bestNamespace != "" {
		return bestPrefix + ":" + fullURI[len(bestNamespace):], true
	}
	return "", false
}

// typeFirst moves the rdf:type predicate to the front, keeping the order of
// the others.
func typeFirst(predicates []string) []string {
	ordered := make([]string, 0, len(predicates))
	for _, predicate := range predicates {
		if isTypePredicate(predicate) {
			ordered = append(ordered, predicate)
		}
	}
	for _, predicate := range predicates {
		if !isTypePredicate(predicate) {
			ordered = append(ordered, predicate)
		}
	}
	return ordered
}

func isTypePredicate(predicate string) bool {
	return predicate == TermType || predicate == RDFType || predicate == PrefixRDF+":type"
}

// isFullURI checks if a value is a full URI (starts with a scheme).
func isFullURI(value string) bool {
	return strings.HasPrefix(value, "http://") ||
		strings.HasPrefix(value, "https://") ||
		strings.HasPrefix(value, "urn:")
}

// isPrefixedName checks if a value looks like a valid Turtle prefixed name.
func isPrefixedName(value string) bool {
	colonIndex := strings.Index(value, ":")
	if colonIndex <= 0 {
		return false
	}

	prefix := value[:colonIndex]
	localName := value[colonIndex+1:]

	for _, char := range prefix {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') || (char >= '0' && char <= '9') || char == '-' || char == '_') {
			return false
		}
	}

	if localName == "" || strings.ContainsAny(localName, " \t\n\r") {
		return false
	}

	return true
}

// isValidLocalName checks if a string is a valid Turtle local name.
func isValidLocalName(localName string) bool {
	if localName == "" {
		return false
	}
	return !strings.ContainsAny(localName, " \t\n\r<>\"{}|^`\\/#")
}

// formatLiteral wraps a string value in Turtle-compliant double quotes.
func formatLiteral(value string) string {
	escaped := escapeLiteralString(value)

	if strings.Contains(value, "\n") {
		return `"""` + escaped + `"""`
	}

	return `"` + escaped + `"`
}

// escapeLiteralString escapes the characters Turtle string literals reserve.
func escapeLiteralString(value string) string {
	var builder strings.Builder
	builder.Grow(len(value) + len(value)/8)

	for _, char := range value {
		switch char {
		case '\\':
			builder.WriteString(`\\`)
		case '"':
			builder.WriteString(`\"`)
		case '\n':
			builder.WriteString(`\n`)
		case '\r':
			builder.WriteString(`\r`)
		case '\t':
			builder.WriteString(`\t`)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeIRI escapes characters not allowed in IRIs within angle brackets.
func escapeIRI(iri string) string {
	var builder strings.Builder
	builder.Grow(len(iri))

	for _, char := range iri {
		switch char {
		case '<', '>', '"', ' ', '{', '}':
			fmt.Fprintf(&builder, "\\u%04X", char)
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// sortedKeys returns the keys of a map sorted alphabetically.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
