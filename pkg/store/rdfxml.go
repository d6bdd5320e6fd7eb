package store

import (
	"fmt"
	"sort"
	"strings"
)

// RDFXMLSerializer converts a TripleStore into RDF/XML.
type RDFXMLSerializer struct {
	prefixMappings []PrefixMapping
	prefixIndex    map[string]string // prefix -> namespace
	namespaceIndex map[string]string // namespace -> prefix
}

// RDFXMLOption is a functional option for configuring the RDFXMLSerializer.
type RDFXMLOption func(*RDFXMLSerializer)

// NewRDFXMLSerializer creates an RDFXMLSerializer with standard namespace declarations.
func NewRDFXMLSerializer(options ...RDFXMLOption) *RDFXMLSerializer {
	serializer := &RDFXMLSerializer{
		prefixMappings: defaultPrefixMappings(),
	}

	for _, option := range options {
		option(serializer)
	}

	serializer.rebuildIndexes()

	return serializer
}

// WithRDFXMLPrefix adds or overrides a namespace prefix mapping.
func WithRDFXMLPrefix(prefix, namespace string) RDFXMLOption {
	return func(serializer *RDFXMLSerializer) {
		serializer.prefixMappings = setPrefix(serializer.prefixMappings, prefix, namespace)
	}
}

// WithoutRDFXMLDefaultPrefixes clears default prefixes so only custom ones are used.
func WithoutRDFXMLDefaultPrefixes() RDFXMLOption {
	return func(serializer *RDFXMLSerializer) {
		serializer.prefixMappings = nil
	}
}

func (serializer *RDFXMLSerializer) rebuildIndexes() {
	serializer.prefixIndex = make(map[string]string, len(serializer.prefixMappings))
	serializer.namespaceIndex = make(map[string]string, len(serializer.prefixMappings))

	for _, mapping := range serializer.prefixMappings {
		serializer.prefixIndex[mapping.Prefix] = mapping.Namespace
		serializer.namespaceIndex[mapping.Namespace] = mapping.Prefix
	}
}

// Serialize converts all triples in the store to RDF/XML, one
// rdf:Description per subject in insertion order.
func (serializer *RDFXMLSerializer) Serialize(store *TripleStore) string {
	var builder strings.Builder

	serializer.writeXMLHeader(&builder)

	for _, subject := range store.Subjects() {
		predicates, objects := groupPredicates(store, subject)
		serializer.writeDescription(&builder, subject, predicates, objects)
	}

	serializer.writeXMLFooter(&builder)

	return builder.String()
}

// writeXMLHeader writes the XML declaration and opening rdf:RDF element with namespace attributes.
func (serializer *RDFXMLSerializer) writeXMLHeader(builder *strings.Builder) {
	builder.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	builder.WriteString("<rdf:RDF")

	sortedPrefixes := make([]PrefixMapping, len(serializer.prefixMappings))
	copy(sortedPrefixes, serializer.prefixMappings)
	sort.Slice(sortedPrefixes, func(i, j int) bool {
		return sortedPrefixes[i].Prefix < sortedPrefixes[j].Prefix
	})

	for _, mapping := range sortedPrefixes {
		fmt.Fprintf(builder, "\n    xmlns:%s=\"%s\"", mapping.Prefix, escapeXMLAttribute(mapping.Namespace))
	}

	builder.WriteString(">\n")
}

// writeXMLFooter writes the closing rdf:RDF element.
func (serializer *RDFXMLSerializer) writeXMLFooter(builder *strings.Builder) {
	builder.WriteString("</rdf:RDF>\n")
}

// writeDescription writes an rdf:Description block for a single subject.
func (serializer *RDFXMLSerializer) writeDescription(
	builder *strings.Builder,
	subject string,
	predicates []string,
	objects map[string][]string,
) {
	builder.WriteString("\n")
	fmt.Fprintf(builder, "  <rdf:Description rdf:about=\"%s\">\n", escapeXMLAttribute(serializer.expand(subject)))

	for _, predicate := range predicates {
		for _, object := range objects[predicate] {
			serializer.writeProperty(builder, predicate, object)
		}
	}

	builder.WriteString("  </rdf:Description>\n")
}

// writeProperty writes a single predicate-object pair as an XML element.
// Literals keep their language tag as xml:lang.
func (serializer *RDFXMLSerializer) writeProperty(builder *strings.Builder, predicate string, object string) {
	elementName := serializer.predicateToElementName(predicate)

	value, lang, isLiteral := LiteralValue(object)
	switch {
	case !isLiteral:
		fmt.Fprintf(builder, "    <%s rdf:resource=\"%s\"/>\n", elementName, escapeXMLAttribute(serializer.expand(object)))
	case lang != "":
		fmt.Fprintf(builder, "    <%s xml:lang=\"%s\">%s</%s>\n", elementName, escapeXMLAttribute(lang), escapeXMLText(value), elementName)
	default:
		fmt.Fprintf(builder, "    <%s>%s</%s>\n", elementName, escapeXMLText(value), elementName)
	}
}

// predicateToElementName converts a predicate URI or prefixed name to an XML element name.
// Prefixed names like "skos:broader" become the element name directly.
// Full URIs are split into namespace + local name to produce a prefixed element name.
func (serializer *RDFXMLSerializer) predicateToElementName(predicate string) string {
	if isTypePredicate(predicate) {
		return PrefixRDF + ":type"
	}
	if isFullURI(predicate) {
		if prefix, localName, ok := serializer.splitPrefixedName(predicate); ok {
			return prefix + ":" + localName
		}
		return predicate
	}
	return predicate
}

func (serializer *RDFXMLSerializer) expand(value string) string {
	return expandTerm(serializer.prefixIndex, value)
}

// splitPrefixedName splits a full URI into a registered prefix and local name.
// Returns the prefix, local name, and whether a matching namespace was found.
func (serializer *RDFXMLSerializer) splitPrefixedName(fullURI string) (string, string, bool) {
	bestPrefix := ""
	bestNamespace := ""

	for _, namespace := range sortedKeys(serializer.namespaceIndex) {
		if strings.HasPrefix(fullURI, namespace) && len(namespace) > len(bestNamespace) {
			localName := fullURI[len(namespace):]
			if localName != "" {
				bestPrefix = serializer.namespaceIndex[namespace]
				bestNamespace = namespace
			}
		}
	}

	if bestNamespace != "" {
		return bestPrefix, fullURI[len(bestNamespace):], true
	}

	return "", "", false
}

// escapeXMLText escapes characters that are special in XML text content.
func escapeXMLText(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}

// escapeXMLAttribute escapes characters that are special in XML attribute values.
func escapeXMLAttribute(text string) string {
	var builder strings.Builder
	builder.Grow(len(text) + len(text)/8)

	for _, char := range text {
		switch char {
		case '&':
			builder.WriteString("&amp;")
		case '<':
			builder.WriteString("&lt;")
		case '>':
			builder.WriteString("&gt;")
		case '"':
			builder.WriteString("&quot;")
		default:
			builder.WriteRune(char)
		}
	}

	return builder.String()
}
