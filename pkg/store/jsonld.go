package store

import (
	"encoding/json"
)

// JSONLDContext represents a JSON-LD @context document.
type JSONLDContext map[string]interface{}

// jsonldTerm maps a short JSON-LD property name to a prefixed term.
// Reference terms hold IRIs and are declared with "@type": "@id".
type jsonldTerm struct {
	Name      string
	Term      string
	Reference bool
}

var jsonldTerms = []jsonldTerm{
	{Name: "label", Term: TermLabel},
	{Name: "comment", Term: TermComment},
	{Name: "isDefinedBy", Term: TermIsDefinedBy, Reference: true},
	{Name: "definition", Term: TermDefinition},
	{Name: "notation", Term: TermNotation},
	{Name: "note", Term: TermNote},
	{Name: "inScheme", Term: TermInScheme, Reference: true},
	{Name: "hasTopConcept", Term: TermHasTopConcept, Reference: true},
	{Name: "broader", Term: TermBroader, Reference: true},
	{Name: "narrower", Term: TermNarrower, Reference: true},
	{Name: "related", Term: TermRelated, Reference: true},
	{Name: "exactMatch", Term: TermExactMatch, Reference: true},
	{Name: "closeMatch", Term: TermCloseMatch, Reference: true},
}

// JSONLDSerializer converts a TripleStore into JSON-LD. Nodes follow the
// insertion order of their subjects.
type JSONLDSerializer struct {
	prefixMappings []PrefixMapping
	prefixIndex    map[string]string // prefix -> namespace
	namespaceIndex map[string]string // namespace -> prefix
	termIndex      map[string]jsonldTerm
	compactForm    bool
}

// JSONLDOption is a functional option for configuring the JSONLDSerializer.
type JSONLDOption func(*JSONLDSerializer)

// NewJSONLDSerializer creates a JSONLDSerializer with the glossary prefixes,
// producing compact JSON-LD by default.
func NewJSONLDSerializer(options ...JSONLDOption) *JSONLDSerializer {
	serializer := &JSONLDSerializer{
		prefixMappings: defaultPrefixMappings(),
		compactForm:    true,
	}

	for _, option := range options {
		option(serializer)
	}

	serializer.rebuildIndexes()

	return serializer
}

// WithJSONLDPrefix adds or overrides a prefix mapping.
func WithJSONLDPrefix(prefix, namespace string) JSONLDOption {
	return func(serializer *JSONLDSerializer) {
		serializer.prefixMappings = setPrefix(serializer.prefixMappings, prefix, namespace)
	}
}

// WithExpandedForm configures the serializer to output expanded JSON-LD
// (full IRIs, no context).
func WithExpandedForm() JSONLDOption {
	return func(serializer *JSONLDSerializer) {
		serializer.compactForm = false
	}
}

func (serializer *JSONLDSerializer) rebuildIndexes() {
	serializer.prefixIndex = make(map[string]string, len(serializer.prefixMappings))
	serializer.namespaceIndex = make(map[string]string, len(serializer.prefixMappings))

	for _, mapping := range serializer.prefixMappings {
		serializer.prefixIndex[mapping.Prefix] = mapping.Namespace
		serializer.namespaceIndex[mapping.Namespace] = mapping.Prefix
	}

	serializer.termIndex = make(map[string]jsonldTerm, len(jsonldTerms))
	for _, term := range jsonldTerms {
		serializer.termIndex[term.Term] = term
	}
}

// BuildContext creates the @context document: one entry per prefix and one
// per SKOS and RDFS property name.
func (serializer *JSONLDSerializer) BuildContext() JSONLDContext {
	context := make(JSONLDContext)

	for _, mapping := range serializer.prefixMappings {
		context[mapping.Prefix] = mapping.Namespace
	}

	for _, term := range jsonldTerms {
		if term.Reference {
			context[term.Name] = map[string]string{"@id": term.Term, "@type": "@id"}
			continue
		}
		context[term.Name] = map[string]string{"@id": term.Term}
	}

	return context
}

// JSONLDDocument represents a complete compact JSON-LD document.
type JSONLDDocument struct {
	Context interface{}              `json:"@context,omitempty"`
	Graph   []map[string]interface{} `json:"@graph"`
}

// Serialize converts all triples in the store to JSON-LD.
func (serializer *JSONLDSerializer) Serialize(store *TripleStore) ([]byte, error) {
	subjects := store.Subjects()
	graph := make([]map[string]interface{}, 0, len(subjects))

	for _, subject := range subjects {
		predicates, objects := groupPredicates(store, subject)
		if serializer.compactForm {
			graph = append(graph, serializer.buildNode(subject, predicates, objects))
		} else {
			graph = append(graph, serializer.buildExpandedNode(subject, predicates, objects))
		}
	}

	if !serializer.compactForm {
		return json.MarshalIndent(graph, "", "  ")
	}

	return json.MarshalIndent(JSONLDDocument{
		Context: serializer.BuildContext(),
		Graph:   graph,
	}, "", "  ")
}

// buildNode creates a compact node. Single values are written bare,
// repeated ones as arrays.
func (serializer *JSONLDSerializer) buildNode(subject string, predicates []string, objects map[string][]string) map[string]interface{} {
	node := map[string]interface{}{"@id": serializer.compact(subject)}

	for _, predicate := range predicates {
		values := make([]interface{}, 0, len(objects[predicate]))

		if isTypePredicate(predicate) {
			for _, object := range objects[predicate] {
				values = append(values, serializer.compact(object))
			}
			node["@type"] = unwrapSingle(values)
			continue
		}

		key := serializer.compact(predicate)
		term, named := serializer.termIndex[key]
		if named {
			key = term.Name
		}

		for _, object := range objects[predicate] {
			switch {
			case IsLiteral(object):
				values = append(values, compactLiteral(object))
			case named && term.Reference:
				values = append(values, serializer.compact(object))
			default:
				values = append(values, map[string]string{"@id": serializer.compact(object)})
			}
		}
		node[key] = unwrapSingle(values)
	}

	return node
}

// buildExpandedNode creates a node with full IRIs and every value in an
// array.
func (serializer *JSONLDSerializer) buildExpandedNode(subject string, predicates []string, objects map[string][]string) map[string]interface{} {
	node := map[string]interface{}{"@id": serializer.expand(subject)}

	for _, predicate := range predicates {
		if isTypePredicate(predicate) {
			types := make([]string, 0, len(objects[predicate]))
			for _, object := range objects[predicate] {
				types = append(types, serializer.expand(object))
			}
			node["@type"] = types
			continue
		}

		values := make([]map[string]string, 0, len(objects[predicate]))
		for _, object := range objects[predicate] {
			if IsLiteral(object) {
				values = append(values, expandedLiteral(object))
				continue
			}
			values = append(values, map[string]string{"@id": serializer.expand(object)})
		}
		node[serializer.expand(predicate)] = values
	}

	return node
}

// GetContextOnly returns just the @context portion as JSON.
func (serializer *JSONLDSerializer) GetContextOnly() ([]byte, error) {
	return json.MarshalIndent(serializer.BuildContext(), "", "  ")
}

func (serializer *JSONLDSerializer) compact(term string) string {
	if !isFullURI(term) {
		return term
	}
	if compacted, ok := compactIRI(serializer.namespaceIndex, term); ok {
		return compacted
	}
	return term
}

func (serializer *JSONLDSerializer) expand(term string) string {
	return expandTerm(serializer.prefixIndex, term)
}

// compactLiteral writes untagged literals as plain strings and tagged ones
// as value objects.
func compactLiteral(term string) interface{} {
	value, lang, _ := LiteralValue(term)
	if lang == "" {
		return value
	}
	return map[string]string{"@value": value, "@language": lang}
}

func expandedLiteral(term string) map[string]string {
	value, lang, _ := LiteralValue(term)
	if lang == "" {
		return map[string]string{"@value": value}
	}
	return map[string]string{"@value": value, "@language": lang}
}

func unwrapSingle(values []interface{}) interface{} {
	if len(values) == 1 {
		return values[0]
	}
	return values
}
