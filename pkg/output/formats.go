package output

import (
	"fmt"
	"time"

	"github.com/coolbeans/glossgen/pkg/glossary"
	"github.com/coolbeans/glossgen/pkg/store"
)

// Graph formats accepted by RenderConceptGraph.
const (
	GraphFormatDOT  = "dot"
	GraphFormatJSON = "json"
)

// BuildGraph collects the scheme description, every concept's statements
// and the hasTopConcept statements of a run into one triple store.
// dcterms:creator holds the creator homepage and dcterms:issued a plain date
// literal, since the store has no blank nodes or typed literals.
func BuildGraph(model Model, result *glossary.RunResult) *store.TripleStore {
	scheme := model.Scheme.SchemeTerm()
	issued := model.Issued
	if issued.IsZero() {
		issued = time.Now()
	}

	graph := store.NewTripleStore()
	graph.BulkAdd([]store.Triple{
		store.NewTriple(scheme, store.TermType, store.TermConceptScheme),
		store.NewTriple(scheme, store.TermLabel, store.Literal(model.SchemeLabel, "en")),
		store.NewTriple(scheme, store.TermIsDefinedBy, model.Documentation),
		store.NewTriple(scheme, "dcterms:replaces", model.legacyNamespace()),
		store.NewTriple(scheme, store.TermComment, store.Literal(model.SchemeComment, "en")),
		store.NewTriple(scheme, "dcterms:creator", model.CreatorHomepage),
		store.NewTriple(scheme, "dcterms:issued", store.Literal(issued.Format(time.DateOnly), "")),
	})

	for _, concept := range result.Concepts {
		graph.BulkAdd(concept.Triples())
	}
	for _, concept := range result.Concepts {
		if concept.IsTopConcept() {
			_ = graph.Add(scheme, store.TermHasTopConcept, concept.Subject)
		}
	}

	return graph
}

// RenderJSONLD renders a run as compact JSON-LD, or expanded JSON-LD with
// full IRIs when expanded is set.
func RenderJSONLD(model Model, result *glossary.RunResult, expanded bool) ([]byte, error) {
	options := []store.JSONLDOption{
		store.WithJSONLDPrefix(store.PrefixSDMXConcept, model.legacyNamespace()),
		store.WithJSONLDPrefix(model.Scheme.ConceptPrefix(), model.Namespace),
	}
	if expanded {
		options = append(options, store.WithExpandedForm())
	}

	data, err := store.NewJSONLDSerializer(options...).Serialize(BuildGraph(model, result))
	if err != nil {
		return nil, fmt.Errorf("failed to render JSON-LD: %w", err)
	}
	return data, nil
}

// RenderRDFXML renders a run as RDF/XML.
func RenderRDFXML(model Model, result *glossary.RunResult) string {
	serializer := store.NewRDFXMLSerializer(
		store.WithRDFXMLPrefix(store.PrefixSDMXConcept, model.legacyNamespace()),
		store.WithRDFXMLPrefix(model.Scheme.ConceptPrefix(), model.Namespace),
	)
	return serializer.Serialize(BuildGraph(model, result))
}

// RenderConceptGraph renders the concept hierarchy and the legacy
// alignments as a Graphviz DOT or JSON graph.
func RenderConceptGraph(model Model, result *glossary.RunResult, format string) ([]byte, error) {
	export := store.ExportGraph(BuildGraph(model, result))

	switch format {
	case GraphFormatDOT:
		return []byte(export.ToDOT()), nil
	case GraphFormatJSON:
		return export.ToJSON()
	default:
		return nil, fmt.Errorf("unknown graph format %q", format)
	}
}

func (m Model) legacyNamespace() string {
	if m.LegacyNamespace == "" {
		return store.NamespaceSDMXConcept
	}
	return m.LegacyNamespace
}
