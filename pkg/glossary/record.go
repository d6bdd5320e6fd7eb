package glossary

import (
	"strings"

	"github.com/coolbeans/glossgen/pkg/sdmx"
	"github.com/coolbeans/glossgen/pkg/store"
	"github.com/coolbeans/glossgen/pkg/textnorm"
)

// ConceptRecord holds the attributes of one glossary concept. HasLabel and
// HasDescription report whether the Name and Description elements exist;
// an element that exists with empty text is still present.
type ConceptRecord struct {
	ID                        string
	URN                       string
	Label                     string
	HasLabel                  bool
	Description               string
	HasDescription            bool
	RelatedTermRefs           []string
	CodelistID                string
	ContextText               string
	RecommendedRepresentation string
}

// CodelistAssociation links a codelist to the concept it represents.
type CodelistAssociation struct {
	CodelistID string
	ConceptID  string
}

// Codelist returns the codelist association of the record, if any.
func (r ConceptRecord) Codelist() (CodelistAssociation, bool) {
	if r.CodelistID == "" {
		return CodelistAssociation{}, false
	}
	return CodelistAssociation{CodelistID: strings.TrimSpace(r.CodelistID), ConceptID: r.ID}, true
}

// BuildRecord extracts the record of a concept together with its intrinsic
// statements and the text lines of the comment file.
//
// Statements come in a fixed order: type, label, definition, notation,
// scheme membership, recommended representation note, codelist note and,
// when includeContext is set, the context comment. The text lines are the
// concept id followed by the label, definition and context lines.
func BuildRecord(concept sdmx.Concept, scheme Scheme, includeContext bool) (ConceptRecord, []Statement, []string) {
	record := ConceptRecord{
		ID:              concept.ID,
		URN:             concept.URN,
		RelatedTermRefs: concept.AnnotationTexts(sdmx.AnnotationRelatedTerms),
	}
	record.Label, record.HasLabel = concept.Name()
	record.Description, record.HasDescription = concept.Description()
	record.CodelistID, _ = concept.AnnotationText(sdmx.AnnotationCodelistID)
	record.RecommendedRepresentation, _ = concept.AnnotationText(sdmx.AnnotationRecommendedRepresentation)
	if includeContext {
		record.ContextText, _ = concept.AnnotationText(sdmx.AnnotationContext)
	}

	statements := []Statement{{Predicate: store.TermType, Object: store.TermConcept}}
	texts := []string{record.ID}

	literal := func(predicate, value string, text bool) {
		statement := Statement{Predicate: predicate, Object: textnorm.QuoteLiteral(value)}
		statements = append(statements, statement)
		if text {
			texts = append(texts, statement.Line())
		}
	}

	if record.Label != "" {
		literal(store.TermLabel, record.Label, true)
	}
	if record.Description != "" {
		literal(store.TermDefinition, record.Description, true)
	}
	if record.URN != "" {
		statements = append(statements, Statement{Predicate: store.TermNotation, Object: store.Literal(record.URN, "")})
	}
	statements = append(statements, Statement{Predicate: store.TermInScheme, Object: scheme.SchemeTerm()})
	if record.RecommendedRepresentation != "" {
		literal(store.TermNote, "Recommended representation: "+record.RecommendedRepresentation, false)
	}
	if record.CodelistID != "" {
		literal(store.TermNote, "Codelist ID: "+record.CodelistID, false)
	}
	if record.ContextText != "" {
		literal(store.TermComment, record.ContextText, true)
	}

	return record, statements, texts
}
