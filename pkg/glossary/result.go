package glossary

import (
	"github.com/coolbeans/glossgen/pkg/store"
)

// ConceptResult is everything produced for one concept.
type ConceptResult struct {
	Record  ConceptRecord
	Subject string
	// Statements holds the intrinsic statements followed by one statement
	// per relation, in emission order. The first is always the type
	// assertion.
	Statements   []Statement
	Relations    []Relation
	Texts        []string
	BroaderCount int
	Diagnostics  []Diagnostic
}

// Lines renders the statements as Turtle lines. The first line carries the
// subject, the others are indented continuations; a writer joins them with
// " ;\n" and ends the block with " .".
func (r ConceptResult) Lines() []string {
	lines := make([]string, 0, len(r.Statements))
	for i, statement := range r.Statements {
		if i == 0 {
			lines = append(lines, r.Subject+" "+statement.Predicate+" "+statement.Object)
			continue
		}
		lines = append(lines, statement.Line())
	}
	return lines
}

// Triples returns the statements as triples about the concept subject.
func (r ConceptResult) Triples() []store.Triple {
	triples := make([]store.Triple, 0, len(r.Statements))
	for _, statement := range r.Statements {
		triples = append(triples, store.NewTriple(r.Subject, statement.Predicate, statement.Object))
	}
	return triples
}

// IsTopConcept reports whether the concept has no broader concept.
func (r ConceptResult) IsTopConcept() bool {
	return r.BroaderCount == 0
}

// HasAlignment reports whether the concept was matched to the legacy model.
func (r ConceptResult) HasAlignment() bool {
	for _, relation := range r.Relations {
		if relation.Kind.IsAlignment() {
			return true
		}
	}
	return false
}

// RelationsOf returns the relations of the given kind.
func (r ConceptResult) RelationsOf(kind Kind) []Relation {
	var relations []Relation
	for _, relation := range r.Relations {
		if relation.Kind == kind {
			relations = append(relations, relation)
		}
	}
	return relations
}

// RunResult aggregates the per-concept results of a run in document order.
type RunResult struct {
	Concepts  []ConceptResult
	Codelists []CodelistAssociation
	// BroaderConcepts counts the concepts with at least one broader
	// relation, BroaderRelations the broader relations themselves.
	BroaderConcepts  int
	BroaderRelations int
	// Skipped counts concepts without an id.
	Skipped int
}

func (r *RunResult) add(result ConceptResult) {
	r.Concepts = append(r.Concepts, result)
	if codelist, ok := result.Record.Codelist(); ok {
		r.Codelists = append(r.Codelists, codelist)
	}
	if result.BroaderCount > 0 {
		r.BroaderConcepts++
	}
	r.BroaderRelations += result.BroaderCount
}

// Concept returns the result of the concept with the given id.
func (r *RunResult) Concept(id string) (ConceptResult, bool) {
	for _, result := range r.Concepts {
		if result.Record.ID == id {
			return result, true
		}
	}
	return ConceptResult{}, false
}

// Diagnostics returns the diagnostics of all concepts in document order.
func (r *RunResult) Diagnostics() []Diagnostic {
	var diagnostics []Diagnostic
	for _, result := range r.Concepts {
		diagnostics = append(diagnostics, result.Diagnostics...)
	}
	return diagnostics
}
