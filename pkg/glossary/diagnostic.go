package glossary

import "fmt"

// DiagnosticKind classifies a non-fatal finding of the classifier.
type DiagnosticKind int

const (
	// LookupFailure means a related term names no concept of the glossary.
	LookupFailure DiagnosticKind = iota
	// SelfReference means a concept lists itself as a related term.
	SelfReference
	// BothApplicable means broader and narrower both held for a pair.
	BothApplicable
)

func (k DiagnosticKind) String() string {
	switch k {
	case LookupFailure:
		return "lookup_failure"
	case SelfReference:
		return "self_reference"
	case BothApplicable:
		return "both_applicable"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

// Diagnostic records a related term that was skipped or needs review.
// The relation is omitted, the run goes on.
type Diagnostic struct {
	Kind      DiagnosticKind
	ConceptID string
	// Term is the normalized related label for a LookupFailure and the
	// target concept id otherwise.
	Term string
}

// IsWarning reports whether the diagnostic led to an omitted relation.
func (d Diagnostic) IsWarning() bool {
	return d.Kind != BothApplicable
}

// Message returns a human-readable description.
func (d Diagnostic) Message() string {
	switch d.Kind {
	case LookupFailure:
		return fmt.Sprintf("related concept %q not found for %s", d.Term, d.ConceptID)
	case SelfReference:
		return fmt.Sprintf("circular reference in related term %s", d.Term)
	case BothApplicable:
		return fmt.Sprintf("both skos:broader and skos:narrower are applicable for %s and %s", d.ConceptID, d.Term)
	default:
		return fmt.Sprintf("%s: %s -> %s", d.Kind, d.ConceptID, d.Term)
	}
}

func (d Diagnostic) String() string {
	return d.Message()
}
