package store

import "fmt"

// Triple represents an RDF Subject-Predicate-Object triple.
// In the glossary domain:
//   - Subject: a concept URI or prefixed name (e.g., "sip-concept:ACCURACY")
//   - Predicate: a SKOS/RDFS property (e.g., "skos:broader", "rdfs:label")
//   - Object: another concept, or a literal encoded with Literal
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// NewTriple creates a new triple with the given components.
func NewTriple(subject, predicate, object string) Triple {
	return Triple{
		Subject:   subject,
		Predicate: predicate,
		Object:    object,
	}
}

// Equals checks if two triples have identical components.
func (t Triple) Equals(other Triple) bool {
	return t.Subject == other.Subject &&
		t.Predicate == other.Predicate &&
		t.Object == other.Object
}

// String returns a human-readable representation of the triple.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s", t.Subject, t.Predicate, t.Object)
}

// IsValid returns true if all components are non-empty.
func (t Triple) IsValid() bool {
	return t.Subject != "" && t.Predicate != "" && t.Object != ""
}
