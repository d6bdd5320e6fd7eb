package store

// LegacyGraph is a read-only view of the 2009 concept model: the subjects
// typed skos:Concept together with their rdfs:label and rdfs:comment.
type LegacyGraph struct {
	store *TripleStore
}

// NewLegacyGraph wraps a store loaded with LoadTurtle.
func NewLegacyGraph(ts *TripleStore) *LegacyGraph {
	return &LegacyGraph{store: ts}
}

// ConceptSubjects returns the IRIs of every skos:Concept in load order.
func (g *LegacyGraph) ConceptSubjects() []string {
	return g.store.SubjectsWith(RDFType, SKOSConcept)
}

// Label returns the first literal rdfs:label of subject.
func (g *LegacyGraph) Label(subject string) (string, bool) {
	return g.firstLiteral(subject, RDFSLabel)
}

// Comment returns the first literal rdfs:comment of subject.
func (g *LegacyGraph) Comment(subject string) (string, bool) {
	return g.firstLiteral(subject, RDFSComment)
}

// Len returns the number of skos:Concept subjects.
func (g *LegacyGraph) Len() int {
	return len(g.store.SubjectsWith(RDFType, SKOSConcept))
}

func (g *LegacyGraph) firstLiteral(subject, predicate string) (string, bool) {
	for _, object := range g.store.Objects(subject, predicate) {
		if value, _, ok := LiteralValue(object); ok {
			return value, true
		}
	}
	return "", false
}
