package store

import (
	"errors"
	"strings"
	"testing"
)

const legacyTurtle = `@prefix rdf:  <http://www.w3.org/1999/02/22-rdf-syntax-ns#> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .
@prefix skos: <http://www.w3.org/2004/02/skos/core#> .
@prefix sdmx-concept: <http://purl.org/linked-data/sdmx/2009/concept#> .

# obsValue
sdmx-concept:obsValue a skos:Concept ;
    rdfs:label "Observation Value"@en ;
    rdfs:label "Valeur de l'observation"@fr ;
    rdfs:comment "The value of a particular variable at a particular period."@en .

# refArea
sdmx-concept:refArea a skos:Concept ;
    rdfs:label "Reference Area"@en .

# dataset
sdmx-concept:dataSet a skos:ConceptScheme ;
    rdfs:label "Data set"@en .

sdmx-concept:unlabelled a skos:Concept .
`

func TestLoadTurtle(t *testing.T) {
	store, err := LoadTurtle(strings.NewReader(legacyTurtle), "")
	if err != nil {
		t.Fatalf("LoadTurtle failed: %v", err)
	}

	obsValue := NamespaceSDMXConcept + "obsValue"
	if !store.Exists(obsValue, RDFType, SKOSConcept) {
		t.Error("Expected obsValue to be typed skos:Concept with full IRIs")
	}

	labels := store.Objects(obsValue, RDFSLabel)
	if len(labels) != 1 || labels[0] != `"Observation Value"@en` {
		t.Errorf("Expected only the English label, got %v", labels)
	}

	if store.Count() != 8 {
		t.Errorf("Expected 8 triples (French label dropped), got %d", store.Count())
	}
}

func TestLoadTurtle_Invalid(t *testing.T) {
	_, err := LoadTurtle(strings.NewReader("@prefix broken <nowhere"), "")
	if !errors.Is(err, ErrTurtle) {
		t.Errorf("Expected ErrTurtle, got %v", err)
	}
}

func TestLegacyGraph(t *testing.T) {
	store, err := LoadTurtle(strings.NewReader(legacyTurtle), "")
	if err != nil {
		t.Fatalf("LoadTurtle failed: %v", err)
	}
	graph := NewLegacyGraph(store)

	subjects := graph.ConceptSubjects()
	want := []string{
		NamespaceSDMXConcept + "obsValue",
		NamespaceSDMXConcept + "refArea",
		NamespaceSDMXConcept + "unlabelled",
	}
	if strings.Join(subjects, " ") != strings.Join(want, " ") {
		t.Errorf("ConceptSubjects() = %v, want %v", subjects, want)
	}
	if graph.Len() != 3 {
		t.Errorf("Len() = %d, want 3", graph.Len())
	}

	label, ok := graph.Label(want[0])
	if !ok || label != "Observation Value" {
		t.Errorf("Label() = (%q, %v)", label, ok)
	}

	comment, ok := graph.Comment(want[0])
	if !ok || comment != "The value of a particular variable at a particular period." {
		t.Errorf("Comment() = (%q, %v)", comment, ok)
	}

	if _, ok := graph.Comment(want[1]); ok {
		t.Error("refArea has no comment")
	}
	if _, ok := graph.Label(want[2]); ok {
		t.Error("unlabelled has no label")
	}
}
