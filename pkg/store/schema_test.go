package store

import (
	"strings"
	"testing"
)

func TestNamespaces(t *testing.T) {
	namespaces := []struct {
		name string
		uri  string
	}{
		{"RDF", NamespaceRDF},
		{"RDFS", NamespaceRDFS},
		{"XSD", NamespaceXSD},
		{"DCTerms", NamespaceDCTerms},
		{"FOAF", NamespaceFOAF},
		{"SKOS", NamespaceSKOS},
		{"SDMXConcept", NamespaceSDMXConcept},
	}

	for _, ns := range namespaces {
		if !strings.HasPrefix(ns.uri, "http") {
			t.Errorf("Namespace %s should be a valid URI, got %s", ns.name, ns.uri)
		}
		if !strings.HasSuffix(ns.uri, "#") && !strings.HasSuffix(ns.uri, "/") {
			t.Errorf("Namespace %s should end with '#' or '/', got %s", ns.name, ns.uri)
		}
	}
}

func TestTermsUseDeclaredPrefixes(t *testing.T) {
	declared := make(map[string]bool)
	for _, mapping := range defaultPrefixMappings() {
		declared[mapping.Prefix] = true
	}

	terms := []string{
		TermLabel, TermComment, TermIsDefinedBy, TermConcept, TermConceptScheme,
		TermDefinition, TermNotation, TermNote, TermInScheme, TermHasTopConcept,
		TermBroader, TermNarrower, TermRelated, TermExactMatch, TermCloseMatch,
	}
	for _, term := range terms {
		prefix, _, found := strings.Cut(term, ":")
		if !found || !declared[prefix] {
			t.Errorf("Term %s does not use a default prefix", term)
		}
	}
}

func TestFullIRIs(t *testing.T) {
	if RDFType != "http://www.w3.org/1999/02/22-rdf-syntax-ns#type" {
		t.Errorf("Unexpected RDFType %s", RDFType)
	}
	if SKOSConcept != NamespaceSKOS+"Concept" {
		t.Errorf("Unexpected SKOSConcept %s", SKOSConcept)
	}
}
