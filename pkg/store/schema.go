// Package store provides RDF triple storage, Turtle reading and Turtle
// serialization for the glossary and the legacy concept model.
package store

// Namespace URIs used by the glossary ontology.
const (
	// NamespaceRDF is the standard RDF namespace.
	NamespaceRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"

	// NamespaceRDFS is the RDF Schema namespace.
	NamespaceRDFS = "http://www.w3.org/2000/01/rdf-schema#"

	// NamespaceXSD is the XML Schema namespace for datatypes.
	NamespaceXSD = "http://www.w3.org/2001/XMLSchema#"

	// NamespaceDCTerms is the Dublin Core terms namespace.
	NamespaceDCTerms = "http://purl.org/dc/terms/"

	// NamespaceFOAF is the Friend of a Friend namespace.
	NamespaceFOAF = "http://xmlns.com/foaf/0.1/"

	// NamespaceSKOS is the Simple Knowledge Organization System namespace.
	NamespaceSKOS = "http://www.w3.org/2004/02/skos/core#"

	// NamespaceSDMXConcept is the 2009 SDMX content-oriented guidelines
	// concept namespace (the legacy model).
	NamespaceSDMXConcept = "http://purl.org/linked-data/sdmx/2009/concept#"
)

// Prefix labels for compact URI representation.
const (
	PrefixRDF         = "rdf"
	PrefixRDFS        = "rdfs"
	PrefixXSD         = "xsd"
	PrefixDCTerms     = "dcterms"
	PrefixFOAF        = "foaf"
	PrefixSKOS        = "skos"
	PrefixSDMXConcept = "sdmx-concept"
)

// Full IRIs of the terms read from the legacy model.
const (
	RDFType     = NamespaceRDF + "type"
	RDFSLabel   = NamespaceRDFS + "label"
	RDFSComment = NamespaceRDFS + "comment"
	SKOSConcept = NamespaceSKOS + "Concept"
)

// Prefixed SKOS/RDFS terms written to the glossary.
const (
	TermType          = "a"
	TermLabel         = "rdfs:label"
	TermComment       = "rdfs:comment"
	TermIsDefinedBy   = "rdfs:isDefinedBy"
	TermConcept       = "skos:Concept"
	TermConceptScheme = "skos:ConceptScheme"
	TermDefinition    = "skos:definition"
	TermNotation      = "skos:notation"
	TermNote          = "skos:note"
	TermInScheme      = "skos:inScheme"
	TermHasTopConcept = "skos:hasTopConcept"
	TermBroader       = "skos:broader"
	TermNarrower      = "skos:narrower"
	TermRelated       = "skos:related"
	TermExactMatch    = "skos:exactMatch"
	TermCloseMatch    = "skos:closeMatch"
)
