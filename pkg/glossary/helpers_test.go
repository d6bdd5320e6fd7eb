package glossary

import (
	"github.com/coolbeans/glossgen/pkg/sdmx"
)

// conceptBuilder assembles sdmx.Concept fixtures.
type conceptBuilder struct {
	concept sdmx.Concept
}

func newConcept(id string) *conceptBuilder {
	return &conceptBuilder{concept: sdmx.Concept{
		ID:  id,
		URN: "urn:sdmx:org.sdmx.infomodel.conceptscheme.Concept=SDMX:CROSS_DOMAIN_CONCEPTS(2.0)." + id,
	}}
}

func (b *conceptBuilder) name(text string) *conceptBuilder {
	b.concept.Names = append(b.concept.Names, sdmx.Text{Lang: "en", Value: text})
	return b
}

func (b *conceptBuilder) description(text string) *conceptBuilder {
	b.concept.Descriptions = append(b.concept.Descriptions, sdmx.Text{Lang: "en", Value: text})
	return b
}

func (b *conceptBuilder) annotate(annotationType string, texts ...string) *conceptBuilder {
	annotation := sdmx.Annotation{Type: annotationType}
	for _, text := range texts {
		annotation.Texts = append(annotation.Texts, sdmx.Text{Lang: "en", Value: text})
	}
	b.concept.Annotations = append(b.concept.Annotations, annotation)
	return b
}

func (b *conceptBuilder) related(texts ...string) *conceptBuilder {
	return b.annotate(sdmx.AnnotationRelatedTerms, texts...)
}

func (b *conceptBuilder) build() sdmx.Concept {
	return b.concept
}

// fakeLegacyGraph is an in-memory LegacyGraph with a fixed subject order.
type fakeLegacyGraph struct {
	subjects []string
	labels   map[string]string
	comments map[string]string
}

func newFakeLegacyGraph() *fakeLegacyGraph {
	return &fakeLegacyGraph{
		labels:   make(map[string]string),
		comments: make(map[string]string),
	}
}

func (g *fakeLegacyGraph) add(localName, label, comment string) *fakeLegacyGraph {
	subject := "http://purl.org/linked-data/sdmx/2009/concept#" + localName
	g.subjects = append(g.subjects, subject)
	if label != "" {
		g.labels[subject] = label
	}
	if comment != "" {
		g.comments[subject] = comment
	}
	return g
}

func (g *fakeLegacyGraph) ConceptSubjects() []string {
	return g.subjects
}

func (g *fakeLegacyGraph) Label(subject string) (string, bool) {
	label, ok := g.labels[subject]
	return label, ok
}

func (g *fakeLegacyGraph) Comment(subject string) (string, bool) {
	comment, ok := g.comments[subject]
	return comment, ok
}

// sampleConcepts is a small glossary exercising every classification rule.
func sampleConcepts() []sdmx.Concept {
	return []sdmx.Concept{
		newConcept("ACCURACY").
			name("Accuracy").
			description("Closeness of computations or estimates to the exact or true values.").
			related("Accuracy - overall; Quality").
			build(),
		newConcept("ACCURACY_OVERALL").
			name("Accuracy - overall").
			description("Assessment of accuracy, linked to a certain data set.").
			related("Accuracy").
			build(),
		newConcept("QUALITY").
			name("Quality").
			description("The degree to which a set of inherent characteristics fulfils requirements, including accuracy.").
			build(),
		newConcept("DSD").
			name("Data structure definition").
			description("A set of structural metadata associated to a data set and a dataflow.").
			related("Data set; Dataflow").
			annotate(sdmx.AnnotationCodelistID, " CL_DSD ").
			build(),
		newConcept("DATA_SET").
			name("Data set").
			description("An organised collection of data.").
			related("Data set").
			build(),
		newConcept("DATAFLOW").
			name("Dataflow").
			description("Abstract concept of the data sets, described by a data structure definition.").
			related("Data structure definition").
			build(),
		newConcept("OBSERVATION").
			name("Observation").
			description("The value of a particular variable at a particular period.").
			related("Unknown term").
			annotate(sdmx.AnnotationCodelistID, "CL_OBS_STATUS").
			build(),
	}
}
