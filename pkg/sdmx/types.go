// Package sdmx reads concepts from SDMX-ML structure messages.
package sdmx

import "strings"

// Namespaces of SDMX-ML 3.0 structure messages.
const (
	NamespaceStructure = "http://www.sdmx.org/resources/sdmxml/schemas/v3_0/structure"
	NamespaceCommon    = "http://www.sdmx.org/resources/sdmxml/schemas/v3_0/common"
)

// Annotation types carried by glossary concepts.
const (
	AnnotationContext                   = "CONTEXT"
	AnnotationRecommendedRepresentation = "RECOMMENDED_REPRESENTATION"
	AnnotationCodelistID                = "CODELIST_ID"
	AnnotationRelatedTerms              = "RELATED_TERMS"
)

// Document is the list of concepts of a structure message, in document order.
type Document struct {
	Concepts []Concept
}

// Concept is one str:Concept element.
type Concept struct {
	ID           string       `xml:"id,attr"`
	URN          string       `xml:"urn,attr"`
	Names        []Text       `xml:"Name"`
	Descriptions []Text       `xml:"Description"`
	Annotations  []Annotation `xml:"Annotations>Annotation"`
}

// Text is a localised text node.
type Text struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

// Annotation is a typed free-text annotation.
type Annotation struct {
	Type  string `xml:"AnnotationType"`
	Texts []Text `xml:"AnnotationText"`
}

// Name returns the text of the first Name element and whether the concept
// has one at all.
func (c Concept) Name() (string, bool) {
	if len(c.Names) == 0 {
		return "", false
	}
	return c.Names[0].Value, true
}

// Description returns the text of the first Description element and whether
// the concept has one at all.
func (c Concept) Description() (string, bool) {
	if len(c.Descriptions) == 0 {
		return "", false
	}
	return c.Descriptions[0].Value, true
}

// AnnotationText returns the first text of the first annotation of the
// given type.
func (c Concept) AnnotationText(annotationType string) (string, bool) {
	for _, annotation := range c.Annotations {
		if annotation.is(annotationType) && len(annotation.Texts) > 0 {
			return annotation.Texts[0].Value, true
		}
	}
	return "", false
}

// AnnotationTexts returns every text of every annotation of the given type.
func (c Concept) AnnotationTexts(annotationType string) []string {
	var texts []string
	for _, annotation := range c.Annotations {
		if !annotation.is(annotationType) {
			continue
		}
		for _, text := range annotation.Texts {
			texts = append(texts, text.Value)
		}
	}
	return texts
}

func (a Annotation) is(annotationType string) bool {
	return strings.TrimSpace(a.Type) == annotationType
}
