// Package output renders the files produced by a glossary run: the SKOS
// model in Turtle, the tuning and comment files, the codelist CSV and the
// report of concepts left without a legacy counterpart.
package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/coolbeans/glossgen/pkg/glossary"
	"github.com/coolbeans/glossgen/pkg/store"
)

// Model describes the concept scheme written at the top of the document.
type Model struct {
	Scheme          glossary.Scheme
	Namespace       string
	LegacyNamespace string
	Documentation   string
	SchemeLabel     string
	SchemeComment   string
	CreatorName     string
	CreatorHomepage string
	Issued          time.Time
}

// TurtleWriter renders a run as a Turtle document.
type TurtleWriter struct {
	model      Model
	serializer *store.TurtleSerializer
}

// NewTurtleWriter returns a writer for the given model.
func NewTurtleWriter(model Model) *TurtleWriter {
	model.LegacyNamespace = model.legacyNamespace()
	return &TurtleWriter{
		model: model,
		serializer: store.NewTurtleSerializer(
			store.WithPrefix(store.PrefixSDMXConcept, model.LegacyNamespace),
			store.WithPrefix(model.Scheme.ConceptPrefix(), model.Namespace),
		),
	}
}

// Render returns the complete document: prefixes, the concept scheme, one
// block per concept and a hasTopConcept statement for every concept
// without a broader concept.
func (w *TurtleWriter) Render(result *glossary.RunResult) string {
	var builder strings.Builder

	w.serializer.WritePrefixDeclarations(&builder)
	w.writeScheme(&builder)

	for _, concept := range result.Concepts {
		fmt.Fprintf(&builder, "\n# %s\n", concept.Record.ID)
		writeBlock(&builder, concept.Lines())

		if concept.IsTopConcept() {
			fmt.Fprintf(&builder, "\n%s %s %s .\n", w.model.Scheme.SchemeTerm(), store.TermHasTopConcept, concept.Subject)
		}
	}

	return builder.String()
}

func (w *TurtleWriter) writeScheme(builder *strings.Builder) {
	model := w.model
	issued := model.Issued
	if issued.IsZero() {
		issued = time.Now()
	}

	fmt.Fprintf(builder, "%s %s %s ;\n", model.Scheme.SchemeTerm(), store.TermType, store.TermConceptScheme)
	fmt.Fprintf(builder, "    %s %s ;\n", store.TermLabel, store.Literal(model.SchemeLabel, "en"))
	fmt.Fprintf(builder, "    %s <%s> ;\n", store.TermIsDefinedBy, model.Documentation)
	fmt.Fprintf(builder, "    dcterms:replaces <%s> ;\n", model.LegacyNamespace)
	fmt.Fprintf(builder, "    %s %s ;\n", store.TermComment, store.Literal(model.SchemeComment, "en"))
	builder.WriteString("    dcterms:creator [\n")
	builder.WriteString("        a foaf:Organization ;\n")
	fmt.Fprintf(builder, "        foaf:name %s ;\n", store.Literal(model.CreatorName, ""))
	fmt.Fprintf(builder, "        foaf:homepage <%s>\n", model.CreatorHomepage)
	builder.WriteString("    ] ;\n")
	fmt.Fprintf(builder, "    dcterms:issued %s^^xsd:date .\n", store.Literal(issued.Format(time.DateOnly), ""))
}

// RenderTuning lists the concepts that received broader relations, numbered
// from 1, each followed by its statements. It returns the text and the
// number of concepts listed.
func RenderTuning(result *glossary.RunResult) (string, int) {
	var builder strings.Builder
	listed := 0

	for _, concept := range result.Concepts {
		if concept.BroaderCount == 0 {
			continue
		}
		listed++
		fmt.Fprintf(&builder, "\n# %d. %s  %s - %d\n", listed, concept.Record.ID, store.TermBroader, concept.BroaderCount)
		writeBlock(&builder, concept.Lines())
	}

	return builder.String(), listed
}

// RenderComments returns the comment file: the id, label, definition and
// context lines of every concept, for translation.
func RenderComments(result *glossary.RunResult) string {
	var builder strings.Builder

	for _, concept := range result.Concepts {
		builder.WriteString("\n")
		writeBlock(&builder, concept.Texts)
	}

	return builder.String()
}

func writeBlock(builder *strings.Builder, lines []string) {
	builder.WriteString(strings.Join(lines, " ;\n"))
	builder.WriteString(" .\n")
}
