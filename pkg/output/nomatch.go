package output

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/coolbeans/glossgen/pkg/glossary"
	"github.com/coolbeans/glossgen/pkg/store"
)

var commentPattern = regexp.MustCompile(`^#\s*(.+)`)

// NoMatch is a concept that exists under the same name in the legacy model
// but was neither exactly nor closely matched to it.
type NoMatch struct {
	ID      string
	Subject string
	// Suggestion is the legacy local name proposed for a manual exactMatch.
	Suggestion string
}

// ExtractComments returns the text of every line comment ("# text") that
// starts a line.
func ExtractComments(text []byte) map[string]struct{} {
	comments := make(map[string]struct{})

	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		match := commentPattern.FindStringSubmatch(scanner.Text())
		if match == nil {
			continue
		}
		if comment := strings.TrimSpace(match[1]); comment != "" {
			comments[comment] = struct{}{}
		}
	}

	return comments
}

// FindNoMatches compares the comments of the legacy Turtle text with those
// of the generated document and returns, in document order, the concepts
// named in both that carry no alignment.
func FindNoMatches(legacyTurtle, generatedTurtle []byte, result *glossary.RunResult) []NoMatch {
	legacyComments := ExtractComments(legacyTurtle)
	generatedComments := ExtractComments(generatedTurtle)

	var noMatches []NoMatch
	for _, concept := range result.Concepts {
		id := concept.Record.ID
		if _, ok := legacyComments[id]; !ok {
			continue
		}
		if _, ok := generatedComments[id]; !ok {
			continue
		}
		if concept.HasAlignment() {
			continue
		}
		noMatches = append(noMatches, NoMatch{
			ID:         id,
			Subject:    concept.Subject,
			Suggestion: strings.ReplaceAll(strings.ToLower(id), " ", ""),
		})
	}

	return noMatches
}

// RenderNoMatchReport writes the statements of each unmatched concept
// followed by the suggested exactMatch.
func (w *TurtleWriter) RenderNoMatchReport(result *glossary.RunResult, noMatches []NoMatch) string {
	report := store.NewTripleStore()
	for _, noMatch := range noMatches {
		concept, ok := result.Concept(noMatch.ID)
		if !ok {
			continue
		}
		suggestion := store.NewTriple(noMatch.Subject, store.TermExactMatch, store.PrefixSDMXConcept+":"+noMatch.Suggestion)
		report.BulkAdd(append(concept.Triples(), suggestion))
	}

	serializer := store.NewTurtleSerializer(
		store.WithoutDefaultPrefixes(),
		store.WithPrefix(store.PrefixSKOS, store.NamespaceSKOS),
		store.WithPrefix(store.PrefixRDFS, store.NamespaceRDFS),
		store.WithPrefix(w.model.Scheme.ConceptPrefix(), w.model.Namespace),
		store.WithPrefix(store.PrefixSDMXConcept, w.model.LegacyNamespace),
		store.WithSubjectComments(),
	)
	return serializer.Serialize(report)
}
