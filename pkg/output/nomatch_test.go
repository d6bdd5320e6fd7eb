package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyTurtle = `@prefix sdmx-concept: <http://purl.org/linked-data/sdmx/2009/concept#> .

# ACCURACY
sdmx-concept:accuracy a skos:Concept .

#OBS_VALUE
sdmx-concept:obsValue a skos:Concept .
   # indented lines are not comments
`

func TestExtractComments(t *testing.T) {
	comments := ExtractComments([]byte(legacyTurtle + "#   \n# trailing   \n"))

	assert.Equal(t, map[string]struct{}{
		"ACCURACY":  {},
		"OBS_VALUE": {},
		"trailing":  {},
	}, comments)
}

func TestFindNoMatches(t *testing.T) {
	run := sampleRun()
	writer := NewTurtleWriter(testModel())
	generated := writer.Render(run)

	noMatches := FindNoMatches([]byte(legacyTurtle), []byte(generated), run)

	require.Len(t, noMatches, 1, "OBS_VALUE is aligned and ACCURACY_OVERALL is not in the legacy text")
	assert.Equal(t, NoMatch{ID: "ACCURACY", Subject: "sip-concept:ACCURACY", Suggestion: "accuracy"}, noMatches[0])
}

func TestFindNoMatchesRequiresGeneratedComment(t *testing.T) {
	noMatches := FindNoMatches([]byte(legacyTurtle), nil, sampleRun())
	assert.Empty(t, noMatches)
}

func TestRenderNoMatchReport(t *testing.T) {
	run := sampleRun()
	writer := NewTurtleWriter(testModel())
	noMatches := []NoMatch{{ID: "ACCURACY", Subject: "sip-concept:ACCURACY", Suggestion: "accuracy"}}

	report := writer.RenderNoMatchReport(run, noMatches)

	assert.Equal(t, "@prefix skos:         <http://www.w3.org/2004/02/skos/core#> .\n"+
		"@prefix rdfs:         <http://www.w3.org/2000/01/rdf-schema#> .\n"+
		"@prefix sip-concept:  <https://purl.semanticip.org/linked-data/sdmx/concept/> .\n"+
		"@prefix sdmx-concept: <http://purl.org/linked-data/sdmx/2009/concept#> .\n"+
		"\n"+
		"\n# ACCURACY\n"+
		"sip-concept:ACCURACY a skos:Concept ;\n"+
		"    rdfs:label \"Accuracy\"@en ;\n"+
		"    skos:inScheme sip-concept:cog ;\n"+
		"    skos:exactMatch sdmx-concept:accuracy .\n", report)
}
