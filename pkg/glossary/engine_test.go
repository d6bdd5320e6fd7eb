package glossary

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/coolbeans/glossgen/pkg/fixes"
	"github.com/coolbeans/glossgen/pkg/sdmx"
)

func runSample(t *testing.T, options Options, logger *zap.Logger) *RunResult {
	t.Helper()
	concepts := sampleConcepts()
	engine := NewEngine(concepts, fixes.Default(), sampleLegacyGraph(), options, logger)

	result, err := engine.Run(context.Background(), concepts)
	require.NoError(t, err)
	return result
}

func TestEngineRun(t *testing.T) {
	result := runSample(t, Options{Prefix: "sip"}, nil)

	require.Len(t, result.Concepts, 7)
	assert.Equal(t, 2, result.BroaderConcepts)
	assert.Equal(t, 2, result.BroaderRelations)
	assert.Equal(t, []CodelistAssociation{
		{CodelistID: "CL_DSD", ConceptID: "DSD"},
		{CodelistID: "CL_OBS_STATUS", ConceptID: "OBSERVATION"},
	}, result.Codelists)

	overall, ok := result.Concept("ACCURACY_OVERALL")
	require.True(t, ok)
	assert.False(t, overall.IsTopConcept())
	assert.Equal(t, []string{
		"sip-concept:ACCURACY_OVERALL a skos:Concept",
		`    rdfs:label "Accuracy - overall"@en`,
		`    skos:definition "Assessment of accuracy, linked to a certain data set."@en`,
		`    skos:notation "urn:sdmx:org.sdmx.infomodel.conceptscheme.Concept=SDMX:CROSS_DOMAIN_CONCEPTS(2.0).ACCURACY_OVERALL"`,
		"    skos:inScheme sip-concept:cog",
		"    skos:broader sip-concept:ACCURACY",
	}, overall.Lines())

	observation, ok := result.Concept("OBSERVATION")
	require.True(t, ok)
	assert.True(t, observation.HasAlignment())
	assert.Equal(t, []Relation{{Kind: ExactMatch, Target: "observation"}}, observation.RelationsOf(ExactMatch))
	assert.Contains(t, observation.Lines(), "    skos:exactMatch sdmx-concept:observation")

	accuracy, _ := result.Concept("ACCURACY")
	assert.True(t, accuracy.IsTopConcept())
}

func TestEngineBroaderConceptsCountsConceptsWithBroader(t *testing.T) {
	result := runSample(t, Options{IncludeNarrower: true}, nil)

	withBroader := 0
	total := 0
	for _, concept := range result.Concepts {
		broader := len(concept.RelationsOf(Broader))
		assert.Equal(t, broader, concept.BroaderCount)
		if broader > 0 {
			withBroader++
		}
		total += broader
	}
	assert.Equal(t, withBroader, result.BroaderConcepts)
	assert.Equal(t, total, result.BroaderRelations)
}

func TestEngineNoSelfRelations(t *testing.T) {
	result := runSample(t, Options{IncludeNarrower: true}, nil)

	for _, concept := range result.Concepts {
		for _, relation := range concept.Relations {
			if relation.Kind.IsAlignment() {
				continue
			}
			assert.NotEqual(t, concept.Record.ID, relation.Target)
		}
	}
}

func TestEngineParallelMatchesSequential(t *testing.T) {
	sequential := runSample(t, Options{Prefix: "sip", IncludeContext: true}, nil)

	for _, workers := range []int{2, 4, 16} {
		parallel := runSample(t, Options{Prefix: "sip", IncludeContext: true, Workers: workers}, nil)
		if diff := cmp.Diff(sequential, parallel); diff != "" {
			t.Errorf("workers=%d result mismatch (-sequential +parallel):\n%s", workers, diff)
		}
	}
}

func TestEngineSkipsConceptsWithoutID(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	concepts := append(sampleConcepts(), sdmx.Concept{URN: "urn:anonymous"})
	engine := NewEngine(concepts, fixes.Default(), nil, Options{}, zap.New(core))

	result, err := engine.Run(context.Background(), concepts)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Skipped)
	assert.Len(t, result.Concepts, 7)
	assert.Equal(t, 1, logs.FilterMessage("skipping concept without id").Len())
}

func TestEngineRunLogsLegacyConceptCount(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	runSample(t, Options{Prefix: "sip"}, zap.New(core))

	entries := logs.FilterMessage("classifying concepts").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, int64(len(sampleConcepts())), fields["concepts"])
	assert.Equal(t, int64(NewAligner(sampleLegacyGraph(), fixes.Default().Labels).Len()), fields["legacy_concepts"])
}

func TestEngineLogsDiagnostics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	result := runSample(t, Options{}, zap.New(core))

	diagnostics := result.Diagnostics()
	require.Len(t, diagnostics, 2)
	assert.Equal(t, SelfReference, diagnostics[0].Kind)
	assert.Equal(t, LookupFailure, diagnostics[1].Kind)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 2)
	assert.Equal(t, "circular reference in related term DATA_SET", warnings[0].Message)
	assert.Equal(t, "lookup_failure", warnings[1].ContextMap()["kind"])

	summary := logs.FilterMessage("classification complete").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(2), summary[0].ContextMap()["broader_concepts"])
}

func TestEngineRunCancelled(t *testing.T) {
	concepts := sampleConcepts()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, workers := range []int{1, 4} {
		engine := NewEngine(concepts, fixes.Default(), nil, Options{Workers: workers}, nil)
		_, err := engine.Run(ctx, concepts)
		assert.ErrorIs(t, err, context.Canceled, "workers=%d", workers)
	}
}
