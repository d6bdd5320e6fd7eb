package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/glossgen/pkg/glossary"
)

func TestRenderCodelistCSV(t *testing.T) {
	run := sampleRun()
	data, err := RenderCodelistCSV(run.Codelists)
	require.NoError(t, err)

	assert.Equal(t, "Codelist ID,Concept ID\n"+
		"CL_AREA,REF_AREA\n"+
		"CL_OBS_STATUS,OBS_STATUS\n"+
		"CL_OBS_STATUS,OBS_CONF\n", string(data))

	assert.Equal(t, "CL_OBS_STATUS", run.Codelists[0].CodelistID, "input is not reordered")
}

func TestRenderCodelistCSVEmpty(t *testing.T) {
	data, err := RenderCodelistCSV(nil)
	require.NoError(t, err)
	assert.Equal(t, "Codelist ID,Concept ID\n", string(data))
}

func TestRenderCodelistCSVQuotesFields(t *testing.T) {
	data, err := RenderCodelistCSV([]glossary.CodelistAssociation{{CodelistID: "CL_A,B", ConceptID: "X"}})
	require.NoError(t, err)
	assert.Equal(t, "Codelist ID,Concept ID\n\"CL_A,B\",X\n", string(data))
}
