package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/coolbeans/glossgen/pkg/glossary"
)

// CodelistHeader is the header row of the codelist CSV.
var CodelistHeader = []string{"Codelist ID", "Concept ID"}

// RenderCodelistCSV writes the codelist associations as CSV, sorted by
// codelist id. Associations with the same codelist keep document order.
func RenderCodelistCSV(associations []glossary.CodelistAssociation) ([]byte, error) {
	sorted := make([]glossary.CodelistAssociation, len(associations))
	copy(sorted, associations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CodelistID < sorted[j].CodelistID
	})

	var buffer bytes.Buffer
	writer := csv.NewWriter(&buffer)

	if err := writer.Write(CodelistHeader); err != nil {
		return nil, fmt.Errorf("failed to write codelist header: %w", err)
	}
	for _, association := range sorted {
		if err := writer.Write([]string{association.CodelistID, association.ConceptID}); err != nil {
			return nil, fmt.Errorf("failed to write codelist row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to write codelist CSV: %w", err)
	}
	return buffer.Bytes(), nil
}
