package output

import (
	"time"

	"github.com/coolbeans/glossgen/pkg/glossary"
	"github.com/coolbeans/glossgen/pkg/store"
)

var testScheme = glossary.NewScheme("sip")

func testModel() Model {
	return Model{
		Scheme:          testScheme,
		Namespace:       "https://purl.semanticip.org/linked-data/sdmx/concept/",
		LegacyNamespace: store.NamespaceSDMXConcept,
		Documentation:   "https://sdmx.org/glossary.htm",
		SchemeLabel:     "Content Oriented Guidelines concept scheme",
		SchemeComment:   "The new model replaces the outdated version from 2009.",
		CreatorName:     "SemanticPro - E-projecting R&D Group",
		CreatorHomepage: "http://www.semanticpro.org",
		Issued:          time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC),
	}
}

func conceptResult(id, label string, relations ...glossary.Relation) glossary.ConceptResult {
	statements := []glossary.Statement{
		{Predicate: store.TermType, Object: store.TermConcept},
		{Predicate: store.TermLabel, Object: store.Literal(label, "en")},
		{Predicate: store.TermInScheme, Object: testScheme.SchemeTerm()},
	}
	broader := 0
	for _, relation := range relations {
		statements = append(statements, relation.Statement(testScheme))
		if relation.Kind == glossary.Broader {
			broader++
		}
	}
	return glossary.ConceptResult{
		Record:       glossary.ConceptRecord{ID: id, Label: label, HasLabel: true},
		Subject:      testScheme.Term(id),
		Statements:   statements,
		Relations:    relations,
		Texts:        []string{id, "    rdfs:label " + store.Literal(label, "en")},
		BroaderCount: broader,
	}
}

// sampleRun has one top concept, one narrower concept and one concept
// aligned with the legacy model.
func sampleRun() *glossary.RunResult {
	return &glossary.RunResult{
		Concepts: []glossary.ConceptResult{
			conceptResult("ACCURACY", "Accuracy"),
			conceptResult("ACCURACY_OVERALL", "Accuracy - overall",
				glossary.Relation{Kind: glossary.Broader, Target: "ACCURACY"}),
			conceptResult("OBS_VALUE", "Observation value",
				glossary.Relation{Kind: glossary.Broader, Target: "ACCURACY"},
				glossary.Relation{Kind: glossary.CloseMatch, Target: "obsValue"}),
		},
		Codelists: []glossary.CodelistAssociation{
			{CodelistID: "CL_OBS_STATUS", ConceptID: "OBS_STATUS"},
			{CodelistID: "CL_AREA", ConceptID: "REF_AREA"},
			{CodelistID: "CL_OBS_STATUS", ConceptID: "OBS_CONF"},
		},
		BroaderConcepts:  2,
		BroaderRelations: 2,
	}
}
