package fixes

// defaultLabelFixes correct label mismatches between the SDMX glossary, its
// related-term annotations and the 2009 concept model.
var defaultLabelFixes = []LabelFix{
	{From: "timelinesst", To: "timeliness"},
	{From: "coherence - cross-domain", To: "coherence - cross domain"},
	{From: "relevance - user satisifaction", To: "relevance - user satisfaction"},

	// Renamed between the two model generations.
	{From: "asymmetry for mirror flow statistics", To: "asymmetry for mirror flows statistics - coefficient"},
	{From: "contact mail", To: "contact mail address"},
	{From: "sdmx registry interface", To: "sdmx registry interface (in the context of registry)"},
	{From: "contact organization unit", To: "contact organisation unit"},
	{From: "observation", To: "observation value"},
	{From: "data presentation", To: "data presentation - detailed description"},
	{From: "frequency", To: "frequency of observation"},
	{From: "contact person job title", To: "contact person function"},
	{From: "accuracy - sampling error", To: "sampling error"},
	{From: "quality management - assessment", To: "quality management - quality assessment"},
	{From: "coverage- time", To: "time coverage"},
}

// defaultBroaderOverrides pin the position of concepts whose hierarchy the
// text heuristics get wrong. Suppressing entries come last.
var defaultBroaderOverrides = []BroaderOverride{
	{ConceptID: "DSD", ParentID: "DATA_SET"},
	{ConceptID: "ATTRIBUTE", ParentID: "DSD"},
	{ConceptID: "DIMENSION", ParentID: "DSD"},
	{ConceptID: "MEASURE", ParentID: "DSD"},
	{ConceptID: "CODING_FORMAT", ParentID: "CODE"},
	{ConceptID: "CONSTRAINT", ParentID: "CODELIST"},
	{ConceptID: "ORGANISATION_UNIT", ParentID: "CONTACT"},
	{ConceptID: "CDC", ParentID: "COG"},
	{ConceptID: "CDCL", ParentID: "COG"},
	{ConceptID: "STAT_SUBJECT_MATTER", ParentID: "COG"},
	{ConceptID: "LEVEL", ParentID: "HIERARCHY"},
	{ConceptID: "MEMBER_SEL", ParentID: "CONSTRAINT"},
	{ConceptID: "MSD", ParentID: "META_SET"},
	{ConceptID: "REP_CATEGORY", ParentID: "REPRESENT"},
	{ConceptID: "REP_TAXO", ParentID: "REP_CATEGORY"},
	{ConceptID: "SDMX_REG_INTERFACE", ParentID: "SDMX_REG"},
	{ConceptID: "SERIES_KEY", ParentID: "SIBLING_GR"},
	{ConceptID: "STRUCT_VALIDATION", ParentID: "STRUCT_META"},
	{ConceptID: "TIMELAG_FINAL", ParentID: "TIMELINESS"},
	{ConceptID: "TIMELAG_FIRST", ParentID: "TIMELINESS"},

	{ConceptID: "DATAFLOW"},
	{ConceptID: "DATA_VALIDATION"},
	{ConceptID: "HIERARCHY"},
	{ConceptID: "DATA_SET"},
}

// Default returns the built-in tables.
func Default() Tables {
	return Tables{
		Labels:  NewLabelFixTable(defaultLabelFixes...),
		Broader: NewBroaderOverrideTable(defaultBroaderOverrides...),
	}
}
