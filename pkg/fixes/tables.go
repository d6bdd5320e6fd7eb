// Package fixes holds the static override tables that correct known label
// typos and known hierarchy exceptions of the SDMX glossary.
//
// Tables are immutable values. Loading override files or reloading a watched
// directory always produces a new Tables value; a table handed to the
// classifier never changes underneath it.
package fixes

import (
	"slices"

	"github.com/coolbeans/glossgen/pkg/textnorm"
)

// LabelFixTable maps a lowercase misspelled or obsolete label to its
// corrected form.
type LabelFixTable struct {
	fixes map[string]string
	order []string
}

// NewLabelFixTable builds a table from label pairs. Keys are lowercased and
// trimmed so they match the output of the label normalization.
func NewLabelFixTable(pairs ...LabelFix) LabelFixTable {
	table := LabelFixTable{fixes: make(map[string]string, len(pairs))}
	for _, pair := range pairs {
		table = table.with(pair.From, pair.To)
	}
	return table
}

// LabelFix is a single label correction.
type LabelFix struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// with returns a copy of the table with one fix added or replaced.
func (table LabelFixTable) with(from, to string) LabelFixTable {
	key := textnorm.LowerTrim(from)

	fixes := make(map[string]string, len(table.fixes)+1)
	for k, v := range table.fixes {
		fixes[k] = v
	}
	order := slices.Clone(table.order)
	if _, exists := fixes[key]; !exists {
		order = append(order, key)
	}
	fixes[key] = to

	return LabelFixTable{fixes: fixes, order: order}
}

// NormalizeLabel lowercases and trims label, then replaces it with its
// correction when the table has one.
//
//	NormalizeLabel("Timelinesst") == "timeliness"
func (table LabelFixTable) NormalizeLabel(label string) string {
	normalized := textnorm.LowerTrim(label)
	if fixed, ok := table.fixes[normalized]; ok {
		return fixed
	}
	return normalized
}

// Lookup returns the correction for an already lowercased label.
func (table LabelFixTable) Lookup(label string) (string, bool) {
	fixed, ok := table.fixes[label]
	return fixed, ok
}

// Len returns the number of fixes in the table.
func (table LabelFixTable) Len() int {
	return len(table.order)
}

// Fixes returns the fixes in insertion order.
func (table LabelFixTable) Fixes() []LabelFix {
	pairs := make([]LabelFix, 0, len(table.order))
	for _, key := range table.order {
		pairs = append(pairs, LabelFix{From: key, To: table.fixes[key]})
	}
	return pairs
}

// BroaderOverride forces or suppresses broader inference for one concept.
// An empty ParentID means broader is never inferred for ConceptID and its
// related terms stay skos:related.
type BroaderOverride struct {
	ConceptID string `yaml:"concept"`
	ParentID  string `yaml:"parent"`
}

// Suppresses reports whether the entry blocks broader inference.
func (override BroaderOverride) Suppresses() bool {
	return override.ParentID == ""
}

// BroaderOverrideTable is an ordered list of broader overrides keyed by
// concept id. Iteration order is significant, see Forces.
type BroaderOverrideTable struct {
	entries []BroaderOverride
}

// NewBroaderOverrideTable builds a table from entries in the given order.
// A repeated concept id replaces the earlier value in place.
func NewBroaderOverrideTable(entries ...BroaderOverride) BroaderOverrideTable {
	var table BroaderOverrideTable
	for _, entry := range entries {
		table = table.with(entry)
	}
	return table
}

func (table BroaderOverrideTable) with(entry BroaderOverride) BroaderOverrideTable {
	entries := slices.Clone(table.entries)
	for i := range entries {
		if entries[i].ConceptID == entry.ConceptID {
			entries[i].ParentID = entry.ParentID
			return BroaderOverrideTable{entries: entries}
		}
	}
	return BroaderOverrideTable{entries: append(entries, entry)}
}

// Has reports whether conceptID has an entry, forcing or suppressing.
func (table BroaderOverrideTable) Has(conceptID string) bool {
	_, ok := table.Lookup(conceptID)
	return ok
}

// Lookup returns the parent id configured for conceptID.
func (table BroaderOverrideTable) Lookup(conceptID string) (string, bool) {
	for _, entry := range table.entries {
		if entry.ConceptID == conceptID {
			return entry.ParentID, true
		}
	}
	return "", false
}

// Forces reports whether the table forces conceptID to be narrower than
// targetID.
//
// The scan walks the entries in order and gives up at the first suppressing
// entry it meets, wherever that entry is and whichever concept it belongs
// to. A forcing entry placed after any suppressing entry therefore never
// fires. This mirrors the behaviour the published glossary was generated
// with; see TestForcesStopsAtFirstSuppressingEntry.
func (table BroaderOverrideTable) Forces(conceptID, targetID string) bool {
	for _, entry := range table.entries {
		if entry.Suppresses() {
			return false
		}
		if entry.ConceptID == conceptID && entry.ParentID == targetID {
			return true
		}
	}
	return false
}

// Len returns the number of entries.
func (table BroaderOverrideTable) Len() int {
	return len(table.entries)
}

// Entries returns a copy of the entries in table order.
func (table BroaderOverrideTable) Entries() []BroaderOverride {
	return slices.Clone(table.entries)
}

// Tables bundles the label fixes and broader overrides used by one run.
type Tables struct {
	Labels  LabelFixTable
	Broader BroaderOverrideTable
}
