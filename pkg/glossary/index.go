package glossary

import (
	"github.com/coolbeans/glossgen/pkg/sdmx"
	"github.com/coolbeans/glossgen/pkg/textnorm"
)

// IndexEntry is the indexed view of one concept.
type IndexEntry struct {
	ID          string
	Label       string
	Description string
}

// ConceptIndex resolves related-term labels to concept ids and exposes the
// description of every concept. It is built once from the whole document
// and is read-only afterwards.
type ConceptIndex struct {
	entries  []IndexEntry
	position map[string]int    // id -> entries index
	labels   map[string]string // lower(trim(label)) -> id
}

// BuildIndex indexes every concept that has an id. Labels are keyed
// lowercased and trimmed; when two concepts share a label the later one
// wins. Descriptions are stored lowercased and trimmed.
func BuildIndex(concepts []sdmx.Concept) *ConceptIndex {
	index := &ConceptIndex{
		position: make(map[string]int, len(concepts)),
		labels:   make(map[string]string, len(concepts)),
	}

	for _, concept := range concepts {
		if concept.ID == "" {
			continue
		}

		label, _ := concept.Name()
		description, _ := concept.Description()
		entry := IndexEntry{
			ID:          concept.ID,
			Label:       label,
			Description: textnorm.LowerTrim(description),
		}

		if i, exists := index.position[concept.ID]; exists {
			index.entries[i] = entry
			continue
		}
		index.position[concept.ID] = len(index.entries)
		index.entries = append(index.entries, entry)
	}

	for _, entry := range index.entries {
		index.labels[textnorm.LowerTrim(entry.Label)] = entry.ID
	}

	return index
}

// Lookup returns the id of the concept whose lowercased, trimmed label
// equals label.
func (index *ConceptIndex) Lookup(label string) (string, bool) {
	id, ok := index.labels[label]
	return id, ok
}

// Label returns the display label of a concept.
func (index *ConceptIndex) Label(id string) (string, bool) {
	i, ok := index.position[id]
	if !ok {
		return "", false
	}
	return index.entries[i].Label, true
}

// Description returns the lowercased, trimmed description of a concept, or
// "" when it has none.
func (index *ConceptIndex) Description(id string) string {
	if i, ok := index.position[id]; ok {
		return index.entries[i].Description
	}
	return ""
}

// Entries returns the indexed concepts in document order.
func (index *ConceptIndex) Entries() []IndexEntry {
	entries := make([]IndexEntry, len(index.entries))
	copy(entries, index.entries)
	return entries
}

// Len returns the number of indexed concepts.
func (index *ConceptIndex) Len() int {
	return len(index.entries)
}
