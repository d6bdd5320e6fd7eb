package store

import (
	"fmt"
	"sync"
)

// TripleStore is an in-memory RDF triple store.
// It answers pattern lookups through two indexes:
//   - SPO: Subject -> Predicate -> Object (facts about a subject)
//   - POS: Predicate -> Object -> Subject (subjects with property=value)
//
// Subjects, and the objects of each subject-predicate pair, are returned in
// insertion order so that serializations and alignments are reproducible.
type TripleStore struct {
	mu sync.RWMutex

	// SPO index: Subject -> Predicate -> ordered objects
	spo map[string]map[string][]string

	// POS index: Predicate -> Object -> ordered subjects
	pos map[string]map[string][]string

	subjects   []string
	predicates map[string][]string // subject -> ordered predicates

	count int
}

// NewTripleStore creates a new in-memory triple store with all indexes initialized.
func NewTripleStore() *TripleStore {
	return &TripleStore{
		spo:        make(map[string]map[string][]string),
		pos:        make(map[string]map[string][]string),
		predicates: make(map[string][]string),
	}
}

// Add inserts a triple into the store. Adding an existing triple is a no-op.
func (ts *TripleStore) Add(subject, predicate, object string) error {
	if subject == "" || predicate == "" || object == "" {
		return fmt.Errorf("triple components cannot be empty")
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	ts.addUnsafe(subject, predicate, object)
	return nil
}

// AddTriple inserts a Triple struct into the store.
func (ts *TripleStore) AddTriple(triple Triple) error {
	return ts.Add(triple.Subject, triple.Predicate, triple.Object)
}

// BulkAdd inserts multiple triples under a single lock. Invalid triples are
// skipped.
func (ts *TripleStore) BulkAdd(triples []Triple) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	for _, triple := range triples {
		if !triple.IsValid() {
			continue
		}
		ts.addUnsafe(triple.Subject, triple.Predicate, triple.Object)
	}
}

func (ts *TripleStore) addUnsafe(subject, predicate, object string) {
	if ts.existsUnsafe(subject, predicate, object) {
		return
	}

	pMap, ok := ts.spo[subject]
	if !ok {
		pMap = make(map[string][]string)
		ts.spo[subject] = pMap
		ts.subjects = append(ts.subjects, subject)
	}
	if _, ok := pMap[predicate]; !ok {
		ts.predicates[subject] = append(ts.predicates[subject], predicate)
	}
	pMap[predicate] = append(pMap[predicate], object)

	oMap, ok := ts.pos[predicate]
	if !ok {
		oMap = make(map[string][]string)
		ts.pos[predicate] = oMap
	}
	oMap[object] = append(oMap[object], subject)

	ts.count++
}

// Find queries triples matching the pattern. Use empty string "" for wildcards.
func (ts *TripleStore) Find(subject, predicate, object string) []Triple {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.findUnsafe(subject, predicate, object)
}

// Exists checks if a specific triple exists in the store.
func (ts *TripleStore) Exists(subject, predicate, object string) bool {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return ts.existsUnsafe(subject, predicate, object)
}

// Objects returns the objects of a subject-predicate pair in insertion order.
func (ts *TripleStore) Objects(subject, predicate string) []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	objects := ts.spo[subject][predicate]
	result := make([]string, len(objects))
	copy(result, objects)
	return result
}

// GetOne retrieves the first object inserted for a subject-predicate pair.
// Returns empty string if not found.
func (ts *TripleStore) GetOne(subject, predicate string) string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	if objects := ts.spo[subject][predicate]; len(objects) > 0 {
		return objects[0]
	}
	return ""
}

// SubjectsWith returns the subjects having predicate=object, in insertion order.
func (ts *TripleStore) SubjectsWith(predicate, object string) []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	subjects := ts.pos[predicate][object]
	result := make([]string, len(subjects))
	copy(result, subjects)
	return result
}

// Count returns the total number of triples in the store.
func (ts *TripleStore) Count() int {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.count
}

// Subjects returns all unique subjects in insertion order.
func (ts *TripleStore) Subjects() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	subjects := make([]string, len(ts.subjects))
	copy(subjects, ts.subjects)
	return subjects
}

// String returns a string representation of the store statistics.
func (ts *TripleStore) String() string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	return fmt.Sprintf("TripleStore{triples: %d, subjects: %d, predicates: %d}",
		ts.count, len(ts.spo), len(ts.pos))
}

// All returns all triples in the store, grouped by subject in insertion order.
func (ts *TripleStore) All() []Triple {
	return ts.Find("", "", "")
}

// existsUnsafe checks if a triple exists without locking.
func (ts *TripleStore) existsUnsafe(subject, predicate, object string) bool {
	for _, o := range ts.spo[subject][predicate] {
		if o == object {
			return true
		}
	}
	return false
}

// findUnsafe finds triples without locking.
func (ts *TripleStore) findUnsafe(subject, predicate, object string) []Triple {
	var results []Triple

	// Predicate and optional object without a subject: use POS index.
	if subject == "" && predicate != "" {
		oMap := ts.pos[predicate]
		if object != "" {
			for _, s := range oMap[object] {
				results = append(results, Triple{Subject: s, Predicate: predicate, Object: object})
			}
			return results
		}
		for _, s := range ts.subjects {
			for _, o := range ts.spo[s][predicate] {
				results = append(results, Triple{Subject: s, Predicate: predicate, Object: o})
			}
		}
		return results
	}

	subjects := ts.subjects
	if subject != "" {
		subjects = []string{subject}
	}

	for _, s := range subjects {
		pMap, ok := ts.spo[s]
		if !ok {
			continue
		}
		for _, p := range ts.predicates[s] {
			if predicate != "" && p != predicate {
				continue
			}
			for _, o := range pMap[p] {
				if object != "" && o != object {
					continue
				}
				results = append(results, Triple{Subject: s, Predicate: p, Object: o})
			}
		}
	}

	return results
}
