package store

import (
	"fmt"
	"sync"
	"testing"
)

func TestNewTripleStore(t *testing.T) {
	store := NewTripleStore()

	if store == nil {
		t.Fatal("NewTripleStore returned nil")
	}

	if store.Count() != 0 {
		t.Errorf("New store should have 0 triples, got %d", store.Count())
	}
}

func TestTripleStore_Add(t *testing.T) {
	store := NewTripleStore()

	if err := store.Add("sip-concept:ACCURACY", TermType, TermConcept); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Expected 1 triple, got %d", store.Count())
	}

	// Adding the same triple again is a no-op.
	if err := store.Add("sip-concept:ACCURACY", TermType, TermConcept); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if store.Count() != 1 {
		t.Errorf("Expected 1 triple after duplicate add, got %d", store.Count())
	}

	if err := store.Add("sip-concept:ACCURACY", TermLabel, Literal("Accuracy", "en")); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if store.Count() != 2 {
		t.Errorf("Expected 2 triples, got %d", store.Count())
	}
}

func TestTripleStore_Add_InvalidTriple(t *testing.T) {
	store := NewTripleStore()

	tests := []struct {
		name                       string
		subject, predicate, object string
	}{
		{"empty subject", "", TermType, TermConcept},
		{"empty predicate", "sip-concept:A", "", TermConcept},
		{"empty object", "sip-concept:A", TermType, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := store.Add(tt.subject, tt.predicate, tt.object); err == nil {
				t.Error("Expected error for invalid triple")
			}
		})
	}

	if store.Count() != 0 {
		t.Errorf("Invalid triples should not be stored, got %d", store.Count())
	}
}

func TestTripleStore_BulkAdd(t *testing.T) {
	store := NewTripleStore()

	store.BulkAdd([]Triple{
		NewTriple("sip-concept:A", TermType, TermConcept),
		NewTriple("sip-concept:A", TermBroader, "sip-concept:B"),
		NewTriple("sip-concept:A", TermBroader, "sip-concept:B"),
		NewTriple("", TermBroader, "sip-concept:B"),
	})

	if store.Count() != 2 {
		t.Errorf("Expected 2 triples (duplicate and invalid skipped), got %d", store.Count())
	}
}

func TestTripleStore_InsertionOrder(t *testing.T) {
	store := NewTripleStore()

	for _, subject := range []string{"sip-concept:Z", "sip-concept:A", "sip-concept:M"} {
		_ = store.Add(subject, TermType, TermConcept)
	}
	_ = store.Add("sip-concept:Z", TermRelated, "sip-concept:Y")
	_ = store.Add("sip-concept:Z", TermRelated, "sip-concept:B")

	subjects := store.Subjects()
	want := []string{"sip-concept:Z", "sip-concept:A", "sip-concept:M"}
	if fmt.Sprint(subjects) != fmt.Sprint(want) {
		t.Errorf("Subjects() = %v, want %v", subjects, want)
	}

	objects := store.Objects("sip-concept:Z", TermRelated)
	if fmt.Sprint(objects) != "[sip-concept:Y sip-concept:B]" {
		t.Errorf("Objects() = %v, want insertion order", objects)
	}

	withType := store.SubjectsWith(TermType, TermConcept)
	if fmt.Sprint(withType) != fmt.Sprint(want) {
		t.Errorf("SubjectsWith() = %v, want %v", withType, want)
	}
}

func TestTripleStore_Find(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("sip-concept:A", TermType, TermConcept)
	_ = store.Add("sip-concept:A", TermBroader, "sip-concept:B")
	_ = store.Add("sip-concept:C", TermType, TermConcept)
	_ = store.Add("sip-concept:C", TermBroader, "sip-concept:B")

	tests := []struct {
		name                       string
		subject, predicate, object string
		want                       int
	}{
		{"all wildcards", "", "", "", 4},
		{"by subject", "sip-concept:A", "", "", 2},
		{"by subject and predicate", "sip-concept:A", TermBroader, "", 1},
		{"by predicate", "", TermBroader, "", 2},
		{"by predicate and object", "", TermBroader, "sip-concept:B", 2},
		{"exact", "sip-concept:C", TermBroader, "sip-concept:B", 1},
		{"no match", "sip-concept:X", "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := store.Find(tt.subject, tt.predicate, tt.object)
			if len(got) != tt.want {
				t.Errorf("Find(%q, %q, %q) returned %d triples, want %d",
					tt.subject, tt.predicate, tt.object, len(got), tt.want)
			}
		})
	}
}

func TestTripleStore_GetOneAndExists(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("sip-concept:A", TermLabel, Literal("First", "en"))
	_ = store.Add("sip-concept:A", TermLabel, Literal("Second", "en"))

	if got := store.GetOne("sip-concept:A", TermLabel); got != `"First"@en` {
		t.Errorf("GetOne() = %q, want first inserted label", got)
	}
	if got := store.GetOne("sip-concept:A", TermComment); got != "" {
		t.Errorf("GetOne() for missing predicate = %q, want empty", got)
	}
	if !store.Exists("sip-concept:A", TermLabel, `"Second"@en`) {
		t.Error("Exists() should find the second label")
	}
	if store.Exists("sip-concept:A", TermLabel, `"Third"@en`) {
		t.Error("Exists() should not find an absent label")
	}
}

func TestTripleStore_String(t *testing.T) {
	store := NewTripleStore()
	_ = store.Add("sip-concept:A", TermType, TermConcept)

	want := "TripleStore{triples: 1, subjects: 1, predicates: 1}"
	if got := store.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTripleStore_ConcurrentReadWrite(t *testing.T) {
	store := NewTripleStore()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = store.Add(fmt.Sprintf("sip-concept:C%d_%d", n, j), TermType, TermConcept)
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = store.SubjectsWith(TermType, TermConcept)
				_ = store.Count()
			}
		}()
	}
	wg.Wait()

	if store.Count() != 500 {
		t.Errorf("Expected 500 triples, got %d", store.Count())
	}
	if len(store.SubjectsWith(TermType, TermConcept)) != 500 {
		t.Error("POS index out of sync with SPO index")
	}
}
