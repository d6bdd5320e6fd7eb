package store

import "testing"

func TestNewTriple(t *testing.T) {
	triple := NewTriple("sip-concept:ACCURACY", TermBroader, "sip-concept:QUALITY")

	if triple.Subject != "sip-concept:ACCURACY" {
		t.Errorf("Subject = %q", triple.Subject)
	}
	if triple.Predicate != TermBroader {
		t.Errorf("Predicate = %q", triple.Predicate)
	}
	if triple.Object != "sip-concept:QUALITY" {
		t.Errorf("Object = %q", triple.Object)
	}
}

func TestTriple_Equals(t *testing.T) {
	a := NewTriple("sip-concept:A", TermRelated, "sip-concept:B")
	b := NewTriple("sip-concept:A", TermRelated, "sip-concept:B")
	c := NewTriple("sip-concept:A", TermBroader, "sip-concept:B")

	if !a.Equals(b) {
		t.Error("Identical triples should be equal")
	}
	if a.Equals(c) {
		t.Error("Triples with different predicates should not be equal")
	}
}

func TestTriple_String(t *testing.T) {
	triple := NewTriple("sip-concept:A", TermType, TermConcept)

	if got := triple.String(); got != "sip-concept:A a skos:Concept" {
		t.Errorf("String() = %q", got)
	}
}

func TestTriple_IsValid(t *testing.T) {
	tests := []struct {
		name   string
		triple Triple
		want   bool
	}{
		{"complete", NewTriple("s", "p", "o"), true},
		{"missing subject", NewTriple("", "p", "o"), false},
		{"missing predicate", NewTriple("s", "", "o"), false},
		{"missing object", NewTriple("s", "p", ""), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.triple.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
