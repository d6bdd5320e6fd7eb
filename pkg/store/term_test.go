package store

import "testing"

func TestLiteral(t *testing.T) {
	tests := []struct {
		value, lang string
		want        string
	}{
		{"Accuracy", "en", `"Accuracy"@en`},
		{"urn:sdmx:x", "", `"urn:sdmx:x"`},
		{`The "true" value`, "en", `"The \"true\" value"@en`},
	}

	for _, tt := range tests {
		if got := Literal(tt.value, tt.lang); got != tt.want {
			t.Errorf("Literal(%q, %q) = %q, want %q", tt.value, tt.lang, got, tt.want)
		}
	}
}

func TestLiteralValue(t *testing.T) {
	tests := []struct {
		name      string
		term      string
		wantValue string
		wantLang  string
		wantOK    bool
	}{
		{"tagged", `"Accuracy"@en`, "Accuracy", "en", true},
		{"untagged", `"plain"`, "plain", "", true},
		{"escaped quotes", `"The \"true\" value"@en`, `The "true" value`, "en", true},
		{"escaped newline", `"a\nb"`, "a\nb", "", true},
		{"unicode escape", `"caf\u00e9"`, "café", "", true},
		{"long literal", `"""Say "hi" now"""@en`, `Say "hi" now`, "en", true},
		{"long literal ending in quote", `"""Say "hi""""@en`, `Say "hi"`, "en", true},
		{"typed", `"2024-01-01"^^xsd:date`, "2024-01-01", "", true},
		{"iri", "skos:Concept", "", "", false},
		{"lone quote", `"`, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, lang, ok := LiteralValue(tt.term)
			if ok != tt.wantOK || value != tt.wantValue || lang != tt.wantLang {
				t.Errorf("LiteralValue(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.term, value, lang, ok, tt.wantValue, tt.wantLang, tt.wantOK)
			}
		})
	}
}

func TestLiteralRoundTrip(t *testing.T) {
	for _, value := range []string{"simple", `with "quotes"`, "back\\slash", "multi\nline\ttab"} {
		got, _, ok := LiteralValue(Literal(value, "en"))
		if !ok || got != value {
			t.Errorf("round trip of %q gave %q", value, got)
		}
	}
}

func TestLocalName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"http://purl.org/linked-data/sdmx/2009/concept#refArea", "refArea"},
		{"https://purl.semanticip.org/linked-data/sdmx/concept/ACCURACY", "ACCURACY"},
		{"sip-concept:ACCURACY", "ACCURACY"},
		{"bare", "bare"},
	}

	for _, tt := range tests {
		if got := LocalName(tt.input); got != tt.want {
			t.Errorf("LocalName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
