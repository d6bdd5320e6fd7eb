package store

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/knakk/rdf"
)

// ErrTurtle is returned when a Turtle document cannot be decoded.
var ErrTurtle = errors.New("invalid turtle document")

// LoadTurtle decodes a Turtle document into a new TripleStore. IRIs are
// stored in full, blank nodes as "_:id", and literals through Literal.
// Literals tagged with a language other than English are dropped.
func LoadTurtle(r io.Reader, base string) (*TripleStore, error) {
	decoder := rdf.NewTripleDecoder(r, rdf.Turtle)
	if base != "" {
		baseIRI, err := rdf.NewIRI(base)
		if err != nil {
			return nil, fmt.Errorf("%w: base %q: %v", ErrTurtle, base, err)
		}
		if err := decoder.SetOption(rdf.Base, baseIRI); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTurtle, err)
		}
	}

	ts := NewTripleStore()
	for {
		triple, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTurtle, err)
		}

		object, keep := objectTerm(triple.Obj)
		if !keep {
			continue
		}
		if err := ts.AddTriple(NewTriple(resourceTerm(triple.Subj), resourceTerm(triple.Pred), object)); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTurtle, err)
		}
	}

	return ts, nil
}

func resourceTerm(term rdf.Term) string {
	if term.Type() == rdf.TermBlank {
		value := term.String()
		if strings.HasPrefix(value, "_:") {
			return value
		}
		return "_:" + value
	}
	return term.String()
}

func objectTerm(term rdf.Term) (string, bool) {
	literal, ok := term.(rdf.Literal)
	if !ok {
		return resourceTerm(term), true
	}

	lang := strings.ToLower(literal.Lang())
	if lang != "" && lang != "en" && !strings.HasPrefix(lang, "en-") {
		return "", false
	}
	return Literal(literal.String(), lang), true
}
