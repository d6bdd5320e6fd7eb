// Package glossary turns SDMX glossary concepts into SKOS statements. It
// infers broader, narrower and related links between concepts of the
// glossary and aligns each concept with its counterpart in the 2009 concept
// model through exactMatch and closeMatch.
package glossary

import (
	"fmt"

	"github.com/coolbeans/glossgen/pkg/store"
)

// DefaultPrefix is the prefix stem of the new concept namespace.
const DefaultPrefix = "sip"

// SchemeLocalName is the local name of the concept scheme every concept
// belongs to.
const SchemeLocalName = "cog"

// Scheme names the terms of the generated concept scheme.
type Scheme struct {
	Prefix string
}

// NewScheme returns a scheme for prefix, falling back to DefaultPrefix.
func NewScheme(prefix string) Scheme {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Scheme{Prefix: prefix}
}

// ConceptPrefix is the Turtle prefix label of concept terms ("sip-concept").
func (s Scheme) ConceptPrefix() string {
	return s.Prefix + "-concept"
}

// Term returns the prefixed name of concept id.
func (s Scheme) Term(id string) string {
	return s.ConceptPrefix() + ":" + id
}

// SchemeTerm returns the prefixed name of the concept scheme.
func (s Scheme) SchemeTerm() string {
	return s.Term(SchemeLocalName)
}

// Kind is the type of a relation between two concepts.
type Kind int

const (
	Broader Kind = iota
	Narrower
	Related
	ExactMatch
	CloseMatch
)

func (k Kind) String() string {
	switch k {
	case Broader:
		return "broader"
	case Narrower:
		return "narrower"
	case Related:
		return "related"
	case ExactMatch:
		return "exactMatch"
	case CloseMatch:
		return "closeMatch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Predicate returns the SKOS property for the kind.
func (k Kind) Predicate() string {
	switch k {
	case Broader:
		return store.TermBroader
	case Narrower:
		return store.TermNarrower
	case ExactMatch:
		return store.TermExactMatch
	case CloseMatch:
		return store.TermCloseMatch
	default:
		return store.TermRelated
	}
}

// IsAlignment reports whether the kind links to the legacy model.
func (k Kind) IsAlignment() bool {
	return k == ExactMatch || k == CloseMatch
}

// Relation is one inferred link. Target is a glossary concept id for
// hierarchical and associative relations, and the local name of a legacy
// concept for alignments.
type Relation struct {
	Kind   Kind
	Target string
}

// Object renders the relation target as a prefixed name.
func (r Relation) Object(scheme Scheme) string {
	if r.Kind.IsAlignment() {
		return store.PrefixSDMXConcept + ":" + r.Target
	}
	return scheme.Term(r.Target)
}

// Statement renders the relation as a predicate-object pair.
func (r Relation) Statement(scheme Scheme) Statement {
	return Statement{Predicate: r.Kind.Predicate(), Object: r.Object(scheme)}
}

func (r Relation) String() string {
	return r.Kind.String() + "(" + r.Target + ")"
}

// Statement is a predicate-object pair about the concept being processed.
// Literal objects are kept in their quoted Turtle form.
type Statement struct {
	Predicate string
	Object    string
}

// Line renders the statement as an indented continuation line.
func (s Statement) Line() string {
	return "    " + s.Predicate + " " + s.Object
}
