package glossary

import (
	"strings"

	"go.uber.org/zap"

	"github.com/coolbeans/glossgen/pkg/fixes"
	"github.com/coolbeans/glossgen/pkg/store"
	"github.com/coolbeans/glossgen/pkg/textnorm"
)

// LegacyGraph is a read-only view of the concept model being replaced.
type LegacyGraph interface {
	// ConceptSubjects returns the IRIs of all subjects typed skos:Concept
	// in a stable order.
	ConceptSubjects() []string
	Label(subject string) (string, bool)
	Comment(subject string) (string, bool)
}

type legacyConcept struct {
	localName  string
	derivedID  string
	label      string
	comment    string
	hasComment bool
}

// Aligner matches glossary concepts against the legacy model.
type Aligner struct {
	concepts []legacyConcept
	labels   fixes.LabelFixTable
	debugID  string
	logger   *zap.Logger
}

// AlignerOption configures an Aligner.
type AlignerOption func(*Aligner)

// WithDebugConcept logs the label comparison of the given concept id.
func WithDebugConcept(id string) AlignerOption {
	return func(a *Aligner) {
		a.debugID = id
	}
}

// WithAlignerLogger sets the logger used by the debug hook.
func WithAlignerLogger(logger *zap.Logger) AlignerOption {
	return func(a *Aligner) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAligner reads the labelled concepts of graph once. Legacy concepts
// without a label can never match and are left out.
func NewAligner(graph LegacyGraph, labels fixes.LabelFixTable, options ...AlignerOption) *Aligner {
	aligner := &Aligner{labels: labels, logger: zap.NewNop()}
	for _, option := range options {
		option(aligner)
	}

	if graph == nil {
		return aligner
	}

	for _, subject := range graph.ConceptSubjects() {
		label, ok := graph.Label(subject)
		if !ok || label == "" {
			continue
		}
		comment, _ := graph.Comment(subject)
		localName := store.LocalName(subject)

		aligner.concepts = append(aligner.concepts, legacyConcept{
			localName:  localName,
			derivedID:  textnorm.TransformConceptID(localName),
			label:      label,
			comment:    comment,
			hasComment: comment != "",
		})
	}

	return aligner
}

// Len returns the number of legacy concepts considered for alignment.
func (a *Aligner) Len() int {
	return len(a.concepts)
}

// Align returns an exactMatch or closeMatch for every legacy concept that
// qualifies, in legacy graph order. A concept without a label is never
// aligned.
func (a *Aligner) Align(record ConceptRecord) []Relation {
	if !record.HasLabel {
		return nil
	}

	newLabel := a.labels.NormalizeLabel(record.Label)
	newDefinition := a.labels.NormalizeLabel(record.Description)
	hasDefinition := strings.TrimSpace(record.Description) != ""

	var relations []Relation
	for _, old := range a.concepts {
		idMatch := old.derivedID == record.ID
		labelMatch := a.labels.NormalizeLabel(old.label) == newLabel
		definitionMatch := old.hasComment && record.HasDescription &&
			a.labels.NormalizeLabel(old.comment) == newDefinition

		if idMatch && a.debugID != "" && old.derivedID == a.debugID {
			a.logDebug(record, old, labelMatch, definitionMatch)
		}

		switch {
		case idMatch && (labelMatch || definitionMatch):
			relations = append(relations, Relation{Kind: ExactMatch, Target: old.localName})
		case labelMatch || (old.hasComment && hasDefinition &&
			strings.Contains(textnorm.Lower(old.comment), textnorm.Lower(record.Description))):
			relations = append(relations, Relation{Kind: CloseMatch, Target: old.localName})
		}
	}

	return relations
}

func (a *Aligner) logDebug(record ConceptRecord, old legacyConcept, labelMatch, definitionMatch bool) {
	oldLabel := a.labels.NormalizeLabel(old.label)
	newLabel := a.labels.NormalizeLabel(record.Label)
	position, oldTail, newTail := textnorm.FindFirstDifference(oldLabel, newLabel)

	a.logger.Debug("alignment comparison",
		zap.String("concept", record.ID),
		zap.String("legacy_concept", old.localName),
		zap.String("legacy_label", oldLabel),
		zap.String("label", newLabel),
		zap.Bool("label_match", labelMatch),
		zap.Bool("definition_match", definitionMatch),
		zap.Int("difference_at", position),
		zap.String("legacy_tail", oldTail),
		zap.String("tail", newTail),
	)
}
