package glossary

import (
	"strings"

	"github.com/coolbeans/glossgen/pkg/fixes"
	"github.com/coolbeans/glossgen/pkg/textnorm"
)

// Classification is the outcome of classifying the related terms of one
// concept.
type Classification struct {
	Relations    []Relation
	BroaderCount int
	Diagnostics  []Diagnostic
}

// Classifier decides, for every related term of a concept, whether the
// referenced concept is broader, narrower or merely related.
type Classifier struct {
	index           *ConceptIndex
	tables          fixes.Tables
	includeNarrower bool
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithNarrower enables skos:narrower emission. Without it a narrower
// candidate is reported as related.
func WithNarrower(enabled bool) ClassifierOption {
	return func(c *Classifier) {
		c.includeNarrower = enabled
	}
}

// NewClassifier creates a classifier over a complete concept index.
func NewClassifier(index *ConceptIndex, tables fixes.Tables, options ...ClassifierOption) *Classifier {
	classifier := &Classifier{index: index, tables: tables}
	for _, option := range options {
		option(classifier)
	}
	return classifier
}

// Classify emits one relation per resolvable related term of record, in
// annotation order. Unresolvable and self-referencing terms are reported as
// diagnostics.
func (c *Classifier) Classify(record ConceptRecord) Classification {
	var result Classification

	for _, ref := range record.RelatedTermRefs {
		for _, term := range strings.Split(ref, ";") {
			label := c.tables.Labels.NormalizeLabel(term)

			targetID, ok := c.index.Lookup(label)
			if !ok {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{
					Kind: LookupFailure, ConceptID: record.ID, Term: label,
				})
				continue
			}
			if targetID == record.ID {
				result.Diagnostics = append(result.Diagnostics, Diagnostic{
					Kind: SelfReference, ConceptID: record.ID, Term: targetID,
				})
				continue
			}

			broader := c.isBroader(record, label, targetID)
			narrower := c.isNarrower(record, targetID)

			switch {
			case broader:
				result.Relations = append(result.Relations, Relation{Kind: Broader, Target: targetID})
				result.BroaderCount++
				if narrower && c.includeNarrower {
					result.Relations = append(result.Relations, Relation{Kind: Narrower, Target: targetID})
					result.Diagnostics = append(result.Diagnostics, Diagnostic{
						Kind: BothApplicable, ConceptID: record.ID, Term: targetID,
					})
				}
			case narrower && c.includeNarrower:
				result.Relations = append(result.Relations, Relation{Kind: Narrower, Target: targetID})
			default:
				result.Relations = append(result.Relations, Relation{Kind: Related, Target: targetID})
			}
		}
	}

	return result
}

// isBroader applies the broader rules in priority order. A concept listed in
// the override table only ever gets broader through the table.
func (c *Classifier) isBroader(record ConceptRecord, label, targetID string) bool {
	if c.tables.Broader.Has(record.ID) {
		return c.tables.Broader.Forces(record.ID, targetID)
	}

	if record.HasLabel && c.splitMatch(record.Label, targetID) {
		return true
	}

	return strings.Contains(textnorm.NormalizeText(record.Description), textnorm.NormalizeText(label))
}

// splitMatch reports whether the category part of a qualified label such as
// "Accuracy - overall" is the label of the target concept.
func (c *Classifier) splitMatch(label, targetID string) bool {
	position, category, _ := textnorm.SplitBySeparator(label)
	if position <= 0 {
		return false
	}

	targetLabel, ok := c.index.Label(targetID)
	if !ok {
		return false
	}
	return textnorm.NormalizeText(category) == textnorm.LowerTrim(targetLabel)
}

// isNarrower reports whether the concept label occurs in the description of
// the target. A concept without a description element is compared against
// an empty target description.
func (c *Classifier) isNarrower(record ConceptRecord, targetID string) bool {
	targetDescription := ""
	if record.HasDescription {
		targetDescription = textnorm.NormalizeText(c.index.Description(targetID))
	}

	ownLabel := ""
	if record.HasLabel {
		ownLabel = textnorm.NormalizeText(record.Label)
	}

	return strings.Contains(targetDescription, ownLabel)
}
