package glossary

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/coolbeans/glossgen/pkg/fixes"
	"github.com/coolbeans/glossgen/pkg/sdmx"
)

// Options controls a run of the engine.
type Options struct {
	// Prefix is the stem of the concept prefix ("sip" gives "sip-concept").
	Prefix string
	// IncludeContext adds CONTEXT annotations as rdfs:comment.
	IncludeContext bool
	// IncludeNarrower enables skos:narrower emission.
	IncludeNarrower bool
	// Workers bounds the number of concepts processed concurrently.
	// Values below 2 process concepts sequentially.
	Workers int
	// DebugConcept enables the alignment debug log for one concept id.
	DebugConcept string
}

// Engine runs record building, classification and alignment over the
// concepts of one glossary document.
type Engine struct {
	scheme     Scheme
	index      *ConceptIndex
	classifier *Classifier
	aligner    *Aligner
	options    Options
	logger     *zap.Logger
}

// NewEngine indexes concepts and prepares the classifier and the aligner.
// legacy may be nil, in which case no alignment is attempted.
func NewEngine(concepts []sdmx.Concept, tables fixes.Tables, legacy LegacyGraph, options Options, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	index := BuildIndex(concepts)
	return &Engine{
		scheme:     NewScheme(options.Prefix),
		index:      index,
		classifier: NewClassifier(index, tables, WithNarrower(options.IncludeNarrower)),
		aligner: NewAligner(legacy, tables.Labels,
			WithDebugConcept(options.DebugConcept),
			WithAlignerLogger(logger.Named("aligner")),
		),
		options: options,
		logger:  logger,
	}
}

// Scheme returns the concept scheme the engine writes into.
func (e *Engine) Scheme() Scheme {
	return e.scheme
}

// Index returns the concept index built from the document.
func (e *Engine) Index() *ConceptIndex {
	return e.index
}

// Process builds the complete result of a single concept.
func (e *Engine) Process(concept sdmx.Concept) ConceptResult {
	record, statements, texts := BuildRecord(concept, e.scheme, e.options.IncludeContext)
	classification := e.classifier.Classify(record)

	relations := append(classification.Relations, e.aligner.Align(record)...)
	for _, relation := range relations {
		statements = append(statements, relation.Statement(e.scheme))
	}

	return ConceptResult{
		Record:       record,
		Subject:      e.scheme.Term(record.ID),
		Statements:   statements,
		Relations:    relations,
		Texts:        texts,
		BroaderCount: classification.BroaderCount,
		Diagnostics:  classification.Diagnostics,
	}
}

// Run processes concepts and merges their results in document order.
// Concepts without an id are skipped. With more than one worker, concepts
// are fanned out over an errgroup; each worker fills its own result slot so
// the merged output is identical to a sequential run.
func (e *Engine) Run(ctx context.Context, concepts []sdmx.Concept) (*RunResult, error) {
	result := &RunResult{}
	e.logger.Debug("classifying concepts",
		zap.Int("concepts", len(concepts)),
		zap.Int("legacy_concepts", e.aligner.Len()))

	valid := make([]sdmx.Concept, 0, len(concepts))
	for _, concept := range concepts {
		if concept.ID == "" {
			result.Skipped++
			e.logger.Warn("skipping concept without id", zap.String("urn", concept.URN))
			continue
		}
		valid = append(valid, concept)
	}

	slots := make([]ConceptResult, len(valid))

	if e.options.Workers <= 1 {
		for i, concept := range valid {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			slots[i] = e.Process(concept)
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(e.options.Workers)
		for i, concept := range valid {
			i, concept := i, concept
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				slots[i] = e.Process(concept)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return nil, err
		}
	}

	for _, slot := range slots {
		result.add(slot)
		e.logDiagnostics(slot.Diagnostics)
	}

	e.logger.Info("classification complete",
		zap.Int("concepts", len(result.Concepts)),
		zap.Int("skipped", result.Skipped),
		zap.Int("broader_concepts", result.BroaderConcepts),
		zap.Int("broader_relations", result.BroaderRelations),
		zap.Int("codelists", len(result.Codelists)),
		zap.Int("workers", max(e.options.Workers, 1)),
	)

	return result, nil
}

func (e *Engine) logDiagnostics(diagnostics []Diagnostic) {
	for _, diagnostic := range diagnostics {
		fields := []zap.Field{
			zap.String("kind", diagnostic.Kind.String()),
			zap.String("concept", diagnostic.ConceptID),
			zap.String("term", diagnostic.Term),
		}
		if diagnostic.IsWarning() {
			e.logger.Warn(diagnostic.Message(), fields...)
		} else {
			e.logger.Info(diagnostic.Message(), fields...)
		}
	}
}
