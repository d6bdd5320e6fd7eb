// Package pipeline runs a full glossary conversion: retrieval, parsing,
// classification and writing of the output files.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/coolbeans/glossgen/pkg/config"
	"github.com/coolbeans/glossgen/pkg/fetch"
	"github.com/coolbeans/glossgen/pkg/fixes"
	"github.com/coolbeans/glossgen/pkg/glossary"
	"github.com/coolbeans/glossgen/pkg/output"
	"github.com/coolbeans/glossgen/pkg/sdmx"
	"github.com/coolbeans/glossgen/pkg/store"
)

// Inputs are the parsed source documents of a run.
type Inputs struct {
	Concepts     []sdmx.Concept
	Legacy       *store.LegacyGraph
	LegacyTurtle []byte
}

// Report summarizes a completed conversion.
type Report struct {
	Result        *glossary.RunResult
	TurtlePath    string
	CodelistPath  string
	JSONLDPath    string
	RDFXMLPath    string
	GraphPath     string
	TuningPath    string
	CommentsPath  string
	NoMatchPath   string
	TunedConcepts int
	NoMatches     []output.NoMatch
}

// Pipeline converts the glossary described by a configuration.
type Pipeline struct {
	cfg    *config.Config
	client *fetch.Client
	logger *zap.Logger
	now    func() time.Time
	outDir string
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithClient replaces the retrieval client.
func WithClient(client *fetch.Client) Option {
	return func(p *Pipeline) { p.client = client }
}

// WithOutputDir resolves relative output paths against dir.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) { p.outDir = dir }
}

// WithClock sets the clock used for the issued date of the scheme.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// New validates cfg and prepares a pipeline. Unless a client is given, the
// retrieval client uses the configured timeout, user agent and cache.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	p := &Pipeline{cfg: cfg, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	if p.client == nil {
		clientOpts := []fetch.Option{
			fetch.WithTimeout(cfg.GetTimeout()),
			fetch.WithUserAgent(cfg.Source.UserAgent),
			fetch.WithLogger(logger.Named("fetch")),
		}
		if cfg.Source.CacheDir != "" {
			cache, err := fetch.NewDiskCache(cfg.Source.CacheDir, cfg.GetCacheTTL())
			if err != nil {
				return nil, err
			}
			clientOpts = append(clientOpts, fetch.WithCache(cache))
		}
		p.client = fetch.NewClient(clientOpts...)
	}

	return p, nil
}

// Load retrieves and parses the glossary XML and the legacy model.
func (p *Pipeline) Load(ctx context.Context) (*Inputs, error) {
	sources, err := p.client.FetchSources(ctx, p.cfg.Source.XMLURL, p.cfg.Source.OldModelURL)
	if err != nil {
		return nil, err
	}

	document, err := sdmx.Parse(bytes.NewReader(sources.GlossaryXML))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p.cfg.Source.XMLURL, err)
	}

	legacyStore, err := store.LoadTurtle(bytes.NewReader(sources.LegacyModel), p.cfg.Model.LegacyNamespace)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p.cfg.Source.OldModelURL, err)
	}
	legacy := store.NewLegacyGraph(legacyStore)

	p.logger.Info("sources loaded",
		zap.Int("concepts", len(document.Concepts)),
		zap.Int("legacy_triples", legacyStore.Count()),
		zap.Int("legacy_concepts", legacy.Len()))

	return &Inputs{
		Concepts:     document.Concepts,
		Legacy:       legacy,
		LegacyTurtle: sources.LegacyModel,
	}, nil
}

// Classify runs the relation engine over the loaded inputs.
func (p *Pipeline) Classify(ctx context.Context, inputs *Inputs, tables fixes.Tables) (*glossary.RunResult, error) {
	inference := p.cfg.Inference
	engine := glossary.NewEngine(inputs.Concepts, tables, inputs.Legacy, glossary.Options{
		Prefix:          p.cfg.Model.Prefix,
		IncludeContext:  inference.IncludeContext,
		IncludeNarrower: inference.IncludeNarrower,
		Workers:         inference.Workers,
		DebugConcept:    inference.DebugConcept,
	}, p.logger.Named("engine"))

	return engine.Run(ctx, inputs.Concepts)
}

// Convert loads the sources, classifies the concepts and writes the output
// files. The tuning, comment and no-match files are written only when
// tuning is enabled.
func (p *Pipeline) Convert(ctx context.Context, tables fixes.Tables) (*Report, error) {
	inputs, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}

	result, err := p.Classify(ctx, inputs, tables)
	if err != nil {
		return nil, err
	}

	return p.Write(inputs, result)
}

// Write renders and saves the output files of a classified run.
func (p *Pipeline) Write(inputs *Inputs, result *glossary.RunResult) (*Report, error) {
	files := p.cfg.Output
	report := &Report{
		Result:       result,
		TurtlePath:   p.path(files.Turtle),
		CodelistPath: p.path(files.Codelists),
	}

	writer := output.NewTurtleWriter(p.model())
	document := writer.Render(result)
	if err := writeFile(report.TurtlePath, []byte(document)); err != nil {
		return nil, err
	}

	codelists, err := output.RenderCodelistCSV(result.Codelists)
	if err != nil {
		return nil, err
	}
	if err := writeFile(report.CodelistPath, codelists); err != nil {
		return nil, err
	}

	if err := p.writeAlternates(report, result); err != nil {
		return nil, err
	}

	if !p.cfg.Inference.Tuning {
		return report, nil
	}

	report.TuningPath = p.path(files.Tuning)
	report.CommentsPath = p.path(files.Comments)
	report.NoMatchPath = p.path(files.NoMatch)

	tuning, tuned := output.RenderTuning(result)
	report.TunedConcepts = tuned
	if err := writeFile(report.TuningPath, []byte(tuning)); err != nil {
		return nil, err
	}
	if err := writeFile(report.CommentsPath, []byte(output.RenderComments(result))); err != nil {
		return nil, err
	}

	report.NoMatches = output.FindNoMatches(inputs.LegacyTurtle, []byte(document), result)
	if err := writeFile(report.NoMatchPath, []byte(writer.RenderNoMatchReport(result, report.NoMatches))); err != nil {
		return nil, err
	}
	for _, noMatch := range report.NoMatches {
		p.logger.Info("no relation to the legacy model",
			zap.String("concept", noMatch.ID),
			zap.String("suggestion", noMatch.Suggestion))
	}

	return report, nil
}

// writeAlternates writes the JSON-LD, RDF/XML and graph renderings that the
// configuration names.
func (p *Pipeline) writeAlternates(report *Report, result *glossary.RunResult) error {
	files := p.cfg.Output
	model := p.model()

	if files.JSONLD != "" {
		data, err := output.RenderJSONLD(model, result, false)
		if err != nil {
			return err
		}
		report.JSONLDPath = p.path(files.JSONLD)
		if err := writeFile(report.JSONLDPath, data); err != nil {
			return err
		}
	}

	if files.RDFXML != "" {
		report.RDFXMLPath = p.path(files.RDFXML)
		if err := writeFile(report.RDFXMLPath, []byte(output.RenderRDFXML(model, result))); err != nil {
			return err
		}
	}

	if files.Graph != "" {
		format := files.GraphFormat
		if format == "" {
			format = output.GraphFormatDOT
		}
		data, err := output.RenderConceptGraph(model, result, format)
		if err != nil {
			return err
		}
		report.GraphPath = p.path(files.Graph)
		if err := writeFile(report.GraphPath, data); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) model() output.Model {
	model := p.cfg.Model
	return output.Model{
		Scheme:          glossary.NewScheme(model.Prefix),
		Namespace:       model.Namespace,
		LegacyNamespace: model.LegacyNamespace,
		Documentation:   model.Documentation,
		SchemeLabel:     model.SchemeLabel,
		SchemeComment:   model.SchemeComment,
		CreatorName:     model.CreatorName,
		CreatorHomepage: model.CreatorHomepage,
		Issued:          p.now(),
	}
}

func (p *Pipeline) path(name string) string {
	if p.outDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.outDir, name)
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
