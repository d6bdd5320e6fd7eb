package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/coolbeans/glossgen/pkg/config"
	"github.com/coolbeans/glossgen/pkg/fixes"
	"github.com/coolbeans/glossgen/pkg/glossary"
	"github.com/coolbeans/glossgen/pkg/logging"
	"github.com/coolbeans/glossgen/pkg/pipeline"
	"github.com/coolbeans/glossgen/pkg/store"
	"github.com/coolbeans/glossgen/pkg/textnorm"
)

var version = "0.1.0"

var (
	configPath string
	verbose    bool
	logFormat  string

	cfg    *config.Config
	logger *zap.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "glossgen",
		Short: "SDMX glossary to SKOS converter",
		Long: `Glossgen converts the SDMX cross-domain concept glossary into a SKOS
concept scheme in Turtle.

It infers skos:broader, skos:narrower and skos:related relations from the
related-term annotations of each concept and aligns every concept with the
2009 content-oriented guidelines model through skos:exactMatch and
skos:closeMatch.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if logFormat != "" {
				cfg.Logging.Format = logFormat
			}
			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			logger, err = logging.New(level, cfg.Logging.Format)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: json or console")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(fixesCmd())
	rootCmd.AddCommand(diffCmd())

	return rootCmd
}

// inferenceFlags binds the flags shared by convert and classify.
type inferenceFlags struct {
	xmlURL       string
	oldModelURL  string
	includeCtx   bool
	narrower     bool
	workers      int
	fixesDir     string
	debugConcept string
}

func (f *inferenceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.xmlURL, "xml-url", "", "Glossary SDMX-ML URL or file path")
	cmd.Flags().StringVar(&f.oldModelURL, "old-model-url", "", "Legacy Turtle model URL or file path")
	cmd.Flags().BoolVar(&f.includeCtx, "context", false, "Add CONTEXT annotations as rdfs:comment")
	cmd.Flags().BoolVar(&f.narrower, "narrower", false, "Emit skos:narrower relations")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "Concepts classified concurrently")
	cmd.Flags().StringVar(&f.fixesDir, "fixes-dir", "", "Directory of YAML fix table overrides")
	cmd.Flags().StringVar(&f.debugConcept, "debug-concept", "", "Log the legacy label comparison of this concept id")
}

// apply copies the flags the user set over the loaded configuration.
func (f *inferenceFlags) apply(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("xml-url") {
		cfg.Source.XMLURL = f.xmlURL
	}
	if flags.Changed("old-model-url") {
		cfg.Source.OldModelURL = f.oldModelURL
	}
	if flags.Changed("context") {
		cfg.Inference.IncludeContext = f.includeCtx
	}
	if flags.Changed("narrower") {
		cfg.Inference.IncludeNarrower = f.narrower
	}
	if flags.Changed("workers") {
		cfg.Inference.Workers = f.workers
	}
	if flags.Changed("fixes-dir") {
		cfg.Inference.FixesDir = f.fixesDir
	}
	if flags.Changed("debug-concept") {
		cfg.Inference.DebugConcept = f.debugConcept
	}
}

func loadRegistry() (*fixes.Registry, error) {
	if cfg.Inference.FixesDir == "" {
		return fixes.NewRegistry(logger.Named("fixes")), nil
	}
	return fixes.NewRegistryWithDirectory(cfg.Inference.FixesDir, logger.Named("fixes"))
}

func convertCmd() *cobra.Command {
	var (
		flags     inferenceFlags
		outDir    string
		turtleOut string
		codelists string
		jsonld    string
		rdfxml    string
		graph     string
		graphFmt  string
		tuning    bool
		noTuning  bool
		watch     bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Generate the SKOS model from the glossary",
		Long: `Download the glossary and the legacy model, infer relations and write
the Turtle model, the codelist CSV and, in tuning mode, the tuning,
comment and no-match files.

Example:
  glossgen convert
  glossgen convert --xml-url concepts.xml --old-model-url cog.ttl --narrower
  glossgen convert --fixes-dir fixes/ --watch
  glossgen convert --jsonld sdmx-glossary.jsonld --graph concepts.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd)
			if cmd.Flags().Changed("out") {
				cfg.Output.Turtle = turtleOut
			}
			if cmd.Flags().Changed("codelists") {
				cfg.Output.Codelists = codelists
			}
			if cmd.Flags().Changed("jsonld") {
				cfg.Output.JSONLD = jsonld
			}
			if cmd.Flags().Changed("rdfxml") {
				cfg.Output.RDFXML = rdfxml
			}
			if cmd.Flags().Changed("graph") {
				cfg.Output.Graph = graph
			}
			if cmd.Flags().Changed("graph-format") {
				cfg.Output.GraphFormat = graphFmt
			}
			if cmd.Flags().Changed("tuning") {
				cfg.Inference.Tuning = tuning
			}
			if noTuning {
				cfg.Inference.Tuning = false
			}
			if watch && cfg.Inference.FixesDir == "" {
				return fmt.Errorf("--watch requires --fixes-dir")
			}

			p, err := pipeline.New(cfg, logger, pipeline.WithOutputDir(outDir))
			if err != nil {
				return err
			}
			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			inputs, err := p.Load(ctx)
			if err != nil {
				return err
			}
			if err := runConversion(ctx, p, inputs, registry.Tables()); err != nil {
				return err
			}
			if !watch {
				return nil
			}

			registry.SetOnChange(func(tables fixes.Tables) {
				fmt.Println("Fix tables changed, regenerating ...")
				if err := runConversion(ctx, p, inputs, tables); err != nil {
					logger.Error("regeneration failed", zap.Error(err))
				}
			})
			if err := registry.Watch(); err != nil {
				return err
			}
			defer registry.StopWatch()

			fmt.Printf("Watching %s for changes (Ctrl+C to stop)\n", cfg.Inference.FixesDir)
			<-ctx.Done()
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outDir, "output-dir", "o", "", "Directory for relative output paths")
	cmd.Flags().StringVar(&turtleOut, "out", "", "Turtle output file")
	cmd.Flags().StringVar(&codelists, "codelists", "", "Codelist CSV output file")
	cmd.Flags().StringVar(&jsonld, "jsonld", "", "Also write the model as JSON-LD to this file")
	cmd.Flags().StringVar(&rdfxml, "rdfxml", "", "Also write the model as RDF/XML to this file")
	cmd.Flags().StringVar(&graph, "graph", "", "Also write the concept graph to this file")
	cmd.Flags().StringVar(&graphFmt, "graph-format", "", "Concept graph format: dot or json")
	cmd.Flags().BoolVar(&tuning, "tuning", true, "Write the tuning, comment and no-match files")
	cmd.Flags().BoolVar(&noTuning, "no-tuning", false, "Skip the tuning, comment and no-match files")
	cmd.Flags().BoolVar(&watch, "watch", false, "Regenerate when the fix tables change")

	return cmd
}

func runConversion(ctx context.Context, p *pipeline.Pipeline, inputs *pipeline.Inputs, tables fixes.Tables) error {
	result, err := p.Classify(ctx, inputs, tables)
	if err != nil {
		return err
	}
	report, err := p.Write(inputs, result)
	if err != nil {
		return err
	}

	fmt.Printf("Semantic model saved to %s\n", report.TurtlePath)
	fmt.Printf("Codelist associations saved to %s\n", report.CodelistPath)
	for _, path := range []string{report.JSONLDPath, report.RDFXMLPath, report.GraphPath} {
		if path != "" {
			fmt.Printf("Saved %s\n", path)
		}
	}
	if report.TuningPath != "" {
		fmt.Printf("%d concepts for skos:broader(%d)-tuning saved to %s\n",
			report.TunedConcepts, result.BroaderRelations, report.TuningPath)
	}
	if len(report.NoMatches) > 0 {
		fmt.Println("No relations established between the following concepts of the new and old model:")
		for _, noMatch := range report.NoMatches {
			fmt.Printf("  %s -> sdmx-concept:%s\n", noMatch.ID, noMatch.Suggestion)
		}
		fmt.Printf("Unmatched concepts saved to %s\n", report.NoMatchPath)
	}
	return nil
}

func classifyCmd() *cobra.Command {
	var flags inferenceFlags

	cmd := &cobra.Command{
		Use:   "classify <concept-id>",
		Short: "Show the relations inferred for one concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd)
			conceptID := args[0]

			p, err := pipeline.New(cfg, logger)
			if err != nil {
				return err
			}
			registry, err := loadRegistry()
			if err != nil {
				return err
			}

			inputs, err := p.Load(cmd.Context())
			if err != nil {
				return err
			}
			result, err := p.Classify(cmd.Context(), inputs, registry.Tables())
			if err != nil {
				return err
			}

			concept, ok := result.Concept(conceptID)
			if !ok {
				return fmt.Errorf("concept %s not found", conceptID)
			}
			printConcept(cmd.OutOrStdout(), concept)
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

var relationKinds = []glossary.Kind{
	glossary.Broader,
	glossary.Narrower,
	glossary.Related,
	glossary.ExactMatch,
	glossary.CloseMatch,
}

func printConcept(w io.Writer, concept glossary.ConceptResult) {
	fmt.Fprintf(w, "%s (%s)\n", concept.Record.ID, concept.Record.Label)
	fmt.Fprintln(w, strings.Repeat("-", 40))

	if len(concept.Relations) == 0 {
		fmt.Fprintln(w, "No relations")
	}
	for _, kind := range relationKinds {
		relations := concept.RelationsOf(kind)
		if len(relations) == 0 {
			continue
		}
		targets := make([]string, 0, len(relations))
		for _, relation := range relations {
			targets = append(targets, relation.Target)
		}
		fmt.Fprintf(w, "  %-12s %s\n", kind, strings.Join(targets, ", "))
	}
	if concept.IsTopConcept() {
		fmt.Fprintln(w, "  top concept of the scheme")
	}

	if len(concept.Diagnostics) > 0 {
		fmt.Fprintln(w, "\nDiagnostics:")
		for _, diagnostic := range concept.Diagnostics {
			fmt.Fprintf(w, "  [%s] %s\n", diagnostic.Kind, diagnostic.Message())
		}
	}

	statements := store.NewTripleStore()
	statements.BulkAdd(concept.Triples())
	fmt.Fprintln(w, "\nStatements:")
	fmt.Fprint(w, store.NewTurtleSerializer().SerializeSubject(statements, concept.Subject))
}

func fixesCmd() *cobra.Command {
	var fixesDir string

	cmd := &cobra.Command{
		Use:   "fixes",
		Short: "Print the effective label fixes and broader overrides",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("fixes-dir") {
				cfg.Inference.FixesDir = fixesDir
			}
			registry, err := loadRegistry()
			if err != nil {
				return err
			}
			tables := registry.Tables()

			fmt.Printf("Label fixes (%d):\n", tables.Labels.Len())
			for _, fix := range tables.Labels.Fixes() {
				fmt.Printf("  %q -> %q\n", fix.From, fix.To)
			}

			fmt.Printf("\nBroader overrides (%d, in evaluation order):\n", tables.Broader.Len())
			for _, entry := range tables.Broader.Entries() {
				if entry.Suppresses() {
					fmt.Printf("  %-20s (no broader)\n", entry.ConceptID)
					continue
				}
				fmt.Printf("  %-20s -> %s\n", entry.ConceptID, entry.ParentID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&fixesDir, "fixes-dir", "", "Directory of YAML fix table overrides")
	return cmd
}

func diffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <label-a> <label-b>",
		Short: "Show where two normalized labels diverge",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := loadRegistry()
			if err != nil {
				return err
			}
			labels := registry.Tables().Labels
			a := labels.NormalizeLabel(args[0])
			b := labels.NormalizeLabel(args[1])

			position, tailA, tailB := textnorm.FindFirstDifference(a, b)
			if position < 0 {
				fmt.Println("Labels are identical after normalization")
				return nil
			}
			fmt.Printf("%q\n%q\n", a, b)
			fmt.Printf("First difference at position %d: %q vs %q\n", position, tailA, tailB)
			return nil
		},
	}
}
