// Package config holds the glossgen run configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default source locations and model constants.
const (
	DefaultXMLURL        = "https://registry.sdmx.org/sdmx/v2/structure/conceptscheme/SDMX/CROSS_DOMAIN_CONCEPTS/2.0"
	DefaultOldModelURL   = "http://purl.org/linked-data/sdmx/2009/concept#"
	DefaultNamespace     = "https://purl.semanticip.org/linked-data/sdmx/concept/"
	DefaultDocumentation = "https://sdmx.org/wp-content/uploads/SDMX_Glossary_Version_2_1_December_2020.htm"
)

// Environment variables that override file values.
const (
	EnvXMLURL      = "GLOSSGEN_XML_URL"
	EnvOldModelURL = "GLOSSGEN_OLD_MODEL_URL"
	EnvCacheDir    = "GLOSSGEN_CACHE_DIR"
	EnvLogLevel    = "GLOSSGEN_LOG_LEVEL"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all glossgen configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Model     ModelConfig     `yaml:"model"`
	Output    OutputConfig    `yaml:"output"`
	Inference InferenceConfig `yaml:"inference"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SourceConfig locates the glossary and the legacy model.
type SourceConfig struct {
	XMLURL      string `yaml:"xml_url"`
	OldModelURL string `yaml:"old_model_url"`
	Timeout     string `yaml:"timeout"`
	UserAgent   string `yaml:"user_agent"`
	CacheDir    string `yaml:"cache_dir"` // empty disables caching
	CacheTTL    string `yaml:"cache_ttl"`
}

// ModelConfig describes the generated concept scheme.
type ModelConfig struct {
	Prefix          string `yaml:"prefix"`
	Namespace       string `yaml:"namespace"`
	LegacyNamespace string `yaml:"legacy_namespace"`
	Documentation   string `yaml:"documentation"`
	SchemeLabel     string `yaml:"scheme_label"`
	SchemeComment   string `yaml:"scheme_comment"`
	CreatorName     string `yaml:"creator_name"`
	CreatorHomepage string `yaml:"creator_homepage"`
}

// OutputConfig names the output files. The JSON-LD, RDF/XML and graph
// files are written only when named.
type OutputConfig struct {
	Turtle      string `yaml:"turtle"`
	Codelists   string `yaml:"codelists"`
	Tuning      string `yaml:"tuning"`
	Comments    string `yaml:"comments"`
	NoMatch     string `yaml:"no_match"`
	JSONLD      string `yaml:"jsonld"`
	RDFXML      string `yaml:"rdfxml"`
	Graph       string `yaml:"graph"`
	GraphFormat string `yaml:"graph_format"` // dot or json
}

// InferenceConfig controls classification.
type InferenceConfig struct {
	IncludeContext  bool   `yaml:"include_context"`
	IncludeNarrower bool   `yaml:"include_narrower"`
	Tuning          bool   `yaml:"tuning"`
	Workers         int    `yaml:"workers"`
	DebugConcept    string `yaml:"debug_concept"`
	FixesDir        string `yaml:"fixes_dir"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Source: SourceConfig{
			XMLURL:      DefaultXMLURL,
			OldModelURL: DefaultOldModelURL,
			Timeout:     "10s",
			UserAgent:   "glossgen/1.0",
			CacheTTL:    "24h",
		},
		Model: ModelConfig{
			Prefix:          "sip",
			Namespace:       DefaultNamespace,
			LegacyNamespace: DefaultOldModelURL,
			Documentation:   DefaultDocumentation,
			SchemeLabel:     "Content Oriented Guidelines concept scheme",
			SchemeComment:   "The new model replaces the outdated version from 2009.",
			CreatorName:     "SemanticPro - E-projecting R&D Group",
			CreatorHomepage: "http://www.semanticpro.org",
		},
		Output: OutputConfig{
			Turtle:      "sdmx-glossary.ttl",
			Codelists:   "codelists.csv",
			Tuning:      "tuning.txt",
			Comments:    "comments.txt",
			NoMatch:     "no_match_concepts.ttl",
			GraphFormat: "dot",
		},
		Inference: InferenceConfig{
			Tuning:  true,
			Workers: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults and applies environment
// overrides. An empty path or a missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv(EnvXMLURL); url != "" {
		c.Source.XMLURL = url
	}
	if url := os.Getenv(EnvOldModelURL); url != "" {
		c.Source.OldModelURL = url
	}
	if dir := os.Getenv(EnvCacheDir); dir != "" {
		c.Source.CacheDir = dir
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	var problems []string

	if c.Source.XMLURL == "" {
		problems = append(problems, "source.xml_url is required")
	}
	if c.Source.OldModelURL == "" {
		problems = append(problems, "source.old_model_url is required")
	}
	if _, err := time.ParseDuration(c.Source.Timeout); err != nil {
		problems = append(problems, fmt.Sprintf("source.timeout %q is not a duration", c.Source.Timeout))
	}
	if c.Source.CacheDir != "" {
		if _, err := time.ParseDuration(c.Source.CacheTTL); err != nil {
			problems = append(problems, fmt.Sprintf("source.cache_ttl %q is not a duration", c.Source.CacheTTL))
		}
	}
	if c.Model.Prefix == "" || strings.ContainsAny(c.Model.Prefix, " :#/") {
		problems = append(problems, fmt.Sprintf("model.prefix %q is not a valid prefix", c.Model.Prefix))
	}
	if c.Model.Namespace == "" {
		problems = append(problems, "model.namespace is required")
	}
	if c.Model.LegacyNamespace == "" {
		problems = append(problems, "model.legacy_namespace is required")
	}
	if c.Output.Turtle == "" {
		problems = append(problems, "output.turtle is required")
	}
	switch c.Output.GraphFormat {
	case "", "dot", "json":
	default:
		problems = append(problems, fmt.Sprintf("output.graph_format %q must be dot or json", c.Output.GraphFormat))
	}
	if c.Inference.Workers < 0 {
		problems = append(problems, "inference.workers must not be negative")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "json", "console":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be json or console", c.Logging.Format))
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
	}
	return nil
}

// GetTimeout returns the retrieval timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Source.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetCacheTTL returns the cache entry lifetime as a duration.
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Source.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}
