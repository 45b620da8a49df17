// Package config loads the annotext TOML configuration.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/revelaction/annotext/chunk"
)

// Component names known to the pipeline, in their default order.
const (
	Tagger      = "tagger"
	Lemmatizer  = "lemmatizer"
	Stemmer     = "stemmer"
	Attributes  = "attributes"
	NER         = "ner"
	EntityRuler = "entity_ruler"
	Chunker     = "chunker"
)

type Config struct {
	Language string

	LogLevel string

	// Components are the pipeline component names, in order.
	Components []string
	Workers    int

	StopLanguage string
	StopExtra    []string

	StemLanguage      string
	StemStopWords     bool
	ChunkGrammar      string
	RulerPatterns     string
	RulerOverwrite    bool
	DocPath, RulePath string
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{
		Language:     "english",
		LogLevel:     "info",
		Components:   []string{Tagger, Lemmatizer, Stemmer, Attributes, NER, Chunker},
		Workers:      4,
		StopLanguage: "english",
		StemLanguage: "english",
		ChunkGrammar: chunk.NounChunks,
	}
}

// config.toml key mapping
type fileConfig struct {
	Language string `toml:"language"`

	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`

	Pipeline struct {
		Components []string `toml:"components"`
		Workers    int      `toml:"workers"`
	} `toml:"pipeline"`

	Stopwords struct {
		Language string   `toml:"language"`
		Extra    []string `toml:"extra"`
	} `toml:"stopwords"`

	Stemmer struct {
		Language      string `toml:"language"`
		StemStopWords bool   `toml:"stem_stopwords"`
	} `toml:"stemmer"`

	Chunker struct {
		Grammar string `toml:"grammar"`
	} `toml:"chunker"`

	EntityRuler struct {
		Patterns  string `toml:"patterns"`
		Overwrite bool   `toml:"overwrite"`
	} `toml:"entity_ruler"`

	Storage struct {
		DocPath  string `toml:"doc_path"`
		RulePath string `toml:"rule_path"`
	} `toml:"storage"`
}

// Load overlays the TOML file at path on top of Default. Only keys present
// in the file override a default.
func Load(path string) (Config, error) {
	cfg := Default()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load config: unknown key %q", undecoded[0].String())
	}

	if meta.IsDefined("language") {
		cfg.Language = strings.TrimSpace(raw.Language)
		// the language also drives stop words and stemming unless set
		cfg.StopLanguage = cfg.Language
		cfg.StemLanguage = cfg.Language
	}
	if meta.IsDefined("log", "level") {
		cfg.LogLevel = strings.TrimSpace(raw.Log.Level)
	}
	if meta.IsDefined("pipeline", "components") {
		cfg.Components = raw.Pipeline.Components
	}
	if meta.IsDefined("pipeline", "workers") {
		cfg.Workers = raw.Pipeline.Workers
	}
	if meta.IsDefined("stopwords", "language") {
		cfg.StopLanguage = strings.TrimSpace(raw.Stopwords.Language)
	}
	if meta.IsDefined("stopwords", "extra") {
		cfg.StopExtra = raw.Stopwords.Extra
	}
	if meta.IsDefined("stemmer", "language") {
		cfg.StemLanguage = strings.TrimSpace(raw.Stemmer.Language)
	}
	if meta.IsDefined("stemmer", "stem_stopwords") {
		cfg.StemStopWords = raw.Stemmer.StemStopWords
	}
	if meta.IsDefined("chunker", "grammar") {
		cfg.ChunkGrammar = raw.Chunker.Grammar
	}
	if meta.IsDefined("entity_ruler", "patterns") {
		cfg.RulerPatterns = strings.TrimSpace(raw.EntityRuler.Patterns)
	}
	if meta.IsDefined("entity_ruler", "overwrite") {
		cfg.RulerOverwrite = raw.EntityRuler.Overwrite
	}
	if meta.IsDefined("storage", "doc_path") {
		cfg.DocPath = strings.TrimSpace(raw.Storage.DocPath)
	}
	if meta.IsDefined("storage", "rule_path") {
		cfg.RulePath = strings.TrimSpace(raw.Storage.RulePath)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// IsComponent reports whether name is a known pipeline component.
func IsComponent(name string) bool {
	switch name {
	case Tagger, Lemmatizer, Stemmer, Attributes, NER, EntityRuler, Chunker:
		return true
	}
	return false
}

// Validate checks the values that can be checked without building the
// pipeline.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	seen := map[string]bool{}
	for _, name := range c.Components {
		if !IsComponent(name) {
			return fmt.Errorf("unknown pipeline component %q", name)
		}
		if seen[name] {
			return fmt.Errorf("duplicate pipeline component %q", name)
		}
		seen[name] = true
	}

	if seen[EntityRuler] && c.RulerPatterns == "" {
		return fmt.Errorf("entity_ruler component needs [entity_ruler] patterns")
	}

	return nil
}
