// Package config loads the externally tunable rule set and project
// settings from a TOML file. Marker strings, fraction notation and
// confidence weights vary per document era, so they live in
// configuration rather than code; every field has a compiled-in default
// and the file only overrides what it names.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/dvloznov/ledger-audit/internal/domain"
	"github.com/dvloznov/ledger-audit/internal/ledger"
)

// Config is the full configuration surface of the audit service.
type Config struct {
	Project Project `toml:"project"`
	Model   Model   `toml:"model"`
	Rules   Rules   `toml:"rules"`
	Workers int     `toml:"workers"` // parallel page workers; 0 = NumCPU
}

// Project holds the GCP locations the pipeline reads from and writes to.
type Project struct {
	ProjectID string `toml:"project_id"`
	Dataset   string `toml:"dataset"`
	Bucket    string `toml:"bucket"`
}

// Model names the vision model used by the extraction collaborator.
type Model struct {
	Name string `toml:"name"`
}

// Rules is the TOML shape of the validation rule set.
type Rules struct {
	TotalMarkers           []string          `toml:"total_markers"`
	TitleMarkers           []string          `toml:"title_markers"`
	FractionTokens         map[string]string `toml:"fraction_tokens"`
	Weights                ledger.Weights    `toml:"weights"`
	LowConfidenceThreshold float64           `toml:"low_confidence_threshold"`
}

// Default returns the built-in configuration.
func Default() *Config {
	r := ledger.DefaultRules()
	tokens := make(map[string]string, len(r.FractionTokens))
	for k, v := range r.FractionTokens {
		tokens[k] = string(v)
	}
	return &Config{
		Project: Project{Dataset: "ledger_audit"},
		Model:   Model{Name: "gemini-2.5-flash"},
		Rules: Rules{
			TotalMarkers:           r.TotalMarkers,
			TitleMarkers:           r.TitleMarkers,
			FractionTokens:         tokens,
			Weights:                r.Weights,
			LowConfidenceThreshold: r.LowConfidenceThreshold,
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path
// returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parsing %s: %w", path, err)
	}

	if _, err := cfg.LedgerRules(); err != nil {
		return nil, fmt.Errorf("config.Load: %s: %w", path, err)
	}
	return cfg, nil
}

// LedgerRules converts the TOML rule shape into the core rule set,
// validating the fraction tokens and weights.
func (c *Config) LedgerRules() (ledger.Rules, error) {
	tokens := make(map[string]domain.PenceFraction, len(c.Rules.FractionTokens))
	for token, frac := range c.Rules.FractionTokens {
		f := domain.PenceFraction(frac)
		if !f.Known() || f == domain.FractionNone {
			return ledger.Rules{}, fmt.Errorf("fraction token %q maps to unknown fraction %q", token, frac)
		}
		tokens[token] = f
	}

	if err := c.Rules.Weights.Validate(); err != nil {
		return ledger.Rules{}, err
	}

	return ledger.Rules{
		TotalMarkers:           c.Rules.TotalMarkers,
		TitleMarkers:           c.Rules.TitleMarkers,
		FractionTokens:         tokens,
		Weights:                c.Rules.Weights,
		LowConfidenceThreshold: c.Rules.LowConfidenceThreshold,
	}, nil
}
