package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

func TestDefaultRulesAreValid(t *testing.T) {
	rules, err := Default().LedgerRules()
	if err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if rules.FractionTokens["qd"] != domain.FractionQuarter {
		t.Errorf("qd maps to %q, want 1/4", rules.FractionTokens["qd"])
	}
	if rules.FractionTokens["ob"] != domain.FractionHalf {
		t.Errorf("ob maps to %q, want 1/2", rules.FractionTokens["ob"])
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Model.Name == "" {
		t.Error("expected default model name")
	}
}

func TestLoadOverrides(t *testing.T) {
	content := `
workers = 4

[project]
project_id = "test-project"
bucket = "scans"

[model]
name = "gemini-2.5-pro"

[rules]
total_markers = ["summa", "in toto"]

[rules.fraction_tokens]
q = "1/4"
ob = "1/2"

[rules.weights]
has_description = 0.1
has_amount = 0.3
valid_pence_fraction = 0.2
type_content_consistency = 0.2
amount_numeric_validity = 0.2
`
	path := writeTempConfig(t, content)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Project.ProjectID != "test-project" || cfg.Workers != 4 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Model.Name != "gemini-2.5-pro" {
		t.Errorf("model = %q, want gemini-2.5-pro", cfg.Model.Name)
	}

	rules, err := cfg.LedgerRules()
	if err != nil {
		t.Fatalf("LedgerRules failed: %v", err)
	}
	if len(rules.TotalMarkers) != 2 || rules.TotalMarkers[1] != "in toto" {
		t.Errorf("total markers = %v", rules.TotalMarkers)
	}
	if rules.Weights.HasAmount != 0.3 {
		t.Errorf("has_amount weight = %v, want 0.3", rules.Weights.HasAmount)
	}
}

func TestLoadRejectsBadWeights(t *testing.T) {
	content := `
[rules.weights]
has_description = 0.9
has_amount = 0.9
valid_pence_fraction = 0.0
type_content_consistency = 0.0
amount_numeric_validity = 0.0
`
	if _, err := Load(writeTempConfig(t, content)); err == nil {
		t.Error("expected error for weights not summing to 1.0")
	}
}

func TestLoadRejectsUnknownFraction(t *testing.T) {
	content := `
[rules.fraction_tokens]
x = "2/3"
`
	if _, err := Load(writeTempConfig(t, content)); err == nil {
		t.Error("expected error for unknown fraction value")
	}
}

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}
	return path
}
