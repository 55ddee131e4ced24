package pipeline

import (
	"context"
	"fmt"

	"github.com/dvloznov/ledger-audit/internal/config"
	"github.com/dvloznov/ledger-audit/internal/domain"
	"github.com/dvloznov/ledger-audit/internal/gcs"
	infra "github.com/dvloznov/ledger-audit/internal/infra/bigquery"
	"github.com/dvloznov/ledger-audit/internal/ledger"
	"github.com/dvloznov/ledger-audit/internal/logger"
)

// Deps are the pipeline's injected collaborators: persistence, scan
// storage, the extraction model and the validation rule set.
type Deps struct {
	Repo    AuditRepository
	Storage StorageService
	Parser  AIParser
	Rules   ledger.Rules
	Workers int
}

// State holds the shared state across all pipeline steps.
type State struct {
	GCSURI         string
	DocumentID     string
	ParsingRunID   string
	PDFBytes       []byte
	RawModelOutput map[string]interface{}
	RawRows        []domain.RawRow
	Result         *BatchResult
}

// Step is a single step of the audit pipeline.
type Step interface {
	Execute(ctx context.Context, state *State) error
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []Step
}

// NewPipeline creates a pipeline from the given steps.
func NewPipeline(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps sequentially, stopping at the first failure.
func (p *Pipeline) Execute(ctx context.Context, state *State) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewAuditPipeline creates the standard 9-step pipeline for auditing a
// scanned ledger: create document → start run → fetch PDF → extract →
// archive raw output → transform → validate → export → mark success.
func NewAuditPipeline(deps *Deps) *Pipeline {
	return NewPipeline(
		&CreateDocumentStep{deps: deps},
		&StartParsingRunStep{deps: deps},
		&FetchPDFStep{deps: deps},
		&ExtractRowsStep{deps: deps},
		&StoreModelOutputStep{deps: deps},
		&TransformRowsStep{deps: deps},
		&ValidateRowsStep{deps: deps},
		&ExportResultsStep{deps: deps},
		&MarkSuccessStep{deps: deps},
	)
}

// AuditLedgerFromGCS processes a single scanned ledger PDF stored in
// GCS, end to end, with the real collaborators wired from configuration.
// gcsURI should look like "gs://bucket/path/to/scan.pdf".
func AuditLedgerFromGCS(ctx context.Context, cfg *config.Config, gcsURI string) (*BatchResult, error) {
	log := logger.FromContext(ctx)

	rules, err := cfg.LedgerRules()
	if err != nil {
		return nil, fmt.Errorf("AuditLedgerFromGCS: %w", err)
	}

	repo, err := infra.NewClient(ctx, cfg.Project.ProjectID, cfg.Project.Dataset)
	if err != nil {
		return nil, fmt.Errorf("AuditLedgerFromGCS: %w", err)
	}
	defer repo.Close()

	deps := &Deps{
		Repo:    repo,
		Storage: gcs.NewService(),
		Parser:  NewGeminiParser(cfg.Model.Name),
		Rules:   rules,
		Workers: cfg.Workers,
	}

	state := &State{GCSURI: gcsURI}
	if err := NewAuditPipeline(deps).Execute(ctx, state); err != nil {
		return nil, err
	}

	log.Info().
		Str("document_id", state.DocumentID).
		Int("rows", len(state.Result.Rows)).
		Int("reconciliations", len(state.Result.Reconciliations)).
		Msg("Ledger audit completed")

	return state.Result, nil
}
