package pipeline

import (
	"context"

	"github.com/dvloznov/ledger-audit/internal/domain"
	infra "github.com/dvloznov/ledger-audit/internal/infra/bigquery"
)

// StorageService is an interface for scan storage operations.
type StorageService interface {
	// Fetch downloads the object at a gs:// URI.
	Fetch(ctx context.Context, gcsURI string) ([]byte, error)
	// ObjectName extracts the object filename from a gs:// URI.
	ObjectName(uri string) string
}

// AIParser is the boundary to the external vision-extraction
// collaborator. The validation core treats its output as untrusted; it
// never re-requests or retries against the image source.
type AIParser interface {
	// ExtractRows sends the scanned ledger PDF to the vision model and
	// returns its raw JSON output as a generic map.
	ExtractRows(ctx context.Context, pdfBytes []byte) (map[string]interface{}, error)
}

// AuditRepository is the persistence boundary: document and parsing-run
// bookkeeping plus export of validated rows and reconciliation records.
type AuditRepository interface {
	InsertDocument(ctx context.Context, row *infra.DocumentRow) error
	StartParsingRun(ctx context.Context, documentID string) (string, error)
	MarkParsingRunFailed(ctx context.Context, parsingRunID string, parseErr error)
	MarkParsingRunSucceeded(ctx context.Context, parsingRunID string) error
	InsertModelOutput(ctx context.Context, parsingRunID, documentID string, rawOutput map[string]interface{}) error
	InsertLedgerRows(ctx context.Context, documentID, parsingRunID string, rows []*domain.LedgerRow) error
	InsertReconciliations(ctx context.Context, documentID, parsingRunID string, recs []domain.PageReconciliation) error
}
