package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// ReconciliationRow is the export shape of one page-level arithmetic
// audit record.
type ReconciliationRow struct {
	DocumentID   string `bigquery:"document_id"`    // REQUIRED
	ParsingRunID string `bigquery:"parsing_run_id"` // REQUIRED

	FileID        string `bigquery:"file_id"`         // REQUIRED
	PageNumber    int64  `bigquery:"page_number"`     // REQUIRED
	WindowIndex   int64  `bigquery:"window_index"`    // REQUIRED
	TotalRowIndex int64  `bigquery:"total_row_index"` // REQUIRED

	DeclaredTotal string `bigquery:"declared_total"` // NULLABLE, display form
	ComputedSum   string `bigquery:"computed_sum"`   // NULLABLE, display form

	Status     string             `bigquery:"status"`      // REQUIRED
	Matches    bool               `bigquery:"matches"`     // REQUIRED
	DeltaPence bigquery.NullInt64 `bigquery:"delta_pence"` // NULLABLE, null when indeterminate

	CreatedTS time.Time `bigquery:"created_ts"` // REQUIRED
}

// InsertReconciliations batch-inserts reconciliation records for one
// parsing run.
func (c *Client) InsertReconciliations(ctx context.Context, documentID, parsingRunID string, recs []domain.PageReconciliation) error {
	if len(recs) == 0 {
		return nil
	}

	now := time.Now()
	rows := make([]*ReconciliationRow, 0, len(recs))
	for _, rec := range recs {
		delta := bigquery.NullInt64{}
		if rec.Status != domain.ReconciliationIndeterminate {
			delta = bigquery.NullInt64{Int64: rec.DeltaPence, Valid: true}
		}
		rows = append(rows, &ReconciliationRow{
			DocumentID:    documentID,
			ParsingRunID:  parsingRunID,
			FileID:        rec.FileID,
			PageNumber:    int64(rec.PageNumber),
			WindowIndex:   int64(rec.WindowIndex),
			TotalRowIndex: int64(rec.TotalRowIndex),
			DeclaredTotal: rec.DeclaredTotal.String(),
			ComputedSum:   rec.ComputedSum.String(),
			Status:        string(rec.Status),
			Matches:       rec.Matches,
			DeltaPence:    delta,
			CreatedTS:     now,
		})
	}

	inserter := c.bq.Dataset(c.datasetID).Table(reconciliationsTable).Inserter()
	if err := inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("InsertReconciliations: inserting %d rows: %w", len(rows), err)
	}
	return nil
}
