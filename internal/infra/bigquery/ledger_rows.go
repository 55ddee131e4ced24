package bigquery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// LedgerRowRecord is the export shape of one validated ledger row.
// Amount components are nullable INT64s so absence survives the round
// trip; structured derivations ride along as JSON.
type LedgerRowRecord struct {
	DocumentID   string `bigquery:"document_id"`    // REQUIRED
	ParsingRunID string `bigquery:"parsing_run_id"` // REQUIRED

	FileID     string `bigquery:"file_id"`     // REQUIRED
	PageNumber int64  `bigquery:"page_number"` // REQUIRED
	RowIndex   int64  `bigquery:"row_index"`   // REQUIRED

	RowType string `bigquery:"row_type"` // REQUIRED

	DateRaw         string `bigquery:"date_raw"`         // NULLABLE
	Description     string `bigquery:"description"`      // NULLABLE
	TransactionType string `bigquery:"transaction_type"` // NULLABLE

	Pounds        bigquery.NullInt64 `bigquery:"pounds"`         // NULLABLE
	Shillings     bigquery.NullInt64 `bigquery:"shillings"`      // NULLABLE
	PenceWhole    bigquery.NullInt64 `bigquery:"pence_whole"`    // NULLABLE
	PenceFraction string             `bigquery:"pence_fraction"` // NULLABLE

	GroupBraceID string `bigquery:"group_brace_id"` // NULLABLE

	ConfidenceScore float64 `bigquery:"confidence_score"` // REQUIRED
	CurrencyValid   bool    `bigquery:"currency_valid"`   // REQUIRED

	Signals    bigquery.NullJSON `bigquery:"signals"`     // REQUIRED (JSON)
	Violations bigquery.NullJSON `bigquery:"violations"`  // NULLABLE (JSON)
	ParseNotes []string          `bigquery:"parse_notes"` // REPEATED

	AuditDate civil.Date `bigquery:"audit_date"` // REQUIRED, partition column
	CreatedTS time.Time  `bigquery:"created_ts"` // REQUIRED
}

// InsertLedgerRows batch-inserts validated rows for one parsing run.
func (c *Client) InsertLedgerRows(ctx context.Context, documentID, parsingRunID string, rows []*domain.LedgerRow) error {
	if len(rows) == 0 {
		return nil
	}

	now := time.Now()
	auditDate := civil.DateOf(now)

	records := make([]*LedgerRowRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := toLedgerRowRecord(row, documentID, parsingRunID, auditDate, now)
		if err != nil {
			return fmt.Errorf("InsertLedgerRows: row %s: %w", row.Key(), err)
		}
		records = append(records, rec)
	}

	inserter := c.bq.Dataset(c.datasetID).Table(ledgerRowsTable).Inserter()
	if err := inserter.Put(ctx, records); err != nil {
		return fmt.Errorf("InsertLedgerRows: inserting %d rows: %w", len(records), err)
	}
	return nil
}

func toLedgerRowRecord(row *domain.LedgerRow, documentID, parsingRunID string, auditDate civil.Date, now time.Time) (*LedgerRowRecord, error) {
	signals, err := toNullJSON(row.Signals)
	if err != nil {
		return nil, fmt.Errorf("encoding signals: %w", err)
	}

	violations := bigquery.NullJSON{}
	if len(row.Violations) > 0 {
		violations, err = toNullJSON(row.Violations)
		if err != nil {
			return nil, fmt.Errorf("encoding violations: %w", err)
		}
	}

	return &LedgerRowRecord{
		DocumentID:      documentID,
		ParsingRunID:    parsingRunID,
		FileID:          row.FileID,
		PageNumber:      int64(row.PageNumber),
		RowIndex:        int64(row.RowIndex),
		RowType:         string(row.RowType),
		DateRaw:         row.DateRaw,
		Description:     row.Description,
		TransactionType: row.TransactionType,
		Pounds:          toNullInt64(row.Amount.Pounds),
		Shillings:       toNullInt64(row.Amount.Shillings),
		PenceWhole:      toNullInt64(row.Amount.PenceWhole),
		PenceFraction:   string(row.Amount.PenceFraction),
		GroupBraceID:    row.GroupBraceID,
		ConfidenceScore: row.ConfidenceScore,
		CurrencyValid:   row.CurrencyValid,
		Signals:         signals,
		Violations:      violations,
		ParseNotes:      row.ParseNotes,
		AuditDate:       auditDate,
		CreatedTS:       now,
	}, nil
}

func toNullInt64(v *int) bigquery.NullInt64 {
	if v == nil {
		return bigquery.NullInt64{}
	}
	return bigquery.NullInt64{Int64: int64(*v), Valid: true}
}

func toNullJSON(v interface{}) (bigquery.NullJSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return bigquery.NullJSON{}, err
	}
	var decoded interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		return bigquery.NullJSON{}, err
	}
	return bigquery.NullJSON{JSONVal: string(b), Valid: true}, nil
}
