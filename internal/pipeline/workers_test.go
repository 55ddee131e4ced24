package pipeline

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/dvloznov/ledger-audit/internal/domain"
	"github.com/dvloznov/ledger-audit/internal/ledger"
)

// batchFixture builds pages across two files, each page with entries and
// a matching total row.
func batchFixture(files, pagesPerFile int) []domain.RawRow {
	var rows []domain.RawRow
	for f := 0; f < files; f++ {
		fileID := fmt.Sprintf("file-%d", f)
		for p := 1; p <= pagesPerFile; p++ {
			rows = append(rows,
				domain.RawRow{
					FileID: fileID, PageNumber: p, RowIndex: 1,
					Description: "Paid the sexton", ShillingsRaw: "2", PenceWholeRaw: "6",
				},
				domain.RawRow{
					FileID: fileID, PageNumber: p, RowIndex: 2,
					Description: "Paid for bread and wine", ShillingsRaw: "1", PenceWholeRaw: "3",
				},
				domain.RawRow{
					FileID: fileID, PageNumber: p, RowIndex: 3,
					Description: "Summa", ShillingsRaw: "3", PenceWholeRaw: "9",
				},
			)
		}
	}
	return rows
}

func TestValidateRowsMergesDeterministically(t *testing.T) {
	raw := batchFixture(2, 5)
	rules := ledger.DefaultRules()

	sequential := ValidateRows(raw, rules, 1)
	parallel := ValidateRows(raw, rules, 4)

	if len(sequential.Rows) != len(raw) {
		t.Fatalf("sequential kept %d rows, want %d", len(sequential.Rows), len(raw))
	}
	if !reflect.DeepEqual(sequential.Rows, parallel.Rows) {
		t.Error("parallel row order differs from sequential")
	}
	if !reflect.DeepEqual(sequential.Reconciliations, parallel.Reconciliations) {
		t.Error("parallel reconciliation order differs from sequential")
	}
	if !reflect.DeepEqual(sequential.Summary, parallel.Summary) {
		t.Error("parallel summary differs from sequential")
	}

	// Merged rows must be sorted by (file_id, page_number, row_index).
	for i := 1; i < len(parallel.Rows); i++ {
		if parallel.Rows[i].Key().Less(parallel.Rows[i-1].Key()) {
			t.Fatalf("rows out of order at %d: %s before %s",
				i, parallel.Rows[i-1].Key(), parallel.Rows[i].Key())
		}
	}
}

func TestValidateRowsReconcilesEveryPage(t *testing.T) {
	raw := batchFixture(1, 3)
	result := ValidateRows(raw, ledger.DefaultRules(), 0)

	if len(result.Reconciliations) != 3 {
		t.Fatalf("got %d reconciliation records, want 3", len(result.Reconciliations))
	}
	for _, rec := range result.Reconciliations {
		if rec.Status != domain.ReconciliationMatched {
			t.Errorf("page %d: status %q, want matched", rec.PageNumber, rec.Status)
		}
	}
	if result.Summary.WindowsMatched != 3 {
		t.Errorf("Summary.WindowsMatched = %d, want 3", result.Summary.WindowsMatched)
	}
}

func TestValidateRowsEmptyBatch(t *testing.T) {
	result := ValidateRows(nil, ledger.DefaultRules(), 4)
	if len(result.Rows) != 0 || len(result.Reconciliations) != 0 {
		t.Errorf("empty batch produced %d rows, %d reconciliations",
			len(result.Rows), len(result.Reconciliations))
	}
	if result.Summary.TotalPages != 0 {
		t.Errorf("Summary.TotalPages = %d, want 0", result.Summary.TotalPages)
	}
}
