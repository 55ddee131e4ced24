package ledger

import (
	"math"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// BatchSummary aggregates one validation run for reporting: row counts,
// confidence distribution and reconciliation outcomes.
type BatchSummary struct {
	TotalRows  int `json:"total_rows"`
	TotalPages int `json:"total_pages"`
	TotalFiles int `json:"total_files"`

	RowsByType map[domain.RowType]int `json:"rows_by_type"`

	AvgConfidence      float64 `json:"avg_confidence"`
	LowConfidenceRows  int     `json:"low_confidence_rows"`
	RangeViolationRows int     `json:"range_violation_rows"`

	PagesReconciled    int `json:"pages_reconciled"`
	WindowsMatched     int `json:"windows_matched"`
	WindowsMismatched  int `json:"windows_mismatched"`
	WindowsIndetermin  int `json:"windows_indeterminate"`
	IncompletePages    int `json:"incomplete_pages"`
	ParseProblemRows   int `json:"parse_problem_rows"`
}

// Summarize computes batch statistics over validated rows and
// reconciliation records. lowThreshold is the confidence score below
// which a row counts as low-confidence.
func Summarize(results []PageResult, lowThreshold float64) BatchSummary {
	s := BatchSummary{RowsByType: make(map[domain.RowType]int)}

	files := make(map[string]bool)
	reconciledPages := make(map[[2]interface{}]bool)
	var confidenceSum float64

	for _, pr := range results {
		s.TotalPages++
		files[pr.FileID] = true
		if pr.Incomplete {
			s.IncompletePages++
		}

		for _, row := range pr.Rows {
			s.TotalRows++
			s.RowsByType[row.RowType]++
			confidenceSum += row.ConfidenceScore
			if row.ConfidenceScore < lowThreshold {
				s.LowConfidenceRows++
			}
			if !row.CurrencyValid {
				s.RangeViolationRows++
			}
			if len(row.ParseNotes) > 0 {
				s.ParseProblemRows++
			}
		}

		for _, rec := range pr.Reconciliations {
			reconciledPages[[2]interface{}{rec.FileID, rec.PageNumber}] = true
			switch rec.Status {
			case domain.ReconciliationMatched:
				s.WindowsMatched++
			case domain.ReconciliationMismatch:
				s.WindowsMismatched++
			case domain.ReconciliationIndeterminate:
				s.WindowsIndetermin++
			}
		}
	}

	s.TotalFiles = len(files)
	s.PagesReconciled = len(reconciledPages)
	if s.TotalRows > 0 {
		s.AvgConfidence = math.Round(confidenceSum/float64(s.TotalRows)*1000) / 1000
	}
	return s
}
