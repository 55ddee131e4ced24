package ledger

import (
	"fmt"
	"sort"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// Diagnostic severities. Errors exclude a row; warnings degrade it in
// place. Nothing here ever aborts a page or a batch.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Diagnostic is one data-quality note attached to a page result.
type Diagnostic struct {
	Severity string `json:"severity"`
	RowIndex int    `json:"row_index,omitempty"`
	Field    string `json:"field,omitempty"`
	Message  string `json:"message"`
}

// PageInput is the unit of work: all raw rows of one page, in extraction
// order.
type PageInput struct {
	FileID     string
	PageNumber int
	Rows       []domain.RawRow
}

// PageResult is everything derived from one page: annotated rows,
// reconciliation records and diagnostics. Incomplete marks a page where
// at least one row lacked identity fields and had to be excluded.
type PageResult struct {
	FileID          string
	PageNumber      int
	Rows            []*domain.LedgerRow
	Reconciliations []domain.PageReconciliation
	Diagnostics     []Diagnostic
	Incomplete      bool
}

// ValidatePage runs the full validation pipeline over one page:
// normalize → classify → score + range-check → aggregate → reconcile.
// It is a pure function of its input; running it twice on the same rows
// yields identical output, and pages can be processed in parallel with
// no shared state.
func ValidatePage(in PageInput, rules Rules) PageResult {
	res := PageResult{FileID: in.FileID, PageNumber: in.PageNumber}

	raw := make([]domain.RawRow, 0, len(in.Rows))
	for _, r := range in.Rows {
		if !r.HasIdentity() {
			res.Incomplete = true
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityError,
				RowIndex: r.RowIndex,
				Message:  fmt.Sprintf("row excluded: %v", domain.ErrMissingIdentity),
			})
			continue
		}
		raw = append(raw, r)
	}
	sort.SliceStable(raw, func(i, j int) bool { return raw[i].RowIndex < raw[j].RowIndex })

	for i, r := range raw {
		amt, parseErrs := NormalizeAmount(r, rules)
		for _, pe := range parseErrs {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				RowIndex: r.RowIndex,
				Field:    pe.Field,
				Message:  pe.Error(),
			})
		}

		rowType, keep := Classify(r, amt, i == 0, rules)
		if !keep {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				RowIndex: r.RowIndex,
				Message:  "empty row discarded: no description and no amount",
			})
			continue
		}

		score, signals := Score(rowType, r.Description, amt, parseErrs, rules.Weights)
		valid, violations := CheckRange(rowType, amt)

		row := &domain.LedgerRow{
			FileID:          r.FileID,
			PageNumber:      r.PageNumber,
			RowIndex:        r.RowIndex,
			RowType:         rowType,
			DateRaw:         r.DateRaw,
			Description:     r.Description,
			TransactionType: r.TransactionType,
			Amount:          amt,
			GroupBraceID:    r.GroupBraceID,
			ConfidenceScore: score,
			Signals:         signals,
			CurrencyValid:   valid,
			Violations:      violations,
		}
		for _, pe := range parseErrs {
			row.ParseNotes = append(row.ParseNotes, pe.Error())
		}
		res.Rows = append(res.Rows, row)
	}

	groups, malformed := AggregatePage(res.Rows)
	for _, m := range malformed {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			Severity: SeverityWarning,
			RowIndex: m.RowIndex,
			Field:    "group_brace_id",
			Message:  m.Error(),
		})
	}

	res.Reconciliations = ReconcilePage(res.Rows, groups)
	for _, rec := range res.Reconciliations {
		if rec.Status == domain.ReconciliationMismatch {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				Severity: SeverityWarning,
				RowIndex: rec.TotalRowIndex,
				Message: fmt.Sprintf("reconciliation mismatch: declared %s, computed %s, delta %+dd",
					rec.DeclaredTotal, rec.ComputedSum, rec.DeltaPence),
			})
		}
	}

	return res
}

// SplitPages partitions an untrusted batch of raw rows into per-page
// units of work, ordered by (file_id, page_number). Rows without
// identity stay attached to a synthetic page keyed by whatever identity
// they do carry, so their exclusion is still reported page-locally.
func SplitPages(rows []domain.RawRow) []PageInput {
	type pageKey struct {
		fileID string
		page   int
	}
	byPage := make(map[pageKey][]domain.RawRow)
	var order []pageKey

	for _, r := range rows {
		k := pageKey{fileID: r.FileID, page: r.PageNumber}
		if _, ok := byPage[k]; !ok {
			order = append(order, k)
		}
		byPage[k] = append(byPage[k], r)
	}

	sort.Slice(order, func(i, j int) bool {
		if order[i].fileID != order[j].fileID {
			return order[i].fileID < order[j].fileID
		}
		return order[i].page < order[j].page
	})

	pages := make([]PageInput, 0, len(order))
	for _, k := range order {
		pages = append(pages, PageInput{FileID: k.fileID, PageNumber: k.page, Rows: byPage[k]})
	}
	return pages
}
