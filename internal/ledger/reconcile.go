package ledger

import (
	"sort"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// ReconcilePage audits a page's arithmetic. Total rows delimit
// reconciliation windows: each window spans the entries (reduced through
// the aggregator) since the previous total row, or page start, up to the
// total row that closes it. Multiple totals on one page are reconciled
// independently.
//
// Comparison is exact integer arithmetic in whole pence; historical
// bookkeeping has no fuzzy tolerance. Fractional pence are floored for
// the comparison only, since stated totals never carry sub-pence
// fractions. A total row whose declared amount is entirely null yields
// an indeterminate record, distinct from a mismatch. Pages without total
// rows yield no record at all.
func ReconcilePage(rows []*domain.LedgerRow, groups []Group) []domain.PageReconciliation {
	ordered := make([]*domain.LedgerRow, len(rows))
	copy(ordered, rows)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].RowIndex < ordered[j].RowIndex })

	var records []domain.PageReconciliation
	prevTotalIndex := 0 // window opens after this row index; 0 = page start

	for _, row := range ordered {
		if row.RowType != domain.RowTypeTotal {
			continue
		}

		var farthings int64
		for _, g := range groups {
			if g.AnchorIndex > prevTotalIndex && g.AnchorIndex < row.RowIndex {
				farthings += g.Sum.Farthings()
			}
		}
		computed := domain.FromFarthings(farthings)

		rec := domain.PageReconciliation{
			FileID:        row.FileID,
			PageNumber:    row.PageNumber,
			WindowIndex:   len(records),
			TotalRowIndex: row.RowIndex,
			DeclaredTotal: row.Amount,
			ComputedSum:   computed,
		}

		if !row.Amount.HasAny() {
			rec.Status = domain.ReconciliationIndeterminate
		} else {
			rec.DeltaPence = row.Amount.WholePence() - computed.WholePence()
			if rec.DeltaPence == 0 {
				rec.Status = domain.ReconciliationMatched
				rec.Matches = true
			} else {
				rec.Status = domain.ReconciliationMismatch
			}
		}

		records = append(records, rec)
		prevTotalIndex = row.RowIndex
	}

	return records
}
