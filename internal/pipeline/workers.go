package pipeline

import (
	"runtime"
	"sort"
	"sync"

	"github.com/dvloznov/ledger-audit/internal/domain"
	"github.com/dvloznov/ledger-audit/internal/ledger"
)

// BatchResult is the outcome of validating one batch of extracted rows:
// per-page results plus merged, deterministically ordered views.
type BatchResult struct {
	Pages           []ledger.PageResult
	Rows            []*domain.LedgerRow
	Reconciliations []domain.PageReconciliation
	Summary         ledger.BatchSummary
}

// ValidateRows runs the validation core over a batch of raw rows. Pages
// are independent pure computations, so they fan out across a bounded
// worker pool; because every output is keyed by (file_id, page_number,
// row_index), the merge is deterministic regardless of completion order.
// workers <= 0 uses one worker per CPU.
func ValidateRows(rawRows []domain.RawRow, rules ledger.Rules, workers int) *BatchResult {
	pages := ledger.SplitPages(rawRows)

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pages) {
		workers = len(pages)
	}

	results := make([]ledger.PageResult, len(pages))

	if workers <= 1 {
		for i, p := range pages {
			results[i] = ledger.ValidatePage(p, rules)
		}
	} else {
		var wg sync.WaitGroup
		indexes := make(chan int)

		for w := 0; w < workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range indexes {
					// Each worker writes only its own slot; no locks needed.
					results[i] = ledger.ValidatePage(pages[i], rules)
				}
			}()
		}
		for i := range pages {
			indexes <- i
		}
		close(indexes)
		wg.Wait()
	}

	return mergeResults(results, rules)
}

// mergeResults flattens per-page results into batch-wide views sorted
// by row key, and computes the batch summary.
func mergeResults(results []ledger.PageResult, rules ledger.Rules) *BatchResult {
	batch := &BatchResult{Pages: results}

	for _, pr := range results {
		batch.Rows = append(batch.Rows, pr.Rows...)
		batch.Reconciliations = append(batch.Reconciliations, pr.Reconciliations...)
	}

	sort.SliceStable(batch.Rows, func(i, j int) bool {
		return batch.Rows[i].Key().Less(batch.Rows[j].Key())
	})
	sort.SliceStable(batch.Reconciliations, func(i, j int) bool {
		a, b := batch.Reconciliations[i], batch.Reconciliations[j]
		if a.FileID != b.FileID {
			return a.FileID < b.FileID
		}
		if a.PageNumber != b.PageNumber {
			return a.PageNumber < b.PageNumber
		}
		return a.WindowIndex < b.WindowIndex
	})

	batch.Summary = ledger.Summarize(results, rules.LowConfidenceThreshold)
	return batch
}
