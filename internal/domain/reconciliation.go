package domain

// ReconciliationStatus is the outcome of checking one declared total
// against the entries attributed to it.
type ReconciliationStatus string

const (
	// ReconciliationMatched: computed sum equals the declared total
	// exactly in whole pence.
	ReconciliationMatched ReconciliationStatus = "matched"
	// ReconciliationMismatch: the sums disagree. Reported, never raised.
	ReconciliationMismatch ReconciliationStatus = "mismatch"
	// ReconciliationIndeterminate: the total row exists but its declared
	// amount is entirely null, so there is nothing to compare against.
	ReconciliationIndeterminate ReconciliationStatus = "indeterminate"
)

// PageReconciliation is one arithmetic audit record: the entries of one
// reconciliation window summed against the total row that closes it.
// Pages with no total rows produce no record at all. Records are derived
// fresh on every validation run.
type PageReconciliation struct {
	FileID     string `json:"file_id"`
	PageNumber int    `json:"page_number"`

	// WindowIndex is the 0-based position of this window on the page;
	// TotalRowIndex is the row index of the total row closing it.
	WindowIndex   int `json:"window_index"`
	TotalRowIndex int `json:"total_row_index"`

	DeclaredTotal Amount `json:"declared_total"`
	ComputedSum   Amount `json:"computed_sum"`

	Status  ReconciliationStatus `json:"status"`
	Matches bool                 `json:"matches"`

	// DeltaPence is declared minus computed, in whole pence. Positive
	// means the page claims more than its entries add up to.
	DeltaPence int64 `json:"delta_pence"`
}
