package domain

import "fmt"

// RowType classifies the structural role of one ledger line. Exactly one
// type holds per row.
type RowType string

const (
	RowTypeTitle         RowType = "title"
	RowTypeSectionHeader RowType = "section_header"
	RowTypeEntry         RowType = "entry"
	RowTypeTotal         RowType = "total"
)

// Valid reports whether t is one of the four recognized row types.
func (t RowType) Valid() bool {
	switch t {
	case RowTypeTitle, RowTypeSectionHeader, RowTypeEntry, RowTypeTotal:
		return true
	}
	return false
}

// RawRow is one line exactly as delivered by the vision-extraction step:
// untrusted strings, possibly empty, possibly malformed. The validation
// core never mutates these fields; it only derives from them.
type RawRow struct {
	FileID     string `json:"file_id"`
	PageNumber int    `json:"page_number"`
	RowIndex   int    `json:"row_index"` // 1-based order within the page, assigned at extraction time

	RowTypeHint string `json:"row_type,omitempty"` // extraction-side guess, not trusted for amount presence
	DateRaw     string `json:"date_raw,omitempty"`
	Description string `json:"description"`

	PoundsRaw        string `json:"amount_pounds"`
	ShillingsRaw     string `json:"amount_shillings"`
	PenceWholeRaw    string `json:"amount_pence_whole"`
	PenceFractionRaw string `json:"amount_pence_fraction"`

	TransactionType string `json:"transaction_type,omitempty"` // credit/debit/income/expenditure on balance sheets
	GroupBraceID    string `json:"group_brace_id,omitempty"`
}

// HasIdentity reports whether the row carries the identity fields required
// to key its output. Rows without identity are unprocessable and excluded
// from the page (the page is then flagged incomplete).
func (r RawRow) HasIdentity() bool {
	return r.FileID != "" && r.PageNumber >= 1 && r.RowIndex >= 1
}

// RowKey identifies one row across the whole batch. Workers may process
// pages in any order; results are merged deterministically by this key.
type RowKey struct {
	FileID     string
	PageNumber int
	RowIndex   int
}

// Less orders keys by file, then page, then row index.
func (k RowKey) Less(o RowKey) bool {
	if k.FileID != o.FileID {
		return k.FileID < o.FileID
	}
	if k.PageNumber != o.PageNumber {
		return k.PageNumber < o.PageNumber
	}
	return k.RowIndex < o.RowIndex
}

func (k RowKey) String() string {
	return fmt.Sprintf("%s/p%d/r%d", k.FileID, k.PageNumber, k.RowIndex)
}

// LedgerRow is the canonical validated row: the raw content preserved
// verbatim plus everything the validation core derives from it.
type LedgerRow struct {
	FileID     string `json:"file_id"`
	PageNumber int    `json:"page_number"`
	RowIndex   int    `json:"row_index"`

	RowType RowType `json:"row_type"`

	DateRaw         string `json:"date_raw,omitempty"`
	Description     string `json:"description"`
	TransactionType string `json:"transaction_type,omitempty"`

	Amount       Amount `json:"amount"`
	GroupBraceID string `json:"group_brace_id,omitempty"`

	// Derived. Never supplied by the extraction step.
	ConfidenceScore float64           `json:"confidence_score"`
	Signals         ConfidenceSignals `json:"signals"`
	CurrencyValid   bool              `json:"currency_valid"`
	Violations      []FieldViolation  `json:"violations,omitempty"`
	ParseNotes      []string          `json:"parse_notes,omitempty"`
}

// Key returns the merge key for this row.
func (r *LedgerRow) Key() RowKey {
	return RowKey{FileID: r.FileID, PageNumber: r.PageNumber, RowIndex: r.RowIndex}
}

// ConfidenceSignals are the five independent quality signals behind a
// row's confidence score. The score is always re-derivable from these.
type ConfidenceSignals struct {
	HasDescription         bool `json:"has_description"`
	HasAmount              bool `json:"has_amount"`
	ValidPenceFraction     bool `json:"valid_pence_fraction"`
	TypeContentConsistency bool `json:"type_content_consistency"`
	AmountNumericValidity  bool `json:"amount_numeric_validity"`
}

// FieldViolation records one currency-range legality failure. A row may
// carry zero, one, two, or three of these at once; they are reported
// independently of the confidence score so impossible values are never
// masked by an otherwise clean row.
type FieldViolation struct {
	Field  string `json:"field"` // "pounds", "shillings", "pence_whole"
	Value  int    `json:"value"`
	Reason string `json:"reason"`
}

func (v FieldViolation) String() string {
	return fmt.Sprintf("%s=%d: %s", v.Field, v.Value, v.Reason)
}
