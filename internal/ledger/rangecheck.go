package ledger

import "github.com/dvloznov/ledger-audit/internal/domain"

// Legal bounds for pre-decimal currency columns: a legal row never has
// 20 or more shillings nor 12 or more pence, and never negative money.
const (
	MaxShillings = 19
	MaxPence     = 11
)

// CheckRange validates the normalized amount of an entry or total row
// against the legal currency bounds. Each field is checked independently,
// so a row can fail one, two, or three checks at once. Null fields are
// vacuously valid: absence is not a violation. Rows of other types are
// not checked; an amount preserved on a title or header is outside the
// arithmetic and vacuously valid.
//
// The pence fraction is never checked: it is strictly less than one
// pence by construction and cannot violate a bound on its own.
func CheckRange(rowType domain.RowType, amt domain.Amount) (bool, []domain.FieldViolation) {
	if rowType != domain.RowTypeEntry && rowType != domain.RowTypeTotal {
		return true, nil
	}

	var violations []domain.FieldViolation

	if amt.Pounds != nil && *amt.Pounds < 0 {
		violations = append(violations, domain.FieldViolation{
			Field: "pounds", Value: *amt.Pounds, Reason: "pounds must be non-negative",
		})
	}
	if amt.Shillings != nil && (*amt.Shillings < 0 || *amt.Shillings > MaxShillings) {
		violations = append(violations, domain.FieldViolation{
			Field: "shillings", Value: *amt.Shillings, Reason: "shillings must be in [0,19]",
		})
	}
	if amt.PenceWhole != nil && (*amt.PenceWhole < 0 || *amt.PenceWhole > MaxPence) {
		violations = append(violations, domain.FieldViolation{
			Field: "pence_whole", Value: *amt.PenceWhole, Reason: "pence must be in [0,11]",
		})
	}

	return len(violations) == 0, violations
}
