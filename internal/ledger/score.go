package ledger

import (
	"math"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// Score computes the rule-based confidence score for one classified row
// from five independent signals. The score is the exact sum of the
// weights of the satisfied signals, rounded to two decimals; re-deriving
// it from the returned signals always reproduces it.
//
// Currency-range violations are deliberately not a signal here. A
// known-impossible value is a separate failure mode and is surfaced by
// the range validator instead, so a clean-looking row can never mask one.
func Score(rowType domain.RowType, description string, amt domain.Amount, parseErrs []*domain.ParseError, w Weights) (float64, domain.ConfidenceSignals) {
	sig := domain.ConfidenceSignals{
		HasDescription:         !isBlank(description),
		HasAmount:              amt.HasAny(),
		ValidPenceFraction:     !hasParseError(parseErrs, "pence_fraction"),
		TypeContentConsistency: typeContentConsistent(rowType, amt),
		AmountNumericValidity:  len(parseErrs) == 0,
	}

	var score float64
	if sig.HasDescription {
		score += w.HasDescription
	}
	if sig.HasAmount {
		score += w.HasAmount
	}
	if sig.ValidPenceFraction {
		score += w.ValidPenceFraction
	}
	if sig.TypeContentConsistency {
		score += w.TypeContentConsistency
	}
	if sig.AmountNumericValidity {
		score += w.AmountNumericValidity
	}

	return math.Round(score*100) / 100, sig
}

func hasParseError(errs []*domain.ParseError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// typeContentConsistent checks the row's type against amount presence
// using the classifier's own rule: entries and totals carry amounts,
// section headers do not, titles are consistent either way.
func typeContentConsistent(rowType domain.RowType, amt domain.Amount) bool {
	switch rowType {
	case domain.RowTypeEntry, domain.RowTypeTotal:
		return amt.HasAny()
	case domain.RowTypeSectionHeader:
		return !amt.HasAny()
	case domain.RowTypeTitle:
		return true
	}
	return false
}
