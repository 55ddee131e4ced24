// Package ledger is the validation core: a fixed pipeline of pure,
// stateless transforms over AI-extracted ledger rows. Normalization,
// classification, scoring, range checking, brace-group aggregation and
// arithmetic reconciliation are each independent functions so every stage
// is testable on its own; nothing here performs I/O or holds state.
package ledger

import (
	"fmt"
	"math"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// Weights are the five confidence-signal weights. They must sum to 1.0;
// each satisfied signal contributes its weight to the row's score.
type Weights struct {
	HasDescription         float64 `toml:"has_description"`
	HasAmount              float64 `toml:"has_amount"`
	ValidPenceFraction     float64 `toml:"valid_pence_fraction"`
	TypeContentConsistency float64 `toml:"type_content_consistency"`
	AmountNumericValidity  float64 `toml:"amount_numeric_validity"`
}

// Sum returns the total of all five weights.
func (w Weights) Sum() float64 {
	return w.HasDescription + w.HasAmount + w.ValidPenceFraction +
		w.TypeContentConsistency + w.AmountNumericValidity
}

// Validate checks the weights sum to 1.0 (within float tolerance) and
// that none is negative.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"has_description":          w.HasDescription,
		"has_amount":               w.HasAmount,
		"valid_pence_fraction":     w.ValidPenceFraction,
		"type_content_consistency": w.TypeContentConsistency,
		"amount_numeric_validity":  w.AmountNumericValidity,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative: %v", name, v)
		}
	}
	if s := w.Sum(); math.Abs(s-1.0) > 1e-9 {
		return fmt.Errorf("confidence weights sum to %v, want 1.0", s)
	}
	return nil
}

// Rules is the externally tunable rule set: marker strings, historical
// fraction notation and scoring weights vary per document era, so they
// are parameters rather than constants.
type Rules struct {
	// TotalMarkers mark a description as a total/sum line. Matched
	// case-insensitively as substrings.
	TotalMarkers []string

	// TitleMarkers mark a page-leading description as the page title.
	// A leading row containing a four-digit year also qualifies.
	TitleMarkers []string

	// FractionTokens map historical pence-fraction notation onto the
	// canonical fraction enum. Keys are matched lowercased after the
	// denarius suffix is stripped.
	FractionTokens map[string]domain.PenceFraction

	// Weights for the confidence scorer.
	Weights Weights

	// LowConfidenceThreshold is the score below which a row counts as
	// low-confidence in batch summaries.
	LowConfidenceThreshold float64
}

// DefaultRules returns the rule set for 18th–19th century English parish
// ledgers, the corpus this system was built for.
func DefaultRules() Rules {
	return Rules{
		TotalMarkers: []string{"summa", "total", "carried forward"},
		TitleMarkers: []string{"computus", "account of", "anno"},
		FractionTokens: map[string]domain.PenceFraction{
			"q":   domain.FractionQuarter, // quarter pence
			"qd":  domain.FractionQuarter,
			"qr":  domain.FractionQuarter,
			"ob":  domain.FractionHalf, // obolus = half penny
			"obd": domain.FractionHalf,
		},
		Weights: Weights{
			HasDescription:         0.2,
			HasAmount:              0.2,
			ValidPenceFraction:     0.2,
			TypeContentConsistency: 0.2,
			AmountNumericValidity:  0.2,
		},
		LowConfidenceThreshold: 0.6,
	}
}
