package ledger

import (
	"testing"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

func rawAmount(pounds, shillings, pence, fraction string) domain.RawRow {
	return domain.RawRow{
		FileID:           "f1",
		PageNumber:       1,
		RowIndex:         1,
		PoundsRaw:        pounds,
		ShillingsRaw:     shillings,
		PenceWholeRaw:    pence,
		PenceFractionRaw: fraction,
	}
}

func TestNormalizeAmount_Components(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name          string
		row           domain.RawRow
		wantPounds    *int
		wantShillings *int
		wantPence     *int
		wantErrs      int
	}{
		{
			name:          "plain integers",
			row:           rawAmount("2", "5", "5", ""),
			wantPounds:    domain.Int(2),
			wantShillings: domain.Int(5),
			wantPence:     domain.Int(5),
		},
		{
			name: "blank fields stay null, not zero",
			row:  rawAmount("", "  ", "", ""),
		},
		{
			name:      "python empty-likes are absence",
			row:       rawAmount("None", "nan", "null", ""),
		},
		{
			name:          "out of range shillings preserved, never clamped",
			row:           rawAmount("", "23", "", ""),
			wantShillings: domain.Int(23),
		},
		{
			name:       "unit suffixes tolerated",
			row:        rawAmount("£2", "3s", "5d", ""),
			wantPounds: domain.Int(2), wantShillings: domain.Int(3), wantPence: domain.Int(5),
		},
		{
			name:     "non-numeric residue is a parse error, field null",
			row:      rawAmount("two", "5", "", ""),
			wantErrs: 1, wantShillings: domain.Int(5),
		},
		{
			name:       "negative value preserved for the range validator",
			row:        rawAmount("-3", "", "", ""),
			wantPounds: domain.Int(-3),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, errs := NormalizeAmount(tt.row, rules)
			if len(errs) != tt.wantErrs {
				t.Fatalf("got %d parse errors %v, want %d", len(errs), errs, tt.wantErrs)
			}
			checkComponent(t, "pounds", amt.Pounds, tt.wantPounds)
			checkComponent(t, "shillings", amt.Shillings, tt.wantShillings)
			checkComponent(t, "pence_whole", amt.PenceWhole, tt.wantPence)
		})
	}
}

func checkComponent(t *testing.T, name string, got, want *int) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil || want == nil:
		t.Errorf("%s = %v, want %v", name, deref(got), deref(want))
	case *got != *want:
		t.Errorf("%s = %d, want %d", name, *got, *want)
	}
}

func deref(p *int) interface{} {
	if p == nil {
		return nil
	}
	return *p
}

func TestNormalizeAmount_Fractions(t *testing.T) {
	rules := DefaultRules()

	tests := []struct {
		name     string
		fraction string
		want     domain.PenceFraction
		wantErrs int
	}{
		{name: "empty", fraction: "", want: domain.FractionNone},
		{name: "historical qd is a quarter", fraction: "qd", want: domain.FractionQuarter},
		{name: "historical q is a quarter", fraction: "q", want: domain.FractionQuarter},
		{name: "obolus is a half", fraction: "ob", want: domain.FractionHalf},
		{name: "unicode quarter glyph", fraction: "¼", want: domain.FractionQuarter},
		{name: "unicode half glyph", fraction: "½", want: domain.FractionHalf},
		{name: "unicode three-quarter glyph", fraction: "¾", want: domain.FractionThreeQuarters},
		{name: "standard fraction", fraction: "3/4", want: domain.FractionThreeQuarters},
		{name: "denarius suffix stripped", fraction: "3/4 d", want: domain.FractionThreeQuarters},
		{name: "spaced fraction normalized", fraction: "1 / 4", want: domain.FractionQuarter},
		{name: "unrecognized token fails, field none", fraction: "xyz", want: domain.FractionNone, wantErrs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amt, errs := NormalizeAmount(rawAmount("", "", "5", tt.fraction), rules)
			if amt.PenceFraction != tt.want {
				t.Errorf("fraction = %q, want %q", amt.PenceFraction, tt.want)
			}
			if len(errs) != tt.wantErrs {
				t.Errorf("got %d parse errors %v, want %d", len(errs), errs, tt.wantErrs)
			}
			for _, e := range errs {
				if e.Field != "pence_fraction" {
					t.Errorf("parse error on %q, want pence_fraction", e.Field)
				}
			}
		})
	}
}

func TestNormalizeAmount_DigitFractionPromotesToWholePence(t *testing.T) {
	rules := DefaultRules()

	// The model sometimes shifts whole pence into the fraction column.
	amt, errs := NormalizeAmount(rawAmount("", "", "", "8"), rules)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	if amt.PenceWhole == nil || *amt.PenceWhole != 8 {
		t.Errorf("pence_whole = %v, want 8", deref(amt.PenceWhole))
	}
	if amt.PenceFraction != domain.FractionNone {
		t.Errorf("fraction = %q, want none", amt.PenceFraction)
	}

	// With whole pence already present the digit is not promotable.
	_, errs = NormalizeAmount(rawAmount("", "", "5", "8"), rules)
	if len(errs) != 1 {
		t.Errorf("got %d parse errors, want 1", len(errs))
	}
}

func TestNormalizeAmount_Idempotent(t *testing.T) {
	rules := DefaultRules()
	row := rawAmount("2", "23", "5", "qd")

	first, errs1 := NormalizeAmount(row, rules)
	second, errs2 := NormalizeAmount(row, rules)

	if first.String() != second.String() || len(errs1) != len(errs2) {
		t.Errorf("normalization not idempotent: %s vs %s", first, second)
	}
}
