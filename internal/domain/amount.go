package domain

import (
	"fmt"
	"strings"
)

// Pre-decimal British currency: 12 pence to the shilling, 20 shillings to
// the pound, 4 farthings to the penny. All internal arithmetic is done in
// farthings so fractional pence stay exact.
const (
	FarthingsPerPence    = 4
	FarthingsPerShilling = 12 * FarthingsPerPence
	FarthingsPerPound    = 20 * FarthingsPerShilling
)

// PenceFraction is the sub-pence part of an amount. Only the three
// historical fractions exist; anything else is a parse failure upstream.
type PenceFraction string

const (
	FractionNone          PenceFraction = ""
	FractionQuarter       PenceFraction = "1/4"
	FractionHalf          PenceFraction = "1/2"
	FractionThreeQuarters PenceFraction = "3/4"
)

// Known reports whether f is a recognized fraction value (including none).
func (f PenceFraction) Known() bool {
	switch f {
	case FractionNone, FractionQuarter, FractionHalf, FractionThreeQuarters:
		return true
	}
	return false
}

// Farthings returns the fraction's value in farthings (0 to 3).
func (f PenceFraction) Farthings() int64 {
	switch f {
	case FractionQuarter:
		return 1
	case FractionHalf:
		return 2
	case FractionThreeQuarters:
		return 3
	}
	return 0
}

// Amount is a canonical pounds/shillings/pence value. Nil components mean
// the column was blank on the page: absence, not zero. Values are stored
// exactly as normalized; out-of-range values (shillings 23) are preserved
// so the range validator can report them.
type Amount struct {
	Pounds        *int          `json:"pounds"`
	Shillings     *int          `json:"shillings"`
	PenceWhole    *int          `json:"pence_whole"`
	PenceFraction PenceFraction `json:"pence_fraction"`
}

// HasAny reports whether at least one of pounds/shillings/pence_whole is
// present. The fraction alone does not make a row an amount-bearing row.
func (a Amount) HasAny() bool {
	return a.Pounds != nil || a.Shillings != nil || a.PenceWhole != nil
}

// Farthings converts the amount to farthings, treating absent components
// as zero for arithmetic.
func (a Amount) Farthings() int64 {
	var f int64
	if a.Pounds != nil {
		f += int64(*a.Pounds) * FarthingsPerPound
	}
	if a.Shillings != nil {
		f += int64(*a.Shillings) * FarthingsPerShilling
	}
	if a.PenceWhole != nil {
		f += int64(*a.PenceWhole) * FarthingsPerPence
	}
	f += a.PenceFraction.Farthings()
	return f
}

// WholePence returns the amount in whole pence, fractions floored away.
// Reconciliation compares in this unit: stated totals are never written
// with sub-pence fractions.
func (a Amount) WholePence() int64 {
	f := a.Farthings()
	if f < 0 {
		// Round toward zero is wrong for negative totals; floor instead.
		return -((-f + FarthingsPerPence - 1) / FarthingsPerPence)
	}
	return f / FarthingsPerPence
}

// FromFarthings builds a fully reduced amount: 0 <= pence < 12,
// 0 <= shillings < 20, remainder in pounds. All components are set.
func FromFarthings(f int64) Amount {
	neg := f < 0
	if neg {
		f = -f
	}
	pounds := int(f / FarthingsPerPound)
	f %= FarthingsPerPound
	shillings := int(f / FarthingsPerShilling)
	f %= FarthingsPerShilling
	pence := int(f / FarthingsPerPence)
	frac := fractionFromFarthings(f % FarthingsPerPence)
	if neg {
		pounds = -pounds
	}
	return Amount{Pounds: &pounds, Shillings: &shillings, PenceWhole: &pence, PenceFraction: frac}
}

func fractionFromFarthings(f int64) PenceFraction {
	switch f {
	case 1:
		return FractionQuarter
	case 2:
		return FractionHalf
	case 3:
		return FractionThreeQuarters
	}
	return FractionNone
}

// Add returns the carry-reduced sum of a and b.
func (a Amount) Add(b Amount) Amount {
	return FromFarthings(a.Farthings() + b.Farthings())
}

// Reduce returns the amount normalized with base-12/base-20 carries
// applied (12 pence to a shilling, 20 shillings to a pound).
func (a Amount) Reduce() Amount {
	return FromFarthings(a.Farthings())
}

// String renders the amount in the conventional £/s/d notation, writing
// "-" for absent components.
func (a Amount) String() string {
	var b strings.Builder
	if a.Pounds != nil {
		fmt.Fprintf(&b, "£%d", *a.Pounds)
	} else {
		b.WriteString("£-")
	}
	if a.Shillings != nil {
		fmt.Fprintf(&b, " %ds", *a.Shillings)
	} else {
		b.WriteString(" -s")
	}
	if a.PenceWhole != nil {
		fmt.Fprintf(&b, " %dd", *a.PenceWhole)
	} else {
		b.WriteString(" -d")
	}
	if a.PenceFraction != FractionNone {
		fmt.Fprintf(&b, " %s", a.PenceFraction)
	}
	return b.String()
}

// Int lifts a literal into an optional amount component. Handy for tests
// and for builders.
func Int(v int) *int { return &v }
