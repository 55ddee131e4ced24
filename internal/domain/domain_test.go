package domain

import "testing"

func TestAmountFarthings(t *testing.T) {
	tests := []struct {
		name string
		amt  Amount
		want int64
	}{
		{
			name: "all components",
			amt:  Amount{Pounds: Int(2), Shillings: Int(5), PenceWhole: Int(5), PenceFraction: FractionQuarter},
			want: 2*960 + 5*48 + 5*4 + 1,
		},
		{
			name: "absent components are zero for arithmetic",
			amt:  Amount{Shillings: Int(3)},
			want: 3 * 48,
		},
		{
			name: "empty amount",
			amt:  Amount{},
			want: 0,
		},
		{
			name: "fraction only",
			amt:  Amount{PenceFraction: FractionHalf},
			want: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amt.Farthings(); got != tt.want {
				t.Errorf("Farthings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFromFarthingsReduces(t *testing.T) {
	// 5d + 7d = 12d -> 1s 0d; carried into 2s + 1s + 1s = 4s.
	a := Amount{Shillings: Int(2), PenceWhole: Int(5)}
	b := Amount{Shillings: Int(1), PenceWhole: Int(7)}
	sum := a.Add(b)

	if *sum.Pounds != 0 || *sum.Shillings != 4 || *sum.PenceWhole != 0 {
		t.Errorf("Add() = %s, want £0 4s 0d", sum)
	}
	if sum.PenceFraction != FractionNone {
		t.Errorf("Add() fraction = %q, want none", sum.PenceFraction)
	}
}

func TestFromFarthingsCarriesShillings(t *testing.T) {
	// 19s + 2s = 21s -> £1 1s.
	sum := Amount{Shillings: Int(19)}.Add(Amount{Shillings: Int(2)})
	if *sum.Pounds != 1 || *sum.Shillings != 1 || *sum.PenceWhole != 0 {
		t.Errorf("Add() = %s, want £1 1s 0d", sum)
	}
}

func TestWholePenceFloorsFractions(t *testing.T) {
	tests := []struct {
		name string
		amt  Amount
		want int64
	}{
		{"quarter floors away", Amount{PenceWhole: Int(5), PenceFraction: FractionQuarter}, 5},
		{"three quarters floors away", Amount{PenceWhole: Int(5), PenceFraction: FractionThreeQuarters}, 5},
		{"no fraction", Amount{Shillings: Int(1), PenceWhole: Int(7)}, 19},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.amt.WholePence(); got != tt.want {
				t.Errorf("WholePence() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPenceFractionKnown(t *testing.T) {
	for _, f := range []PenceFraction{FractionNone, FractionQuarter, FractionHalf, FractionThreeQuarters} {
		if !f.Known() {
			t.Errorf("Known(%q) = false, want true", f)
		}
	}
	if PenceFraction("2/3").Known() {
		t.Error("Known(2/3) = true, want false")
	}
}

func TestRowKeyLess(t *testing.T) {
	tests := []struct {
		name string
		a, b RowKey
		want bool
	}{
		{"by file", RowKey{"a", 2, 9}, RowKey{"b", 1, 1}, true},
		{"by page", RowKey{"a", 1, 9}, RowKey{"a", 2, 1}, true},
		{"by row", RowKey{"a", 1, 1}, RowKey{"a", 1, 2}, true},
		{"equal", RowKey{"a", 1, 1}, RowKey{"a", 1, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Less(tt.b); got != tt.want {
				t.Errorf("Less() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRawRowHasIdentity(t *testing.T) {
	ok := RawRow{FileID: "f", PageNumber: 1, RowIndex: 1}
	if !ok.HasIdentity() {
		t.Error("expected identity to be present")
	}
	for _, bad := range []RawRow{
		{PageNumber: 1, RowIndex: 1},
		{FileID: "f", RowIndex: 1},
		{FileID: "f", PageNumber: 1},
	} {
		if bad.HasIdentity() {
			t.Errorf("HasIdentity(%+v) = true, want false", bad)
		}
	}
}
