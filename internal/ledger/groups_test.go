package ledger

import (
	"testing"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

func entryRow(index int, braceID string, pounds, shillings, pence int) *domain.LedgerRow {
	return &domain.LedgerRow{
		FileID:       "f1",
		PageNumber:   1,
		RowIndex:     index,
		RowType:      domain.RowTypeEntry,
		GroupBraceID: braceID,
		Amount: domain.Amount{
			Pounds:     domain.Int(pounds),
			Shillings:  domain.Int(shillings),
			PenceWhole: domain.Int(pence),
		},
	}
}

func TestAggregatePage_BraceGroupCarrySum(t *testing.T) {
	// Tintinhull brace: 2s 5d + 1s 7d -> 12d carries into 1s -> £0 4s 0d.
	rows := []*domain.LedgerRow{
		entryRow(2, "1", 0, 2, 5),
		entryRow(3, "1", 0, 1, 7),
	}

	groups, warnings := AggregatePage(rows)
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	g := groups[0]
	if g.ID != "1" || g.AnchorIndex != 2 || len(g.RowIndexes) != 2 {
		t.Errorf("group = %+v, want id 1 anchored at row 2 with 2 members", g)
	}
	if *g.Sum.Pounds != 0 || *g.Sum.Shillings != 4 || *g.Sum.PenceWhole != 0 {
		t.Errorf("group sum = %s, want £0 4s 0d", g.Sum)
	}
}

func TestAggregatePage_SingletonsAndOrder(t *testing.T) {
	rows := []*domain.LedgerRow{
		entryRow(1, "", 1, 0, 0),
		entryRow(2, "g", 0, 5, 0),
		entryRow(3, "", 0, 0, 6),
		entryRow(4, "g", 0, 5, 0),
	}

	groups, _ := AggregatePage(rows)
	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	// Order of first appearance.
	if groups[0].ID != "" || groups[1].ID != "g" || groups[2].ID != "" {
		t.Errorf("group order = [%q %q %q], want [ g ]", groups[0].ID, groups[1].ID, groups[2].ID)
	}
	if *groups[1].Sum.Shillings != 10 {
		t.Errorf("grouped sum shillings = %d, want 10", *groups[1].Sum.Shillings)
	}
}

func TestAggregatePage_NonEntriesExcluded(t *testing.T) {
	header := &domain.LedgerRow{RowIndex: 1, RowType: domain.RowTypeSectionHeader,
		Amount: domain.Amount{Pounds: domain.Int(9)}}
	total := &domain.LedgerRow{RowIndex: 3, RowType: domain.RowTypeTotal,
		Amount: domain.Amount{Pounds: domain.Int(9)}}
	rows := []*domain.LedgerRow{header, entryRow(2, "", 0, 1, 0), total}

	groups, _ := AggregatePage(rows)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1 (only the entry)", len(groups))
	}
	if groups[0].AnchorIndex != 2 {
		t.Errorf("anchor = %d, want 2", groups[0].AnchorIndex)
	}
}

func TestAggregatePage_MalformedMultiIDTag(t *testing.T) {
	rows := []*domain.LedgerRow{
		entryRow(1, "1", 0, 2, 0),
		entryRow(2, "1;2", 0, 3, 0), // tagged into two groups: first id wins
		entryRow(3, "2", 0, 4, 0),
	}

	groups, warnings := AggregatePage(rows)
	if len(warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(warnings))
	}
	if warnings[0].RowIndex != 2 || warnings[0].Chosen != "1" {
		t.Errorf("warning = %+v, want row 2 assigned to group 1", warnings[0])
	}

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// Row 2 counted once, in group 1: 2s + 3s = 5s; group 2 holds 4s.
	if *groups[0].Sum.Shillings != 5 {
		t.Errorf("group 1 sum = %s, want 5s", groups[0].Sum)
	}
	if *groups[1].Sum.Shillings != 4 {
		t.Errorf("group 2 sum = %s, want 4s", groups[1].Sum)
	}

	var totalShillings int64
	for _, g := range groups {
		totalShillings += g.Sum.Farthings()
	}
	if totalShillings != 9*domain.FarthingsPerShilling {
		t.Errorf("combined sum = %d farthings, row double-counted?", totalShillings)
	}
}

// For N grouped rows the group sum equals the carry-reduced sum of the
// members, and the group appears once, not N times.
func TestAggregatePage_GroupSumInvariant(t *testing.T) {
	const n = 7
	rows := make([]*domain.LedgerRow, 0, n)
	var wantFarthings int64
	for i := 0; i < n; i++ {
		rows = append(rows, entryRow(i+1, "braced", 0, i, 11))
		wantFarthings += int64(i)*domain.FarthingsPerShilling + 11*domain.FarthingsPerPence
	}

	groups, _ := AggregatePage(rows)
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if got := groups[0].Sum.Farthings(); got != wantFarthings {
		t.Errorf("group sum = %d farthings, want %d", got, wantFarthings)
	}
	if len(groups[0].RowIndexes) != n {
		t.Errorf("members = %d, want %d", len(groups[0].RowIndexes), n)
	}
}

func TestCleanBraceID(t *testing.T) {
	tests := []struct {
		raw           string
		want          string
		wantMalformed bool
	}{
		{"", "", false},
		{"  ", "", false},
		{"1", "1", false},
		{" 3 ", "3", false},
		{"1;2", "1", true},
		{"1, 2", "1", true},
		{"a b", "a", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, malformed := cleanBraceID(tt.raw)
			if got != tt.want || malformed != tt.wantMalformed {
				t.Errorf("cleanBraceID(%q) = (%q, %v), want (%q, %v)",
					tt.raw, got, malformed, tt.want, tt.wantMalformed)
			}
		})
	}
}
