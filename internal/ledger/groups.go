package ledger

import (
	"strings"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// Group is one logical entry for page arithmetic: either a brace group
// (rows visually bracketed together sharing one combined amount) or a
// singleton for an ungrouped entry row. A group contributes to a page
// total exactly once, as the carry-reduced sum of its members.
type Group struct {
	// ID is the brace id, or "" for a singleton.
	ID string
	// AnchorIndex is the row index of the first member; it places the
	// group inside a reconciliation window.
	AnchorIndex int
	RowIndexes  []int
	Sum         domain.Amount
}

// AggregatePage partitions a page's entry rows into brace groups and
// computes each group's carry-reduced sum. Group order follows first
// appearance. Only entry rows contribute: amounts preserved on titles,
// headers and totals stay out of the sums.
//
// A row tagged with several brace ids at once is malformed input; the
// tie-break assigns it to the first id in the tag and reports a
// MalformedGroupError, and the row is counted exactly once.
func AggregatePage(rows []*domain.LedgerRow) ([]Group, []*domain.MalformedGroupError) {
	var (
		groups   []Group
		position = make(map[string]int) // brace id -> index into groups
		warnings []*domain.MalformedGroupError
	)

	for _, row := range rows {
		if row.RowType != domain.RowTypeEntry {
			continue
		}

		id, malformed := cleanBraceID(row.GroupBraceID)
		if malformed {
			warnings = append(warnings, &domain.MalformedGroupError{
				RowIndex: row.RowIndex,
				Raw:      row.GroupBraceID,
				Chosen:   id,
			})
		}

		if id == "" {
			groups = append(groups, Group{
				AnchorIndex: row.RowIndex,
				RowIndexes:  []int{row.RowIndex},
				Sum:         row.Amount.Reduce(),
			})
			continue
		}

		pos, seen := position[id]
		if !seen {
			position[id] = len(groups)
			groups = append(groups, Group{
				ID:          id,
				AnchorIndex: row.RowIndex,
				RowIndexes:  []int{row.RowIndex},
				Sum:         row.Amount.Reduce(),
			})
			continue
		}
		groups[pos].RowIndexes = append(groups[pos].RowIndexes, row.RowIndex)
		groups[pos].Sum = groups[pos].Sum.Add(row.Amount)
	}

	return groups, warnings
}

// cleanBraceID extracts the effective brace id from a raw tag. A tag
// holding several ids ("1;2", "1 2") keeps the first and is reported as
// malformed.
func cleanBraceID(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], len(fields) > 1
}
