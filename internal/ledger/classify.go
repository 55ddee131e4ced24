package ledger

import (
	"regexp"
	"strings"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

var yearPattern = regexp.MustCompile(`\b1[5-9]\d{2}\b`)

// Classify assigns the structural role of one row, first match wins.
// The second return is false when the row is empty noise (no description,
// no amount) and should be dropped from the dataset.
//
// Amount presence is judged only from the normalized amount, never from
// raw text or the extraction hint: the upstream model tends to call rows
// section headers when their amounts were merely misread, and trusting
// its hint would propagate that misclassification.
//
// A total marker classifies the row as total even with an all-null
// amount; such totals reconcile as indeterminate rather than vanishing
// into section headers.
func Classify(r domain.RawRow, amt domain.Amount, firstOnPage bool, rules Rules) (domain.RowType, bool) {
	desc := strings.TrimSpace(r.Description)

	if desc == "" && !amt.HasAny() {
		return "", false
	}

	if firstOnPage && looksLikeTitle(r, desc, rules) {
		return domain.RowTypeTitle, true
	}

	if isTotalMarker(desc, rules.TotalMarkers) {
		return domain.RowTypeTotal, true
	}

	if amt.HasAny() {
		return domain.RowTypeEntry, true
	}

	return domain.RowTypeSectionHeader, true
}

func isTotalMarker(desc string, markers []string) bool {
	d := strings.ToLower(desc)
	for _, m := range markers {
		if m != "" && strings.Contains(d, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// looksLikeTitle detects the page heading: a leading row whose text
// carries a date or a known document-heading marker. The extraction
// hint is accepted here because a title is a layout fact the model can
// see directly, unlike amount presence.
func looksLikeTitle(r domain.RawRow, desc string, rules Rules) bool {
	if strings.EqualFold(strings.TrimSpace(r.RowTypeHint), string(domain.RowTypeTitle)) {
		return true
	}
	if yearPattern.MatchString(desc) || strings.TrimSpace(r.DateRaw) != "" {
		return true
	}
	d := strings.ToLower(desc)
	for _, m := range rules.TitleMarkers {
		if m != "" && strings.Contains(d, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
