package domain

import (
	"errors"
	"fmt"
)

// The validation core never aborts a batch over data quality. Parse and
// grouping problems degrade the affected field or row in place and are
// surfaced as diagnostics; only missing identity structure removes a row.

// ErrMissingIdentity marks a row without file_id/page_number/row_index.
// Such a row cannot be keyed and is excluded; its page is flagged
// incomplete. Sibling pages are unaffected.
var ErrMissingIdentity = errors.New("row is missing identity fields")

// ParseError reports a raw amount field that could not be interpreted.
// The affected field is left null and processing continues.
type ParseError struct {
	Field string // "pounds", "shillings", "pence_whole", "pence_fraction"
	Raw   string // offending input text
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: unrecognized value %q", e.Field, e.Raw)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// MalformedGroupError reports a row tagged with an ambiguous brace
// grouping. The tie-break keeps the first id encountered; the row is
// never double-counted.
type MalformedGroupError struct {
	RowIndex int
	Raw      string // the raw group tag, e.g. "1;2"
	Chosen   string // the id the row was assigned to
}

func (e *MalformedGroupError) Error() string {
	return fmt.Sprintf("row %d: ambiguous brace group %q, assigned to %q", e.RowIndex, e.Raw, e.Chosen)
}
