package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// TransformModelOutput converts raw model output into RawRow records for
// the validation core. The model's JSON is untrusted: malformed pages or
// rows are reported, never panicked over. Amount fields stay raw strings
// here; interpretation belongs to the normalizer.
func TransformModelOutput(rawOutput map[string]interface{}, fileID string) ([]domain.RawRow, error) {
	pagesAny, ok := rawOutput["pages"]
	if !ok {
		return nil, fmt.Errorf("TransformModelOutput: missing 'pages' key in model output")
	}
	pagesSlice, ok := pagesAny.([]interface{})
	if !ok {
		return nil, fmt.Errorf("TransformModelOutput: 'pages' is %T, want []interface{}", pagesAny)
	}

	var rows []domain.RawRow

	for pi, pageAny := range pagesSlice {
		page, ok := pageAny.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("TransformModelOutput: page %d is %T, want map[string]interface{}", pi, pageAny)
		}

		pageNumber, err := getIntField(page, "page_number", false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pi, err)
		}
		if pageNumber == 0 {
			pageNumber = pi + 1 // model omitted numbering; fall back to reading order
		}

		rowsAny, ok := page["rows"]
		if !ok {
			return nil, fmt.Errorf("TransformModelOutput: page %d missing 'rows'", pi)
		}
		rowsSlice, ok := rowsAny.([]interface{})
		if !ok {
			return nil, fmt.Errorf("TransformModelOutput: page %d 'rows' is %T, want []interface{}", pi, rowsAny)
		}

		for ri, rowAny := range rowsSlice {
			obj, ok := rowAny.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("TransformModelOutput: page %d row %d is %T, want map[string]interface{}", pi, ri, rowAny)
			}

			rowIndex, err := getIntField(obj, "row_index", false)
			if err != nil {
				return nil, fmt.Errorf("page %d row %d: %w", pi, ri, err)
			}
			if rowIndex == 0 {
				rowIndex = ri + 1
			}

			raw := domain.RawRow{
				FileID:           fileID,
				PageNumber:       pageNumber,
				RowIndex:         rowIndex,
				RowTypeHint:      getStringField(obj, "row_type"),
				DateRaw:          getStringField(obj, "date_raw"),
				Description:      getStringField(obj, "description"),
				PoundsRaw:        getStringField(obj, "amount_pounds"),
				ShillingsRaw:     getStringField(obj, "amount_shillings"),
				PenceWholeRaw:    getStringField(obj, "amount_pence_whole"),
				PenceFractionRaw: getStringField(obj, "amount_pence_fraction"),
				TransactionType:  getStringField(obj, "transaction_type"),
				GroupBraceID:     getStringField(obj, "group_brace_id"),
			}
			rows = append(rows, raw)
		}
	}

	return rows, nil
}

// getStringField coerces a model output field to a string. Numbers are
// rendered back to text: the model sometimes emits bare numbers for
// amount columns, and the normalizer wants the raw text either way.
// Missing or null fields become the empty string.
func getStringField(m map[string]interface{}, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// getIntField reads an integer field that may arrive as a JSON number
// or a numeric string.
func getIntField(m map[string]interface{}, key string, required bool) (int, error) {
	v, ok := m[key]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("missing required field %q", key)
		}
		return 0, nil
	}
	switch val := v.(type) {
	case float64:
		return int(val), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			if required {
				return 0, fmt.Errorf("required field %q is empty", key)
			}
			return 0, nil
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("field %q has non-numeric value %q", key, val)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("field %q has type %T, want number", key, v)
	}
}
