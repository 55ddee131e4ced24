package ledger

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dvloznov/ledger-audit/internal/domain"
)

// Unicode fraction glyphs as they appear in model output.
var unicodeFractions = map[rune]domain.PenceFraction{
	'¼': domain.FractionQuarter,
	'½': domain.FractionHalf,
	'¾': domain.FractionThreeQuarters,
}

var (
	denariusSuffix = regexp.MustCompile(`\s*d$`)
	slashSpacing   = regexp.MustCompile(`\s*/\s*`)
)

// NormalizeAmount parses the raw amount fields of one extracted row into
// a canonical Amount. Empty fields become nil (absence, not zero). Values
// are never clamped: shillings "23" stays 23 so the range validator can
// report the real extraction error instead of this stage hiding it.
// Every field that cannot be interpreted is left nil and reported as a
// ParseError; the rest of the row is still processed.
func NormalizeAmount(r domain.RawRow, rules Rules) (domain.Amount, []*domain.ParseError) {
	var errs []*domain.ParseError

	amt := domain.Amount{}
	amt.Pounds = parseComponent("pounds", r.PoundsRaw, &errs)
	amt.Shillings = parseComponent("shillings", r.ShillingsRaw, &errs)
	amt.PenceWhole = parseComponent("pence_whole", r.PenceWholeRaw, &errs)

	frac, promoted, ferr := parseFraction(r.PenceFractionRaw, amt.PenceWhole, rules.FractionTokens)
	if ferr != nil {
		errs = append(errs, ferr)
	}
	amt.PenceFraction = frac
	if promoted != nil {
		amt.PenceWhole = promoted
	}

	return amt, errs
}

// isBlank treats the usual model output empty-likes as absence.
func isBlank(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "nan", "null":
		return true
	}
	return false
}

// parseComponent parses one numeric £/s/d column. A trailing unit letter
// ("5d", "3s", "£2") is tolerated; any other residue is a ParseError and
// the component stays nil.
func parseComponent(field, raw string, errs *[]*domain.ParseError) *int {
	if isBlank(raw) {
		return nil
	}
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "£")
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "d"), "s"))

	v, err := strconv.Atoi(s)
	if err != nil {
		*errs = append(*errs, &domain.ParseError{Field: field, Raw: raw})
		return nil
	}
	return &v
}

// parseFraction resolves the pence-fraction column against the unicode
// glyphs, the configured historical tokens and the standard fraction
// spellings, in that order. A bare digit with an empty whole-pence column
// is the extraction model misplacing whole pence; it is promoted into
// pence_whole and the fraction cleared. Anything else unrecognized is a
// ParseError with the fraction left at none.
func parseFraction(raw string, whole *int, tokens map[string]domain.PenceFraction) (domain.PenceFraction, *int, *domain.ParseError) {
	if isBlank(raw) {
		return domain.FractionNone, nil, nil
	}

	// Glyphs are checked on the original text before any lowering.
	for _, r := range strings.TrimSpace(raw) {
		if f, ok := unicodeFractions[r]; ok {
			return f, nil, nil
		}
	}

	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimSpace(denariusSuffix.ReplaceAllString(s, ""))

	if f, ok := tokens[s]; ok {
		return f, nil, nil
	}

	if f := domain.PenceFraction(s); f.Known() {
		return f, nil, nil
	}
	if f := domain.PenceFraction(slashSpacing.ReplaceAllString(s, "/")); f.Known() {
		return f, nil, nil
	}

	// Pure digit in the fraction column with no whole pence: the model
	// shifted the pence value one column right.
	if v, err := strconv.Atoi(s); err == nil && (whole == nil || *whole == 0) {
		return domain.FractionNone, &v, nil
	}

	return domain.FractionNone, nil, &domain.ParseError{Field: "pence_fraction", Raw: raw}
}
