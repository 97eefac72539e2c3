// Package monetary is the single code path allowed to turn raw numeric input
// into an amount. Stored data has accumulated several encodings over time
// (plain numbers, Spanish-locale strings, mixed), so every read path funnels
// through Normalize instead of parsing strings ad hoc.
package monetary

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// groupedThousands matches Argentine-formatted numbers: "." groups
	// thousands, "," is the decimal separator. E.g. "1.234,56", "12.000".
	groupedThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})*(,\d+)?$`)

	// commaDecimal matches a bare comma-decimal number, e.g. "1234,56".
	commaDecimal = regexp.MustCompile(`^\d+,\d+$`)

	// sumCharset is the only content allowed inside a sum-expression.
	sumCharset = regexp.MustCompile(`^[0-9+.,\s]*$`)
)

// Normalize parses a raw numeric string into an amount. Currency symbols and
// whitespace are stripped; both Argentine ("1.234,56") and plain ("1234.56")
// notations are accepted. Unparseable or empty input normalizes to zero —
// it never returns an error, a blocked screen is worse for the cashier than a
// zeroed field the difference report will surface.
func Normalize(raw string) decimal.Decimal {
	s := stripDecorations(raw)
	if s == "" {
		return decimal.Zero
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}

	switch {
	case groupedThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case commaDecimal.MatchString(s):
		s = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if neg {
		d = d.Neg()
	}
	return d
}

// NormalizeSum parses an additive expression like "1000+2000" by normalizing
// each term and summing. Any character outside [0-9+.,\s] makes the whole
// expression normalize to zero: fail-closed, not fail-partial, so a typo
// cannot silently drop one invoice batch while keeping another.
func NormalizeSum(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero
	}
	if !sumCharset.MatchString(s) {
		return decimal.Zero
	}

	total := decimal.Zero
	for _, term := range strings.Split(s, "+") {
		total = total.Add(Normalize(term))
	}
	return total
}

// stripDecorations removes currency markers and whitespace around a value.
func stripDecorations(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	if len(s) >= 3 && strings.EqualFold(s[:3], "ARS") {
		s = s[3:]
	}
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.ReplaceAll(s, " ", "")
	return s
}
