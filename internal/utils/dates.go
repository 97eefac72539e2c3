package utils

import (
	"fmt"
	"strings"
	"time"
)

// CanonicalDateLayout is the storage form for closing dates.
const CanonicalDateLayout = "2006-01-02"

// closingDateLayouts are the input forms tolerated on write. Legacy clients
// sent DD/MM/YYYY and DD-MM-YYYY; everything is normalized before persisting.
var closingDateLayouts = []string{
	CanonicalDateLayout,
	"02/01/2006",
	"02-01-2006",
}

// NormalizeClosingDate parses a closing date in any accepted layout and
// returns it in canonical YYYY-MM-DD form.
func NormalizeClosingDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range closingDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(CanonicalDateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized closing date %q", raw)
}

// IsValidClosingDate reports whether raw parses in any accepted layout.
func IsValidClosingDate(raw string) bool {
	_, err := NormalizeClosingDate(raw)
	return err == nil
}
