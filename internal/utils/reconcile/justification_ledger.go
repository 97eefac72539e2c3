package reconcile

import (
	"fmt"

	"github.com/Rodfox31/cierre-caja-backend/internal/core/domain"
	"github.com/Rodfox31/cierre-caja-backend/internal/utils/monetary"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Editable justification fields accepted by UpdateField.
const (
	FieldDate          = "date"
	FieldOrderRef      = "orderRef"
	FieldClient        = "client"
	FieldPaymentMethod = "paymentMethod"
	FieldAdjustment    = "adjustment"
	FieldReason        = "reason"
)

// JustificationLedger maintains the adjustment entries that explain
// payment-method differences for one closing session.
type JustificationLedger struct {
	reasons   []string
	tolerance decimal.Decimal
	entries   []domain.JustificationEntry
}

// NewJustificationLedger creates an empty ledger. reasons is the configured
// enumerated set; tolerance is the band inside which a difference needs no
// justification.
func NewJustificationLedger(reasons []string, tolerance decimal.Decimal) *JustificationLedger {
	return &JustificationLedger{reasons: reasons, tolerance: tolerance}
}

// Entries returns a copy of the current entries.
func (l *JustificationLedger) Entries() []domain.JustificationEntry {
	out := make([]domain.JustificationEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Reseed reconciles the auto-generated entries against the current payment
// rows: every row whose |difference| exceeds the tolerance gets a seed entry
// prefilled with its method and current difference, rows back inside the
// band lose their stale seed. Manual entries are never touched — the legacy
// behavior of rebuilding the whole list on every payment edit silently threw
// away hand-entered rows, so this is a merge keyed by entry identity.
func (l *JustificationLedger) Reseed(rows []domain.PaymentMethodRow, date string) {
	seededByMethod := make(map[string]bool)
	kept := l.entries[:0]
	needed := make(map[string]decimal.Decimal)
	for _, row := range rows {
		if row.Difference.Abs().GreaterThan(l.tolerance) {
			needed[row.Method] = row.Difference
		}
	}

	for _, e := range l.entries {
		if e.AutoSeeded {
			diff, ok := needed[e.PaymentMethod]
			if !ok || seededByMethod[e.PaymentMethod] {
				continue // stale or duplicate seed
			}
			// Untouched seeds track the live difference; edited ones became
			// manual via UpdateField and are out of reach here.
			e.Adjustment = diff
			seededByMethod[e.PaymentMethod] = true
		} else {
			// A manual entry already explaining this method counts as its
			// seed; adding another on top would double the adjustment.
			seededByMethod[e.PaymentMethod] = true
		}
		kept = append(kept, e)
	}
	l.entries = kept

	for _, row := range rows {
		diff, ok := needed[row.Method]
		if !ok || seededByMethod[row.Method] {
			continue
		}
		l.entries = append(l.entries, domain.JustificationEntry{
			JustificationID: uuid.NewString(),
			Date:            date,
			PaymentMethod:   row.Method,
			Adjustment:      diff,
			Reason:          l.defaultReason(),
			AutoSeeded:      true,
		})
		seededByMethod[row.Method] = true
	}
}

// AddManual appends a user-authored entry. Empty reason defaults to the first
// configured one; nothing is rejected here, incomplete entries are filtered
// at save time.
func (l *JustificationLedger) AddManual(entry domain.JustificationEntry) {
	if entry.JustificationID == "" {
		entry.JustificationID = uuid.NewString()
	}
	if entry.Reason == "" {
		entry.Reason = l.defaultReason()
	}
	entry.AutoSeeded = false
	l.entries = append(l.entries, entry)
}

// UpdateField edits one field of one entry. The adjustment field goes through
// monetary.Normalize; everything else is free text. Editing a seeded entry
// turns it into a manual one so a later reseed cannot reclaim it.
func (l *JustificationLedger) UpdateField(index int, field, value string) error {
	if index < 0 || index >= len(l.entries) {
		return fmt.Errorf("justification index %d out of range", index)
	}
	e := &l.entries[index]
	switch field {
	case FieldDate:
		e.Date = value
	case FieldOrderRef:
		e.OrderRef = value
	case FieldClient:
		e.Client = value
	case FieldPaymentMethod:
		e.PaymentMethod = value
	case FieldAdjustment:
		e.Adjustment = monetary.Normalize(value)
	case FieldReason:
		e.Reason = value
	default:
		return fmt.Errorf("unknown justification field %q", field)
	}
	e.AutoSeeded = false
	return nil
}

// Remove deletes the entry at index.
func (l *JustificationLedger) Remove(index int) error {
	if index < 0 || index >= len(l.entries) {
		return fmt.Errorf("justification index %d out of range", index)
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return nil
}

// SumAdjustments returns the total explained amount across all entries,
// manual and seeded alike. This is the single figure fed back into the
// closing balance.
func (l *JustificationLedger) SumAdjustments() decimal.Decimal {
	total := decimal.Zero
	for _, e := range l.entries {
		total = total.Add(e.Adjustment)
	}
	return total
}

func (l *JustificationLedger) defaultReason() string {
	if len(l.reasons) == 0 {
		return ""
	}
	return l.reasons[0]
}
