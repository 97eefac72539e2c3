package domain

import "time"

// AuditFields holds standard audit information for persisted entities.
// The user references are free-form identifiers, not foreign keys; cashier
// and supervisor accounts live outside this service.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}
