package domain

import "time"

// AuditFields holds the creation and last-modification timestamps shared by ledger records.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
