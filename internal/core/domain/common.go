package domain

import "time"

// AuditFields holds the creation stamp shared by the append-only financial facts.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"` // UserID from the bearer token, empty for system writes
}
