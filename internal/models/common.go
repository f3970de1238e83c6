package models

import "time"

// AuditFields mirrors the created_at/created_by columns of the ledger tables.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	CreatedBy string    `db:"created_by"`
}
