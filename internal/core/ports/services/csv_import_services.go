package services

import (
	"context"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
)

// CsvImportSvc previews a bulk earnings file against the tenant's releases. It never writes.
type CsvImportSvc interface {
	PreviewEarningsFile(ctx context.Context, tenantID, fileName string, data []byte) (*domain.EarningsPreview, error)
}
