package domain

import "github.com/shopspring/decimal"

// CanonicalField is a column the earnings importer understands.
type CanonicalField string

const (
	FieldEarningAmount CanonicalField = "earning_amount"
	FieldCatalogNo     CanonicalField = "catalog_no"
	FieldReleaseTitle  CanonicalField = "release_title"
)

// MatchKind records which identifier resolved a row.
type MatchKind string

const (
	MatchByCatalogNo    MatchKind = "catalog_no"
	MatchByReleaseTitle MatchKind = "release_title"
)

// ColumnMatch is the header chosen for a canonical field and its similarity score (0-100).
type ColumnMatch struct {
	Header string `json:"header"`
	Index  int    `json:"index"`
	Score  int    `json:"score"`
}

// MatchedRelease identifies the release a preview row resolved to.
type MatchedRelease struct {
	ReleaseID     string    `json:"release_id"`
	CatalogNumber string    `json:"catalog_number"`
	Title         string    `json:"title"`
	MatchedBy     MatchKind `json:"matched_by"`
}

// PreviewRow is one data row with a parsable amount.
type PreviewRow struct {
	RowNumber      int               `json:"row_number"` // 1-based, header excluded
	OriginalData   map[string]string `json:"original_data"`
	CatalogNo      string            `json:"catalog_no"`
	ReleaseTitle   string            `json:"release_title"`
	EarningAmount  decimal.Decimal   `json:"earning_amount"`
	MatchedRelease *MatchedRelease   `json:"matched_release"`
	MatchScore     *int              `json:"match_score,omitempty"`
}

// Matched reports whether the row resolved to exactly one release.
func (r PreviewRow) Matched() bool {
	return r.MatchedRelease != nil
}

// PreviewSummary totals a preview. TotalEarningAmount covers matched rows only.
type PreviewSummary struct {
	TotalRows          int                             `json:"total_rows"`
	TotalUnmatched     int                             `json:"total_unmatched"`
	TotalSkipped       int                             `json:"total_skipped"`
	TotalEarningAmount decimal.Decimal                 `json:"total_earning_amount"`
	ColumnMapping      map[CanonicalField]*ColumnMatch `json:"column_mapping"`
}

// EarningsPreview is the read-only result of matching an uploaded earnings file.
type EarningsPreview struct {
	FileName string         `json:"file_name"`
	Rows     []PreviewRow   `json:"rows"`
	Summary  PreviewSummary `json:"summary"`
}
