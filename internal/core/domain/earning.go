package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EarningCategory is the revenue channel an earning was reported under.
// Free text is accepted; only the four canonical values below produce royalties.
type EarningCategory string

const (
	CategoryStreaming EarningCategory = "Streaming"
	CategorySync      EarningCategory = "Sync"
	CategoryDownloads EarningCategory = "Downloads"
	CategoryPhysical  EarningCategory = "Physical"
)

// Normalize trims surrounding whitespace; matching against the canonical set stays case-sensitive.
func (c EarningCategory) Normalize() EarningCategory {
	return EarningCategory(strings.TrimSpace(string(c)))
}

// IsRoyaltyBearing reports whether the category maps to a split percentage.
func (c EarningCategory) IsRoyaltyBearing() bool {
	switch c.Normalize() {
	case CategoryStreaming, CategorySync, CategoryDownloads, CategoryPhysical:
		return true
	}
	return false
}

// Earning is one reported revenue event for a release.
// It is never mutated after insert except for the one-time platform fee finalization.
type Earning struct {
	EarningID      string          `json:"earningID"`
	BrandID        string          `json:"brandID"`
	ReleaseID      string          `json:"releaseID"`
	Category       EarningCategory `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	RecordedDate   time.Time       `json:"recordedDate"`
	PlatformFee    decimal.Decimal `json:"platformFee"`
	FeeFinalizedAt *time.Time      `json:"feeFinalizedAt,omitempty"`
	Allocated      bool            `json:"allocated"` // waterfall + distribution ran for this earning
	AuditFields
}

// FeeFinalized reports whether the platform fee has been set.
func (e Earning) FeeFinalized() bool {
	return e.FeeFinalizedAt != nil
}
