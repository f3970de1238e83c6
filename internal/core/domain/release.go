package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Release is a catalog entry owned by a brand (tenant).
// Title and CatalogNumber are read-only inputs to earnings matching.
type Release struct {
	ReleaseID     string `json:"releaseID"`
	BrandID       string `json:"brandID"`
	CatalogNumber string `json:"catalogNumber"`
	Title         string `json:"title"`
	AuditFields
}

// RoyaltyType tags how a split percentage is applied.
type RoyaltyType string

const (
	// RoyaltyTypeRevenue applies the percentage to the post-recoupment revenue.
	RoyaltyTypeRevenue RoyaltyType = "Revenue"
)

// ReleaseArtistSplit carries one artist's royalty terms on one release, per revenue category.
// Percentages are fractions in [0,1]; their sum across artists is not required to be 1.
type ReleaseArtistSplit struct {
	ReleaseID string `json:"releaseID"`
	ArtistID  string `json:"artistID"`

	StreamingPercentage decimal.Decimal `json:"streamingPercentage"`
	SyncPercentage      decimal.Decimal `json:"syncPercentage"`
	DownloadPercentage  decimal.Decimal `json:"downloadPercentage"`
	PhysicalPercentage  decimal.Decimal `json:"physicalPercentage"`

	StreamingType RoyaltyType `json:"streamingType"`
	SyncType      RoyaltyType `json:"syncType"`
	DownloadType  RoyaltyType `json:"downloadType"`
	PhysicalType  RoyaltyType `json:"physicalType"`
}

// PercentageFor resolves the share this artist is owed for an earning category.
// Categories outside the closed set, and royalty types other than Revenue, resolve to zero:
// nothing is allocated and the label keeps the remainder.
func (s ReleaseArtistSplit) PercentageFor(category EarningCategory) decimal.Decimal {
	var pct decimal.Decimal
	var typ RoyaltyType
	switch category.Normalize() {
	case CategoryStreaming:
		pct, typ = s.StreamingPercentage, s.StreamingType
	case CategorySync:
		pct, typ = s.SyncPercentage, s.SyncType
	case CategoryDownloads:
		pct, typ = s.DownloadPercentage, s.DownloadType
	case CategoryPhysical:
		pct, typ = s.PhysicalPercentage, s.PhysicalType
	default:
		return decimal.Zero
	}
	if !typ.appliesPercentage() || pct.IsNegative() {
		return decimal.Zero
	}
	return pct
}

func (t RoyaltyType) appliesPercentage() bool {
	trimmed := strings.TrimSpace(string(t))
	return trimmed == "" || RoyaltyType(trimmed) == RoyaltyTypeRevenue
}
