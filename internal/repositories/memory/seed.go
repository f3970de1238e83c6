package memory

import (
	"time"

	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SeedDemo loads a small catalog for local runs without Postgres: one release with two artists
// on streaming splits and a 200.00 advance to recoup, plus one sub-label with its own release.
func SeedDemo(s *Store, brandID string) {
	now := time.Now().UTC()
	d := decimal.RequireFromString

	s.AddRelease(domain.Release{ReleaseID: "rel-demo-1", BrandID: brandID, CatalogNumber: "DEMO001", Title: "First Light", AuditFields: domain.AuditFields{CreatedAt: now}})
	s.AddRelease(domain.Release{ReleaseID: "rel-demo-2", BrandID: brandID, CatalogNumber: "DEMO002", Title: "Night Drive", AuditFields: domain.AuditFields{CreatedAt: now}})

	s.AddArtist(domain.Artist{ArtistID: "art-demo-a", BrandID: brandID, Name: "Ada Vale", Email: "ada@example.com", PayoutPoint: d("50.00"), CreatedAt: now})
	s.AddArtist(domain.Artist{ArtistID: "art-demo-z", BrandID: brandID, Name: "Zed Moreno", Email: "zed@example.com", PayoutPoint: d("100.00"), CreatedAt: now})
	s.AddPaymentMethod(domain.PaymentMethod{PaymentMethodID: "pm-demo-a", ArtistID: "art-demo-a", Kind: "bank_transfer"})

	for _, rel := range []string{"rel-demo-1", "rel-demo-2"} {
		s.AddSplit(domain.ReleaseArtistSplit{ReleaseID: rel, ArtistID: "art-demo-a", StreamingPercentage: d("0.5"), DownloadPercentage: d("0.5"), StreamingType: domain.RoyaltyTypeRevenue, DownloadType: domain.RoyaltyTypeRevenue})
		s.AddSplit(domain.ReleaseArtistSplit{ReleaseID: rel, ArtistID: "art-demo-z", StreamingPercentage: d("0.3"), StreamingType: domain.RoyaltyTypeRevenue})
	}

	s.AddExpense(domain.RecuperableExpense{ExpenseID: "exp-demo-1", ReleaseID: "rel-demo-1", Amount: d("200.00"), Description: "Mastering advance", RecordedDate: now, AuditFields: domain.AuditFields{CreatedAt: now}})

	subLabelID := brandID + "-sub"
	s.AddSubLabel(domain.SubLabel{SubLabelID: subLabelID, ParentBrandID: brandID, Name: "Demo Imprint", CreatedAt: now})
	s.AddRelease(domain.Release{ReleaseID: "rel-demo-sub-1", BrandID: subLabelID, CatalogNumber: "IMP001", Title: "Side Street", AuditFields: domain.AuditFields{CreatedAt: now}})
	s.SetEventSales(subLabelID, EventSales{Gross: d("300.00"), PlatformFees: d("30.00")})
	s.AddPayoutDestination(subLabelID)
}
