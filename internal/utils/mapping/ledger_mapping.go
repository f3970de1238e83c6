package mapping

import (
	"github.com/SscSPs/royalty_settlement_app/internal/core/domain"
	"github.com/SscSPs/royalty_settlement_app/internal/models"
)

// ToModelEarning converts a domain Earning to a model Earning
func ToModelEarning(d domain.Earning) models.Earning {
	return models.Earning{
		EarningID:      d.EarningID,
		BrandID:        d.BrandID,
		ReleaseID:      d.ReleaseID,
		Category:       string(d.Category),
		Amount:         d.Amount,
		Description:    d.Description,
		RecordedDate:   d.RecordedDate,
		PlatformFee:    d.PlatformFee,
		FeeFinalizedAt: toPgTimestamptz(d.FeeFinalizedAt),
		Allocated:      d.Allocated,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEarning converts a model Earning to a domain Earning
func ToDomainEarning(m models.Earning) domain.Earning {
	return domain.Earning{
		EarningID:      m.EarningID,
		BrandID:        m.BrandID,
		ReleaseID:      m.ReleaseID,
		Category:       domain.EarningCategory(m.Category),
		Amount:         m.Amount,
		Description:    m.Description,
		RecordedDate:   m.RecordedDate,
		PlatformFee:    m.PlatformFee,
		FeeFinalizedAt: fromPgTimestamptz(m.FeeFinalizedAt),
		Allocated:      m.Allocated,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelRecuperableExpense converts a domain RecuperableExpense to its row form
func ToModelRecuperableExpense(d domain.RecuperableExpense) models.RecuperableExpense {
	return models.RecuperableExpense{
		ExpenseID:    d.ExpenseID,
		ReleaseID:    d.ReleaseID,
		EarningID:    toPgText(d.EarningID),
		Amount:       d.Amount,
		Description:  d.Description,
		RecordedDate: d.RecordedDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToModelRoyalty converts a domain Royalty to its row form
func ToModelRoyalty(d domain.Royalty) models.Royalty {
	return models.Royalty{
		RoyaltyID:    d.RoyaltyID,
		ArtistID:     d.ArtistID,
		ReleaseID:    d.ReleaseID,
		EarningID:    toPgText(d.EarningID),
		Percentage:   d.Percentage,
		Amount:       d.Amount,
		Description:  d.Description,
		RecordedDate: d.RecordedDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainRoyalty converts a model Royalty to a domain Royalty
func ToDomainRoyalty(m models.Royalty) domain.Royalty {
	return domain.Royalty{
		RoyaltyID:    m.RoyaltyID,
		ArtistID:     m.ArtistID,
		ReleaseID:    m.ReleaseID,
		EarningID:    fromPgText(m.EarningID),
		Percentage:   m.Percentage,
		Amount:       m.Amount,
		Description:  m.Description,
		RecordedDate: m.RecordedDate,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
