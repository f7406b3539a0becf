package mapping

import (
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/models"
)

func toModelAudit(d domain.AuditFields) models.AuditFields {
	return models.AuditFields{
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

func toDomainAudit(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     m.CreatedAt,
		CreatedBy:     m.CreatedBy,
		LastUpdatedAt: m.LastUpdatedAt,
		LastUpdatedBy: m.LastUpdatedBy,
	}
}

// ToModelLedgerGroup converts a domain LedgerGroup to its model row.
func ToModelLedgerGroup(d domain.LedgerGroup) models.LedgerGroup {
	return models.LedgerGroup{
		GroupID:       d.GroupID,
		CompanyID:     d.CompanyID,
		Name:          d.Name,
		Category:      string(d.Category),
		ParentGroupID: d.ParentGroupID,
		AuditFields:   toModelAudit(d.AuditFields),
	}
}

// ToDomainLedgerGroup converts a model LedgerGroup row to the domain type.
func ToDomainLedgerGroup(m models.LedgerGroup) domain.LedgerGroup {
	return domain.LedgerGroup{
		GroupID:       m.GroupID,
		CompanyID:     m.CompanyID,
		Name:          m.Name,
		Category:      domain.GroupCategory(m.Category),
		ParentGroupID: m.ParentGroupID,
		AuditFields:   toDomainAudit(m.AuditFields),
	}
}

// ToModelLedger converts a domain Ledger to its model row.
func ToModelLedger(d domain.Ledger) models.Ledger {
	return models.Ledger{
		LedgerID:              d.LedgerID,
		CompanyID:             d.CompanyID,
		GroupID:               d.GroupID,
		GroupCategory:         string(d.GroupCategory),
		Name:                  d.Name,
		OpeningBalance:        d.OpeningBalance,
		OpeningSide:           string(d.OpeningSide),
		CreditLimit:           d.CreditLimit,
		CreditPeriodDays:      d.CreditPeriodDays,
		BillByBill:            d.BillByBill,
		InventoryAffectsStock: d.InventoryAffectsStock,
		GSTIN:                 d.GSTIN,
		AuditFields:           toModelAudit(d.AuditFields),
	}
}

// ToDomainLedger converts a model Ledger row to the domain type.
func ToDomainLedger(m models.Ledger) domain.Ledger {
	return domain.Ledger{
		LedgerID:              m.LedgerID,
		CompanyID:             m.CompanyID,
		GroupID:               m.GroupID,
		GroupCategory:         domain.GroupCategory(m.GroupCategory),
		Name:                  m.Name,
		OpeningBalance:        m.OpeningBalance,
		OpeningSide:           domain.BalanceSide(m.OpeningSide),
		CreditLimit:           m.CreditLimit,
		CreditPeriodDays:      m.CreditPeriodDays,
		BillByBill:            m.BillByBill,
		InventoryAffectsStock: m.InventoryAffectsStock,
		GSTIN:                 m.GSTIN,
		AuditFields:           toDomainAudit(m.AuditFields),
	}
}

// ToDomainLedgerSlice converts model Ledger rows to domain Ledgers.
func ToDomainLedgerSlice(ms []models.Ledger) []domain.Ledger {
	ds := make([]domain.Ledger, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLedger(m)
	}
	return ds
}
