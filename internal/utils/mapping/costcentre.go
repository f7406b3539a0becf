package mapping

import (
	"github.com/startupbooks/startup_books_app/internal/core/domain"
	"github.com/startupbooks/startup_books_app/internal/models"
)

// ToModelCostCentre converts a domain CostCentre to its model row.
func ToModelCostCentre(d domain.CostCentre) models.CostCentre {
	return models.CostCentre{
		CentreID:    d.CentreID,
		CompanyID:   d.CompanyID,
		CategoryID:  d.CategoryID,
		Name:        d.Name,
		AuditFields: toModelAudit(d.AuditFields),
	}
}

// ToDomainCostCentre converts a model CostCentre row to the domain type.
func ToDomainCostCentre(m models.CostCentre) domain.CostCentre {
	return domain.CostCentre{
		CentreID:    m.CentreID,
		CompanyID:   m.CompanyID,
		CategoryID:  m.CategoryID,
		Name:        m.Name,
		AuditFields: toDomainAudit(m.AuditFields),
	}
}

// ToModelCostCategory converts a domain CostCategory to its model row.
func ToModelCostCategory(d domain.CostCategory) models.CostCategory {
	return models.CostCategory{
		CategoryID:       d.CategoryID,
		CompanyID:        d.CompanyID,
		Name:             d.Name,
		ParentCategoryID: d.ParentCategoryID,
		AuditFields:      toModelAudit(d.AuditFields),
	}
}

// ToDomainCostCategory converts a model CostCategory row to the domain type.
func ToDomainCostCategory(m models.CostCategory) domain.CostCategory {
	return domain.CostCategory{
		CategoryID:       m.CategoryID,
		CompanyID:        m.CompanyID,
		Name:             m.Name,
		ParentCategoryID: m.ParentCategoryID,
		AuditFields:      toDomainAudit(m.AuditFields),
	}
}

// ToModelBudget converts a domain Budget to its model row.
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:       d.BudgetID,
		CompanyID:      d.CompanyID,
		Name:           d.Name,
		LedgerName:     d.LedgerName,
		CostCentreName: d.CostCentreName,
		PeriodFrom:     d.PeriodFrom,
		PeriodTo:       d.PeriodTo,
		Amount:         d.Amount,
		AuditFields:    toModelAudit(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget row to the domain type.
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:       m.BudgetID,
		CompanyID:      m.CompanyID,
		Name:           m.Name,
		LedgerName:     m.LedgerName,
		CostCentreName: m.CostCentreName,
		PeriodFrom:     m.PeriodFrom,
		PeriodTo:       m.PeriodTo,
		Amount:         m.Amount,
		AuditFields:    toDomainAudit(m.AuditFields),
	}
}
