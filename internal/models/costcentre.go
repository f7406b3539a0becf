package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostCategory groups cost centres.
type CostCategory struct {
	CategoryID       string  `db:"category_id"`
	CompanyID        string  `db:"company_id"`
	Name             string  `db:"name"`
	ParentCategoryID *string `db:"parent_category_id"`
	AuditFields
}

// CostCentre is a reporting dimension row.
type CostCentre struct {
	CentreID   string `db:"centre_id"`
	CompanyID  string `db:"company_id"`
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	AuditFields
}

// Budget is a planned amount row for a ledger or cost centre period.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	CompanyID      string          `db:"company_id"`
	Name           string          `db:"name"`
	LedgerName     *string         `db:"ledger_name"`
	CostCentreName *string         `db:"cost_centre_name"`
	PeriodFrom     time.Time       `db:"period_from"`
	PeriodTo       time.Time       `db:"period_to"`
	Amount         decimal.Decimal `db:"amount"`
	AuditFields
}
