package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostCategory groups cost centres, tree-shaped like LedgerGroup.
type CostCategory struct {
	CategoryID       string  `json:"categoryID"`
	CompanyID        string  `json:"companyID"`
	Name             string  `json:"name"`
	ParentCategoryID *string `json:"parentCategoryID,omitempty"`
	AuditFields
}

// CostCentre is an optional dimension attached to voucher entries for
// cross-cutting cost reporting.
type CostCentre struct {
	CentreID   string `json:"centreID"`
	CompanyID  string `json:"companyID"`
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"` // unique per company
	AuditFields
}

// Budget is a planned amount for a ledger or a cost centre over a period.
// Exactly one of LedgerName/CostCentreName is set.
type Budget struct {
	BudgetID       string          `json:"budgetID"`
	CompanyID      string          `json:"companyID"`
	Name           string          `json:"name"`
	LedgerName     *string         `json:"ledgerName,omitempty"`
	CostCentreName *string         `json:"costCentreName,omitempty"`
	PeriodFrom     time.Time       `json:"periodFrom"`
	PeriodTo       time.Time       `json:"periodTo"`
	Amount         decimal.Decimal `json:"amount"`
	AuditFields
}

// CostCentreSummaryRow aggregates posted entry amounts for one cost centre.
type CostCentreSummaryRow struct {
	CostCentreName string          `json:"costCentreName"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	Net            decimal.Decimal `json:"net"` // debit - credit
}

// BudgetVarianceRow compares one budget against actuals for its period.
type BudgetVarianceRow struct {
	BudgetID    string          `json:"budgetID"`
	Name        string          `json:"name"`
	Dimension   string          `json:"dimension"` // ledger or cost centre name
	Budgeted    decimal.Decimal `json:"budgeted"`
	Actual      decimal.Decimal `json:"actual"`
	Variance    decimal.Decimal `json:"variance"`    // budgeted - actual
	UsedPercent decimal.Decimal `json:"usedPercent"` // actual / budgeted * 100, 0 when budget is 0
}
