package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCostCategoryRequest creates a grouping for cost centres.
type CreateCostCategoryRequest struct {
	Name             string  `json:"name" binding:"required"`
	ParentCategoryID *string `json:"parentCategoryID,omitempty"`
}

// CreateCostCentreRequest creates a cost centre under a category.
type CreateCostCentreRequest struct {
	Name       string `json:"name" binding:"required"`
	CategoryID string `json:"categoryID" binding:"required"`
}

// CreateBudgetRequest sets a budgeted amount for a period against either a
// ledger or a cost centre.
type CreateBudgetRequest struct {
	Name           string          `json:"name" binding:"required"`
	LedgerName     *string         `json:"ledgerName,omitempty"`
	CostCentreName *string         `json:"costCentreName,omitempty"`
	PeriodFrom     time.Time       `json:"periodFrom" binding:"required"`
	PeriodTo       time.Time       `json:"periodTo" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
}
