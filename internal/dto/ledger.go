package dto

import (
	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CreateLedgerGroupRequest creates a chart-of-accounts group.
type CreateLedgerGroupRequest struct {
	Name          string               `json:"name" binding:"required"`
	Category      domain.GroupCategory `json:"category" binding:"required"`
	ParentGroupID *string              `json:"parentGroupID,omitempty"`
}

// UpdateLedgerGroupRequest renames or re-parents a group. The category is
// fixed for the life of the group and cannot be changed.
type UpdateLedgerGroupRequest struct {
	Name          *string `json:"name,omitempty"`
	ParentGroupID *string `json:"parentGroupID,omitempty"`
}

// CreateLedgerRequest creates a ledger under a group.
type CreateLedgerRequest struct {
	GroupID               string             `json:"groupID" binding:"required"`
	Name                  string             `json:"name" binding:"required"`
	OpeningBalance        decimal.Decimal    `json:"openingBalance"`
	OpeningSide           domain.BalanceSide `json:"openingSide" binding:"omitempty,balanceside"`
	CreditLimit           *decimal.Decimal   `json:"creditLimit,omitempty"`
	CreditPeriodDays      *int               `json:"creditPeriodDays,omitempty"`
	BillByBill            bool               `json:"billByBill"`
	InventoryAffectsStock bool               `json:"inventoryAffectsStock"`
	GSTIN                 string             `json:"gstin,omitempty"`
}

// UpdateLedgerRequest mutates a ledger. Nil fields are left unchanged.
type UpdateLedgerRequest struct {
	GroupID          *string             `json:"groupID,omitempty"`
	Name             *string             `json:"name,omitempty"`
	OpeningBalance   *decimal.Decimal    `json:"openingBalance,omitempty"`
	OpeningSide      *domain.BalanceSide `json:"openingSide,omitempty"`
	CreditLimit      *decimal.Decimal    `json:"creditLimit,omitempty"`
	CreditPeriodDays *int                `json:"creditPeriodDays,omitempty"`
	BillByBill       *bool               `json:"billByBill,omitempty"`
	GSTIN            *string             `json:"gstin,omitempty"`
}
