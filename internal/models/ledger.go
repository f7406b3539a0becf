package models

import "github.com/shopspring/decimal"

// LedgerGroup is a hierarchical chart-of-accounts category row.
type LedgerGroup struct {
	GroupID       string  `db:"group_id"`
	CompanyID     string  `db:"company_id"`
	Name          string  `db:"name"`
	Category      string  `db:"category"`
	ParentGroupID *string `db:"parent_group_id"`
	AuditFields
}

// Ledger is an account row. GroupCategory is denormalised from the group
// so balance queries avoid a join per entry.
type Ledger struct {
	LedgerID              string           `db:"ledger_id"`
	CompanyID             string           `db:"company_id"`
	GroupID               string           `db:"group_id"`
	GroupCategory         string           `db:"group_category"`
	Name                  string           `db:"name"`
	OpeningBalance        decimal.Decimal  `db:"opening_balance"`
	OpeningSide           string           `db:"opening_side"`
	CreditLimit           *decimal.Decimal `db:"credit_limit"`
	CreditPeriodDays      *int             `db:"credit_period_days"`
	BillByBill            bool             `db:"bill_by_bill"`
	InventoryAffectsStock bool             `db:"inventory_affects_stock"`
	GSTIN                 string           `db:"gstin"`
	AuditFields
}
