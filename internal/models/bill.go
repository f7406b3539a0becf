package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is one tracked receivable/payable row.
type Bill struct {
	BillID            string          `db:"bill_id"`
	CompanyID         string          `db:"company_id"`
	BillType          string          `db:"bill_type"`
	Number            string          `db:"number"`
	LedgerName        string          `db:"ledger_name"`
	BillDate          time.Time       `db:"bill_date"`
	DueDate           *time.Time      `db:"due_date"`
	OriginalAmount    decimal.Decimal `db:"original_amount"`
	SettledAmount     decimal.Decimal `db:"settled_amount"`
	OutstandingAmount decimal.Decimal `db:"outstanding_amount"`
	Status            string          `db:"status"`
	VoucherID         *string         `db:"voucher_id"`
	AuditFields
}

// BillSettlement records one settlement of a bill by a voucher entry.
type BillSettlement struct {
	SettlementID string          `db:"settlement_id"`
	BillID       string          `db:"bill_id"`
	CompanyID    string          `db:"company_id"`
	VoucherID    string          `db:"voucher_id"`
	EntryID      string          `db:"entry_id"`
	Amount       decimal.Decimal `db:"amount"`
	SettledOn    time.Time       `db:"settled_on"`
	AuditFields
}
