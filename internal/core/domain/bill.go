package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillType distinguishes receivables from payables.
type BillType string

const (
	BillReceivable BillType = "RECEIVABLE"
	BillPayable    BillType = "PAYABLE"
)

// BillStatus tracks the settlement lifecycle of a bill.
// Transitions only move forward: OPEN -> PARTIAL -> SETTLED, or CANCELLED.
type BillStatus string

const (
	BillOpen      BillStatus = "OPEN"
	BillPartial   BillStatus = "PARTIAL"
	BillSettled   BillStatus = "SETTLED"
	BillCancelled BillStatus = "CANCELLED"
)

// Bill is one tracked receivable or payable instance, settled incrementally
// against payment/receipt voucher entries. It weakly references the voucher
// it originated from (lookup only, no cascade).
type Bill struct {
	BillID            string          `json:"billID"`
	CompanyID         string          `json:"companyID"`
	BillType          BillType        `json:"billType"`
	Number            string          `json:"number"` // unique per company
	LedgerName        string          `json:"ledgerName"`
	BillDate          time.Time       `json:"billDate"`
	DueDate           *time.Time      `json:"dueDate,omitempty"`
	OriginalAmount    decimal.Decimal `json:"originalAmount"`
	SettledAmount     decimal.Decimal `json:"settledAmount"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	Status            BillStatus      `json:"status"`
	VoucherID         *string         `json:"voucherID,omitempty"`
	AuditFields
}

// RecomputeStatus derives outstanding and status from original vs settled.
// Outstanding never goes below zero.
func (b *Bill) RecomputeStatus() {
	b.OutstandingAmount = b.OriginalAmount.Sub(b.SettledAmount)
	if b.OutstandingAmount.IsNegative() {
		b.OutstandingAmount = decimal.Zero
	}
	switch {
	case b.SettledAmount.IsZero():
		b.Status = BillOpen
	case b.SettledAmount.GreaterThanOrEqual(b.OriginalAmount):
		b.Status = BillSettled
	default:
		b.Status = BillPartial
	}
}

// DaysOverdue returns how many days past due the bill is as of the given
// date, falling back to the bill date when no due date is set.
func (b Bill) DaysOverdue(asOf time.Time) int {
	due := b.BillDate
	if b.DueDate != nil {
		due = *b.DueDate
	}
	return int(asOf.Sub(due).Hours() / 24)
}

// BillSettlement ties one payment/receipt voucher entry to a bill.
type BillSettlement struct {
	SettlementID string          `json:"settlementID"`
	BillID       string          `json:"billID"`
	CompanyID    string          `json:"companyID"`
	VoucherID    string          `json:"voucherID"`
	EntryID      string          `json:"entryID"`
	Amount       decimal.Decimal `json:"amount"`
	Date         time.Time       `json:"date"`
	AuditFields
}

// AgingBucket names the collection bracket a bill falls into.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "CURRENT"
	Bucket1To30   AgingBucket = "1-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
)

// BucketFor places a days-overdue value into its aging bucket.
// Upper bounds are inclusive.
func BucketFor(daysOverdue int) AgingBucket {
	switch {
	case daysOverdue <= 0:
		return BucketCurrent
	case daysOverdue <= 30:
		return Bucket1To30
	case daysOverdue <= 60:
		return Bucket31To60
	case daysOverdue <= 90:
		return Bucket61To90
	default:
		return BucketOver90
	}
}

// AgingRow is one ledger's outstanding split across aging buckets.
type AgingRow struct {
	LedgerName string                          `json:"ledgerName"`
	Buckets    map[AgingBucket]decimal.Decimal `json:"buckets"`
	Total      decimal.Decimal                 `json:"total"`
}

// OutstandingRow is one ledger's total open/partial outstanding.
type OutstandingRow struct {
	LedgerName  string          `json:"ledgerName"`
	BillCount   int             `json:"billCount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}
