package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CreateBillRequest opens a receivable or payable bill against a party ledger.
type CreateBillRequest struct {
	Number     string          `json:"number" binding:"required"`
	BillType   domain.BillType `json:"billType" binding:"required,billtype"`
	LedgerName string          `json:"ledgerName" binding:"required"`
	BillDate   time.Time       `json:"billDate" binding:"required"`
	DueDate    *time.Time      `json:"dueDate,omitempty"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	VoucherID  *string         `json:"voucherID,omitempty"`
}

// SettleBillRequest applies a payment or receipt entry against an open bill.
type SettleBillRequest struct {
	VoucherID string          `json:"voucherID" binding:"required"`
	EntryID   string          `json:"entryID" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	Date      time.Time       `json:"date" binding:"required"`
}

// BillResponse is the outward shape of a bill.
type BillResponse struct {
	BillID      string            `json:"billID"`
	Number      string            `json:"number"`
	BillType    domain.BillType   `json:"billType"`
	LedgerName  string            `json:"ledgerName"`
	BillDate    time.Time         `json:"billDate"`
	DueDate     *time.Time        `json:"dueDate,omitempty"`
	Amount      decimal.Decimal   `json:"amount"`
	Settled     decimal.Decimal   `json:"settled"`
	Outstanding decimal.Decimal   `json:"outstanding"`
	Status      domain.BillStatus `json:"status"`
	VoucherID   *string           `json:"voucherID,omitempty"`
}

// ToBillResponse converts a domain bill to its response shape.
func ToBillResponse(b *domain.Bill) BillResponse {
	return BillResponse{
		BillID:      b.BillID,
		Number:      b.Number,
		BillType:    b.BillType,
		LedgerName:  b.LedgerName,
		BillDate:    b.BillDate,
		DueDate:     b.DueDate,
		Amount:      b.OriginalAmount,
		Settled:     b.SettledAmount,
		Outstanding: b.OutstandingAmount,
		Status:      b.Status,
		VoucherID:   b.VoucherID,
	}
}

// AgingReportResponse groups outstanding bills into overdue buckets as of a date.
type AgingReportResponse struct {
	AsOf     time.Time         `json:"asOf"`
	BillType domain.BillType   `json:"billType"`
	Rows     []domain.AgingRow `json:"rows"`
	Totals   domain.AgingRow   `json:"totals"`
}

// OutstandingReportResponse lists per-party outstanding balances.
type OutstandingReportResponse struct {
	AsOf     time.Time               `json:"asOf"`
	BillType domain.BillType         `json:"billType"`
	Rows     []domain.OutstandingRow `json:"rows"`
	Total    decimal.Decimal         `json:"total"`
}
