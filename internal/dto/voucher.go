package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CreateVoucherTypeRequest registers a document type for a company.
type CreateVoucherTypeRequest struct {
	Name     string                 `json:"name" binding:"required"`
	Category domain.VoucherCategory `json:"category" binding:"required,vouchercategory"`
	Prefix   string                 `json:"prefix,omitempty"`
}

// CreateVoucherEntryRequest is one manually supplied debit/credit line.
type CreateVoucherEntryRequest struct {
	LedgerName     string           `json:"ledgerName" binding:"required"`
	EntryType      domain.EntryType `json:"entryType" binding:"required,entrytype"`
	Amount         decimal.Decimal  `json:"amount" binding:"required"`
	CostCentreName *string          `json:"costCentreName,omitempty"`
	Narration      string           `json:"narration,omitempty"`
}

// CreateInventoryLineRequest is one stock movement line on a draft voucher.
type CreateInventoryLineRequest struct {
	ItemName       string           `json:"itemName" binding:"required"`
	WarehouseName  string           `json:"warehouseName" binding:"required"`
	Quantity       decimal.Decimal  `json:"quantity" binding:"required"`
	Rate           decimal.Decimal  `json:"rate" binding:"required"`
	Amount         decimal.Decimal  `json:"amount"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	GstRate        *decimal.Decimal `json:"gstRate,omitempty"`
	HSNCode        string           `json:"hsnCode,omitempty"`
}

// CreateVoucherRequest creates a draft voucher. Entries may be supplied
// manually (used as-is after balance validation) or omitted, in which case
// posting synthesizes them from the category's rule.
type CreateVoucherRequest struct {
	TypeID            string                       `json:"typeID" binding:"required"`
	Number            string                       `json:"number" binding:"required"`
	Date              time.Time                    `json:"date" binding:"required"`
	TotalAmount       decimal.Decimal              `json:"totalAmount"`
	PartyLedgerName   *string                      `json:"partyLedgerName,omitempty"`
	CounterLedgerName *string                      `json:"counterLedgerName,omitempty"`
	PlaceOfSupply     *string                      `json:"placeOfSupply,omitempty"`
	Narration         string                       `json:"narration,omitempty"`
	Entries           []CreateVoucherEntryRequest  `json:"entries,omitempty" binding:"omitempty,dive"`
	InventoryLines    []CreateInventoryLineRequest `json:"inventoryLines,omitempty" binding:"omitempty,dive"`
}

// ListVouchersParams holds cursor-paginated listing parameters.
type ListVouchersParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// VoucherResponse is the outward shape of a voucher.
type VoucherResponse struct {
	VoucherID         string                 `json:"voucherID"`
	TypeID            string                 `json:"typeID"`
	Category          domain.VoucherCategory `json:"category"`
	Number            string                 `json:"number"`
	Date              time.Time              `json:"date"`
	Status            domain.VoucherStatus   `json:"status"`
	TotalAmount       decimal.Decimal        `json:"totalAmount"`
	PartyLedgerName   *string                `json:"partyLedgerName,omitempty"`
	CounterLedgerName *string                `json:"counterLedgerName,omitempty"`
	PlaceOfSupply     *string                `json:"placeOfSupply,omitempty"`
	Narration         string                 `json:"narration,omitempty"`
	Entries           []domain.VoucherEntry  `json:"entries,omitempty"`
	InventoryLines    []domain.InventoryLine `json:"inventoryLines,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
}

// ToVoucherResponse converts a domain voucher to its response shape.
func ToVoucherResponse(v *domain.Voucher) VoucherResponse {
	return VoucherResponse{
		VoucherID:         v.VoucherID,
		TypeID:            v.TypeID,
		Category:          v.Category,
		Number:            v.Number,
		Date:              v.Date,
		Status:            v.Status,
		TotalAmount:       v.TotalAmount,
		PartyLedgerName:   v.PartyLedgerName,
		CounterLedgerName: v.CounterLedgerName,
		PlaceOfSupply:     v.PlaceOfSupply,
		Narration:         v.Narration,
		Entries:           v.Entries,
		InventoryLines:    v.InventoryLines,
		CreatedAt:         v.CreatedAt,
	}
}

// ListVouchersResponse is one page of vouchers plus the next cursor.
type ListVouchersResponse struct {
	Vouchers  []VoucherResponse `json:"vouchers"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// PostVoucherResult summarises what a successful posting committed.
type PostVoucherResult struct {
	VoucherID        string `json:"voucherID"`
	EntriesCreated   int    `json:"entriesCreated"`
	InventoryUpdated bool   `json:"inventoryUpdated"`
	GstPosted        bool   `json:"gstPosted"`
}

// CancelVoucherResult reports the outcome of a cancellation, including the
// reversing voucher generated for a posted original.
type CancelVoucherResult struct {
	VoucherID          string  `json:"voucherID"`
	ReversingVoucherID *string `json:"reversingVoucherID,omitempty"`
}
