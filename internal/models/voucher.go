package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherType names a document type and fixes its posting category.
type VoucherType struct {
	TypeID    string `db:"type_id"`
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	Category  string `db:"category"`
	Prefix    string `db:"prefix"`
	AuditFields
}

// Voucher is a transaction document row.
type Voucher struct {
	VoucherID          string          `db:"voucher_id"`
	CompanyID          string          `db:"company_id"`
	TypeID             string          `db:"type_id"`
	Category           string          `db:"category"`
	Number             string          `db:"number"`
	VoucherDate        time.Time       `db:"voucher_date"`
	Status             string          `db:"status"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	PartyLedgerName    *string         `db:"party_ledger_name"`
	CounterLedgerName  *string         `db:"counter_ledger_name"`
	PlaceOfSupply      *string         `db:"place_of_supply"`
	Narration          string          `db:"narration"`
	OriginalVoucherID  *string         `db:"original_voucher_id"`
	ReversingVoucherID *string         `db:"reversing_voucher_id"`
	AuditFields
}

// VoucherEntry is one debit/credit line row.
type VoucherEntry struct {
	EntryID        string          `db:"entry_id"`
	VoucherID      string          `db:"voucher_id"`
	CompanyID      string          `db:"company_id"`
	LedgerName     string          `db:"ledger_name"`
	EntryType      string          `db:"entry_type"`
	Amount         decimal.Decimal `db:"amount"`
	CostCentreName *string         `db:"cost_centre_name"`
	Narration      string          `db:"narration"`
	AuditFields
}

// InventoryLine is one stock movement row on a voucher.
type InventoryLine struct {
	LineID         string           `db:"line_id"`
	VoucherID      string           `db:"voucher_id"`
	CompanyID      string           `db:"company_id"`
	ItemName       string           `db:"item_name"`
	WarehouseName  string           `db:"warehouse_name"`
	Quantity       decimal.Decimal  `db:"quantity"`
	Rate           decimal.Decimal  `db:"rate"`
	Amount         decimal.Decimal  `db:"amount"`
	DiscountAmount decimal.Decimal  `db:"discount_amount"`
	GstRate        *decimal.Decimal `db:"gst_rate"`
	HSNCode        string           `db:"hsn_code"`
	AuditFields
}
