package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VoucherCategory determines which posting rule applies to a voucher.
type VoucherCategory string

const (
	CategoryPayment      VoucherCategory = "PAYMENT"
	CategoryReceipt      VoucherCategory = "RECEIPT"
	CategoryContra       VoucherCategory = "CONTRA"
	CategoryJournal      VoucherCategory = "JOURNAL"
	CategorySalesVoucher VoucherCategory = "SALES"
	CategoryPurchaseVch  VoucherCategory = "PURCHASE"
	CategoryCreditNote   VoucherCategory = "CREDIT_NOTE"
	CategoryDebitNote    VoucherCategory = "DEBIT_NOTE"
	CategoryDeliveryNote VoucherCategory = "DELIVERY_NOTE"
	CategoryReceiptNote  VoucherCategory = "RECEIPT_NOTE"
	CategoryStockJournal VoucherCategory = "STOCK_JOURNAL"
	CategoryMemo         VoucherCategory = "MEMO"
)

// RequiresInventory reports whether a voucher of this category must carry
// at least one inventory line.
func (c VoucherCategory) RequiresInventory() bool {
	switch c {
	case CategorySalesVoucher, CategoryPurchaseVch, CategoryCreditNote, CategoryDebitNote:
		return true
	}
	return false
}

// StockEffect returns the sign this category applies to inventory line
// quantities when deriving stock balances: +1 inward, -1 outward, 0 none.
func (c VoucherCategory) StockEffect() int {
	switch c {
	case CategoryPurchaseVch, CategoryReceiptNote, CategoryCreditNote:
		return 1
	case CategorySalesVoucher, CategoryDeliveryNote, CategoryDebitNote:
		return -1
	}
	return 0
}

// PostsLedgerEntries reports whether this category produces ledger entries
// at all. Delivery/receipt notes, stock journals and memos only move stock.
func (c VoucherCategory) PostsLedgerEntries() bool {
	switch c {
	case CategoryDeliveryNote, CategoryReceiptNote, CategoryStockJournal, CategoryMemo:
		return false
	}
	return true
}

// VoucherStatus indicates the lifecycle state of a voucher.
type VoucherStatus string

const (
	VoucherDraft     VoucherStatus = "DRAFT"
	VoucherPosted    VoucherStatus = "POSTED"
	VoucherCancelled VoucherStatus = "CANCELLED"
)

// EntryType indicates whether a voucher entry is a Debit or a Credit.
type EntryType string

const (
	Debit  EntryType = "DEBIT"
	Credit EntryType = "CREDIT"
)

// BalanceEpsilon is the tolerance within which a posted voucher's debit and
// credit totals must agree. Per-component 2dp rounding of tax amounts can
// drift the document total by a paisa.
var BalanceEpsilon = decimal.NewFromFloat(0.01)

// VoucherType names a user-facing document type and fixes its category.
type VoucherType struct {
	TypeID    string          `json:"typeID"`
	CompanyID string          `json:"companyID"`
	Name      string          `json:"name"`
	Category  VoucherCategory `json:"category"`
	Prefix    string          `json:"prefix"`
	AuditFields
}

// VoucherEntry is one debit or credit line within a voucher, against one
// ledger, optionally tagged with a cost centre dimension.
type VoucherEntry struct {
	EntryID        string          `json:"entryID"`
	VoucherID      string          `json:"voucherID"`
	LedgerName     string          `json:"ledgerName"`
	EntryType      EntryType       `json:"entryType"`
	Amount         decimal.Decimal `json:"amount"` // always positive
	CostCentreName *string         `json:"costCentreName,omitempty"`
	Narration      string          `json:"narration,omitempty"`
	AuditFields
}

// InventoryLine is a stock movement line on a stock-affecting voucher.
type InventoryLine struct {
	LineID         string           `json:"lineID"`
	VoucherID      string           `json:"voucherID"`
	ItemName       string           `json:"itemName"`
	WarehouseName  string           `json:"warehouseName"`
	Quantity       decimal.Decimal  `json:"quantity"`
	Rate           decimal.Decimal  `json:"rate"`
	Amount         decimal.Decimal  `json:"amount"`
	DiscountAmount decimal.Decimal  `json:"discountAmount"`
	GstRate        *decimal.Decimal `json:"gstRate,omitempty"` // overrides HSN lookup
	HSNCode        string           `json:"hsnCode,omitempty"`
	AuditFields
}

// TaxableValue is the line amount net of discount.
func (l InventoryLine) TaxableValue() decimal.Decimal {
	return l.Amount.Sub(l.DiscountAmount)
}

// Voucher is a single business transaction document composed of balanced
// entries. A voucher exclusively owns its entries and inventory lines.
type Voucher struct {
	VoucherID          string          `json:"voucherID"`
	CompanyID          string          `json:"companyID"`
	TypeID             string          `json:"typeID"`
	Category           VoucherCategory `json:"category"` // denormalised from the type
	Number             string          `json:"number"`   // unique per company+type
	Date               time.Time       `json:"date"`
	Status             VoucherStatus   `json:"status"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	PartyLedgerName    *string         `json:"partyLedgerName,omitempty"`
	CounterLedgerName  *string         `json:"counterLedgerName,omitempty"` // cash/bank or sales/purchase leg
	PlaceOfSupply      *string         `json:"placeOfSupply,omitempty"`     // state code
	Narration          string          `json:"narration,omitempty"`
	OriginalVoucherID  *string         `json:"originalVoucherID,omitempty"`  // set on reversing vouchers
	ReversingVoucherID *string         `json:"reversingVoucherID,omitempty"` // set on cancelled originals
	Entries            []VoucherEntry  `json:"entries,omitempty"`
	InventoryLines     []InventoryLine `json:"inventoryLines,omitempty"`
	AuditFields
}

// EntryTotals returns the sum of debit and credit entry amounts.
func EntryTotals(entries []VoucherEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		if e.EntryType == Debit {
			debits = debits.Add(e.Amount)
		} else {
			credits = credits.Add(e.Amount)
		}
	}
	return debits, credits
}

// EntriesBalanced reports whether debits equal credits within BalanceEpsilon.
func EntriesBalanced(entries []VoucherEntry) bool {
	debits, credits := EntryTotals(entries)
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceEpsilon)
}

// NetInventoryValue sums taxable values across the voucher's inventory lines.
func (v Voucher) NetInventoryValue() decimal.Decimal {
	net := decimal.Zero
	for _, l := range v.InventoryLines {
		net = net.Add(l.TaxableValue())
	}
	return net
}
