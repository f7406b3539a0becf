package domain

import "github.com/shopspring/decimal"

// GroupCategory classifies a ledger group on the chart of accounts.
// The category drives statement placement and posting sign conventions.
type GroupCategory string

const (
	CategoryCapital          GroupCategory = "CAPITAL"
	CategoryLoan             GroupCategory = "LOAN"
	CategoryCurrentLiability GroupCategory = "CURRENT_LIABILITY"
	CategorySundryCreditor   GroupCategory = "SUNDRY_CREDITOR"
	CategorySundryDebtor     GroupCategory = "SUNDRY_DEBTOR"
	CategoryBankAccount      GroupCategory = "BANK_ACCOUNT"
	CategoryCash             GroupCategory = "CASH"
	CategoryCurrentAsset     GroupCategory = "CURRENT_ASSET"
	CategoryInvestment       GroupCategory = "INVESTMENT"
	CategoryStock            GroupCategory = "STOCK"
	CategoryPurchase         GroupCategory = "PURCHASE"
	CategorySales            GroupCategory = "SALES"
	CategoryDirectExpense    GroupCategory = "DIRECT_EXPENSE"
	CategoryIndirectExpense  GroupCategory = "INDIRECT_EXPENSE"
	CategoryDirectIncome     GroupCategory = "DIRECT_INCOME"
	CategoryIndirectIncome   GroupCategory = "INDIRECT_INCOME"
	CategoryOther            GroupCategory = "OTHER"
)

// IsAsset reports whether balances of this category belong on the asset
// side of the balance sheet.
func (c GroupCategory) IsAsset() bool {
	switch c {
	case CategoryBankAccount, CategoryCash, CategoryCurrentAsset,
		CategoryInvestment, CategoryStock, CategorySundryDebtor:
		return true
	}
	return false
}

// IsLiability reports whether balances of this category belong on the
// liabilities side of the balance sheet (capital reported separately).
func (c GroupCategory) IsLiability() bool {
	switch c {
	case CategoryLoan, CategoryCurrentLiability, CategorySundryCreditor:
		return true
	}
	return false
}

// IsIncome reports whether the category is an income category for the P&L.
func (c GroupCategory) IsIncome() bool {
	switch c {
	case CategorySales, CategoryDirectIncome, CategoryIndirectIncome:
		return true
	}
	return false
}

// IsExpense reports whether the category is an expense category for the P&L.
func (c GroupCategory) IsExpense() bool {
	switch c {
	case CategoryPurchase, CategoryDirectExpense, CategoryIndirectExpense:
		return true
	}
	return false
}

// IsDirect reports whether the category sits above the gross profit line.
func (c GroupCategory) IsDirect() bool {
	switch c {
	case CategorySales, CategoryPurchase, CategoryDirectIncome, CategoryDirectExpense:
		return true
	}
	return false
}

// IsCashOrBank reports whether ledgers under this category hold money.
func (c GroupCategory) IsCashOrBank() bool {
	return c == CategoryCash || c == CategoryBankAccount
}

// BalanceSide indicates which side a ledger balance sits on.
type BalanceSide string

const (
	SideDebit  BalanceSide = "DEBIT"
	SideCredit BalanceSide = "CREDIT"
)

// LedgerGroup is a hierarchical category on the chart of accounts.
// The category is fixed for the life of the group and a group can never
// be its own ancestor.
type LedgerGroup struct {
	GroupID       string        `json:"groupID"`
	CompanyID     string        `json:"companyID"`
	Name          string        `json:"name"`
	Category      GroupCategory `json:"category"`
	ParentGroupID *string       `json:"parentGroupID,omitempty"`
	AuditFields
}

// Ledger is a single account on the chart of accounts.
type Ledger struct {
	LedgerID              string           `json:"ledgerID"`
	CompanyID             string           `json:"companyID"`
	GroupID               string           `json:"groupID"`
	GroupCategory         GroupCategory    `json:"groupCategory"` // denormalised from the group
	Name                  string           `json:"name"`          // unique per company
	OpeningBalance        decimal.Decimal  `json:"openingBalance"`
	OpeningSide           BalanceSide      `json:"openingSide"`
	CreditLimit           *decimal.Decimal `json:"creditLimit,omitempty"`
	CreditPeriodDays      *int             `json:"creditPeriodDays,omitempty"`
	BillByBill            bool             `json:"billByBill"`
	InventoryAffectsStock bool             `json:"inventoryAffectsStock"`
	GSTIN                 string           `json:"gstin,omitempty"`
	AuditFields
}
