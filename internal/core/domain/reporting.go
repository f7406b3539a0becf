package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerBalance is the per-ledger result of replaying the entry history
// over a date range. Opening is seeded from the ledger's configured opening
// balance plus any entries before the period start.
type LedgerBalance struct {
	LedgerName    string          `json:"ledgerName"`
	GroupCategory GroupCategory   `json:"groupCategory"`
	OpeningDebit  decimal.Decimal `json:"openingDebit"`
	OpeningCredit decimal.Decimal `json:"openingCredit"`
	PeriodDebit   decimal.Decimal `json:"periodDebit"`
	PeriodCredit  decimal.Decimal `json:"periodCredit"`
	ClosingDebit  decimal.Decimal `json:"closingDebit"`
	ClosingCredit decimal.Decimal `json:"closingCredit"`
}

// Close nets the accumulated sides and assigns the result to whichever side
// is larger. A zero net closes with both sides zero.
func (b *LedgerBalance) Close() {
	net := b.OpeningDebit.Add(b.PeriodDebit).Sub(b.OpeningCredit).Sub(b.PeriodCredit)
	switch {
	case net.IsPositive():
		b.ClosingDebit, b.ClosingCredit = net, decimal.Zero
	case net.IsNegative():
		b.ClosingDebit, b.ClosingCredit = decimal.Zero, net.Neg()
	default:
		b.ClosingDebit, b.ClosingCredit = decimal.Zero, decimal.Zero
	}
}

// IsZero reports whether the ledger saw no movement and closes flat.
func (b LedgerBalance) IsZero() bool {
	return b.ClosingDebit.IsZero() && b.ClosingCredit.IsZero() &&
		b.PeriodDebit.IsZero() && b.PeriodCredit.IsZero()
}

// TrialBalanceRow is one ledger's closing position on the trial balance.
type TrialBalanceRow struct {
	LedgerName    string          `json:"ledgerName"`
	GroupCategory GroupCategory   `json:"groupCategory"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// TrialBalanceReport lists every non-zero ledger plus a totals row.
// TotalDebit equals TotalCredit by construction when the books balance.
type TrialBalanceReport struct {
	AsOf        time.Time         `json:"asOf"`
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// StatementLine is one ledger's contribution to a statement section.
type StatementLine struct {
	LedgerName string          `json:"ledgerName"`
	Amount     decimal.Decimal `json:"amount"`
}

// PAndLReport partitions income and expense ledgers around the gross
// profit line.
type PAndLReport struct {
	From            time.Time       `json:"from"`
	To              time.Time       `json:"to"`
	DirectIncome    []StatementLine `json:"directIncome"`
	DirectExpense   []StatementLine `json:"directExpense"`
	IndirectIncome  []StatementLine `json:"indirectIncome"`
	IndirectExpense []StatementLine `json:"indirectExpense"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// BalanceSheetReport lists assets against liabilities and capital, with the
// period's P&L result plugged into capital as "Profit & Loss Account".
type BalanceSheetReport struct {
	AsOf             time.Time       `json:"asOf"`
	Assets           []StatementLine `json:"assets"`
	Liabilities      []StatementLine `json:"liabilities"`
	Capital          []StatementLine `json:"capital"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalCapital     decimal.Decimal `json:"totalCapital"`
	NetWorth         decimal.Decimal `json:"netWorth"`
}

// CashFlowActivity classifies a cash movement. The classification is a
// keyword heuristic on counter-ledger names, not a GAAP-grade classifier.
type CashFlowActivity string

const (
	ActivityOperating CashFlowActivity = "OPERATING"
	ActivityInvesting CashFlowActivity = "INVESTING"
	ActivityFinancing CashFlowActivity = "FINANCING"
)

// CashFlowLine is one voucher's net effect on cash within an activity.
type CashFlowLine struct {
	VoucherID     string           `json:"voucherID"`
	VoucherNumber string           `json:"voucherNumber"`
	Date          time.Time        `json:"date"`
	Activity      CashFlowActivity `json:"activity"`
	Inflow        decimal.Decimal  `json:"inflow"`
	Outflow       decimal.Decimal  `json:"outflow"`
}

// CashFlowReport groups cash/bank movements by activity.
type CashFlowReport struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Lines        []CashFlowLine  `json:"lines"`
	NetOperating decimal.Decimal `json:"netOperating"`
	NetInvesting decimal.Decimal `json:"netInvesting"`
	NetFinancing decimal.Decimal `json:"netFinancing"`
	NetChange    decimal.Decimal `json:"netChange"`
}

// RatioReport holds standard financial ratios derived from the balance
// sheet and P&L. Ratios with a zero denominator are reported as zero.
type RatioReport struct {
	AsOf           time.Time       `json:"asOf"`
	CurrentRatio   decimal.Decimal `json:"currentRatio"`
	QuickRatio     decimal.Decimal `json:"quickRatio"`
	GrossMargin    decimal.Decimal `json:"grossMargin"` // percent
	NetMargin      decimal.Decimal `json:"netMargin"`   // percent
	DebtEquity     decimal.Decimal `json:"debtEquity"`
	WorkingCapital decimal.Decimal `json:"workingCapital"`
}

// BookRow is one entry in a running-balance book projection (cash book,
// bank book, ledger book).
type BookRow struct {
	Date           time.Time       `json:"date"`
	VoucherID      string          `json:"voucherID"`
	VoucherNumber  string          `json:"voucherNumber"`
	Category       VoucherCategory `json:"category"`
	Narration      string          `json:"narration,omitempty"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"runningBalance"` // debit-positive
}

// LedgerBookReport is the filtered entry stream for one ledger with a
// running balance.
type LedgerBookReport struct {
	LedgerName string          `json:"ledgerName"`
	From       time.Time       `json:"from"`
	To         time.Time       `json:"to"`
	Opening    decimal.Decimal `json:"opening"` // debit-positive
	Rows       []BookRow       `json:"rows"`
	Closing    decimal.Decimal `json:"closing"`
}

// DayBookRow is one voucher summarised for the day book.
type DayBookRow struct {
	VoucherID     string          `json:"voucherID"`
	VoucherNumber string          `json:"voucherNumber"`
	Category      VoucherCategory `json:"category"`
	Narration     string          `json:"narration,omitempty"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// StockBalanceRow is the derived stock position for one (item, warehouse).
// The balance is clamped at zero when reported.
type StockBalanceRow struct {
	ItemName      string          `json:"itemName"`
	WarehouseName string          `json:"warehouseName"`
	Quantity      decimal.Decimal `json:"quantity"`
}
