package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/startupbooks/startup_books_app/internal/core/domain"
)

// CashFlowEntry is one voucher's movement on a cash/bank ledger together
// with the counter-ledger names the classifier keys on.
type CashFlowEntry struct {
	VoucherID      string
	VoucherNumber  string
	Date           time.Time
	Category       domain.VoucherCategory
	CashDebit      decimal.Decimal
	CashCredit     decimal.Decimal
	CounterLedgers []string
}

// ReportingRepository serves the read-only entry replays that every
// financial statement derives from. Only effective entries count: those of
// POSTED vouchers, and of CANCELLED vouchers carrying a reversing link
// (their reversal nets them out).
type ReportingRepository interface {
	// LedgerBalances returns, for every ledger of the company, the opening
	// position (configured opening plus pre-`from` entries when `from` is
	// set) and the period debit/credit sums up to `to`. Closing sides are
	// not assigned here; the service nets them.
	LedgerBalances(ctx context.Context, companyID string, from *time.Time, to time.Time) ([]domain.LedgerBalance, error)

	// EntriesForLedger returns the dated entry stream for one ledger in
	// voucher-date order. RunningBalance is left for the service to fill.
	EntriesForLedger(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time) ([]domain.BookRow, error)

	// VouchersOnDate summarises every effective voucher dated on the given day.
	VouchersOnDate(ctx context.Context, companyID string, date time.Time) ([]domain.DayBookRow, error)

	// VouchersByCategory lists effective vouchers of one category in range.
	VouchersByCategory(ctx context.Context, companyID string, category domain.VoucherCategory, from time.Time, to time.Time) ([]domain.DayBookRow, error)

	// CashFlowEntries returns cash/bank ledger movements with counter-ledger
	// names for activity classification.
	CashFlowEntries(ctx context.Context, companyID string, from time.Time, to time.Time) ([]CashFlowEntry, error)

	// CostCentreSummary aggregates entry amounts per cost centre in range.
	CostCentreSummary(ctx context.Context, companyID string, from time.Time, to time.Time) ([]domain.CostCentreSummaryRow, error)

	// ActualForLedger returns |period debit - period credit| for one ledger,
	// the actual figure budget variance compares against.
	ActualForLedger(ctx context.Context, companyID string, ledgerName string, from time.Time, to time.Time) (decimal.Decimal, error)

	// ActualForCostCentre is the cost-centre counterpart of ActualForLedger.
	ActualForCostCentre(ctx context.Context, companyID string, costCentreName string, from time.Time, to time.Time) (decimal.Decimal, error)
}
